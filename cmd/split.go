package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitfile/internal/adapter/outbound/progress"
	"splitfile/internal/application/service/splitter"
	"splitfile/internal/domain/errors/domain"
	"splitfile/internal/domain/valueobject"
)

// splitFlags holds the flags for the split command.
type splitFlags struct {
	nlines   int
	nfiles   int
	encoding string
	title    bool
	verbose  bool
}

// newSplitCmd implements: splitfile split -l N|-f N [-e enc] [-t] [-v] source_file [target_dir].
func newSplitCmd() *cobra.Command {
	var flags splitFlags

	cmd := &cobra.Command{
		Use:   "split source_file [target_dir]",
		Short: "Split one file into several files",
		Long: `Split one file into several files, either by a fixed number of
lines per output file (--nlines) or by a fixed total number of output
files with balanced line counts (--nfiles).

New files are created with a sequence number suffix.
New files are not created if there are no lines to create them.

Warning: new files may erase old files!`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.nlines, "nlines", "l", 0, "number of lines in output files")
	cmd.Flags().IntVarP(&flags.nfiles, "nfiles", "f", 0, "number of output files")
	cmd.Flags().StringVarP(&flags.encoding, "encoding", "e", "", "encoding of source file and output files")
	cmd.Flags().BoolVarP(&flags.title, "title", "t", false, "include title (first line of the source file) in output files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "display created output files")

	cmd.MarkFlagsMutuallyExclusive("nlines", "nfiles")
	cmd.MarkFlagsOneRequired("nlines", "nfiles")

	return cmd
}

// runSplit validates the argument surface and hands the operation to the
// splitter service.
func runSplit(cmd *cobra.Command, args []string, flags splitFlags) error {
	conf := activeConfig()

	plan, err := buildPlan(cmd, flags)
	if err != nil {
		return err
	}

	targetDir := ""
	if len(args) == 2 {
		targetDir = args[1]
		if err := checkTargetDir(targetDir); err != nil {
			return err
		}
	}

	encodingName := flags.encoding
	if encodingName == "" {
		encodingName = conf.Split.Encoding
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	green.Fprintln(out, "start...")

	sink := progress.NewConsoleSink(out, flags.verbose, conf.Progress.Enabled, conf.Progress.SpinnerInterval)
	service, err := splitter.NewService(sink)
	if err != nil {
		return err
	}

	opts := splitter.Options{
		SourcePath: args[0],
		Encoding:   encodingName,
		Title:      flags.title,
		TargetDir:  targetDir,
		Separator:  conf.Split.Separator,
	}
	if _, err := service.Split(cmd.Context(), opts, plan); err != nil {
		return err
	}

	green.Fprintln(out, "success!")
	return nil
}

// buildPlan turns whichever of the mutually exclusive count flags was
// given into a validated split plan.
func buildPlan(cmd *cobra.Command, flags splitFlags) (valueobject.SplitPlan, error) {
	if cmd.Flags().Changed("nlines") {
		return valueobject.NewLineCountPlan(flags.nlines)
	}
	return valueobject.NewFileCountPlan(flags.nfiles)
}

// checkTargetDir requires an existing directory; the tool never creates
// target directories.
func checkTargetDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: target directory %s: %v", domain.ErrTargetWrite, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: target directory %s is not a directory", domain.ErrTargetWrite, dir)
	}
	return nil
}

func init() { //nolint:gochecknoinits // Standard Cobra CLI pattern for command registration
	rootCmd.AddCommand(newSplitCmd())
}
