package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"splitfile/internal/application/common/logging"
	"splitfile/internal/application/common/slogger"
	"splitfile/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "splitfile",
	Short: "Split one text file into several files",
	Long: `Splitfile splits a single text file into sequentially-numbered
chunk files, either by a fixed number of lines per output file or by a
fixed total number of output files with balanced line counts.

New files are created with a sequence number suffix.
New files are not created if there are no lines to create them.

Warning: new files may erase old files!`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "Log format (json, text)")
}

func initConfig() {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Set config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix("SPLITFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind flags to viper
	if err := v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
	}
	if err := v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-format flag: %v\n", err)
	}

	// Read configuration; the config file is optional unless named
	// explicitly.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	cfg = config.New(v)

	logger, err := logging.NewApplicationLogger(logging.Config{
		Level:  strings.ToUpper(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: "stderr",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	slogger.SetGlobalLogger(logger)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("split.encoding", "")
	v.SetDefault("split.separator", "_")
	v.SetDefault("progress.enabled", true)
	v.SetDefault("progress.spinner_interval", "100ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// activeConfig returns the loaded configuration, or built-in defaults
// when command execution bypassed initConfig (as unit tests do).
func activeConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		Split:    config.SplitConfig{Separator: "_"},
		Progress: config.ProgressConfig{Enabled: false, SpinnerInterval: 100 * time.Millisecond},
		Log:      config.LogConfig{Level: "info", Format: "json"},
	}
}
