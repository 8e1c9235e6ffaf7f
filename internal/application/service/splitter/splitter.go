// Package splitter implements the file-splitting operations: splitting
// a text file into sequentially-numbered target files by a fixed line
// count per file or by a fixed number of balanced files.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/text/encoding"

	"splitfile/internal/adapter/outbound/progress"
	"splitfile/internal/adapter/outbound/textio"
	"splitfile/internal/application/common/slogger"
	"splitfile/internal/domain/errors/domain"
	"splitfile/internal/domain/valueobject"
	"splitfile/internal/port/outbound"
)

// Task names reported to the progress sink.
const (
	taskCountLines = "count lines:"
	taskReadWrite  = "read & write:"
)

// Options carries the per-operation inputs shared by both strategies.
type Options struct {
	// SourcePath is the path of the text file to split.
	SourcePath string
	// Encoding is the IANA name of the source and target text encoding.
	// Empty selects UTF-8 pass-through.
	Encoding string
	// Title duplicates the source's first line into every target file.
	// The title line is excluded from per-file line accounting.
	Title bool
	// TargetDir, when non-empty, receives all target files instead of
	// the source's own directory. It must already exist.
	TargetDir string
	// Separator joins the source stem and the sequence index in target
	// names. Empty selects the default "_".
	Separator string
}

// Result reports a completed split operation.
type Result struct {
	// CreatedFiles lists the target paths in creation order. It is
	// empty when the source held no content lines.
	CreatedFiles []string
	// LinesWritten is the total number of content lines copied, title
	// lines excluded.
	LinesWritten int
}

// Service performs split operations. It is strictly sequential: one
// source handle and at most one target handle are open at a time.
type Service struct {
	sink outbound.ProgressSink

	splitDuration metric.Float64Histogram
	filesCreated  metric.Int64Counter
	linesWritten  metric.Int64Counter
	splitErrors   metric.Int64Counter
}

// NewService creates a split service reporting progress to sink. A nil
// sink disables progress reporting.
func NewService(sink outbound.ProgressSink) (*Service, error) {
	if sink == nil {
		sink = progress.NewNoopSink()
	}

	meter := otel.Meter("splitfile/splitter")

	splitDuration, err := meter.Float64Histogram(
		"split_duration_seconds",
		metric.WithDescription("Duration of split operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create split duration metric: %w", err)
	}

	filesCreated, err := meter.Int64Counter(
		"split_files_created_total",
		metric.WithDescription("Total number of target files created"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create files created metric: %w", err)
	}

	linesWritten, err := meter.Int64Counter(
		"split_lines_written_total",
		metric.WithDescription("Total number of content lines written"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lines written metric: %w", err)
	}

	splitErrors, err := meter.Int64Counter(
		"split_errors_total",
		metric.WithDescription("Total number of failed split operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create split errors metric: %w", err)
	}

	return &Service{
		sink:          sink,
		splitDuration: splitDuration,
		filesCreated:  filesCreated,
		linesWritten:  linesWritten,
		splitErrors:   splitErrors,
	}, nil
}

// Split runs the operation described by plan. It either completes,
// returning the set of created file paths (possibly empty), or fails
// with the first fault encountered. Target files fully written before
// the fault remain on disk.
func (s *Service) Split(ctx context.Context, opts Options, plan valueobject.SplitPlan) (*Result, error) {
	start := time.Now()

	var (
		result *Result
		err    error
	)
	switch plan.Mode() {
	case valueobject.ModeByLineCount:
		result, err = s.splitByLines(opts, plan.Count())
	case valueobject.ModeByFileCount:
		result, err = s.splitByFiles(opts, plan.Count())
	default:
		err = fmt.Errorf("%w: no strategy selected", domain.ErrInvalidSplitPlan)
	}

	attrs := metric.WithAttributes(attribute.String("mode", string(plan.Mode())))
	s.splitDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		s.splitErrors.Add(ctx, 1, attrs)
		slogger.ErrorWithError(ctx, err, "Split operation failed", slogger.Fields2(
			"source", opts.SourcePath, "plan", plan.String()))
		return nil, err
	}

	s.filesCreated.Add(ctx, int64(len(result.CreatedFiles)), attrs)
	s.linesWritten.Add(ctx, int64(result.LinesWritten), attrs)
	slogger.Info(ctx, "Split operation completed", slogger.Fields3(
		"source", opts.SourcePath,
		"files_created", len(result.CreatedFiles),
		"lines_written", result.LinesWritten))

	return result, nil
}

// splitByLines walks the source once, emitting a new target file every
// nlines lines. The final file may hold fewer lines.
func (s *Service) splitByLines(opts Options, nlines int) (*Result, error) {
	enc, err := textio.ResolveEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	src, err := openSource(opts.SourcePath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	reader := textio.NewLineReader(src, enc)

	title, err := readTitle(reader, opts.Title)
	if err != nil {
		return nil, err
	}

	template := valueobject.NewTargetNameTemplate(opts.SourcePath, opts.TargetDir, opts.Separator)
	result := &Result{}

	for index := 1; ; index++ {
		more, err := reader.More()
		if err != nil {
			return nil, classifySourceError(err)
		}
		if !more {
			break
		}
		if err := s.emitTarget(template.PathFor(index), enc, title, reader, nlines, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// splitByFiles walks the source twice: a counting pass, then a writing
// pass distributing lines as evenly as possible across nfiles files.
// The first (content mod nfiles) files carry one extra line.
func (s *Service) splitByFiles(opts Options, nfiles int) (*Result, error) {
	enc, err := textio.ResolveEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	src, err := openSource(opts.SourcePath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	s.sink.TaskStarted(taskCountLines)
	total, err := textio.NewLineReader(src, enc).CountLines()
	s.sink.TaskFinished(taskCountLines)
	if err != nil {
		return nil, classifySourceError(err)
	}

	content := total
	if opts.Title && total > 0 {
		content--
	}
	quotient := content / nfiles
	remainder := content % nfiles

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, classifySourceError(err)
	}
	// A fresh reader after the rewind: decoder state must not carry
	// over between passes.
	reader := textio.NewLineReader(src, enc)

	title, err := readTitle(reader, opts.Title)
	if err != nil {
		return nil, err
	}

	template := valueobject.NewTargetNameTemplate(opts.SourcePath, opts.TargetDir, opts.Separator)
	result := &Result{}

	for index := 1; index <= nfiles; index++ {
		more, err := reader.More()
		if err != nil {
			return nil, classifySourceError(err)
		}
		if !more {
			break
		}
		quota := quotient
		if index <= remainder {
			quota++
		}
		if quota == 0 {
			// Content remaining with a zero quota cannot happen when the
			// counting pass agrees with the writing pass; never emit an
			// empty target.
			break
		}
		if err := s.emitTarget(template.PathFor(index), enc, title, reader, quota, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// emitTarget materializes one target file: create, write title and up
// to quota lines, close, trim the trailing terminator, then report it.
func (s *Service) emitTarget(
	path string,
	enc encoding.Encoding,
	title string,
	reader *textio.LineReader,
	quota int,
	result *Result,
) error {
	written, err := s.writeTarget(path, enc, title, reader, quota)
	result.LinesWritten += written
	if err != nil {
		return err
	}
	if err := textio.TrimTrailingTerminator(path, enc); err != nil {
		return classifyTargetError(err)
	}
	s.sink.FileCreated(path)
	result.CreatedFiles = append(result.CreatedFiles, path)
	return nil
}

// writeTarget writes one target file and returns the number of content
// lines copied into it. The file handle is closed on every path.
func (s *Service) writeTarget(
	path string,
	enc encoding.Encoding,
	title string,
	reader *textio.LineReader,
	quota int,
) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTargetWrite, err)
	}
	writer := textio.NewLineWriter(f, enc)

	s.sink.TaskStarted(taskReadWrite)
	written, copyErr := copyLines(writer, title, reader, quota)
	s.sink.TaskFinished(taskReadWrite)

	closeErr := writer.Close()
	if copyErr != nil {
		return written, copyErr
	}
	if closeErr != nil {
		return written, classifyTargetError(closeErr)
	}
	return written, nil
}

// copyLines writes the title (when present) followed by up to quota
// source lines, stopping early when the source is exhausted.
func copyLines(writer *textio.LineWriter, title string, reader *textio.LineReader, quota int) (int, error) {
	if title != "" {
		if err := writer.WriteString(title); err != nil {
			return 0, classifyTargetError(err)
		}
	}
	written := 0
	for written < quota {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, classifySourceError(err)
		}
		if err := writer.WriteString(line); err != nil {
			return written, classifyTargetError(err)
		}
		written++
	}
	return written, nil
}

// readTitle consumes and returns the source's first line when title
// mode is on. An empty source yields an empty title.
func readTitle(reader *textio.LineReader, titleMode bool) (string, error) {
	if !titleMode {
		return "", nil
	}
	title, err := reader.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", classifySourceError(err)
	}
	return title, nil
}

// openSource opens the source file read-only, mapping open failures to
// the domain's source errors.
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)
	}
	return f, nil
}

// classifySourceError maps a read-path failure onto the domain errors.
// Errors surfaced by the file itself are I/O faults; anything else came
// out of the decoding transform.
func classifySourceError(err error) error {
	if isDomainError(err) {
		return err
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrEncoding, err)
}

// classifyTargetError maps a write-path failure onto the domain errors.
func classifyTargetError(err error) error {
	if isDomainError(err) {
		return err
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %v", domain.ErrTargetWrite, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrEncoding, err)
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrSourceNotFound) ||
		errors.Is(err, domain.ErrSourceUnreadable) ||
		errors.Is(err, domain.ErrUnknownEncoding) ||
		errors.Is(err, domain.ErrEncoding) ||
		errors.Is(err, domain.ErrTargetWrite)
}
