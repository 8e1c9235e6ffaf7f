package splitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"splitfile/internal/domain/errors/domain"
	"splitfile/internal/domain/valueobject"
)

// recordingSink captures progress notifications for assertions.
type recordingSink struct {
	started  []string
	finished []string
	created  []string
}

func (r *recordingSink) TaskStarted(name string)  { r.started = append(r.started, name) }
func (r *recordingSink) TaskFinished(name string) { r.finished = append(r.finished, name) }
func (r *recordingSink) FileCreated(path string)  { r.created = append(r.created, path) }

func newTestService(t *testing.T) (*Service, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	service, err := NewService(sink)
	require.NoError(t, err)
	return service, sink
}

// writeSource materializes a source file with the given number of lines
// ("line 1\n" .. "line n\n") in a fresh temp directory.
func writeSource(t *testing.T, lines int) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return writeSourceContent(t, b.String())
}

func writeSourceContent(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

// contentLines splits a trimmed target file into its lines.
func contentLines(t *testing.T, path string) []string {
	t.Helper()
	content := readFile(t, path)
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func linePlan(t *testing.T, n int) valueobject.SplitPlan {
	t.Helper()
	plan, err := valueobject.NewLineCountPlan(n)
	require.NoError(t, err)
	return plan
}

func filePlan(t *testing.T, n int) valueobject.SplitPlan {
	t.Helper()
	plan, err := valueobject.NewFileCountPlan(n)
	require.NoError(t, err)
	return plan
}

func TestSplitByLines_SevenLinesByThree(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 7)

	result, err := service.Split(context.Background(), Options{SourcePath: source}, linePlan(t, 3))
	require.NoError(t, err)

	dir := filepath.Dir(source)
	require.Equal(t, []string{
		filepath.Join(dir, "source_1.txt"),
		filepath.Join(dir, "source_2.txt"),
		filepath.Join(dir, "source_3.txt"),
	}, result.CreatedFiles)
	assert.Equal(t, 7, result.LinesWritten)

	assert.Equal(t, "line 1\nline 2\nline 3", readFile(t, result.CreatedFiles[0]))
	assert.Equal(t, "line 4\nline 5\nline 6", readFile(t, result.CreatedFiles[1]))
	assert.Equal(t, "line 7", readFile(t, result.CreatedFiles[2]))
}

func TestSplitByLines_FileCountIsCeilOfDivision(t *testing.T) {
	tests := []struct {
		lines    int
		perFile  int
		expected int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{9, 3, 3},
		{10, 3, 4},
		{5, 1, 5},
		{2, 100, 1},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_lines_by_%d", tc.lines, tc.perFile), func(t *testing.T) {
			service, _ := newTestService(t)
			source := writeSource(t, tc.lines)

			result, err := service.Split(context.Background(), Options{SourcePath: source}, linePlan(t, tc.perFile))
			require.NoError(t, err)
			require.Len(t, result.CreatedFiles, tc.expected)

			// Every file except possibly the last holds exactly perFile
			// lines; the last holds the remainder, never zero.
			for i, path := range result.CreatedFiles {
				lines := contentLines(t, path)
				if i < len(result.CreatedFiles)-1 {
					assert.Len(t, lines, tc.perFile)
				} else {
					assert.NotEmpty(t, lines)
					assert.LessOrEqual(t, len(lines), tc.perFile)
				}
			}
		})
	}
}

func TestSplitByFiles_TenLinesByThree(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 10)

	result, err := service.Split(context.Background(), Options{SourcePath: source}, filePlan(t, 3))
	require.NoError(t, err)
	require.Len(t, result.CreatedFiles, 3)

	assert.Len(t, contentLines(t, result.CreatedFiles[0]), 4, "first file carries the remainder line")
	assert.Len(t, contentLines(t, result.CreatedFiles[1]), 3)
	assert.Len(t, contentLines(t, result.CreatedFiles[2]), 3)
	assert.Equal(t, 10, result.LinesWritten)
}

func TestSplitByFiles_BalancedDistribution(t *testing.T) {
	tests := []struct {
		lines  int
		nfiles int
	}{
		{10, 3},
		{9, 3},
		{7, 2},
		{12, 5},
		{100, 7},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d_lines_into_%d_files", tc.lines, tc.nfiles), func(t *testing.T) {
			service, _ := newTestService(t)
			source := writeSource(t, tc.lines)

			result, err := service.Split(context.Background(), Options{SourcePath: source}, filePlan(t, tc.nfiles))
			require.NoError(t, err)
			require.Len(t, result.CreatedFiles, tc.nfiles)

			quotient := tc.lines / tc.nfiles
			remainder := tc.lines % tc.nfiles

			total := 0
			for i, path := range result.CreatedFiles {
				lines := contentLines(t, path)
				expected := quotient
				if i < remainder {
					expected++
				}
				assert.Len(t, lines, expected, "file %d", i+1)
				total += len(lines)
			}
			assert.Equal(t, tc.lines, total)
		})
	}
}

func TestSplitByFiles_FewerLinesThanFiles(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 2)

	result, err := service.Split(context.Background(), Options{SourcePath: source}, filePlan(t, 5))
	require.NoError(t, err)

	// min(F, L) files: later indices are simply never created.
	require.Len(t, result.CreatedFiles, 2)
	assert.Equal(t, "line 1", readFile(t, result.CreatedFiles[0]))
	assert.Equal(t, "line 2", readFile(t, result.CreatedFiles[1]))

	dir := filepath.Dir(source)
	_, err = os.Stat(filepath.Join(dir, "source_3.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestSplit_EmptySource(t *testing.T) {
	plans := map[string]valueobject.SplitPlan{
		"by lines": linePlan(t, 3),
		"by files": filePlan(t, 3),
	}

	for name, plan := range plans {
		t.Run(name, func(t *testing.T) {
			service, _ := newTestService(t)
			source := writeSourceContent(t, "")

			result, err := service.Split(context.Background(), Options{SourcePath: source}, plan)
			require.NoError(t, err)
			assert.Empty(t, result.CreatedFiles)
			assert.Zero(t, result.LinesWritten)
		})
	}
}

func TestSplit_ConcatenationReproducesSource(t *testing.T) {
	plans := map[string]valueobject.SplitPlan{
		"by lines": linePlan(t, 4),
		"by files": filePlan(t, 4),
	}

	for name, plan := range plans {
		t.Run(name, func(t *testing.T) {
			service, _ := newTestService(t)
			source := writeSource(t, 13)

			result, err := service.Split(context.Background(), Options{SourcePath: source}, plan)
			require.NoError(t, err)

			var all []string
			for _, path := range result.CreatedFiles {
				all = append(all, contentLines(t, path)...)
			}
			assert.Equal(t, strings.Split(strings.TrimSuffix(readFile(t, source), "\n"), "\n"), all)
		})
	}
}

func TestSplit_SourceWithoutTrailingTerminator(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSourceContent(t, "a\nb\nc")

	result, err := service.Split(context.Background(), Options{SourcePath: source}, linePlan(t, 2))
	require.NoError(t, err)
	require.Len(t, result.CreatedFiles, 2)

	assert.Equal(t, "a\nb", readFile(t, result.CreatedFiles[0]))
	assert.Equal(t, "c", readFile(t, result.CreatedFiles[1]))
}

func TestSplit_NoCreatedFileEndsWithTerminator(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 9)

	result, err := service.Split(context.Background(), Options{SourcePath: source}, filePlan(t, 4))
	require.NoError(t, err)
	require.NotEmpty(t, result.CreatedFiles)

	for _, path := range result.CreatedFiles {
		content := readFile(t, path)
		require.NotEmpty(t, content)
		last := content[len(content)-1]
		assert.NotEqual(t, byte('\n'), last, "%s ends with a terminator", path)
		assert.NotEqual(t, byte('\r'), last, "%s ends with a terminator", path)
	}
}

func TestSplit_TitleMode(t *testing.T) {
	t.Run("by lines", func(t *testing.T) {
		service, _ := newTestService(t)
		source := writeSourceContent(t, "HEADER\na\nb\nc\nd\ne\nf\n")

		result, err := service.Split(
			context.Background(),
			Options{SourcePath: source, Title: true},
			linePlan(t, 3),
		)
		require.NoError(t, err)
		require.Len(t, result.CreatedFiles, 2)

		// The title does not count against the per-file quota.
		assert.Equal(t, "HEADER\na\nb\nc", readFile(t, result.CreatedFiles[0]))
		assert.Equal(t, "HEADER\nd\ne\nf", readFile(t, result.CreatedFiles[1]))
		assert.Equal(t, 6, result.LinesWritten)
	})

	t.Run("by files", func(t *testing.T) {
		service, _ := newTestService(t)
		source := writeSourceContent(t, "HEADER\n"+strings.Repeat("x\n", 10))

		result, err := service.Split(
			context.Background(),
			Options{SourcePath: source, Title: true},
			filePlan(t, 3),
		)
		require.NoError(t, err)
		require.Len(t, result.CreatedFiles, 3)

		// 10 content lines into 3 files: 4, 3, 3 — plus the title each.
		assert.Len(t, contentLines(t, result.CreatedFiles[0]), 5)
		assert.Len(t, contentLines(t, result.CreatedFiles[1]), 4)
		assert.Len(t, contentLines(t, result.CreatedFiles[2]), 4)

		for _, path := range result.CreatedFiles {
			assert.Equal(t, "HEADER", contentLines(t, path)[0])
		}
	})

	t.Run("title-only source creates nothing", func(t *testing.T) {
		service, _ := newTestService(t)
		source := writeSourceContent(t, "HEADER\n")

		result, err := service.Split(
			context.Background(),
			Options{SourcePath: source, Title: true},
			linePlan(t, 3),
		)
		require.NoError(t, err)
		assert.Empty(t, result.CreatedFiles)
	})
}

func TestSplit_TargetDirectoryPlacement(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 4)
	targetDir := t.TempDir()

	result, err := service.Split(
		context.Background(),
		Options{SourcePath: source, TargetDir: targetDir},
		linePlan(t, 2),
	)
	require.NoError(t, err)
	require.Len(t, result.CreatedFiles, 2)

	for _, path := range result.CreatedFiles {
		assert.Equal(t, targetDir, filepath.Dir(path))
	}
}

func TestSplit_OverwritesExistingTargets(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 2)

	stale := filepath.Join(filepath.Dir(source), "source_1.txt")
	require.NoError(t, os.WriteFile(stale, []byte("stale content that is longer than the new one\n"), 0o644))

	_, err := service.Split(context.Background(), Options{SourcePath: source}, linePlan(t, 2))
	require.NoError(t, err)

	assert.Equal(t, "line 1\nline 2", readFile(t, stale))
}

func TestSplit_UTF16RoundTrip(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	encoded, err := enc.NewEncoder().Bytes([]byte("alpha\nbeta\ngamma\n"))
	require.NoError(t, err)

	service, _ := newTestService(t)
	source := writeSourceContent(t, string(encoded))

	result, err := service.Split(
		context.Background(),
		Options{SourcePath: source, Encoding: "UTF-16LE"},
		linePlan(t, 2),
	)
	require.NoError(t, err)
	require.Len(t, result.CreatedFiles, 2)

	first, err := enc.NewDecoder().Bytes([]byte(readFile(t, result.CreatedFiles[0])))
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta", string(first))

	second, err := enc.NewDecoder().Bytes([]byte(readFile(t, result.CreatedFiles[1])))
	require.NoError(t, err)
	assert.Equal(t, "gamma", string(second))
}

func TestSplit_ProgressReporting(t *testing.T) {
	service, sink := newTestService(t)
	source := writeSource(t, 10)

	result, err := service.Split(context.Background(), Options{SourcePath: source}, filePlan(t, 3))
	require.NoError(t, err)

	assert.Equal(t, result.CreatedFiles, sink.created)
	// One counting task plus one write task per created file, each
	// finished before the operation returned.
	assert.Len(t, sink.started, 1+len(result.CreatedFiles))
	assert.Equal(t, sink.started, sink.finished)
}

func TestSplit_Errors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Split(
			context.Background(),
			Options{SourcePath: filepath.Join(t.TempDir(), "absent.txt")},
			linePlan(t, 3),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		service, _ := newTestService(t)
		source := writeSource(t, 3)

		_, err := service.Split(
			context.Background(),
			Options{SourcePath: source, Encoding: "definitely-not-an-encoding"},
			linePlan(t, 3),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownEncoding)
	})

	t.Run("missing target directory", func(t *testing.T) {
		service, _ := newTestService(t)
		source := writeSource(t, 3)

		_, err := service.Split(
			context.Background(),
			Options{SourcePath: source, TargetDir: filepath.Join(t.TempDir(), "no-such-dir")},
			linePlan(t, 3),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTargetWrite)
	})

	t.Run("zero-value plan", func(t *testing.T) {
		service, _ := newTestService(t)
		source := writeSource(t, 3)

		_, err := service.Split(context.Background(), Options{SourcePath: source}, valueobject.SplitPlan{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidSplitPlan)
	})
}

func TestSplit_EarlierFilesSurviveFailure(t *testing.T) {
	service, _ := newTestService(t)
	source := writeSource(t, 6)

	// Make the third target path unusable by occupying it with a
	// directory; the first two files must stay on disk.
	dir := filepath.Dir(source)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "source_3.txt"), 0o755))

	_, err := service.Split(context.Background(), Options{SourcePath: source}, linePlan(t, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetWrite)

	assert.Equal(t, "line 1\nline 2", readFile(t, filepath.Join(dir, "source_1.txt")))
	assert.Equal(t, "line 3\nline 4", readFile(t, filepath.Join(dir, "source_2.txt")))
}
