package valueobject

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultSeparator joins the source's stem and the sequence index in
// target file names.
const DefaultSeparator = "_"

// TargetNameTemplate derives target file paths from a source path. The
// target base name is the source's stem, a separator and the decimal
// sequence index, followed by the source's original extension. Output
// files live in the source's own directory unless a target directory
// was supplied.
type TargetNameTemplate struct {
	dir       string
	stem      string
	ext       string
	separator string
}

// NewTargetNameTemplate builds a template for the given source path.
// targetDir, when non-empty, replaces the source's directory; separator
// defaults to DefaultSeparator when empty.
func NewTargetNameTemplate(sourcePath, targetDir, separator string) TargetNameTemplate {
	dir, file := filepath.Split(sourcePath)
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	if stem == "" {
		// Dotfiles such as ".env" keep their full name as the stem.
		stem, ext = ext, ""
	}
	if targetDir != "" {
		dir = targetDir
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	return TargetNameTemplate{dir: dir, stem: stem, ext: ext, separator: separator}
}

// PathFor returns the target path for a 1-based sequence index. Distinct
// indices map to distinct paths within one run.
func (t TargetNameTemplate) PathFor(index int) string {
	name := fmt.Sprintf("%s%s%d%s", t.stem, t.separator, index, t.ext)
	return filepath.Join(t.dir, name)
}
