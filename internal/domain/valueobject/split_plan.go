package valueobject

import (
	"fmt"

	"splitfile/internal/domain/errors/domain"
)

// SplitMode identifies the partitioning strategy of a split plan.
type SplitMode string

const (
	// ModeByLineCount splits the source every N lines.
	ModeByLineCount SplitMode = "by_line_count"
	// ModeByFileCount splits the source into N balanced files.
	ModeByFileCount SplitMode = "by_file_count"
)

// SplitPlan is the user's choice of partitioning strategy together with
// its single numeric parameter. Exactly one strategy is selected per run.
type SplitPlan struct {
	mode SplitMode
	n    int
}

// NewLineCountPlan creates a plan that emits a new target file every
// nlines source lines.
func NewLineCountPlan(nlines int) (SplitPlan, error) {
	if nlines <= 0 {
		return SplitPlan{}, fmt.Errorf("%w: not a positive integer: %d", domain.ErrInvalidSplitPlan, nlines)
	}
	return SplitPlan{mode: ModeByLineCount, n: nlines}, nil
}

// NewFileCountPlan creates a plan that distributes the source's lines as
// evenly as possible across nfiles target files.
func NewFileCountPlan(nfiles int) (SplitPlan, error) {
	if nfiles <= 0 {
		return SplitPlan{}, fmt.Errorf("%w: not a positive integer: %d", domain.ErrInvalidSplitPlan, nfiles)
	}
	return SplitPlan{mode: ModeByFileCount, n: nfiles}, nil
}

// Mode returns the partitioning strategy.
func (p SplitPlan) Mode() SplitMode {
	return p.mode
}

// Count returns the plan's numeric parameter: lines per file for
// ModeByLineCount, number of files for ModeByFileCount.
func (p SplitPlan) Count() int {
	return p.n
}

// IsZero reports whether the plan was never constructed through a
// validating constructor.
func (p SplitPlan) IsZero() bool {
	return p.mode == ""
}

// String returns a human-readable representation of the plan.
func (p SplitPlan) String() string {
	switch p.mode {
	case ModeByLineCount:
		return fmt.Sprintf("%d lines per file", p.n)
	case ModeByFileCount:
		return fmt.Sprintf("%d files", p.n)
	default:
		return "unspecified"
	}
}
