// Package domain provides domain-specific error definitions and utilities.
package domain

import "errors"

// Split-plan errors.
var (
	ErrInvalidSplitPlan = errors.New("invalid split plan")
)

// Source-file errors.
var (
	ErrSourceNotFound   = errors.New("source file not found")
	ErrSourceUnreadable = errors.New("source file is not readable")
)

// Encoding errors.
var (
	ErrUnknownEncoding = errors.New("unknown text encoding")
	ErrEncoding        = errors.New("content not representable in target encoding")
)

// Target-file errors.
var (
	ErrTargetWrite = errors.New("target file write failed")
)
