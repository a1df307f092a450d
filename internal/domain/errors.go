package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrSessionNotFound     = errors.New("reconciliation session not found")
	ErrSessionPhase        = errors.New("operation not valid in current session phase")
	ErrDecisionNotFound    = errors.New("no decision exists for this item")
	ErrNameRequired        = errors.New("name is required")
	ErrSubtypeRequired     = errors.New("material subtype is required")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrInvalidUnitCost     = errors.New("unit cost is not a valid amount")
	ErrNoLinkTarget        = errors.New("no existing record selected to link")
	ErrNotReconciled       = errors.New("session has not completed reconciliation")
	ErrParseFailed         = errors.New("invoice parsing failed")
)
