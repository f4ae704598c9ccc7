// server/internal/queue/errors.go
package queue

import "errors"

var (
	ErrInvalidSplit  = errors.New("lane percentages must sum to 100")
	ErrInvalidQuota  = errors.New("total daily quota must be greater than zero")
	ErrInvalidLane   = errors.New("unknown lane type")
	ErrInvalidStatus = errors.New("unknown entry status")
	ErrLaneClosed    = errors.New("lane closed, quota full")
	ErrEntryNotFound = errors.New("queue entry not found")
)
