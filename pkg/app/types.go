package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/config"
	"github.com/deploymenttheory/go-assetprobe/internal/resourcemap"
	"github.com/deploymenttheory/go-assetprobe/internal/transform"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// ProgressUpdate represents progress information
type ProgressUpdate struct {
	Message     string
	Completed   int64
	Total       int64
	StartedAt   time.Time
	ElapsedTime time.Duration
}

// Percent calculates completion percentage
func (p *ProgressUpdate) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int((p.Completed * 100) / p.Total)
}

// Rate calculates items per second
func (p *ProgressUpdate) Rate() float64 {
	if p.ElapsedTime == 0 {
		return 0
	}
	return float64(p.Completed) / p.ElapsedTime.Seconds()
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeUnsupportedPublisher = "UNSUPPORTED_PUBLISHER"
	ErrCodeTransformFailed      = "TRANSFORM_FAILED"
	ErrCodeMalformedConfig      = "MALFORMED_CONFIG"
	ErrCodeFileAccess           = "FILE_ACCESS"
	ErrCodeInternal             = "INTERNAL"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapError picks the error code matching the sentinel found in cause.
// A cause that already is a CommonError is returned as is.
func WrapError(message string, cause error) *CommonError {
	var ce *CommonError
	if errors.As(cause, &ce) {
		return ce
	}
	return NewError(ErrorCode(cause), message, cause)
}

// ErrorCode maps package sentinels to error codes.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, types.ErrUnsupportedPublisher):
		return ErrCodeUnsupportedPublisher
	case errors.Is(err, transform.ErrTransformFailed):
		return ErrCodeTransformFailed
	case errors.Is(err, cipher.ErrMalformedConfig),
		errors.Is(err, config.ErrInvalid),
		errors.Is(err, resourcemap.ErrCorrupt):
		return ErrCodeMalformedConfig
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ErrCodeFileAccess
	default:
		return ErrCodeInternal
	}
}
