package classify

import (
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

// Validate validates a classification request
func (r *Request) Validate() error {
	if len(r.Paths) == 0 {
		return app.NewError(app.ErrCodeInvalidInput, "at least one path is required", nil)
	}
	for _, p := range r.Paths {
		if p == "" {
			return app.NewError(app.ErrCodeInvalidInput, "paths cannot be empty", nil)
		}
	}
	if r.Publisher == "" {
		return app.NewError(app.ErrCodeInvalidInput, "publisher is required", nil)
	}
	if r.Workers < 1 || r.Workers > 256 {
		return app.NewError(app.ErrCodeInvalidInput, "workers must be between 1 and 256", nil)
	}
	if r.UnwrapEnvelopes && r.MaxUnwrappedBytes < 1 {
		return app.NewError(app.ErrCodeInvalidInput, "max unwrapped bytes must be positive", nil)
	}
	return nil
}
