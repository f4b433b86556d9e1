package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr string
	}{
		{"valid", func(*Request) {}, ""},
		{"no paths", func(r *Request) { r.Paths = nil }, "at least one path is required"},
		{"empty path", func(r *Request) { r.Paths = []string{"a", ""} }, "paths cannot be empty"},
		{"no publisher", func(r *Request) { r.Publisher = "" }, "publisher is required"},
		{"zero workers", func(r *Request) { r.Workers = 0 }, "workers must be between 1 and 256"},
		{"too many workers", func(r *Request) { r.Workers = 257 }, "workers must be between 1 and 256"},
		{"no unwrap limit", func(r *Request) { r.MaxUnwrappedBytes = 0 }, "max unwrapped bytes must be positive"},
		{"limit ignored without unwrap", func(r *Request) { r.MaxUnwrappedBytes, r.UnwrapEnvelopes = 0, false }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest("data/level0.bundle")
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var ce *app.CommonError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, app.ErrCodeInvalidInput, ce.Code)
		})
	}
}
