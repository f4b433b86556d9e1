package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool
	Out          io.Writer

	// RunID tags every log record of one invocation
	RunID  string
	Logger *slog.Logger

	// Progress reporting
	ProgressCallback func(message string, percent int)
}

// NewContext creates a new application context
func NewContext() *Context {
	c := &Context{
		Context:      context.Background(),
		OutputFormat: "table",
		Out:          os.Stdout,
		RunID:        uuid.NewString(),
	}
	c.SetupLogger(os.Stderr)
	return c
}

// SetupLogger points the logger at w with a level derived from Verbose and Quiet.
func (c *Context) SetupLogger(w io.Writer) {
	level := slog.LevelInfo
	switch {
	case c.Quiet:
		level = slog.LevelError
	case c.Verbose:
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	c.Logger = slog.New(handler).With("run", c.RunID)
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Log records a debug message, shown with --verbose
func (c *Context) Log(message string, args ...any) {
	c.Logger.Debug(message, args...)
}

// Error records an error message unless quiet
func (c *Context) Error(message string, args ...any) {
	c.Logger.Error(message, args...)
}
