package transform

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/detect"
	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// ErrTransformFailed marks errors raised by a publisher transform.
var ErrTransformFailed = errors.New("transform failed")

// TransformError reports a failed publisher transform with the offending file.
type TransformError struct {
	Publisher types.PublisherID
	Path      string
	Err       error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s failed for %s: %v", e.Publisher.Ident(), e.Path, e.Err)
}

// Unwrap returns the error raised by the transform.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransformFailed.
func (e *TransformError) Is(target error) bool {
	return target == ErrTransformFailed
}

// Dispatcher decides whether a classified stream needs a publisher
// transform, applies it, and re-probes the result for block files.
type Dispatcher struct {
	table    *Table
	detector *detect.Detector
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over table. A nil table uses DefaultTable
// and a nil logger uses slog.Default().
func NewDispatcher(table *Table, logger *slog.Logger) *Dispatcher {
	if table == nil {
		table = DefaultTable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		table:    table,
		detector: detect.NewDetector(logger),
		logger:   logger,
	}
}

// Preprocess applies the publisher transform when the stream is unrecognized
// or the publisher obfuscates its files, then checks whether a bundle is a
// block file holding several bundles. Transform errors are returned as
// *TransformError; errors while probing for a block file are ignored.
func (d *Dispatcher) Preprocess(f *stream.File, cfg cipher.Config) (*stream.File, error) {
	publisher := cfg.Publisher()
	logger := d.logger.With("file", f.FileName, "publisher", publisher.Ident())
	logger.Debug("preprocessing file", "type", f.Type)

	if f.Type == types.FileTypeResource || !cipher.IsPlain(publisher) {
		if fn, ok := d.table.Lookup(publisher); ok {
			logger.Debug("applying publisher transform")
			if err := f.Rewind(); err != nil {
				return nil, &TransformError{Publisher: publisher, Path: f.FullPath, Err: err}
			}
			out, err := fn(f.Reader, cfg)
			if err != nil {
				return nil, &TransformError{Publisher: publisher, Path: f.FullPath, Err: err}
			}
			if out == nil {
				return nil, &TransformError{Publisher: publisher, Path: f.FullPath, Err: errors.New("transform returned no stream")}
			}
			f = f.WithReader(out, d.detector.Classify(out))
			logger.Debug("transformed stream reclassified", "type", f.Type, "size", out.Len())
		}
	}

	return d.DetectBlock(f, cfg), nil
}

// DetectBlock marks f as a block file when its format may hold several
// bundles and the bundle prologue at the current position declares a size
// other than the stream length. Parse errors leave the type unchanged. The
// cursor is rewound to 0 whenever the prologue is read.
func (d *Dispatcher) DetectBlock(f *stream.File, cfg cipher.Config) *stream.File {
	publisher := cfg.Publisher()
	if !(f.Type == types.FileTypeBundle && cipher.IsBlockCapable(publisher)) &&
		f.Type != types.FileTypeENCR && f.Type != types.FileTypeBlb {
		return f
	}

	logger := d.logger.With("file", f.FileName, "publisher", publisher.Ident())
	logger.Debug("file may hold several bundles")
	if size, signature, err := declaredBundleSize(f.Reader); err == nil && size != f.Len() {
		logger.Debug("declared bundle size differs from stream, loading as block file",
			"signature", signature, "declared", size, "actual", f.Len())
		f.Type = types.FileTypeBlock
	}
	f.Rewind()
	return f
}

// declaredBundleSize reads the bundle prologue from the current position:
// signature, format version, two version strings and the total size.
func declaredBundleSize(r *stream.Reader) (int64, string, error) {
	signature, err := r.ReadCString(stream.DefaultMaxStringLength)
	if err != nil {
		return 0, "", err
	}
	if _, err := r.ReadInt32(); err != nil {
		return 0, signature, err
	}
	if _, err := r.ReadCString(stream.DefaultMaxStringLength); err != nil {
		return 0, signature, err
	}
	if _, err := r.ReadCString(stream.DefaultMaxStringLength); err != nil {
		return 0, signature, err
	}
	size, err := r.ReadInt64()
	return size, signature, err
}
