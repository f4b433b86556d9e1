// Package pipeline is the entry point that turns a path and a publisher into
// a classified, preprocessed stream ready for the container readers.
package pipeline

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/detect"
	"github.com/deploymenttheory/go-assetprobe/internal/envelope"
	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/transform"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// Classified is a stream paired with its current format and file identity.
type Classified = stream.File

// Error reports a failure for one file under one publisher.
type Error struct {
	Path      string
	Publisher string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (publisher %s): %v", e.Path, e.Publisher, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options configures a Pipeline. Zero values select the defaults.
type Options struct {
	Registry *cipher.Registry
	Table    *transform.Table
	Logger   *slog.Logger

	// UnwrapEnvelopes decompresses GZip and Brotli streams and classifies
	// their content once more.
	UnwrapEnvelopes   bool
	MaxUnwrappedBytes int64
}

// Pipeline classifies and preprocesses streams. It holds no per-stream
// state and may be shared by concurrent callers.
type Pipeline struct {
	registry   *cipher.Registry
	detector   *detect.Detector
	dispatcher *transform.Dispatcher
	unwrapper  *envelope.Unwrapper
	logger     *slog.Logger
}

// New creates a pipeline from opts.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = cipher.Default()
	}

	p := &Pipeline{
		registry:   registry,
		detector:   detect.NewDetector(logger),
		dispatcher: transform.NewDispatcher(opts.Table, logger),
		logger:     logger,
	}
	if opts.UnwrapEnvelopes {
		p.unwrapper = envelope.NewUnwrapper(opts.MaxUnwrappedBytes)
	}
	return p
}

var defaultPipeline = New(Options{UnwrapEnvelopes: true})

// Open classifies the file at path with the default pipeline.
func Open(path string, publisher types.PublisherID) (*Classified, error) {
	return defaultPipeline.Open(path, publisher)
}

// OpenReader classifies rs with the default pipeline.
func OpenReader(path string, rs io.ReadSeeker, publisher types.PublisherID) (*Classified, error) {
	return defaultPipeline.OpenReader(path, rs, publisher)
}

// Registry returns the registry used for publisher lookups.
func (p *Pipeline) Registry() *cipher.Registry {
	return p.registry
}

// Publisher resolves a publisher display name or ASCII identifier.
func (p *Pipeline) Publisher(name string) (types.PublisherID, error) {
	cfg, ok := p.registry.LookupByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", cipher.ErrUnsupportedPublisher, name)
	}
	return cfg.Publisher(), nil
}

// Open opens path and classifies it for publisher. On success the caller
// owns the returned stream and must Close it.
func (p *Pipeline) Open(path string, publisher types.PublisherID) (*Classified, error) {
	cfg, err := p.registry.Lookup(publisher)
	if err != nil {
		return nil, wrap(path, publisher, err)
	}
	r, err := stream.Open(path)
	if err != nil {
		return nil, wrap(path, publisher, err)
	}
	f, err := p.process(path, r, cfg)
	if err != nil {
		r.Close()
		return nil, err
	}
	return f, nil
}

// OpenReader classifies rs, identified by path, for publisher.
func (p *Pipeline) OpenReader(path string, rs io.ReadSeeker, publisher types.PublisherID) (*Classified, error) {
	cfg, err := p.registry.Lookup(publisher)
	if err != nil {
		return nil, wrap(path, publisher, err)
	}
	r, err := stream.NewReader(rs, binary.BigEndian)
	if err != nil {
		return nil, wrap(path, publisher, err)
	}
	return p.process(path, r, cfg)
}

// process classifies and preprocesses r, then unwraps at most one envelope
// and classifies its content again.
func (p *Pipeline) process(path string, r *stream.Reader, cfg cipher.Config) (*Classified, error) {
	f := stream.NewFile(path, r, p.detector.Classify(r))
	p.logger.Debug("classified file", "file", f.FileName, "type", f.Type)

	f, err := p.dispatcher.Preprocess(f, cfg)
	if err != nil {
		return nil, wrap(path, cfg.Publisher(), err)
	}
	if p.unwrapper == nil || !f.Type.IsEnvelope() {
		return f, nil
	}

	out, err := p.unwrapper.Unwrap(f.Reader, f.Type)
	if err != nil {
		return nil, wrap(path, cfg.Publisher(), err)
	}
	p.logger.Debug("unwrapped envelope", "file", f.FileName, "envelope", f.Type, "size", out.Len())
	f.Close()

	// The publisher transform already ran on the envelope; only block
	// detection applies to its content.
	return p.dispatcher.DetectBlock(f.WithReader(out, p.detector.Classify(out)), cfg), nil
}

func wrap(path string, publisher types.PublisherID, err error) error {
	return &Error{Path: path, Publisher: publisher.Ident(), Err: err}
}
