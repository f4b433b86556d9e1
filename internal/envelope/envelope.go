// Package envelope unwraps the compressed envelopes web builds ship their
// bundles in and lists the members of zip archives.
package envelope

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"

	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// DefaultMaxBytes bounds decompressed output when no limit is configured.
const DefaultMaxBytes int64 = 512 << 20

var (
	// ErrNotEnvelope is returned when a stream's format is not a compressed envelope.
	ErrNotEnvelope = errors.New("not a compressed envelope")

	// ErrTooLarge is returned when decompressed output exceeds the configured limit.
	ErrTooLarge = errors.New("decompressed envelope exceeds size limit")
)

// Unwrapper decompresses GZip and Brotli envelopes into in-memory streams.
type Unwrapper struct {
	maxBytes int64
}

// NewUnwrapper creates an unwrapper whose output is limited to maxBytes.
// A non-positive limit uses DefaultMaxBytes.
func NewUnwrapper(maxBytes int64) *Unwrapper {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Unwrapper{maxBytes: maxBytes}
}

// MaxBytes returns the output limit.
func (u *Unwrapper) MaxBytes() int64 {
	return u.maxBytes
}

// Unwrap decompresses r according to its classification. The returned
// stream keeps r's byte order and starts at offset 0; r is left at offset 0.
func (u *Unwrapper) Unwrap(r *stream.Reader, t types.FileType) (*stream.Reader, error) {
	switch t {
	case types.FileTypeGZip:
		return u.UnwrapGZip(r)
	case types.FileTypeBrotli:
		return u.UnwrapBrotli(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotEnvelope, t)
	}
}

// UnwrapGZip decompresses a gzip stream.
func (u *Unwrapper) UnwrapGZip(r *stream.Reader) (*stream.Reader, error) {
	if err := r.Rewind(); err != nil {
		return nil, err
	}
	defer r.Rewind()

	zr, err := gzip.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	defer zr.Close()

	data, err := u.readAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip decompression failed: %w", err)
	}
	return stream.NewBytesReader(data, r.Endian()), nil
}

// UnwrapBrotli decompresses a brotli stream.
func (u *Unwrapper) UnwrapBrotli(r *stream.Reader) (*stream.Reader, error) {
	if err := r.Rewind(); err != nil {
		return nil, err
	}
	defer r.Rewind()

	data, err := u.readAll(brotli.NewReader(bufio.NewReader(r)))
	if err != nil {
		return nil, fmt.Errorf("brotli decompression failed: %w", err)
	}
	return stream.NewBytesReader(data, r.Endian()), nil
}

func (u *Unwrapper) readAll(src io.Reader) ([]byte, error) {
	var out bytes.Buffer
	n, err := out.ReadFrom(io.LimitReader(src, u.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if n > u.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, u.maxBytes)
	}
	return out.Bytes(), nil
}
