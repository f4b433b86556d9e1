// Package detect classifies raw streams by container format.
//
// Classification is an ordered, short-circuiting cascade of string, byte and
// structural probes. It never fails: unrecognized or malformed input is a
// resource file. Every exit restores the cursor to offset 0 except the
// 9-byte prefixed bundle, which leaves the cursor at the start of the bundle.
package detect

import (
	"bytes"
	"encoding/hex"
	"log/slog"

	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// Detector runs the signature cascade.
type Detector struct {
	logger *slog.Logger
}

// NewDetector creates a detector that logs probe decisions at debug level.
// A nil logger uses slog.Default().
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// Classify returns the container format of r.
func (d *Detector) Classify(r *stream.Reader) types.FileType {
	t := d.classify(r)
	d.logger.Debug("classified stream", "type", t, "position", r.Position())
	return t
}

func (d *Detector) classify(r *stream.Reader) types.FileType {
	if err := r.Rewind(); err != nil {
		d.logger.Debug("stream not seekable", "error", err)
		return types.FileTypeResource
	}

	signature, err := r.ReadCString(signatureMaxLength)
	r.Rewind()
	if err == nil {
		d.logger.Debug("parsed string signature", "signature", signature)
		switch signature {
		case "UnityWeb", "UnityRaw", "UnityArchive", "UnityFS":
			return types.FileTypeBundle
		case "UnityWebData1.0":
			return types.FileTypeWeb
		case "blk":
			return types.FileTypeBlk
		case "ENCR":
			return types.FileTypeENCR
		}
	}
	d.logger.Debug("string signature did not match, checking byte signatures")

	if d.match(r, 0, gzipMagic, 0) {
		return types.FileTypeGZip
	}
	if d.match(r, brotliMagicOffset, brotliMagic, 0) {
		return types.FileTypeBrotli
	}

	if valid, _ := IsSerializedFile(r, d.logger); valid {
		return types.FileTypeAssets
	}

	magic, _ := r.PeekAt(0, 4, 0)
	d.logHex(magic)
	switch {
	case bytes.Equal(magic, zipMagic), bytes.Equal(magic, zipSpannedMagic):
		return types.FileTypeZip
	case bytes.Equal(magic, mhy0Magic):
		return types.FileTypeMhy
	case bytes.Equal(magic, blbMagic):
		return types.FileTypeBlb
	}

	if d.match(r, 0, narakaMagic, 0) {
		return types.FileTypeBundle
	}
	if d.match(r, 0, gunfireMagic, gunfireDataOffset) {
		return types.FileTypeBundle
	}

	d.logger.Debug("no signature matched, assuming resource file")
	return types.FileTypeResource
}

// match compares len(want) bytes at offset. On a match the cursor is left at
// onMatch, otherwise at 0. A short read is a mismatch.
func (d *Detector) match(r *stream.Reader, offset int64, want []byte, onMatch int64) bool {
	got, err := r.PeekAt(offset, len(want), 0)
	if err != nil {
		return false
	}
	d.logHex(got)
	if !bytes.Equal(got, want) {
		return false
	}
	if onMatch != 0 {
		r.Seek(onMatch)
	}
	return true
}

func (d *Detector) logHex(b []byte) {
	if len(b) > 0 {
		d.logger.Debug("parsed byte signature", "signature", hex.EncodeToString(b))
	}
}

// Classify runs the cascade with the default logger.
func Classify(r *stream.Reader) types.FileType {
	return NewDetector(nil).Classify(r)
}
