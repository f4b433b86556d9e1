package detect

import (
	"log/slog"

	"github.com/deploymenttheory/go-assetprobe/internal/stream"
)

// SerializedHeader is the leading header of a serialized object-graph file.
// From version 22 the size fields are 64-bit and follow the narrow header.
type SerializedHeader struct {
	MetadataSize uint32
	FileSize     int64
	Version      uint32
	DataOffset   int64
	Endianness   byte
	Reserved     [3]byte
}

// ReadSerializedHeader parses the header at offset 0 and rewinds the cursor.
// It fails with stream.ErrTruncated when the stream is too short for the
// header layout implied by its version.
func ReadSerializedHeader(r *stream.Reader) (*SerializedHeader, error) {
	defer r.Rewind()
	if err := r.Rewind(); err != nil {
		return nil, err
	}

	h := &SerializedHeader{}
	var err error
	if h.MetadataSize, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	fileSize, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.FileSize = int64(fileSize)
	if h.Version, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	dataOffset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	h.DataOffset = int64(dataOffset)
	if h.Endianness, err = r.ReadByte(); err != nil {
		return nil, err
	}
	reserved, err := r.ReadBytes(3)
	if err != nil {
		return nil, err
	}
	copy(h.Reserved[:], reserved)

	if h.Version >= serializedWideVersion {
		if r.Len() < serializedHeaderWideSize {
			return nil, stream.ErrTruncated
		}
		if h.MetadataSize, err = r.ReadUint32(); err != nil {
			return nil, err
		}
		if h.FileSize, err = r.ReadInt64(); err != nil {
			return nil, err
		}
		if h.DataOffset, err = r.ReadInt64(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// IsSerializedFile reports whether r starts with an internally consistent
// serialized-file header: the declared file size equals the stream length and
// the data offset lies within the stream. The cursor is left at offset 0.
func IsSerializedFile(r *stream.Reader, logger *slog.Logger) (bool, *SerializedHeader) {
	if logger == nil {
		logger = slog.Default()
	}
	size := r.Len()
	if size < serializedHeaderMinSize {
		logger.Debug("stream too small for serialized file", "size", size, "min", serializedHeaderMinSize)
		r.Rewind()
		return false, nil
	}

	h, err := ReadSerializedHeader(r)
	if err != nil {
		logger.Debug("serialized header unreadable", "size", size, "error", err)
		return false, nil
	}
	if h.FileSize != size {
		logger.Debug("declared file size does not match stream", "declared", h.FileSize, "size", size)
		return false, h
	}
	if h.DataOffset > size {
		logger.Debug("data offset beyond stream", "offset", h.DataOffset, "size", size)
		return false, h
	}
	logger.Debug("valid serialized file", "version", h.Version)
	return true, h
}
