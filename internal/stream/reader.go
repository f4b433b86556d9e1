package stream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxStringLength bounds null-terminated string reads when no explicit limit applies.
const DefaultMaxStringLength = 32767

// ErrTruncated is returned when fewer bytes remain than a read requires.
var ErrTruncated = errors.New("truncated stream")

// Reader is a seekable, endian-aware cursor over a byte source.
// A Reader is not safe for concurrent use; its position is shared state.
type Reader struct {
	rs     io.ReadSeeker
	closer io.Closer
	size   int64
	pos    int64
	endian binary.ByteOrder
}

// NewReader wraps a seekable source. The cursor is placed at offset 0.
func NewReader(rs io.ReadSeeker, endian binary.ByteOrder) (*Reader, error) {
	if rs == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine stream length: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind stream: %w", err)
	}
	r := &Reader{rs: rs, size: size, endian: endian}
	if c, ok := rs.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

// NewBytesReader returns a Reader over an in-memory buffer.
func NewBytesReader(data []byte, endian binary.ByteOrder) *Reader {
	return &Reader{rs: bytes.NewReader(data), size: int64(len(data)), endian: endian}
}

// Open opens a file for reading with big-endian byte order.
func Open(path string) (*Reader, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := NewReader(file, binary.BigEndian)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Len returns the length of the underlying source.
func (r *Reader) Len() int64 {
	return r.size
}

// Position returns the current absolute offset.
func (r *Reader) Position() int64 {
	return r.pos
}

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 {
		return fmt.Errorf("negative seek offset: %d", offset)
	}
	if _, err := r.rs.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek failed: %w", err)
	}
	r.pos = offset
	return nil
}

// Rewind moves the cursor back to offset 0.
func (r *Reader) Rewind() error {
	return r.Seek(0)
}

// Endian returns the byte order used for numeric reads.
func (r *Reader) Endian() binary.ByteOrder {
	return r.endian
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.rs.Read(p)
	r.pos += int64(n)
	return n, err
}

// ReadBytes reads exactly n bytes or fails with ErrTruncated.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length: %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: need %d bytes at offset 0x%X", ErrTruncated, n, r.pos)
		}
		return nil, err
	}
	return buf, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint32 reads a 32-bit unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.endian.Uint32(b), nil
}

// ReadInt32 reads a 32-bit signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a 64-bit unsigned integer.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.endian.Uint64(b), nil
}

// ReadInt64 reads a 64-bit signed integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadCString reads bytes until a zero terminator, the end of the stream,
// or maxLen bytes, whichever comes first. The terminator is consumed but not returned.
// Reaching the end of the stream is not an error.
func (r *Reader) ReadCString(maxLen int) (string, error) {
	var out []byte
	var one [1]byte
	for len(out) < maxLen && r.pos < r.size {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		if one[0] == 0 {
			break
		}
		out = append(out, one[0])
	}
	return string(out), nil
}

// PeekAt reads n bytes at an absolute offset and restores the cursor to restore.
func (r *Reader) PeekAt(offset int64, n int, restore int64) ([]byte, error) {
	defer r.Seek(restore)
	if err := r.Seek(offset); err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}

// Bytes returns the whole content of the stream. The cursor is left at offset 0.
func (r *Reader) Bytes() ([]byte, error) {
	if err := r.Rewind(); err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(int(r.size))
	if rerr := r.Rewind(); err == nil {
		err = rerr
	}
	return data, err
}

// Close releases the underlying source if it is closable.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
