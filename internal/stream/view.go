package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a read would cross the end of a bounded view.
var ErrOutOfRange = errors.New("read beyond end of object")

// View is a read-only window over [start, start+size) of a parent Reader.
// It shares the parent's cursor and byte order.
type View struct {
	r     *Reader
	start int64
	size  uint32
}

// NewView creates a window over the parent stream. Start and size come
// verbatim from object metadata; the cursor is positioned at start.
func NewView(r *Reader, start int64, size uint32) (*View, error) {
	if start < 0 || start+int64(size) > r.Len() {
		return nil, fmt.Errorf("%w: object [0x%X, +0x%X) exceeds stream length 0x%X", ErrOutOfRange, start, size, r.Len())
	}
	v := &View{r: r, start: start, size: size}
	if err := v.Reset(); err != nil {
		return nil, err
	}
	return v, nil
}

// Start returns the absolute offset of the window.
func (v *View) Start() int64 { return v.start }

// Size returns the length of the window.
func (v *View) Size() uint32 { return v.size }

// Endian returns the byte order inherited from the parent stream.
func (v *View) Endian() binary.ByteOrder { return v.r.Endian() }

// Position returns the cursor offset relative to the window start.
func (v *View) Position() int64 { return v.r.Position() - v.start }

// Remaining returns the number of bytes left before the window end.
func (v *View) Remaining() int64 {
	return int64(v.size) - v.Position()
}

// Reset moves the cursor to the window start.
func (v *View) Reset() error {
	return v.r.Seek(v.start)
}

func (v *View) check(n int) error {
	pos := v.Position()
	if pos < 0 || pos+int64(n) > int64(v.size) {
		return fmt.Errorf("%w: %d bytes at 0x%X, object size 0x%X", ErrOutOfRange, n, pos, v.size)
	}
	return nil
}

// Read implements io.Reader. A read that would cross the window end fails without reading.
func (v *View) Read(p []byte) (int, error) {
	if err := v.check(len(p)); err != nil {
		return 0, err
	}
	return v.r.Read(p)
}

// ReadBytes reads exactly n bytes inside the window.
func (v *View) ReadBytes(n int) ([]byte, error) {
	if err := v.check(n); err != nil {
		return nil, err
	}
	return v.r.ReadBytes(n)
}

// ReadUint32 reads a 32-bit unsigned integer inside the window.
func (v *View) ReadUint32() (uint32, error) {
	if err := v.check(4); err != nil {
		return 0, err
	}
	return v.r.ReadUint32()
}

// ReadInt32 reads a 32-bit signed integer inside the window.
func (v *View) ReadInt32() (int32, error) {
	if err := v.check(4); err != nil {
		return 0, err
	}
	return v.r.ReadInt32()
}

// ReadUint64 reads a 64-bit unsigned integer inside the window.
func (v *View) ReadUint64() (uint64, error) {
	if err := v.check(8); err != nil {
		return 0, err
	}
	return v.r.ReadUint64()
}

// ReadInt64 reads a 64-bit signed integer inside the window.
func (v *View) ReadInt64() (int64, error) {
	if err := v.check(8); err != nil {
		return 0, err
	}
	return v.r.ReadInt64()
}
