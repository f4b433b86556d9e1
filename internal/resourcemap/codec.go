package resourcemap

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pierrec/lz4/v4"
)

// Core deterministic encoding: the same map always produces the same file.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("resourcemap: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1 << 24,
	}.DecMode()
	if err != nil {
		panic("resourcemap: CBOR decoder initialization failed: " + err.Error())
	}
}

// encode writes m as CBOR inside an LZ4 frame.
func encode(w io.Writer, m *Map) error {
	zw := lz4.NewWriter(w)
	if err := encMode.NewEncoder(zw).Encode(m); err != nil {
		return fmt.Errorf("cbor encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("lz4 frame: %w", err)
	}
	return nil
}

// decode reads a map written by encode.
func decode(r io.Reader) (*Map, error) {
	var m Map
	if err := decMode.NewDecoder(lz4.NewReader(r)).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if m.Entries == nil {
		m.Entries = []Entry{}
	}
	return &m, nil
}
