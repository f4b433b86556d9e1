package transform

import (
	"bytes"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/stream"
)

// fakeHeaderWindow is how far into the stream the real signature is searched.
const fakeHeaderWindow = 0x1000

var bundleSignature = []byte("UnityFS\x00")

// StripFakeHeader drops a decoy prefix in front of a bundle. Within the
// first 4 KiB it finds the bundle signature; when a second signature follows
// the first, the first one belongs to the decoy. Streams without a signature
// are returned unchanged.
func StripFakeHeader(r *stream.Reader, _ cipher.Config) (*stream.Reader, error) {
	window := int64(fakeHeaderWindow)
	if window > r.Len() {
		window = r.Len()
	}
	head, err := r.PeekAt(0, int(window), 0)
	if err != nil {
		return nil, err
	}

	first := bytes.Index(head, bundleSignature)
	if first < 0 {
		return r, nil
	}
	start := first
	if second := bytes.Index(head[first+1:], bundleSignature); second >= 0 {
		start = first + 1 + second
	}
	if start == 0 {
		return r, nil
	}

	data, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	out := stream.NewBytesReader(data[start:], r.Endian())
	r.Close()
	return out, nil
}
