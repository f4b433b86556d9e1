package pipeline

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/envelope"
	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/transform"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

func bundle(declared int64, total int) []byte {
	data := make([]byte, 0, total)
	data = append(data, "UnityFS\x00"...)
	data = binary.BigEndian.AppendUint32(data, 7)
	data = append(data, "5.x.x\x00"...)
	data = append(data, "2020.3.0f1\x00"...)
	data = binary.BigEndian.AppendUint64(data, uint64(declared))
	for len(data) < total {
		data = append(data, 0)
	}
	return data
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpenReader(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		publisher types.PublisherID
		want      types.FileType
	}{
		{"plain bundle", bundle(96, 96), types.PublisherNormal, types.FileTypeBundle},
		{"block file", bundle(200, 96), types.PublisherBH3, types.FileTypeBlock},
		{"unknown bytes", []byte("no signature here"), types.PublisherNormal, types.FileTypeResource},
		{"gzip envelope around bundle", gzipped(t, bundle(96, 96)), types.PublisherNormal, types.FileTypeBundle},
		{"gzip envelope around block file", gzipped(t, bundle(300, 96)), types.PublisherSR, types.FileTypeBlock},
	}

	p := New(Options{UnwrapEnvelopes: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := p.OpenReader("data/"+tt.name, bytes.NewReader(tt.data), tt.publisher)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Type)
			assert.Equal(t, tt.name, f.FileName)
			assert.Equal(t, int64(0), f.Position())
		})
	}
}

func TestOpenReader_EnvelopeKeptWhenUnwrapDisabled(t *testing.T) {
	p := New(Options{})
	f, err := p.OpenReader("web.data.gz", bytes.NewReader(gzipped(t, bundle(96, 96))), types.PublisherNormal)
	require.NoError(t, err)
	assert.Equal(t, types.FileTypeGZip, f.Type)
}

func TestOpenReader_EnvelopeLimit(t *testing.T) {
	p := New(Options{UnwrapEnvelopes: true, MaxUnwrappedBytes: 16})
	_, err := p.OpenReader("web.data.gz", bytes.NewReader(gzipped(t, bundle(96, 96))), types.PublisherNormal)
	assert.ErrorIs(t, err, envelope.ErrTooLarge)
}

func TestOpenReader_TransformRuns(t *testing.T) {
	data := append([]byte("decoy header"), bundle(96, 96)...)

	f, err := New(Options{}).OpenReader("fake.ab", bytes.NewReader(data), types.PublisherFakeHeader)
	require.NoError(t, err)
	assert.Equal(t, types.FileTypeBundle, f.Type)
	assert.Equal(t, int64(96), f.Len())
}

func TestOpenReader_TransformErrorCarriesPathAndPublisher(t *testing.T) {
	cause := errors.New("wrong key")
	table := transform.NewTable()
	require.NoError(t, table.Register(types.PublisherGI, func(*stream.Reader, cipher.Config) (*stream.Reader, error) {
		return nil, cause
	}))

	_, err := New(Options{Table: table}).OpenReader("31049740.blk", bytes.NewReader([]byte("blk\x00payload")), types.PublisherGI)
	require.Error(t, err)
	assert.ErrorIs(t, err, transform.ErrTransformFailed)
	assert.ErrorIs(t, err, cause)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "31049740.blk", pe.Path)
	assert.Equal(t, "GI", pe.Publisher)
}

func TestOpenReader_UnsupportedPublisher(t *testing.T) {
	_, err := New(Options{}).OpenReader("x.bundle", bytes.NewReader(bundle(96, 96)), types.PublisherID(99))
	assert.ErrorIs(t, err, types.ErrUnsupportedPublisher)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "x.bundle", pe.Path)
	assert.Equal(t, "Publisher(99)", pe.Publisher)
}

func TestOpenReader_EnvelopeTransformRunsOnce(t *testing.T) {
	var calls int
	table := transform.NewTable()
	require.NoError(t, table.Register(types.PublisherNetEase, func(r *stream.Reader, _ cipher.Config) (*stream.Reader, error) {
		calls++
		return r, nil
	}))

	p := New(Options{Table: table, UnwrapEnvelopes: true})
	f, err := p.OpenReader("web.data.gz", bytes.NewReader(gzipped(t, bundle(96, 96))), types.PublisherNetEase)
	require.NoError(t, err)
	assert.Equal(t, types.FileTypeBundle, f.Type)
	assert.Equal(t, 1, calls)
}

func TestOpenReader_NineBytePrefix(t *testing.T) {
	const bundleOffset = 0x32
	data := make([]byte, bundleOffset)
	copy(data, []byte{0x7C, 0x6D, 0x79, 0x72, 0x27, 0x7A, 0x73, 0x78, 0x3F})
	data = append(data, bundle(500, 96)...)

	tests := []struct {
		name      string
		publisher types.PublisherID
		want      types.FileType
		wantPos   int64
	}{
		{"block file behind prefix", types.PublisherBH3, types.FileTypeBlock, 0},
		{"plain bundle behind prefix", types.PublisherNormal, types.FileTypeBundle, bundleOffset},
	}

	p := New(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := p.OpenReader("prefixed.ab", bytes.NewReader(data), tt.publisher)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Type)
			assert.Equal(t, tt.wantPos, f.Position())
		})
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level0.bundle")
	require.NoError(t, os.WriteFile(path, bundle(64, 64), 0o644))

	f, err := Open(path, types.PublisherNormal)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, types.FileTypeBundle, f.Type)
	assert.Equal(t, path, f.FullPath)

	_, err = Open(filepath.Join(t.TempDir(), "absent"), types.PublisherNormal)
	assert.Error(t, err)
}

func TestPipeline_Publisher(t *testing.T) {
	p := New(Options{})

	id, err := p.Publisher("崩坏三")
	require.NoError(t, err)
	assert.Equal(t, types.PublisherBH3, id)

	id, err = p.Publisher("srcb2")
	require.NoError(t, err)
	assert.Equal(t, types.PublisherSRCB2, id)

	_, err = p.Publisher("Unknown Game")
	assert.ErrorIs(t, err, types.ErrUnsupportedPublisher)
}
