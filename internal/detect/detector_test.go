package detect

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// narrowHeader builds a 20-byte serialized header.
func narrowHeader(fileSize, version, dataOffset uint32) []byte {
	data := make([]byte, 20)
	binary.BigEndian.PutUint32(data[0:4], 0x40)
	binary.BigEndian.PutUint32(data[4:8], fileSize)
	binary.BigEndian.PutUint32(data[8:12], version)
	binary.BigEndian.PutUint32(data[12:16], dataOffset)
	return data
}

// wideHeader builds a version 22 header padded to total bytes.
func wideHeader(total int, fileSize, dataOffset int64) []byte {
	data := make([]byte, total)
	copy(data, narrowHeader(0, 22, 0))
	if total >= 48 {
		binary.BigEndian.PutUint32(data[20:24], 0x40)
		binary.BigEndian.PutUint64(data[24:32], uint64(fileSize))
		binary.BigEndian.PutUint64(data[32:40], uint64(dataOffset))
	}
	return data
}

func withPrefix(prefix []byte, total int) []byte {
	data := make([]byte, total)
	copy(data, prefix)
	return data
}

func classify(data []byte) (types.FileType, int64) {
	r := stream.NewBytesReader(data, binary.BigEndian)
	t := NewDetector(nil).Classify(r)
	return t, r.Position()
}

func TestClassify_StringSignatures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want types.FileType
	}{
		{"UnityFS", []byte("UnityFS\x005.x.x\x00"), types.FileTypeBundle},
		{"UnityWeb", []byte("UnityWeb\x00"), types.FileTypeBundle},
		{"UnityRaw", []byte("UnityRaw\x00"), types.FileTypeBundle},
		{"UnityArchive", []byte("UnityArchive\x00"), types.FileTypeBundle},
		{"web data", []byte("UnityWebData1.0\x00"), types.FileTypeWeb},
		{"blk", []byte("blk\x00\x01\x02"), types.FileTypeBlk},
		{"ENCR", []byte("ENCR\x00\x00\x00\x00"), types.FileTypeENCR},
		{"unterminated signature at end of stream", []byte("UnityFS"), types.FileTypeBundle},
		{"prefix is not enough", []byte("UnityFSX\x00"), types.FileTypeResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pos := classify(tt.data)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(0), pos)
		})
	}
}

func TestClassify_ByteSignatures(t *testing.T) {
	brotli := make([]byte, 0x40)
	copy(brotli[0x20:], "brotli")

	tests := []struct {
		name string
		data []byte
		want types.FileType
	}{
		{"gzip minimal", []byte{0x1F, 0x8B}, types.FileTypeGZip},
		{"gzip with payload", withPrefix([]byte{0x1F, 0x8B, 0x08}, 64), types.FileTypeGZip},
		{"brotli marker at 0x20", brotli, types.FileTypeBrotli},
		{"zip local header", withPrefix(zipMagic, 32), types.FileTypeZip},
		{"zip spanned", withPrefix(zipSpannedMagic, 32), types.FileTypeZip},
		{"mhy0", withPrefix(mhy0Magic, 32), types.FileTypeMhy},
		{"blb", withPrefix(blbMagic, 32), types.FileTypeBlb},
		{"seven byte bundle prefix", withPrefix(narakaMagic, 32), types.FileTypeBundle},
		{"empty", []byte{}, types.FileTypeResource},
		{"noise", []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}, types.FileTypeResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pos := classify(tt.data)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(0), pos)
		})
	}
}

func TestClassify_NineBytePrefixLeavesCursorAtBundle(t *testing.T) {
	got, pos := classify(withPrefix(gunfireMagic, 0x80))
	assert.Equal(t, types.FileTypeBundle, got)
	assert.Equal(t, int64(gunfireDataOffset), pos)
}

func TestClassify_SerializedFile(t *testing.T) {
	t.Run("narrow header consistent", func(t *testing.T) {
		got, pos := classify(narrowHeader(20, 17, 20))
		assert.Equal(t, types.FileTypeAssets, got)
		assert.Equal(t, int64(0), pos)
	})

	for _, fileSize := range []uint32{0, 19, 21, 0xFFFFFFFF} {
		got, pos := classify(narrowHeader(fileSize, 17, 0))
		assert.NotEqual(t, types.FileTypeAssets, got, "file size %d", fileSize)
		assert.Equal(t, int64(0), pos)
	}

	t.Run("data offset beyond stream", func(t *testing.T) {
		got, _ := classify(narrowHeader(20, 17, 21))
		assert.NotEqual(t, types.FileTypeAssets, got)
	})

	t.Run("wide header consistent", func(t *testing.T) {
		got, pos := classify(wideHeader(64, 64, 48))
		assert.Equal(t, types.FileTypeAssets, got)
		assert.Equal(t, int64(0), pos)
	})

	t.Run("wide header overrides narrow fields", func(t *testing.T) {
		data := wideHeader(64, 100, 48)
		binary.BigEndian.PutUint32(data[4:8], 64) // narrow field alone would validate
		got, _ := classify(data)
		assert.NotEqual(t, types.FileTypeAssets, got)
	})
}

func TestIsSerializedFile_WideHeaderTooSmall(t *testing.T) {
	data := make([]byte, 47)
	copy(data, narrowHeader(47, 22, 0))

	r := stream.NewBytesReader(data, binary.BigEndian)
	valid, header := IsSerializedFile(r, nil)
	assert.False(t, valid)
	assert.Nil(t, header)
	assert.Equal(t, int64(0), r.Position())
}

func TestIsSerializedFile_TooSmall(t *testing.T) {
	r := stream.NewBytesReader(make([]byte, 19), binary.BigEndian)
	valid, _ := IsSerializedFile(r, nil)
	assert.False(t, valid)
	assert.Equal(t, int64(0), r.Position())
}

func TestReadSerializedHeader(t *testing.T) {
	r := stream.NewBytesReader(wideHeader(48, 48, 32), binary.BigEndian)

	h, err := ReadSerializedHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(22), h.Version)
	assert.Equal(t, int64(48), h.FileSize)
	assert.Equal(t, int64(32), h.DataOffset)
	assert.Equal(t, int64(0), r.Position())
}

func TestClassify_SerializedHeaderFollowsReaderEndian(t *testing.T) {
	data := make([]byte, 20)
	binary.LittleEndian.PutUint32(data[0:4], 0x40)
	binary.LittleEndian.PutUint32(data[4:8], 20)
	binary.LittleEndian.PutUint32(data[8:12], 17)
	binary.LittleEndian.PutUint32(data[12:16], 20)

	got, pos := classify(data)
	assert.NotEqual(t, types.FileTypeAssets, got)
	assert.Equal(t, types.FileTypeResource, got)
	assert.Equal(t, int64(0), pos)

	r := stream.NewBytesReader(data, binary.LittleEndian)
	assert.Equal(t, types.FileTypeAssets, NewDetector(nil).Classify(r))
	assert.Equal(t, int64(0), r.Position())
}
