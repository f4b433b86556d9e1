package envelope

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zip"

	"github.com/deploymenttheory/go-assetprobe/internal/stream"
)

// ZipEntry describes one member of a zip archive.
type ZipEntry struct {
	Name             string `json:"name" yaml:"name"`
	Method           uint16 `json:"method" yaml:"method"`
	CompressedSize   uint64 `json:"compressed_size" yaml:"compressed_size"`
	UncompressedSize uint64 `json:"uncompressed_size" yaml:"uncompressed_size"`
}

// ZipEntries lists the file members of the zip archive in r, skipping
// directories. The cursor is left at offset 0.
func ZipEntries(r *stream.Reader) ([]ZipEntry, error) {
	data, err := r.Bytes()
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip directory: %w", err)
	}

	entries := make([]ZipEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, ZipEntry{
			Name:             f.Name,
			Method:           f.Method,
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
		})
	}
	return entries, nil
}
