package stream

import (
	"path/filepath"

	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// File pairs a stream with its current classification and identity.
// Preprocessing may replace Reader with a different source of a different
// length; FullPath and FileName stay with the logical file.
type File struct {
	*Reader
	Type     types.FileType
	FullPath string
	FileName string
}

// NewFile wraps r with identity metadata derived from path.
func NewFile(path string, r *Reader, t types.FileType) *File {
	full, err := filepath.Abs(path)
	if err != nil {
		full = path
	}
	return &File{
		Reader:   r,
		Type:     t,
		FullPath: full,
		FileName: filepath.Base(path),
	}
}

// WithReader returns a copy of f backed by r and classified as t.
func (f *File) WithReader(r *Reader, t types.FileType) *File {
	next := *f
	next.Reader = r
	next.Type = t
	return &next
}
