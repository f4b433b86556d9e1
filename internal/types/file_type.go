package types

import "fmt"

// File Types
// Every stream handed to the probe is assigned exactly one container format.

// FileType identifies the outer binary envelope of a stream.
type FileType uint8

const (
	// FileTypeResource is the fallback for streams no probe recognizes.
	// It is the zero value so an unclassified stream reads as a resource file.
	FileTypeResource FileType = iota

	// FileTypeBundle is an engine asset bundle (UnityFS, UnityWeb, UnityRaw, UnityArchive).
	FileTypeBundle

	// FileTypeWeb is a web data package ("UnityWebData1.0").
	FileTypeWeb

	// FileTypeBlk is a "blk" container.
	FileTypeBlk

	// FileTypeENCR is an "ENCR" encrypted container.
	FileTypeENCR

	// FileTypeGZip is a gzip-compressed envelope.
	FileTypeGZip

	// FileTypeBrotli is a brotli-compressed envelope with the marker at offset 0x20.
	FileTypeBrotli

	// FileTypeAssets is a serialized object-graph file, recognized structurally.
	FileTypeAssets

	// FileTypeZip is a zip archive or spanned zip archive.
	FileTypeZip

	// FileTypeMhy is an "mhy0" container.
	FileTypeMhy

	// FileTypeBlb is a "Blb\x02" container.
	FileTypeBlb

	// FileTypeBlock is a container of several concatenated bundles.
	// The signature cascade never produces it; only re-classification after preprocessing does.
	FileTypeBlock
)

var fileTypeNames = [...]string{
	FileTypeResource: "ResourceFile",
	FileTypeBundle:   "BundleFile",
	FileTypeWeb:      "WebFile",
	FileTypeBlk:      "BlkFile",
	FileTypeENCR:     "ENCRFile",
	FileTypeGZip:     "GZipFile",
	FileTypeBrotli:   "BrotliFile",
	FileTypeAssets:   "AssetsFile",
	FileTypeZip:      "ZipFile",
	FileTypeMhy:      "MhyFile",
	FileTypeBlb:      "BlbFile",
	FileTypeBlock:    "BlockFile",
}

// String returns the canonical name of the file type.
func (t FileType) String() string {
	if int(t) < len(fileTypeNames) {
		return fileTypeNames[t]
	}
	return fmt.Sprintf("FileType(%d)", uint8(t))
}

// MarshalText encodes the file type by name.
func (t FileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseFileType parses a canonical file type name.
func ParseFileType(name string) (FileType, error) {
	for i, n := range fileTypeNames {
		if n == name {
			return FileType(i), nil
		}
	}
	return FileTypeResource, fmt.Errorf("unknown file type: %q", name)
}

// IsEnvelope reports whether the type is a compression envelope that wraps another stream.
func (t FileType) IsEnvelope() bool {
	return t == FileTypeGZip || t == FileTypeBrotli
}
