package detect

// Signatures checked by the cascade, in probe order.
var (
	gzipMagic       = []byte{0x1F, 0x8B}
	brotliMagic     = []byte("brotli")
	zipMagic        = []byte{0x50, 0x4B, 0x03, 0x04}
	zipSpannedMagic = []byte{0x50, 0x4B, 0x07, 0x08}
	mhy0Magic       = []byte{0x6D, 0x68, 0x79, 0x30}
	blbMagic        = []byte{0x42, 0x6C, 0x62, 0x02}
	narakaMagic     = []byte{0x15, 0x1E, 0x1C, 0x0D, 0x0D, 0x23, 0x21}
	gunfireMagic    = []byte{0x7C, 0x6D, 0x79, 0x72, 0x27, 0x7A, 0x73, 0x78, 0x3F}
)

const (
	// signatureMaxLength bounds the leading string signature read.
	signatureMaxLength = 20

	// brotliMagicOffset is where the brotli envelope stores its marker.
	brotliMagicOffset = 0x20

	// gunfireDataOffset is where the bundle begins after the 9-byte prefix.
	gunfireDataOffset = 0x32

	// serializedHeaderMinSize is the size of the narrow serialized header.
	serializedHeaderMinSize = 20

	// serializedHeaderWideSize is the size of the header once fields widen at version 22.
	serializedHeaderWideSize = 48

	// serializedWideVersion is the first format version with 64-bit size fields.
	serializedWideVersion = 22
)
