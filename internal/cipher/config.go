// Package cipher holds the catalog of per-publisher cipher configurations.
//
// Each supported publisher maps to exactly one configuration shape:
//   - Plain: no key material
//   - Mr0k: expansion key, substitution box, IV, block key and post key
//   - Blk: expansion key, substitution box, IV and an initial seed
//   - Mhy: the Blk shape plus shift-row, round-key and multiplication tables
//
// The registry is built once and never mutated. Byte tables are shared
// between callers and must be treated as read-only.
package cipher

import (
	"fmt"

	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// Kind identifies the shape of a cipher configuration.
type Kind uint8

const (
	KindPlain Kind = iota
	KindMr0k
	KindBlk
	KindMhy
)

// String returns the name of the configuration shape.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "Plain"
	case KindMr0k:
		return "Mr0k"
	case KindBlk:
		return "Blk"
	case KindMhy:
		return "Mhy"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Config is a cipher configuration for one publisher.
// The set of implementations is closed: Plain, Mr0k, Blk and Mhy.
type Config interface {
	// Name returns the display name of the publisher.
	Name() string

	// Publisher returns the publisher this configuration belongs to.
	Publisher() types.PublisherID

	// Kind returns the configuration shape.
	Kind() Kind

	sealed()
}

type header struct {
	name string
	id   types.PublisherID
}

func (h header) Name() string { return h.name }
func (h header) Publisher() types.PublisherID { return h.id }
func (h header) sealed() {}

// Plain is the configuration of a publisher that needs no key material.
type Plain struct {
	header
}

// Kind returns KindPlain.
func (Plain) Kind() Kind { return KindPlain }

// Mr0k carries the key material of the mr0k block cipher family.
type Mr0k struct {
	header
	ExpansionKey []byte
	SBox         []byte
	InitVector   []byte
	BlockKey     []byte
	PostKey      []byte
}

// Kind returns KindMr0k.
func (Mr0k) Kind() Kind { return KindMr0k }

// Blk carries the key material of the blk container cipher.
type Blk struct {
	header
	ExpansionKey []byte
	SBox         []byte
	InitVector   []byte
	InitSeed     uint64
}

// Kind returns KindBlk.
func (Blk) Kind() Kind { return KindBlk }

// Mhy extends the Blk shape with the mhy0 round tables.
type Mhy struct {
	Blk
	ShiftRowTable []byte
	RoundKeyTable []byte
	MulTable      []byte
}

// Kind returns KindMhy.
func (Mhy) Kind() Kind { return KindMhy }

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
