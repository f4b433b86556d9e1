package cipher

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// ErrUnsupportedPublisher is returned by lookups for identifiers outside the catalog.
var ErrUnsupportedPublisher = types.ErrUnsupportedPublisher

// Registry maps publisher identifiers to cipher configurations.
// It is immutable after construction and safe for concurrent reads.
type Registry struct {
	byID   [types.PublisherCount]Config
	order  []Config
	byName map[string]types.PublisherID
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(nil)
	if err != nil {
		panic("cipher: catalog initialization failed: " + err.Error())
	}
	return r
})

// Default returns the process-wide registry built without key material.
func Default() *Registry {
	return defaultRegistry()
}

// NewRegistry builds a registry from the catalog, resolving key tables from kr.
// A nil keyring yields empty tables for every record.
func NewRegistry(kr *Keyring) (*Registry, error) {
	r := &Registry{
		order:  make([]Config, 0, len(catalog)),
		byName: make(map[string]types.PublisherID, 2*len(catalog)),
	}
	for _, e := range catalog {
		if !e.id.IsValid() {
			return nil, fmt.Errorf("%w: catalog entry with invalid id %d", ErrMalformedConfig, e.id)
		}
		if r.byID[e.id] != nil {
			return nil, fmt.Errorf("%w: duplicate catalog entry for %s", ErrMalformedConfig, e.id.Ident())
		}
		cfg, err := e.build(kr)
		if err != nil {
			return nil, err
		}
		r.byID[e.id] = cfg
		r.order = append(r.order, cfg)
		r.byName[nameKey(e.id.DisplayName())] = e.id
		r.byName[identKey(e.id.Ident())] = e.id
	}
	for i, cfg := range r.byID {
		if cfg == nil {
			return nil, fmt.Errorf("%w: no catalog entry for %s", ErrMalformedConfig, types.PublisherID(i).Ident())
		}
	}
	return r, nil
}

func (e entry) build(kr *Keyring) (Config, error) {
	h := header{name: e.id.DisplayName(), id: e.id}
	switch e.kind {
	case KindPlain:
		return Plain{header: h}, nil
	case KindMr0k:
		return Mr0k{
			header:       h,
			ExpansionKey: kr.key(e.expansionKey),
			SBox:         kr.key(e.sBox),
			InitVector:   kr.key(e.initVector),
			BlockKey:     kr.key(e.blockKey),
			PostKey:      kr.key(e.postKey),
		}, nil
	case KindBlk:
		return e.blk(h, kr), nil
	case KindMhy:
		m := Mhy{
			Blk:           e.blk(h, kr),
			ShiftRowTable: kr.key(e.shiftRow),
			RoundKeyTable: kr.key(e.roundKey),
			MulTable:      kr.key(e.mul),
		}
		present := 0
		for _, t := range [][]byte{m.ShiftRowTable, m.RoundKeyTable, m.MulTable} {
			if len(t) > 0 {
				present++
			}
		}
		if present != 0 && present != 3 {
			return nil, fmt.Errorf("%w: %s needs all of %s, %s and %s", ErrMalformedConfig, e.id.Ident(), e.shiftRow, e.roundKey, e.mul)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %s for %s", ErrMalformedConfig, e.kind, e.id.Ident())
	}
}

func (e entry) blk(h header, kr *Keyring) Blk {
	return Blk{
		header:       h,
		ExpansionKey: kr.key(e.expansionKey),
		SBox:         kr.key(e.sBox),
		InitVector:   kr.key(e.initVector),
		InitSeed:     kr.seed(e.initSeed),
	}
}

func nameKey(name string) string {
	return "n:" + norm.NFC.String(strings.TrimSpace(name))
}

func identKey(ident string) string {
	return "i:" + strings.ToLower(strings.TrimSpace(ident))
}

// Lookup returns the configuration registered for id.
func (r *Registry) Lookup(id types.PublisherID) (Config, error) {
	if !id.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPublisher, id.Ident())
	}
	return r.byID[id], nil
}

// LookupByName resolves a display name (exact, after NFC normalization) or an
// ASCII identifier (case-insensitive).
func (r *Registry) LookupByName(name string) (Config, bool) {
	if id, ok := r.byName[nameKey(name)]; ok {
		return r.byID[id], true
	}
	if id, ok := r.byName[identKey(name)]; ok {
		return r.byID[id], true
	}
	return nil, false
}

// List returns every configuration in registration order.
func (r *Registry) List() []Config {
	out := make([]Config, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns the display names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, cfg := range r.order {
		names[i] = cfg.Name()
	}
	return names
}

// Supported returns a human-readable listing of supported publishers.
func (r *Registry) Supported() string {
	return "Supported publishers:\n" + strings.Join(r.Names(), "\n")
}
