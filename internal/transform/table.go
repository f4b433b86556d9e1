// Package transform selects and applies per-publisher stream transforms.
//
// A Transform turns an obfuscated stream into one whose bytes classify as
// the true container format. Transforms are looked up by publisher
// identifier in a Table; the dispatcher itself holds no publisher logic.
package transform

import (
	"fmt"
	"sort"

	"github.com/deploymenttheory/go-assetprobe/internal/cipher"
	"github.com/deploymenttheory/go-assetprobe/internal/stream"
	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// Transform converts the stream r, positioned at offset 0, using the key
// material in cfg. It may return r itself or a new Reader; when it returns a
// new Reader it owns r and must close it once r is no longer needed.
type Transform func(r *stream.Reader, cfg cipher.Config) (*stream.Reader, error)

// Table maps publishers to their transform.
type Table struct {
	transforms map[types.PublisherID]Transform
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{transforms: make(map[types.PublisherID]Transform)}
}

// DefaultTable returns a table with the built-in normalizers registered.
func DefaultTable() *Table {
	t := NewTable()
	for _, id := range []types.PublisherID{types.PublisherFakeHeader, types.PublisherOPFP, types.PublisherNikke} {
		t.transforms[id] = StripFakeHeader
	}
	return t
}

// Register binds fn to id, replacing any previous binding.
func (t *Table) Register(id types.PublisherID, fn Transform) error {
	if !id.IsValid() {
		return fmt.Errorf("%w: %s", types.ErrUnsupportedPublisher, id.Ident())
	}
	if fn == nil {
		return fmt.Errorf("transform for %s cannot be nil", id.Ident())
	}
	t.transforms[id] = fn
	return nil
}

// Lookup returns the transform bound to id.
func (t *Table) Lookup(id types.PublisherID) (Transform, bool) {
	fn, ok := t.transforms[id]
	return fn, ok
}

// Publishers returns the publishers that have a transform, in identifier order.
func (t *Table) Publishers() []types.PublisherID {
	ids := make([]types.PublisherID, 0, len(t.transforms))
	for id := range t.transforms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
