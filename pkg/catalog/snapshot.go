package catalog

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Snapshot is a self-contained export of a built catalog: the vendor
// definitions it was built from plus the resolved taxonomy and rule table
// for offline inspection.
type Snapshot struct {
	Version int         `cbor:"1,keyasint"`
	Vendors []*Vendor   `cbor:"2,keyasint"`
	Types   []TypeEntry `cbor:"3,keyasint"`
	Rules   []RuleEntry `cbor:"4,keyasint"`
}

// TypeEntry is one resolved taxonomy type.
type TypeEntry struct {
	Name   string `cbor:"1,keyasint"`
	Parent string `cbor:"2,keyasint"`
	Base   string `cbor:"3,keyasint"`
}

// RuleEntry is one registered pattern rule.
type RuleEntry struct {
	Owner string `cbor:"1,keyasint"`
	Type  string `cbor:"2,keyasint"`
	Expr  string `cbor:"3,keyasint"`
	Seq   int    `cbor:"4,keyasint"`
}

var snapshotEncMode = func() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create snapshot CBOR encoder mode: %v", err))
	}
	return em
}()

// NewSnapshot captures c.
func NewSnapshot(c *Catalog) *Snapshot {
	s := &Snapshot{Version: SnapshotVersion, Vendors: c.Vendors}
	for _, t := range c.Taxonomy.Types() {
		parent, _ := c.Taxonomy.Parent(t)
		base, _ := c.Taxonomy.Base(t)
		s.Types = append(s.Types, TypeEntry{Name: string(t), Parent: string(parent), Base: string(base)})
	}
	for _, owner := range c.Registry.Owners() {
		for _, r := range c.Registry.Rules(owner) {
			s.Rules = append(s.Rules, RuleEntry{Owner: r.Owner, Type: string(r.Type), Expr: r.Expr, Seq: r.Seq})
		}
	}
	return s
}

// EncodeSnapshot encodes a snapshot of c to CBOR. Encoding is deterministic.
func EncodeSnapshot(c *Catalog) ([]byte, error) {
	return snapshotEncMode.Marshal(NewSnapshot(c))
}

// DecodeSnapshot decodes a CBOR snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot: %w", ErrInvalidCatalog, err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", ErrInvalidCatalog, s.Version)
	}
	return &s, nil
}

// Rebuild builds a catalog from the snapshot's vendor definitions.
func (s *Snapshot) Rebuild() (*Catalog, error) {
	return Build(s.Vendors...)
}
