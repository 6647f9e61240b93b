package motif

import (
	"fmt"

	"gobind/domain/core"
)

// Motif identifies one entry of the catalog: a stable id plus display and
// alternate names used in output tables.
type Motif struct {
	ID      string
	Name    string
	AltName string
}

// Catalog is the ordered, fixed set of motifs known before scanning starts.
// The scanning capability itself is bound separately at orchestrator setup.
type Catalog struct {
	motifs []Motif
	index  map[string]int
}

// NewCatalog builds a catalog from an ordered motif list. Duplicate ids are
// rejected.
func NewCatalog(motifs []Motif) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(motifs))}
	for _, m := range motifs {
		if m.ID == "" {
			return nil, fmt.Errorf("motif with empty id")
		}
		if _, ok := c.index[m.ID]; ok {
			return nil, core.NewIntegrityError(m.ID, core.ErrDuplicateMotif)
		}
		c.index[m.ID] = len(c.motifs)
		c.motifs = append(c.motifs, m)
	}
	return c, nil
}

// Motifs returns the catalog entries in input order.
func (c *Catalog) Motifs() []Motif {
	return c.motifs
}

// IDs returns the motif ids in input order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.motifs))
	for i, m := range c.motifs {
		out[i] = m.ID
	}
	return out
}

// Contains reports whether id is part of the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of motifs.
func (c *Catalog) Len() int {
	return len(c.motifs)
}
