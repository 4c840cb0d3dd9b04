// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

// Place is a node that holds tokens. In a GRAFCET a place is called a
// step and its token count is treated as boolean: any positive count is
// "active", and Reset normalizes it back to 0 or 1.
type Place struct {
	nodeBase
	Tokens uint64
}

// Ref returns the stable (kind, id) reference to p.
func (p *Place) Ref() NodeRef { return NodeRef{Kind: PlaceKind, ID: p.ID} }

// Key returns the derived textual key "P<id>".
func (p *Place) Key() string { return p.Ref().Key() }

// Active reports whether p holds at least one token, the GRAFCET notion of
// an active step.
func (p *Place) Active() bool { return p.Tokens > 0 }

// ArcsIn returns the indices, into the owning Net's Arcs slice, of the
// arcs whose destination is p.
func (p *Place) ArcsIn() []int { return p.arcsIn }

// ArcsOut returns the indices, into the owning Net's Arcs slice, of the
// arcs whose source is p.
func (p *Place) ArcsOut() []int { return p.arcsOut }
