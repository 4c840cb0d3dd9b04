// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import "sort"

// NetType selects the firing semantics applied by a Simulator.
type NetType int

const (
	Petri NetType = iota
	TimedPetri
	TimedEventGraph
	Grafcet
)

// String returns the JSON-format type tag for t (spec.md §6).
func (t NetType) String() string {
	switch t {
	case Petri:
		return "Petri net"
	case TimedPetri:
		return "Timed Petri net"
	case TimedEventGraph:
		return "Timed event graph"
	case Grafcet:
		return "GRAFCET"
	default:
		return "Petri net"
	}
}

// ParseNetType parses the JSON-format type tag, defaulting to Petri when s
// is not recognized.
func ParseNetType(s string) NetType {
	switch s {
	case "Timed Petri net":
		return TimedPetri
	case "Timed event graph":
		return TimedEventGraph
	case "GRAFCET":
		return Grafcet
	default:
		return Petri
	}
}

// Net owns the places, transitions and arcs of one net. Nodes are created
// by AddPlace/AddTransition, mutated directly through their exported
// fields or by the Simulator, and destroyed only by RemoveNode, which also
// removes every arc incident to the removed node.
//
// Net ids are dense per kind: a Place's ID always equals its position in
// the net's place slice, likewise for transitions. RemoveNode renumbers
// later nodes of the same kind down by one to preserve this invariant, and
// updates every arc endpoint accordingly.
type Net struct {
	Name string
	Type NetType

	// Priorities[i] lists, in increasing order, the ids of transitions
	// with strictly lower priority than transition i. An empty or nil
	// Priorities means no priority relation is declared, in which case
	// conflicts are resolved purely by iteration order.  Supplemented
	// feature (see SPEC_FULL.md §5), ported from the Tina priority
	// relation ("pr" declarations).
	Priorities [][]int

	places      []Place
	transitions []Transition
	arcs        []Arc

	onMutation func(Mutation)
}

// New creates an empty net of the given type.
func New(name string, typ NetType) *Net {
	return &Net{Name: name, Type: typ}
}

// IsEmpty reports whether the net has no places, transitions or arcs.
func (net *Net) IsEmpty() bool {
	return len(net.places) == 0 && len(net.transitions) == 0 && len(net.arcs) == 0
}

// Clear removes every place, transition and arc from the net.
func (net *Net) Clear() {
	net.places = nil
	net.transitions = nil
	net.arcs = nil
	net.Priorities = nil
}

// Places returns the net's places. The returned slice aliases the net's
// internal storage and is read-only by convention: callers must not
// append to or reorder it, but may mutate Tokens on individual elements.
func (net *Net) Places() []Place { return net.places }

// Transitions returns the net's transitions, with the same read-only
// convention as Places.
func (net *Net) Transitions() []Transition { return net.transitions }

// Arcs returns the net's arcs, with the same read-only convention as
// Places.
func (net *Net) Arcs() []Arc { return net.arcs }

// Place returns a pointer to the place with the given id, or nil if none
// exists.
func (net *Net) Place(id int) *Place {
	if id < 0 || id >= len(net.places) {
		return nil
	}
	return &net.places[id]
}

// Transition returns a pointer to the transition with the given id, or nil
// if none exists.
func (net *Net) Transition(id int) *Transition {
	if id < 0 || id >= len(net.transitions) {
		return nil
	}
	return &net.transitions[id]
}

// node reports whether the Place or Transition referenced by ref exists in
// net.
func (net *Net) node(ref NodeRef) (exists bool) {
	switch ref.Kind {
	case PlaceKind:
		return ref.ID >= 0 && ref.ID < len(net.places)
	default:
		return ref.ID >= 0 && ref.ID < len(net.transitions)
	}
}

// FindNode looks up a node by its textual key ("P3", "T0", ...).
func (net *Net) FindNode(key string) (NodeRef, bool) {
	if len(key) < 2 {
		return NodeRef{}, false
	}
	var kind Kind
	switch key[0] {
	case 'P':
		kind = PlaceKind
	case 'T':
		kind = TransitionKind
	default:
		return NodeRef{}, false
	}
	id := 0
	for _, c := range key[1:] {
		if c < '0' || c > '9' {
			return NodeRef{}, false
		}
		id = id*10 + int(c-'0')
	}
	ref := NodeRef{Kind: kind, ID: id}
	if !net.node(ref) {
		return NodeRef{}, false
	}
	return ref, true
}

// SetMutationSink registers fn to be called after every successful
// mutating operation (AddPlace, AddTransition, AddArc, RemoveNode, and
// transition firing). This is the hook the (out-of-scope) undo/redo
// history stack uses: it is the only collaborator that needs to observe
// mutations, and it does so without the core depending on it.
func (net *Net) SetMutationSink(fn func(Mutation)) { net.onMutation = fn }

func (net *Net) emit(m Mutation) {
	if net.onMutation != nil {
		net.onMutation(m)
	}
}

// AddPlace adds a place to the net. If id is negative, the next free id is
// assigned; otherwise id must equal the next free id (len(net.places)),
// preserving the dense-id invariant, or an error is returned.
func (net *Net) AddPlace(id int, caption string, x, y float32, tokens uint64) (*Place, error) {
	next := len(net.places)
	if id < 0 {
		id = next
	} else if id != next {
		return nil, &NodeError{Ref: NodeRef{Kind: PlaceKind, ID: id}}
	}
	net.places = append(net.places, Place{
		nodeBase: nodeBase{ID: id, Caption: caption, X: x, Y: y},
		Tokens:   tokens,
	})
	p := &net.places[id]
	net.emit(Mutation{Kind: MutAddPlace, Ref: p.Ref(), Place: snapshotPlace(p)})
	return p, nil
}

// AddTransition adds a transition to the net, following the same id
// convention as AddPlace.
func (net *Net) AddTransition(id int, caption string, x, y, angle float32) (*Transition, error) {
	next := len(net.transitions)
	if id < 0 {
		id = next
	} else if id != next {
		return nil, &NodeError{Ref: NodeRef{Kind: TransitionKind, ID: id}}
	}
	net.transitions = append(net.transitions, Transition{
		nodeBase: nodeBase{ID: id, Caption: caption, X: x, Y: y},
		Angle:    angle,
	})
	t := &net.transitions[id]
	net.emit(Mutation{Kind: MutAddTransition, Ref: t.Ref(), Transition: snapshotTransition(t)})
	return t, nil
}

// AddArc connects from to to. The bipartite invariant, the only place it
// is enforced, is checked here: every other package may assume it holds.
func (net *Net) AddArc(from, to NodeRef, duration float32) (*Arc, error) {
	if !net.node(from) {
		return nil, &ArcError{Err: ErrUnknownEndpoint, From: from, To: to}
	}
	if !net.node(to) {
		return nil, &ArcError{Err: ErrUnknownEndpoint, From: from, To: to}
	}
	if from.Kind == to.Kind {
		return nil, &ArcError{Err: ErrSameKindEndpoints, From: from, To: to}
	}
	for _, a := range net.arcs {
		if a.From == from && a.To == to {
			return nil, &ArcError{Err: ErrDuplicateArc, From: from, To: to}
		}
	}
	if from.Kind != TransitionKind {
		duration = NoDuration()
	}
	arc := Arc{From: from, To: to, Duration: duration}
	net.arcs = append(net.arcs, arc)
	net.reindex()
	net.emit(Mutation{Kind: MutAddArc, Arc: &arc})
	return &net.arcs[len(net.arcs)-1], nil
}

// RemoveNode removes the node referenced by ref along with every arc
// incident to it, renumbering later same-kind nodes down by one id to
// preserve the dense-id invariant.
func (net *Net) RemoveNode(ref NodeRef) error {
	if !net.node(ref) {
		return &NodeError{Ref: ref}
	}
	var removedArcs []Arc
	kept := net.arcs[:0:0]
	for _, a := range net.arcs {
		if a.From == ref || a.To == ref {
			removedArcs = append(removedArcs, a)
			continue
		}
		kept = append(kept, shiftArcEndpoint(a, ref))
	}
	net.arcs = kept

	var placeSnap *Place
	var transSnap *Transition
	switch ref.Kind {
	case PlaceKind:
		placeSnap = snapshotPlace(&net.places[ref.ID])
		net.places = append(net.places[:ref.ID], net.places[ref.ID+1:]...)
		for i := ref.ID; i < len(net.places); i++ {
			net.places[i].ID = i
		}
		net.reindexPriorities(PlaceKind, ref.ID)
	default:
		transSnap = snapshotTransition(&net.transitions[ref.ID])
		net.transitions = append(net.transitions[:ref.ID], net.transitions[ref.ID+1:]...)
		for i := ref.ID; i < len(net.transitions); i++ {
			net.transitions[i].ID = i
		}
		net.reindexPriorities(TransitionKind, ref.ID)
	}
	net.reindex()
	net.emit(Mutation{
		Kind:        MutRemoveNode,
		Ref:         ref,
		Place:       placeSnap,
		Transition:  transSnap,
		RemovedArcs: removedArcs,
	})
	return nil
}

// shiftArcEndpoint decrements an arc endpoint's id by one if it is of the
// same kind as, and numerically after, the node being removed.
func shiftArcEndpoint(a Arc, removed NodeRef) Arc {
	if a.From.Kind == removed.Kind && a.From.ID > removed.ID {
		a.From.ID--
	}
	if a.To.Kind == removed.Kind && a.To.ID > removed.ID {
		a.To.ID--
	}
	return a
}

// reindexPriorities drops references to the removed transition and shifts
// later transition ids down by one in the priority relation. It is a
// no-op for places, which never appear in Priorities.
func (net *Net) reindexPriorities(kind Kind, removedID int) {
	if kind != TransitionKind || net.Priorities == nil {
		return
	}
	next := make([][]int, 0, len(net.Priorities))
	for i, row := range net.Priorities {
		if i == removedID {
			continue
		}
		nrow := make([]int, 0, len(row))
		for _, t := range row {
			switch {
			case t == removedID:
				continue
			case t > removedID:
				nrow = append(nrow, t-1)
			default:
				nrow = append(nrow, t)
			}
		}
		next = append(next, nrow)
	}
	net.Priorities = next
}

// reindex rebuilds arcsIn/arcsOut on every node from the arcs slice. It is
// called after any structural mutation; O(|V|+|E|) is acceptable for the
// single-threaded, in-memory scale this core targets.
func (net *Net) reindex() {
	for i := range net.places {
		net.places[i].arcsIn = net.places[i].arcsIn[:0]
		net.places[i].arcsOut = net.places[i].arcsOut[:0]
	}
	for i := range net.transitions {
		net.transitions[i].arcsIn = net.transitions[i].arcsIn[:0]
		net.transitions[i].arcsOut = net.transitions[i].arcsOut[:0]
	}
	for i, a := range net.arcs {
		net.attachOut(a.From, i)
		net.attachIn(a.To, i)
	}
}

func (net *Net) attachOut(ref NodeRef, arcIdx int) {
	switch ref.Kind {
	case PlaceKind:
		net.places[ref.ID].arcsOut = append(net.places[ref.ID].arcsOut, arcIdx)
	default:
		net.transitions[ref.ID].arcsOut = append(net.transitions[ref.ID].arcsOut, arcIdx)
	}
}

func (net *Net) attachIn(ref NodeRef, arcIdx int) {
	switch ref.Kind {
	case PlaceKind:
		net.places[ref.ID].arcsIn = append(net.places[ref.ID].arcsIn, arcIdx)
	default:
		net.transitions[ref.ID].arcsIn = append(net.transitions[ref.ID].arcsIn, arcIdx)
	}
}

// Reset restores the initial marking convention for GRAFCET nets: every
// place's token count is normalized to 0 or 1. Other net types are
// untouched, matching spec.md §3 ("For GRAFCET, each Place holds 0 or 1
// token after reset").
func (net *Net) Reset() {
	if net.Type != Grafcet {
		return
	}
	for i := range net.places {
		if net.places[i].Tokens > 1 {
			net.places[i].Tokens = 1
		}
	}
}

// Bounds returns the axis-aligned bounding box of every node's position.
// It is used by exporters that need a canvas size (draw.io, LaTeX)
// instead of each one recomputing it; an empty net yields (0,0,0,0). Supplemented feature, see SPEC_FULL.md §5.
func (net *Net) Bounds() (minX, minY, maxX, maxY float32) {
	first := true
	consider := func(x, y float32) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, p := range net.places {
		consider(p.X, p.Y)
	}
	for _, t := range net.transitions {
		consider(t.X, t.Y)
	}
	return
}

// Validate checks the structural invariants that are not enforced at
// construction time: for TimedEventGraph nets, that every place has
// exactly one incoming and one outgoing arc.
func (net *Net) Validate() error {
	if net.Type != TimedEventGraph {
		return nil
	}
	ok, offending := IsEventGraph(net)
	if !ok {
		return &EventGraphError{Offending: offending}
	}
	return nil
}

func snapshotPlace(p *Place) *Place {
	cp := *p
	cp.arcsIn = append([]int(nil), p.arcsIn...)
	cp.arcsOut = append([]int(nil), p.arcsOut...)
	return &cp
}

func snapshotTransition(t *Transition) *Transition {
	cp := *t
	cp.arcsIn = append([]int(nil), t.arcsIn...)
	cp.arcsOut = append([]int(nil), t.arcsOut...)
	return &cp
}

// sortedCopy returns a sorted copy of xs, used when presenting id lists in
// deterministic order (e.g. priority declarations).
func sortedCopy(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

// Clone returns a deep, independent copy of net: no mutation sink, same
// places/transitions/arcs/priorities by value. Analyses that must operate
// on a copy rather than the original (spec.md §4.6's Canonicalize) start
// from Clone so the caller's net is never touched.
func (net *Net) Clone() *Net {
	out := New(net.Name, net.Type)
	out.places = make([]Place, len(net.places))
	for i, p := range net.places {
		out.places[i] = p
		out.places[i].arcsIn = append([]int(nil), p.arcsIn...)
		out.places[i].arcsOut = append([]int(nil), p.arcsOut...)
	}
	out.transitions = make([]Transition, len(net.transitions))
	for i, t := range net.transitions {
		out.transitions[i] = t
		out.transitions[i].arcsIn = append([]int(nil), t.arcsIn...)
		out.transitions[i].arcsOut = append([]int(nil), t.arcsOut...)
		if t.TimeInterval != nil {
			ti := *t.TimeInterval
			out.transitions[i].TimeInterval = &ti
		}
	}
	out.arcs = append([]Arc(nil), net.arcs...)
	out.Priorities = make([][]int, len(net.Priorities))
	for i, row := range net.Priorities {
		out.Priorities[i] = append([]int(nil), row...)
	}
	return out
}
