// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync/atomic"

	"github.com/lecrapouille/tpne-core/bexpr"
)

// SimState is the Simulator's lock-free lifecycle state, observable by an
// external renderer without locking (spec.md §5).
type SimState int32

const (
	Idle SimState = iota
	Starting
	Animating
	Ending
)

func (s SimState) String() string {
	switch s {
	case Starting:
		return "starting"
	case Animating:
		return "animating"
	case Ending:
		return "ending"
	default:
		return "idle"
	}
}

// Diagnostics reports what one Step did, in place of failing: the
// simulator never errors out at runtime (spec.md §7), it only explains
// no-ops and partial fires.
type Diagnostics struct {
	Fired    []NodeRef
	Messages []string
}

// inFlightToken is a token animated along a Transition->Place arc,
// counted neither in the source nor the destination place until it lands.
type inFlightToken struct {
	Arc       int
	Remaining float32
}

// Simulator advances one Net by discrete ticks, applying the firing rule
// appropriate to its Type (spec.md §4.5). The zero value is not usable;
// construct with NewSimulator.
type Simulator struct {
	Net      *Net
	Logger   *slog.Logger
	InputCtx bexpr.Context

	// Actions, when set, is called at the start of a GRAFCET tick with the
	// currently active steps, standing in for the excluded runtime's
	// "execute actions of active steps" collaborator.
	Actions func(active []NodeRef)

	// SampleInputs, when set, is called once per GRAFCET tick and its
	// result is merged into InputCtx before receptivities are evaluated,
	// standing in for the excluded runtime's read_inputs() collaborator.
	SampleInputs func() bexpr.Context

	state atomic.Int32

	inFlight     []inFlightToken
	enabledTicks []int
}

// NewSimulator returns a Simulator over net, defaulting Logger to
// slog.Default() and InputCtx to an empty context.
func NewSimulator(net *Net) *Simulator {
	return &Simulator{Net: net, Logger: slog.Default(), InputCtx: bexpr.Context{}}
}

// State reads the simulator's lifecycle state without locking.
func (s *Simulator) State() SimState { return SimState(s.state.Load()) }

func (s *Simulator) setState(st SimState) { s.state.Store(int32(st)) }

func (s *Simulator) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Step advances the simulator by one tick of length dt (seconds), applying
// the per-type firing rule of spec.md §4.5. It never returns an error:
// unsatisfied preconditions are reported in Diagnostics and the tick
// becomes a no-op for the transitions they concern.
func (s *Simulator) Step(ctx context.Context, dt float32) Diagnostics {
	s.setState(Starting)
	defer s.setState(Idle)
	s.setState(Animating)

	if len(s.enabledTicks) != len(s.Net.transitions) {
		s.enabledTicks = make([]int, len(s.Net.transitions))
	}

	var diag Diagnostics
	switch s.Net.Type {
	case Grafcet:
		diag = s.stepGrafcet()
	case TimedPetri, TimedEventGraph:
		diag = s.stepTimed(dt)
	default:
		diag = s.stepUntimed()
	}

	s.setState(Ending)
	return diag
}

// InFlight returns the tokens currently animating along Transition->Place
// arcs, for an external renderer to draw; the slice aliases internal
// storage and is read-only by convention.
func (s *Simulator) InFlight() []inFlightToken { return s.inFlight }

// firingOrder returns transition indices in the deterministic
// conflict-resolution order: Priorities first (a higher-priority
// transition always precedes a lower-priority one it dominates), plain
// iteration order as the tie-break otherwise (spec.md §5, §9 Open
// Question (a)).
func (s *Simulator) firingOrder() []int {
	n := len(s.Net.transitions)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Net.lowerPriority(order[i], order[j])
	})
	return order
}

// enabled reports whether every input place of t holds at least one token.
func (s *Simulator) enabled(t *Transition) bool { return t.Enabled(s.Net) }

// stepUntimed implements the untimed Petri firing rule: fire every
// transition enabled against the marking left by earlier firings this
// tick, in firingOrder (spec.md §4.5).
func (s *Simulator) stepUntimed() Diagnostics {
	var diag Diagnostics
	for _, ti := range s.firingOrder() {
		t := &s.Net.transitions[ti]
		if !s.enabled(t) {
			continue
		}
		s.fire(t, &diag)
	}
	return diag
}

// fire consumes one token from each input place and, for TimedPetri and
// TimedEventGraph nets, animates the outgoing tokens along their arc's
// Duration instead of depositing them immediately.
func (s *Simulator) fire(t *Transition, diag *Diagnostics) {
	delta := map[int]int64{}
	for _, idx := range t.arcsIn {
		a := s.Net.arcs[idx]
		s.Net.places[a.From.ID].Tokens--
		delta[a.From.ID]--
	}
	timed := s.Net.Type == TimedPetri || s.Net.Type == TimedEventGraph
	for _, idx := range t.arcsOut {
		a := s.Net.arcs[idx]
		if timed && a.Duration > 0 && !math.IsNaN(float64(a.Duration)) {
			s.inFlight = append(s.inFlight, inFlightToken{Arc: idx, Remaining: a.Duration})
			continue
		}
		s.Net.places[a.To.ID].Tokens++
		delta[a.To.ID]++
	}
	diag.Fired = append(diag.Fired, t.Ref())
	s.Net.emit(Mutation{Kind: MutFire, TokenDelta: delta, FiredID: t.ID})
}
