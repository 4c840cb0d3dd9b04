// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package tpne

// stepTimed implements the TimedPetri/TimedEventGraph tick: in-flight
// tokens advance by dt and land once their remaining duration reaches
// zero, then enabled transitions fire in firingOrder, subject to their
// optional TimeInterval firing window (spec.md §4.5, SPEC_FULL.md §5).
func (s *Simulator) stepTimed(dt float32) Diagnostics {
	var diag Diagnostics
	s.advanceInFlight(dt)

	for _, ti := range s.firingOrder() {
		t := &s.Net.transitions[ti]
		if !s.enabled(t) {
			s.enabledTicks[ti] = 0
			continue
		}
		s.enabledTicks[ti]++
		if t.TimeInterval != nil && !t.TimeInterval.Contains(s.enabledTicks[ti]) {
			diag.Messages = append(diag.Messages, t.Key()+": enabled but outside its firing window")
			continue
		}
		s.fire(t, &diag)
		s.enabledTicks[ti] = 0
	}
	return diag
}

// advanceInFlight reduces the remaining delay of every token in transit by
// dt, depositing it in its destination place once it arrives.
func (s *Simulator) advanceInFlight(dt float32) {
	if len(s.inFlight) == 0 {
		return
	}
	kept := s.inFlight[:0]
	for _, tok := range s.inFlight {
		tok.Remaining -= dt
		if tok.Remaining <= 0 {
			a := s.Net.arcs[tok.Arc]
			s.Net.places[a.To.ID].Tokens++
			continue
		}
		kept = append(kept, tok)
	}
	s.inFlight = kept
}
