// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

/*
Package tpne defines the core data model, firing semantics and structural
analyses shared by the Petri net / GRAFCET formalisms: untimed Petri nets,
timed Petri nets, timed event graphs and GRAFCET sequential function charts.

# The net model

A Net is a bipartite graph of Place and Transition nodes connected by Arcs.
Places hold tokens; transitions consume tokens from their input places and
produce tokens in their output places when they fire. The bipartite
invariant, that an arc never connects two nodes of the same kind, is
enforced at the only place new arcs can appear, AddArc, so every other
package in this module may rely on it without re-checking.

# Net types

The Type field of a Net selects its firing semantics, applied by the
Simulator:

  - Petri: classic untimed place/transition net.
  - TimedPetri: Petri net whose Transition->Place arcs carry a Duration,
    animated as tokens in flight.
  - TimedEventGraph: a Petri net restricted so every place has exactly one
    incoming and one outgoing arc; this structural restriction is what
    makes the Max-Plus analyses in this module meaningful.
  - GRAFCET: places are called steps, transitions carry boolean
    receptivities compiled by package bexpr.

# Companion packages

Package maxplus implements sparse matrices over the tropical (max, +)
semiring. Package howard implements Howard's policy-iteration algorithm for
computing cycle times on a weighted digraph, used to find a net's critical
cycle. Package bexpr compiles the postfix boolean expressions used as
GRAFCET receptivities. Package formats implements the import/export side:
JSON, PNML, Graphviz, draw.io, LaTeX/TikZ, the four-file PN-editor format,
generated Grafcet C++, Symfony workflow YAML, CODESYS PLCopen XML,
Julia/MaxPlus scripts, flowshop matrices and the timed-event-graph text
form.
*/
package tpne
