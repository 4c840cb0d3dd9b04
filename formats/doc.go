// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

/*
Package formats implements the import/export layer described in spec.md
§4.7: one file per serialized representation of a tpne.Net, each exposing
a read and/or write function, mirroring the teacher's own split between
nets.go (in-memory model) and parser.go/scanner.go/pnmlwrite.go
(textual forms) and the two-function dispatch contract of spec.md §9
("read(path) -> Net, write(&Net, path) -> Result").

Readers and writers take an io.Reader/io.Writer rather than a path
(ImportFlowshop, which takes an already-parsed [][]float64, excepted),
matching spec.md §5 ("the caller is responsible for scoped acquisition
and guaranteed release of that handle"): this package never opens a
file itself. Importers build into a local *tpne.Net and only return it
on full success (spec.md §4.7: "on any validation error the in-progress
net is discarded").
*/
package formats

import "errors"

// ErrIoError wraps an underlying I/O failure (spec.md §7's IoError kind).
// The teacher never needs this kind since dalzilio-nets reads/writes are
// thin wrappers around bufio/os calls that return their own errors
// unwrapped; we introduce the sentinel here because spec.md names IoError
// as a distinct error kind that callers must be able to match with
// errors.Is, independent of which syscall or encoding layer produced it.
var ErrIoError = errors.New("format i/o error")

// ImportOptions is the per-call options struct every importer in this
// package accepts, following the teacher/pack idiom of a per-call options
// struct instead of package-level state (lvlath's matrix.MatrixOptions).
// Only ImportJSON reads it; ImportPNML, ImportTEG and ImportFlowshop
// ignore it.
type ImportOptions struct {
	// Strict makes ImportJSON reject any field validate.go's rules flag
	// before building the net. When false (the default), those rules are
	// not checked and ImportJSON only fails on malformed JSON or
	// structural errors (non-dense ids, unknown node references, negative
	// or NaN arc durations).
	Strict bool
}
