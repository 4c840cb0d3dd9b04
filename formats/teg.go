// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lecrapouille/tpne-core"
)

// ExportTEG writes net's adjacency matrices as the human-readable timed
// event graph textual form spec.md §4.7 names: one line per place,
// `Ti -> Tj : tokens=n duration=d`. net must be an event graph.
func ExportTEG(net *tpne.Net, w io.Writer) error {
	ok, offending := tpne.IsEventGraph(net)
	if !ok {
		return &tpne.EventGraphError{Offending: offending}
	}
	buf := bufio.NewWriter(w)
	for _, p := range net.Places() {
		in := net.Arcs()[p.ArcsIn()[0]]
		out := net.Arcs()[p.ArcsOut()[0]]
		if _, err := fmt.Fprintf(buf, "%s -> %s : tokens=%d duration=%g\n",
			in.From.Key(), out.To.Key(), p.Tokens, in.Duration); err != nil {
			return fmt.Errorf("formats: %w: %s", ErrIoError, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}

// ImportTEG reads the textual form ExportTEG produces, building a fresh
// timed event graph: one transition per distinct Tn reference, one place
// per line connecting them.
func ImportTEG(r io.Reader, opts ImportOptions) (*tpne.Net, error) {
	net := tpne.New("teg", tpne.TimedEventGraph)
	ids := map[string]tpne.NodeRef{}
	ensureTransition := func(key string) (tpne.NodeRef, error) {
		if ref, ok := ids[key]; ok {
			return ref, nil
		}
		tr, err := net.AddTransition(-1, key, 0, 0, 0)
		if err != nil {
			return tpne.NodeRef{}, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		ref := tr.Ref()
		ids[key] = ref
		return ref, nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 6 || fields[1] != "->" || fields[3] != ":" {
			return nil, fmt.Errorf("formats: %w: line %d: malformed teg line %q", tpne.ErrInvalidInput, lineNo, line)
		}
		from, err := ensureTransition(fields[0])
		if err != nil {
			return nil, err
		}
		to, err := ensureTransition(fields[2])
		if err != nil {
			return nil, err
		}
		tokens, duration, err := parseTegAttrs(fields[4], fields[5])
		if err != nil {
			return nil, fmt.Errorf("formats: %w: line %d: %s", tpne.ErrInvalidInput, lineNo, err)
		}
		p, err := net.AddPlace(-1, "", 0, 0, tokens)
		if err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		if _, err := net.AddArc(from, p.Ref(), duration); err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
		if _, err := net.AddArc(p.Ref(), to, 0); err != nil {
			return nil, fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return net, nil
}

func parseTegAttrs(tokensField, durationField string) (tokens uint64, duration float32, err error) {
	tokensStr, ok := strings.CutPrefix(tokensField, "tokens=")
	if !ok {
		return 0, 0, fmt.Errorf("expected tokens=n, got %q", tokensField)
	}
	durationStr, ok := strings.CutPrefix(durationField, "duration=")
	if !ok {
		return 0, 0, fmt.Errorf("expected duration=d, got %q", durationField)
	}
	tokens, err = strconv.ParseUint(tokensStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid token count %q", tokensStr)
	}
	d, err := strconv.ParseFloat(durationStr, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid duration %q", durationStr)
	}
	return tokens, float32(d), nil
}
