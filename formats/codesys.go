// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lecrapouille/tpne-core"
)

// plcOpenSFC and its children model the small CODESYS PLCopen XML subset
// spec.md §4.7 names: `<step initialStep>`, `<transition><condition>`,
// `<inVariable>` for receptivities.
type plcOpenSFC struct {
	XMLName xml.Name          `xml:"sfc"`
	Steps   []plcOpenStep     `xml:"step"`
	Trans   []plcOpenTransDef `xml:"transition"`
}

type plcOpenStep struct {
	Name        string `xml:"name,attr"`
	InitialStep bool   `xml:"initialStep,attr,omitempty"`
}

type plcOpenTransDef struct {
	Name      string           `xml:"name,attr"`
	Condition plcOpenCondition `xml:"condition"`
}

type plcOpenCondition struct {
	InVariable string `xml:"inVariable"`
}

// ExportCodesys writes net as a PLCopen SFC XML fragment. net.Type must
// be tpne.Grafcet: CODESYS SFC steps/transitions correspond one-to-one to
// GRAFCET places/transitions.
func ExportCodesys(net *tpne.Net, w io.Writer) error {
	if net.Type != tpne.Grafcet {
		return fmt.Errorf("formats: %w: CODESYS export requires a GRAFCET net", tpne.ErrInvalidInput)
	}

	sfc := plcOpenSFC{}
	for i, p := range net.Places() {
		sfc.Steps = append(sfc.Steps, plcOpenStep{
			Name:        stepName(p.Caption, p.Key()),
			InitialStep: i == 0 && p.Tokens > 0,
		})
	}
	for i := range net.Transitions() {
		t := &net.Transitions()[i]
		sfc.Trans = append(sfc.Trans, plcOpenTransDef{
			Name:      t.Key(),
			Condition: plcOpenCondition{InVariable: t.Caption},
		})
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(sfc); err != nil {
		return fmt.Errorf("formats: %w: %s", ErrIoError, err)
	}
	return nil
}

func stepName(caption, key string) string {
	if caption != "" {
		return caption
	}
	return key
}
