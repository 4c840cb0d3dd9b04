// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package formats

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/lecrapouille/tpne-core"
)

// placeRecord, transitionRecord, arcRecord and netRecord are the wire
// records json.go decodes into before building a *tpne.Net. With
// ImportOptions.Strict, their validator struct tags (including those of
// every place, transition and arc record) are checked before the net is
// built. ImportPNML decodes into the formats/pnml types instead and does
// not use these records.
type placeRecord struct {
	ID      int     `json:"id" validate:"gte=0"`
	Caption string  `json:"caption"`
	X       float32 `json:"x" validate:"finiteduration"`
	Y       float32 `json:"y" validate:"finiteduration"`
	Tokens  uint64  `json:"tokens"`
}

type transitionRecord struct {
	ID      int     `json:"id" validate:"gte=0"`
	Caption string  `json:"caption"`
	X       float32 `json:"x" validate:"finiteduration"`
	Y       float32 `json:"y" validate:"finiteduration"`
	Angle   float32 `json:"angle" validate:"finiteduration"`
}

type arcRecord struct {
	From     string   `json:"from" validate:"required"`
	To       string   `json:"to" validate:"required"`
	Duration *float32 `json:"duration,omitempty"`
}

type netRecord struct {
	Name        string             `json:"name" validate:"required"`
	Type        string             `json:"type" validate:"required"`
	Places      []placeRecord      `json:"places" validate:"dive"`
	Transitions []transitionRecord `json:"transitions" validate:"dive"`
	Arcs        []arcRecord        `json:"arcs" validate:"dive"`
}

// recordValidate is the package-wide validator instance, built once with
// the custom "finiteduration" rule registered — the same
// validator.New()-plus-RegisterValidation shape as
// jinterlante1206-AleutianLocal/services/orchestrator/datatypes/chat.go's
// chatValidate.
var (
	recordValidateOnce sync.Once
	recordValidate     *validator.Validate
)

func sharedValidator() *validator.Validate {
	recordValidateOnce.Do(func() {
		recordValidate = validator.New()
		_ = recordValidate.RegisterValidation("finiteduration", validateFiniteDuration)
	})
	return recordValidate
}

// validateFiniteDuration rejects NaN and +/-Inf, the numeric-field rule
// spec.md §7's InvalidInput kind names explicitly ("non-finite number
// where finite required").
func validateFiniteDuration(fl validator.FieldLevel) bool {
	v := float64(fl.Field().Float())
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateRecord runs the shared validator over rec and wraps the first
// failure as tpne.ErrInvalidInput, matching the root package's own error
// hierarchy rather than leaking a validator.ValidationErrors type across
// the package boundary.
func validateRecord(rec any) error {
	if err := sharedValidator().Struct(rec); err != nil {
		return fmt.Errorf("formats: %w: %s", tpne.ErrInvalidInput, err)
	}
	return nil
}

// validateArc additionally rejects a negative duration, a rule that
// cannot be expressed as a struct tag once Duration is a pointer
// (distinguishing "absent" from "zero").
func validateArc(a arcRecord) error {
	if a.Duration != nil && (*a.Duration < 0 || math.IsNaN(float64(*a.Duration))) {
		return fmt.Errorf("formats: %w: arc %s->%s has a negative or non-finite duration", tpne.ErrInvalidInput, a.From, a.To)
	}
	return nil
}
