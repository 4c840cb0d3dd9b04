// Copyright (c) 2026 tpne-core contributors
//
// GNU Affero GPL v3

package bexpr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lecrapouille/tpne-core/bexpr"
)

// This example mirrors spec.md §8 scenario 3: parsing "Dcy X14 . foo +"
// and rendering it to C infix syntax.
func Example_postfixParse() {
	expr, err := bexpr.Parse("Dcy X14 . foo +")
	if err != nil {
		panic(err)
	}
	fmt.Println(expr.Infix(bexpr.LangC))
	// Output:
	// ((Dcy & X14) | foo)
}

func TestParseEvaluatesAgainstContext(t *testing.T) {
	expr, err := bexpr.Parse("Dcy X14 . foo +")
	require.NoError(t, err)

	ctx := bexpr.Context{"Dcy": false, "X14": true, "foo": true}
	got, err := expr.Eval(ctx)
	require.NoError(t, err)
	require.True(t, got)
}

func TestParseEmptyIsConstantTrue(t *testing.T) {
	expr, err := bexpr.Parse("")
	require.NoError(t, err)
	got, err := expr.Eval(bexpr.Context{})
	require.NoError(t, err)
	require.True(t, got)
}

func TestParseUnderflowIsBadExpression(t *testing.T) {
	_, err := bexpr.Parse("a .")
	require.Error(t, err)
	require.True(t, errors.Is(err, bexpr.ErrBadExpression))
}

func TestParseLeftoverOperandsIsBadExpression(t *testing.T) {
	_, err := bexpr.Parse("a b")
	require.Error(t, err)
	require.True(t, errors.Is(err, bexpr.ErrBadExpression))
}

func TestEvalUnknownVariable(t *testing.T) {
	expr, err := bexpr.Parse("a")
	require.NoError(t, err)
	_, err = expr.Eval(bexpr.Context{})
	require.Error(t, err)
	require.True(t, errors.Is(err, bexpr.ErrUnknownVariable))
}

func TestInfixStructuredText(t *testing.T) {
	expr, err := bexpr.Parse("a b .")
	require.NoError(t, err)
	require.Equal(t, "(a AND b)", expr.Infix(bexpr.LangST))
}

func TestVariables(t *testing.T) {
	expr, err := bexpr.Parse("Dcy X14 . foo +")
	require.NoError(t, err)
	require.Equal(t, []string{"Dcy", "X14", "foo"}, expr.Variables())
}
