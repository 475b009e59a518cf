package pbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Literals(t *testing.T) {
	cases := map[string]string{
		"TRUE":       "TRUE",
		"FALSE":      "FALSE",
		"5":          "5.00",
		"-2.5":       "-2.50",
		"1e2":        "100.00",
		"'ab'":       "'ab'",
		"2020-01-01": "2020-01-01",
		"0987-06-05": "0987-06-05",
		"[key]":      "[key]",
	}
	//
	for input, expected := range cases {
		expr, err := Parse(input)
		require.Nil(t, err, input)
		assert.Equal(t, expected, expr.String(), input)
	}
}

func TestSerialize_Operators(t *testing.T) {
	cases := map[string]string{
		"(!,TRUE)":              "(!,TRUE)",
		"(&,TRUE,FALSE)":        "(&,TRUE,FALSE)",
		"(>=,[x],5)":            "(>=,[x],5.00)",
		"(!=,'a','b')":          "(!=,'a','b')",
		"(&,TRUE,(?,[x]))":      "(&,TRUE,(?,[x]))",
		"(|,(!,TRUE),(!,[ok]))": "(|,(!,TRUE),(!,[ok]))",
		// A stripped outer parenthesis is not reinstated.
		"(TRUE)": "TRUE",
	}
	//
	for input, expected := range cases {
		expr, err := Parse(input)
		require.Nil(t, err, input)
		assert.Equal(t, expected, expr.String(), input)
	}
}

// Serialising any valid expression and reparsing it yields a structurally
// equal expression.
func TestSerialize_RoundTrip(t *testing.T) {
	inputs := []string{
		"TRUE",
		"[key]",
		"3.14",
		"(=,'it\\'s','it\\'s')",
		"(&,TRUE,(?,[x]))",
		"(>,5,3)",
		"(<,2020-01-01,2021-01-01)",
		"(&,(|,[a],[b]),(!,(=,[c],'x,y')),(>=,[n],1e3))",
		"(=,1,1,1,1)",
	}
	//
	for _, input := range inputs {
		first, err := Parse(input)
		require.Nil(t, err, input)
		//
		second, err := Parse(first.String())
		require.Nil(t, err, "%s -> %s", input, first.String())
		//
		assert.True(t, first.Equal(second), "%s != %s", input, first.String())
		assert.Equal(t, first.String(), second.String(), input)
	}
}

// Numbers normalise to two decimal places, hence serialisation becomes
// stable after a single round trip even when precision is lost.
func TestSerialize_NumberNormalisation(t *testing.T) {
	first, err := Parse("(>,3.14159,1e-4)")
	require.Nil(t, err)
	//
	second, err := Parse(first.String())
	require.Nil(t, err)
	//
	assert.Equal(t, "(>,3.14,0.00)", second.String())
}

func TestSerialize_Debug(t *testing.T) {
	expr, err := Parse("(&,TRUE,(?,[x]))")
	require.Nil(t, err)
	//
	expected := "&\n  TRUE\n  ?\n    KEY : [x]\n"
	assert.Equal(t, expected, expr.Debug())
}
