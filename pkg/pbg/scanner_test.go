package pbg

import (
	"testing"

	"github.com/pbglang/pbg/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanString(t *testing.T, input string) scan {
	sc, err := scanExpr(source.NewSourceFile("test", []byte(input)))
	require.Nil(t, err, input)
	//
	return sc
}

func TestScanner_BareLiteral(t *testing.T) {
	sc := scanString(t, "TRUE")
	//
	assert.Equal(t, []int{0, -1}, sc.fields)
	assert.Equal(t, []int{4}, sc.lengths)
	assert.Empty(t, sc.closings)
	assert.Equal(t, 0, sc.numKeys)
}

func TestScanner_SimpleOperator(t *testing.T) {
	//                   0123456
	sc := scanString(t, "(>,5,3)")
	//
	assert.Equal(t, []int{1, 3, 5, -1}, sc.fields)
	assert.Equal(t, []int{1, 1, 1}, sc.lengths)
	assert.Equal(t, []int{6}, sc.closings)
}

func TestScanner_Nested(t *testing.T) {
	//                   0123456789012345
	sc := scanString(t, "(&,TRUE,(?,[x]))")
	//
	assert.Equal(t, []int{1, 3, 9, 11, -1}, sc.fields)
	assert.Equal(t, []int{1, 4, 1, 3}, sc.lengths)
	assert.Equal(t, []int{14, 15}, sc.closings)
	assert.Equal(t, 1, sc.numKeys)
}

func TestScanner_Siblings(t *testing.T) {
	//                   0123456789012345678901
	sc := scanString(t, "(&,(|,TRUE),(|,TRUE))")
	//
	assert.Equal(t, []int{1, 4, 6, 13, 15, -1}, sc.fields)
	assert.Equal(t, []int{1, 1, 4, 1, 4}, sc.lengths)
	assert.Equal(t, []int{10, 19, 20}, sc.closings)
}

func TestScanner_QuoteAwareness(t *testing.T) {
	// Commas, brackets and parentheses inside strings count for nothing.
	sc := scanString(t, `(=,'a,b)[',[k])`)
	//
	assert.Equal(t, 1, sc.numKeys)
	assert.Equal(t, 3, sc.numFields())
	assert.Equal(t, []int{14}, sc.closings)
}

func TestScanner_EscapedQuote(t *testing.T) {
	sc := scanString(t, `(=,'don\'t','don\'t')`)
	//
	assert.Equal(t, 3, sc.numFields())
	assert.Equal(t, 0, sc.numKeys)
}

func TestScanner_Errors(t *testing.T) {
	for _, input := range []string{
		"",
		"(&,TRUE,",
		"(&,TRUE",
		"&,TRUE)",
		"'unterminated",
		"(=,'a,b)",
		"((",
	} {
		_, err := scanExpr(source.NewSourceFile("test", []byte(input)))
		assert.NotNil(t, err, input)
	}
}
