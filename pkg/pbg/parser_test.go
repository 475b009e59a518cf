package pbg

import (
	"testing"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestParse_True(t *testing.T) {
	CheckOk(t, "TRUE", 1, 0)
}

func TestParse_False(t *testing.T) {
	CheckOk(t, "FALSE", 1, 0)
}

func TestParse_Number(t *testing.T) {
	CheckOk(t, "5", 1, 0)
}

func TestParse_String(t *testing.T) {
	CheckOk(t, "'hello'", 1, 0)
}

func TestParse_Date(t *testing.T) {
	CheckOk(t, "2020-01-01", 1, 0)
}

func TestParse_Key(t *testing.T) {
	CheckOk(t, "[x]", 0, 1)
}

func TestParse_ParenthesisedLiteral(t *testing.T) {
	// One outer parenthesis pair is stripped.
	CheckOk(t, "(TRUE)", 1, 0)
}

func TestParse_Not(t *testing.T) {
	e := CheckOk(t, "(!,TRUE)", 2, 0)
	//
	root := e.Node(e.Root())
	if root.Kind() != NOT || len(root.Children()) != 1 {
		t.Errorf("unexpected root: %s", e.Debug())
	}
}

func TestParse_Comparison(t *testing.T) {
	e := CheckOk(t, "(>,5,3)", 3, 0)
	//
	root := e.Node(e.Root())
	if root.Kind() != GT || len(root.Children()) != 2 {
		t.Errorf("unexpected root: %s", e.Debug())
	}
	//
	lhs := e.Node(root.Children()[0])
	if lhs.Kind() != NUMBER || lhs.Number() != 5 {
		t.Errorf("unexpected lhs: %s", e.Debug())
	}
}

func TestParse_Nested(t *testing.T) {
	e := CheckOk(t, "(&,TRUE,(?,[x]))", 3, 1)
	// Root is always static node 0.
	root := e.Node(StaticRef(0))
	if root.Kind() != AND || len(root.Children()) != 2 {
		t.Errorf("unexpected root: %s", e.Debug())
	}
	// Second child is the EXISTS operator over a dynamic reference.
	exists := e.Node(root.Children()[1])
	if exists.Kind() != EXISTS || !exists.Children()[0].IsDynamic() {
		t.Errorf("unexpected subtree: %s", e.Debug())
	}
	//
	key := e.Node(exists.Children()[0])
	if key.Kind() != KEY || key.Text() != "x" {
		t.Errorf("unexpected key: %s", e.Debug())
	}
}

func TestParse_Siblings(t *testing.T) {
	e := CheckOk(t, "(&,(|,TRUE,FALSE),(|,FALSE,TRUE))", 7, 0)
	//
	root := e.Node(e.Root())
	if root.Kind() != AND || len(root.Children()) != 2 {
		t.Errorf("unexpected root: %s", e.Debug())
	}
	//
	for _, child := range root.Children() {
		if or := e.Node(child); or.Kind() != OR || len(or.Children()) != 2 {
			t.Errorf("unexpected child: %s", e.Debug())
		}
	}
}

func TestParse_ManyArguments(t *testing.T) {
	e := CheckOk(t, "(&,TRUE,TRUE,TRUE,TRUE,TRUE)", 6, 0)
	//
	root := e.Node(e.Root())
	if len(root.Children()) != 5 {
		t.Errorf("unexpected root: %s", e.Debug())
	}
}

func TestParse_KeysInOccurrenceOrder(t *testing.T) {
	e := CheckOk(t, "(&,(?,[a]),(?,[b]),(?,[a]))", 4, 3)
	//
	_, dynamic := e.Segments()
	//
	names := []string{"a", "b", "a"}
	for i := range dynamic {
		if dynamic[i].Text() != names[i] {
			t.Errorf("unexpected dynamic segment order: %v", dynamic)
		}
	}
}

func TestParse_QuotedStructure(t *testing.T) {
	// Structural characters inside strings are payload, not syntax.
	e := CheckOk(t, `(=,'(,)','(,)')`, 3, 0)
	//
	lhs := e.Node(e.Node(e.Root()).Children()[0])
	if lhs.Kind() != STRING || lhs.Text() != "(,)" {
		t.Errorf("unexpected payload: %q", lhs.Text())
	}
}

// ============================================================================
// Negative Tests
// ============================================================================

func TestParse_ErrEmpty(t *testing.T) {
	CheckErr(t, "")
}

func TestParse_ErrUnterminated(t *testing.T) {
	CheckErr(t, "(&,TRUE,")
}

func TestParse_ErrUnterminatedString(t *testing.T) {
	CheckErr(t, "(=,'abc,5)")
}

func TestParse_ErrUnmatchedClosing(t *testing.T) {
	CheckErr(t, "&,TRUE)")
}

func TestParse_ErrUnknownLiteral(t *testing.T) {
	CheckErr(t, "(&,TRUE,maybe)")
}

func TestParse_ErrLowercaseBoolean(t *testing.T) {
	CheckErr(t, "true")
}

func TestParse_ErrLeadingZero(t *testing.T) {
	CheckErr(t, "(>,05,3)")
}

func TestParse_ErrRemainder(t *testing.T) {
	CheckErr(t, "5,6")
}

func TestParse_ErrMissingClosing(t *testing.T) {
	CheckErr(t, "&")
}

// ============================================================================
// Helpers
// ============================================================================

// CheckOk parses an input expected to be valid, checking the resulting
// segment sizes against expectations.
func CheckOk(t *testing.T, input string, numStatic int, numDynamic int) *Expr {
	expr, err := Parse(input)
	//
	if err != nil {
		t.Fatalf("%s: %s", input, err)
	}
	//
	static, dynamic := expr.Segments()
	//
	if len(static) != numStatic || len(dynamic) != numDynamic {
		t.Errorf("%s: expected %d/%d nodes, found %d/%d", input,
			numStatic, numDynamic, len(static), len(dynamic))
	}
	//
	return expr
}

// CheckErr parses an input expected to be rejected with a syntax error.
func CheckErr(t *testing.T, input string) {
	expr, err := Parse(input)
	//
	if err == nil {
		t.Errorf("%s: should not have parsed: %s", input, expr.Debug())
	}
}
