package binfile

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/pbglang/pbg/pkg/pbg"
)

// ============================================================================
// Binary File Format
// ============================================================================

// PBGBINARY is the identifier expected at the start of every compiled rule
// file.
var PBGBINARY = [8]byte{'p', 'b', 'g', 'b', 'i', 'n', 'r', 'y'}

// BINFILE_MAJOR_VERSION indicates the major version of the binary file
// format.  Files with a different major version cannot be decoded.
const BINFILE_MAJOR_VERSION uint16 = 1

// BINFILE_MINOR_VERSION indicates the minor version of the binary file
// format.
const BINFILE_MINOR_VERSION uint16 = 0

// BinaryFile is a programmatic representation of an underlying compiled rule
// file: a versioned header followed by the two node segments of an
// expression, flattened into a wire-friendly shape.
type BinaryFile struct {
	// Header for the binary file.
	Header Header
	// Static segment of the encoded expression.
	Static []Node
	// Dynamic segment of the encoded expression.
	Dynamic []Node
}

// Header provides a structured header for the binary file format, supporting
// versioning of the format itself.
type Header struct {
	Identifier   [8]byte
	MajorVersion uint16
	MinorVersion uint16
}

// Node is the wire form of a single expression node.  Exactly one payload
// field is populated for any given kind, with the remainder omitted from the
// encoding.
type Node struct {
	Kind     uint8   `cbor:"0,keyasint"`
	Number   float64 `cbor:"1,keyasint,omitempty"`
	Text     string  `cbor:"2,keyasint,omitempty"`
	Date     [3]int  `cbor:"3,keyasint,omitempty"`
	Children []int   `cbor:"4,keyasint,omitempty"`
}

// Encode a given expression into a compiled rule file.
func Encode(expr *pbg.Expr) ([]byte, error) {
	static, dynamic := expr.Segments()
	//
	binf := BinaryFile{
		Header:  Header{PBGBINARY, BINFILE_MAJOR_VERSION, BINFILE_MINOR_VERSION},
		Static:  encodeNodes(static),
		Dynamic: encodeNodes(dynamic),
	}
	//
	return cbor.Marshal(binf)
}

// Decode a compiled rule file back into an expression.  The header is
// checked first and, following that, the decoded segments are re-validated in
// full; a corrupted file can never yield an ill-formed expression.
func Decode(data []byte) (*pbg.Expr, error) {
	var binf BinaryFile
	//
	if err := cbor.Unmarshal(data, &binf); err != nil {
		return nil, err
	}
	//
	if binf.Header.Identifier != PBGBINARY {
		return nil, fmt.Errorf("malformed rule file (invalid identifier)")
	} else if binf.Header.MajorVersion != BINFILE_MAJOR_VERSION {
		return nil, fmt.Errorf("incompatible rule file (version %d.%d)",
			binf.Header.MajorVersion, binf.Header.MinorVersion)
	}
	//
	static, err := decodeNodes(binf.Static)
	if err != nil {
		return nil, err
	}
	//
	dynamic, err := decodeNodes(binf.Dynamic)
	if err != nil {
		return nil, err
	}
	//
	return pbg.NewExpr(static, dynamic)
}

func encodeNodes(nodes []pbg.Node) []Node {
	wire := make([]Node, len(nodes))
	//
	for i := range nodes {
		wire[i] = encodeNode(&nodes[i])
	}
	//
	return wire
}

func encodeNode(node *pbg.Node) Node {
	var encoded = Node{Kind: uint8(node.Kind())}
	//
	switch node.Kind() {
	case pbg.NUMBER:
		encoded.Number = node.Number()
	case pbg.STRING, pbg.KEY:
		encoded.Text = node.Text()
	case pbg.DATE:
		date := node.Date()
		encoded.Date = [3]int{date.Year, date.Month, date.Day}
	default:
		if children := node.Children(); len(children) > 0 {
			encoded.Children = make([]int, len(children))
			for i, child := range children {
				encoded.Children[i] = int(child)
			}
		}
	}
	//
	return encoded
}

func decodeNodes(wire []Node) ([]pbg.Node, error) {
	nodes := make([]pbg.Node, len(wire))
	//
	for i := range wire {
		node, err := decodeNode(&wire[i])
		if err != nil {
			return nil, err
		}
		//
		nodes[i] = node
	}
	//
	return nodes, nil
}

func decodeNode(wire *Node) (pbg.Node, error) {
	kind := pbg.Kind(wire.Kind)
	//
	switch kind {
	case pbg.TRUE:
		return pbg.True(), nil
	case pbg.FALSE:
		return pbg.False(), nil
	case pbg.NUMBER:
		return pbg.Number(wire.Number), nil
	case pbg.STRING:
		return pbg.String(wire.Text), nil
	case pbg.DATE:
		return pbg.NewDate(wire.Date[0], wire.Date[1], wire.Date[2]), nil
	case pbg.KEY:
		return pbg.Key(wire.Text), nil
	}
	//
	if !kind.IsOperator() {
		return pbg.Node{}, fmt.Errorf("malformed rule file (unknown node kind %d)", wire.Kind)
	}
	//
	children := make([]pbg.Ref, len(wire.Children))
	for i, child := range wire.Children {
		children[i] = pbg.Ref(child)
	}
	//
	return pbg.Operator(kind, children...), nil
}
