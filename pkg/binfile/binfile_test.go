package binfile

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/pbglang/pbg/pkg/pbg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinfile_RoundTrip(t *testing.T) {
	inputs := []string{
		"TRUE",
		"[key]",
		"(>,5,3)",
		"(&,TRUE,(?,[x]))",
		"(&,(|,[a],[b]),(!,(=,[c],'x,y')),(>=,[n],2020-01-01))",
	}
	//
	for _, input := range inputs {
		expr, serr := pbg.Parse(input)
		require.Nil(t, serr, input)
		//
		bytes, err := Encode(expr)
		require.NoError(t, err, input)
		//
		decoded, err := Decode(bytes)
		require.NoError(t, err, input)
		//
		assert.True(t, expr.Equal(decoded), input)
		assert.Equal(t, expr.String(), decoded.String(), input)
	}
}

func TestBinfile_DecodedEvaluates(t *testing.T) {
	expr, serr := pbg.Parse("(&,(?,[x]),(>,[x],3))")
	require.Nil(t, serr)
	//
	bytes, err := Encode(expr)
	require.NoError(t, err)
	//
	decoded, err := Decode(bytes)
	require.NoError(t, err)
	//
	value, err := decoded.Evaluate(pbg.MapResolver{"x": pbg.Number(5)})
	require.NoError(t, err)
	assert.True(t, value)
}

func TestBinfile_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a rule file"))
	assert.Error(t, err)
}

func TestBinfile_RejectsWrongIdentifier(t *testing.T) {
	expr, serr := pbg.Parse("TRUE")
	require.Nil(t, serr)
	//
	bytes, err := Encode(expr)
	require.NoError(t, err)
	// Corrupt the identifier in the re-encoded form.
	var binf BinaryFile
	require.NoError(t, cbor.Unmarshal(bytes, &binf))
	binf.Header.Identifier[0] = 'x'
	//
	bytes, err = cbor.Marshal(binf)
	require.NoError(t, err)
	//
	_, err = Decode(bytes)
	assert.Error(t, err)
}

func TestBinfile_RejectsDanglingRefs(t *testing.T) {
	binf := BinaryFile{
		Header: Header{PBGBINARY, BINFILE_MAJOR_VERSION, BINFILE_MINOR_VERSION},
		Static: []Node{{Kind: uint8(pbg.NOT), Children: []int{42}}},
	}
	//
	bytes, err := cbor.Marshal(binf)
	require.NoError(t, err)
	//
	_, err = Decode(bytes)
	assert.Error(t, err)
}
