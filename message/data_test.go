package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================================================================
// DataSet tests
// ===========================================================================

func TestDataSet_Representation(t *testing.T) {
	tests := []struct {
		name string
		ds   DataSet
		want string
	}{
		{"with unit", DataSet{Address: "3.1.0", Value: "100", Unit: "kWh"}, "3.1.0(100*kWh)"},
		{"without unit", DataSet{Address: "3.1.0", Value: "100"}, "3.1.0(100)"},
		{"just value", DataSet{Value: "100"}, "(100)"},
		{"empty value with address", DataSet{Address: "1.8.0"}, "1.8.0()"},
		{"unit without address is dropped", DataSet{Value: "100", Unit: "kWh"}, "(100)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ds.Representation())
		})
	}
}

func TestParseDataSet(t *testing.T) {
	ds, err := ParseDataSet("3.1.0(100*kWh)")
	require.NoError(t, err)
	assert.Equal(t, DataSet{Address: "3.1.0", Value: "100", Unit: "kWh"}, ds)

	ds, err = ParseDataSet("3.1.0(100)")
	require.NoError(t, err)
	assert.Equal(t, DataSet{Address: "3.1.0", Value: "100"}, ds)

	ds, err = ParseDataSet("(100)")
	require.NoError(t, err)
	assert.Equal(t, DataSet{Value: "100"}, ds)
}

func TestParseDataSet_Malformed(t *testing.T) {
	_, err := ParseDataSet(`"Tralalalala`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestDataSet_RoundTrip(t *testing.T) {
	for _, rep := range []string{"3.1.0(100*kWh)", "3.1.0(100)", "(100)"} {
		ds, err := ParseDataSet(rep)
		require.NoError(t, err)
		assert.Equal(t, rep, ds.Representation())
	}
}

// ===========================================================================
// DataLine tests
// ===========================================================================

func TestParseDataLine_SeveralSets(t *testing.T) {
	dl, err := ParseDataLine("12(12*kWh)13(13*kWh)14(14*kwh)")
	require.NoError(t, err)
	require.Len(t, dl.DataSets, 3)

	assert.Equal(t, DataSet{Address: "12", Value: "12", Unit: "kWh"}, dl.DataSets[0])
	assert.Equal(t, DataSet{Address: "14", Value: "14", Unit: "kwh"}, dl.DataSets[2])
}

func TestParseDataLine_ColonAddresses(t *testing.T) {
	dl, err := ParseDataLine("3:14(314*kWh)4:15(415*kWh)")
	require.NoError(t, err)
	require.Len(t, dl.DataSets, 2)

	assert.Equal(t, "3:14", dl.DataSets[0].Address)
	assert.Equal(t, "4:15", dl.DataSets[1].Address)
}

func TestParseDataLine_Empty(t *testing.T) {
	dl, err := ParseDataLine("")
	require.NoError(t, err)
	assert.Empty(t, dl.DataSets)
}

func TestDataLine_Representation(t *testing.T) {
	dl := NewDataLine(
		DataSet{Address: "3:14", Value: "314", Unit: "kWh"},
		DataSet{Address: "4:15", Value: "415", Unit: "kWh"},
	)

	assert.Equal(t, "3:14(314*kWh)4:15(415*kWh)", dl.Representation())
}

// ===========================================================================
// DataBlock tests
// ===========================================================================

func TestDataBlock_Representation(t *testing.T) {
	db := NewDataBlock(
		NewDataLine(DataSet{Address: "1.8.0", Value: "1", Unit: "kWh"}),
		NewDataLine(DataSet{Address: "1.8.1", Value: "2", Unit: "kWh"}),
	)

	assert.Equal(t, "1.8.0(1*kWh)\r\n1.8.1(2*kWh)\r\n", db.Representation())
}

func TestParseDataBlock(t *testing.T) {
	db, err := ParseDataBlock("1.8.0(1*kWh)\r\n1.8.1(2*kWh)\r\n")
	require.NoError(t, err)
	require.Len(t, db.DataLines, 2)

	assert.Equal(t, "1.8.1", db.DataLines[1].DataSets[0].Address)
}

func TestParseDataBlock_NoTrailingLineEnd(t *testing.T) {
	db, err := ParseDataBlock("1.8.0(1*kWh)\r\n1.8.1(2*kWh)")
	require.NoError(t, err)
	assert.Len(t, db.DataLines, 2)
}

func TestParseDataBlock_Empty(t *testing.T) {
	db, err := ParseDataBlock("")
	require.NoError(t, err)
	assert.Empty(t, db.DataLines)
}

func TestDataBlock_RoundTrip(t *testing.T) {
	rep := "3:14(314*kWh)4:15(415*kWh)\r\n1.8.0(100)\r\n"

	db, err := ParseDataBlock(rep)
	require.NoError(t, err)
	assert.Equal(t, rep, db.Representation())
}

// ===========================================================================
// Encoding tests
// ===========================================================================

func TestEncodeLatin1(t *testing.T) {
	data, err := EncodeLatin1("1.8.0(1*kWh)")
	require.NoError(t, err)
	assert.Equal(t, []byte("1.8.0(1*kWh)"), data)

	// Degree sign U+00B0 is a single latin-1 byte.
	data, err = EncodeLatin1("temp(21.5*°C)")
	require.NoError(t, err)
	assert.Equal(t, byte(0xB0), data[10])
}

func TestEncodeLatin1_OutOfRange(t *testing.T) {
	_, err := EncodeLatin1("price(1*€)")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotLatin1)
}

func TestDecodeLatin1_RoundTrip(t *testing.T) {
	raw := []byte{'a', 0x01, 0x7F, 0x80, 0xB0, 0xFF}
	decoded := DecodeLatin1(raw)

	encoded, err := EncodeLatin1(decoded)
	require.NoError(t, err)
	assert.Equal(t, raw, encoded)
}
