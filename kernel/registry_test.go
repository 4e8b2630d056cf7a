package kernel

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	names, err := r.FileNames("RQA", "FixedRadius", "ColumnMatBitRec")
	require.NoError(t, err)
	expect.EQ(t, names, []string{"clear_buffer.cl", "vertical_bit.cl", "diagonal_bit.cl", "diagonal_bit_symmetric.cl"})

	names, err = r.FileNames("RecurrencePlot", "FixedRadius", "ColumnByte")
	require.NoError(t, err)
	expect.EQ(t, names, []string{"clear_buffer.cl", "create_matrix_byte.cl"})
}

func TestRegistryMiss(t *testing.T) {
	r := Default()
	_, err := r.FileNames("RQA", "RadiusCorridor", "ColumnMatBitRec")
	expect.True(t, err != nil)
	_, err = r.FileNames("RQA", "FixedRadius", "NoSuchClass")
	expect.True(t, err != nil)
}

func TestRegistryParse(t *testing.T) {
	r, err := Parse([]byte(`{"config_data": [{"computation_class": "RQA",
		"neighbourhood_class": "FixedRadius", "class": "X",
		"kernel_file_names": ["a.cl"]}]}`))
	require.NoError(t, err)
	names, err := r.FileNames("RQA", "FixedRadius", "X")
	require.NoError(t, err)
	expect.EQ(t, names, []string{"a.cl"})

	_, err = Parse([]byte(`{`))
	expect.True(t, err != nil)
	_, err = Parse([]byte(`{"config_data": []}`))
	expect.True(t, err != nil)
}
