package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		rawID        string
		expectErr    bool
		expectedAddr *Address
	}{
		{
			name:         "simple reference",
			rawID:        "emit.emission",
			expectedAddr: &Address{Node: "emit", Socket: "emission"},
		},
		{
			name:         "node name with dots",
			rawID:        "layer.v2.fresnel",
			expectedAddr: &Address{Node: "layer.v2", Socket: "fresnel"},
		},
		{
			name:         "node name with spaces",
			rawID:        "a mix node.color1",
			expectedAddr: &Address{Node: "a mix node", Socket: "color1"},
		},
		{
			name:      "error - empty string",
			rawID:     "",
			expectErr: true,
		},
		{
			name:      "error - no separator",
			rawID:     "emit",
			expectErr: true,
		},
		{
			name:      "error - empty socket",
			rawID:     "emit.",
			expectErr: true,
		},
		{
			name:      "error - empty node",
			rawID:     ".emission",
			expectErr: true,
		},
		{
			name:      "error - invalid node name",
			rawID:     "...surface",
			expectErr: true,
		},
		{
			name:      "error - socket with punctuation",
			rawID:     "emit.emi-ssion",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.rawID)
			if tc.expectErr {
				require.Error(t, err)
				assert.Nil(t, addr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedAddr, addr)
		})
	}
}

func TestParseFields(t *testing.T) {
	addr, err := ParseFields(" a mix node color1 ")
	require.NoError(t, err)
	assert.Equal(t, &Address{Node: "a mix node", Socket: "color1"}, addr)
	assert.Equal(t, "a mix node color1", addr.Fields())
	assert.Equal(t, "a mix node.color1", addr.String())

	_, err = ParseFields("output")
	assert.ErrorContains(t, err, "must have the form node socket")
}

func TestAddress_Equal(t *testing.T) {
	a := &Address{Node: "out", Socket: "surface"}
	assert.True(t, a.Equal(&Address{Node: "out", Socket: "Surface"}))
	assert.False(t, a.Equal(&Address{Node: "Out", Socket: "surface"}))
	assert.False(t, a.Equal(nil))

	var nilAddr *Address
	assert.True(t, nilAddr.Equal(nil))
	assert.Equal(t, "", nilAddr.String())
}
