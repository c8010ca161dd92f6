package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string
	Values []float64
}

func TestRoundTrip(t *testing.T) {
	codecs := []Codec{JSON{}, Gob{}}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			in := payload{Name: "col3", Values: []float64{1.5, -2, 0}}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "gob"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshalDefault(t *testing.T) {
	b := MustMarshal(nil, payload{Name: "x"})
	assert.NotEmpty(t, b)
}
