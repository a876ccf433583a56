package metric

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_EmitAll(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	err := e.EmitAll([]Observation{
		{Name: "bird.ipv4.memory.total", Value: 182272, Timestamp: 1700000000},
		{Name: "bird.ipv4.state.k1", Value: 4, Timestamp: 1700000000},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"bird.ipv4.memory.total\t182272\t1700000000\n"+
			"bird.ipv4.state.k1\t4\t1700000000\n",
		buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestEmitter_WriteError(t *testing.T) {
	e := NewEmitter(failingWriter{})

	err := e.Emit(Observation{Name: "x", Value: 1, Timestamp: 1})
	assert.ErrorContains(t, err, `"x"`)
}
