package sets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKeepsFirstInsertion(t *testing.T) {
	s := OrderedFromSlice([]string{"b", "a", "b", "c", "a"})

	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("d"))
}

func TestOrderedZeroValue(t *testing.T) {
	var s Ordered[string]
	assert.Empty(t, s.Keys())
	assert.NotNil(t, s.Keys())

	assert.True(t, s.Append("x"))
	assert.False(t, s.Append("x"))
	assert.Equal(t, []string{"x"}, s.Keys())
}

func TestOrderedKeysIsCopy(t *testing.T) {
	s := OrderedFromSlice([]string{"a", "b"})
	keys := s.Keys()
	keys[0] = "z"

	assert.Equal(t, []string{"a", "b"}, s.Keys())
}

func TestOrderedMarshalJSON(t *testing.T) {
	s := OrderedFromSlice([]string{"p1", "p2", "p1"})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["p1","p2"]`, string(data))

	data, err = json.Marshal(NewOrdered[string](0))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestSet(t *testing.T) {
	s := New[string]()
	assert.False(t, s.Has("a"))

	s.Append("a")
	s.Append("a")
	assert.True(t, s.Has("a"))
	assert.Len(t, s, 1)
}
