package isearch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSingleReplaces(t *testing.T) {
	s := NewSelection[drug](nil, false, 0, "")
	for _, d := range drugs("vit", 1, 3) {
		added, err := s.Select(d)
		require.NoError(t, err)
		assert.True(t, added)
	}

	assert.Equal(t, 1, s.Len())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "vit-3", cur.Name)
}

func TestSelectionMultiSkipsDuplicates(t *testing.T) {
	s := NewSelection[drug](nil, true, 0, "")
	d := drug{ID: 7, Name: "zinc"}

	added, err := s.Select(d)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Select(d)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"7"}, s.Keys())
}

func TestSelectionCapRejectsWithoutChange(t *testing.T) {
	s := NewSelection[drug](nil, true, 2, "Two at most.")
	for _, d := range drugs("tab", 1, 2) {
		_, err := s.Select(d)
		require.NoError(t, err)
	}

	added, err := s.Select(drug{ID: 99, Name: "extra"})

	assert.False(t, added)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSelectionLimit)
	var limit *SelectionLimitError
	require.True(t, errors.As(err, &limit))
	assert.Equal(t, 2, limit.Max)
	assert.Equal(t, "Two at most.", err.Error())
	assert.Equal(t, []string{"1", "2"}, s.Keys())
}

func TestSelectionRemoveFreesCapacity(t *testing.T) {
	s := NewSelection[drug](nil, true, 1, "")
	_, err := s.Select(drug{ID: 1, Name: "a"})
	require.NoError(t, err)

	assert.True(t, s.Remove("1"))
	assert.False(t, s.Remove("1"))

	added, err := s.Select(drug{ID: 2, Name: "b"})
	require.NoError(t, err)
	assert.True(t, added)
}

func TestSelectionItemsIsACopy(t *testing.T) {
	s := NewSelection[drug](nil, true, 0, "")
	_, _ = s.Select(drug{ID: 1, Name: "a"})

	items := s.Items()
	items[0].Name = "changed"

	cur, _ := s.Current()
	assert.Equal(t, "a", cur.Name)

	s.Clear()
	assert.Nil(t, s.Items())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSelectionDefaultKeyFallsBackToSprint(t *testing.T) {
	s := NewSelection[string](nil, true, 0, "")
	_, _ = s.Select("aspirin")
	assert.True(t, s.Contains("aspirin"))
}

func TestSelectionLimitErrorDefaultMessage(t *testing.T) {
	err := &SelectionLimitError{Max: 5}
	assert.Equal(t, "selection limit exceeded: at most 5 items", err.Error())
}
