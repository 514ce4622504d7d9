package Dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAutocomplete struct {
	queries []string
	answers map[string][]string
	err     error
}

func (f *fakeAutocomplete) Autocomplete(_ context.Context, q string) ([]string, error) {
	f.queries = append(f.queries, q)
	return f.answers[q], f.err
}

func TestSuggestions_Input(t *testing.T) {
	board := NewState("?", nil)
	source := &fakeAutocomplete{answers: map[string][]string{
		"51": {"51A-12345", "51B-99999"},
	}}
	search := NewSuggestions(board, source, discard)

	require.NoError(t, search.Input(context.Background(), "51"))

	list, visible := board.Suggestions()
	assert.Equal(t, []string{"51A-12345", "51B-99999"}, list)
	assert.True(t, visible)
	assert.Equal(t, []string{"51"}, source.queries)
	assert.Equal(t, "51", board.Search())
}

func TestSuggestions_EmptyQuery(t *testing.T) {
	board := NewState("?", nil)
	source := &fakeAutocomplete{answers: map[string][]string{"51": {"51A-12345"}}}
	search := NewSuggestions(board, source, discard)
	require.NoError(t, search.Input(context.Background(), "51"))

	for _, value := range []string{"", "   "} {
		require.NoError(t, search.Input(context.Background(), value))

		list, visible := board.Suggestions()
		assert.Empty(t, list)
		assert.False(t, visible)
	}
	assert.Equal(t, []string{"51"}, source.queries)
}

func TestSuggestions_NoMatches(t *testing.T) {
	board := NewState("?", nil)
	search := NewSuggestions(board, &fakeAutocomplete{}, discard)

	require.NoError(t, search.Input(context.Background(), "ZZ"))

	list, visible := board.Suggestions()
	assert.Empty(t, list)
	assert.False(t, visible)
}

func TestSuggestions_FailureKeepsList(t *testing.T) {
	board := NewState("?", nil)
	source := &fakeAutocomplete{answers: map[string][]string{"51": {"51A-12345"}}}
	search := NewSuggestions(board, source, discard)
	require.NoError(t, search.Input(context.Background(), "51"))

	source.err = errBackendDown
	assert.Error(t, search.Input(context.Background(), "51A"))

	list, visible := board.Suggestions()
	assert.Equal(t, []string{"51A-12345"}, list)
	assert.True(t, visible)
	assert.Nil(t, board.Notice())
}

func TestSuggestions_Select(t *testing.T) {
	board := NewState("?", nil)
	source := &fakeAutocomplete{answers: map[string][]string{"51": {"51A-12345", "51B-99999"}}}
	search := NewSuggestions(board, source, discard)
	require.NoError(t, search.Input(context.Background(), "51"))

	search.Select("51B-99999")

	assert.Equal(t, "51B-99999", board.Search())
	_, visible := board.Suggestions()
	assert.False(t, visible)
	assert.Len(t, source.queries, 1)
}

func TestSuggestions_Click(t *testing.T) {
	board := NewState("?", nil)
	source := &fakeAutocomplete{answers: map[string][]string{"51": {"51A-12345"}}}
	search := NewSuggestions(board, source, discard)
	require.NoError(t, search.Input(context.Background(), "51"))

	search.Click(SearchInputID)
	_, visible := board.Suggestions()
	assert.True(t, visible)

	search.Click("history-table")
	list, visible := board.Suggestions()
	assert.False(t, visible)
	assert.Equal(t, []string{"51A-12345"}, list)
}
