package Dashboard

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// SearchInputID is the plate search field; clicks anywhere else dismiss
// the suggestion list.
const SearchInputID = "plateInput"

const minQueryLength = 1

// SuggestionSource answers plate autocomplete queries.
type SuggestionSource interface {
	Autocomplete(ctx context.Context, q string) ([]string, error)
}

// Suggestions drives the plate search box. Every input change issues its
// own query and the response replaces the list wholesale. Responses are
// applied in the order they resolve, so a slow earlier query can overwrite
// a later one.
type Suggestions struct {
	board  *State
	source SuggestionSource
	logger *slog.Logger
}

func NewSuggestions(board *State, source SuggestionSource, logger *slog.Logger) *Suggestions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggestions{board: board, source: source, logger: logger}
}

// Input handles one change of the search field.
func (s *Suggestions) Input(ctx context.Context, value string) error {
	s.board.setSearch(value)

	query := strings.TrimSpace(value)
	if utf8.RuneCountInString(query) < minQueryLength {
		s.board.setSuggestions(nil, false)
		return nil
	}

	plates, err := s.source.Autocomplete(ctx, query)
	if err != nil {
		s.logger.Warn("autocomplete failed", "q", query, "err", err)
		return err
	}
	s.board.setSuggestions(plates, len(plates) > 0)
	return nil
}

// Select copies a picked suggestion into the search field.
func (s *Suggestions) Select(plate string) {
	s.board.setSearch(plate)
	s.board.hideSuggestions()
}

// Click handles a click on the element with id target.
func (s *Suggestions) Click(target string) {
	if target != SearchInputID {
		s.board.hideSuggestions()
	}
}
