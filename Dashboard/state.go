// Package Dashboard holds the dashboard's owned UI state and the components
// that keep it in sync with the detection backend.
//
// State is the only shared mutable resource. Components commit whole updates
// through its methods; renderers only ever see a copied View.
package Dashboard

import (
	"sync"
	"time"

	"SpeedWatch/Models"
)

// Notice is the transient message shown in the alert box.
type Notice struct {
	Level   Models.NotificationLevel `json:"level"`
	Source  string                   `json:"source"`
	Message string                   `json:"message"`
	At      time.Time                `json:"at"`
}

// StreamStatus describes the live subscription.
type StreamStatus struct {
	Connected  bool  `json:"connected"`
	Received   int64 `json:"received"`
	Dropped    int64 `json:"dropped"`
	Reconnects int64 `json:"reconnects"`
}

// View is an immutable rendering of State.
type View struct {
	Rows               []Models.ViolationRow `json:"rows"`
	Stats              Models.AggregateStats `json:"stats"`
	StatsUpdatedAt     time.Time             `json:"stats_updated_at"`
	Video              Models.VideoState     `json:"video"`
	CameraFeed         string                `json:"camera_feed"`
	PlaybackFeed       string                `json:"playback_feed"`
	Search             string                `json:"search"`
	Suggestions        []string              `json:"suggestions"`
	SuggestionsVisible bool                  `json:"suggestions_visible"`
	Notice             *Notice               `json:"notice,omitempty"`
	Stream             StreamStatus          `json:"stream"`
	Version            uint64                `json:"version"`
}

// State is the dashboard document.
type State struct {
	mu sync.RWMutex

	unknown  string
	imageURL func(string) string

	records []Models.ViolationRecord

	stats          Models.AggregateStats
	statsUpdatedAt time.Time

	video        Models.VideoState
	cameraFeed   string
	playbackFeed string

	search             string
	suggestions        []string
	suggestionsVisible bool

	notice *Notice
	stream StreamStatus

	version uint64
}

// NewState creates an empty dashboard. unknown is the placeholder for
// missing registry fields; imageURL resolves capture filenames.
func NewState(unknown string, imageURL func(string) string) *State {
	return &State{unknown: unknown, imageURL: imageURL, video: Models.VideoIdle}
}

func (s *State) commit() { s.version++ }

func (s *State) replaceRecords(records []Models.ViolationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]Models.ViolationRecord(nil), records...)
	s.commit()
}

func (s *State) prependRecord(record Models.ViolationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]Models.ViolationRecord, 0, len(s.records)+1)
	next = append(next, record)
	s.records = append(next, s.records...)
	s.commit()
}

// Records returns the table contents in render order.
func (s *State) Records() []Models.ViolationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Models.ViolationRecord(nil), s.records...)
}

// Rows projects the table for rendering.
func (s *State) Rows() []Models.ViolationRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows()
}

func (s *State) rows() []Models.ViolationRow {
	rows := make([]Models.ViolationRow, 0, len(s.records))
	for _, record := range s.records {
		rows = append(rows, record.Row(s.unknown, s.imageURL))
	}
	return rows
}

// ReplaceStats swaps in a complete stats snapshot.
func (s *State) ReplaceStats(stats Models.AggregateStats, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	s.statsUpdatedAt = at
	s.commit()
}

// Stats returns the displayed counters.
func (s *State) Stats() Models.AggregateStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *State) setVideo(state Models.VideoState, cameraFeed, playbackFeed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video = state
	s.cameraFeed = cameraFeed
	s.playbackFeed = playbackFeed
	s.commit()
}

// Feeds returns the video state and both feed sources as one observation.
func (s *State) Feeds() (state Models.VideoState, cameraFeed, playbackFeed string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.video, s.cameraFeed, s.playbackFeed
}

func (s *State) setSearch(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = value
	s.commit()
}

func (s *State) setSuggestions(plates []string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = append([]string(nil), plates...)
	s.suggestionsVisible = visible
	s.commit()
}

func (s *State) hideSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestionsVisible = false
	s.commit()
}

// Suggestions returns the suggestion list and whether it is shown.
func (s *State) Suggestions() ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.suggestions...), s.suggestionsVisible
}

// Search returns the search field value.
func (s *State) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// ShowNotice replaces the alert box contents.
func (s *State) ShowNotice(notice Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = &notice
	s.commit()
}

// DismissNotice hides the alert box.
func (s *State) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
	s.commit()
}

// Notice returns the current alert, if any.
func (s *State) Notice() *Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.notice == nil {
		return nil
	}
	n := *s.notice
	return &n
}

func (s *State) updateStream(fn func(*StreamStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.stream)
	s.commit()
}

// Stream returns the subscription status.
func (s *State) Stream() StreamStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stream
}

// Snapshot renders the whole document.
func (s *State) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := View{
		Rows:               s.rows(),
		Stats:              s.stats,
		StatsUpdatedAt:     s.statsUpdatedAt,
		Video:              s.video,
		CameraFeed:         s.cameraFeed,
		PlaybackFeed:       s.playbackFeed,
		Search:             s.search,
		Suggestions:        append([]string(nil), s.suggestions...),
		SuggestionsVisible: s.suggestionsVisible,
		Stream:             s.stream,
		Version:            s.version,
	}
	if s.stats.Recent != nil {
		view.Stats.Recent = append([]Models.RecentViolation(nil), s.stats.Recent...)
	}
	if s.notice != nil {
		n := *s.notice
		view.Notice = &n
	}
	return view
}
