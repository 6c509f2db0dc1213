package logdash

import (
	"sync"
	"time"
)

// Failure is the last reported, non-fatal operation error.
type Failure struct {
	Operation  Operation `json:"operation"`
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
} // @Name Failure

// State is the single owned dashboard state. Only the event loop writes it; readers use Snapshot.
type State struct {
	mutex sync.RWMutex

	filter FilterState
	// generation tags the latest issued query; fetches carrying an older value are stale
	generation      uint64
	countGeneration uint64
	logs            []LogEntry
	totalCount      int
	draft           LogDraft
	draftOpen       bool
	submitting      bool
	lastCountAt     *time.Time
	lastFailure     *Failure
}

// Snapshot is a consistent copy of State for rendering.
type Snapshot struct {
	Filter      FilterState `json:"filter"`
	Generation  uint64      `json:"generation"`
	Window      PageWindow  `json:"window"`
	Logs        []LogEntry  `json:"logs"`
	TotalCount  int         `json:"totalCount"`
	Draft       LogDraft    `json:"draft"`
	DraftOpen   bool        `json:"draftOpen"`
	Submitting  bool        `json:"submitting"`
	LastCountAt *time.Time  `json:"lastCountAt,omitempty"`
	LastFailure *Failure    `json:"lastFailure,omitempty"`
} // @Name Snapshot

func NewState() *State {
	return &State{
		filter: NewFilterState(),
		logs:   []LogEntry{},
	}
}

func (s *State) mutate(fn func(s *State)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	fn(s)
}

func (s *State) read(fn func(s *State)) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	fn(s)
}

func (s *State) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	logs := make([]LogEntry, len(s.logs))
	copy(logs, s.logs)

	var lastFailure *Failure
	if s.lastFailure != nil {
		failure := *s.lastFailure
		lastFailure = &failure
	}

	draft := s.draft
	draft.Timestamp = copyTime(s.draft.Timestamp)

	return Snapshot{
		Filter:      s.filter,
		Generation:  s.generation,
		Window:      NewPageWindow(s.totalCount, ItemsPerPage, s.filter.Page),
		Logs:        logs,
		TotalCount:  s.totalCount,
		Draft:       draft,
		DraftOpen:   s.draftOpen,
		Submitting:  s.submitting,
		LastCountAt: copyTime(s.lastCountAt),
		LastFailure: lastFailure,
	}
}

func (s *State) window() PageWindow {
	return NewPageWindow(s.totalCount, ItemsPerPage, s.filter.Page)
}
