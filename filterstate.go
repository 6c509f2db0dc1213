package logdash

import (
	"strconv"
	"time"
)

// FilterState is an immutable snapshot of every query dimension. Mutators return a copy;
// all of them except WithPage reset Page to 1.
type FilterState struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Level     Level      `json:"level"`
	Topic     Topic      `json:"topic"`
	Page      int        `json:"page"`
} // @Name FilterState

func NewFilterState() FilterState {
	return FilterState{
		Level: LevelAll,
		Topic: TopicAll,
		Page:  1,
	}
}

func (f FilterState) WithLevel(level Level) FilterState {
	f.Level = level
	f.Page = 1
	return f
}

func (f FilterState) WithTopic(topic Topic) FilterState {
	f.Topic = topic
	f.Page = 1
	return f
}

// WithStartDate sets or, given nil, clears the lower time bound.
func (f FilterState) WithStartDate(startDate *time.Time) FilterState {
	f.StartDate = copyTime(startDate)
	f.Page = 1
	return f
}

// WithEndDate sets or, given nil, clears the upper time bound.
func (f FilterState) WithEndDate(endDate *time.Time) FilterState {
	f.EndDate = copyTime(endDate)
	f.Page = 1
	return f
}

// WithPage moves to page. It is rejected, returning the unchanged state and false, when
// page is outside [1, totalPages].
func (f FilterState) WithPage(page, totalPages int) (FilterState, bool) {
	if page < 1 || page > totalPages {
		return f, false
	}
	f.Page = page
	return f, true
}

func (f FilterState) Equal(other FilterState) bool {
	return f.Level == other.Level &&
		f.Topic == other.Topic &&
		f.Page == other.Page &&
		timesEqual(f.StartDate, other.StartDate) &&
		timesEqual(f.EndDate, other.EndDate)
}

// Query serializes the state for /all-logs. Dimensions at their "all" or unset sentinel are left out.
func (f FilterState) Query(pageSize int) LogQuery {
	query := LogQuery{
		Page: f.Page,
		Size: pageSize,
	}
	if f.StartDate != nil {
		query.StartDate = formatInstant(*f.StartDate)
	}
	if f.EndDate != nil {
		query.EndDate = formatInstant(*f.EndDate)
	}
	if f.Level != LevelAll && f.Level != "" {
		query.LogLevel = string(f.Level)
	}
	if f.Topic != TopicAll && f.Topic != "" {
		query.Topic = string(f.Topic)
	}
	return query
}

type LogQuery struct {
	Page      int
	Size      int
	StartDate string
	EndDate   string
	LogLevel  string
	Topic     string
}

func (q LogQuery) Params() map[string]string {
	params := map[string]string{
		"page": strconv.Itoa(q.Page),
		"size": strconv.Itoa(q.Size),
	}
	if q.StartDate != "" {
		params["startDate"] = q.StartDate
	}
	if q.EndDate != "" {
		params["endDate"] = q.EndDate
	}
	if q.LogLevel != "" {
		params["logLevel"] = q.LogLevel
	}
	if q.Topic != "" {
		params["topic"] = q.Topic
	}
	return params
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
