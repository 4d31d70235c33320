package domain

import "time"

// Session lifecycle states.
type SessionState string

const (
	SessionCreated     SessionState = "created"
	SessionAnswering   SessionState = "answering"
	SessionCompleted   SessionState = "completed"
	SessionRecommended SessionState = "recommended"
	SessionExhausted   SessionState = "exhausted"
)

// Answer is one recorded quiz answer. Order of insertion matters for the
// priority evaluation, so answers live in a slice, never a map.
type Answer struct {
	QuestionID     uint64    `json:"question_id"`
	OptionID       uint64    `json:"option_id"`
	Category       string    `json:"category"`
	Value          string    `json:"value"`
	Weight         float64   `json:"weight"`
	LatencySeconds float64   `json:"latency_seconds"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// Session holds one interactive quiz flow. It is owned by a single
// logical caller; the service never mutates the same session from two
// goroutines.
type Session struct {
	ID    string       `json:"session_id"`
	State SessionState `json:"state"`

	// QuestionIDs is the quiz drawn for this session, in ask order.
	QuestionIDs []uint64 `json:"question_ids"`
	Answers     []Answer `json:"answers"`

	// Accumulated recommendation state.
	ShownBeverages []uint64         `json:"shown_beverages"`
	MoreClicks     int              `json:"more_clicks"`
	Decision       CategoryDecision `json:"decision,omitempty"`
	Initial        []Recommendation `json:"initial,omitempty"`
	InitialMessage string           `json:"initial_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InQuiz reports whether the question belongs to this session's quiz.
func (s *Session) InQuiz(questionID uint64) bool {
	for _, id := range s.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// Answered reports whether the question was already answered in this
// session.
func (s *Session) Answered(questionID uint64) bool {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// Seen reports whether the beverage was already surfaced to this session.
func (s *Session) Seen(beverageID uint64) bool {
	for _, id := range s.ShownBeverages {
		if id == beverageID {
			return true
		}
	}
	return false
}

// MarkShown records beverage ids as surfaced, skipping duplicates.
func (s *Session) MarkShown(ids ...uint64) {
	for _, id := range ids {
		if !s.Seen(id) {
			s.ShownBeverages = append(s.ShownBeverages, id)
		}
	}
}
