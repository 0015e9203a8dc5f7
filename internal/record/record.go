package record

import (
	"time"

	"github.com/google/uuid"
)

// Record is the persisted summary of one finished chase session.
type Record struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Outcome     string    `json:"outcome"`
	CaptureTime *float64  `json:"capture_time,omitempty"` // simulation seconds, nil when not caught
	Hops        int       `json:"hops"`
	Dives       int       `json:"dives"`
	Ticks       int       `json:"ticks"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
}

// NewCaughtRecord creates a record for a session the pursuer won.
func NewCaughtRecord(sessionID string, captureTime float64, startedAt time.Time) *Record {
	return &Record{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Outcome:     "caught",
		CaptureTime: &captureTime,
		StartedAt:   startedAt,
		EndedAt:     time.Now(),
	}
}

// NewEndedRecord creates a record for a session that ended without a
// capture, either by time limit or by being stopped.
func NewEndedRecord(sessionID, outcome string, startedAt time.Time) *Record {
	return &Record{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Outcome:   outcome,
		StartedAt: startedAt,
		EndedAt:   time.Now(),
	}
}

// Duration is the wall-clock length of the session.
func (r *Record) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
