package journal

import "time"

// Outcome classifies what happened to a processed file.
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one journal row.
type Entry struct {
	ID            int64
	SessionID     string
	Path          string
	Outcome       Outcome
	Reason        string
	Codec         string
	BitrateKbps   int
	Channels      int
	OriginalBytes int64
	FinalBytes    int64
	BackupPath    string
	Elapsed       time.Duration
	CreatedAt     time.Time
}
