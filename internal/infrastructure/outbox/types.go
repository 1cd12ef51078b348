package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a notification whose delivery to the primary store failed and
// which waits in the journal for redelivery.
type Entry struct {
	ID        string    `json:"id"`
	ToUserID  string    `json:"to_user_id"`
	Message   string    `json:"message"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
