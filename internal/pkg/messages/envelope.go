package messages

import (
	"time"

	"clinic-booking-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Envelope is the wire form of every command and event. Key is the
// aggregate or correlation identifier; all envelopes with the same Key are
// delivered to a subscriber in publication order.
type Envelope struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewEnvelope(name, key string, payload interface{}) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, exceptions.ErrCannotMarshalJSON(err)
	}
	return Envelope{
		ID:         uuid.NewString(),
		Name:       name,
		Key:        key,
		Payload:    raw,
		OccurredAt: time.Now().UTC(),
	}, nil
}

func (e Envelope) Decode(v interface{}) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}
