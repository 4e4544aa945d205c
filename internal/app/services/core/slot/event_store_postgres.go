package slot

import (
	"context"
	"database/sql"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"
	"clinic-booking-service/internal/pkg/queries"

	"github.com/goccy/go-json"
)

type slotEventPostgresStore struct {
	DB *sql.DB
}

func NewSlotEventPostgresStore(db *sql.DB) contracts.SlotEventStore {
	return &slotEventPostgresStore{
		DB: db,
	}
}

func (store *slotEventPostgresStore) Append(ctx context.Context, slotID string, envelopes ...messages.Envelope) error {
	tx, err := store.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}

	for _, envelope := range envelopes {
		body, err := json.Marshal(envelope)
		if err != nil {
			_ = tx.Rollback()
			return exceptions.ErrCannotMarshalJSON(err)
		}
		if _, err := tx.ExecContext(ctx, queries.InsertSlotEvent, slotID, body); err != nil {
			_ = tx.Rollback()
			return exceptions.ErrPostgresDBInsertData(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (store *slotEventPostgresStore) Load(ctx context.Context, slotID string) ([]messages.Envelope, error) {
	rows, err := store.DB.QueryContext(ctx, queries.GetSlotEventsBySlotID, slotID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var envelopes []messages.Envelope
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		var envelope messages.Envelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		envelopes = append(envelopes, envelope)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return envelopes, nil
}
