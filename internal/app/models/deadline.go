package models

import "time"

// DeadlineEntry is one pending wake-up owned by the deadline scheduler.
type DeadlineEntry struct {
	Handle string    `json:"handle"`
	Name   string    `json:"name"`
	Key    string    `json:"key"`
	FireAt time.Time `json:"fire_at"`
}
