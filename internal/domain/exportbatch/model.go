// Package exportbatch records every export run so the rows written by the
// Postgres and Kafka sinks can be traced back to one invocation.
package exportbatch

import "time"

const (
	KindPitches = "pitches"
	KindStats   = "stats"
)

type Batch struct {
	ID        string    `json:"id" db:"id"`
	Kind      string    `json:"kind" db:"kind"`
	Source    string    `json:"source" db:"source"`
	Rows      int       `json:"rows" db:"row_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
