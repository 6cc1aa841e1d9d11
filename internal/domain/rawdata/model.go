package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	SourceStatFile = "stat_file"
	SourceRioAPI   = "rio_api"

	EntityGame        = "game"
	EntityAPIResponse = "api_response"
)

// Payload is an archived document: a decoded stat file or a raw web API body.
type Payload struct {
	Source          string
	EntityType      string
	EntityKey       string
	PayloadJSON     string
	PayloadHash     string
	SourceUpdatedAt *time.Time
}

// New fills the hash from the body.
func New(source, entityType, entityKey string, body []byte, updatedAt *time.Time) Payload {
	sum := sha256.Sum256(body)
	return Payload{
		Source:          source,
		EntityType:      entityType,
		EntityKey:       entityKey,
		PayloadJSON:     string(body),
		PayloadHash:     hex.EncodeToString(sum[:]),
		SourceUpdatedAt: updatedAt,
	}
}
