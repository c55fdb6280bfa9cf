package domain

import (
	"encoding/json"
	"time"
)

// DocumentRecord is the server side copy of the shared JSON document.
type DocumentRecord struct {
	ID        string          `json:"id"`
	Revision  int64           `json:"revision"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}
