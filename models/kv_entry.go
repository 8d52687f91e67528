package models

import "time"

// KVEntry is the server-side stand-in for the front-end's localStorage:
// opaque string keys and string values, no expiry. The ledger packages never
// touch this model directly — they go through the storage.KV capability.
// Table name: kv_entries
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
