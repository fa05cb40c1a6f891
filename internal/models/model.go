package models

import (
	"time"
)

// Model is the base model for all other models in the hearthbudget backend.
//
// Records that support soft deletion carry an explicit IsDeleted flag
// instead of gorm's DeletedAt so that deleted rows stay visible to balance
// history queries.
type Model struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
