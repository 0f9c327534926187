package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a player account provisioned by the identity provider.
// ActiveCharacterID, if set, always references a character owned by this
// account; it is cleared when that character is deleted.
type Account struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Email             string     `db:"email" json:"email"`
	ActiveCharacterID *uuid.UUID `db:"active_character_id" json:"activeCharacterId"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
}
