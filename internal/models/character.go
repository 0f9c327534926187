package models

import (
	"time"

	"github.com/google/uuid"
)

// Character is a per-account game character. Uniqueness is enforced on
// (account_id, server_id, name), with name stored in its normalized form.
type Character struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AccountID uuid.UUID `db:"account_id" json:"-"`
	ServerID  int32     `db:"server_id" json:"serverId"`
	Name      string    `db:"name" json:"name"`
	Level     int       `db:"level" json:"level"`
	Class     string    `db:"class" json:"class"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CharacterWithServer is a character joined with its server name for listings.
type CharacterWithServer struct {
	Character
	ServerName string `db:"server_name" json:"serverName"`
}

// CharacterUpdate carries the partial fields of a character edit. Nil means
// "leave unchanged". Name, when present, is already normalized.
type CharacterUpdate struct {
	ServerID *int32
	Name     *string
	Level    *int
	Class    *string
}
