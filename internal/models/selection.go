package models

import (
	"time"

	"github.com/google/uuid"
)

// Selection records one character intending to do one quest on one server.
// At most one row exists per (character_id, server_id, quest_id); Track
// upserts the note in place.
type Selection struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CharacterID uuid.UUID `db:"character_id" json:"characterId"`
	ServerID    int32     `db:"server_id" json:"serverId"`
	QuestID     int64     `db:"quest_id" json:"questId"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// MatchRow is one entry of the public "who else is on this quest" listing.
type MatchRow struct {
	ID             uuid.UUID `db:"id" json:"id"`
	When           time.Time `db:"created_at" json:"when"`
	CharacterID    uuid.UUID `db:"character_id" json:"-"`
	CharacterName  string    `db:"character_name" json:"characterName"`
	CharacterLevel int       `db:"character_level" json:"characterLevel"`
	CharacterClass string    `db:"character_class" json:"characterClass"`
	Note           *string   `db:"note" json:"note,omitempty"`
	IsMine         bool      `db:"-" json:"isMine"`
}

// MySelectionRow is one entry of the caller's own selections, joined with
// quest and server names.
type MySelectionRow struct {
	ID             uuid.UUID `db:"id" json:"id"`
	When           time.Time `db:"created_at" json:"when"`
	QuestID        int64     `db:"quest_id" json:"questId"`
	QuestName      string    `db:"quest_name" json:"questName"`
	ServerID       int32     `db:"server_id" json:"serverId"`
	ServerName     string    `db:"server_name" json:"serverName"`
	CharacterID    uuid.UUID `db:"character_id" json:"characterId"`
	CharacterName  string    `db:"character_name" json:"characterName"`
	CharacterLevel int       `db:"character_level" json:"characterLevel"`
	CharacterClass string    `db:"character_class" json:"characterClass"`
	Note           *string   `db:"note" json:"note,omitempty"`
}
