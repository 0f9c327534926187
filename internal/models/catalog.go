package models

// GameServer is immutable reference data describing one game server.
// Rows are seeded by migration and never written by the application.
type GameServer struct {
	ID     int32  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Region string `db:"region" json:"region"`
	Kind   string `db:"kind" json:"kind"`
}

// Quest is immutable reference data from the game's quest catalog,
// populated by the offline import process.
type Quest struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Category *string `db:"category" json:"category,omitempty"`
	Level    *int    `db:"level" json:"level,omitempty"`
	Area     *string `db:"area" json:"area,omitempty"`
}
