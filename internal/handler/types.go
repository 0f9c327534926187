package handler

import "github.com/google/uuid"

type createCharacterRequest struct {
	ServerID int32  `json:"serverId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Level    int    `json:"level" binding:"required"`
	Class    string `json:"class" binding:"required"`
}

type updateCharacterRequest struct {
	ServerID *int32  `json:"serverId,omitempty"`
	Name     *string `json:"name,omitempty"`
	Level    *int    `json:"level,omitempty"`
	Class    *string `json:"class,omitempty"`
}

// setActiveCharacterRequest: null characterId очищает активного персонажа.
type setActiveCharacterRequest struct {
	CharacterID *uuid.UUID `json:"characterId"`
}

type trackQuestRequest struct {
	ServerID int32  `json:"serverId" binding:"required"`
	QuestID  int64  `json:"questId" binding:"required"`
	Note     string `json:"note,omitempty"`
}
