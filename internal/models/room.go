package models

import "time"

type GameRoom struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"size:6;uniqueIndex;not null" json:"code"`
	HostID          uint       `gorm:"not null;index" json:"host_id"`
	Host            User       `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" json:"-"`
	Topic           string     `gorm:"size:255;not null" json:"topic"`
	Difficulty      string     `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	Status          string     `gorm:"size:20;not null;default:'waiting'" json:"status"`
	CurrentQuestion int        `gorm:"not null;default:0" json:"current_question"`
	TimePerQuestion int        `gorm:"not null;default:30" json:"time_per_question"`
	MaxPlayers      int        `gorm:"not null;default:8" json:"max_players"`
	Questions       []Question `gorm:"foreignKey:RoomID" json:"questions,omitempty"`
	Players         []Player   `gorm:"foreignKey:RoomID" json:"players,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

const (
	RoomStatusWaiting    = "waiting"
	RoomStatusInProgress = "in_progress"
	RoomStatusFinished   = "finished"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)
