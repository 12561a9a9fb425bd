package models

import "time"

type Player struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	RoomID        uint     `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID        uint     `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	User          User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Score         int      `gorm:"not null;default:0" json:"score"`
	IsReady       bool     `gorm:"not null;default:false" json:"is_ready"`
	CurrentAnswer *int     `json:"current_answer,omitempty"`
	AnswerTime    *float64 `json:"answer_time,omitempty"`

	CorrectAnswers int       `gorm:"not null;default:0" json:"correct_answers"`
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	AverageTime    float64   `gorm:"not null;default:0" json:"average_time"`
	CurrentStreak  int       `gorm:"not null;default:0" json:"current_streak"`
	BestStreak     int       `gorm:"not null;default:0" json:"best_streak"`
	JoinedAt       time.Time `json:"joined_at"`
}

// HasAnswered reports whether the player has a recorded answer for the
// current round.
func (p *Player) HasAnswered() bool {
	return p.CurrentAnswer != nil
}
