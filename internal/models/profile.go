package models

import "time"

type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url,omitempty"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	FirstName string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:100" json:"last_name,omitempty"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
