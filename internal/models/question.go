package models

type Question struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	RoomID        uint     `gorm:"not null;index" json:"room_id"`
	OrderNum      int      `gorm:"not null" json:"order_num"`
	Text          string   `gorm:"type:text;not null" json:"text"`
	Options       []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CorrectOption int      `gorm:"not null" json:"-"`
	TimeLimit     *int     `json:"time_limit,omitempty"`
}

type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
	Text       string `gorm:"size:500;not null" json:"text"`
}
