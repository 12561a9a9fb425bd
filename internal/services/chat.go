package services

import (
	"time"

	"github.com/CS161-Software-Project/MindClash/internal/game"
	"github.com/CS161-Software-Project/MindClash/internal/models"

	"gorm.io/gorm"
)

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) Send(code string, userID uint, text string) (*models.ChatMessage, error) {
	var room models.GameRoom
	if err := s.db.Where("code = ?", code).First(&room).Error; err != nil {
		return nil, game.ErrRoomNotFound
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, game.ErrPlayerNotFound
	}

	msg := models.ChatMessage{
		RoomID:    room.ID,
		UserID:    userID,
		Sender:    user.Username,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// History returns up to limit messages for a room, oldest first.
func (s *ChatService) History(code string, limit int) ([]models.ChatMessage, error) {
	var room models.GameRoom
	if err := s.db.Where("code = ?", code).First(&room).Error; err != nil {
		return nil, game.ErrRoomNotFound
	}

	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var messages []models.ChatMessage
	if err := s.db.Where("room_id = ?", room.ID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
