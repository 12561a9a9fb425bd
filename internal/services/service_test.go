package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/CS161-Software-Project/MindClash/internal/database"
	"github.com/CS161-Software-Project/MindClash/internal/models"
	"github.com/CS161-Software-Project/MindClash/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.AutoMigrate(db)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

// twoQuestionInput is the standard fixture: Q1 correct option 1 ("B"),
// Q2 correct option 0.
func twoQuestionInput(topic string) services.CreateRoomInput {
	return services.CreateRoomInput{
		Topic:      topic,
		Difficulty: "medium",
		Questions: []services.QuestionInput{
			{
				Text:          "Which empire was ruled by Genghis Khan?",
				Options:       []string{"Roman", "Mongol", "Ottoman", "Byzantine"},
				CorrectAnswer: 1,
			},
			{
				Text:          "The French Revolution began in what year?",
				Options:       []string{"1789", "1776", "1804", "1812"},
				CorrectAnswer: "A",
			},
		},
	}
}
