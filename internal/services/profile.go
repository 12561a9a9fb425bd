package services

import (
	"errors"

	"github.com/CS161-Software-Project/MindClash/internal/models"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type ProfileInput struct {
	AvatarURL string `json:"avatar_url" binding:"omitempty,max=500"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Age       *int   `json:"age" binding:"omitempty,min=1,max=150"`
}

func (s *ProfileService) Get(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		// Accounts created before profiles existed get one lazily.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.Profile{UserID: userID}
			if err := s.db.Create(&profile).Error; err != nil {
				return nil, err
			}
			return &profile, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) Update(userID uint, input ProfileInput) (*models.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = input.AvatarURL
	profile.Bio = input.Bio
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Age = input.Age

	if err := s.db.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
