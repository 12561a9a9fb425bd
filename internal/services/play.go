package services

import (
	"github.com/CS161-Software-Project/MindClash/internal/game"
	"github.com/CS161-Software-Project/MindClash/internal/models"

	"gorm.io/gorm"
)

// GameService records answers and keeps scores.
type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

type SubmitResult struct {
	Correct     bool `json:"correct"`
	Points      int  `json:"points"`
	Score       int  `json:"score"`
	AllAnswered bool `json:"all_answered"`
}

// SubmitAnswer records a player's single answer for the active question and
// applies the time-weighted score. The answered-once guard is a conditional
// UPDATE on current_answer IS NULL, so two racing submissions cannot both
// score: exactly one wins the row, the other sees ErrAlreadyAnswered.
func (s *GameService) SubmitAnswer(code string, userID uint, rawAnswer interface{}, elapsed float64) (*SubmitResult, error) {
	var room models.GameRoom
	err := s.db.Where("code = ?", code).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&room).Error
	if err != nil {
		return nil, game.ErrRoomNotFound
	}

	if room.Status != models.RoomStatusInProgress {
		return nil, game.ErrRoomNotActive
	}
	if room.CurrentQuestion >= len(room.Questions) {
		return nil, game.ErrRoomNotActive
	}

	var player models.Player
	if err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
		First(&player).Error; err != nil {
		return nil, game.ErrPlayerNotFound
	}

	question := room.Questions[room.CurrentQuestion]
	idx, err := game.NormalizeAnswer(rawAnswer, len(question.Options))
	if err != nil {
		return nil, err
	}

	if elapsed < 0 {
		elapsed = 0
	}

	correct := idx == question.CorrectOption
	points := 0
	if correct {
		points = game.Score(elapsed, float64(questionTimeLimit(&room, &question)))
	}

	res := s.db.Model(&models.Player{}).
		Where("id = ? AND current_answer IS NULL", player.ID).
		Updates(map[string]interface{}{
			"current_answer": idx,
			"answer_time":    elapsed,
			"score":          gorm.Expr("score + ?", points),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, game.ErrAlreadyAnswered
	}

	s.updateStats(player.ID, correct, elapsed)

	if err := s.db.First(&player, player.ID).Error; err != nil {
		return nil, err
	}

	var pending int64
	s.db.Model(&models.Player{}).
		Where("room_id = ? AND current_answer IS NULL", room.ID).
		Count(&pending)

	return &SubmitResult{
		Correct:     correct,
		Points:      points,
		Score:       player.Score,
		AllAnswered: pending == 0,
	}, nil
}

// updateStats maintains the running per-session statistics shown on the
// results screen. Best-effort, a failure here never blocks the answer.
func (s *GameService) updateStats(playerID uint, correct bool, elapsed float64) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		return
	}

	total := player.TotalQuestions
	player.AverageTime = (player.AverageTime*float64(total) + elapsed) / float64(total+1)
	player.TotalQuestions = total + 1
	if correct {
		player.CorrectAnswers++
		player.CurrentStreak++
		if player.CurrentStreak > player.BestStreak {
			player.BestStreak = player.CurrentStreak
		}
	} else {
		player.CurrentStreak = 0
	}
	s.db.Model(&models.Player{}).Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"average_time":    player.AverageTime,
			"total_questions": player.TotalQuestions,
			"correct_answers": player.CorrectAnswers,
			"current_streak":  player.CurrentStreak,
			"best_streak":     player.BestStreak,
		})
}
