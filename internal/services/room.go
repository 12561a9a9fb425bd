package services

import (
	"time"

	"github.com/CS161-Software-Project/MindClash/internal/game"
	"github.com/CS161-Software-Project/MindClash/internal/models"

	"gorm.io/gorm"
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

type QuestionInput struct {
	Text          string      `json:"question" binding:"required"`
	Options       []string    `json:"options" binding:"required,min=2,max=4"`
	CorrectAnswer interface{} `json:"correct_answer" binding:"required"`
	TimeLimit     *int        `json:"time_limit"`
}

type CreateRoomInput struct {
	Topic           string          `json:"topic" binding:"required,min=1,max=255"`
	Difficulty      string          `json:"difficulty"`
	TimePerQuestion int             `json:"time_per_question"`
	MaxPlayers      int             `json:"max_players"`
	Questions       []QuestionInput `json:"questions" binding:"required,min=1"`
}

// CreateRoom creates a room with a fresh unique code and adds the host as
// the first player, already marked ready.
func (s *RoomService) CreateRoom(hostID uint, input CreateRoomInput) (*models.GameRoom, error) {
	difficulty := input.Difficulty
	switch difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		difficulty = models.DifficultyMedium
	}

	timePerQuestion := input.TimePerQuestion
	if timePerQuestion <= 0 {
		timePerQuestion = game.DefaultTimeLimit
	}
	maxPlayers := input.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = 8
	}

	// Correct answers can arrive as an index, a digit string or a letter;
	// store them as indices so the game loop only ever compares ints.
	type parsedQuestion struct {
		input   QuestionInput
		correct int
	}
	parsed := make([]parsedQuestion, 0, len(input.Questions))
	for _, q := range input.Questions {
		idx, err := game.NormalizeAnswer(q.CorrectAnswer, len(q.Options))
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, parsedQuestion{input: q, correct: idx})
	}

	code := game.UniqueCode(func(c string) bool {
		var count int64
		s.db.Model(&models.GameRoom{}).Where("code = ?", c).Count(&count)
		return count > 0
	})

	room := models.GameRoom{
		Code:            code,
		HostID:          hostID,
		Topic:           input.Topic,
		Difficulty:      difficulty,
		Status:          models.RoomStatusWaiting,
		TimePerQuestion: timePerQuestion,
		MaxPlayers:      maxPlayers,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		for i, pq := range parsed {
			question := models.Question{
				RoomID:        room.ID,
				OrderNum:      i,
				Text:          pq.input.Text,
				CorrectOption: pq.correct,
				TimeLimit:     pq.input.TimeLimit,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for j, opt := range pq.input.Options {
				if err := tx.Create(&models.Option{
					QuestionID: question.ID,
					OrderNum:   j,
					Text:       opt,
				}).Error; err != nil {
					return err
				}
			}
		}
		host := models.Player{
			RoomID:   room.ID,
			UserID:   hostID,
			IsReady:  true,
			JoinedAt: time.Now(),
		}
		return tx.Create(&host).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetRoomByCode(code)
}

func (s *RoomService) GetRoomByCode(code string) (*models.GameRoom, error) {
	var room models.GameRoom
	err := s.db.Where("code = ?", code).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Players.User").
		First(&room).Error
	if err != nil {
		return nil, game.ErrRoomNotFound
	}
	return &room, nil
}

// JoinRoom admits a user into a waiting room that still has space.
func (s *RoomService) JoinRoom(code string, userID uint) (*models.Player, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}

	var existing models.Player
	if err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
		First(&existing).Error; err == nil {
		return nil, game.ErrDuplicateMember
	}

	if room.Status != models.RoomStatusWaiting {
		return nil, game.ErrRoomNotJoinable
	}

	var count int64
	s.db.Model(&models.Player{}).Where("room_id = ?", room.ID).Count(&count)
	if int(count) >= room.MaxPlayers {
		return nil, game.ErrRoomFull
	}

	player := models.Player{
		RoomID:   room.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}
	s.db.Preload("User").First(&player, player.ID)
	return &player, nil
}

// StartGame moves a waiting room into progress. Host only.
func (s *RoomService) StartGame(code string, userID uint) (*models.GameRoom, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.HostID != userID {
		return nil, game.ErrForbidden
	}
	if room.Status != models.RoomStatusWaiting {
		return nil, game.ErrRoomNotJoinable
	}

	now := time.Now()
	room.Status = models.RoomStatusInProgress
	room.StartedAt = &now
	if err := s.db.Save(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// AdvanceQuestion moves the room to the next question once every player has
// answered, clearing per-round answer state. When the pointer runs past the
// last question the room is finished; finished never reverts.
func (s *RoomService) AdvanceQuestion(code string, userID uint) (*models.GameRoom, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.HostID != userID {
		return nil, game.ErrForbidden
	}
	if room.Status != models.RoomStatusInProgress {
		return nil, game.ErrRoomNotActive
	}

	var pending int64
	s.db.Model(&models.Player{}).
		Where("room_id = ? AND current_answer IS NULL", room.ID).
		Count(&pending)
	if pending > 0 {
		return nil, game.ErrNotAllAnswered
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Player{}).Where("room_id = ?", room.ID).
			Updates(map[string]interface{}{
				"current_answer": nil,
				"answer_time":    nil,
			}).Error; err != nil {
			return err
		}

		room.CurrentQuestion++
		if room.CurrentQuestion >= len(room.Questions) {
			now := time.Now()
			room.Status = models.RoomStatusFinished
			room.EndedAt = &now
		}
		return tx.Save(room).Error
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) SetReady(code string, userID uint, ready bool) (*models.Player, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}

	var player models.Player
	if err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
		Preload("User").First(&player).Error; err != nil {
		return nil, game.ErrPlayerNotFound
	}

	player.IsReady = ready
	if err := s.db.Save(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// LeaveRoom removes the player's membership. Scores of departed players are
// simply gone, there is no spectator state.
func (s *RoomService) LeaveRoom(code string, userID uint) error {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return err
	}

	result := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
		Delete(&models.Player{})
	if result.RowsAffected == 0 {
		return game.ErrPlayerNotFound
	}
	return result.Error
}

type LeaderboardEntry struct {
	Position int    `json:"position"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"is_host"`
}

func (s *RoomService) Leaderboard(code string) ([]LeaderboardEntry, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}

	var players []models.Player
	if err := s.db.Where("room_id = ?", room.ID).
		Preload("User").
		Order("score DESC").
		Find(&players).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(players))
	for i, p := range players {
		entries[i] = LeaderboardEntry{
			Position: i + 1,
			Username: p.User.Username,
			Score:    p.Score,
			IsHost:   p.UserID == room.HostID,
		}
	}
	return entries, nil
}

type AnswerDistribution struct {
	QuestionIndex int   `json:"question_index"`
	Counts        []int `json:"counts"`
	Unanswered    int   `json:"unanswered"`
}

// CurrentAnswerDistribution reports how many players picked each option of
// the active question.
func (s *RoomService) CurrentAnswerDistribution(code string) (*AnswerDistribution, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.CurrentQuestion >= len(room.Questions) {
		return nil, game.ErrRoomNotActive
	}

	question := room.Questions[room.CurrentQuestion]
	dist := &AnswerDistribution{
		QuestionIndex: room.CurrentQuestion,
		Counts:        make([]int, len(question.Options)),
	}

	var players []models.Player
	s.db.Where("room_id = ?", room.ID).Find(&players)
	for _, p := range players {
		if p.CurrentAnswer == nil {
			dist.Unanswered++
			continue
		}
		if *p.CurrentAnswer >= 0 && *p.CurrentAnswer < len(dist.Counts) {
			dist.Counts[*p.CurrentAnswer]++
		}
	}
	return dist, nil
}
