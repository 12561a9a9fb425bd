package services

import (
	"github.com/CS161-Software-Project/MindClash/internal/game"
	"github.com/CS161-Software-Project/MindClash/internal/models"
)

// RoomState is the full snapshot broadcast after every mutation and served
// on the pull path. A client that missed broadcasts rebuilds itself from
// this alone.
type RoomState struct {
	Code            string        `json:"code"`
	Topic           string        `json:"topic"`
	Difficulty      string        `json:"difficulty"`
	Status          string        `json:"status"`
	Host            string        `json:"host"`
	CurrentQuestion int           `json:"current_question"`
	TotalQuestions  int           `json:"total_questions"`
	TimePerQuestion int           `json:"time_per_question"`
	Question        *QuestionView `json:"current_question_data,omitempty"`
	Players         []PlayerState `json:"players"`
	Finished        bool          `json:"finished"`
}

// QuestionView is a question as shown to players. The correct option is
// never included.
type QuestionView struct {
	Index     int      `json:"index"`
	Text      string   `json:"question"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"time_limit"`
}

type PlayerState struct {
	Username    string `json:"username"`
	Score       int    `json:"score"`
	IsReady     bool   `json:"is_ready"`
	HasAnswered bool   `json:"has_answered"`
	IsHost      bool   `json:"is_host"`
}

// RoomState builds the current snapshot for a room.
func (s *RoomService) RoomState(code string) (*RoomState, error) {
	room, err := s.GetRoomByCode(code)
	if err != nil {
		return nil, err
	}
	return buildRoomState(room), nil
}

func buildRoomState(room *models.GameRoom) *RoomState {
	state := &RoomState{
		Code:            room.Code,
		Topic:           room.Topic,
		Difficulty:      room.Difficulty,
		Status:          room.Status,
		CurrentQuestion: room.CurrentQuestion,
		TotalQuestions:  len(room.Questions),
		TimePerQuestion: room.TimePerQuestion,
		Players:         make([]PlayerState, 0, len(room.Players)),
		Finished:        room.Status == models.RoomStatusFinished,
	}

	for _, p := range room.Players {
		if p.UserID == room.HostID {
			state.Host = p.User.Username
		}
		state.Players = append(state.Players, PlayerState{
			Username:    p.User.Username,
			Score:       p.Score,
			IsReady:     p.IsReady,
			HasAnswered: p.HasAnswered(),
			IsHost:      p.UserID == room.HostID,
		})
	}

	if room.Status == models.RoomStatusInProgress && room.CurrentQuestion < len(room.Questions) {
		q := room.Questions[room.CurrentQuestion]
		view := &QuestionView{
			Index:     room.CurrentQuestion,
			Text:      q.Text,
			Options:   make([]string, 0, len(q.Options)),
			TimeLimit: questionTimeLimit(room, &q),
		}
		for _, o := range q.Options {
			view.Options = append(view.Options, o.Text)
		}
		state.Question = view
	}

	return state
}

func questionTimeLimit(room *models.GameRoom, q *models.Question) int {
	if q.TimeLimit != nil && *q.TimeLimit > 0 {
		return *q.TimeLimit
	}
	if room.TimePerQuestion > 0 {
		return room.TimePerQuestion
	}
	return game.DefaultTimeLimit
}
