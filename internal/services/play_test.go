package services_test

import (
	"errors"
	"testing"

	"github.com/CS161-Software-Project/MindClash/internal/game"
	"github.com/CS161-Software-Project/MindClash/internal/models"
	"github.com/CS161-Software-Project/MindClash/internal/services"
)

// startedRoom creates a room, joins the extra users and starts the game.
func startedRoom(t *testing.T, roomSvc *services.RoomService, host *models.User, others ...*models.User) *models.GameRoom {
	t.Helper()
	room, err := roomSvc.CreateRoom(host.ID, twoQuestionInput("history"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for _, u := range others {
		if _, err := roomSvc.JoinRoom(room.Code, u.ID); err != nil {
			t.Fatalf("join failed: %v", err)
		}
	}
	if _, err := roomSvc.StartGame(room.Code, host.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return room
}

func TestSubmitAnswerScoring(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		want    int
	}{
		{"instant", 0, 1000},
		{"half time", 15, 550},
		{"full time", 30, 100},
		{"over time", 45, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			roomSvc := services.NewRoomService(db)
			gameSvc := services.NewGameService(db)
			host := createUser(t, db, "alice")
			room := startedRoom(t, roomSvc, host)

			result, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, tt.elapsed)
			if err != nil {
				t.Fatalf("submit failed: %v", err)
			}
			if !result.Correct {
				t.Error("answer 1 should be correct")
			}
			if result.Points != tt.want {
				t.Errorf("points = %d, want %d", result.Points, tt.want)
			}
			if result.Score != tt.want {
				t.Errorf("score = %d, want %d", result.Score, tt.want)
			}
		})
	}
}

func TestSubmitAnswerWrongScoresZero(t *testing.T) {
	db := newTestDB(t)
	roomSvc := services.NewRoomService(db)
	gameSvc := services.NewGameService(db)
	host := createUser(t, db, "alice")
	room := startedRoom(t, roomSvc, host)

	result, err := gameSvc.SubmitAnswer(room.Code, host.ID, 2, 1)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Correct || result.Points != 0 || result.Score != 0 {
		t.Errorf("wrong answer should score nothing: %+v", result)
	}
}

func TestSubmitAnswerAcceptedForms(t *testing.T) {
	// Letter, index, float and digit string all name the same option.
	forms := []interface{}{"B", "b", 1, float64(1), "1"}
	for _, form := range forms {
		db := newTestDB(t)
		roomSvc := services.NewRoomService(db)
		gameSvc := services.NewGameService(db)
		host := createUser(t, db, "alice")
		room := startedRoom(t, roomSvc, host)

		result, err := gameSvc.SubmitAnswer(room.Code, host.ID, form, 0)
		if err != nil {
			t.Fatalf("submit(%v) failed: %v", form, err)
		}
		if !result.Correct {
			t.Errorf("submit(%v): expected correct", form)
		}
	}
}

func TestSubmitAnswerInvalid(t *testing.T) {
	db := newTestDB(t)
	roomSvc := services.NewRoomService(db)
	gameSvc := services.NewGameService(db)
	host := createUser(t, db, "alice")
	room := startedRoom(t, roomSvc, host)

	for _, bad := range []interface{}{"E", 4, -1, "", "nope"} {
		if _, err := gameSvc.SubmitAnswer(room.Code, host.ID, bad, 0); !errors.Is(err, game.ErrInvalidAnswer) {
			t.Errorf("submit(%v): got %v, want ErrInvalidAnswer", bad, err)
		}
	}

	// Rejected answers must not consume the player's attempt.
	if _, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, 0); err != nil {
		t.Fatalf("valid submit after rejects failed: %v", err)
	}
}

func TestSubmitAnswerOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	roomSvc := services.NewRoomService(db)
	gameSvc := services.NewGameService(db)
	host := createUser(t, db, "alice")
	room := startedRoom(t, roomSvc, host)

	first, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, 0); !errors.Is(err, game.ErrAlreadyAnswered) {
		t.Fatalf("second submit: got %v, want ErrAlreadyAnswered", err)
	}

	// The rejected submission must not have touched the score.
	var player models.Player
	if err := db.Where("room_id = ? AND user_id = ?", room.ID, host.ID).
		First(&player).Error; err != nil {
		t.Fatalf("load player: %v", err)
	}
	if player.Score != first.Score {
		t.Errorf("score changed on rejected submit: %d -> %d", first.Score, player.Score)
	}
	if player.TotalQuestions != 1 {
		t.Errorf("total_questions = %d, want 1", player.TotalQuestions)
	}
}

func TestSubmitAnswerRoomStates(t *testing.T) {
	db := newTestDB(t)
	roomSvc := services.NewRoomService(db)
	gameSvc := services.NewGameService(db)
	host := createUser(t, db, "alice")

	room, err := roomSvc.CreateRoom(host.ID, twoQuestionInput("history"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, 0); !errors.Is(err, game.ErrRoomNotActive) {
		t.Errorf("submit in waiting room: got %v, want ErrRoomNotActive", err)
	}
	if _, err := gameSvc.SubmitAnswer("ZZZZZZ", host.ID, 1, 0); !errors.Is(err, game.ErrRoomNotFound) {
		t.Errorf("submit to unknown room: got %v, want ErrRoomNotFound", err)
	}

	if _, err := roomSvc.StartGame(room.Code, host.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	outsider := createUser(t, db, "mallory")
	if _, err := gameSvc.SubmitAnswer(room.Code, outsider.ID, 1, 0); !errors.Is(err, game.ErrPlayerNotFound) {
		t.Errorf("submit from non-member: got %v, want ErrPlayerNotFound", err)
	}
}

func TestSubmitAnswerAccumulatesAcrossQuestions(t *testing.T) {
	db := newTestDB(t)
	roomSvc := services.NewRoomService(db)
	gameSvc := services.NewGameService(db)
	host := createUser(t, db, "alice")
	room := startedRoom(t, roomSvc, host)

	first, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, 0)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := roomSvc.AdvanceQuestion(room.Code, host.ID); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	second, err := gameSvc.SubmitAnswer(room.Code, host.ID, "A", 15)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if second.Score != first.Points+second.Points {
		t.Errorf("score = %d, want %d", second.Score, first.Points+second.Points)
	}
	if second.Score != 1550 {
		t.Errorf("score = %d, want 1550", second.Score)
	}
}

func TestSubmitAnswerStats(t *testing.T) {
	db := newTestDB(t)
	roomSvc := services.NewRoomService(db)
	gameSvc := services.NewGameService(db)
	host := createUser(t, db, "alice")
	room := startedRoom(t, roomSvc, host)

	// Q1 correct, Q2 wrong: streak builds then breaks, best streak stays.
	if _, err := gameSvc.SubmitAnswer(room.Code, host.ID, 1, 10); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := roomSvc.AdvanceQuestion(room.Code, host.ID); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if _, err := gameSvc.SubmitAnswer(room.Code, host.ID, "C", 20); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var player models.Player
	if err := db.Where("room_id = ? AND user_id = ?", room.ID, host.ID).
		First(&player).Error; err != nil {
		t.Fatalf("load player: %v", err)
	}
	if player.TotalQuestions != 2 || player.CorrectAnswers != 1 {
		t.Errorf("stats total=%d correct=%d, want 2/1", player.TotalQuestions, player.CorrectAnswers)
	}
	if player.CurrentStreak != 0 || player.BestStreak != 1 {
		t.Errorf("streaks current=%d best=%d, want 0/1", player.CurrentStreak, player.BestStreak)
	}
	if player.AverageTime != 15 {
		t.Errorf("average_time = %v, want 15", player.AverageTime)
	}
}
