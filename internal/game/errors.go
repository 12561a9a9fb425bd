package game

import "errors"

// Sentinel errors for the room/answer lifecycle. Handlers map these to
// HTTP status codes; services return them unwrapped so callers can use
// errors.Is.
var (
	ErrRoomNotFound    = errors.New("game room not found")
	ErrPlayerNotFound  = errors.New("player not found in this game")
	ErrDuplicateMember = errors.New("you are already in this game")
	ErrRoomNotJoinable = errors.New("this game has already started or ended")
	ErrRoomFull        = errors.New("game is full")
	ErrRoomNotActive   = errors.New("game is not in progress")
	ErrForbidden       = errors.New("only the host can perform this action")
	ErrNotAllAnswered  = errors.New("not all players have answered yet")
	ErrAlreadyAnswered = errors.New("you have already answered this question")
	ErrInvalidAnswer   = errors.New("answer is not a valid option")
)
