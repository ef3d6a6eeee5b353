package service

import "errors"

// Expected, caller-recoverable conditions. Controllers translate these
// into HTTP status codes with errors.Is; none of them should ever crash
// the process.
var (
	ErrInvalidConfig          = errors.New("invalid session configuration")
	ErrNoParticipants         = errors.New("session has no participants")
	ErrInvalidTransition      = errors.New("invalid session state transition")
	ErrSessionFinished        = errors.New("session is finished")
	ErrStaleQuestion          = errors.New("question is not the current open question")
	ErrInvalidOption          = errors.New("option index out of range")
	ErrUnknownParticipant     = errors.New("participant is not enrolled in this session")
	ErrSessionFull            = errors.New("session is at capacity")
	ErrSessionAlreadyFinished = errors.New("session already finished")
	ErrQuestionAlreadyClosed  = errors.New("question already closed")
	ErrAwaitingNextQuestion   = errors.New("participant joined mid-question and must wait for the next question")
	ErrSessionNotFound        = errors.New("session not found")
)
