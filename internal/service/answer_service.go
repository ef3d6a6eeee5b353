package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/model"
	"github.com/tuanng-dev/quizhive/internal/repository"
)

// AnswerService is the ledger of scored answers. It records at most one
// answer per (participant, question) pair: a resubmission before the
// question closes replaces the record and adjusts the participant's
// cumulative score by the delta between new and old points, so the
// cumulative score always equals the sum of current per-question points.
type AnswerService interface {
	Submit(sessionID string, req dto.SubmitAnswerRequest) error
	CountForQuestion(questionID string) (int, error)
	GetParticipantResult(sessionID, participantID string) (*dto.ParticipantResultResponse, error)
}

type answerService struct {
	sessionRepo     repository.SessionRepository
	questionRepo    repository.QuestionRepository
	participantRepo repository.ParticipantRepository
	answerRepo      repository.AnswerRepository
	scoring         ScoringService
	sessions        SessionService
	runtimes        *RuntimeRegistry
	notifier        ChangeNotifier
}

func NewAnswerService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	participantRepo repository.ParticipantRepository,
	answerRepo repository.AnswerRepository,
	scoring ScoringService,
	sessions SessionService,
	runtimes *RuntimeRegistry,
	notifier ChangeNotifier,
) AnswerService {
	return &answerService{
		sessionRepo:     sessionRepo,
		questionRepo:    questionRepo,
		participantRepo: participantRepo,
		answerRepo:      answerRepo,
		scoring:         scoring,
		sessions:        sessions,
		runtimes:        runtimes,
		notifier:        notifier,
	}
}

func (s *answerService) Submit(sessionID string, req dto.SubmitAnswerRequest) error {
	rt := s.runtimes.get(sessionID)
	rt.mu.Lock()

	allAnswered, err := s.submitLocked(sessionID, req)
	rt.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(sessionID)

	// Last-answer arrival races the question timer; CloseCurrentQuestion
	// re-checks state under the lock, so the losing trigger is a no-op.
	if allAnswered {
		if err := s.sessions.CloseCurrentQuestion(sessionID); err != nil {
			log.Warn().Err(err).Str("sessionID", sessionID).
				Msg("Auto-close after last answer did not apply")
		}
	}
	return nil
}

func (s *answerService) submitLocked(sessionID string, req dto.SubmitAnswerRequest) (bool, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, ErrSessionNotFound
		}
		return false, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	if session.IsFinished() {
		return false, ErrSessionFinished
	}
	if session.CurrentIndex < 0 {
		return false, ErrStaleQuestion
	}

	question, err := s.questionRepo.FindByIndex(sessionID, session.CurrentIndex)
	if err != nil {
		return false, fmt.Errorf("loading current question: %w", err)
	}
	if req.QuestionID != question.ID {
		return false, ErrStaleQuestion
	}
	if session.Status == model.StatusQuestionClosed {
		return false, ErrQuestionAlreadyClosed
	}
	if session.Status != model.StatusQuestionOpen {
		return false, ErrStaleQuestion
	}

	if req.OptionIndex < 0 || req.OptionIndex >= session.OptionCount {
		return false, fmt.Errorf("%w: option %d of %d", ErrInvalidOption, req.OptionIndex, session.OptionCount)
	}

	participant, err := s.participantRepo.FindByID(req.ParticipantID)
	if err != nil || participant.SessionID != sessionID {
		return false, ErrUnknownParticipant
	}
	if !participant.EligibleFor(session.CurrentIndex) {
		return false, ErrAwaitingNextQuestion
	}

	isCorrect := req.OptionIndex == question.CorrectOption
	points := s.scoring.Score(isCorrect, req.ElapsedSec, session.TimeBudgetSec)

	existing, err := s.answerRepo.FindByParticipantAndQuestion(participant.ID, question.ID)
	switch {
	case err == nil:
		// Change of mind: replace the record, adjust the cumulative score
		// by the delta so nothing is double-counted.
		delta := points - existing.Points
		existing.OptionIndex = req.OptionIndex
		existing.ElapsedSec = req.ElapsedSec
		existing.Points = points
		existing.SubmittedAt = time.Now()
		if err := s.answerRepo.Update(existing); err != nil {
			return false, fmt.Errorf("updating answer: %w", err)
		}
		if delta != 0 {
			if err := s.participantRepo.AddToScore(participant.ID, delta); err != nil {
				return false, fmt.Errorf("applying score delta: %w", err)
			}
		}
	case repository.IsNotFound(err):
		answer := model.Answer{
			ID:            uuid.NewString(),
			SessionID:     sessionID,
			ParticipantID: participant.ID,
			QuestionID:    question.ID,
			OptionIndex:   req.OptionIndex,
			ElapsedSec:    req.ElapsedSec,
			Points:        points,
			SubmittedAt:   time.Now(),
		}
		if err := s.answerRepo.Create(&answer); err != nil {
			return false, fmt.Errorf("creating answer: %w", err)
		}
		if points != 0 {
			if err := s.participantRepo.AddToScore(participant.ID, points); err != nil {
				return false, fmt.Errorf("applying score: %w", err)
			}
		}
	default:
		return false, fmt.Errorf("looking up answer: %w", err)
	}

	return s.allAnsweredLocked(sessionID, question.ID, session.CurrentIndex)
}

// allAnsweredLocked reports whether every participant eligible for the
// current question has a recorded answer. Participants who joined while
// this question was already open are not expected to answer it.
func (s *answerService) allAnsweredLocked(sessionID, questionID string, questionIndex int) (bool, error) {
	answered, err := s.answerRepo.CountByQuestionID(questionID)
	if err != nil {
		return false, fmt.Errorf("counting answers: %w", err)
	}

	participants, err := s.participantRepo.FindBySessionID(sessionID)
	if err != nil {
		return false, fmt.Errorf("loading participants: %w", err)
	}
	eligible := 0
	for _, p := range participants {
		if p.EligibleFor(questionIndex) {
			eligible++
		}
	}

	return eligible > 0 && int(answered) >= eligible, nil
}

func (s *answerService) CountForQuestion(questionID string) (int, error) {
	count, err := s.answerRepo.CountByQuestionID(questionID)
	if err != nil {
		return 0, fmt.Errorf("counting answers: %w", err)
	}
	return int(count), nil
}

func (s *answerService) GetParticipantResult(sessionID, participantID string) (*dto.ParticipantResultResponse, error) {
	rt := s.runtimes.get(sessionID)
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	participant, err := s.participantRepo.FindByID(participantID)
	if err != nil || participant.SessionID != sessionID {
		return nil, ErrUnknownParticipant
	}

	result := &dto.ParticipantResultResponse{TotalScore: participant.Score}
	if session.CurrentIndex < 0 {
		return result, nil
	}

	question, err := s.questionRepo.FindByIndex(sessionID, session.CurrentIndex)
	if err != nil {
		return nil, fmt.Errorf("loading current question: %w", err)
	}
	result.QuestionID = question.ID

	answer, err := s.answerRepo.FindByParticipantAndQuestion(participantID, question.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return result, nil
		}
		return nil, fmt.Errorf("looking up answer: %w", err)
	}

	result.Answered = true
	optionIndex := answer.OptionIndex
	result.OptionIndex = &optionIndex

	// Correctness and points stay hidden while the question is open.
	if session.Status == model.StatusQuestionClosed || session.Status == model.StatusFinished {
		isCorrect := answer.OptionIndex == question.CorrectOption
		points := answer.Points
		result.IsCorrect = &isCorrect
		result.Points = &points
	}
	return result, nil
}

func (s *answerService) notify(sessionID string) {
	if s.notifier != nil {
		s.notifier.SessionChanged(sessionID)
	}
}
