package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/model"
	"github.com/tuanng-dev/quizhive/internal/repository"
)

// ChangeNotifier receives a coarse cue after every committed session
// mutation. Subscribers are expected to re-fetch authoritative state,
// not to trust the cue's payload. A failing notifier degrades clients
// to polling; it never fails a session operation.
type ChangeNotifier interface {
	SessionChanged(sessionID string)
}

// SessionService owns the lifecycle of quiz sessions:
// lobby -> question_open -> question_closed -> (next question | finished).
// All transitions for one session are serialized through its runtime
// lock; reads take the read side for a consistent snapshot.
type SessionService interface {
	Create(req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Start(sessionID string) error
	CloseCurrentQuestion(sessionID string) error
	Advance(sessionID string) error
	ForceFinish(sessionID string) error
	GetState(sessionID string) (*dto.SessionStateResponse, error)
	GetLeaderboard(sessionID string, topK int) ([]dto.LeaderboardEntry, error)
}

type sessionService struct {
	sessionRepo     repository.SessionRepository
	questionRepo    repository.QuestionRepository
	participantRepo repository.ParticipantRepository
	answerRepo      repository.AnswerRepository
	leaderboard     LeaderboardService
	runtimes        *RuntimeRegistry
	notifier        ChangeNotifier
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	participantRepo repository.ParticipantRepository,
	answerRepo repository.AnswerRepository,
	leaderboard LeaderboardService,
	runtimes *RuntimeRegistry,
	notifier ChangeNotifier,
) SessionService {
	return &sessionService{
		sessionRepo:     sessionRepo,
		questionRepo:    questionRepo,
		participantRepo: participantRepo,
		answerRepo:      answerRepo,
		leaderboard:     leaderboard,
		runtimes:        runtimes,
		notifier:        notifier,
	}
}

func (s *sessionService) Create(req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: session needs at least one question", ErrInvalidConfig)
	}
	if req.TimeBudgetSec <= 0 {
		return nil, fmt.Errorf("%w: time budget must be positive, got %d", ErrInvalidConfig, req.TimeBudgetSec)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, req.Capacity)
	}

	optionCount := len(req.Questions[0].Options)
	if optionCount < 2 {
		return nil, fmt.Errorf("%w: questions need at least two options", ErrInvalidConfig)
	}

	session := model.Session{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Status:        model.StatusLobby,
		CurrentIndex:  -1,
		TimeBudgetSec: req.TimeBudgetSec,
		Capacity:      req.Capacity,
		OptionCount:   optionCount,
	}

	for i, qReq := range req.Questions {
		if len(qReq.Options) != optionCount {
			return nil, fmt.Errorf("%w: question %d has %d options, expected %d",
				ErrInvalidConfig, i, len(qReq.Options), optionCount)
		}
		if qReq.CorrectOption < 0 || qReq.CorrectOption >= optionCount {
			return nil, fmt.Errorf("%w: question %d correct option %d out of range",
				ErrInvalidConfig, i, qReq.CorrectOption)
		}

		question := model.Question{
			ID:            uuid.NewString(),
			SessionID:     session.ID,
			Prompt:        qReq.Prompt,
			OrderIndex:    i,
			CorrectOption: qReq.CorrectOption,
		}
		for j, oReq := range qReq.Options {
			question.Options = append(question.Options, model.Option{
				ID:         uuid.NewString(),
				QuestionID: question.ID,
				Text:       oReq.Text,
				OrderIndex: j,
			})
		}
		session.Questions = append(session.Questions, question)
	}

	code, err := s.generateJoinCode()
	if err != nil {
		return nil, err
	}
	session.JoinCode = code

	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Msg("Failed to create session in database")
		return nil, fmt.Errorf("database error creating session: %w", err)
	}

	var resp dto.SessionResponse
	if err := copier.Copy(&resp, &session); err != nil {
		log.Error().Err(err).Msg("Failed to copy Session model to SessionResponse")
		return nil, fmt.Errorf("error preparing session response: %w", err)
	}
	resp.QuestionCount = len(session.Questions)

	log.Info().Str("sessionID", session.ID).Str("joinCode", session.JoinCode).
		Int("questions", len(session.Questions)).Msg("Session created")
	return &resp, nil
}

// Start moves the session from the lobby to its first open question.
// The host needs at least one enrolled participant to start.
func (s *sessionService) Start(sessionID string) error {
	rt := s.runtimes.get(sessionID)
	rt.mu.Lock()

	session, err := s.loadLocked(sessionID)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	if session.IsFinished() {
		rt.mu.Unlock()
		return ErrSessionFinished
	}
	if session.Status != model.StatusLobby {
		rt.mu.Unlock()
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, session.Status)
	}

	count, err := s.participantRepo.CountBySessionID(sessionID)
	if err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("counting participants: %w", err)
	}
	if count == 0 {
		rt.mu.Unlock()
		return ErrNoParticipants
	}

	session.Status = model.StatusQuestionOpen
	session.CurrentIndex = 0
	if err := s.sessionRepo.Update(session); err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("persisting session start: %w", err)
	}
	s.armQuestionTimer(rt, session)
	rt.mu.Unlock()

	log.Info().Str("sessionID", sessionID).Msg("Session started, question 0 open")
	s.notify(sessionID)
	return nil
}

// CloseCurrentQuestion moves question_open to question_closed. It is
// the single funnel for the two close triggers, timer expiry and
// last-answer arrival: whichever loses the race finds the session
// already in question_closed and returns nil.
func (s *sessionService) CloseCurrentQuestion(sessionID string) error {
	rt := s.runtimes.get(sessionID)
	rt.mu.Lock()

	session, err := s.loadLocked(sessionID)
	if err != nil {
		rt.mu.Unlock()
		return err
	}

	switch session.Status {
	case model.StatusQuestionClosed:
		rt.mu.Unlock()
		return nil
	case model.StatusFinished:
		rt.mu.Unlock()
		return ErrSessionFinished
	case model.StatusLobby:
		rt.mu.Unlock()
		return fmt.Errorf("%w: no question open in lobby", ErrInvalidTransition)
	}

	rt.stopCloseTimer()
	session.Status = model.StatusQuestionClosed
	if err := s.sessionRepo.Update(session); err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("persisting question close: %w", err)
	}
	rt.mu.Unlock()

	log.Info().Str("sessionID", sessionID).Int("questionIndex", session.CurrentIndex).
		Msg("Question closed")
	s.notify(sessionID)
	return nil
}

// Advance opens the next question, or finishes the session when no
// questions remain.
func (s *sessionService) Advance(sessionID string) error {
	rt := s.runtimes.get(sessionID)
	rt.mu.Lock()

	session, err := s.loadLocked(sessionID)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	if session.IsFinished() {
		rt.mu.Unlock()
		return ErrSessionFinished
	}
	if session.Status != model.StatusQuestionClosed {
		rt.mu.Unlock()
		return fmt.Errorf("%w: cannot advance from %s", ErrInvalidTransition, session.Status)
	}

	questions, err := s.questionRepo.FindBySessionID(sessionID)
	if err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("loading questions: %w", err)
	}

	if session.CurrentIndex+1 < len(questions) {
		session.CurrentIndex++
		session.Status = model.StatusQuestionOpen
		if err := s.sessionRepo.Update(session); err != nil {
			rt.mu.Unlock()
			return fmt.Errorf("persisting advance: %w", err)
		}
		s.armQuestionTimer(rt, session)
		rt.mu.Unlock()

		log.Info().Str("sessionID", sessionID).Int("questionIndex", session.CurrentIndex).
			Msg("Next question open")
		s.notify(sessionID)
		return nil
	}

	session.Status = model.StatusFinished
	if err := s.sessionRepo.Update(session); err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("persisting finish: %w", err)
	}
	rt.mu.Unlock()
	s.runtimes.drop(sessionID)

	log.Info().Str("sessionID", sessionID).Msg("Session finished, questions exhausted")
	s.notify(sessionID)
	return nil
}

// ForceFinish ends the session from any non-terminal state. Hosts use
// it to cut a session short.
func (s *sessionService) ForceFinish(sessionID string) error {
	rt := s.runtimes.get(sessionID)
	rt.mu.Lock()

	session, err := s.loadLocked(sessionID)
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	if session.IsFinished() {
		rt.mu.Unlock()
		return ErrSessionAlreadyFinished
	}

	rt.stopCloseTimer()
	session.Status = model.StatusFinished
	if err := s.sessionRepo.Update(session); err != nil {
		rt.mu.Unlock()
		return fmt.Errorf("persisting force finish: %w", err)
	}
	rt.mu.Unlock()
	s.runtimes.drop(sessionID)

	log.Info().Str("sessionID", sessionID).Msg("Session force-finished by host")
	s.notify(sessionID)
	return nil
}

func (s *sessionService) GetState(sessionID string) (*dto.SessionStateResponse, error) {
	rt := s.runtimes.get(sessionID)
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	session, err := s.loadLocked(sessionID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}
	participantCount, err := s.participantRepo.CountBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("counting participants: %w", err)
	}

	state := &dto.SessionStateResponse{
		ID:               session.ID,
		Title:            session.Title,
		Status:           session.Status,
		CurrentIndex:     session.CurrentIndex,
		TimeBudgetSec:    session.TimeBudgetSec,
		QuestionCount:    len(questions),
		ParticipantCount: int(participantCount),
	}

	if session.CurrentIndex >= 0 && session.CurrentIndex < len(questions) {
		question := questions[session.CurrentIndex]

		answered, err := s.answerRepo.CountByQuestionID(question.ID)
		if err != nil {
			return nil, fmt.Errorf("counting answers: %w", err)
		}
		state.AnsweredCount = int(answered)

		qr := dto.QuestionResponse{
			ID:         question.ID,
			Prompt:     question.Prompt,
			OrderIndex: question.OrderIndex,
		}
		for _, o := range question.Options {
			qr.Options = append(qr.Options, dto.OptionResponse{
				ID:         o.ID,
				Text:       o.Text,
				OrderIndex: o.OrderIndex,
			})
		}
		// The correct option stays hidden while the question is open.
		if session.Status == model.StatusQuestionClosed || session.Status == model.StatusFinished {
			correct := question.CorrectOption
			qr.CorrectOption = &correct
		}
		state.CurrentQuestion = &qr
	}

	return state, nil
}

func (s *sessionService) GetLeaderboard(sessionID string, topK int) ([]dto.LeaderboardEntry, error) {
	rt := s.runtimes.get(sessionID)
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	if _, err := s.loadLocked(sessionID); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w", err)
	}

	entries := s.leaderboard.Rank(participants)
	if topK > 0 && topK < len(entries) {
		entries = entries[:topK]
	}
	return entries, nil
}

func (s *sessionService) loadLocked(sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	return session, nil
}

// armQuestionTimer schedules the time-budget close for the question that
// is open right now. The callback re-checks the cursor so a timer that
// fires after the host has already advanced is a no-op.
func (s *sessionService) armQuestionTimer(rt *sessionRuntime, session *model.Session) {
	sessionID := session.ID
	index := session.CurrentIndex
	rt.armCloseTimer(time.Duration(session.TimeBudgetSec)*time.Second, func() {
		s.closeExpired(sessionID, index)
	})
}

func (s *sessionService) closeExpired(sessionID string, questionIndex int) {
	rt := s.runtimes.get(sessionID)
	rt.mu.Lock()
	session, err := s.loadLocked(sessionID)
	if err != nil {
		rt.mu.Unlock()
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("Timer close: session load failed")
		return
	}
	if session.Status != model.StatusQuestionOpen || session.CurrentIndex != questionIndex {
		rt.mu.Unlock()
		return
	}
	session.Status = model.StatusQuestionClosed
	if err := s.sessionRepo.Update(session); err != nil {
		rt.mu.Unlock()
		log.Error().Err(err).Str("sessionID", sessionID).Msg("Timer close: persisting failed")
		return
	}
	rt.mu.Unlock()

	log.Info().Str("sessionID", sessionID).Int("questionIndex", questionIndex).
		Msg("Question closed, time budget elapsed")
	s.notify(sessionID)
}

func (s *sessionService) generateJoinCode() (string, error) {
	for {
		code := fmt.Sprintf("%06d", rand.Intn(1000000))
		count, err := s.sessionRepo.CountActiveByJoinCode(code)
		if err != nil {
			return "", fmt.Errorf("checking join code uniqueness: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
}

func (s *sessionService) notify(sessionID string) {
	if s.notifier != nil {
		s.notifier.SessionChanged(sessionID)
	}
}
