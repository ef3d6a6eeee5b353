package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/model"
	"github.com/tuanng-dev/quizhive/internal/repository"
)

const maxDisplayNameLen = 50

// ParticipantService enrolls participants into sessions by join code
// and enforces capacity. Display names are not required to be unique.
type ParticipantService interface {
	Enroll(req dto.EnrollRequest) (*dto.EnrollResponse, error)
	Count(sessionID string) (int, error)
}

type participantService struct {
	sessionRepo     repository.SessionRepository
	participantRepo repository.ParticipantRepository
	runtimes        *RuntimeRegistry
	notifier        ChangeNotifier
}

func NewParticipantService(
	sessionRepo repository.SessionRepository,
	participantRepo repository.ParticipantRepository,
	runtimes *RuntimeRegistry,
	notifier ChangeNotifier,
) ParticipantService {
	return &participantService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		runtimes:        runtimes,
		notifier:        notifier,
	}
}

func (s *participantService) Enroll(req dto.EnrollRequest) (*dto.EnrollResponse, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" || len(name) > maxDisplayNameLen {
		return nil, fmt.Errorf("%w: display name must be 1-%d characters", ErrInvalidConfig, maxDisplayNameLen)
	}

	session, err := s.sessionRepo.FindByJoinCode(req.JoinCode)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("looking up session by join code: %w", err)
	}

	rt := s.runtimes.get(session.ID)
	rt.mu.Lock()

	// Re-read under the lock so the capacity check and the state check
	// see the session as it is right now.
	session, err = s.sessionRepo.FindByID(session.ID)
	if err != nil {
		rt.mu.Unlock()
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session.IsFinished() {
		rt.mu.Unlock()
		return nil, ErrSessionAlreadyFinished
	}

	count, err := s.participantRepo.CountBySessionID(session.ID)
	if err != nil {
		rt.mu.Unlock()
		return nil, fmt.Errorf("counting participants: %w", err)
	}
	if int(count) >= session.Capacity {
		rt.mu.Unlock()
		return nil, ErrSessionFull
	}

	participant := model.Participant{
		ID:                uuid.NewString(),
		SessionID:         session.ID,
		DisplayName:       name,
		Score:             0,
		JoinedMidQuestion: -1,
		EnrolledAt:        time.Now(),
	}
	// A late joiner lands in the session but sits out the question that
	// is already open; they can answer from the next question_open on.
	if session.Status == model.StatusQuestionOpen {
		participant.JoinedMidQuestion = session.CurrentIndex
	}

	if err := s.participantRepo.Create(&participant); err != nil {
		rt.mu.Unlock()
		return nil, fmt.Errorf("enrolling participant: %w", err)
	}
	rt.mu.Unlock()

	log.Info().Str("sessionID", session.ID).Str("participantID", participant.ID).
		Str("displayName", name).Msg("Participant enrolled")
	s.notify(session.ID)

	return &dto.EnrollResponse{
		SessionID:     session.ID,
		ParticipantID: participant.ID,
		DisplayName:   participant.DisplayName,
		Score:         participant.Score,
	}, nil
}

func (s *participantService) Count(sessionID string) (int, error) {
	count, err := s.participantRepo.CountBySessionID(sessionID)
	if err != nil {
		return 0, fmt.Errorf("counting participants: %w", err)
	}
	return int(count), nil
}

func (s *participantService) notify(sessionID string) {
	if s.notifier != nil {
		s.notifier.SessionChanged(sessionID)
	}
}
