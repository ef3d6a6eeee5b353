package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/model"
	"github.com/tuanng-dev/quizhive/internal/repository"
	"gorm.io/gorm"
)

// Map-backed stand-ins for the storage collaborator. They return copies
// so services always work on a freshly loaded record, the way the real
// repositories do.

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.Session

	// Create cascades nested questions the way gorm does.
	questions *fakeQuestionRepo
}

func newFakeSessionRepo(questions *fakeQuestionRepo) *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions:  make(map[string]model.Session),
		questions: questions,
	}
}

func (r *fakeSessionRepo) Create(session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *session
	stored.Questions = nil
	stored.Participants = nil
	r.sessions[session.ID] = stored
	r.questions.add(session.ID, session.Questions)
	return nil
}

func (r *fakeSessionRepo) Update(session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[session.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = session.Status
	stored.CurrentIndex = session.CurrentIndex
	r.sessions[session.ID] = stored
	return nil
}

func (r *fakeSessionRepo) FindByID(id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := stored
	return &copied, nil
}

func (r *fakeSessionRepo) FindByJoinCode(code string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.sessions {
		if stored.JoinCode == code && stored.Status != model.StatusFinished {
			copied := stored
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) CountActiveByJoinCode(code string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, stored := range r.sessions {
		if stored.JoinCode == code && stored.Status != model.StatusFinished {
			count++
		}
	}
	return count, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string][]model.Question // keyed by session ID, ordered
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[string][]model.Question)}
}

func (r *fakeQuestionRepo) add(sessionID string, questions []model.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions[sessionID] = questions
}

func (r *fakeQuestionRepo) FindBySessionID(sessionID string) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Question, len(r.questions[sessionID]))
	copy(out, r.questions[sessionID])
	return out, nil
}

func (r *fakeQuestionRepo) FindByIndex(sessionID string, orderIndex int) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions[sessionID] {
		if q.OrderIndex == orderIndex {
			copied := q
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants []model.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{}
}

func (r *fakeParticipantRepo) Create(participant *model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = append(r.participants, *participant)
	return nil
}

func (r *fakeParticipantRepo) FindByID(id string) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParticipantRepo) FindBySessionID(sessionID string) ([]model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Participant
	for _, p := range r.participants {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) CountBySessionID(sessionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.participants {
		if p.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeParticipantRepo) AddToScore(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.participants {
		if r.participants[i].ID == id {
			r.participants[i].Score += delta
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeAnswerRepo struct {
	mu      sync.Mutex
	answers []model.Answer
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{}
}

func (r *fakeAnswerRepo) Create(answer *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, *answer)
	return nil
}

func (r *fakeAnswerRepo) Update(answer *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.answers {
		if r.answers[i].ID == answer.ID {
			r.answers[i] = *answer
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAnswerRepo) FindByParticipantAndQuestion(participantID, questionID string) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.answers {
		if a.ParticipantID == participantID && a.QuestionID == questionID {
			copied := a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAnswerRepo) CountByQuestionID(questionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	cues []string
}

func (n *recordingNotifier) SessionChanged(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cues = append(n.cues, sessionID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.cues)
}

// testEnv wires the full service stack against the fakes.
type testEnv struct {
	sessionRepo     *fakeSessionRepo
	questionRepo    *fakeQuestionRepo
	participantRepo *fakeParticipantRepo
	answerRepo      *fakeAnswerRepo
	notifier        *recordingNotifier

	sessions     SessionService
	answers      AnswerService
	participants ParticipantService
}

func newTestEnv() *testEnv {
	questionRepo := newFakeQuestionRepo()
	env := &testEnv{
		sessionRepo:     newFakeSessionRepo(questionRepo),
		questionRepo:    questionRepo,
		participantRepo: newFakeParticipantRepo(),
		answerRepo:      newFakeAnswerRepo(),
		notifier:        &recordingNotifier{},
	}
	runtimes := NewRuntimeRegistry()
	env.sessions = NewSessionService(
		env.sessionRepo, env.questionRepo, env.participantRepo, env.answerRepo,
		NewLeaderboardService(), runtimes, env.notifier,
	)
	env.answers = NewAnswerService(
		env.sessionRepo, env.questionRepo, env.participantRepo, env.answerRepo,
		NewScoringService(), env.sessions, runtimes, env.notifier,
	)
	env.participants = NewParticipantService(
		env.sessionRepo, env.participantRepo, runtimes, env.notifier,
	)
	return env
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)
var _ repository.QuestionRepository = (*fakeQuestionRepo)(nil)
var _ repository.ParticipantRepository = (*fakeParticipantRepo)(nil)
var _ repository.AnswerRepository = (*fakeAnswerRepo)(nil)

func fourOptions() []dto.OptionRequest {
	return []dto.OptionRequest{
		{Text: "Red"}, {Text: "Blue"}, {Text: "Yellow"}, {Text: "Green"},
	}
}

// createSession builds a session with n questions (correct option 0 on
// each) and registers the questions with the fake question repo.
func (env *testEnv) createSession(t *testing.T, n, budgetSec, capacity int) *dto.SessionResponse {
	t.Helper()

	req := dto.CreateSessionRequest{
		Title:         "General Knowledge",
		TimeBudgetSec: budgetSec,
		Capacity:      capacity,
	}
	for i := 0; i < n; i++ {
		req.Questions = append(req.Questions, dto.QuestionRequest{
			Prompt:        "Question prompt",
			Options:       fourOptions(),
			CorrectOption: 0,
		})
	}

	resp, err := env.sessions.Create(req)
	require.NoError(t, err)

	questions, err := env.questionRepo.FindBySessionID(resp.ID)
	require.NoError(t, err)
	require.Len(t, questions, n)
	return resp
}

func (env *testEnv) enroll(t *testing.T, joinCode, name string) *dto.EnrollResponse {
	t.Helper()
	resp, err := env.participants.Enroll(dto.EnrollRequest{JoinCode: joinCode, DisplayName: name})
	require.NoError(t, err)
	return resp
}

func (env *testEnv) questionID(t *testing.T, sessionID string, index int) string {
	t.Helper()
	q, err := env.questionRepo.FindByIndex(sessionID, index)
	require.NoError(t, err)
	return q.ID
}
