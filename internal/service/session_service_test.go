package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/model"
)

func TestCreate_RejectsInvalidConfig(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name string
		req  dto.CreateSessionRequest
	}{
		{
			name: "no questions",
			req:  dto.CreateSessionRequest{Title: "Empty", TimeBudgetSec: 30, Capacity: 5},
		},
		{
			name: "zero time budget",
			req: dto.CreateSessionRequest{
				Title: "No clock", TimeBudgetSec: 0, Capacity: 5,
				Questions: []dto.QuestionRequest{{Prompt: "q", Options: fourOptions()}},
			},
		},
		{
			name: "zero capacity",
			req: dto.CreateSessionRequest{
				Title: "No room", TimeBudgetSec: 30, Capacity: 0,
				Questions: []dto.QuestionRequest{{Prompt: "q", Options: fourOptions()}},
			},
		},
		{
			name: "single option",
			req: dto.CreateSessionRequest{
				Title: "One choice", TimeBudgetSec: 30, Capacity: 5,
				Questions: []dto.QuestionRequest{{Prompt: "q", Options: []dto.OptionRequest{{Text: "only"}}}},
			},
		},
		{
			name: "mismatched option counts",
			req: dto.CreateSessionRequest{
				Title: "Ragged", TimeBudgetSec: 30, Capacity: 5,
				Questions: []dto.QuestionRequest{
					{Prompt: "q1", Options: fourOptions()},
					{Prompt: "q2", Options: fourOptions()[:2]},
				},
			},
		},
		{
			name: "correct option out of range",
			req: dto.CreateSessionRequest{
				Title: "Impossible", TimeBudgetSec: 30, Capacity: 5,
				Questions: []dto.QuestionRequest{{Prompt: "q", Options: fourOptions(), CorrectOption: 4}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.sessions.Create(tc.req)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestCreate_NewSessionStartsInLobby(t *testing.T) {
	env := newTestEnv()

	resp := env.createSession(t, 3, 30, 5)

	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.JoinCode, 6)
	assert.Equal(t, model.StatusLobby, resp.Status)
	assert.Equal(t, -1, resp.CurrentIndex)
	assert.Equal(t, 3, resp.QuestionCount)
}

func TestStart_NeedsParticipants(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 1, 30, 5)

	assert.ErrorIs(t, env.sessions.Start(resp.ID), ErrNoParticipants)
}

func TestStart_OnlyFromLobby(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 1, 30, 5)
	env.enroll(t, resp.JoinCode, "Ada")

	require.NoError(t, env.sessions.Start(resp.ID))
	assert.ErrorIs(t, env.sessions.Start(resp.ID), ErrInvalidTransition)
}

func TestStart_UnknownSession(t *testing.T) {
	env := newTestEnv()

	assert.ErrorIs(t, env.sessions.Start("no-such-session"), ErrSessionNotFound)
}

func TestCloseCurrentQuestion_IsIdempotent(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 2, 30, 5)
	env.enroll(t, resp.JoinCode, "Ada")
	require.NoError(t, env.sessions.Start(resp.ID))

	require.NoError(t, env.sessions.CloseCurrentQuestion(resp.ID))
	// The losing close trigger finds the question already closed.
	require.NoError(t, env.sessions.CloseCurrentQuestion(resp.ID))

	state, err := env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusQuestionClosed, state.Status)
	assert.Equal(t, 0, state.CurrentIndex)
}

func TestCloseCurrentQuestion_NothingOpenInLobby(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 1, 30, 5)

	assert.ErrorIs(t, env.sessions.CloseCurrentQuestion(resp.ID), ErrInvalidTransition)
}

func TestAdvance_RequiresClosedQuestion(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 2, 30, 5)
	env.enroll(t, resp.JoinCode, "Ada")

	assert.ErrorIs(t, env.sessions.Advance(resp.ID), ErrInvalidTransition)

	require.NoError(t, env.sessions.Start(resp.ID))
	assert.ErrorIs(t, env.sessions.Advance(resp.ID), ErrInvalidTransition)
}

func TestAdvance_ExhaustedQuestionsFinishTheSession(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 1, 30, 5)
	env.enroll(t, resp.JoinCode, "Ada")
	require.NoError(t, env.sessions.Start(resp.ID))
	require.NoError(t, env.sessions.CloseCurrentQuestion(resp.ID))

	require.NoError(t, env.sessions.Advance(resp.ID))

	state, err := env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFinished, state.Status)

	// Finished is terminal.
	assert.ErrorIs(t, env.sessions.Start(resp.ID), ErrSessionFinished)
	assert.ErrorIs(t, env.sessions.Advance(resp.ID), ErrSessionFinished)
	assert.ErrorIs(t, env.sessions.CloseCurrentQuestion(resp.ID), ErrSessionFinished)
}

func TestForceFinish_EndsFromAnyLiveState(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 3, 30, 5)
	env.enroll(t, resp.JoinCode, "Ada")
	require.NoError(t, env.sessions.Start(resp.ID))

	require.NoError(t, env.sessions.ForceFinish(resp.ID))

	state, err := env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFinished, state.Status)

	assert.ErrorIs(t, env.sessions.ForceFinish(resp.ID), ErrSessionAlreadyFinished)
}

func TestGetState_HidesCorrectOptionWhileOpen(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 1, 30, 5)
	env.enroll(t, resp.JoinCode, "Ada")
	require.NoError(t, env.sessions.Start(resp.ID))

	state, err := env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentQuestion)
	assert.Nil(t, state.CurrentQuestion.CorrectOption)

	require.NoError(t, env.sessions.CloseCurrentQuestion(resp.ID))

	state, err = env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentQuestion)
	require.NotNil(t, state.CurrentQuestion.CorrectOption)
	assert.Equal(t, 0, *state.CurrentQuestion.CorrectOption)
}

func TestTimeBudget_ExpiryClosesTheQuestion(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 1, 1, 5)
	env.enroll(t, resp.JoinCode, "Ada")
	require.NoError(t, env.sessions.Start(resp.ID))

	require.Eventually(t, func() bool {
		state, err := env.sessions.GetState(resp.ID)
		return err == nil && state.Status == model.StatusQuestionClosed
	}, 3*time.Second, 50*time.Millisecond, "1s budget must close the question without host action")
}

// TestSessionLifecycle walks a two-question session end to end: open,
// score, auto-close on the last answer, advance, and finish.
func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv()
	resp := env.createSession(t, 2, 30, 3)

	p1 := env.enroll(t, resp.JoinCode, "Ada")
	p2 := env.enroll(t, resp.JoinCode, "Grace")

	require.NoError(t, env.sessions.Start(resp.ID))

	state, err := env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusQuestionOpen, state.Status)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, 2, state.ParticipantCount)

	q0 := env.questionID(t, resp.ID, 0)

	// Correct at 5s of a 30s budget: 1000 + floor((25/30)*500) = 1416.
	require.NoError(t, env.answers.Submit(resp.ID, dto.SubmitAnswerRequest{
		ParticipantID: p1.ParticipantID, QuestionID: q0, OptionIndex: 0, ElapsedSec: 5,
	}))
	// Incorrect scores nothing, speed notwithstanding.
	require.NoError(t, env.answers.Submit(resp.ID, dto.SubmitAnswerRequest{
		ParticipantID: p2.ParticipantID, QuestionID: q0, OptionIndex: 2, ElapsedSec: 1,
	}))

	// Everyone answered, so the question closed without the host.
	state, err = env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusQuestionClosed, state.Status)
	assert.Equal(t, 2, state.AnsweredCount)

	require.NoError(t, env.sessions.Advance(resp.ID))

	state, err = env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusQuestionOpen, state.Status)
	assert.Equal(t, 1, state.CurrentIndex)

	// An answer aimed at the previous question no longer lands.
	err = env.answers.Submit(resp.ID, dto.SubmitAnswerRequest{
		ParticipantID: p1.ParticipantID, QuestionID: q0, OptionIndex: 0, ElapsedSec: 2,
	})
	assert.ErrorIs(t, err, ErrStaleQuestion)

	q1 := env.questionID(t, resp.ID, 1)
	require.NoError(t, env.answers.Submit(resp.ID, dto.SubmitAnswerRequest{
		ParticipantID: p1.ParticipantID, QuestionID: q1, OptionIndex: 0, ElapsedSec: 30,
	}))
	require.NoError(t, env.answers.Submit(resp.ID, dto.SubmitAnswerRequest{
		ParticipantID: p2.ParticipantID, QuestionID: q1, OptionIndex: 0, ElapsedSec: 0,
	}))

	require.NoError(t, env.sessions.Advance(resp.ID))

	state, err = env.sessions.GetState(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFinished, state.Status)

	err = env.answers.Submit(resp.ID, dto.SubmitAnswerRequest{
		ParticipantID: p1.ParticipantID, QuestionID: q1, OptionIndex: 0, ElapsedSec: 1,
	})
	assert.ErrorIs(t, err, ErrSessionFinished)

	// Ada: 1416 + 1000, Grace: 0 + 1500.
	entries, err := env.sessions.GetLeaderboard(resp.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, p1.ParticipantID, entries[0].ParticipantID)
	assert.Equal(t, 2416, entries[0].Score)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, p2.ParticipantID, entries[1].ParticipantID)
	assert.Equal(t, 1500, entries[1].Score)
	assert.Equal(t, 2, entries[1].Rank)

	top, err := env.sessions.GetLeaderboard(resp.ID, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, p1.ParticipantID, top[0].ParticipantID)

	assert.Greater(t, env.notifier.count(), 0)
}
