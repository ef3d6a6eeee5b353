package host

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tuanng-dev/quizhive/internal/controller"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/service"
)

// SessionController exposes the host-facing pacing commands: create,
// start, advance, finish, plus the read surface the host screen renders.
type SessionController struct {
	sessionSvc service.SessionService
}

func NewSessionController(sessionSvc service.SessionService) *SessionController {
	return &SessionController{sessionSvc: sessionSvc}
}

// CreateSession godoc
// @Summary (Host) Create a new quiz session
// @Description Create a session with its full question list. The session starts in the lobby.
// @Tags Host - Sessions
// @Accept json
// @Produce json
// @Param session body dto.CreateSessionRequest true "Session configuration"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid configuration"
// @Router /host/sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSession: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.sessionSvc.Create(req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateSession: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// StartSession godoc
// @Summary (Host) Start the session
// @Description Move the session from the lobby to its first open question. Requires at least one enrolled participant.
// @Tags Host - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Not in lobby, or no participants"
// @Router /host/sessions/{session_id}/start [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	if err := c.sessionSvc.Start(sessionID); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("StartSession: service error")
		controller.RespondError(ctx, err)
		return
	}
	c.respondState(ctx, sessionID)
}

// AdvanceQuestion godoc
// @Summary (Host) Advance to the next question
// @Description Open the next question, or finish the session when questions are exhausted. Only valid while the current question is closed.
// @Tags Host - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /host/sessions/{session_id}/advance [post]
func (c *SessionController) AdvanceQuestion(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	if err := c.sessionSvc.Advance(sessionID); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("AdvanceQuestion: service error")
		controller.RespondError(ctx, err)
		return
	}
	c.respondState(ctx, sessionID)
}

// FinishSession godoc
// @Summary (Host) Finish the session
// @Description End the session immediately, whatever state it is in.
// @Tags Host - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already finished"
// @Router /host/sessions/{session_id}/finish [post]
func (c *SessionController) FinishSession(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	if err := c.sessionSvc.ForceFinish(sessionID); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("FinishSession: service error")
		controller.RespondError(ctx, err)
		return
	}
	c.respondState(ctx, sessionID)
}

// GetSessionState godoc
// @Summary Get the session's current state
// @Description Lifecycle state, question cursor, answered and participant counts, and the current question payload. The correct option is only present once the question has closed.
// @Tags Host - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /host/sessions/{session_id} [get]
func (c *SessionController) GetSessionState(ctx *gin.Context) {
	c.respondState(ctx, ctx.Param("session_id"))
}

// GetLeaderboard godoc
// @Summary Get the session leaderboard
// @Description Standings with standard competition ranking. Use the 'top' query parameter to truncate.
// @Tags Host - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param top query int false "Return only the top K entries"
// @Success 200 {array} dto.LeaderboardEntry
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /host/sessions/{session_id}/leaderboard [get]
func (c *SessionController) GetLeaderboard(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	topK := 0
	if topStr := ctx.Query("top"); topStr != "" {
		val, err := strconv.Atoi(topStr)
		if err != nil || val < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid 'top' query parameter"})
			return
		}
		topK = val
	}

	entries, err := c.sessionSvc.GetLeaderboard(sessionID, topK)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetLeaderboard: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

func (c *SessionController) respondState(ctx *gin.Context, sessionID string) {
	state, err := c.sessionSvc.GetState(sessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetState: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}
