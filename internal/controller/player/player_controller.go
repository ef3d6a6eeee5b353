package player

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/tuanng-dev/quizhive/internal/controller"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/service"
	"github.com/tuanng-dev/quizhive/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// PlayerController exposes the participant-facing surface: enrolling by
// join code, answering the open question, reading back results, and the
// websocket change-cue subscription.
type PlayerController struct {
	participantSvc service.ParticipantService
	answerSvc      service.AnswerService
	sessionSvc     service.SessionService
	hub            *ws.Hub
}

func NewPlayerController(
	participantSvc service.ParticipantService,
	answerSvc service.AnswerService,
	sessionSvc service.SessionService,
	hub *ws.Hub,
) *PlayerController {
	return &PlayerController{
		participantSvc: participantSvc,
		answerSvc:      answerSvc,
		sessionSvc:     sessionSvc,
		hub:            hub,
	}
}

// Enroll godoc
// @Summary (Player) Join a session by code
// @Description Enroll with a display name. Names do not have to be unique. Joining mid-question is allowed, but the joiner sits out the question already open.
// @Tags Player
// @Accept json
// @Produce json
// @Param enrollment body dto.EnrollRequest true "Join code and display name"
// @Success 201 {object} dto.EnrollResponse
// @Failure 404 {object} dto.ErrorResponse "No active session with this code"
// @Failure 409 {object} dto.ErrorResponse "Session full or finished"
// @Router /play/enroll [post]
func (c *PlayerController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Enroll: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.participantSvc.Enroll(req)
	if err != nil {
		log.Warn().Err(err).Str("joinCode", req.JoinCode).Msg("Enroll: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAnswer godoc
// @Summary (Player) Answer the open question
// @Description Submit or change an answer for the currently open question. A resubmission replaces the previous answer; it never counts twice.
// @Tags Player
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 204 "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse "Option index out of range"
// @Failure 404 {object} dto.ErrorResponse "Unknown session or participant"
// @Failure 409 {object} dto.ErrorResponse "Question closed or not current"
// @Router /play/sessions/{session_id}/answer [post]
func (c *PlayerController) SubmitAnswer(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.answerSvc.Submit(sessionID, req); err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).
			Str("participantID", req.ParticipantID).Msg("SubmitAnswer: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetMyResult godoc
// @Summary (Player) Get my result for the current question
// @Description The caller's answer, correctness and points for the current question plus their running total. Correctness is only revealed once the question closes.
// @Tags Player
// @Produce json
// @Param session_id path string true "Session ID"
// @Param participant_id query string true "Participant ID"
// @Success 200 {object} dto.ParticipantResultResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown session or participant"
// @Router /play/sessions/{session_id}/result [get]
func (c *PlayerController) GetMyResult(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	participantID := ctx.Query("participant_id")
	if participantID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "participant_id query parameter is required"})
		return
	}

	result, err := c.answerSvc.GetParticipantResult(sessionID, participantID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetMyResult: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetSessionState godoc
// @Summary (Player) Get the session's current state
// @Tags Player
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /play/sessions/{session_id} [get]
func (c *PlayerController) GetSessionState(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	state, err := c.sessionSvc.GetState(sessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetSessionState: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// HandleWebSocket subscribes the client to change cues for one session.
// The cue payload carries no state; clients re-fetch the read surface.
// If the socket drops, clients fall back to polling GET state.
func (c *PlayerController) HandleWebSocket(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	if _, err := c.sessionSvc.GetState(sessionID); err != nil {
		controller.RespondError(ctx, err)
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("ws upgrade failed")
		return
	}

	c.hub.AddConnection(sessionID, conn)
	go func() {
		defer c.hub.RemoveConnection(sessionID, conn)
		for {
			// Clients do not send anything meaningful; read until the
			// connection dies so we notice the disconnect.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
