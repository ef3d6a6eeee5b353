package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/service"
)

// ErrorStatus maps the service error taxonomy to HTTP status codes.
// Everything in the taxonomy is an expected, caller-recoverable
// condition; anything unrecognized is treated as an internal error.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownParticipant):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidConfig),
		errors.Is(err, service.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrSessionFinished),
		errors.Is(err, service.ErrSessionAlreadyFinished),
		errors.Is(err, service.ErrStaleQuestion),
		errors.Is(err, service.ErrQuestionAlreadyClosed),
		errors.Is(err, service.ErrSessionFull),
		errors.Is(err, service.ErrNoParticipants),
		errors.Is(err, service.ErrAwaitingNextQuestion):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error as a JSON body with the mapped status.
func RespondError(ctx *gin.Context, err error) {
	ctx.JSON(ErrorStatus(err), dto.ErrorResponse{Message: err.Error()})
}
