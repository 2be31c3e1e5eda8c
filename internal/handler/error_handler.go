package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/handler/response"
)

const (
	registerFailedMessage     = "Failed to register team. Check database connection."
	paymentFailedMessage      = "Failed to process payment. Please try again."
	fetchTeamsFailedMessage   = "Failed to fetch teams"
	fetchPaymentFailedMessage = "Failed to fetch payment data"
)

// handleError отдает доменную ошибку с ее статусом; все остальное - 500 с фиксированной фразой и details
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error, failureMessage string) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		statusCode := getStatusCode(domainErr.Code)
		if statusCode >= http.StatusInternalServerError {
			h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		}
		response.JSON(w, statusCode, response.Error{
			Error: domainErr.Message,
			Code:  domainErr.Code,
		})
		return
	}

	h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	response.JSON(w, http.StatusInternalServerError, response.Error{
		Error:   failureMessage,
		Details: err.Error(),
	})
}

func getStatusCode(errorCode string) int {
	switch errorCode {
	case domain.CodeMissingFields,
		domain.CodeMissingLeaderInfo,
		domain.CodeInvalidTeamSize,
		domain.CodeMissingMemberInfo,
		domain.CodeInvalidAmount,
		domain.CodeInvalidScreenshot,
		domain.CodeInvalidTeamID,
		domain.CodeBadRequest:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// readJSON декодирует тело не больше maxBytes; ошибки разбора превращаются в BAD_REQUEST
func readJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var domainErr *domain.DomainError
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &domainErr):
		return domainErr
	case errors.As(err, &syntaxError):
		return domain.NewBadRequestError(fmt.Sprintf("body contains badly-formed JSON (at character %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewBadRequestError("body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return domain.NewBadRequestError(fmt.Sprintf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field))
		}
		return domain.NewBadRequestError("body contains incorrect JSON type")
	case errors.Is(err, io.EOF):
		return domain.NewBadRequestError("body must not be empty")
	case errors.As(err, &maxBytesError):
		return domain.NewBadRequestError(fmt.Sprintf("body must not be larger than %d bytes", maxBytesError.Limit))
	default:
		return domain.NewBadRequestError(err.Error())
	}
}
