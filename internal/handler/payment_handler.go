package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bagdasarian/team-registration/internal/domain"
	"github.com/bagdasarian/team-registration/internal/handler/response"
)

const (
	paymentSubmittedMessage = "Payment submitted successfully"

	// TeamIDParam - query-параметр GET /payment для поиска платежа одной команды
	TeamIDParam = "teamId"
)

// SubmitPayment - POST /payment
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := readJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.handleError(w, r, err, paymentFailedMessage)
		return
	}

	payment, err := h.paymentService.Submit(r.Context(), httpPaymentToInput(req))
	if err != nil {
		h.handleError(w, r, err, paymentFailedMessage)
		return
	}

	response.JSON(w, http.StatusCreated, PaymentResponse{
		Success:   true,
		PaymentID: payment.ID,
		Message:   paymentSubmittedMessage,
	})
}

// GetTeamPayment - GET /payment?teamId=N; отсутствие платежа не ошибка
func (h *Handler) GetTeamPayment(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(TeamIDParam)), 10, 64)
	if err != nil || teamID <= 0 {
		h.handleError(w, r, domain.ErrInvalidTeamID, fetchPaymentFailedMessage)
		return
	}

	payment, err := h.paymentService.GetByTeam(r.Context(), teamID)
	if err != nil {
		h.handleError(w, r, err, fetchPaymentFailedMessage)
		return
	}

	var view *PaymentView
	if payment != nil {
		v := domainPaymentToHTTP(payment)
		view = &v
	}

	response.JSON(w, http.StatusOK, GetPaymentResponse{Payment: view})
}

// ListPayments - GET /payment без teamId
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err, fetchPaymentFailedMessage)
		return
	}

	response.JSON(w, http.StatusOK, ListPaymentsResponse{
		Payments: domainPaymentsToHTTP(payments),
	})
}
