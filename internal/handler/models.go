package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bagdasarian/team-registration/internal/domain"
)

// RegisterRequest - тело POST /register. Поля разбираются в mapper.go без учета типов,
// чтобы "members": "abc" дошел до проверки размера команды, а не упал в декодере.
type RegisterRequest struct {
	TeamName json.RawMessage `json:"teamName"`
	Leader   json.RawMessage `json:"leader"`
	Members  json.RawMessage `json:"members"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TeamID  int64  `json:"teamId"`
}

type TeamMemberResponse struct {
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registration_number"`
	Email              string  `json:"email"`
	Phone              *string `json:"phone"`
	IsLeader           bool    `json:"is_leader"`
}

type TeamResponse struct {
	ID                 int64                `json:"id"`
	TeamName           string               `json:"team_name"`
	CreatedAt          time.Time            `json:"created_at"`
	PaymentCompleted   bool                 `json:"payment_completed"`
	RegistrationStatus string               `json:"registration_status"`
	Members            []TeamMemberResponse `json:"members"`
}

type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// TeamID принимает teamId и числом, и строкой: форма оплаты берет его из query string
type TeamID int64

func (id *TeamID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return domain.ErrInvalidTeamID
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return domain.ErrInvalidTeamID
	}

	*id = TeamID(value)
	return nil
}

type PaymentRequest struct {
	TeamID            TeamID `json:"teamId"`
	PaymentScreenshot string `json:"paymentScreenshot"`
	Amount            int64  `json:"amount"`
}

type PaymentResponse struct {
	Success   bool   `json:"success"`
	PaymentID int64  `json:"paymentId"`
	Message   string `json:"message"`
}

type PaymentView struct {
	ID            int64     `json:"id"`
	TeamID        int64     `json:"team_id"`
	TeamName      string    `json:"team_name"`
	Amount        int64     `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	UploadedAt    time.Time `json:"uploaded_at"`
	ScreenshotURL string    `json:"screenshot_url,omitempty"`
}

type GetPaymentResponse struct {
	Payment *PaymentView `json:"payment"`
}

type ListPaymentsResponse struct {
	Payments []PaymentView `json:"payments"`
}
