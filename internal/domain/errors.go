package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeMissingFields     = "MISSING_FIELDS"
	CodeMissingLeaderInfo = "MISSING_LEADER_INFO"
	CodeInvalidTeamSize   = "INVALID_TEAM_SIZE"
	CodeMissingMemberInfo = "MISSING_MEMBER_INFO"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInvalidScreenshot = "INVALID_SCREENSHOT"
	CodeInvalidTeamID     = "INVALID_TEAM_ID"
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeConfiguration     = "CONFIGURATION"
	CodeUnauthorized      = "UNAUTHORIZED"
)

var (
	// ErrMissingFields - нет названия команды, лидера или списка участников
	ErrMissingFields = &DomainError{
		Code:    CodeMissingFields,
		Message: "Missing required fields",
	}

	// ErrMissingLeaderInfo - у лидера не заполнено одно из обязательных полей
	ErrMissingLeaderInfo = &DomainError{
		Code:    CodeMissingLeaderInfo,
		Message: "Missing leader information",
	}

	// ErrInvalidTeamSize - в команде должно быть 4-5 человек вместе с лидером
	ErrInvalidTeamSize = &DomainError{
		Code:    CodeInvalidTeamSize,
		Message: "Team must have 4-5 members (including leader)",
	}

	// ErrMissingMemberInfo - у участника не заполнено имя, номер или email
	ErrMissingMemberInfo = &DomainError{
		Code:    CodeMissingMemberInfo,
		Message: "Missing member information",
	}

	// ErrTeamNotFound - команда с таким id не зарегистрирована
	ErrTeamNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "Team not found",
	}

	ErrInvalidTeamID = &DomainError{
		Code:    CodeInvalidTeamID,
		Message: "teamId must be a positive integer",
	}

	ErrUnauthorized = &DomainError{
		Code:    CodeUnauthorized,
		Message: "admin token required",
	}
)

// NewInvalidAmountError создает ошибку INVALID_AMOUNT с пояснением
func NewInvalidAmountError(reason string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidAmount,
		Message: fmt.Sprintf("Invalid amount: %s", reason),
	}
}

// NewInvalidScreenshotError создает ошибку INVALID_SCREENSHOT с пояснением
func NewInvalidScreenshotError(reason string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidScreenshot,
		Message: fmt.Sprintf("Invalid payment screenshot: %s", reason),
	}
}

// NewConfigurationError сообщает об отсутствующей или некорректной настройке
func NewConfigurationError(setting string) *DomainError {
	return &DomainError{
		Code:    CodeConfiguration,
		Message: fmt.Sprintf("Server configuration error: %s", setting),
	}
}

func NewBadRequestError(message string) *DomainError {
	return &DomainError{
		Code:    CodeBadRequest,
		Message: message,
	}
}
