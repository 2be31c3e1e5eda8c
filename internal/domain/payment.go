package domain

import "time"

type PaymentStatus string

// PaymentStatusUploaded - единственный статус, который пишет сервис; проверка оплаты идет вручную
const PaymentStatusUploaded PaymentStatus = "uploaded"

type Payment struct {
	ID            int64
	TeamID        int64
	TeamName      string
	Amount        int64
	ScreenshotRef string
	ScreenshotURL string
	Status        PaymentStatus
	UploadedAt    time.Time
	CreatedAt     time.Time
}
