package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/bagdasarian/team-registration/internal/domain"
)

// Screenshot - декодированный скриншот оплаты
type Screenshot struct {
	Data        []byte
	ContentType string
	// Raw - строка в том виде, в каком ее прислал клиент
	Raw string
}

// ScreenshotStore хранит изображение платежа и отдает ссылку, которая пишется в payments.payment_screenshot
type ScreenshotStore interface {
	Save(ctx context.Context, teamID int64, shot *Screenshot) (ref string, err error)
	Delete(ctx context.Context, ref string) error
	PublicURL(ref string) string
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// DecodeScreenshot принимает data URL (data:image/png;base64,...) или голый base64
// и проверяет, что внутри изображение не больше maxBytes.
func DecodeScreenshot(raw string, maxBytes int64) (*Screenshot, error) {
	raw = strings.TrimSpace(raw)
	payload := raw
	declared := ""

	if strings.HasPrefix(raw, "data:") {
		header, data, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, domain.NewInvalidScreenshotError("malformed data URL")
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, domain.NewInvalidScreenshotError("data URL must be base64 encoded")
		}
		declared = strings.TrimSuffix(meta, ";base64")
		payload = data
	}

	if payload == "" {
		return nil, domain.NewInvalidScreenshotError("empty image")
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return nil, domain.NewInvalidScreenshotError(fmt.Sprintf("file size must be at most %d bytes", maxBytes))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.NewInvalidScreenshotError("image is not valid base64")
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.NewInvalidScreenshotError(fmt.Sprintf("file size must be at most %d bytes", maxBytes))
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		if !strings.HasPrefix(declared, "image/") || contentType != "application/octet-stream" {
			return nil, domain.NewInvalidScreenshotError("file must be an image")
		}
		contentType = declared
	}

	return &Screenshot{
		Data:        data,
		ContentType: contentType,
		Raw:         raw,
	}, nil
}

// OpaqueScreenshot оборачивает строку, которую не удалось разобрать как изображение
func OpaqueScreenshot(raw string) *Screenshot {
	return &Screenshot{Raw: raw}
}

// DataURL собирает data URL из содержимого скриншота
func (s *Screenshot) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", s.ContentType, base64.StdEncoding.EncodeToString(s.Data))
}

func (s *Screenshot) Extension() string {
	return extensions[s.ContentType]
}
