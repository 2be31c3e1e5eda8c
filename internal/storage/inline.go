package storage

import (
	"context"
	"strings"
)

// InlineStore кладет изображение прямо в колонку payment_screenshot в виде data URL;
// неразобранная строка пишется без изменений
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Save(_ context.Context, _ int64, shot *Screenshot) (string, error) {
	if shot.Data == nil || strings.HasPrefix(shot.Raw, "data:") {
		return shot.Raw, nil
	}
	return shot.DataURL(), nil
}

// Delete ничего не делает: данные живут в строке payments и откатываются вместе с транзакцией
func (s *InlineStore) Delete(context.Context, string) error {
	return nil
}

func (s *InlineStore) PublicURL(string) string {
	return ""
}
