package auth

import "github.com/heartmarshall/fixnote-backend/internal/domain"

// TelegramIdentity is the user object carried inside WebApp init data.
type TelegramIdentity struct {
	ID           int64   `json:"id"`
	Username     *string `json:"username,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LanguageCode string  `json:"language_code,omitempty"`
}

// Profile converts the identity into the profile used for get-or-create.
func (i TelegramIdentity) Profile() domain.TelegramProfile {
	lang := i.LanguageCode
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	return domain.TelegramProfile{
		TelegramID:   i.ID,
		Username:     i.Username,
		FirstName:    i.FirstName,
		LanguageCode: lang,
	}
}
