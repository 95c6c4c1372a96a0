package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// GetOrCreateUser returns the user behind a chat-platform identity. A known
// user gets a changed username or first name refreshed; an unknown one is
// created and starts a trial.
func (s *Service) GetOrCreateUser(ctx context.Context, p domain.TelegramProfile) (*domain.User, error) {
	if p.TelegramID == 0 {
		return nil, domain.NewValidationError("telegram_id", "required")
	}

	u, err := s.users.GetByTelegramID(ctx, p.TelegramID)
	switch {
	case err == nil:
		return s.refreshProfile(ctx, u, p)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("notes.GetOrCreateUser: %w", err)
	}

	now := s.now().UTC()
	lang := p.LanguageCode
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	nu := domain.User{
		ID:           uuid.New(),
		TelegramID:   p.TelegramID,
		Username:     p.Username,
		FirstName:    p.FirstName,
		LanguageCode: lang,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.ledger.StartTrial(&nu)

	created, err := s.users.Create(ctx, nu)
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a parallel first update from the same user.
		created, err = s.users.GetByTelegramID(ctx, p.TelegramID)
	}
	if err != nil {
		return nil, fmt.Errorf("notes.GetOrCreateUser: %w", err)
	}

	if created.ID == nu.ID {
		s.log.InfoContext(ctx, "user created",
			slog.String("user_id", created.ID.String()),
			slog.Int64("telegram_id", created.TelegramID),
			slog.String("plan", created.Plan.String()),
		)
	}
	return created, nil
}

func (s *Service) refreshProfile(ctx context.Context, u *domain.User, p domain.TelegramProfile) (*domain.User, error) {
	username, usernameChanged := changed(u.Username, p.Username)
	firstName, firstNameChanged := changed(u.FirstName, p.FirstName)
	if !usernameChanged && !firstNameChanged {
		return u, nil
	}

	updated, err := s.users.UpdateProfile(ctx, u.ID, username, firstName)
	if err != nil {
		return nil, fmt.Errorf("notes.GetOrCreateUser: update profile: %w", err)
	}
	return updated, nil
}

// changed returns the value to store and whether it differs from cur. Empty
// incoming values never overwrite what is stored.
func changed(cur, next *string) (*string, bool) {
	if next == nil || *next == "" {
		return cur, false
	}
	if cur != nil && *cur == *next {
		return cur, false
	}
	return next, true
}

// UpdateLanguage sets the authenticated user's language preference.
func (s *Service) UpdateLanguage(ctx context.Context, lang string) error {
	if err := validateLanguage(lang); err != nil {
		return err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.users.UpdateLanguage(ctx, userID, lang); err != nil {
		return fmt.Errorf("notes.UpdateLanguage: %w", err)
	}
	return nil
}
