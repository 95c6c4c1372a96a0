package notes

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// SharedView is a note opened through its share link.
type SharedView struct {
	Note    domain.Note
	IsOwner bool
	CanEdit bool
}

// Share creates or reuses the share token of a note. The current token is
// kept when the visibility does not change; otherwise a new one replaces it.
func (s *Service) Share(ctx context.Context, noteID uuid.UUID, isPublic bool) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	n, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return "", fmt.Errorf("notes.Share: %w", err)
	}

	if n.ShareToken != nil && *n.ShareToken != "" && n.IsPublic == isPublic {
		return *n.ShareToken, nil
	}

	token, err := newShareToken()
	if err != nil {
		return "", fmt.Errorf("notes.Share: %w", err)
	}
	if err := s.notes.SetShare(ctx, userID, noteID, token, isPublic); err != nil {
		return "", fmt.Errorf("notes.Share: %w", err)
	}
	return token, nil
}

// RevokeShare removes the share token of a note.
func (s *Service) RevokeShare(ctx context.Context, noteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.notes.RevokeShare(ctx, userID, noteID); err != nil {
		return fmt.Errorf("notes.RevokeShare: %w", err)
	}
	return nil
}

// GetShared resolves a share token. Private notes are only visible to their
// owner; viewerTelegramID is nil for anonymous viewers.
func (s *Service) GetShared(ctx context.Context, token string, viewerTelegramID *int64) (SharedView, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return SharedView{}, domain.ErrNotFound
	}

	sn, err := s.notes.GetByShareToken(ctx, token)
	if err != nil {
		return SharedView{}, fmt.Errorf("notes.GetShared: %w", err)
	}

	isOwner := viewerTelegramID != nil && *viewerTelegramID == sn.OwnerTelegramID
	if !sn.Note.IsPublic && !isOwner {
		return SharedView{}, domain.ErrForbidden
	}

	return SharedView{Note: sn.Note, IsOwner: isOwner, CanEdit: isOwner}, nil
}

// newShareToken returns 16 random bytes as 32 hex characters.
func newShareToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
