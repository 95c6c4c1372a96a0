package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// InitDataValidator checks the signature of Telegram WebApp init data.
type InitDataValidator struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewInitDataValidator creates a validator for init data signed with the
// token of the bot. A non-positive maxAge disables the auth_date check.
func NewInitDataValidator(botToken string, maxAge time.Duration) *InitDataValidator {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))

	return &InitDataValidator{
		secret: mac.Sum(nil),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Validate verifies raw init data and returns the identity it carries.
// Every failure wraps domain.ErrUnauthorized.
func (v *InitDataValidator) Validate(raw string) (TelegramIdentity, error) {
	if raw == "" {
		return TelegramIdentity{}, fmt.Errorf("init data is empty: %w", domain.ErrUnauthorized)
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return TelegramIdentity{}, fmt.Errorf("parse init data: %w", domain.ErrUnauthorized)
	}

	received := values.Get("hash")
	if received == "" {
		return TelegramIdentity{}, fmt.Errorf("init data has no hash: %w", domain.ErrUnauthorized)
	}

	if !hmac.Equal([]byte(v.sign(values)), []byte(received)) {
		return TelegramIdentity{}, fmt.Errorf("init data hash mismatch: %w", domain.ErrUnauthorized)
	}

	if v.maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return TelegramIdentity{}, fmt.Errorf("init data auth_date: %w", domain.ErrUnauthorized)
		}
		if v.now().Sub(time.Unix(authDate, 0)) > v.maxAge {
			return TelegramIdentity{}, fmt.Errorf("init data expired: %w", domain.ErrUnauthorized)
		}
	}

	var ident TelegramIdentity
	if err := json.Unmarshal([]byte(values.Get("user")), &ident); err != nil || ident.ID == 0 {
		return TelegramIdentity{}, fmt.Errorf("init data has no user: %w", domain.ErrUnauthorized)
	}
	return ident, nil
}

// Sign computes the hash Telegram would attach to values. With the hash
// field set to the result, values.Encode() is valid init data.
func (v *InitDataValidator) Sign(values url.Values) string {
	return v.sign(values)
}

func (v *InitDataValidator) sign(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + values.Get(k)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
