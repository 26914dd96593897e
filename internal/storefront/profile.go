package storefront

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ProfileCookie = "cart_profile"

	profileTTL    = 365 * 24 * time.Hour
	profileIssuer = "teeshop-storefront"
)

var ErrInvalidProfile = errors.New("invalid profile token")

// ProfileTokens signs the cookie that identifies a shopper's cart. The
// cookie plays the role of a browser profile: one cookie, one cart.
type ProfileTokens struct {
	secret []byte
	now    func() time.Time
}

func NewProfileTokens(secret string) *ProfileTokens {
	return &ProfileTokens{secret: []byte(secret), now: time.Now}
}

func (t *ProfileTokens) New(profileID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   profileID,
		Issuer:    profileIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(profileTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *ProfileTokens) Parse(tokenStr string) (string, error) {
	var c jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(profileIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || token == nil || !token.Valid {
		return "", ErrInvalidProfile
	}

	if _, err := uuid.Parse(c.Subject); err != nil {
		return "", ErrInvalidProfile
	}
	return c.Subject, nil
}

type ctxKey string

const profileKey ctxKey = "profile"

func ProfileFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(profileKey).(string)
	return v, ok && v != ""
}

// Profiles resolves the shopper profile from its cookie, issuing a fresh
// one when the cookie is missing, expired or forged.
func Profiles(tokens *ProfileTokens, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var profile string
			if ck, err := r.Cookie(ProfileCookie); err == nil {
				if id, err := tokens.Parse(ck.Value); err == nil {
					profile = id
				}
			}

			if profile == "" {
				profile = uuid.NewString()
				tok, err := tokens.New(profile)
				if err != nil {
					log.Error("issue profile token", zap.Error(err))
					http.Error(w, "server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     ProfileCookie,
					Value:    tok,
					Path:     "/",
					MaxAge:   int(profileTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   r.TLS != nil,
				})
			}

			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
