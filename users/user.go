package users

import (
	"context"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"

	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
	"github.com/BOCK-CHAIN/BockDocsBackend/jwt"
)

// User is the principal resolved from a session token. It only carries what
// the token claims do: enough to authorize, not the full account record.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// FromContext returns the principal in the context, or a 401 when there is
// none. Use it in endpoints that require authentication.
func FromContext(ctx context.Context) (User, error) {
	user, ok := MaybeFromContext(ctx)
	if !ok {
		return User{}, errors.New("authentication required", errors.WithCode(http.StatusUnauthorized))
	}

	return user, nil
}

// MaybeFromContext returns the principal in the context if one was resolved.
// It never fails: a missing or unusable token is reported as absence, and the
// caller decides whether that is fatal.
func MaybeFromContext(ctx context.Context) (User, bool) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return User{}, false
	}

	sessionClaims, ok := claims.(*jwt.Claims)
	if !ok || sessionClaims.UserID == 0 {
		return User{}, false
	}

	return User{ID: sessionClaims.UserID, Email: sessionClaims.Email}, true
}
