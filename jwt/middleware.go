package jwt

import (
	"context"

	"github.com/golang-jwt/jwt/v4"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"

	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
)

// Middleware rejects requests that do not carry a valid bearer token with a
// 401. The parsed claims end up in the context under
// kitjwt.JWTClaimsContextKey.
func Middleware(key []byte) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			// tokenString is stored in the context by the transport handlers.
			tokenString, ok := ctx.Value(kitjwt.JWTContextKey).(string)
			if !ok {
				return nil, errors.New("authentication required", errors.Unauthorized())
			}

			claims := Claims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return key, nil
			})
			if err != nil {
				return nil, errors.New("invalid or expired session", errors.Unauthorized(), errors.WithCause(err))
			}
			if !token.Valid {
				return nil, errors.New("invalid or expired session", errors.Unauthorized())
			}

			return next(context.WithValue(ctx, kitjwt.JWTClaimsContextKey, &claims), request)
		}
	}
}

// OptionalMiddleware parses the bearer token when one is present but never
// fails the request: an absent, malformed or expired token simply leaves the
// context without claims. Endpoints that need a principal reject its absence
// themselves, which lets the save endpoint fall through to the share-token
// path.
func OptionalMiddleware(key []byte) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			// tokenString is stored in the context by the transport handlers.
			tokenString, ok := ctx.Value(kitjwt.JWTContextKey).(string)
			if !ok {
				return next(ctx, request)
			}

			claims := Claims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !token.Valid {
				return next(ctx, request)
			}

			return next(context.WithValue(ctx, kitjwt.JWTClaimsContextKey, &claims), request)
		}
	}
}
