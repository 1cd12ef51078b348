package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
)

// Identity headers set for downstream handlers after a token verifies.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// JWTAuth verifies the bearer token and stamps the resolved identity onto
// the request headers so handlers can rebuild it without re-parsing.
func JWTAuth(secret string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			// Strip any caller-supplied identity headers before trusting them.
			ctx.Request.Header.Del(HeaderUserID)
			ctx.Request.Header.Del(HeaderUserEmail)
			ctx.Request.Header.Del(HeaderUserRole)

			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}
			if userID, ok := claims["user_id"].(string); ok {
				ctx.Request.Header.Set(HeaderUserID, userID)
			}
			if email, ok := claims["email"].(string); ok {
				ctx.Request.Header.Set(HeaderUserEmail, email)
			}
			if role, ok := claims["role"].(string); ok {
				ctx.Request.Header.Set(HeaderUserRole, role)
			}

			next(ctx)
		}
	}
}

// RequireRoles rejects requests whose resolved role is not in the allowed
// set. It must run after JWTAuth.
func RequireRoles(roles ...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			role := domain.Role(ctx.Request.Header.Peek(HeaderUserRole))
			if _, ok := allowed[role]; !ok {
				ctx.SetStatusCode(fasthttp.StatusForbidden)
				return
			}
			next(ctx)
		}
	}
}

// CallerIdentity rebuilds the trusted identity stamped by JWTAuth.
func CallerIdentity(ctx *fasthttp.RequestCtx) domain.Identity {
	return domain.Identity{
		UserID: string(ctx.Request.Header.Peek(HeaderUserID)),
		Email:  string(ctx.Request.Header.Peek(HeaderUserEmail)),
		Role:   domain.Role(ctx.Request.Header.Peek(HeaderUserRole)),
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
