package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/landgov/backend/domain"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	mw := JWTAuth(testSecret, nil)

	t.Run("valid token stamps identity headers", func(t *testing.T) {
		token := signedToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-1",
			"email":   "asha@example.com",
			"role":    "citizen",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		var called bool
		handler := mw(func(ctx *fasthttp.RequestCtx) {
			called = true
			identity := CallerIdentity(ctx)
			assert.Equal(t, "u-1", identity.UserID)
			assert.Equal(t, "asha@example.com", identity.Email)
			assert.Equal(t, domain.RoleCitizen, identity.Role)
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
		handler(&ctx)
		assert.True(t, called)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		handler := mw(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run")
		})

		var ctx fasthttp.RequestCtx
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("token signed with a different secret rejected", func(t *testing.T) {
		token := signedToken(t, "other-secret", jwt.MapClaims{
			"user_id": "u-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		handler := mw(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run")
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("caller-supplied identity headers are stripped", func(t *testing.T) {
		handler := mw(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run")
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set(HeaderUserRole, "admin")
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
		assert.Empty(t, ctx.Request.Header.Peek(HeaderUserRole))
	})
}

func TestRequireRoles(t *testing.T) {
	guard := RequireRoles(domain.RoleOfficer, domain.RoleAdmin)

	t.Run("allowed role passes", func(t *testing.T) {
		var called bool
		handler := guard(func(ctx *fasthttp.RequestCtx) { called = true })

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set(HeaderUserRole, "officer")
		handler(&ctx)
		assert.True(t, called)
	})

	t.Run("disallowed role rejected", func(t *testing.T) {
		handler := guard(func(ctx *fasthttp.RequestCtx) {
			t.Fatal("handler must not run")
		})

		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set(HeaderUserRole, "citizen")
		handler(&ctx)
		assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())
	})
}
