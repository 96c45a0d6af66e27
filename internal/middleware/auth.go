package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/managers"
	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

var errNoSession = errors.New("no session for user")

// RefreshSession transparently rotates the token pair. When the refresh
// cookie verifies and a session entry still exists, it mints a fresh
// access/refresh pair, resets both cookies and re-caches the session with
// a full TTL. Any failure is swallowed: the auth gate that runs next makes
// the actual accept/reject decision.
func RefreshSession(jwtMgr managers.JWTMgr, sessionMgr managers.SessionMgr) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie(utils.RefreshTokenCookie)
		if err != nil || refreshToken == "" {
			c.Next()
			return
		}

		userId, err := jwtMgr.VerifyRefreshToken(refreshToken)
		if err != nil {
			c.Next()
			return
		}

		user, err := sessionMgr.Get(c.Request.Context(), userId)
		if err != nil {
			c.Next()
			return
		}

		accessToken, newRefreshToken, err := jwtMgr.GenerateTokenPair(userId)
		if err != nil {
			log.Warn("Token rotation failed: ", err)
			c.Next()
			return
		}

		if err := sessionMgr.Put(c.Request.Context(), user, managers.SessionTTL); err != nil {
			log.Warn("Session re-cache failed: ", err)
			c.Next()
			return
		}

		utils.SetSessionCookies(c, accessToken, newRefreshToken, jwtMgr.AccessTTL(), jwtMgr.RefreshTTL())

		// Make the fresh token visible to the auth gate in this request.
		c.Request.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: accessToken})
		c.Next()
	}
}

// RequireAuth gates protected routes. A request passes only when the
// access-token cookie verifies AND a session entry exists for the embedded
// user id; the cached user is then attached to the context. The session
// cache is the sole source of truth here, so logout takes effect
// immediately even while tokens are still cryptographically valid.
func RequireAuth(jwtMgr managers.JWTMgr, sessionMgr managers.SessionMgr) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := LastCookie(c, utils.AccessTokenCookie)
		if err != nil || accessToken == "" {
			utils.WriteAndLogError(c, schemas.Unauthenticated, http.StatusUnauthorized, errors.New("missing access token"))
			return
		}

		userId, err := jwtMgr.VerifyAccessToken(accessToken)
		if err != nil {
			utils.WriteAndLogError(c, schemas.InvalidToken, http.StatusUnauthorized, err)
			return
		}

		user, err := sessionMgr.Get(c.Request.Context(), userId)
		if err != nil {
			utils.WriteAndLogError(c, schemas.SessionExpired, http.StatusUnauthorized, errNoSession)
			return
		}

		c.Set(utils.UserKey.String(), user)
		c.Next()
	}
}

// RequireRole gates routes behind a role allow-list. It must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetSessionUser(c)
		if user == nil {
			utils.WriteAndLogError(c, schemas.Unauthenticated, http.StatusUnauthorized, errNoSession)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		utils.WriteAndLogError(c, schemas.Forbidden, http.StatusForbidden, errors.New("role "+user.Role+" not allowed"))
	}
}

// GetSessionUser returns the cached user attached by RequireAuth, or nil.
func GetSessionUser(c *gin.Context) *schemas.User {
	user, ok := c.Value(utils.UserKey.String()).(*schemas.User)
	if !ok {
		return nil
	}
	return user
}

// LastCookie returns the most recently added cookie with the given name,
// so a token rotated earlier in the chain wins over the stale one the
// client sent.
func LastCookie(c *gin.Context, name string) (string, error) {
	cookies := c.Request.Cookies()
	for i := len(cookies) - 1; i >= 0; i-- {
		if cookies[i].Name == name {
			return cookies[i].Value, nil
		}
	}
	return "", http.ErrNoCookie
}
