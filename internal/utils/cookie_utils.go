package utils

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// AccessTokenCookie is the cookie carrying the access token.
	AccessTokenCookie = "access_token"

	// RefreshTokenCookie is the cookie carrying the refresh token.
	RefreshTokenCookie = "refresh_token"
)

// SetSessionCookies sets both token cookies: httpOnly, SameSite=Lax, and
// Secure when running in production.
func SetSessionCookies(c *gin.Context, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	secure := os.Getenv("ENVIRONMENT") == "production"

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, accessToken, int(accessTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, refreshToken, int(refreshTTL.Seconds()), "/", "", secure, true)
}

// ExpireSessionCookies expires both token cookies immediately.
func ExpireSessionCookies(c *gin.Context) {
	secure := os.Getenv("ENVIRONMENT") == "production"

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}
