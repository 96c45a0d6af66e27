package managers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/schemas"
)

// ErrInvalidToken is returned when a token fails signature or expiry
// validation, or when a session token is presented to the wrong verifier.
var ErrInvalidToken = errors.New("invalid token")

// ErrCodeMismatch is returned when the activation code embedded in a ticket
// does not match the supplied one.
var ErrCodeMismatch = errors.New("activation code mismatch")

// JWTMgr issues and verifies the three token kinds: short-lived access
// tokens, longer-lived refresh tokens, and self-contained activation
// tickets carrying a pending registration.
type JWTMgr interface {
	GenerateTokenPair(userId string) (accessToken, refreshToken string, err error)
	VerifyAccessToken(token string) (userId string, err error)
	VerifyRefreshToken(token string) (userId string, err error)
	GenerateActivationTicket(pending *schemas.PendingUser) (ticket, code string, err error)
	VerifyActivationTicket(ticket, code string) (*schemas.PendingUser, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// JWTManager signs everything with HS256. Each token kind has its own
// secret, so an activation ticket can never pass as a session token.
type JWTManager struct {
	accessSecret     []byte
	refreshSecret    []byte
	activationSecret []byte
	accessTTL        time.Duration
	refreshTTL       time.Duration
	activationTTL    time.Duration
}

// NewJWTManager creates a JWTManager with explicit secrets and expiries.
func NewJWTManager(accessSecret, refreshSecret, activationSecret []byte, accessTTL, refreshTTL, activationTTL time.Duration) JWTMgr {
	return &JWTManager{
		accessSecret:     accessSecret,
		refreshSecret:    refreshSecret,
		activationSecret: activationSecret,
		accessTTL:        accessTTL,
		refreshTTL:       refreshTTL,
		activationTTL:    activationTTL,
	}
}

// NewJWTManagerFromEnv creates a JWTManager from the ACCESS_TOKEN_SECRET,
// REFRESH_TOKEN_SECRET and ACTIVATION_SECRET environment variables.
func NewJWTManagerFromEnv() (JWTMgr, error) {
	log.Info("Initializing JWT manager")

	accessSecret := os.Getenv("ACCESS_TOKEN_SECRET")
	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	activationSecret := os.Getenv("ACTIVATION_SECRET")
	if accessSecret == "" || refreshSecret == "" || activationSecret == "" {
		return nil, errors.New("token secret environment variables not set")
	}

	return NewJWTManager(
		[]byte(accessSecret),
		[]byte(refreshSecret),
		[]byte(activationSecret),
		durationFromEnv("ACCESS_TOKEN_TTL", 2*time.Hour),
		durationFromEnv("REFRESH_TOKEN_TTL", 72*time.Hour),
		durationFromEnv("ACTIVATION_TTL", 5*time.Minute),
	), nil
}

// AccessTTL returns the access token lifetime, which doubles as the
// access_token cookie max age.
func (jm *JWTManager) AccessTTL() time.Duration {
	return jm.accessTTL
}

// RefreshTTL returns the refresh token lifetime, which doubles as the
// refresh_token cookie max age.
func (jm *JWTManager) RefreshTTL() time.Duration {
	return jm.refreshTTL
}

// GenerateTokenPair signs an access and a refresh token for the given user.
// Both carry only the user identifier as subject.
func (jm *JWTManager) GenerateTokenPair(userId string) (string, string, error) {
	accessToken, err := signToken(jm.accessSecret, userId, jm.accessTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := signToken(jm.refreshSecret, userId, jm.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// VerifyAccessToken validates the token against the access secret and
// returns the embedded user identifier.
func (jm *JWTManager) VerifyAccessToken(token string) (string, error) {
	return verifyToken(jm.accessSecret, token)
}

// VerifyRefreshToken validates the token against the refresh secret and
// returns the embedded user identifier.
func (jm *JWTManager) VerifyRefreshToken(token string) (string, error) {
	return verifyToken(jm.refreshSecret, token)
}

// GenerateActivationTicket signs a ticket holding the full pending
// registration plus a random 4-digit code. The ticket is the only store of
// the registration; the code travels out-of-band by mail.
func (jm *JWTManager) GenerateActivationTicket(pending *schemas.PendingUser) (string, string, error) {
	code := strconv.Itoa(rand.Intn(9000) + 1000)

	now := time.Now()
	claims := jwt.MapClaims{
		"user": pending,
		"code": code,
		"iat":  now.Unix(),
		"exp":  now.Add(jm.activationTTL).Unix(),
	}

	ticket, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jm.activationSecret)
	if err != nil {
		return "", "", err
	}

	return ticket, code, nil
}

// VerifyActivationTicket validates the ticket and compares the embedded
// code against the supplied one. On success it returns the pending
// registration carried inside the ticket.
func (jm *JWTManager) VerifyActivationTicket(ticket, code string) (*schemas.PendingUser, error) {
	token, err := jwt.Parse(ticket, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("invalid signing method")
		}
		return jm.activationSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	embeddedCode, ok := claims["code"].(string)
	if !ok || embeddedCode != code {
		return nil, ErrCodeMismatch
	}

	// The pending user arrives as a generic map; round-trip through JSON
	// to get it back into its struct shape.
	rawUser, err := json.Marshal(claims["user"])
	if err != nil {
		return nil, ErrInvalidToken
	}

	pending := &schemas.PendingUser{}
	if err := json.Unmarshal(rawUser, pending); err != nil {
		return nil, ErrInvalidToken
	}

	return pending, nil
}

func signToken(secret []byte, userId string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "commerce-core",
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"sub": userId,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verifyToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("invalid signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	userId, err := token.Claims.GetSubject()
	if err != nil || userId == "" {
		return "", ErrInvalidToken
	}

	return userId, nil
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Warnf("Invalid duration in %s, using default: %v", key, fallback)
		return fallback
	}

	return parsed
}
