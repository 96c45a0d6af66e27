package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"commerce-core/internal/interfaces"
	"commerce-core/internal/managers"
	"commerce-core/internal/middleware"
	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

type UserHdl interface {
	Register(c *gin.Context)
	Activate(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	SocialAuth(c *gin.Context)
	GetUserInfo(c *gin.Context)
	GetAllUsers(c *gin.Context)
	UpdateInfo(c *gin.Context)
	UpdatePassword(c *gin.Context)
	UpdateProfilePicture(c *gin.Context)
	UpdateRole(c *gin.Context)
	DeleteUser(c *gin.Context)
	SendResetMail(c *gin.Context)
	ForgotPassword(c *gin.Context)
	GetUserAnalytics(c *gin.Context)
}

type UserHandler struct {
	DatabaseManager managers.DatabaseMgr
	JWTManager      managers.JWTMgr
	MailManager     managers.MailMgr
	SessionManager  managers.SessionMgr
	MediaManager    managers.MediaMgr
	Validator       *utils.Validator
}

func NewUserHandler(databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, mailMgr managers.MailMgr, sessionMgr managers.SessionMgr, mediaMgr managers.MediaMgr) UserHdl {
	return &UserHandler{
		DatabaseManager: databaseMgr,
		JWTManager:      jwtMgr,
		MailManager:     mailMgr,
		SessionManager:  sessionMgr,
		MediaManager:    mediaMgr,
		Validator:       utils.GetValidator(),
	}
}

const welcomeTitle = "Account Creation Successful"
const welcomeMessage = "Thank you for signing up with our platform. Start shopping at affordable rates for high quality products guaranteed to surpass your expectations!"

// Register validates the payload, checks uniqueness of username, email and
// phone, uploads the optional avatar, and issues an activation ticket. No
// user row is created yet: the ticket itself is the only store of the
// pending registration until Activate succeeds.
func (handler *UserHandler) Register(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.RegistrationRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	if err := checkFieldTaken(ctx, c, pool, "username", req.Username, schemas.UsernameTaken); err != nil {
		return
	}
	if err := checkFieldTaken(ctx, c, pool, "email", req.Email, schemas.EmailTaken); err != nil {
		return
	}
	if req.Phone != "" {
		if err := checkFieldTaken(ctx, c, pool, "phone", req.Phone, schemas.PhoneTaken); err != nil {
			return
		}
	}

	if !handler.Validator.VerifyEmail(req.Email) {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errors.New("email unreachable"))
		return
	}

	pending := &schemas.PendingUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}

	if req.Avatar != "" {
		publicId, url, err := handler.MediaManager.Upload(ctx, req.Avatar, "avatars")
		if err != nil {
			utils.WriteAndLogError(c, schemas.MediaUploadFailed, http.StatusInternalServerError, err)
			return
		}
		pending.AvatarPublicID = publicId
		pending.AvatarURL = url
	}

	ticket, code, err := handler.JWTManager.GenerateActivationTicket(pending)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	if err := handler.MailManager.SendActivationMail(req.Email, req.Username, code); err != nil {
		utils.WriteAndLogError(c, schemas.EmailNotSent, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.RegistrationDTO{
		Success:         true,
		Message:         "Account creation successful. Check the email " + req.Email + " for an activation code to complete the setup process.",
		ActivationToken: ticket,
	}, http.StatusOK)
}

// Activate verifies the ticket and the out-of-band code, then creates the
// verified user row. A stale or reused ticket never creates a row.
func (handler *UserHandler) Activate(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ActivationRequest)

	pending, err := handler.JWTManager.VerifyActivationTicket(req.ActivationToken, req.ActivationCode)
	if err != nil {
		if errors.Is(err, managers.ErrCodeMismatch) {
			utils.WriteAndLogError(c, schemas.CodeMismatch, http.StatusBadRequest, err)
			return
		}
		utils.WriteAndLogError(c, schemas.InvalidToken, http.StatusUnauthorized, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()
	userId := uuid.New()

	queryString := "INSERT INTO users (user_id, username, email, password, phone, user_role, verified, avatar_public_id, avatar_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())"
	if _, err := pool.Exec(ctx, queryString, userId, pending.Username, pending.Email, string(hashedPassword), pending.Phone, "user", true, pending.AvatarPublicID, pending.AvatarURL); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	insertNotification(ctx, pool, userId, welcomeTitle, welcomeMessage)

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Your account has been successfully verified.",
	}, http.StatusCreated)
}

// Login checks the credentials against the stored bcrypt hash, issues a
// token pair, caches the session for seven days and sets both cookies.
func (handler *UserHandler) Login(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.LoginRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := fetchUserByEmail(ctx, handler.DatabaseManager.GetPool(), req.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusUnauthorized, err)
		return
	}

	handler.openSession(c, user)
}

// Refresh returns the session opened by the refresh middleware earlier in
// the chain. By the time this runs the rotated access token is already a
// request cookie and the session entry already carries a fresh TTL.
func (handler *UserHandler) Refresh(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	accessToken, err := middleware.LastCookie(c, utils.AccessTokenCookie)
	if err != nil {
		utils.WriteAndLogError(c, schemas.Unauthenticated, http.StatusUnauthorized, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.SessionDTO{
		Success:     true,
		User:        user,
		AccessToken: accessToken,
	}, http.StatusOK)
}

// Logout evicts the session entry and expires both cookies. The access
// token stays cryptographically valid until its natural expiry, but the
// missing session entry makes it useless.
func (handler *UserHandler) Logout(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := handler.SessionManager.Delete(ctx, user.ID.String()); err != nil {
		utils.WriteAndLogError(c, schemas.CacheError, http.StatusInternalServerError, err)
		return
	}

	utils.ExpireSessionCookies(c)

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "User successfully logged out.",
	}, http.StatusOK)
}

// SocialAuth logs in via a third-party identity. Unknown emails get a
// fresh verified, password-less row; known emails just get a session.
func (handler *UserHandler) SocialAuth(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.SocialAuthRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	user, err := fetchUserByEmail(ctx, pool, req.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if errors.Is(err, pgx.ErrNoRows) {
		user = &schemas.User{
			ID:        uuid.New(),
			Username:  req.Username,
			Email:     req.Email,
			Role:      "user",
			Verified:  true,
			AvatarURL: req.AvatarURL,
		}

		queryString := "INSERT INTO users (user_id, username, email, password, phone, user_role, verified, avatar_public_id, avatar_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())"
		if _, err := pool.Exec(ctx, queryString, user.ID, user.Username, user.Email, "", "", user.Role, true, "", user.AvatarURL); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}

		insertNotification(ctx, pool, user.ID, welcomeTitle, welcomeMessage)
	}

	handler.openSession(c, user)
}

// GetUserInfo returns the caller's user object straight from the session
// cache; the relational store is not consulted.
func (handler *UserHandler) GetUserInfo(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	utils.WriteAndLogResponse(c, &schemas.UserDTO{
		Success: true,
		User:    user,
	}, http.StatusOK)
}

// GetAllUsers lists every user row. Admin only.
func (handler *UserHandler) GetAllUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT user_id, username, email, phone, user_role, verified, avatar_public_id, avatar_url FROM users"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	users := make([]schemas.User, 0)
	for rows.Next() {
		user := schemas.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.Role, &user.Verified, &user.AvatarPublicID, &user.AvatarURL); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		users = append(users, user)
	}

	utils.WriteAndLogResponse(c, &schemas.UserListDTO{
		Success: true,
		Message: "Information successfully fetched.",
		Users:   users,
	}, http.StatusOK)
}

// UpdateInfo changes the caller's username and/or phone, then re-caches
// the session so the hot path sees the new values immediately.
func (handler *UserHandler) UpdateInfo(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateInfoRequest)
	user := middleware.GetSessionUser(c)

	if req.Username == "" && req.Phone == "" {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusUnprocessableEntity, errors.New("no information to update"))
		return
	}

	if (req.Username == "" || req.Username == user.Username) && (req.Phone == "" || req.Phone == user.Phone) {
		utils.WriteAndLogError(c, schemas.NoOpUpdate, http.StatusConflict, errors.New("update matches current values"))
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "UPDATE users SET username = $1, phone = $2 WHERE user_id = $3"
	if _, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, user.Username, user.Phone, user.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := handler.SessionManager.Put(ctx, user, managers.SessionTTL); err != nil {
		utils.WriteAndLogError(c, schemas.CacheError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Information successfully updated.",
	}, http.StatusOK)
}

// UpdatePassword verifies the old password and stores a new hash.
// Password-less accounts created through social auth are rejected before
// any comparison happens.
func (handler *UserHandler) UpdatePassword(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdatePasswordRequest)
	user := middleware.GetSessionUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	var storedHash string
	queryString := "SELECT password FROM users WHERE user_id = $1"
	if err := pool.QueryRow(ctx, queryString, user.ID).Scan(&storedHash); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if storedHash == "" {
		utils.WriteAndLogError(c, schemas.PasswordlessAccount, http.StatusConflict, errors.New("account has no password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.OldPassword)); err != nil {
		utils.WriteAndLogError(c, schemas.InvalidCredentials, http.StatusConflict, errors.New("invalid old password"))
		return
	}

	if req.OldPassword == req.NewPassword {
		utils.WriteAndLogError(c, schemas.NoOpUpdate, http.StatusConflict, errors.New("old and new passwords are equal"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE users SET password = $1 WHERE user_id = $2"
	if _, err := pool.Exec(ctx, queryString, string(hashedPassword), user.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	user.Password = string(hashedPassword)
	if err := handler.SessionManager.Put(ctx, user, managers.SessionTTL); err != nil {
		utils.WriteAndLogError(c, schemas.CacheError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Password updated successfully.",
	}, http.StatusOK)
}

// UpdateProfilePicture replaces the caller's avatar: the old asset is
// destroyed first, then the new one uploaded. The two steps are not
// compensable; a failed upload after a successful destroy leaves the
// account without an avatar.
func (handler *UserHandler) UpdateProfilePicture(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateProfilePictureRequest)
	user := middleware.GetSessionUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	if user.AvatarPublicID != "" {
		if err := handler.MediaManager.Destroy(ctx, user.AvatarPublicID); err != nil {
			utils.WriteAndLogError(c, schemas.MediaUploadFailed, http.StatusInternalServerError, err)
			return
		}
	}

	publicId, url, err := handler.MediaManager.Upload(ctx, req.Avatar, "avatars")
	if err != nil {
		utils.WriteAndLogError(c, schemas.MediaUploadFailed, http.StatusInternalServerError, err)
		return
	}

	queryString := "UPDATE users SET avatar_public_id = $1, avatar_url = $2 WHERE user_id = $3"
	if _, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, publicId, url, user.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	user.AvatarPublicID = publicId
	user.AvatarURL = url
	if err := handler.SessionManager.Put(ctx, user, managers.SessionTTL); err != nil {
		utils.WriteAndLogError(c, schemas.CacheError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.UserDTO{
		Success: true,
		User:    user,
	}, http.StatusOK)
}

// UpdateRole changes the role of the user with the given email. Admin
// only. An active session of the affected user is updated best-effort.
func (handler *UserHandler) UpdateRole(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateRoleRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	target, err := fetchUserByEmail(ctx, pool, req.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if target.Role == req.Role {
		utils.WriteAndLogError(c, schemas.NoOpUpdate, http.StatusConflict, errors.New("role unchanged"))
		return
	}

	queryString := "UPDATE users SET user_role = $1 WHERE user_id = $2"
	if _, err := pool.Exec(ctx, queryString, req.Role, target.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	target.Role = req.Role
	if cached, err := handler.SessionManager.Get(ctx, target.ID.String()); err == nil {
		cached.Role = req.Role
		if err := handler.SessionManager.Put(ctx, cached, managers.SessionTTL); err != nil {
			log.Warn("Failed to update cached session after role change: ", err)
		}
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "The user role successfully updated.",
	}, http.StatusOK)
}

// DeleteUser removes the user row, its avatar asset and its session
// entry. The deletion notification is best-effort.
func (handler *UserHandler) DeleteUser(c *gin.Context) {
	userId, err := uuid.Parse(c.Param(utils.UserIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	var avatarPublicId string
	queryString := "SELECT avatar_public_id FROM users WHERE user_id = $1"
	if err := pool.QueryRow(ctx, queryString, userId).Scan(&avatarPublicId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if avatarPublicId != "" {
		if err := handler.MediaManager.Destroy(ctx, avatarPublicId); err != nil {
			log.Warn("Failed to destroy avatar asset: ", err)
		}
	}

	if err := handler.SessionManager.Delete(ctx, userId.String()); err != nil {
		utils.WriteAndLogError(c, schemas.CacheError, http.StatusInternalServerError, err)
		return
	}

	insertNotification(ctx, pool, userId, "Account Deletion Successful", "User "+userId.String()+" deleted their account.")

	queryString = "DELETE FROM users WHERE user_id = $1"
	if _, err := pool.Exec(ctx, queryString, userId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "The user successfully deleted.",
	}, http.StatusOK)
}

// SendResetMail mails a password reset link to an existing account.
func (handler *UserHandler) SendResetMail(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ResetMailRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := fetchUserByEmail(ctx, handler.DatabaseManager.GetPool(), req.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err := handler.MailManager.SendResetMail(req.Email, req.Link); err != nil {
		utils.WriteAndLogError(c, schemas.EmailNotSent, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Email successfully sent. Check your mail to reset your password.",
	}, http.StatusOK)
}

// ForgotPassword sets a new password for the account with the email in the
// path, assuming both submitted passwords match.
func (handler *UserHandler) ForgotPassword(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ForgotPasswordRequest)
	email := c.Param(utils.EmailKey)

	if req.Password != req.PasswordConfirm {
		utils.WriteAndLogError(c, schemas.PasswordsDontMatch, http.StatusBadRequest, errors.New("password confirmation mismatch"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	if _, err := fetchUserByEmail(ctx, pool, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.UserNotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	queryString := "UPDATE users SET password = $1 WHERE email = $2"
	if _, err := pool.Exec(ctx, queryString, string(hashedPassword), email); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Password updated successfully.",
	}, http.StatusOK)
}

// GetUserAnalytics rolls signups up into monthly buckets over the last
// twelve months. Admin only.
func (handler *UserHandler) GetUserAnalytics(c *gin.Context) {
	handlerAnalytics(c, handler.DatabaseManager.GetPool(), "users", "User analytics successfully fetched.")
}

// openSession issues a token pair, caches the session with a full TTL and
// sets both cookies. Concurrent logins both succeed; the last cache write
// wins, and every issued token stays valid until its own expiry.
func (handler *UserHandler) openSession(c *gin.Context, user *schemas.User) {
	accessToken, refreshToken, err := handler.JWTManager.GenerateTokenPair(user.ID.String())
	if err != nil {
		utils.WriteAndLogError(c, schemas.InternalServerError, http.StatusInternalServerError, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := handler.SessionManager.Put(ctx, user, managers.SessionTTL); err != nil {
		utils.WriteAndLogError(c, schemas.CacheError, http.StatusInternalServerError, err)
		return
	}

	utils.SetSessionCookies(c, accessToken, refreshToken, handler.JWTManager.AccessTTL(), handler.JWTManager.RefreshTTL())

	utils.WriteAndLogResponse(c, &schemas.SessionDTO{
		Success:     true,
		User:        user,
		AccessToken: accessToken,
	}, http.StatusOK)
}

// requestContext derives a 10 second deadline from the request context.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithDeadline(c.Request.Context(), time.Now().Add(10*time.Second))
}

// checkFieldTaken rejects the request with a conflict when a user row
// already claims the given column value.
func checkFieldTaken(ctx context.Context, c *gin.Context, pool interfaces.PgxPoolIface, column, value string, conflict *schemas.CustomError) error {
	var taken bool
	queryString := "SELECT EXISTS(SELECT 1 FROM users WHERE " + column + " = $1)"
	if err := pool.QueryRow(ctx, queryString, value).Scan(&taken); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return err
	}

	if taken {
		err := errors.New(column + " taken")
		utils.WriteAndLogError(c, conflict, http.StatusConflict, err)
		return err
	}

	return nil
}

// fetchUserByEmail loads a full user row; pgx.ErrNoRows when absent.
func fetchUserByEmail(ctx context.Context, pool interfaces.PgxPoolIface, email string) (*schemas.User, error) {
	user := &schemas.User{}
	queryString := "SELECT user_id, username, email, password, phone, user_role, verified, avatar_public_id, avatar_url FROM users WHERE email = $1"
	err := pool.QueryRow(ctx, queryString, email).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Phone, &user.Role, &user.Verified, &user.AvatarPublicID, &user.AvatarURL)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// insertNotification records a best-effort notification; failures are
// logged, never surfaced, and never part of the primary write.
func insertNotification(ctx context.Context, pool interfaces.PgxPoolIface, userId uuid.UUID, title, message string) {
	queryString := "INSERT INTO notifications (notification_id, user_id, title, message, not_status) VALUES ($1, $2, $3, $4, $5)"
	if _, err := pool.Exec(ctx, queryString, uuid.New(), userId, title, message, "unread"); err != nil {
		log.Warn("Failed to insert notification: ", err)
	}
}
