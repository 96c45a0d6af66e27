package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"commerce-core/internal/managers"
	"commerce-core/internal/middleware"
	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

type NotificationHdl interface {
	GetUserNotifications(c *gin.Context)
	GetAllNotifications(c *gin.Context)
	MarkNotificationRead(c *gin.Context)
	DeleteNotification(c *gin.Context)
}

type NotificationHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewNotificationHandler(databaseMgr managers.DatabaseMgr) NotificationHdl {
	return &NotificationHandler{
		DatabaseManager: databaseMgr,
	}
}

const notificationColumns = "notification_id, user_id, title, message, not_status, created_at"

// GetUserNotifications lists the caller's notifications, newest first.
func (handler *NotificationHandler) GetUserNotifications(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + notificationColumns + " FROM notifications WHERE user_id = $1 ORDER BY created_at DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	notifications, err := scanNotifications(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.NotificationListDTO{
		Success:       true,
		Message:       "Notifications successfully fetched.",
		Notifications: notifications,
	}, http.StatusOK)
}

// GetAllNotifications lists every notification, newest first, paginated.
// Admin only.
func (handler *NotificationHandler) GetAllNotifications(c *gin.Context) {
	offset, limit := utils.ParsePaginationParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + notificationColumns + " FROM notifications ORDER BY created_at DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	notifications, err := scanNotifications(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.SendPaginatedResponse(c, notifications, offset, limit, len(notifications))
}

// MarkNotificationRead flips the caller's notification to read. Marking an
// already read notification again succeeds without effect on the row.
func (handler *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	notificationId, err := uuid.Parse(c.Param(utils.NotificationIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "UPDATE notifications SET not_status = 'read' WHERE notification_id = $1 AND user_id = $2"
	tag, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, notificationId, user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Notification successfully updated.",
	}, http.StatusOK)
}

// DeleteNotification removes a notification. Admin only.
func (handler *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationId, err := uuid.Parse(c.Param(utils.NotificationIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "DELETE FROM notifications WHERE notification_id = $1"
	tag, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, notificationId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Notification successfully deleted.",
	}, http.StatusOK)
}

func scanNotifications(rows pgx.Rows) ([]schemas.Notification, error) {
	notifications := make([]schemas.Notification, 0)
	for rows.Next() {
		notification := schemas.Notification{}
		if err := rows.Scan(&notification.ID, &notification.UserID, &notification.Title, &notification.Message, &notification.Status, &notification.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}
