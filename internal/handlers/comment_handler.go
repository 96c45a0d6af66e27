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

type CommentHdl interface {
	CreateComment(c *gin.Context)
	GetCommentsByProduct(c *gin.Context)
	GetCommentsByUser(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type CommentHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewCommentHandler(databaseMgr managers.DatabaseMgr) CommentHdl {
	return &CommentHandler{
		DatabaseManager: databaseMgr,
	}
}

const commentColumns = "comment_id, user_id, product_id, content, rating, created_at"

// CreateComment inserts a review. Each user gets at most one comment per
// product; a second attempt is rejected before the insert.
func (handler *CommentHandler) CreateComment(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateCommentRequest)
	user := middleware.GetSessionUser(c)

	productId, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	var exists bool
	queryString := "SELECT EXISTS(SELECT 1 FROM comments WHERE user_id = $1 AND product_id = $2)"
	if err := pool.QueryRow(ctx, queryString, user.ID, productId).Scan(&exists); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if exists {
		utils.WriteAndLogError(c, schemas.DuplicateComment, http.StatusUnprocessableEntity, errors.New("comment already exists for this product"))
		return
	}

	queryString = "INSERT INTO comments (comment_id, user_id, product_id, content, rating, created_at) VALUES ($1, $2, $3, $4, $5, now())"
	if _, err := pool.Exec(ctx, queryString, uuid.New(), user.ID, productId, req.Content, req.Rating); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Comment successfully created.",
	}, http.StatusCreated)
}

// GetCommentsByProduct lists the reviews of one product, newest first.
func (handler *CommentHandler) GetCommentsByProduct(c *gin.Context) {
	productId, err := uuid.Parse(c.Param(utils.ProductIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	handler.listComments(c, "product_id", productId)
}

// GetCommentsByUser lists the caller's own reviews, newest first.
func (handler *CommentHandler) GetCommentsByUser(c *gin.Context) {
	user := middleware.GetSessionUser(c)
	handler.listComments(c, "user_id", user.ID)
}

// UpdateComment merges the non-zero payload fields into the caller's own
// comment. Editing someone else's comment yields a not found, not a
// forbidden, so comment ids are not probeable.
func (handler *CommentHandler) UpdateComment(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateCommentRequest)
	user := middleware.GetSessionUser(c)

	commentId, err := uuid.Parse(c.Param(utils.CommentIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	comment := schemas.Comment{}
	queryString := "SELECT " + commentColumns + " FROM comments WHERE comment_id = $1 AND user_id = $2"
	err = pool.QueryRow(ctx, queryString, commentId, user.ID).Scan(&comment.ID, &comment.UserID, &comment.ProductID, &comment.Content, &comment.Rating, &comment.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if req.Content != "" {
		comment.Content = req.Content
	}
	if req.Rating != 0 {
		comment.Rating = req.Rating
	}

	queryString = "UPDATE comments SET content = $1, rating = $2 WHERE comment_id = $3"
	if _, err := pool.Exec(ctx, queryString, comment.Content, comment.Rating, comment.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Comment successfully updated.",
	}, http.StatusOK)
}

// DeleteComment removes a comment. Regular users can only delete their
// own; admins can delete any.
func (handler *CommentHandler) DeleteComment(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	commentId, err := uuid.Parse(c.Param(utils.CommentIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "DELETE FROM comments WHERE comment_id = $1 AND user_id = $2"
	args := []interface{}{commentId, user.ID}
	if user.Role == "admin" {
		queryString = "DELETE FROM comments WHERE comment_id = $1"
		args = args[:1]
	}

	tag, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, args...)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, errors.New("comment not found"))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Comment successfully deleted.",
	}, http.StatusOK)
}

func (handler *CommentHandler) listComments(c *gin.Context, column string, id uuid.UUID) {
	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + commentColumns + " FROM comments WHERE " + column + " = $1 ORDER BY created_at DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, id)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	comments := make([]schemas.Comment, 0)
	for rows.Next() {
		comment := schemas.Comment{}
		if err := rows.Scan(&comment.ID, &comment.UserID, &comment.ProductID, &comment.Content, &comment.Rating, &comment.CreatedAt); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		comments = append(comments, comment)
	}

	utils.WriteAndLogResponse(c, &schemas.CommentListDTO{
		Success:  true,
		Message:  "Comments successfully fetched.",
		Comments: comments,
	}, http.StatusOK)
}
