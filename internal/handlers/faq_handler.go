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

type FAQHdl interface {
	CreateFAQ(c *gin.Context)
	GetAllFAQs(c *gin.Context)
	UpdateFAQ(c *gin.Context)
	DeleteFAQ(c *gin.Context)
}

type FAQHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewFAQHandler(databaseMgr managers.DatabaseMgr) FAQHdl {
	return &FAQHandler{
		DatabaseManager: databaseMgr,
	}
}

// CreateFAQ inserts a question/answer pair attributed to the admin who
// wrote it. Admin only.
func (handler *FAQHandler) CreateFAQ(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateFAQRequest)
	user := middleware.GetSessionUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "INSERT INTO faq (faq_id, user_id, question, answer) VALUES ($1, $2, $3, $4)"
	if _, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, uuid.New(), user.ID, req.Question, req.Answer); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "FAQ successfully created.",
	}, http.StatusCreated)
}

// GetAllFAQs lists every FAQ entry. Open to unauthenticated callers.
func (handler *FAQHandler) GetAllFAQs(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT faq_id, user_id, question, answer FROM faq"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	faqs := make([]schemas.FAQ, 0)
	for rows.Next() {
		faq := schemas.FAQ{}
		if err := rows.Scan(&faq.ID, &faq.UserID, &faq.Question, &faq.Answer); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		faqs = append(faqs, faq)
	}

	utils.WriteAndLogResponse(c, &schemas.FAQListDTO{
		Success: true,
		Message: "FAQs successfully fetched.",
		FAQs:    faqs,
	}, http.StatusOK)
}

// UpdateFAQ merges the non-empty payload fields into the stored entry.
// Admin only.
func (handler *FAQHandler) UpdateFAQ(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateFAQRequest)

	faqId, err := uuid.Parse(c.Param(utils.FaqIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	faq := schemas.FAQ{}
	queryString := "SELECT faq_id, user_id, question, answer FROM faq WHERE faq_id = $1"
	err = pool.QueryRow(ctx, queryString, faqId).Scan(&faq.ID, &faq.UserID, &faq.Question, &faq.Answer)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if req.Question != "" {
		faq.Question = req.Question
	}
	if req.Answer != "" {
		faq.Answer = req.Answer
	}

	queryString = "UPDATE faq SET question = $1, answer = $2 WHERE faq_id = $3"
	if _, err := pool.Exec(ctx, queryString, faq.Question, faq.Answer, faq.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "FAQ successfully updated.",
	}, http.StatusOK)
}

// DeleteFAQ removes an entry. Admin only.
func (handler *FAQHandler) DeleteFAQ(c *gin.Context) {
	faqId, err := uuid.Parse(c.Param(utils.FaqIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "DELETE FROM faq WHERE faq_id = $1"
	tag, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, faqId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, errors.New("faq not found"))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "FAQ successfully deleted.",
	}, http.StatusOK)
}
