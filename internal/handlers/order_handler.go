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

type OrderHdl interface {
	CreateOrder(c *gin.Context)
	GetUserOrders(c *gin.Context)
	GetAllOrders(c *gin.Context)
	UpdateOrder(c *gin.Context)
	DeleteOrder(c *gin.Context)
	GetOrderAnalytics(c *gin.Context)
}

type OrderHandler struct {
	DatabaseManager managers.DatabaseMgr
}

func NewOrderHandler(databaseMgr managers.DatabaseMgr) OrderHdl {
	return &OrderHandler{
		DatabaseManager: databaseMgr,
	}
}

const orderColumns = "order_id, ord_status, user_id, total_price, products, payment_info, created_at"

// orderSortColumns maps the sortBy query parameter onto real column names,
// so user input never reaches the statement text.
var orderSortColumns = map[string]string{
	"date":  "created_at",
	"price": "total_price",
}

func orderSortClause(c *gin.Context) string {
	column, ok := orderSortColumns[c.DefaultQuery(utils.SortByParamKey, "date")]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if c.DefaultQuery(utils.SortParamKey, "desc") == "asc" {
		direction = "ASC"
	}

	return " ORDER BY " + column + " " + direction
}

// CreateOrder inserts the order as 'paid' and records the confirmation
// notification in the same transaction, so an order never exists without
// its notification.
func (handler *OrderHandler) CreateOrder(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateOrderRequest)
	user := middleware.GetSessionUser(c)

	tx, ctx, cancel := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	var err error
	defer func() { utils.RollbackTransaction(c, tx, ctx, cancel, err) }()

	orderId := uuid.New()

	queryString := "INSERT INTO orders (order_id, ord_status, user_id, total_price, products, payment_info, created_at) VALUES ($1, $2, $3, $4, $5, $6, now())"
	if _, err = tx.Exec(ctx, queryString, orderId, "paid", user.ID, req.TotalPrice, req.Products, req.PaymentInfo); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = "INSERT INTO notifications (notification_id, user_id, title, message, not_status) VALUES ($1, $2, $3, $4, $5)"
	if _, err = tx.Exec(ctx, queryString, uuid.New(), user.ID, "Order Placed Successfully", "Your order "+orderId.String()+" has been placed and is being processed."); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx, ctx, cancel); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Order successfully placed.",
	}, http.StatusCreated)
}

// GetUserOrders returns the caller's own orders, sorted by creation time or
// total price via the sortBy and sort query parameters (newest first by
// default).
func (handler *OrderHandler) GetUserOrders(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + orderColumns + " FROM orders WHERE user_id = $1" + orderSortClause(c)
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, user.ID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.OrderListDTO{
		Success: true,
		Message: "Orders successfully fetched.",
		Orders:  orders,
	}, http.StatusOK)
}

// GetAllOrders returns every order, sorted like GetUserOrders, paginated.
// Admin only.
func (handler *OrderHandler) GetAllOrders(c *gin.Context) {
	offset, limit := utils.ParsePaginationParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + orderColumns + " FROM orders" + orderSortClause(c)
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.SendPaginatedResponse(c, orders, offset, limit, len(orders))
}

// UpdateOrder sets a new order status and notifies the owner in the same
// transaction. Admin only.
func (handler *OrderHandler) UpdateOrder(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateOrderRequest)

	orderId, err := uuid.Parse(c.Param(utils.OrderIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	tx, ctx, cancel := utils.BeginTransaction(c, handler.DatabaseManager.GetPool())
	if tx == nil {
		return
	}
	defer func() { utils.RollbackTransaction(c, tx, ctx, cancel, err) }()

	var ownerId uuid.UUID
	queryString := "SELECT user_id FROM orders WHERE order_id = $1"
	if err = tx.QueryRow(ctx, queryString, orderId).Scan(&ownerId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = "UPDATE orders SET ord_status = $1 WHERE order_id = $2"
	if _, err = tx.Exec(ctx, queryString, req.Status, orderId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	queryString = "INSERT INTO notifications (notification_id, user_id, title, message, not_status) VALUES ($1, $2, $3, $4, $5)"
	if _, err = tx.Exec(ctx, queryString, uuid.New(), ownerId, "Order Status Updated", "Your order "+orderId.String()+" is now "+req.Status+"."); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if err = utils.CommitTransaction(c, tx, ctx, cancel); err != nil {
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Order status successfully updated.",
	}, http.StatusOK)
}

// DeleteOrder removes an order. Admin only.
func (handler *OrderHandler) DeleteOrder(c *gin.Context) {
	orderId, err := uuid.Parse(c.Param(utils.OrderIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "DELETE FROM orders WHERE order_id = $1"
	tag, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, orderId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Order successfully deleted.",
	}, http.StatusOK)
}

// GetOrderAnalytics rolls order creation up into monthly buckets over the
// last twelve months. Admin only.
func (handler *OrderHandler) GetOrderAnalytics(c *gin.Context) {
	handlerAnalytics(c, handler.DatabaseManager.GetPool(), "orders", "Order analytics successfully fetched.")
}

func scanOrders(rows pgx.Rows) ([]schemas.Order, error) {
	orders := make([]schemas.Order, 0)
	for rows.Next() {
		order := schemas.Order{}
		if err := rows.Scan(&order.ID, &order.Status, &order.UserID, &order.TotalPrice, &order.Products, &order.PaymentInfo, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}
