package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/interfaces"
	"commerce-core/internal/managers"
	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

type ProductHdl interface {
	CreateProduct(c *gin.Context)
	GetAllProducts(c *gin.Context)
	GetProduct(c *gin.Context)
	FilterProducts(c *gin.Context)
	SearchProducts(c *gin.Context)
	GetSearchNames(c *gin.Context)
	UpdateProduct(c *gin.Context)
	DeleteProduct(c *gin.Context)
	CreateCategory(c *gin.Context)
	GetAllCategories(c *gin.Context)
	UpdateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
	GetProductAnalytics(c *gin.Context)
}

type ProductHandler struct {
	DatabaseManager managers.DatabaseMgr
	MediaManager    managers.MediaMgr
}

func NewProductHandler(databaseMgr managers.DatabaseMgr, mediaMgr managers.MediaMgr) ProductHdl {
	return &ProductHandler{
		DatabaseManager: databaseMgr,
		MediaManager:    mediaMgr,
	}
}

// filterColumns is the allow-list for the filter route. Filtering on any
// other column is rejected so the column name never reaches the query
// unchecked.
var filterColumns = map[string]string{
	"name":       "name",
	"searchName": "search_name",
}

const productColumns = "product_id, name, category_id, price, description, rating, stock, photo_public_id, photo_url, search_name, created_at"

// CreateProduct uploads the product photo and inserts the row. Admin only.
func (handler *ProductHandler) CreateProduct(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateProductRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	categoryId, err := uuid.Parse(req.CategoryID)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	publicId, url, err := handler.MediaManager.Upload(ctx, req.Photo, "products")
	if err != nil {
		utils.WriteAndLogError(c, schemas.MediaUploadFailed, http.StatusInternalServerError, err)
		return
	}

	product := &schemas.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		CategoryID:    categoryId,
		Price:         req.Price,
		Description:   req.Description,
		Rating:        req.Rating,
		Stock:         req.Stock,
		PhotoPublicID: publicId,
		PhotoURL:      url,
		SearchName:    req.SearchName,
	}

	queryString := "INSERT INTO products (product_id, name, category_id, price, description, rating, stock, photo_public_id, photo_url, search_name, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())"
	if _, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, product.ID, product.Name, product.CategoryID, product.Price, product.Description, product.Rating, product.Stock, product.PhotoPublicID, product.PhotoURL, product.SearchName); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ProductDTO{
		Success: true,
		Message: "Product successfully created.",
		Product: product,
	}, http.StatusCreated)
}

// GetAllProducts returns the newest-first product listing, paginated by the
// offset and limit query parameters.
func (handler *ProductHandler) GetAllProducts(c *gin.Context) {
	offset, limit := utils.ParsePaginationParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + productColumns + " FROM products ORDER BY created_at DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.SendPaginatedResponse(c, products, offset, limit, len(products))
}

// GetProduct returns a single product by id.
func (handler *ProductHandler) GetProduct(c *gin.Context) {
	productId, err := uuid.Parse(c.Param(utils.ProductIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := fetchProduct(ctx, handler.DatabaseManager.GetPool(), productId)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ProductDTO{
		Success: true,
		Message: "Product successfully fetched.",
		Product: product,
	}, http.StatusOK)
}

// FilterProducts matches a column from the allow-list against a
// case-insensitive pattern. The pattern is always bound as a parameter.
func (handler *ProductHandler) FilterProducts(c *gin.Context) {
	column, ok := filterColumns[c.Query(utils.ColumnParamKey)]
	if !ok {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, errors.New("unsupported filter column"))
		return
	}

	pattern := c.Query(utils.PatternParamKey)
	if pattern == "" {
		utils.WriteAndLogError(c, schemas.MissingFields, http.StatusUnprocessableEntity, errors.New("missing filter pattern"))
		return
	}

	offset, limit := utils.ParsePaginationParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + productColumns + " FROM products WHERE " + column + " ILIKE '%' || $1 || '%' ORDER BY created_at DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, pattern)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.SendPaginatedResponse(c, products, offset, limit, len(products))
}

// SearchProducts returns all products sharing the search name in the path.
func (handler *ProductHandler) SearchProducts(c *gin.Context) {
	searchName := c.Param(utils.SearchNameKey)

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT " + productColumns + " FROM products WHERE search_name ILIKE $1 ORDER BY created_at DESC"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString, searchName)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ProductListDTO{
		Success:  true,
		Message:  "Products successfully fetched.",
		Products: products,
	}, http.StatusOK)
}

// GetSearchNames returns the distinct search names, feeding the storefront
// search bar suggestions.
func (handler *ProductHandler) GetSearchNames(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT DISTINCT search_name FROM products ORDER BY search_name"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		names = append(names, name)
	}

	utils.WriteAndLogResponse(c, &schemas.SearchNamesDTO{
		Success:     true,
		Message:     "Search names successfully fetched.",
		SearchNames: names,
	}, http.StatusOK)
}

// UpdateProduct merges the non-zero payload fields into the stored row.
// A new photo replaces the old asset. Admin only.
func (handler *ProductHandler) UpdateProduct(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateProductRequest)

	productId, err := uuid.Parse(c.Param(utils.ProductIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	product, err := fetchProduct(ctx, pool, productId)
	if errors.Is(err, pgx.ErrNoRows) {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
		return
	}
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.CategoryID != "" {
		categoryId, err := uuid.Parse(req.CategoryID)
		if err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
		product.CategoryID = categoryId
	}
	if req.Price != 0 {
		product.Price = req.Price
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Rating != 0 {
		product.Rating = req.Rating
	}
	if req.Stock != 0 {
		product.Stock = req.Stock
	}

	if req.Photo != "" {
		if product.PhotoPublicID != "" {
			if err := handler.MediaManager.Destroy(ctx, product.PhotoPublicID); err != nil {
				log.Warn("Failed to destroy product photo: ", err)
			}
		}

		publicId, url, err := handler.MediaManager.Upload(ctx, req.Photo, "products")
		if err != nil {
			utils.WriteAndLogError(c, schemas.MediaUploadFailed, http.StatusInternalServerError, err)
			return
		}
		product.PhotoPublicID = publicId
		product.PhotoURL = url
	}

	queryString := "UPDATE products SET name = $1, category_id = $2, price = $3, description = $4, rating = $5, stock = $6, photo_public_id = $7, photo_url = $8 WHERE product_id = $9"
	if _, err := pool.Exec(ctx, queryString, product.Name, product.CategoryID, product.Price, product.Description, product.Rating, product.Stock, product.PhotoPublicID, product.PhotoURL, product.ID); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.ProductDTO{
		Success: true,
		Message: "Product successfully updated.",
		Product: product,
	}, http.StatusOK)
}

// DeleteProduct removes a product and its photo asset. Admin only.
func (handler *ProductHandler) DeleteProduct(c *gin.Context) {
	productId, err := uuid.Parse(c.Param(utils.ProductIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	var photoPublicId string
	queryString := "SELECT photo_public_id FROM products WHERE product_id = $1"
	if err := pool.QueryRow(ctx, queryString, productId).Scan(&photoPublicId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if photoPublicId != "" {
		if err := handler.MediaManager.Destroy(ctx, photoPublicId); err != nil {
			log.Warn("Failed to destroy product photo: ", err)
		}
	}

	queryString = "DELETE FROM products WHERE product_id = $1"
	if _, err := pool.Exec(ctx, queryString, productId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Product successfully deleted.",
	}, http.StatusOK)
}

// CreateCategory uploads the category photo and inserts the row. Admin only.
func (handler *ProductHandler) CreateCategory(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.CreateCategoryRequest)

	ctx, cancel := requestContext(c)
	defer cancel()

	publicId, url, err := handler.MediaManager.Upload(ctx, req.Photo, "categories")
	if err != nil {
		utils.WriteAndLogError(c, schemas.MediaUploadFailed, http.StatusInternalServerError, err)
		return
	}

	category := &schemas.ProductCategory{
		ID:            uuid.New(),
		Name:          req.Name,
		PhotoPublicID: publicId,
		PhotoURL:      url,
	}

	queryString := "INSERT INTO prod_category (category_id, name, photo_public_id, photo_url) VALUES ($1, $2, $3, $4)"
	if _, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, category.ID, category.Name, category.PhotoPublicID, category.PhotoURL); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Product category successfully created.",
	}, http.StatusCreated)
}

// GetAllCategories lists every product category.
func (handler *ProductHandler) GetAllCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT category_id, name, photo_public_id, photo_url FROM prod_category ORDER BY name"
	rows, err := handler.DatabaseManager.GetPool().Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	categories := make([]schemas.ProductCategory, 0)
	for rows.Next() {
		category := schemas.ProductCategory{}
		if err := rows.Scan(&category.ID, &category.Name, &category.PhotoPublicID, &category.PhotoURL); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		categories = append(categories, category)
	}

	utils.WriteAndLogResponse(c, &schemas.CategoryListDTO{
		Success:    true,
		Message:    "Product categories successfully fetched.",
		Categories: categories,
	}, http.StatusOK)
}

// UpdateCategory renames a product category. Admin only.
func (handler *ProductHandler) UpdateCategory(c *gin.Context) {
	req := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.UpdateCategoryRequest)

	categoryId, err := uuid.Parse(c.Param(utils.CategoryIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "UPDATE prod_category SET name = $1 WHERE category_id = $2"
	tag, err := handler.DatabaseManager.GetPool().Exec(ctx, queryString, req.Name, categoryId)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	if tag.RowsAffected() == 0 {
		utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, errors.New("category not found"))
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Product category successfully updated.",
	}, http.StatusOK)
}

// DeleteCategory removes a product category and its photo asset. Admin only.
func (handler *ProductHandler) DeleteCategory(c *gin.Context) {
	categoryId, err := uuid.Parse(c.Param(utils.CategoryIdKey))
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pool := handler.DatabaseManager.GetPool()

	var photoPublicId string
	queryString := "SELECT photo_public_id FROM prod_category WHERE category_id = $1"
	if err := pool.QueryRow(ctx, queryString, categoryId).Scan(&photoPublicId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteAndLogError(c, schemas.NotFound, http.StatusNotFound, err)
			return
		}
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	if photoPublicId != "" {
		if err := handler.MediaManager.Destroy(ctx, photoPublicId); err != nil {
			log.Warn("Failed to destroy category photo: ", err)
		}
	}

	queryString = "DELETE FROM prod_category WHERE category_id = $1"
	if _, err := pool.Exec(ctx, queryString, categoryId); err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}

	utils.WriteAndLogResponse(c, &schemas.MessageDTO{
		Success: true,
		Message: "Product category successfully deleted.",
	}, http.StatusOK)
}

// GetProductAnalytics rolls product creation up into monthly buckets over
// the last twelve months. Admin only.
func (handler *ProductHandler) GetProductAnalytics(c *gin.Context) {
	handlerAnalytics(c, handler.DatabaseManager.GetPool(), "products", "Product analytics successfully fetched.")
}

// handlerAnalytics serves the twelve-month creation rollup shared by the
// product, order and user analytics routes. The table name comes from a
// fixed caller-side constant, never from the request.
func handlerAnalytics(c *gin.Context, pool interfaces.PgxPoolIface, table, message string) {
	ctx, cancel := requestContext(c)
	defer cancel()

	queryString := "SELECT to_char(date_trunc('month', created_at), 'MM-YYYY'), trim(to_char(date_trunc('month', created_at), 'Month')), COUNT(*) FROM " + table + " WHERE created_at >= now() - interval '12 months' GROUP BY date_trunc('month', created_at) ORDER BY date_trunc('month', created_at)"
	rows, err := pool.Query(ctx, queryString)
	if err != nil {
		utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
		return
	}
	defer rows.Close()

	buckets := make([]schemas.MonthlyCount, 0)
	for rows.Next() {
		bucket := schemas.MonthlyCount{}
		if err := rows.Scan(&bucket.MonthYear, &bucket.MonthName, &bucket.Count); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		buckets = append(buckets, bucket)
	}

	utils.WriteAndLogResponse(c, &schemas.AnalyticsDTO{
		Success: true,
		Message: message,
		Data:    buckets,
	}, http.StatusOK)
}

func scanProducts(rows pgx.Rows) ([]schemas.Product, error) {
	products := make([]schemas.Product, 0)
	for rows.Next() {
		product := schemas.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.CategoryID, &product.Price, &product.Description, &product.Rating, &product.Stock, &product.PhotoPublicID, &product.PhotoURL, &product.SearchName, &product.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

func fetchProduct(ctx context.Context, pool interfaces.PgxPoolIface, productId uuid.UUID) (*schemas.Product, error) {
	product := &schemas.Product{}
	queryString := "SELECT " + productColumns + " FROM products WHERE product_id = $1"
	err := pool.QueryRow(ctx, queryString, productId).Scan(&product.ID, &product.Name, &product.CategoryID, &product.Price, &product.Description, &product.Rating, &product.Stock, &product.PhotoPublicID, &product.PhotoURL, &product.SearchName, &product.CreatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}
