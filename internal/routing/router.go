package routing

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"commerce-core/internal/handlers"
	"commerce-core/internal/managers"
	"commerce-core/internal/middleware"
	"commerce-core/internal/schemas"
	"commerce-core/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, mailMgr managers.MailMgr, sessionMgr managers.SessionMgr, mediaMgr managers.MediaMgr) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router)
	setupRoutes(router, databaseMgr, jwtMgr, mailMgr, sessionMgr, mediaMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
	})
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr, mailMgr managers.MailMgr, sessionMgr managers.SessionMgr, mediaMgr managers.MediaMgr) {
	// Version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}
		utils.WriteAndLogResponse(c, &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "Commerce Core",
		}, http.StatusOK)
	})

	// Health route
	router.GET("/health", func(c *gin.Context) {
		if err := databaseMgr.GetPool().Ping(c.Request.Context()); err != nil {
			c.String(http.StatusInternalServerError, "Database not responding")
			return
		}
		c.Status(http.StatusOK)
	})

	router.NoRoute(func(c *gin.Context) {
		utils.WriteAndLogError(c, schemas.RouteNotFound, http.StatusNotFound, errors.New("no handler for "+c.Request.URL.Path))
	})

	refresh := middleware.RefreshSession(jwtMgr, sessionMgr)
	auth := middleware.RequireAuth(jwtMgr, sessionMgr)
	admin := middleware.RequireRole("admin")

	apiRouter := router.Group("/api")
	{
		userHdl := handlers.NewUserHandler(databaseMgr, jwtMgr, mailMgr, sessionMgr, mediaMgr)
		authRoutes(apiRouter.Group("/auth"), userHdl, refresh, auth, admin)

		productHdl := handlers.NewProductHandler(databaseMgr, mediaMgr)
		productRoutes(apiRouter.Group("/products"), productHdl, refresh, auth, admin)

		orderHdl := handlers.NewOrderHandler(databaseMgr)
		orderRoutes(apiRouter.Group("/orders"), orderHdl, refresh, auth, admin)

		commentHdl := handlers.NewCommentHandler(databaseMgr)
		commentRoutes(apiRouter.Group("/comments"), commentHdl, refresh, auth)

		notificationHdl := handlers.NewNotificationHandler(databaseMgr)
		notificationRoutes(apiRouter.Group("/notifications"), notificationHdl, refresh, auth, admin)

		faqHdl := handlers.NewFAQHandler(databaseMgr)
		faqRoutes(apiRouter.Group("/faq"), faqHdl, refresh, auth, admin)
	}
}

func authRoutes(authRouter *gin.RouterGroup, userHdl handlers.UserHdl, refresh, auth, admin gin.HandlerFunc) {
	authRouter.POST("/register", middleware.ValidateAndSanitizeStruct(&schemas.RegistrationRequest{}), userHdl.Register)
	authRouter.POST("/activate", middleware.ValidateAndSanitizeStruct(&schemas.ActivationRequest{}), userHdl.Activate)
	authRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), userHdl.Login)
	authRouter.POST("/social-auth", middleware.ValidateAndSanitizeStruct(&schemas.SocialAuthRequest{}), userHdl.SocialAuth)
	authRouter.POST("/reset-mail", middleware.ValidateAndSanitizeStruct(&schemas.ResetMailRequest{}), userHdl.SendResetMail)
	authRouter.PATCH("/forgot-password/:email", middleware.ValidateAndSanitizeStruct(&schemas.ForgotPasswordRequest{}), userHdl.ForgotPassword)

	// The following routes require an authenticated session
	authRouter.Use(refresh, auth)
	authRouter.GET("/refresh", userHdl.Refresh)
	authRouter.POST("/logout", userHdl.Logout)
	authRouter.GET("/me", userHdl.GetUserInfo)
	authRouter.PATCH("/update-info", middleware.ValidateAndSanitizeStruct(&schemas.UpdateInfoRequest{}), userHdl.UpdateInfo)
	authRouter.PATCH("/update-password", middleware.ValidateAndSanitizeStruct(&schemas.UpdatePasswordRequest{}), userHdl.UpdatePassword)
	authRouter.PATCH("/update-avatar", middleware.ValidateAndSanitizeStruct(&schemas.UpdateProfilePictureRequest{}), userHdl.UpdateProfilePicture)

	// The following routes additionally require the admin role
	authRouter.Use(admin)
	authRouter.GET("/get-users", userHdl.GetAllUsers)
	authRouter.PATCH("/update-role", middleware.ValidateAndSanitizeStruct(&schemas.UpdateRoleRequest{}), userHdl.UpdateRole)
	authRouter.DELETE("/delete-user/:userId", userHdl.DeleteUser)
	authRouter.GET("/analytics", userHdl.GetUserAnalytics)
}

func productRoutes(productRouter *gin.RouterGroup, productHdl handlers.ProductHdl, refresh, auth, admin gin.HandlerFunc) {
	productRouter.GET("/", productHdl.GetAllProducts)
	productRouter.GET("/product/:productId", productHdl.GetProduct)
	productRouter.GET("/filter", productHdl.FilterProducts)
	productRouter.GET("/search/:searchName", productHdl.SearchProducts)
	productRouter.GET("/search-names", productHdl.GetSearchNames)
	productRouter.GET("/categories", productHdl.GetAllCategories)

	productRouter.Use(refresh, auth, admin)
	productRouter.POST("/add-product", middleware.ValidateAndSanitizeStruct(&schemas.CreateProductRequest{}), productHdl.CreateProduct)
	productRouter.PATCH("/edit-product/:productId", middleware.ValidateAndSanitizeStruct(&schemas.UpdateProductRequest{}), productHdl.UpdateProduct)
	productRouter.DELETE("/delete-product/:productId", productHdl.DeleteProduct)
	productRouter.POST("/add-category", middleware.ValidateAndSanitizeStruct(&schemas.CreateCategoryRequest{}), productHdl.CreateCategory)
	productRouter.PATCH("/edit-category/:categoryId", middleware.ValidateAndSanitizeStruct(&schemas.UpdateCategoryRequest{}), productHdl.UpdateCategory)
	productRouter.DELETE("/delete-category/:categoryId", productHdl.DeleteCategory)
	productRouter.GET("/analytics", productHdl.GetProductAnalytics)
}

func orderRoutes(orderRouter *gin.RouterGroup, orderHdl handlers.OrderHdl, refresh, auth, admin gin.HandlerFunc) {
	orderRouter.Use(refresh, auth)
	orderRouter.POST("/new-order", middleware.ValidateAndSanitizeStruct(&schemas.CreateOrderRequest{}), orderHdl.CreateOrder)
	orderRouter.GET("/user-orders", orderHdl.GetUserOrders)

	orderRouter.Use(admin)
	orderRouter.GET("/all-orders", orderHdl.GetAllOrders)
	orderRouter.PATCH("/edit-order/:orderId", middleware.ValidateAndSanitizeStruct(&schemas.UpdateOrderRequest{}), orderHdl.UpdateOrder)
	orderRouter.DELETE("/delete-order/:orderId", orderHdl.DeleteOrder)
	orderRouter.GET("/analytics", orderHdl.GetOrderAnalytics)
}

func commentRoutes(commentRouter *gin.RouterGroup, commentHdl handlers.CommentHdl, refresh, auth gin.HandlerFunc) {
	commentRouter.GET("/product/:productId", commentHdl.GetCommentsByProduct)

	commentRouter.Use(refresh, auth)
	commentRouter.POST("/new-comment", middleware.ValidateAndSanitizeStruct(&schemas.CreateCommentRequest{}), commentHdl.CreateComment)
	commentRouter.GET("/user", commentHdl.GetCommentsByUser)
	commentRouter.PATCH("/edit-comment/:commentId", middleware.ValidateAndSanitizeStruct(&schemas.UpdateCommentRequest{}), commentHdl.UpdateComment)
	commentRouter.DELETE("/delete-comment/:commentId", commentHdl.DeleteComment)
}

func notificationRoutes(notificationRouter *gin.RouterGroup, notificationHdl handlers.NotificationHdl, refresh, auth, admin gin.HandlerFunc) {
	notificationRouter.Use(refresh, auth)
	notificationRouter.GET("/", notificationHdl.GetUserNotifications)
	notificationRouter.PATCH("/read/:notificationId", notificationHdl.MarkNotificationRead)

	notificationRouter.Use(admin)
	notificationRouter.GET("/all", notificationHdl.GetAllNotifications)
	notificationRouter.DELETE("/delete/:notificationId", notificationHdl.DeleteNotification)
}

func faqRoutes(faqRouter *gin.RouterGroup, faqHdl handlers.FAQHdl, refresh, auth, admin gin.HandlerFunc) {
	faqRouter.GET("/", faqHdl.GetAllFAQs)

	faqRouter.Use(refresh, auth, admin)
	faqRouter.POST("/new-faq", middleware.ValidateAndSanitizeStruct(&schemas.CreateFAQRequest{}), faqHdl.CreateFAQ)
	faqRouter.PATCH("/edit-faq/:faqId", middleware.ValidateAndSanitizeStruct(&schemas.UpdateFAQRequest{}), faqHdl.UpdateFAQ)
	faqRouter.DELETE("/delete-faq/:faqId", faqHdl.DeleteFAQ)
}
