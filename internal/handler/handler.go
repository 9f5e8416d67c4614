package handler

import (
	"marketplace-server/internal/service"

	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// Services bundles the business services the HTTP layer calls.
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Products   service.ProductService
	Images     service.ImageService
	Tags       service.TagService
	Cart       service.CollectionService
	Favourites service.CollectionService
}

// Handler serves the marketplace REST API.
type Handler struct {
	svc           Services
	maxUploadSize int64
	logger        *zap.Logger
}

// NewHandler creates a Handler. maxUploadSize bounds multipart uploads in bytes.
func NewHandler(svc Services, maxUploadSize int64, logger *zap.Logger) *Handler {
	return &Handler{
		svc:           svc,
		maxUploadSize: maxUploadSize,
		logger:        logger.Named("Handler"),
	}
}

// Mount attaches the metrics middleware and /metrics, then registers the API.
// gin copies the engine middleware into each route at registration, so metrics
// must be attached first.
func (h *Handler) Mount(router *gin.Engine, metrics *ginprometheus.Prometheus, credentialLimiter gin.HandlerFunc) {
	if metrics != nil {
		metrics.Use(router)
	}
	h.RegisterRoutes(router, credentialLimiter)
}

// RegisterRoutes mounts /users, /products, /images and /tags. credentialLimiter
// throttles register and login; pass nil to disable throttling.
func (h *Handler) RegisterRoutes(router *gin.Engine, credentialLimiter gin.HandlerFunc) {
	if credentialLimiter == nil {
		credentialLimiter = func(c *gin.Context) { c.Next() }
	}
	authed := h.RequireAuth()

	users := router.Group("/users")
	{
		users.POST("/register", credentialLimiter, h.register)
		users.POST("/login", credentialLimiter, h.login)
		users.POST("/logout", authed, h.logout)
		users.GET("", authed, h.listUsers)
		users.POST("", authed, h.createUser)
		users.GET("/:id", authed, h.getUser)
		users.PUT("/:id", authed, h.updateUser)
		users.PATCH("/:id", authed, h.updateUser)
		users.PUT("/:id/picture", authed, h.setPicture)
		users.PUT("/promote/:id", authed, h.promoteUser)
		users.PUT("/crown/:id", authed, h.crownUser)
		users.DELETE("/:id", authed, h.deleteUser)
	}

	products := router.Group("/products")
	{
		products.GET("", authed, h.listAllProducts)
		products.GET("/approved", h.listApprovedProducts)
		products.GET("/approved/:id", h.getApprovedProduct)
		products.GET("/category/:category", h.listProductsByCategory)
		products.GET("/search", h.searchProducts)
		products.GET("/self", authed, h.listOwnProducts)
		products.GET("/user/:id", h.OptionalAuth(), h.listProductsByOwner)

		products.GET("/cart", authed, h.listCollection(h.svc.Cart))
		products.POST("/cart", authed, h.addToCollection(h.svc.Cart))
		products.DELETE("/cart/:id", authed, h.removeFromCollection(h.svc.Cart))
		products.GET("/favourite", authed, h.listCollection(h.svc.Favourites))
		products.POST("/favourite", authed, h.addToCollection(h.svc.Favourites))
		products.DELETE("/favourite/:id", authed, h.removeFromCollection(h.svc.Favourites))

		products.GET("/:id", authed, h.getProduct)
		products.POST("", authed, h.createProduct)
		products.PUT("/:id", authed, h.updateProduct)
		products.PATCH("/:id", authed, h.updateProduct)
		products.PUT("/approve/:id", authed, h.approveProduct)
		products.DELETE("/:id", authed, h.deleteProduct)
	}

	images := router.Group("/images")
	{
		images.GET("", authed, h.listImages)
		images.GET("/product/:id", h.listImagesByProduct)
		images.GET("/:id", authed, h.getImage)
		images.POST("", authed, h.createImage)
		images.DELETE("/:id", authed, h.deleteImage)
	}

	tags := router.Group("/tags")
	{
		tags.GET("", authed, h.listTags)
		tags.GET("/product/:id", h.listTagsByProduct)
		tags.POST("", authed, h.createTag)
		tags.DELETE("/:id", authed, h.deleteTag)
	}
}
