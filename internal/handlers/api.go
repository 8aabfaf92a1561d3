package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/health"
	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// Services bundles everything the API handler serves
type Services struct {
	Catalog         *catalog.Catalog
	Sessions        *services.SessionManager
	Voice           *services.VoiceMatcher
	Advice          *services.AdviceEngine
	Coupons         *services.CouponBook
	Bulk            *services.BulkService
	Checkout        *services.CheckoutService
	Auth            *services.AuthService
	Recommendations *services.RecommendationService
	Supplier        *services.SupplierService
	// Health is optional; without it /healthz always reports ok
	Health *health.Monitor
}

// APIHandler handles all API requests
type APIHandler struct {
	svc           Services
	defaultLocale models.Locale
	logger        *zap.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(svc Services, defaultLocale models.Locale, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		svc:           svc,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api", Locale(h.defaultLocale))
	{
		api.GET("/healthz", h.Health)

		api.GET("/catalog", h.ListCatalog)
		api.GET("/catalog/:id", h.GetCatalogItem)

		api.POST("/auth/otp", h.SendOTP)
		api.POST("/auth/verify", h.VerifyOTP)
		api.POST("/auth/logout", h.Logout)

		api.POST("/carts", h.CreateCart)
		carts := api.Group("/carts/:cartId")
		{
			carts.GET("", h.GetCart)
			carts.DELETE("", h.ClearCart)
			carts.POST("/items", h.AddCartItem)
			carts.PUT("/items/:itemId", h.UpdateCartItem)
			carts.DELETE("/items/:itemId", h.RemoveCartItem)
			carts.POST("/coupon", h.ApplyCoupon)
			carts.POST("/bulk", h.AddBulk)
			carts.POST("/voice", h.VoiceOrder)
			carts.POST("/checkout", h.Checkout)
			carts.POST("/reorder/:orderId", h.Reorder)
			carts.GET("/suggestions", h.Suggestions)
		}

		api.POST("/voice/match", h.MatchVoice)

		api.POST("/advice", h.ComputeAdvice)
		api.GET("/advice/today", h.TodayAdvice)
		api.POST("/advice/feedback", h.RecordFeedback)
		api.GET("/advice/feedback", h.ListFeedback)

		api.GET("/coupons", h.ListCoupons)
		api.GET("/bulk-offers", h.ListBulkOffers)

		api.GET("/orders/:vendorId/recent", h.RecentOrders)
		api.GET("/orders/:vendorId/frequent", h.FrequentItems)

		supplier := api.Group("/supplier", h.requireSupplier())
		{
			supplier.GET("/orders", h.IncomingOrders)
			supplier.POST("/orders/:orderId/accept", h.AcceptOrder)
			supplier.POST("/orders/:orderId/reject", h.RejectOrder)
			supplier.GET("/inventory", h.Inventory)
			supplier.GET("/demand", h.Demand)
		}
	}
}

// Health reports the latest dependency health
func (h *APIHandler) Health(c *gin.Context) {
	if h.svc.Health == nil {
		c.JSON(http.StatusOK, health.Report{Status: "ok", Checks: map[string]string{}})
		return
	}

	report := h.svc.Health.Report()
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// ListCatalog returns catalog items, optionally filtered by category or search text
func (h *APIHandler) ListCatalog(c *gin.Context) {
	var items []models.CatalogItem
	switch {
	case c.Query("q") != "":
		items = h.svc.Catalog.Search(c.Query("q"))
	case c.Query("category") != "":
		items = h.svc.Catalog.ByCategory(c.Query("category"))
	default:
		items = h.svc.Catalog.All()
	}
	if items == nil {
		items = []models.CatalogItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"categories": h.svc.Catalog.Categories(),
	})
}

// GetCatalogItem returns one catalog item
func (h *APIHandler) GetCatalogItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.badRequest(c, err)
		return
	}

	item, err := h.svc.Catalog.Get(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// voiceRequest allows an empty utterance; the matcher answers it with "no items found"
type voiceRequest struct {
	Utterance string `json:"utterance"`
}

// MatchVoice resolves an utterance without touching any cart
func (h *APIHandler) MatchVoice(c *gin.Context) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	loc := locale(c)
	result := h.svc.Voice.Match(req.Utterance, loc)
	c.JSON(http.StatusOK, gin.H{
		"result":  result,
		"message": h.svc.Voice.Summary(result, loc),
	})
}

type weatherRequest struct {
	Temperature *float64 `json:"temperature" binding:"required"`
	Humidity    *float64 `json:"humidity" binding:"required,min=0,max=100"`
	Condition   string   `json:"condition" binding:"required,oneof=sunny cloudy rainy"`
}

// ComputeAdvice evaluates the advice rules for a posted weather reading
func (h *APIHandler) ComputeAdvice(c *gin.Context) {
	var req weatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	snapshot := models.WeatherSnapshot{
		TemperatureC: *req.Temperature,
		HumidityPct:  *req.Humidity,
		Condition:    models.Condition(req.Condition),
	}
	c.JSON(http.StatusOK, gin.H{
		"weather": snapshot,
		"advice":  h.svc.Advice.Compute(snapshot),
	})
}

// TodayAdvice returns advice for the current demo weather
func (h *APIHandler) TodayAdvice(c *gin.Context) {
	weather, advice := h.svc.Advice.Today()
	c.JSON(http.StatusOK, gin.H{
		"weather": weather,
		"advice":  advice,
	})
}

type feedbackRequest struct {
	ItemID  string `json:"item_id" binding:"required"`
	Helpful *bool  `json:"helpful" binding:"required"`
}

// RecordFeedback stores whether a recommendation helped
func (h *APIHandler) RecordFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	h.svc.Advice.RecordFeedback(models.Feedback{ItemID: req.ItemID, Helpful: *req.Helpful})

	key := "advice.not_helpful"
	if *req.Helpful {
		key = "advice.helpful"
	}
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(key, locale(c))})
}

// ListFeedback returns every recorded feedback verdict
func (h *APIHandler) ListFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"feedback": h.svc.Advice.Feedback()})
}

// ListCoupons returns the coupon table
func (h *APIHandler) ListCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"coupons": h.svc.Coupons.All()})
}

// ListBulkOffers returns every bulk offer
func (h *APIHandler) ListBulkOffers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"offers": h.svc.Bulk.Offers()})
}

// RecentOrders returns a vendor's latest orders
func (h *APIHandler) RecentOrders(c *gin.Context) {
	vendorID := c.Param("vendorId")
	limit, err := queryLimit(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	orders, err := h.svc.Recommendations.RecentOrders(c.Request.Context(), vendorID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor_id": vendorID,
		"orders":    orders,
	})
}

// FrequentItems returns the items a vendor orders most often
func (h *APIHandler) FrequentItems(c *gin.Context) {
	vendorID := c.Param("vendorId")
	limit, err := queryLimit(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	items, err := h.svc.Recommendations.FrequentItems(c.Request.Context(), vendorID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []models.FrequentItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor_id": vendorID,
		"items":     items,
	})
}

func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultHistoryLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit < 1 {
		limit = 1
	}
	return min(limit, maxHistoryLimit), nil
}
