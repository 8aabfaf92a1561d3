package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

type cartResponse struct {
	ID        string            `json:"id"`
	VendorID  string            `json:"vendor_id,omitempty"`
	Items     []models.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
	Discount  float64           `json:"discount"`
	Total     float64           `json:"total"`
	Coupon    string            `json:"coupon,omitempty"`

	// CouponInactive is set while the cart is below the coupon's minimum order
	CouponInactive bool `json:"coupon_inactive,omitempty"`
}

func (h *APIHandler) cartView(cart *services.CartStore) (cartResponse, error) {
	quote, err := h.svc.Checkout.Quote(cart)
	var minErr *services.MinimumOrderError
	inactive := errors.As(err, &minErr)
	if inactive {
		sub, serr := cart.Subtotal()
		if serr != nil {
			return cartResponse{}, serr
		}
		quote = services.Quote{Subtotal: sub, Total: sub, Coupon: cart.Coupon(), ItemCount: cart.TotalItemCount()}
	} else if err != nil {
		return cartResponse{}, err
	}
	return cartResponse{
		ID:             cart.ID(),
		VendorID:       cart.VendorID(),
		Items:          cart.Lines(),
		ItemCount:      quote.ItemCount,
		Subtotal:       quote.Subtotal.InexactFloat64(),
		Discount:       quote.Discount.InexactFloat64(),
		Total:          quote.Total.InexactFloat64(),
		Coupon:         quote.Coupon,
		CouponInactive: inactive,
	}, nil
}

// respondCart writes the cart with an optional localized message
func (h *APIHandler) respondCart(c *gin.Context, status int, cart *services.CartStore, message string, extra gin.H) {
	view, err := h.cartView(cart)
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{"cart": view}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// cart resolves the :cartId path parameter, writing the error response on failure
func (h *APIHandler) cart(c *gin.Context) (*services.CartStore, bool) {
	cart, err := h.svc.Sessions.Get(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return cart, true
}

type createCartRequest struct {
	VendorID string `json:"vendor_id"`
}

// CreateCart opens a cart session, anonymous unless a vendor id is given
func (h *APIHandler) CreateCart(c *gin.Context) {
	var req createCartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c, err)
			return
		}
	}

	cart := h.svc.Sessions.Start(c.Request.Context(), req.VendorID)
	h.respondCart(c, http.StatusCreated, cart, "", nil)
}

// GetCart returns the cart with its current totals
func (h *APIHandler) GetCart(c *gin.Context) {
	cart, ok := h.cart(c)
	if !ok {
		return
	}
	h.respondCart(c, http.StatusOK, cart, "", nil)
}

// ClearCart empties the cart and drops its coupon
func (h *APIHandler) ClearCart(c *gin.Context) {
	cart, ok := h.cart(c)
	if !ok {
		return
	}
	cart.Clear()
	h.respondCart(c, http.StatusOK, cart, i18n.T("cart.cleared", locale(c)), nil)
}

type addItemRequest struct {
	ItemID int `json:"item_id" binding:"required"`
	// Quantity defaults to 1 when omitted
	Quantity *int `json:"quantity"`
}

// AddCartItem adds a catalog item to the cart
func (h *APIHandler) AddCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.Get(req.ItemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := cart.AddItem(item, qty); err != nil {
		h.fail(c, err)
		return
	}

	loc := locale(c)
	h.respondCart(c, http.StatusOK, cart, i18n.Tf("cart.added", loc, item.Name(loc)), nil)
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItem sets a line's quantity; zero or less removes the line
func (h *APIHandler) UpdateCartItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	cart.UpdateQuantity(itemID, *req.Quantity)
	h.respondCart(c, http.StatusOK, cart, "", nil)
}

// RemoveCartItem deletes a line from the cart
func (h *APIHandler) RemoveCartItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	cart.RemoveItem(itemID)
	h.respondCart(c, http.StatusOK, cart, "", nil)
}

type couponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon attaches a coupon to the cart, replacing any earlier one
func (h *APIHandler) ApplyCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	discount, coupon, err := h.svc.Coupons.ApplyToCart(cart, req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}

	saved := discount.InexactFloat64()
	if coupon.Kind == models.CouponCashback {
		saved = coupon.Value
	}
	h.respondCart(c, http.StatusOK, cart, i18n.Tf("coupon.applied", locale(c), saved), gin.H{"coupon": coupon})
}

type bulkRequest struct {
	ItemID   int `json:"item_id" binding:"required"`
	Quantity int `json:"quantity"`
}

// AddBulk adds a bulk-priced line to the cart
func (h *APIHandler) AddBulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	quote, err := h.svc.Bulk.AddToCart(cart, req.ItemID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}

	loc := locale(c)
	h.respondCart(c, http.StatusOK, cart, i18n.Tf("bulk.added", loc, quote.Offer.Item.Name(loc)), gin.H{
		"bulk": gin.H{
			"quantity":        quote.Quantity,
			"total":           quote.Total.InexactFloat64(),
			"savings":         quote.Savings.InexactFloat64(),
			"savings_percent": quote.SavingsPercent,
		},
	})
}

// VoiceOrder matches an utterance and adds every matched item to the cart
func (h *APIHandler) VoiceOrder(c *gin.Context) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	loc := locale(c)
	result := h.svc.Voice.Match(req.Utterance, loc)
	for _, m := range result.Items {
		qty := 1
		if m.Quantity != nil {
			qty = m.Quantity.CartQuantity()
		}
		if err := cart.AddItem(m.Item, qty); err != nil {
			h.fail(c, err)
			return
		}
	}

	h.logger.Info("voice order",
		zap.String("cart_id", cart.ID()),
		zap.Int("matched", len(result.Items)),
		zap.String("trigger", result.Trigger))

	h.respondCart(c, http.StatusOK, cart, h.svc.Voice.Summary(result, loc), gin.H{"result": result})
}

// Checkout pays for the cart and records the order
func (h *APIHandler) Checkout(c *gin.Context) {
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	order, err := h.svc.Checkout.Checkout(c.Request.Context(), cart)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": i18n.T("checkout.success", locale(c)),
	})
}

// Reorder copies a previous order of the cart's vendor back into the cart
func (h *APIHandler) Reorder(c *gin.Context) {
	cart, ok := h.cart(c)
	if !ok {
		return
	}

	order, err := h.svc.Recommendations.Reorder(c.Request.Context(), cart, c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondCart(c, http.StatusOK, cart, i18n.T("reorder.added", locale(c)), gin.H{"order_id": order.ID})
}

// Suggestions lists frequently ordered items missing from the cart
func (h *APIHandler) Suggestions(c *gin.Context) {
	cart, ok := h.cart(c)
	if !ok {
		return
	}
	limit, err := queryLimit(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	// anonymous carts have no history of their own
	if cart.VendorID() == "" {
		c.JSON(http.StatusOK, gin.H{"suggestions": []services.ReorderSuggestion{}})
		return
	}

	suggestions, err := h.svc.Recommendations.Suggestions(c.Request.Context(), cart.VendorID(), cart, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
