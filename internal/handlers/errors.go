package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/catalog"
	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/pricing"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

// apiError is the body of every failed request
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrCartNotFound, http.StatusNotFound, "cart_not_found"},
	{catalog.ErrItemNotFound, http.StatusNotFound, "item_not_found"},
	{services.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{services.ErrEmptyCart, http.StatusConflict, "empty_cart"},
	{services.ErrPaymentDeclined, http.StatusPaymentRequired, "payment_declined"},
	{services.ErrUnknownCoupon, http.StatusBadRequest, "unknown_coupon"},
	{services.ErrInvalidMobile, http.StatusBadRequest, "invalid_mobile"},
	{services.ErrInvalidOTP, http.StatusUnauthorized, "invalid_otp"},
	{services.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{services.ErrOrderNotPending, http.StatusConflict, "order_not_pending"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
}

// fail maps err to a status code and a localized message
func (h *APIHandler) fail(c *gin.Context, err error) {
	loc := locale(c)
	_ = c.Error(err)

	var (
		qtyErr    *services.InvalidQuantityError
		minErr    *services.MinimumOrderError
		stockErr  *services.InsufficientStockError
		formatErr *pricing.FormatError
	)
	switch {
	case errors.As(err, &qtyErr):
		c.JSON(http.StatusBadRequest, apiError{
			Error: i18n.Tf("error.invalid_quantity", loc, qtyErr.Minimum),
			Code:  "invalid_quantity",
		})
		return
	case errors.As(err, &minErr):
		c.JSON(http.StatusUnprocessableEntity, apiError{
			Error: i18n.Tf("error.coupon_minimum", loc, minErr.MinOrder),
			Code:  "coupon_minimum",
		})
		return
	case errors.As(err, &stockErr):
		name := strconv.Itoa(stockErr.ItemID)
		if item, err := h.svc.Catalog.Get(stockErr.ItemID); err == nil {
			name = item.Name(loc)
		}
		c.JSON(http.StatusConflict, apiError{
			Error: i18n.Tf("error.insufficient_stock", loc, name, stockErr.Available),
			Code:  "insufficient_stock",
		})
		return
	case errors.As(err, &formatErr):
		h.logger.Error("catalog price label is malformed",
			zap.String("label", formatErr.Label),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, apiError{
			Error: i18n.T("error.internal", loc),
			Code:  "price_format",
		})
		return
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			c.JSON(s.status, apiError{Error: i18n.T("error."+s.code, loc), Code: s.code})
			return
		}
	}

	h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, apiError{Error: i18n.T("error.internal", loc), Code: "internal"})
}

func (h *APIHandler) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, apiError{
		Error: i18n.T("error.bad_request", locale(c)),
		Code:  "bad_request",
	})
}
