package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

// SessionHeader carries the session id returned by /api/auth/verify
const SessionHeader = "X-Session-ID"

const userKey = "user"

// requireSupplier rejects requests whose session does not belong to a supplier
func (h *APIHandler) requireSupplier() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.svc.Auth.User(c.GetHeader(SessionHeader))
		if !ok || user.Role != models.RoleSupplier {
			h.fail(c, services.ErrForbidden)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(models.User); ok {
			return u
		}
	}
	return models.User{}
}

// IncomingOrders lists vendor orders, optionally filtered by ?status=
func (h *APIHandler) IncomingOrders(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	status := models.OrderStatus(c.Query("status"))
	orders, err := h.svc.Supplier.Incoming(c.Request.Context(), status, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	pending := 0
	for _, o := range orders {
		if o.Status == models.OrderPending {
			pending++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":  orders,
		"pending": pending,
	})
}

// AcceptOrder accepts a pending order and takes its items out of stock
func (h *APIHandler) AcceptOrder(c *gin.Context) {
	order, err := h.svc.Supplier.Accept(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("supplier decision",
		zap.String("order_id", order.ID),
		zap.String("supplier_id", currentUser(c).ID),
		zap.String("status", string(order.Status)))

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"message": i18n.T("supplier.accepted", locale(c)),
	})
}

// RejectOrder rejects a pending order
func (h *APIHandler) RejectOrder(c *gin.Context) {
	order, err := h.svc.Supplier.Reject(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("supplier decision",
		zap.String("order_id", order.ID),
		zap.String("supplier_id", currentUser(c).ID),
		zap.String("status", string(order.Status)))

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"message": i18n.T("supplier.rejected", locale(c)),
	})
}

// Inventory lists the supplier's stock with its low/out status
func (h *APIHandler) Inventory(c *gin.Context) {
	items := h.svc.Supplier.Inventory()

	active := 0
	for _, item := range items {
		if item.Status != models.StockOut {
			active++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":           items,
		"active_products": active,
	})
}

// Demand ranks items by how often vendors order them
func (h *APIHandler) Demand(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	trends, err := h.svc.Supplier.Demand(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
