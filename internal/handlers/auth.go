package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yishak-cs/BazaarSetu/internal/i18n"
	"github.com/yishak-cs/BazaarSetu/internal/models"
)

type otpRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

// SendOTP starts the mock OTP flow
func (h *APIHandler) SendOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.svc.Auth.SendOTP(c.Request.Context(), req.Mobile); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": i18n.T("auth.otp_sent", locale(c))})
}

type verifyRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
	Role   string `json:"type" binding:"required"`
}

// VerifyOTP logs the user in and opens their cart
func (h *APIHandler) VerifyOTP(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	login, err := h.svc.Auth.Verify(c.Request.Context(), req.Mobile, req.OTP, models.Role(req.Role))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       login.User,
		"session_id": login.SessionID,
		"message":    i18n.Tf("auth.welcome", locale(c), login.User.Name),
	})
}

type logoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Logout ends the session and discards its cart
func (h *APIHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	if err := h.svc.Auth.Logout(c.Request.Context(), req.SessionID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": i18n.T("auth.logged_out", locale(c))})
}
