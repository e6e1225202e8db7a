package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"finance-analyzer/models"
	"finance-analyzer/pkg/finance"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "finance-analyzer", "status": "running"})
}

func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// healthHandler pings the database.
func (a *app) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := a.st.Ping(ctx); err != nil {
		a.log.WarnContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "db": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP", "db": "ok"})
}

func (a *app) issue(c *gin.Context, u *models.User, status int, message string) {
	token, err := a.tokens.Issue(u.Username)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(status, authResponse{
		Token:     token,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Message:   message,
	})
}

func (a *app) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := a.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.issue(c, user, http.StatusOK, "Login successful")
}

func (a *app) signupHandler(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required,min=3,max=50"`
		Email     string `json:"email" binding:"required,email,max=100"`
		Password  string `json:"password" binding:"required,min=6,max=100"`
		FirstName string `json:"firstName" binding:"max=50"`
		LastName  string `json:"lastName" binding:"max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := a.users.Signup(c.Request.Context(), finance.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.issue(c, user, http.StatusCreated, "User registered successfully")
}

func (a *app) getProfileHandler(c *gin.Context) {
	user, err := a.users.Get(c.Request.Context(), caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfile(user))
}

// updateProfileHandler applies only the fields present in the body.
func (a *app) updateProfileHandler(c *gin.Context) {
	var req struct {
		FirstName                 *string          `json:"firstName" binding:"omitempty,max=50"`
		LastName                  *string          `json:"lastName" binding:"omitempty,max=50"`
		Email                     *string          `json:"email" binding:"omitempty,email,max=100"`
		MonthlyBudgetLimit        *decimal.Decimal `json:"monthlyBudgetLimit"`
		AutoCategorizationEnabled *bool            `json:"autoCategorizationEnabled"`
		PreferredCurrency         *string          `json:"preferredCurrency" binding:"omitempty,currency"`
		NotificationEmailEnabled  *bool            `json:"notificationEmailEnabled"`
		NotificationSmsEnabled    *bool            `json:"notificationSmsEnabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := a.users.UpdateProfile(c.Request.Context(), caller(c).UserID, finance.ProfileUpdate{
		FirstName:                 req.FirstName,
		LastName:                  req.LastName,
		Email:                     req.Email,
		MonthlyBudgetLimit:        req.MonthlyBudgetLimit,
		AutoCategorizationEnabled: req.AutoCategorizationEnabled,
		PreferredCurrency:         req.PreferredCurrency,
		NotificationEmailEnabled:  req.NotificationEmailEnabled,
		NotificationSmsEnabled:    req.NotificationSmsEnabled,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated successfully", toProfile(user))
}

func (a *app) changePasswordHandler(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := a.users.ChangePassword(c.Request.Context(), caller(c).UserID, req.CurrentPassword, req.NewPassword); err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed successfully", nil)
}

func (a *app) deleteUserHandler(c *gin.Context) {
	if err := a.users.Delete(c.Request.Context(), caller(c).UserID); err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account deleted successfully", nil)
}

// parseDate reads a YYYY-MM-DD string already checked by the binding.
func parseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, strings.TrimSpace(s))
}
