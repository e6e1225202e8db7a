package main

import (
	"time"

	"finance-analyzer/models"

	"github.com/shopspring/decimal"
)

// Response shapes. Field names are camelCase on the wire.

type authResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Message   string `json:"message"`
}

type categoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategory(c *models.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsDefault:   c.IsDefault,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type transactionResponse struct {
	ID              uint      `json:"id"`
	Amount          string    `json:"amount"`
	Description     string    `json:"description"`
	TransactionDate string    `json:"transactionDate"`
	Type            string    `json:"type"`
	Source          string    `json:"source"`
	CategoryID      *uint     `json:"categoryId"`
	CategoryName    *string   `json:"categoryName"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toTransaction(t *models.Transaction) transactionResponse {
	out := transactionResponse{
		ID:              t.ID,
		Amount:          t.Amount.StringFixed(2),
		Description:     t.Description,
		TransactionDate: t.TransactionDate.Format(models.DateLayout),
		Type:            string(t.Type),
		Source:          string(t.Source),
		CategoryID:      t.CategoryID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.Category != nil {
		name := t.Category.Name
		out.CategoryName = &name
	}
	return out
}

type uploadResponse struct {
	ID           uint      `json:"id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"fileSize"`
	ContentType  string    `json:"contentType"`
	UploadDate   time.Time `json:"uploadDate"`
	Processed    bool      `json:"processed"`
	RecordsCount int       `json:"recordsCount"`
	Status       string    `json:"status"`
	ErrorDetails string    `json:"errorDetails,omitempty"`
}

func toUpload(u *models.Upload) uploadResponse {
	return uploadResponse{
		ID:           u.ID,
		Filename:     u.FileName,
		FileSize:     u.FileSize,
		ContentType:  u.ContentType,
		UploadDate:   u.UploadDate,
		Processed:    u.Processed,
		RecordsCount: u.RecordsCount,
		Status:       string(u.Status),
		ErrorDetails: u.ErrorDetails,
	}
}

type profileResponse struct {
	ID                        uint      `json:"id"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	FirstName                 string    `json:"firstName"`
	LastName                  string    `json:"lastName"`
	MonthlyBudgetLimit        *string   `json:"monthlyBudgetLimit"`
	AutoCategorizationEnabled bool      `json:"autoCategorizationEnabled"`
	PreferredCurrency         string    `json:"preferredCurrency"`
	NotificationEmailEnabled  bool      `json:"notificationEmailEnabled"`
	NotificationSmsEnabled    bool      `json:"notificationSmsEnabled"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

func toProfile(u *models.User) profileResponse {
	p := u.Preferences
	out := profileResponse{
		ID:                        u.ID,
		Username:                  u.Username,
		Email:                     u.Email,
		FirstName:                 u.FirstName,
		LastName:                  u.LastName,
		AutoCategorizationEnabled: p.AutoCategorizationEnabled,
		PreferredCurrency:         p.PreferredCurrency,
		NotificationEmailEnabled:  p.NotificationEmailEnabled,
		NotificationSmsEnabled:    p.NotificationSmsEnabled,
		CreatedAt:                 u.CreatedAt,
		UpdatedAt:                 u.UpdatedAt,
	}
	if p.MonthlyBudgetLimit.Valid {
		s := p.MonthlyBudgetLimit.Decimal.StringFixed(2)
		out.MonthlyBudgetLimit = &s
	}
	return out
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Expense  string `json:"expense"`
}

type summaryResponse struct {
	Month      string                  `json:"month"`
	Count      int                     `json:"count"`
	Income     string                  `json:"income"`
	Expense    string                  `json:"expense"`
	Net        string                  `json:"net"`
	ByCategory []categoryTotalResponse `json:"byCategory"`
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
