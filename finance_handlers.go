package main

import (
	"net/http"
	"time"

	"finance-analyzer/models"
	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/finance"
	"finance-analyzer/pkg/report"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=200"`
	Color       string `json:"color" binding:"omitempty,rgbcolor"`
}

func (r categoryRequest) input() finance.CategoryInput {
	return finance.CategoryInput{Name: r.Name, Description: r.Description, Color: r.Color}
}

func (a *app) listCategoriesHandler(c *gin.Context) {
	items, err := a.cats.List(c.Request.Context(), caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(items))
	for i := range items {
		out = append(out, toCategory(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (a *app) getCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := a.cats.Get(c.Request.Context(), id, caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategory(cat))
}

func (a *app) createCategoryHandler(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cat, err := a.cats.Create(c.Request.Context(), caller(c).UserID, req.input())
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created successfully", toCategory(cat))
}

func (a *app) updateCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cat, err := a.cats.Update(c.Request.Context(), id, caller(c).UserID, req.input())
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category updated successfully", toCategory(cat))
}

func (a *app) deleteCategoryHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.cats.Delete(c.Request.Context(), id, caller(c).UserID); err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category deleted successfully", nil)
}

type transactionRequest struct {
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate string           `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Type            string           `json:"type" binding:"required"`
	Description     string           `json:"description" binding:"max=500"`
	CategoryID      *uint            `json:"categoryId"`
}

func (r transactionRequest) input() (finance.TransactionInput, error) {
	typ, ok := models.ParseTransactionType(r.Type)
	if !ok {
		return finance.TransactionInput{}, apperr.Validation("type must be INCOME or EXPENSE")
	}
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return finance.TransactionInput{}, apperr.Validation("transactionDate must be a date in YYYY-MM-DD format")
	}
	return finance.TransactionInput{
		Amount:      *r.Amount,
		Date:        date,
		Type:        typ,
		Description: r.Description,
		CategoryID:  r.CategoryID,
	}, nil
}

func (a *app) listTransactionsHandler(c *gin.Context) {
	items, err := a.txs.List(c.Request.Context(), caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	out := make([]transactionResponse, 0, len(items))
	for i := range items {
		out = append(out, toTransaction(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (a *app) getTransactionHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := a.txs.Get(c.Request.Context(), id, caller(c).UserID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransaction(t))
}

func (a *app) createTransactionHandler(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		a.respondError(c, err)
		return
	}
	t, err := a.txs.Create(c.Request.Context(), caller(c).UserID, in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Transaction created successfully", toTransaction(t))
}

func (a *app) updateTransactionHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in, err := req.input()
	if err != nil {
		a.respondError(c, err)
		return
	}
	t, err := a.txs.Update(c.Request.Context(), id, caller(c).UserID, in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transaction updated successfully", toTransaction(t))
}

func (a *app) deleteTransactionHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.txs.Delete(c.Request.Context(), id, caller(c).UserID); err != nil {
		a.respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Transaction deleted successfully", nil)
}

// summaryHandler totals one month (?month=YYYY-MM, default the current UTC month).
func (a *app) summaryHandler(c *gin.Context) {
	month := c.DefaultQuery("month", time.Now().UTC().Format(report.MonthLayout))
	if _, _, err := report.MonthBounds(month); err != nil {
		a.respondError(c, apperr.Validation(err.Error()))
		return
	}
	m, err := report.Build(c.Request.Context(), a.st.Transactions, caller(c).UserID, month)
	if err != nil {
		a.respondError(c, err)
		return
	}
	out := summaryResponse{
		Month:      m.Month,
		Count:      m.Count,
		Income:     money(m.Income),
		Expense:    money(m.Expense),
		Net:        money(m.Net()),
		ByCategory: make([]categoryTotalResponse, 0, len(m.ByCategory)),
	}
	for _, ct := range m.ByCategory {
		out.ByCategory = append(out.ByCategory, categoryTotalResponse{Category: ct.Category, Expense: money(ct.Expense)})
	}
	c.JSON(http.StatusOK, out)
}
