// Package handlers exposes the administrative HTTP surface: weekly stats,
// transaction listing, and the delete-by-ID debug path. The bot itself never
// goes through HTTP; this API exists for operators.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/services"
)

// AdminHandler serves the administrative endpoints.
type AdminHandler struct {
	users   services.UserServicer
	finance services.FinanceServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users services.UserServicer, finance services.FinanceServicer) *AdminHandler {
	return &AdminHandler{users: users, finance: finance}
}

// statsQuery binds the optional base date for the weekly window.
type statsQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// listQuery binds the optional date range for transaction listing.
type listQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// GetWeekStats returns the 7-day category aggregate for a user, identified
// by Telegram ID. The window ends at ?date= or today.
func (h *AdminHandler) GetWeekStats(c *gin.Context) {
	telegramID, err := parseTelegramID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q statsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date"))
		return
	}

	baseDate := time.Now()
	if q.Date != "" {
		baseDate, _ = time.Parse("2006-01-02", q.Date)
	}

	user, err := h.users.GetByTelegramID(telegramID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.finance.GetWeekStats(user.ID, baseDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"telegram_id": telegramID,
		"base_date":   services.ToDate(baseDate).Format("2006-01-02"),
		"stats":       stats,
	})
}

// ListTransactions returns a user's transactions, optionally bounded by
// ?from= and ?to= (inclusive).
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	telegramID, err := parseTelegramID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date range"))
		return
	}

	var from, to *time.Time
	if q.From != "" {
		t, _ := time.Parse("2006-01-02", q.From)
		from = &t
	}
	if q.To != "" {
		t, _ := time.Parse("2006-01-02", q.To)
		to = &t
	}

	user, err := h.users.GetByTelegramID(telegramID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.finance.ListTransactions(user.ID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// DeleteTransaction removes a transaction by ID.
func (h *AdminHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.finance.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
