package server

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Saba3939/oneday-todo/internal/clock"
)

// Statistics windows by tier: free accounts see the last week, premium a
// full year.
const (
	freeStatisticsDays    = 7
	premiumStatisticsDays = 365
)

type profileResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsPremium  bool   `json:"is_premium"`
	LastAccess string `json:"last_access"`
}

// handleProfile returns the owner's profile: premium tier and the carry-over
// marker.
func (s *Server) handleProfile(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var resp profileResponse
	var lastAccess sql.NullTime
	err := s.db.QueryRowContext(c.Request().Context(), `
		SELECT id, username, email, last_access FROM users WHERE id = $1`,
		userID,
	).Scan(&resp.ID, &resp.Username, &resp.Email, &lastAccess)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	}
	if lastAccess.Valid {
		resp.LastAccess = lastAccess.Time.UTC().Format("2006-01-02")
	}

	premium, err := s.billing.IsPremium(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("billing error:", err)
	}
	resp.IsPremium = premium

	return c.JSON(http.StatusOK, resp)
}

type lastAccessRequest struct {
	Date string `json:"date"`
}

// handleUpdateLastAccess stamps the carry-over marker on the profile.
func (s *Server) handleUpdateLastAccess(c echo.Context) error {
	var req lastAccessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	day, err := clock.ParseDay(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date"})
	}

	if err := s.taskStore(c).SetLastAccess(c.Request().Context(), day); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// handleStatistics returns day-by-day aggregates ending today. The window is
// capped by subscription tier.
func (s *Server) handleStatistics(c echo.Context) error {
	userID := c.Get("user_id").(string)
	ctx := c.Request().Context()

	days := freeStatisticsDays
	if v := c.QueryParam("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid days"})
		}
		days = parsed
	}

	maxDays := freeStatisticsDays
	if premium, err := s.billing.IsPremium(ctx, userID); err == nil && premium {
		maxDays = premiumStatisticsDays
	}
	if days > maxDays {
		days = maxDays
	}

	to := clock.Today()
	from := clock.DayOf(to.Start().AddDate(0, 0, -(days - 1)))

	stats, err := s.stats.Range(ctx, userID, from, to)
	if err != nil {
		c.Logger().Error("statistics error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]any{"days": stats})
}
