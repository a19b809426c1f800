package api

import (
	"net/http"

	"tasknag-backend/internal/browser"
	"tasknag-backend/internal/task/scheduler"

	"github.com/gin-gonic/gin"
)

type actionURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// CheckNow runs a notification pass immediately, sharing the scheduler's
// dedupe state so a manual check never double-fires the same minute.
// POST /api/notifications/check
func CheckNow(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sched.TriggerNow(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification check completed"})
	}
}

// ValidateActionURL checks a URL against the browser action safety rules
// without opening it.
// POST /api/browser-actions/validate
func ValidateActionURL(dispatcher *browser.Dispatcher) gin.HandlerFunc {
	validator := browser.NewValidator()
	return func(c *gin.Context) {
		var req actionURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := validator.Validate(req.URL)
		resp := gin.H{"result": result}
		if !result.IsValid {
			if suggestions := validator.SuggestCorrections(req.URL); len(suggestions) > 0 {
				resp["suggestions"] = suggestions
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// TestActionURL validates and opens a URL once, for the settings form's
// "try it" button.
// POST /api/browser-actions/test
func TestActionURL(dispatcher *browser.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req actionURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := dispatcher.TestURL(c.Request.Context(), req.URL); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "URL opened"})
	}
}
