package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/db"
)

const maxRunsLimit = 100

// RecentRuns lists the latest persisted run records, newest first. The
// limit query parameter defaults to 20.
func RecentRuns(c *gin.Context, store *db.RunStore) {
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}

	runs, err := store.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		log.Printf("ERROR fetching run history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve run history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}
