package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/pipeline"
)

// PreviewRun classifies the current window and returns what would be sent,
// without writing to the channel, emailing anyone, or saving a record.
func PreviewRun(c *gin.Context, runner *pipeline.Runner) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	rep, agg, err := runner.Preview(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoData) {
			c.JSON(http.StatusOK, gin.H{"message": "No data found in the feed window"})
			return
		}
		log.Printf("ERROR previewing classification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Classification preview failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"aggregate": agg,
		"subject":   rep.Subject,
		"body":      rep.Body,
		"writeback": rep.Writeback,
	})
}
