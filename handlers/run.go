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

// runTimeout bounds a manually triggered pass, fetch and dispatch included.
const runTimeout = 2 * time.Minute

// TriggerRun executes one full classification pass on demand, outside the
// cron schedule. The response carries the same record the run persisted.
func TriggerRun(c *gin.Context, runner *pipeline.Runner) {
	log.Println("Handler: Starting manual classification run...")

	ctx, cancel := context.WithTimeout(c.Request.Context(), runTimeout)
	defer cancel()

	rec, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoData) {
			log.Println("Handler: Channel has no readings to classify.")
			c.JSON(http.StatusOK, gin.H{"message": "No data found in the feed window"})
			return
		}
		log.Printf("ERROR running classification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Classification run failed"})
		return
	}

	log.Printf("Handler: Run complete. Risk: %s", rec.DominantTier)
	c.JSON(http.StatusOK, gin.H{
		"message": "Run complete",
		"run":     rec,
	})
}
