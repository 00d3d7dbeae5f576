package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/config"
)

// Health reports the service configuration the operator cares about when
// checking why alerts did or did not go out.
func Health(c *gin.Context, cfg *config.Config, historyEnabled bool) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"channelId":        cfg.ReadChannelID,
		"policy":           cfg.Policy,
		"resultCount":      cfg.ResultCount,
		"schedule":         cfg.RunSchedule,
		"emailEnabled":     cfg.MailEnabled(),
		"writebackEnabled": cfg.WritebackEnabled(),
		"historyEnabled":   historyEnabled,
	})
}
