package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/config"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/db"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/handlers"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/pipeline"
)

func SetupRouter(runner *pipeline.Runner, store *db.RunStore, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to the Infection Risk Prediction service!",
		})
	})

	// api routes
	api := r.Group("/api/risk")
	{
		api.GET("/health", func(c *gin.Context) {
			handlers.Health(c, cfg, store != nil)
		})
		api.POST("/run", func(c *gin.Context) {
			handlers.TriggerRun(c, runner)
		})
		api.GET("/preview", func(c *gin.Context) {
			handlers.PreviewRun(c, runner)
		})
		api.GET("/runs", func(c *gin.Context) {
			handlers.RecentRuns(c, store)
		})
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
