// Package cronjobs schedules the periodic classification passes.
package cronjobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/pipeline"
)

// runTimeout bounds one scheduled pass end to end, fetch and dispatch
// included.
const runTimeout = 2 * time.Minute

// InitCronJobs starts the scheduler with the classification pass on the
// configured cron expression.
func InitCronJobs(runner *pipeline.Runner, schedule string) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		log.Println("\nCronJob: Risk Classification Running")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := runner.Run(ctx); err != nil {
			// An idle channel is already logged by the runner.
			if !errors.Is(err, pipeline.ErrNoData) {
				log.Println("Error running risk classification:", err)
			}
		}
	})
	if err != nil {
		log.Println("Error scheduling risk classification:", err)
	}

	c.Start()
}
