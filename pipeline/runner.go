// Package pipeline runs one classification pass end to end: fetch the feed
// window, normalize it, score it against the pretrained stages, aggregate
// the labels, compose the report, and dispatch the side effects.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/aggregate"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/metrics"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/report"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// Fetcher pulls the recent feed window from the telemetry channel.
type Fetcher interface {
	FetchFeeds(ctx context.Context) (*types.FeedResponse, error)
	ChannelURL() string
}

// Updater writes the prediction payload back to the channel.
type Updater interface {
	WritePrediction(ctx context.Context, fields map[string]string) (int, error)
}

// Mailer delivers the alert notification.
type Mailer interface {
	Send(subject, body string) error
}

// Store persists finished run records.
type Store interface {
	SaveRun(ctx context.Context, rec *types.RunRecord) error
}

// Advisor produces a short plain-language note for the alert body.
type Advisor interface {
	Advise(ctx context.Context, tier string, latest types.Reading) (string, error)
}

// Model assigns one cluster label per matrix row.
type Model interface {
	Predict(X *mat.Dense) ([]int, error)
}

// Runner owns the collaborators of the scheduled classification pass.
// Fetcher, Model and Tiers are required. Updater, Mailer, Store and Advisor
// may be nil; a nil collaborator disables that side effect.
type Runner struct {
	Fetcher Fetcher
	Model   Model
	Tiers   types.TierMap
	Policy  types.Policy

	Updater Updater
	Mailer  Mailer
	Store   Store
	Advisor Advisor
}

// Run executes one full pass and returns the record of what happened,
// including the per-sink outcomes. An empty feed window comes back as
// ErrNoData so callers can tell an idle channel from a failure.
func (r *Runner) Run(ctx context.Context) (*types.RunRecord, error) {
	agg, latest, err := r.classify(ctx)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			log.Println("No data found in the feed window, skipping run.")
			metrics.RunsTotal.WithLabelValues(metrics.OutcomeNoData).Inc()
		} else {
			metrics.RunsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		return nil, err
	}

	advisory := r.advisory(ctx, agg, latest)

	rep, err := report.Compose(agg, latest, r.Fetcher.ChannelURL(), advisory)
	if err != nil {
		metrics.RunsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	rec := r.dispatch(ctx, agg, latest, rep)

	if r.Store != nil {
		if err := r.Store.SaveRun(ctx, rec); err != nil {
			// The run itself succeeded; a history write failure only
			// costs us the audit entry.
			log.Printf("Failed to save run record: %v", err)
		}
	}

	metrics.RunsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.LastWindowSize.Set(float64(agg.Window))
	if agg.Policy == types.PolicyMode {
		metrics.LastDominantLabel.Set(float64(agg.DominantLabel))
	}

	log.Printf("Run finished. Risk: %s (window %d)", rec.DominantTier, rec.Window)
	return rec, nil
}

// Preview covers fetch through compose without dispatching, persisting, or
// requesting an advisory. The manual dry-run endpoint uses it.
func (r *Runner) Preview(ctx context.Context) (*types.Report, *types.AggregateResult, error) {
	agg, latest, err := r.classify(ctx)
	if err != nil {
		return nil, nil, err
	}
	rep, err := report.Compose(agg, latest, r.Fetcher.ChannelURL(), "")
	if err != nil {
		return nil, nil, err
	}
	return rep, agg, nil
}

// classify is the stateless core of a pass: fetch, normalize, score,
// aggregate. It also hands back the most recent reading, which is the last
// row since the channel serves the window oldest first.
func (r *Runner) classify(ctx context.Context) (*types.AggregateResult, types.Reading, error) {
	feed, err := r.Fetcher.FetchFeeds(ctx)
	if err != nil {
		return nil, types.Reading{}, fmt.Errorf("failed to fetch feeds: %w", err)
	}

	readings := NormalizeFeeds(feed.Feeds)
	X, err := BuildMatrix(readings)
	if err != nil {
		return nil, types.Reading{}, err
	}

	labels, err := r.Model.Predict(X)
	if err != nil {
		return nil, types.Reading{}, fmt.Errorf("model prediction failed: %w", err)
	}

	agg, err := aggregate.Reduce(labels, r.Tiers, r.Policy)
	if err != nil {
		return nil, types.Reading{}, fmt.Errorf("failed to aggregate labels: %w", err)
	}

	return agg, readings[len(readings)-1], nil
}

// advisory asks for the optional plain-language note. Any failure is logged
// and the alert goes out without one. Tally runs have no single tier to
// advise on, so they skip it.
func (r *Runner) advisory(ctx context.Context, agg *types.AggregateResult, latest types.Reading) string {
	if r.Advisor == nil || agg.DominantTier == "" {
		return ""
	}
	text, err := r.Advisor.Advise(ctx, agg.DominantTier, latest)
	if err != nil {
		log.Printf("Advisory generation failed: %v", err)
		return ""
	}
	return text
}

// dispatch fans the writeback and the email out concurrently. Each sink
// succeeds or fails on its own; neither outcome hides the other.
func (r *Runner) dispatch(ctx context.Context, agg *types.AggregateResult, latest types.Reading, rep *types.Report) *types.RunRecord {
	var writebackErr, mailErr error
	var wg sync.WaitGroup

	if r.Updater != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entryID, err := r.Updater.WritePrediction(ctx, rep.Writeback)
			if err != nil {
				log.Printf("ThingSpeak writeback failed: %v", err)
				metrics.DispatchFailures.WithLabelValues(metrics.SinkWriteback).Inc()
				writebackErr = err
				return
			}
			log.Printf("ThingSpeak writeback accepted as entry %d", entryID)
		}()
	} else {
		log.Println("No write API key configured, skipping ThingSpeak writeback.")
	}

	if r.Mailer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Mailer.Send(rep.Subject, rep.Body); err != nil {
				log.Printf("Email failed: %v", err)
				metrics.DispatchFailures.WithLabelValues(metrics.SinkEmail).Inc()
				mailErr = err
				return
			}
			log.Println("Email sent successfully.")
		}()
	} else {
		log.Println("No email credentials configured, skipping alert email.")
	}

	wg.Wait()

	rec := &types.RunRecord{
		ID:            uuid.NewString(),
		RanAt:         time.Now().UTC(),
		Window:        agg.Window,
		Policy:        string(agg.Policy),
		DominantLabel: agg.DominantLabel,
		DominantTier:  agg.DominantTier,
		Counts:        stringCounts(agg.Counts),
		Latest:        latest,
		Subject:       rep.Subject,
		WritebackOK:   r.Updater != nil && writebackErr == nil,
		EmailOK:       r.Mailer != nil && mailErr == nil,
	}
	if writebackErr != nil {
		rec.WritebackErr = writebackErr.Error()
	}
	if mailErr != nil {
		rec.EmailErr = mailErr.Error()
	}
	return rec
}

// stringCounts re-keys the tally for Firestore, whose map keys must be
// strings.
func stringCounts(counts map[int]types.TierCount) map[string]types.TierCount {
	out := make(map[string]types.TierCount, len(counts))
	for label, tc := range counts {
		out[strconv.Itoa(label)] = tc
	}
	return out
}
