package types

import "time"

// Policy selects how a window of cluster labels is reduced to a report.
type Policy string

const (
	// PolicyMode reports the single most frequent label in the window,
	// breaking ties toward the lowest label value.
	PolicyMode Policy = "mode"
	// PolicyTally reports every observed label with its occurrence count.
	PolicyTally Policy = "tally"
)

// TierMap resolves a cluster label to its human-facing risk tier name. It is
// a hand-curated artifact versioned alongside the model files; it cannot be
// derived from the model itself.
type TierMap map[int]string

// TierCount is one tally entry: a tier name and how many readings in the
// window landed on its label.
type TierCount struct {
	Tier  string `firestore:"tier" json:"tier"`
	Count int    `firestore:"count" json:"count"`
}

// AggregateResult is the reduced outcome of one classification window.
// Under the mode policy DominantLabel/DominantTier are set; under the tally
// policy Counts carries every observed label. Counts is populated in both
// modes since the tally falls out of computing the mode anyway.
type AggregateResult struct {
	Policy        Policy            `firestore:"policy" json:"policy"`
	Window        int               `firestore:"window" json:"window"`
	DominantLabel int               `firestore:"dominantLabel" json:"dominant_label"`
	DominantTier  string            `firestore:"dominantTier" json:"dominant_tier"`
	Counts        map[int]TierCount `firestore:"-" json:"counts"`
}

// Report is the composed output of one pipeline run: the notification pieces
// and the flat payload written back to the prediction channel.
type Report struct {
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Writeback map[string]string `json:"writeback"`
}

// RunRecord is what one completed pipeline run leaves behind in Firestore.
// Counts is keyed by the label rendered as a string because Firestore map
// keys must be strings.
type RunRecord struct {
	ID            string               `firestore:"-" json:"id"`
	RanAt         time.Time            `firestore:"ranAt" json:"ran_at"`
	Window        int                  `firestore:"window" json:"window"`
	Policy        string               `firestore:"policy" json:"policy"`
	DominantLabel int                  `firestore:"dominantLabel" json:"dominant_label"`
	DominantTier  string               `firestore:"dominantTier" json:"dominant_tier"`
	Counts        map[string]TierCount `firestore:"counts" json:"counts"`
	Latest        Reading              `firestore:"latest" json:"latest"`
	Subject       string               `firestore:"subject" json:"subject"`
	WritebackOK   bool                 `firestore:"writebackOk" json:"writeback_ok"`
	WritebackErr  string               `firestore:"writebackErr,omitempty" json:"writeback_err,omitempty"`
	EmailOK       bool                 `firestore:"emailOk" json:"email_ok"`
	EmailErr      string               `firestore:"emailErr,omitempty" json:"email_err,omitempty"`
}
