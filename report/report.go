// Package report formats an aggregate outcome into the alert notification
// and the prediction-channel writeback payload.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// ErrBadTimestamp reports a created_at value the channel handed back in a
// shape we do not understand. Rendering a wrong sensor time on a risk alert
// is worse than failing the run.
var ErrBadTimestamp = errors.New("unparsable reading timestamp")

// feedTimeLayout is how the channel formats created_at, e.g.
// "2026-01-05T10:00:00Z".
const feedTimeLayout = "2006-01-02T15:04:05Z"

// istLayout is the human-facing rendering used in the body.
const istLayout = "02-01-06 03:04:05 PM"

// istZone is a fixed +5:30 shift. IST has no daylight saving, so a static
// offset matches wall-clock time year round.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// Compose builds the email subject and body plus the writeback payload for
// one finished run. advisory is appended to the body when non-empty.
func Compose(agg *types.AggregateResult, latest types.Reading, channelURL, advisory string) (*types.Report, error) {
	sensorTime, err := toIST(latest.CreatedAt)
	if err != nil {
		return nil, err
	}

	var subject, summary, field7, field8 string
	switch agg.Policy {
	case types.PolicyTally:
		subject = "Infection Risk Update"
		summary = "Risk Breakdown:\n" + tallyLines(agg.Counts)
		field7 = "-1"
		field8 = tallyText(agg.Counts)
	default:
		subject = fmt.Sprintf("Infection Risk Update – %s", agg.DominantTier)
		summary = fmt.Sprintf("Predicted Risk: %s", agg.DominantTier)
		field7 = strconv.Itoa(agg.DominantLabel)
		field8 = agg.DominantTier
	}

	var body strings.Builder
	fmt.Fprintf(&body, "\n%s\n\n", summary)
	fmt.Fprintf(&body, "Latest Sensor Readings at Time(%s):\n", sensorTime)
	fmt.Fprintf(&body, "Temperature: %s\n", formatValue(latest.Temperature))
	fmt.Fprintf(&body, "Humidity: %s\n", formatValue(latest.Humidity))
	fmt.Fprintf(&body, "Pressure: %s\n", formatValue(latest.Pressure))
	fmt.Fprintf(&body, "PM2.5 (Dust): %s\n", formatValue(latest.Particulate))
	fmt.Fprintf(&body, "CO2: %s\n", formatValue(latest.CO2))
	fmt.Fprintf(&body, "TVOC: %s\n", formatValue(latest.TVOC))
	fmt.Fprintf(&body, "\nThingSpeak Channel:\n%s\n", channelURL)
	if advisory != "" {
		fmt.Fprintf(&body, "\nAdvisory:\n%s\n", advisory)
	}

	return &types.Report{
		Subject: subject,
		Body:    body.String(),
		Writeback: map[string]string{
			"field1": formatValue(latest.Temperature),
			"field2": formatValue(latest.Humidity),
			"field3": formatValue(latest.Pressure),
			"field4": formatValue(latest.Particulate),
			"field5": formatValue(latest.CO2),
			"field6": formatValue(latest.TVOC),
			"field7": field7,
			"field8": field8,
		},
	}, nil
}

// toIST parses the channel timestamp (always UTC) and renders it shifted
// into IST.
func toIST(createdAt string) (string, error) {
	t, err := time.Parse(feedTimeLayout, createdAt)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadTimestamp, createdAt)
	}
	return t.In(istZone).Format(istLayout), nil
}

// formatValue renders a sensor value the way the channel serves it: no
// exponent, no trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// tallyLines renders one "tier: count" line per observed label, lowest
// label first.
func tallyLines(counts map[int]types.TierCount) string {
	var b strings.Builder
	for _, label := range sortedLabels(counts) {
		tc := counts[label]
		fmt.Fprintf(&b, "%s: %d\n", tc.Tier, tc.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// tallyText is the single-line form of the breakdown used for the channel
// writeback field.
func tallyText(counts map[int]types.TierCount) string {
	parts := make([]string, 0, len(counts))
	for _, label := range sortedLabels(counts) {
		tc := counts[label]
		parts = append(parts, fmt.Sprintf("%s: %d", tc.Tier, tc.Count))
	}
	return strings.Join(parts, ", ")
}

func sortedLabels(counts map[int]types.TierCount) []int {
	labels := make([]int, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels
}
