package thingspeak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/config"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

// Client talks to a ThingSpeak-compatible telemetry API: it reads the sensor
// channel's feed window and writes predictions back to the prediction channel.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	channelID   string
	readAPIKey  string
	writeAPIKey string
	resultCount int
}

// NewClient builds a channel client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(cfg.ThingSpeakURL, "/"),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		channelID:   cfg.ReadChannelID,
		readAPIKey:  cfg.ReadAPIKey,
		writeAPIKey: cfg.WriteAPIKey,
		resultCount: cfg.ResultCount,
	}
}

// ChannelURL returns the public page of the sensor channel, used in the
// notification body.
func (c *Client) ChannelURL() string {
	return "https://thingspeak.com/channels/" + c.channelID
}

// FetchFeeds pulls the most recent window of raw readings from the sensor
// channel, oldest first as ThingSpeak returns them. An empty feed list is a
// valid reply and is the caller's "no data" case, not an error.
func (c *Client) FetchFeeds(ctx context.Context) (*types.FeedResponse, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/feeds.json", c.BaseURL, c.channelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building feeds request: %w", err)
	}

	q := url.Values{}
	q.Set("results", strconv.Itoa(c.resultCount))
	q.Set("api_key", c.readAPIKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feeds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feeds request returned status %s", resp.Status)
	}

	var out types.FeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding feeds response: %w", err)
	}

	return &out, nil
}

// WritePrediction posts the flat writeback payload to the prediction channel.
// ThingSpeak answers with the new entry id in the body; an id of 0 means the
// update was rejected (bad key or rate limit), which surfaces as an error.
func (c *Client) WritePrediction(ctx context.Context, fields map[string]string) (int, error) {
	form := url.Values{}
	form.Set("api_key", c.writeAPIKey)
	for k, v := range fields {
		form.Set(k, v)
	}

	endpoint := c.BaseURL + "/update.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("building update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting prediction: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading update response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("update returned status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	// The body is either a bare entry id or a JSON object with entry_id.
	text := strings.TrimSpace(string(body))
	entryID, err := strconv.Atoi(text)
	if err != nil {
		var parsed struct {
			EntryID int `json:"entry_id"`
		}
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
			return 0, fmt.Errorf("unexpected update response %q", text)
		}
		entryID = parsed.EntryID
	}

	if entryID == 0 {
		return 0, fmt.Errorf("channel rejected the update (entry id 0)")
	}

	return entryID, nil
}
