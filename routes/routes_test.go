package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/config"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/pipeline"
	"github.com/pbhargavreddy-5/Infection-risk-prediction-v2/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type feedStub struct {
	feeds []types.FeedEntry
}

func (f *feedStub) FetchFeeds(ctx context.Context) (*types.FeedResponse, error) {
	return &types.FeedResponse{Feeds: f.feeds}, nil
}

func (f *feedStub) ChannelURL() string { return "https://thingspeak.com/channels/123456" }

// modelStub labels every reading as cluster 2.
type modelStub struct{}

func (modelStub) Predict(X *mat.Dense) ([]int, error) {
	rows, _ := X.Dims()
	labels := make([]int, rows)
	for i := range labels {
		labels[i] = 2
	}
	return labels, nil
}

func testRouter(feeds []types.FeedEntry) *gin.Engine {
	cfg := &config.Config{
		ReadChannelID: "123456",
		Policy:        types.PolicyMode,
		ResultCount:   20,
		RunSchedule:   config.DefaultRunSchedule,
	}
	runner := &pipeline.Runner{
		Fetcher: &feedStub{feeds: feeds},
		Model:   modelStub{},
		Tiers:   types.TierMap{0: "Low Risk", 1: "Medium Risk", 2: "High Risk"},
		Policy:  types.PolicyMode,
	}
	return SetupRouter(runner, nil, cfg)
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testFeeds() []types.FeedEntry {
	return []types.FeedEntry{
		{CreatedAt: "2026-01-05T09:45:00Z", Field1: "22.9", Field2: "58", Field3: "1009", Field4: "11", Field5: "420", Field6: "0.6"},
		{CreatedAt: "2026-01-05T10:00:00Z", Field1: "23.5", Field2: "61", Field3: "1008.2", Field4: "12.7", Field5: "415", Field6: "0.8"},
	}
}

func TestBannerRoute(t *testing.T) {
	w := doRequest(testRouter(nil), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Infection Risk Prediction")
}

func TestHealthRoute(t *testing.T) {
	w := doRequest(testRouter(nil), http.MethodGet, "/api/risk/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "mode", body["policy"])
	assert.Equal(t, false, body["historyEnabled"])
	assert.Equal(t, false, body["emailEnabled"])
}

func TestTriggerRunRoute(t *testing.T) {
	w := doRequest(testRouter(testFeeds()), http.MethodPost, "/api/risk/run")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string          `json:"message"`
		Run     types.RunRecord `json:"run"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Run complete", body.Message)
	assert.Equal(t, "High Risk", body.Run.DominantTier)
	assert.Equal(t, 2, body.Run.Window)
}

func TestTriggerRunRouteNoData(t *testing.T) {
	w := doRequest(testRouter(nil), http.MethodPost, "/api/risk/run")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No data found in the feed window")
}

func TestPreviewRoute(t *testing.T) {
	w := doRequest(testRouter(testFeeds()), http.MethodGet, "/api/risk/preview")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Subject   string            `json:"subject"`
		Body      string            `json:"body"`
		Writeback map[string]string `json:"writeback"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Infection Risk Update – High Risk", body.Subject)
	assert.Contains(t, body.Body, "Predicted Risk: High Risk")
	assert.Equal(t, "2", body.Writeback["field7"])
}

func TestRecentRunsRouteUnavailable(t *testing.T) {
	// No Firestore wired in this router.
	w := doRequest(testRouter(nil), http.MethodGet, "/api/risk/runs")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	w := doRequest(testRouter(nil), http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "infection_risk_last_dominant_label")
}
