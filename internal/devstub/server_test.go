package devstub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/metrics"
	"github.com/weathervibes/weathervibes/pkg/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(config.StubConfig{Mode: "test"}, nil, metrics.New())
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var er types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &er))
	return er.Detail
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVibesEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/vibes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Vibes []types.Vibe `json:"vibes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Vibes, 8)

	kinds := map[types.VibeKind]int{}
	for _, v := range body.Vibes {
		kinds[v.Kind]++
	}
	assert.Equal(t, 5, kinds[types.VibeKindStandard])
	assert.Equal(t, 3, kinds[types.VibeKindAdvisor])
}

func TestWhere_ScoredGrid(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/where", types.WhereRequest{
		Vibe:      "stargazing",
		Month:     7,
		CenterLat: 12.9716,
		CenterLon: 77.5946,
		RadiusKm:  30,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.WhereResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Scores)
	assert.LessOrEqual(t, resp.MinScore, resp.MaxScore)
	assert.Equal(t, "Stargazing", resp.Metadata["vibe_name"])

	for _, sc := range resp.Scores {
		assert.GreaterOrEqual(t, sc.Score, 0.0)
		assert.LessOrEqual(t, sc.Score, 100.0)
	}
}

func TestWhere_Deterministic(t *testing.T) {
	s := newTestServer(t)
	req := types.WhereRequest{
		Vibe: "beach_day", Month: 1,
		CenterLat: -33.86, CenterLon: 151.2, RadiusKm: 20,
	}
	first := doJSON(t, s, http.MethodPost, "/api/where", req)
	second := doJSON(t, s, http.MethodPost, "/api/where", req)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestWhere_UnknownVibe(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/where", types.WhereRequest{
		Vibe: "sandstorm", Month: 7, RadiusKm: 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeDetail(t, w), "sandstorm")
}

func TestWhere_AdvisorVibeRejected(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/where", types.WhereRequest{
		Vibe: "fashion", Month: 7, RadiusKm: 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeDetail(t, w), "/api/advisor")
}

func TestWhere_MissingMonth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/where", types.WhereRequest{
		Vibe: "stargazing", RadiusKm: 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhere_StartDateSuppliesMonth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/where", types.WhereRequest{
		Vibe: "stargazing", StartDate: "2026-11-01", EndDate: "2026-11-30",
		CenterLat: 12.97, CenterLon: 77.59, RadiusKm: 15,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.WhereResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Month)
}

func TestWhen_Monthly(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/when", types.WhenRequest{
		Vibe: "stargazing", Lat: 12.97, Lon: 77.59,
		AnalysisType: types.AnalysisMonthly,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.WhenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.MonthlyScores, 12)
	assert.Equal(t, "January", resp.MonthlyScores[0].MonthName)
	assert.GreaterOrEqual(t, resp.BestMonth, 1)
	assert.LessOrEqual(t, resp.BestMonth, 12)
	assert.NotEqual(t, 0, resp.WorstMonth)
}

func TestWhen_DefaultsToMonthly(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/when", types.WhenRequest{
		Vibe: "beach_day", Lat: -33.86, Lon: 151.2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.WhenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.AnalysisMonthly, resp.AnalysisType)
	assert.Len(t, resp.MonthlyScores, 12)
}

func TestWhen_Daily(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/when", types.WhenRequest{
		Vibe: "picnic_perfect", Lat: 12.97, Lon: 77.59,
		StartDate: "2026-07-01", EndDate: "2026-07-05",
		AnalysisType: types.AnalysisDaily,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.WhenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.DailyScores, 5)
	assert.NotEmpty(t, resp.BestDate)
	assert.NotEmpty(t, resp.WorstDate)
}

func TestWhen_DailyBadRange(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/when", types.WhenRequest{
		Vibe: "picnic_perfect", Lat: 12.97, Lon: 77.59,
		StartDate: "2026-07-10", EndDate: "2026-07-01",
		AnalysisType: types.AnalysisDaily,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhen_Hourly(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/when", types.WhenRequest{
		Vibe: "kite_flying", Lat: 12.97, Lon: 77.59,
		StartDate:    "2026-07-14",
		AnalysisType: types.AnalysisHourly,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.WhenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.HourlyScores, 24)
}

func TestAdvisor_Fashion(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/advisor", types.AdvisorRequest{
		AdvisorType: "fashion", Lat: 12.97, Lon: 77.59, Month: 7,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.AdvisorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Fashion Stylist", resp.Metadata["advisor_name"])
	assert.NotEmpty(t, resp.RawData)
	assert.Equal(t, "👕", resp.Recommendations[0].Icon)
	assert.NotEmpty(t, resp.Recommendations[0].Fabric, "outfit card carries a fabric hint")
}

func TestAdvisor_CropAlertsCarryRisk(t *testing.T) {
	s := newTestServer(t)
	// Deep winter at high latitude guarantees sub-zero minimums.
	w := doJSON(t, s, http.MethodPost, "/api/advisor", types.AdvisorRequest{
		AdvisorType: "crop", Lat: 65, Lon: 20, Month: 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.AdvisorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var frost *types.Recommendation
	for i := range resp.Recommendations {
		if resp.Recommendations[i].Icon == "⚠️" {
			frost = &resp.Recommendations[i]
			break
		}
	}
	require.NotNil(t, frost, "expected an alert card")
	assert.Equal(t, "high", frost.Risk)
	assert.Contains(t, frost.Description, "Priority: high")
}

func TestAdvisor_CropAndMood(t *testing.T) {
	s := newTestServer(t)
	for _, advisorType := range []string{"crop", "mood"} {
		w := doJSON(t, s, http.MethodPost, "/api/advisor", types.AdvisorRequest{
			AdvisorType: advisorType, Lat: 12.97, Lon: 77.59, Month: 12,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp types.AdvisorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Recommendations, advisorType)
	}
}

func TestAdvisor_UnknownType(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/advisor", types.AdvisorRequest{
		AdvisorType: "horoscope", Lat: 12.97, Lon: 77.59, Month: 7,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeDetail(t, w), "horoscope")
}

func TestAdvisor_MonthRequired(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/advisor", types.AdvisorRequest{
		AdvisorType: "fashion", Lat: 12.97, Lon: 77.59,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodGet, "/healthz", nil)

	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weathervibes_stub_requests_total")
}
