package devstub

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/metrics"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// kmPerDegree approximates one degree of latitude.
const kmPerDegree = 111.0

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Server hosts the stub analysis endpoints.
type Server struct {
	cfg     config.StubConfig
	log     logging.Logger
	metrics *metrics.Metrics
	engine  *gin.Engine
	srv     *http.Server
}

// NewServer builds the stub with its route tree. Pass nil metrics to
// disable instrumentation.
func NewServer(cfg config.StubConfig, log logging.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	s := &Server{
		cfg:     cfg,
		log:     log.Named("devstub"),
		metrics: m,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.observe())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := engine.Group("/api")
	api.GET("/vibes", s.handleVibes)
	api.POST("/where", s.handleWhere)
	api.POST("/when", s.handleWhen)
	api.POST("/advisor", s.handleAdvisor)

	s.engine = engine
	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the route tree for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving until Stop or a listen error.
func (s *Server) Start() error {
	s.log.Info("stub backend listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	s.log.Info("stub backend shutting down")
	return s.srv.Shutdown(shutdownCtx)
}

// observe records per-route counters and latency.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if s.metrics == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.StubRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		s.metrics.StubDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// fail renders the FastAPI-style error body the client decodes.
func (s *Server) fail(c *gin.Context, err error) {
	s.log.Debug("request failed",
		logging.String("path", c.Request.URL.Path),
		logging.Err(err))
	c.JSON(errors.HTTPStatusForCode(errors.GetCode(err)), types.ErrorResponse{
		Detail: errors.UserMessage(err),
	})
}

func (s *Server) handleVibes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vibes": Vibes()})
}

func (s *Server) handleWhere(c *gin.Context) {
	var req types.WhereRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Wrap(err, errors.CodeBadRequest, "invalid request body"))
		return
	}

	vibe, err := vibeByID(req.Vibe)
	if err != nil {
		s.fail(c, err)
		return
	}
	if vibe.Kind == types.VibeKindAdvisor {
		s.fail(c, errors.Newf(errors.CodeBadRequest, "'%s' is an advisor; use /api/advisor", req.Vibe))
		return
	}
	month, err := resolveMonth(req.Month, req.StartDate)
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.RadiusKm <= 0 {
		s.fail(c, errors.New(errors.CodeBadRequest, "radius_km must be positive"))
		return
	}
	resolution := req.Resolution
	if resolution <= 0 {
		resolution = 5
	}

	scores := scoreGrid(vibe, req.CenterLat, req.CenterLon, req.RadiusKm, resolution, month)
	if len(scores) == 0 {
		s.fail(c, errors.New(errors.CodeNoData, "No valid data found in the specified area"))
		return
	}

	minScore, maxScore := scores[0].Score, scores[0].Score
	for _, sc := range scores[1:] {
		minScore = math.Min(minScore, sc.Score)
		maxScore = math.Max(maxScore, sc.Score)
	}

	c.JSON(http.StatusOK, types.WhereResponse{
		Vibe:     req.Vibe,
		Month:    month,
		Scores:   scores,
		MaxScore: maxScore,
		MinScore: minScore,
		Metadata: map[string]interface{}{
			"center":        map[string]float64{"lat": req.CenterLat, "lon": req.CenterLon},
			"radius_km":     req.RadiusKm,
			"resolution_km": resolution,
			"num_points":    len(scores),
			"vibe_name":     vibe.Name,
		},
	})
}

// scoreGrid walks a square lattice at the given resolution and keeps the
// points inside the radius, each scored against the synthetic climate.
func scoreGrid(vibe *vibeConfig, centerLat, centerLon, radiusKm, resolutionKm float64, month int) []types.LocationScore {
	latStep := resolutionKm / kmPerDegree
	lonScale := math.Cos(centerLat * math.Pi / 180)
	if math.Abs(lonScale) < 0.1 {
		lonScale = 0.1
	}
	lonStep := latStep / lonScale
	radiusDeg := radiusKm / kmPerDegree

	var scores []types.LocationScore
	for dLat := -radiusDeg; dLat <= radiusDeg; dLat += latStep {
		for dLon := -radiusDeg / lonScale; dLon <= radiusDeg/lonScale; dLon += lonStep {
			lat := centerLat + dLat
			lon := centerLon + dLon
			if distanceKm(centerLat, centerLon, lat, lon) > radiusKm {
				continue
			}
			score, err := vibe.vibeScore(Climate(lat, lon, month))
			if err != nil {
				continue
			}
			scores = append(scores, types.LocationScore{
				Lat:   round4(lat),
				Lon:   round4(lon),
				Score: round1(score),
			})
		}
	}
	return scores
}

// distanceKm is the equirectangular approximation, plenty for stub grids.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	meanLat := (lat1 + lat2) / 2 * math.Pi / 180
	dLat := (lat2 - lat1) * kmPerDegree
	dLon := (lon2 - lon1) * kmPerDegree * math.Cos(meanLat)
	return math.Hypot(dLat, dLon)
}

func (s *Server) handleWhen(c *gin.Context) {
	var req types.WhenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Wrap(err, errors.CodeBadRequest, "invalid request body"))
		return
	}

	vibe, err := vibeByID(req.Vibe)
	if err != nil {
		s.fail(c, err)
		return
	}
	if vibe.Kind == types.VibeKindAdvisor {
		s.fail(c, errors.Newf(errors.CodeBadRequest, "'%s' is an advisor; use /api/advisor", req.Vibe))
		return
	}

	analysis := req.AnalysisType
	if analysis == "" {
		analysis = types.AnalysisMonthly
	}

	resp := types.WhenResponse{
		Vibe:         req.Vibe,
		Location:     types.LatLon{Lat: req.Lat, Lon: req.Lon},
		AnalysisType: analysis,
		Metadata: map[string]interface{}{
			"vibe_name": vibe.Name,
		},
	}

	switch analysis {
	case types.AnalysisMonthly:
		s.monthlyAnalysis(vibe, &resp)
	case types.AnalysisDaily:
		if err := s.dailyAnalysis(vibe, &resp, req.StartDate, req.EndDate); err != nil {
			s.fail(c, err)
			return
		}
	case types.AnalysisHourly:
		s.hourlyAnalysis(vibe, &resp, req.StartDate)
	default:
		s.fail(c, errors.Newf(errors.CodeBadRequest, "unknown analysis_type %q", analysis))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) monthlyAnalysis(vibe *vibeConfig, resp *types.WhenResponse) {
	for month := 1; month <= 12; month++ {
		score, err := vibe.vibeScore(Climate(resp.Location.Lat, resp.Location.Lon, month))
		if err != nil {
			continue
		}
		resp.MonthlyScores = append(resp.MonthlyScores, types.MonthlyScore{
			Month:     month,
			MonthName: monthNames[month-1],
			Score:     round1(score),
		})
	}
	best, worst := resp.MonthlyScores[0], resp.MonthlyScores[0]
	for _, m := range resp.MonthlyScores[1:] {
		if m.Score > best.Score {
			best = m
		}
		if m.Score < worst.Score {
			worst = m
		}
	}
	resp.BestMonth = best.Month
	resp.WorstMonth = worst.Month
	resp.Metadata["num_months"] = len(resp.MonthlyScores)
}

func (s *Server) dailyAnalysis(vibe *vibeConfig, resp *types.WhenResponse, startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return errors.Newf(errors.CodeBadRequest, "start_date %q is not YYYY-MM-DD", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return errors.Newf(errors.CodeBadRequest, "end_date %q is not YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return errors.New(errors.CodeBadRequest, "end_date is before start_date")
	}

	lat, lon := resp.Location.Lat, resp.Location.Lon
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		score, scoreErr := vibe.vibeScore(Climate(lat, lon, int(day.Month())))
		if scoreErr != nil {
			continue
		}
		// Deterministic within-month variation so days differ.
		score = clamp(score+6*spatialJitter(lat+float64(day.Day()), lon), 0, 100)
		resp.DailyScores = append(resp.DailyScores, types.DailyScore{
			Date:  day.Format("2006-01-02"),
			Score: round1(score),
		})
	}

	best, worst := resp.DailyScores[0], resp.DailyScores[0]
	for _, d := range resp.DailyScores[1:] {
		if d.Score > best.Score {
			best = d
		}
		if d.Score < worst.Score {
			worst = d
		}
	}
	resp.BestDate = best.Date
	resp.WorstDate = worst.Date
	resp.Metadata["num_days"] = len(resp.DailyScores)
	return nil
}

func (s *Server) hourlyAnalysis(vibe *vibeConfig, resp *types.WhenResponse, startDate string) {
	month := int(time.Now().Month())
	if t, err := time.Parse("2006-01-02", startDate); err == nil {
		month = int(t.Month())
	}

	lat, lon := resp.Location.Lat, resp.Location.Lon
	base, _ := vibe.vibeScore(Climate(lat, lon, month))
	for hour := 0; hour < 24; hour++ {
		// Gentle diurnal curve peaking mid-afternoon.
		diurnal := 8 * math.Cos(2*math.Pi*float64(hour-15)/24)
		resp.HourlyScores = append(resp.HourlyScores, types.HourlyScore{
			Hour:  hour,
			Score: round1(clamp(base+diurnal, 0, 100)),
		})
	}

	best, worst := resp.HourlyScores[0], resp.HourlyScores[0]
	for _, h := range resp.HourlyScores[1:] {
		if h.Score > best.Score {
			best = h
		}
		if h.Score < worst.Score {
			worst = h
		}
	}
	resp.BestHour = best.Hour
	resp.WorstHour = worst.Hour
}

func (s *Server) handleAdvisor(c *gin.Context) {
	var req types.AdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.Wrap(err, errors.CodeBadRequest, "invalid request body"))
		return
	}

	fn, cfg, err := advisorByType(req.AdvisorType)
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		s.fail(c, errors.Newf(errors.CodeBadRequest, "month must be 1-12, got %d", req.Month))
		return
	}

	values := Climate(req.Lat, req.Lon, req.Month)
	recs := fn(values, req.Month)
	if len(recs) == 0 {
		recs = []types.Recommendation{{
			Item: "Weather Analysis Complete", Icon: "✅",
			Description: "Analysis completed successfully",
		}}
	}

	c.JSON(http.StatusOK, types.AdvisorResponse{
		AdvisorType:     req.AdvisorType,
		Location:        types.LatLon{Lat: req.Lat, Lon: req.Lon},
		Recommendations: recs,
		Metadata: map[string]interface{}{
			"month":        req.Month,
			"year":         req.Year,
			"advisor_name": cfg.Name,
		},
		RawData: rawData(values),
	})
}

func rawData(values map[string]float64) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = values[k]
	}
	return out
}

// resolveMonth accepts either an explicit month or a start date to take
// the month from.
func resolveMonth(month int, startDate string) (int, error) {
	if month >= 1 && month <= 12 {
		return month, nil
	}
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return 0, errors.Newf(errors.CodeBadRequest, "start_date %q is not YYYY-MM-DD", startDate)
		}
		return int(t.Month()), nil
	}
	return 0, errors.New(errors.CodeBadRequest, "month or start_date is required")
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
