package types

// Wire DTOs for the three analysis endpoints. These mirror the backend's
// schema exactly; the client forwards user input verbatim and renders the
// response, so nothing here is derived or recomputed client-side.

// WhereRequest asks for the best locations for a vibe within a radius.
// Month and StartDate/EndDate are mutually exclusive time modes.
type WhereRequest struct {
	Vibe       string  `json:"vibe"`
	Month      int     `json:"month,omitempty"`
	StartDate  string  `json:"start_date,omitempty"`
	EndDate    string  `json:"end_date,omitempty"`
	Year       int     `json:"year,omitempty"`
	CenterLat  float64 `json:"center_lat"`
	CenterLon  float64 `json:"center_lon"`
	RadiusKm   float64 `json:"radius_km"`
	Resolution float64 `json:"resolution,omitempty"`
}

// LocationScore is a single scored grid point.
type LocationScore struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Score float64 `json:"score"`
}

// WhereResponse is the scored grid for a where query. Scores are meaningful
// only relative to one another within the same response, which is why
// MinScore/MaxScore accompany them.
type WhereResponse struct {
	Vibe     string                 `json:"vibe"`
	Month    int                    `json:"month,omitempty"`
	Scores   []LocationScore        `json:"scores"`
	MaxScore float64                `json:"max_score"`
	MinScore float64                `json:"min_score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// AnalysisType selects the granularity of a when query.
type AnalysisType string

const (
	AnalysisMonthly AnalysisType = "monthly"
	AnalysisDaily   AnalysisType = "daily"
	AnalysisHourly  AnalysisType = "hourly"
)

// WhenRequest asks for the best times for a vibe at a location.
type WhenRequest struct {
	Vibe         string       `json:"vibe"`
	Lat          float64      `json:"lat"`
	Lon          float64      `json:"lon"`
	StartDate    string       `json:"start_date,omitempty"`
	EndDate      string       `json:"end_date,omitempty"`
	Year         int          `json:"year,omitempty"`
	AnalysisType AnalysisType `json:"analysis_type,omitempty"`
}

// MonthlyScore is a single month's score on the absolute 0-100 scale.
type MonthlyScore struct {
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Score     float64 `json:"score"`
}

// DailyScore is a single day's score.
type DailyScore struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Score float64 `json:"score"`
}

// HourlyScore is a single hour's score.
type HourlyScore struct {
	Hour  int     `json:"hour"`
	Score float64 `json:"score"`
}

// WhenResponse carries time scores at one granularity plus the best/worst
// markers for that granularity.
type WhenResponse struct {
	Vibe          string                 `json:"vibe"`
	Location      LatLon                 `json:"location"`
	MonthlyScores []MonthlyScore         `json:"monthly_scores,omitempty"`
	DailyScores   []DailyScore           `json:"daily_scores,omitempty"`
	HourlyScores  []HourlyScore          `json:"hourly_scores,omitempty"`
	BestMonth     int                    `json:"best_month,omitempty"`
	WorstMonth    int                    `json:"worst_month,omitempty"`
	BestDate      string                 `json:"best_date,omitempty"`
	WorstDate     string                 `json:"worst_date,omitempty"`
	BestHour      int                    `json:"best_hour,omitempty"`
	WorstHour     int                    `json:"worst_hour,omitempty"`
	AnalysisType  AnalysisType           `json:"analysis_type"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// AdvisorRequest asks a persona for recommendations at a location and month.
type AdvisorRequest struct {
	AdvisorType string  `json:"advisor_type"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Month       int     `json:"month"`
	Year        int     `json:"year,omitempty"`
}

// Recommendation is a single advisor card: an item, its display icon, and
// an optional description. Fabric carries the fashion advisor's material
// hint for clothing items; Risk carries the crop advisor's severity
// ("low", "medium", "high") on alert cards.
type Recommendation struct {
	Item        string `json:"item"`
	Icon        string `json:"icon"`
	Description string `json:"description,omitempty"`
	Fabric      string `json:"fabric,omitempty"`
	Risk        string `json:"risk,omitempty"`
}

// AdvisorResponse is a persona's recommendation set. RawData carries the
// underlying climate values for the detail view.
type AdvisorResponse struct {
	AdvisorType     string                 `json:"advisor_type"`
	Location        LatLon                 `json:"location"`
	Recommendations []Recommendation       `json:"recommendations"`
	Metadata        map[string]interface{} `json:"metadata"`
	RawData         map[string]interface{} `json:"raw_data,omitempty"`
}

// ErrorResponse is the backend's failure body. Absence of Detail falls back
// to a generic message on the client.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
