package panel

import (
	"context"
	"fmt"
	"time"

	"github.com/weathervibes/weathervibes/internal/gateway"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// WhenController drives the best-times feature for the location at the
// center of the current viewport. A month spec asks for a monthly profile
// over the year; a date range asks for a daily profile within it.
type WhenController struct {
	controller
	onCalendar func(*types.WhenResponse)
}

// NewWhen builds the when-panel controller.
func NewWhen(sess *session.Session, gw gateway.Gateway, notifier Notifier, log logging.Logger) *WhenController {
	return &WhenController{
		controller: newController(sess, gw, notifier, log, "panel.when"),
	}
}

// OnCalendar registers the view hook invoked after a successful submit,
// with the response to show. The calendar opens only on success.
func (w *WhenController) OnCalendar(fn func(*types.WhenResponse)) {
	w.onCalendar = fn
}

// Submit validates, calls the backend, publishes into the result cache,
// and opens the calendar view.
func (w *WhenController) Submit(ctx context.Context, ts types.TimeSpec) (*types.WhenResponse, error) {
	vibe, err := w.requireVibe(types.VibeKindStandard)
	if err != nil {
		return nil, w.warnValidation(err)
	}
	if err := requireTimeSpec(ts); err != nil {
		return nil, w.warnValidation(err)
	}
	if err := w.beginSubmit(); err != nil {
		return nil, w.warnValidation(err)
	}
	defer w.endSubmit()

	w.session.Selection.SetActiveFeature(types.FeatureWhen)

	center := w.session.Viewport.Get().Center
	req := types.WhenRequest{
		Vibe:         vibe.ID,
		Lat:          center.Lat,
		Lon:          center.Lon,
		AnalysisType: types.AnalysisMonthly,
	}
	if ts.HasRange() {
		req.StartDate = ts.StartDate
		req.EndDate = ts.EndDate
		req.AnalysisType = types.AnalysisDaily
	}

	seq := w.session.Results.Begin(types.FeatureWhen)
	resp, err := w.gw.When(ctx, req)
	if err != nil {
		w.notifier.Error(fmt.Sprintf("When analysis failed: %s", errors.UserMessage(err)))
		w.log.Warn("when submit failed", logging.Err(err))
		return nil, err
	}

	w.session.Results.Set(types.FeatureWhen, seq, types.NewWhenResult(req, resp))
	w.notifier.Success(fmt.Sprintf("%s: %s", vibe.Name, bestTimeSummary(resp)))
	if w.onCalendar != nil {
		w.onCalendar(resp)
	}
	return resp, nil
}

// bestTimeSummary phrases the response's best marker for the notification.
func bestTimeSummary(resp *types.WhenResponse) string {
	switch {
	case resp.BestDate != "":
		return fmt.Sprintf("best date is %s", resp.BestDate)
	case resp.BestMonth >= 1 && resp.BestMonth <= 12:
		return fmt.Sprintf("best month is %s", monthName(resp, resp.BestMonth))
	case len(resp.HourlyScores) > 0:
		return fmt.Sprintf("best hour is %02d:00", resp.BestHour)
	default:
		return "analysis complete"
	}
}

// monthName prefers the backend's own naming, falling back to English.
func monthName(resp *types.WhenResponse, month int) string {
	for _, m := range resp.MonthlyScores {
		if m.Month == month && m.MonthName != "" {
			return m.MonthName
		}
	}
	return time.Month(month).String()
}
