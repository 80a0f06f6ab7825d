package panel

import (
	"context"
	"fmt"

	"github.com/weathervibes/weathervibes/internal/gateway"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// AdvisorController drives the persona-recommendation feature. The advisor
// endpoint takes a single month, so a date-range spec collapses to the
// month of its start date.
type AdvisorController struct {
	controller
}

// NewAdvisor builds the advisor-panel controller.
func NewAdvisor(sess *session.Session, gw gateway.Gateway, notifier Notifier, log logging.Logger) *AdvisorController {
	return &AdvisorController{
		controller: newController(sess, gw, notifier, log, "panel.advisor"),
	}
}

// Submit validates, calls the backend, and publishes the recommendation
// set into the result cache.
func (a *AdvisorController) Submit(ctx context.Context, ts types.TimeSpec) (*types.AdvisorResponse, error) {
	vibe, err := a.requireVibe(types.VibeKindAdvisor)
	if err != nil {
		return nil, a.warnValidation(err)
	}
	if err := requireTimeSpec(ts); err != nil {
		return nil, a.warnValidation(err)
	}
	month, err := monthOf(ts)
	if err != nil {
		return nil, a.warnValidation(err)
	}
	if err := a.beginSubmit(); err != nil {
		return nil, a.warnValidation(err)
	}
	defer a.endSubmit()

	a.session.Selection.SetActiveFeature(types.FeatureAdvisor)

	center := a.session.Viewport.Get().Center
	req := types.AdvisorRequest{
		AdvisorType: vibe.ID,
		Lat:         center.Lat,
		Lon:         center.Lon,
		Month:       month,
	}

	seq := a.session.Results.Begin(types.FeatureAdvisor)
	resp, err := a.gw.Advisor(ctx, req)
	if err != nil {
		a.notifier.Error(fmt.Sprintf("Advisor failed: %s", errors.UserMessage(err)))
		a.log.Warn("advisor submit failed", logging.Err(err))
		return nil, err
	}

	a.session.Results.Set(types.FeatureAdvisor, seq, types.NewAdvisorResult(req, resp))
	a.notifier.Success(fmt.Sprintf("%s: %s", advisorName(vibe, resp), plural(len(resp.Recommendations), "recommendation")))
	return resp, nil
}

// advisorName prefers the backend's display name over the local vibe name.
func advisorName(vibe *types.Vibe, resp *types.AdvisorResponse) string {
	if name, ok := resp.Metadata["advisor_name"].(string); ok && name != "" {
		return name
	}
	return vibe.Name
}
