package panel

import (
	"context"
	"fmt"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/gateway"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// WhereController drives the best-locations feature. The search is centered
// on the current viewport; radius and resolution come from configuration
// and are not user-exposed.
type WhereController struct {
	controller
	cfg config.WhereConfig
}

// NewWhere builds the where-panel controller.
func NewWhere(sess *session.Session, gw gateway.Gateway, cfg config.WhereConfig, notifier Notifier, log logging.Logger) *WhereController {
	return &WhereController{
		controller: newController(sess, gw, notifier, log, "panel.where"),
		cfg:        cfg,
	}
}

// Submit validates the current selection and time spec, calls the backend,
// and publishes the scored grid into the result cache. A validation or
// backend failure leaves the cache untouched.
func (w *WhereController) Submit(ctx context.Context, ts types.TimeSpec) (*types.WhereResponse, error) {
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

	w.session.Selection.SetActiveFeature(types.FeatureWhere)

	center := w.session.Viewport.Get().Center
	req := types.WhereRequest{
		Vibe:       vibe.ID,
		Month:      ts.Month,
		StartDate:  ts.StartDate,
		EndDate:    ts.EndDate,
		CenterLat:  center.Lat,
		CenterLon:  center.Lon,
		RadiusKm:   w.cfg.RadiusKm,
		Resolution: w.cfg.ResolutionKm,
	}

	seq := w.session.Results.Begin(types.FeatureWhere)
	resp, err := w.gw.Where(ctx, req)
	if err != nil {
		w.notifier.Error(fmt.Sprintf("Where analysis failed: %s", errors.UserMessage(err)))
		w.log.Warn("where submit failed", logging.Err(err))
		return nil, err
	}

	w.session.Results.Set(types.FeatureWhere, seq, types.NewWhereResult(req, resp))
	w.notifier.Success(fmt.Sprintf("%s: scored %s around %s", vibe.Name, plural(len(resp.Scores), "location"), center.String()))
	return resp, nil
}
