// Package panel holds the three feature controllers. A controller gathers
// the user's parameters, validates them locally, issues the backend call
// through the gateway, and publishes the result into the session's result
// cache. Validation failures never reach the network.
package panel

import (
	"fmt"
	"sync"
	"time"

	"github.com/weathervibes/weathervibes/internal/gateway"
	"github.com/weathervibes/weathervibes/internal/logging"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// Notifier is the toast surface the controllers report through. The CLI
// renders these as colored lines; a GUI embedder would show toasts.
type Notifier interface {
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Warn(string)    {}
func (nopNotifier) Error(string)   {}

// NopNotifier discards every notification.
func NopNotifier() Notifier { return nopNotifier{} }

// controller carries the state shared by all three panels: the session
// stores, the gateway, and the at-most-one-in-flight submit guard.
type controller struct {
	session  *session.Session
	gw       gateway.Gateway
	notifier Notifier
	log      logging.Logger

	mu         sync.Mutex
	submitting bool
}

func newController(sess *session.Session, gw gateway.Gateway, notifier Notifier, log logging.Logger, name string) controller {
	if notifier == nil {
		notifier = NopNotifier()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return controller{
		session:  sess,
		gw:       gw,
		notifier: notifier,
		log:      log.Named(name),
	}
}

// beginSubmit transitions Idle -> Submitting. A second submit while one is
// pending is rejected rather than queued.
func (c *controller) beginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return errors.New(errors.CodeSubmitInFlight, "a request is already in flight")
	}
	c.submitting = true
	return nil
}

func (c *controller) endSubmit() {
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
}

// Submitting reports whether a request is in flight, for submit-control
// disablement in the UI layer.
func (c *controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// requireVibe fetches the selected vibe and checks it matches the panel's
// kind. The returned error is already user-phrased.
func (c *controller) requireVibe(want types.VibeKind) (*types.Vibe, error) {
	sel := c.session.Selection.Get()
	if sel.Vibe == nil {
		return nil, errors.New(errors.CodeVibeMissing, "select a vibe first")
	}
	if sel.Vibe.Kind != want {
		if want == types.VibeKindAdvisor {
			return nil, errors.Newf(errors.CodeVibeKindMismatch, "%s is not an advisor persona", sel.Vibe.Name)
		}
		return nil, errors.Newf(errors.CodeVibeKindMismatch, "%s is an advisor persona, pick a standard vibe", sel.Vibe.Name)
	}
	return sel.Vibe, nil
}

// requireTimeSpec rejects an empty time specification.
func requireTimeSpec(ts types.TimeSpec) error {
	if ts.IsZero() {
		return errors.New(errors.CodeTimeSpecMissing, "pick a month or a date range first")
	}
	return nil
}

// warnValidation surfaces a pre-flight rejection. No network call has been
// made and no state has changed.
func (c *controller) warnValidation(err error) error {
	c.notifier.Warn(errors.UserMessage(err))
	c.log.Debug("submit rejected", logging.String("reason", string(errors.GetCode(err))))
	return err
}

// monthOf resolves a time spec to a single month for endpoints that only
// accept one: the month itself in month mode, the start date's month in
// range mode.
func monthOf(ts types.TimeSpec) (int, error) {
	if ts.HasMonth() {
		return ts.Month, nil
	}
	start, err := time.Parse("2006-01-02", ts.StartDate)
	if err != nil {
		return 0, errors.Newf(errors.CodeValidation, "start date %q is not YYYY-MM-DD", ts.StartDate)
	}
	return int(start.Month()), nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
