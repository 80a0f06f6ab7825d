package mapview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/session"
	"github.com/weathervibes/weathervibes/pkg/errors"
	"github.com/weathervibes/weathervibes/pkg/types"
)

// fakeRenderer is an in-memory Renderer that lets tests drive native move
// events and observe commands.
type fakeRenderer struct {
	vp           types.Viewport
	moveEnd      func()
	setViewCalls int
	overlays     map[types.Feature][]Marker
	cleared      []types.Feature
}

func newFakeRenderer(vp types.Viewport) *fakeRenderer {
	return &fakeRenderer{vp: vp, overlays: map[types.Feature][]Marker{}}
}

func (f *fakeRenderer) Viewport() types.Viewport { return f.vp }

func (f *fakeRenderer) SetView(center types.LatLon, zoom float64) {
	f.setViewCalls++
	f.vp.Center = center
	f.vp.Zoom = zoom
	f.vp.Bounds = &types.Bounds{
		West: center.Lon - 1, South: center.Lat - 1,
		East: center.Lon + 1, North: center.Lat + 1,
	}
}

func (f *fakeRenderer) SetOverlay(feature types.Feature, markers []Marker) {
	f.overlays[feature] = markers
}

func (f *fakeRenderer) ClearOverlay(feature types.Feature) {
	delete(f.overlays, feature)
	f.cleared = append(f.cleared, feature)
}

func (f *fakeRenderer) OnMoveEnd(fn func()) { f.moveEnd = fn }

// pan simulates a user-initiated widget move followed by its move-end event.
func (f *fakeRenderer) pan(center types.LatLon, zoom float64) {
	f.vp.Center = center
	f.vp.Zoom = zoom
	f.vp.Bounds = &types.Bounds{
		West: center.Lon - 1, South: center.Lat - 1,
		East: center.Lon + 1, North: center.Lat + 1,
	}
	f.moveEnd()
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testMapConfig() config.MapConfig {
	return config.MapConfig{
		DefaultCenterLat: 12.9716,
		DefaultCenterLon: 77.5946,
		DefaultZoom:      10,
		CenterEpsilon:    1e-4,
		ZoomEpsilon:      0.1,
		GuardWindow:      300 * time.Millisecond,
	}
}

func newTestAdapter(t *testing.T) (*Adapter, *fakeRenderer, *session.Session, *fakeClock) {
	t.Helper()
	cfg := testMapConfig()
	sess := session.New(cfg, nil)
	r := newFakeRenderer(sess.Viewport.Get())
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}

	a, err := New(r, sess, cfg, clock, nil)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, r, sess, clock
}

func TestNew_NilRendererIsInitError(t *testing.T) {
	_, err := New(nil, nil, testMapConfig(), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeRendererInit))
}

func TestMoveEnd_BelowEpsilonIsNoOp(t *testing.T) {
	_, r, sess, _ := newTestAdapter(t)

	writes := 0
	sess.Viewport.Subscribe(func(types.Viewport) { writes++ })

	before := sess.Viewport.Get()
	r.pan(types.LatLon{
		Lat: before.Center.Lat + 5e-5,
		Lon: before.Center.Lon - 5e-5,
	}, before.Zoom+0.05)

	assert.Zero(t, writes, "sub-epsilon move must not touch the store")
	assert.Equal(t, before.Center, sess.Viewport.Get().Center)
}

func TestMoveEnd_UserMoveWritesStoreOnce(t *testing.T) {
	_, r, sess, _ := newTestAdapter(t)

	writes := 0
	sess.Viewport.Subscribe(func(types.Viewport) { writes++ })

	r.pan(types.LatLon{Lat: 13.2, Lon: 77.9}, 12)

	assert.Equal(t, 1, writes, "one user move, one store write")
	vp := sess.Viewport.Get()
	assert.Equal(t, 13.2, vp.Center.Lat)
	assert.Equal(t, 12.0, vp.Zoom)
	require.NotNil(t, vp.Bounds, "bounds follow the widget's report")
	assert.Equal(t, 0, r.setViewCalls, "the store write must not bounce back into the widget")
}

func TestMoveEnd_RepeatedEchoDoesNotOscillate(t *testing.T) {
	_, r, sess, _ := newTestAdapter(t)

	writes := 0
	sess.Viewport.Subscribe(func(types.Viewport) { writes++ })

	r.pan(types.LatLon{Lat: 13.2, Lon: 77.9}, 12)
	// The widget re-emitting move-end with unchanged state must be inert.
	r.moveEnd()
	r.moveEnd()

	assert.Equal(t, 1, writes)
	assert.Equal(t, 0, r.setViewCalls)
}

func TestRecenter_CommandsWidgetOnce(t *testing.T) {
	a, r, sess, _ := newTestAdapter(t)

	a.Recenter(types.LatLon{Lat: 28.6139, Lon: 77.2090}, 8)

	assert.Equal(t, 1, r.setViewCalls)
	assert.Equal(t, 28.6139, r.vp.Center.Lat)
	assert.Equal(t, 28.6139, sess.Viewport.Get().Center.Lat)
}

func TestRecenter_EchoInsideGuardWindowSuppressed(t *testing.T) {
	a, r, sess, _ := newTestAdapter(t)

	a.Recenter(types.LatLon{Lat: 28.6139, Lon: 77.2090}, 8)

	writes := 0
	sess.Viewport.Subscribe(func(types.Viewport) { writes++ })

	// Widget confirms the commanded move with its own move-end echo.
	r.moveEnd()

	assert.Equal(t, 1, r.setViewCalls, "echo must not command another move")
	assert.LessOrEqual(t, writes, 1, "echo may refresh bounds but must not rewrite center/zoom")
	assert.Equal(t, 28.6139, sess.Viewport.Get().Center.Lat)
	require.NotNil(t, sess.Viewport.Get().Bounds)
}

func TestRecenter_LateEchoAfterGuardWindow(t *testing.T) {
	a, r, sess, clock := newTestAdapter(t)

	a.Recenter(types.LatLon{Lat: 28.6139, Lon: 77.2090}, 8)
	clock.advance(time.Second)

	writes := 0
	sess.Viewport.Subscribe(func(types.Viewport) { writes++ })

	r.moveEnd()

	// Outside the window the move-end is processed normally; the widget
	// and store already agree, so nothing changes.
	assert.Zero(t, writes)
	assert.Equal(t, 1, r.setViewCalls)
}

func TestRecenter_ToCurrentPositionIsNoOp(t *testing.T) {
	a, r, sess, _ := newTestAdapter(t)

	vp := sess.Viewport.Get()
	a.Recenter(vp.Center, vp.Zoom)

	assert.Zero(t, r.setViewCalls, "recentering to the current view must not command the widget")
}

func TestResultChange_WhereOverlayReplaced(t *testing.T) {
	_, r, sess, _ := newTestAdapter(t)

	seq := sess.Results.Begin(types.FeatureWhere)
	resp := &types.WhereResponse{
		Scores: []types.LocationScore{
			{Lat: 12.9, Lon: 77.5, Score: 10},
			{Lat: 13.0, Lon: 77.6, Score: 30},
			{Lat: 13.1, Lon: 77.7, Score: 50},
		},
		MinScore: 10,
		MaxScore: 50,
	}
	sess.Results.Set(types.FeatureWhere, seq, types.NewWhereResult(types.WhereRequest{}, resp))

	markers := r.overlays[types.FeatureWhere]
	require.Len(t, markers, 3)
	assert.Equal(t, ColorRed, markers[0].Color)
	assert.Equal(t, ColorYellow, markers[1].Color)
	assert.Equal(t, ColorGreen, markers[2].Color)
}

func TestResultChange_OtherOverlaysUntouched(t *testing.T) {
	_, r, sess, _ := newTestAdapter(t)

	whereSeq := sess.Results.Begin(types.FeatureWhere)
	sess.Results.Set(types.FeatureWhere, whereSeq, types.NewWhereResult(types.WhereRequest{}, &types.WhereResponse{
		Scores: []types.LocationScore{{Lat: 1, Lon: 2, Score: 5}},
	}))

	whenSeq := sess.Results.Begin(types.FeatureWhen)
	sess.Results.Set(types.FeatureWhen, whenSeq, types.NewWhenResult(types.WhenRequest{}, &types.WhenResponse{
		Location:      types.LatLon{Lat: 12.9, Lon: 77.5},
		MonthlyScores: []types.MonthlyScore{{Month: 7, MonthName: "July", Score: 85}},
		BestMonth:     7,
	}))

	require.Len(t, r.overlays[types.FeatureWhere], 1, "where overlay survives a when update")
	whenMarkers := r.overlays[types.FeatureWhen]
	require.Len(t, whenMarkers, 1)
	assert.Equal(t, ColorGreen, whenMarkers[0].Color)
	assert.Equal(t, "July", whenMarkers[0].Label)
}

func TestResultChange_ClearRemovesOverlay(t *testing.T) {
	_, r, sess, _ := newTestAdapter(t)

	seq := sess.Results.Begin(types.FeatureAdvisor)
	sess.Results.Set(types.FeatureAdvisor, seq, types.NewAdvisorResult(types.AdvisorRequest{}, &types.AdvisorResponse{
		Location: types.LatLon{Lat: 12.9, Lon: 77.5},
		Metadata: map[string]interface{}{"advisor_name": "Fashion Stylist"},
	}))
	require.Len(t, r.overlays[types.FeatureAdvisor], 1)
	assert.Equal(t, "Fashion Stylist", r.overlays[types.FeatureAdvisor][0].Label)

	sess.Results.Clear(types.FeatureAdvisor)
	assert.Empty(t, r.overlays[types.FeatureAdvisor])
	assert.Contains(t, r.cleared, types.FeatureAdvisor)
}
