package resolve

import (
	"context"
	"log/slog"
	"sync"

	"github.com/akmonengine/stride/actor"
	"github.com/akmonengine/stride/collider"
	"github.com/go-gl/mathgl/mgl64"
)

// Phase identifies the resolver step an Event was emitted from
type Phase uint8

const (
	PhaseAxisX Phase = iota
	PhaseAxisZ
	PhaseVertical
	PhaseCeiling
	PhaseWatch
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseAxisX:
		return "axis-x"
	case PhaseAxisZ:
		return "axis-z"
	case PhaseVertical:
		return "vertical"
	case PhaseCeiling:
		return "ceiling"
	case PhaseWatch:
		return "watch"
	case PhaseResult:
		return "result"
	}
	return "unknown"
}

// Landing is the outcome of the vertical phase
type Landing uint8

const (
	LandingNone Landing = iota
	LandingAirborne
	LandingSnap
	LandingPenetration
	LandingUnderside
)

func (l Landing) String() string {
	switch l {
	case LandingAirborne:
		return "airborne"
	case LandingSnap:
		return "snap"
	case LandingPenetration:
		return "penetration"
	case LandingUnderside:
		return "underside"
	}
	return "none"
}

// Event is a diagnostic snapshot of one resolver step
type Event struct {
	Phase Phase
	// Center is the working actor center after the step
	Center mgl64.Vec3
	// Swept is the actor box tested during the step
	Swept actor.AABB
	// Struck is the collider that blocked or carried the actor, if any
	Struck  collider.Collider
	Blocked bool
	Landing Landing
	// Result is only set for PhaseResult and PhaseWatch
	Result *Result
}

// Tracer receives resolver events. Implementations shared between
// goroutines must be safe for concurrent use.
type Tracer interface {
	OnStep(event Event)
}

// TracerFunc adapts a function to the Tracer interface
type TracerFunc func(event Event)

func (f TracerFunc) OnStep(event Event) { f(event) }

type multiTracer []Tracer

func (m multiTracer) OnStep(event Event) {
	for _, t := range m {
		t.OnStep(event)
	}
}

// Tracers fans events out to every non-nil tracer
func Tracers(tracers ...Tracer) Tracer {
	out := make(multiTracer, 0, len(tracers))
	for _, t := range tracers {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Watch is a world-space circle on the XZ plane. When a resolved center
// falls inside it, a PhaseWatch event is emitted and Break is called.
type Watch struct {
	X, Z float64
	// R is the radius, DefaultWatchRadius when <= 0
	R     float64
	Break func(event Event)
}

func (w *Watch) contains(center mgl64.Vec3) bool {
	r := w.R
	if r <= 0 {
		r = DefaultWatchRadius
	}
	dx := center.X() - w.X
	dz := center.Z() - w.Z
	return dx*dx+dz*dz <= r*r
}

// LogTracer writes every event to a slog.Logger
type LogTracer struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogTracer logs at debug level, so the logger's handler decides
// whether tracing is printed
func NewLogTracer(logger *slog.Logger) *LogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTracer{logger: logger, level: slog.LevelDebug}
}

// defaultLogTracer backs Config.Debug. It logs at info level through the
// current slog.Default(), so turning Debug on prints with a stock handler.
func defaultLogTracer() *LogTracer {
	return &LogTracer{
		logger: slog.Default().With("component", "resolve"),
		level:  slog.LevelInfo,
	}
}

func (l *LogTracer) OnStep(event Event) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, l.level) {
		return
	}

	attrs := []slog.Attr{
		slog.String("phase", event.Phase.String()),
		slog.Any("center", event.Center),
		slog.Any("swept_min", event.Swept.Min),
		slog.Any("swept_max", event.Swept.Max),
		slog.Bool("blocked", event.Blocked),
	}
	if event.Landing != LandingNone {
		attrs = append(attrs, slog.String("landing", event.Landing.String()))
	}
	if event.Struck != nil {
		b := event.Struck.Bounds()
		attrs = append(attrs, slog.Any("struck_min", b.Min), slog.Any("struck_max", b.Max))
	}
	if r := event.Result; r != nil {
		attrs = append(attrs,
			slog.Any("offset", r.Offset),
			slog.Bool("on_ground", r.OnGround),
			slog.Bool("on_slope", r.OnSlope),
			slog.Bool("collided", r.Collided),
		)
	}

	l.logger.LogAttrs(ctx, l.level, "resolve step", attrs...)
}

// Mirror keeps the last swept box and the last struck collider box, the
// data a renderer needs to draw debug wireframes
type Mirror struct {
	mu      sync.Mutex
	swept   actor.AABB
	struck  actor.AABB
	hasHit  bool
	updates int
}

func (m *Mirror) OnStep(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.swept = event.Swept
	if event.Struck != nil && event.Blocked {
		m.struck = event.Struck.Bounds()
		m.hasHit = true
	}
	m.updates++
}

// Swept returns the last swept actor box
func (m *Mirror) Swept() actor.AABB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swept
}

// Struck returns the box of the last collider that blocked the actor
func (m *Mirror) Struck() (actor.AABB, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.struck, m.hasHit
}

// Updates is the number of events mirrored so far
func (m *Mirror) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}
