package resolve

import "github.com/akmonengine/stride/collider"

const (
	DefaultLandThreshold        = 0.06
	DefaultPenetrationAllowance = 0.01
	DefaultMinVerticalOverlap   = 0.02
	DefaultAboveTolerance       = 0.05
	DefaultSlopeGroundDistance  = 1.0
	DefaultWatchRadius          = 0.5
)

// Config tunes a single resolve call. Start from DefaultConfig and override
// the fields you need; a zero Config means zero tolerances.
type Config struct {
	// PrevBottomY is the actor bottom before this step's movement. When nil
	// the bottom of the box passed to the resolver is used.
	PrevBottomY *float64

	// LandThreshold is the largest gap between the actor bottom and a
	// surface top that still counts as landed
	LandThreshold float64
	// PenetrationAllowance is the overlap tolerated before correcting, and
	// the clearance kept under a surface hit from below
	PenetrationAllowance float64
	// MinVerticalOverlap is the Y overlap an obstacle needs to block a
	// horizontal axis
	MinVerticalOverlap float64
	// AboveTolerance excludes boxes whose top is above the actor's pre-move
	// top by more than this from being ground; it is also the ceiling probe margin
	AboveTolerance float64
	// SlopeGroundDistance is how close the actor bottom must be to a slope
	// surface for the slope to be a ground candidate
	SlopeGroundDistance float64

	// Self is skipped during every scan, so the actor's own collider can
	// stay in the list
	Self collider.Collider

	Watch  *Watch
	Tracer Tracer
	// Debug traces every step through slog.Default when Tracer is nil
	Debug bool
}

// DefaultConfig returns the standard character tolerances
func DefaultConfig() Config {
	return Config{
		LandThreshold:        DefaultLandThreshold,
		PenetrationAllowance: DefaultPenetrationAllowance,
		MinVerticalOverlap:   DefaultMinVerticalOverlap,
		AboveTolerance:       DefaultAboveTolerance,
		SlopeGroundDistance:  DefaultSlopeGroundDistance,
	}
}

// WithPrevBottomY returns a copy of cfg with PrevBottomY set to y
func (cfg Config) WithPrevBottomY(y float64) Config {
	cfg.PrevBottomY = &y
	return cfg
}

func (cfg Config) tracer() Tracer {
	if cfg.Tracer != nil {
		return cfg.Tracer
	}
	if cfg.Debug {
		return defaultLogTracer()
	}
	return nil
}
