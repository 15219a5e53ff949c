package object

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/draw"
)

// Rocket tuning. ApexVelocity is a fixed heuristic for "the rocket is slowing
// down"; it is not derived from the launch velocity.
const (
	RocketGravity = 0.1  // Added to VY every tick
	ApexVelocity  = -1.0 // Explode on the first tick VY reaches this
	TrailLength   = 10   // Positions kept for the trail stroke
	LaunchDepth   = 10   // Launch height below the bottom edge

	// apexTolerance absorbs float drift from summing RocketGravity many times.
	apexTolerance = 1e-9

	trailAlpha = 0.8
	trailWidth = 2.0
)

// RocketState is a rocket's position in its lifecycle.
type RocketState int

const (
	RocketAscending RocketState = iota // Climbing and trailing sparks
	RocketExploded                     // Burst emitted; removed this frame
	RocketOffscreen                    // Fell below the viewport before exploding
)

// String returns the state name.
func (s RocketState) String() string {
	switch s {
	case RocketAscending:
		return "ascending"
	case RocketExploded:
		return "exploded"
	case RocketOffscreen:
		return "offscreen"
	default:
		return "unknown"
	}
}

// Trail is a fixed-size FIFO of recent positions. Pushing onto a full trail
// evicts the oldest entry.
type Trail struct {
	points [TrailLength]draw.Point
	start  int // Index of the oldest point
	n      int
}

// Push appends p, evicting the oldest point when full.
func (t *Trail) Push(p draw.Point) {
	if t.n < TrailLength {
		t.points[(t.start+t.n)%TrailLength] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % TrailLength
}

// Len returns the number of stored points.
func (t *Trail) Len() int {
	return t.n
}

// AppendPoints appends the stored points, oldest first, to dst.
func (t *Trail) AppendPoints(dst []draw.Point) []draw.Point {
	for i := 0; i < t.n; i++ {
		dst = append(dst, t.points[(t.start+i)%TrailLength])
	}
	return dst
}

// Rocket is a launched projectile that trails sparks and bursts at its apex.
type Rocket struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick
	Color  colorful.Color
	Trail  Trail

	// BurstCount is the number of particles emitted by the explosion.
	BurstCount int

	state    RocketState
	exploded bool
}

// NewRocket launches a rocket from just below the bottom edge of view.
func NewRocket(view Screen, s Sampler, palette Palette) *Rocket {
	w := float64(view.Width)
	return &Rocket{
		X:     s.Float(w*0.1, w*0.9),
		Y:     float64(view.Height) + LaunchDepth,
		VX:    s.Float(-0.5, 0.5),
		VY:    s.Float(-7, -9),
		Color: palette.Pick(s),
	}
}

// State returns the rocket's lifecycle state.
func (r *Rocket) State() RocketState {
	return r.state
}

// Exploded reports whether the rocket has burst.
func (r *Rocket) Exploded() bool {
	return r.exploded
}

// Update advances the rocket one tick. Returns true once it has exploded or
// left the viewport.
func (r *Rocket) Update(ctx UpdateContext) bool {
	if r.state != RocketAscending {
		return true
	}

	r.Trail.Push(draw.Point{X: r.X, Y: r.Y})

	r.X += r.VX
	r.Y += r.VY
	r.VY += RocketGravity

	// Falling back past the launch line means the apex was never seen.
	if r.VY > 0 && r.Y > float64(ctx.Screen.Height)+LaunchDepth {
		r.state = RocketOffscreen
		return true
	}

	color := r.Color
	EmitTrail(r.X, r.Y, &color, ctx.Profiles.TrailSpark, ctx)

	if r.VY >= ApexVelocity-apexTolerance && !r.exploded {
		r.explode(ctx)
		return true
	}

	return false
}

// explode emits the radial burst. It runs at most once per rocket.
func (r *Rocket) explode(ctx UpdateContext) {
	r.exploded = true
	r.state = RocketExploded
	color := r.Color
	r.BurstCount = EmitBurst(r.X, r.Y, &color, ctx.Profiles.RocketBurst, ctx)
}

// Draw strokes the trail. It does not mutate the rocket, so several viewers
// may draw the same scene concurrently.
func (r *Rocket) Draw(s draw.Surface) {
	if r.Trail.Len() < 2 {
		return
	}
	var buf [TrailLength]draw.Point
	s.StrokePolyline(r.Trail.AppendPoints(buf[:0]), r.Color, trailAlpha, trailWidth)
}
