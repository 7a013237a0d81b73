package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optics-bench/pkg/core"
	"github.com/df07/go-optics-bench/pkg/geometry"
	"github.com/df07/go-optics-bench/pkg/log"
)

const (
	// boundsTolerance pads the surface bound test against round-off in the hit point
	boundsTolerance = 1e-9
	parallelLimit   = 1e-12
)

var _ Optic = (*FlatMirror)(nil)

// FlatMirrorConfig holds the construction parameters of a FlatMirror
type FlatMirrorConfig struct {
	Name      string
	Length    float64 // Full in-plane length along the deflection plane
	Width     float64 // Full in-plane width across the deflection plane
	Thickness float64 // Body depth behind the reflective face

	Center    core.Vec3 // Nominal center of the reflective face
	Normal    core.Vec3 // Nominal face normal
	NominalIn core.Vec3 // Nominal incident beam, +Z when zero

	Orientation       Orientation
	RotationJitter    Range // Radians
	TranslationJitter Range

	Seed        int64
	SurfaceOnly bool // Treat the body as transparent outside the active face
	Verbose     bool
	Logger      log.Logger
}

// FlatMirror is a finite rectangular mirror whose alignment is perturbed on
// every transport by jitter drawn from its own random stream.
type FlatMirror struct {
	name        string
	center      core.Vec3
	normal      core.Vec3
	halfLength  float64
	halfWidth   float64
	thickness   float64
	nominalIn   core.Vec3
	nominalOut  core.Vec3
	orientation Orientation

	rotationJitter    Range
	translationJitter Range
	surfaceOnly       bool

	verbose bool
	logger  log.Logger
	sampler *core.RandomSampler
}

// NewFlatMirror validates the configuration and creates the mirror
func NewFlatMirror(cfg FlatMirrorConfig) (*FlatMirror, error) {
	if !cfg.Orientation.valid() {
		return nil, fmt.Errorf("mirror %s: %w: %v", cfg.Name, ErrInvalidOrientation, cfg.Orientation)
	}
	if err := cfg.RotationJitter.Validate(); err != nil {
		return nil, fmt.Errorf("mirror %s rotation jitter: %w", cfg.Name, err)
	}
	if err := cfg.TranslationJitter.Validate(); err != nil {
		return nil, fmt.Errorf("mirror %s translation jitter: %w", cfg.Name, err)
	}
	if !(cfg.Length > 0 && cfg.Width > 0 && cfg.Thickness >= 0) {
		return nil, fmt.Errorf("mirror %s size %gx%gx%g: %w", cfg.Name, cfg.Length, cfg.Width, cfg.Thickness, ErrInvalidGeometry)
	}

	normal, err := cfg.Normal.Normalized()
	if err != nil {
		return nil, fmt.Errorf("mirror %s normal: %w", cfg.Name, err)
	}

	nominalIn := cfg.NominalIn
	if nominalIn.LengthSquared() == 0 {
		nominalIn = core.NewVec3(0, 0, 1)
	}
	nominalIn, err = nominalIn.Normalized()
	if err != nil {
		return nil, fmt.Errorf("mirror %s nominal input: %w", cfg.Name, err)
	}
	nominalOut, err := nominalIn.Reflect(normal)
	if err != nil {
		return nil, fmt.Errorf("mirror %s nominal output: %w", cfg.Name, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	m := &FlatMirror{
		name:              cfg.Name,
		center:            cfg.Center,
		normal:            normal,
		halfLength:        cfg.Length * 0.5,
		halfWidth:         cfg.Width * 0.5,
		thickness:         cfg.Thickness,
		nominalIn:         nominalIn,
		nominalOut:        nominalOut,
		orientation:       cfg.Orientation,
		rotationJitter:    cfg.RotationJitter,
		translationJitter: cfg.TranslationJitter,
		surfaceOnly:       cfg.SurfaceOnly,
		verbose:           cfg.Verbose,
		logger:            logger.With(log.String("element", cfg.Name)),
		sampler:           core.NewRandomSampler(cfg.Seed),
	}

	// The face frame must exist for the nominal normal; jitter keeps the
	// angle to the rotation axis, so it exists for every perturbed normal too
	if _, err := m.lengthAxis(normal); err != nil {
		return nil, fmt.Errorf("mirror %s normal %v for orientation %v: %w", cfg.Name, normal, cfg.Orientation, err)
	}

	return m, nil
}

// NewFlatMirrorAtAngle derives the nominal normal from a grazing incidence
// angle (radians) relative to cfg.NominalIn, replacing cfg.Normal. The sign of
// the angle selects which side the beam is deflected to.
func NewFlatMirrorAtAngle(cfg FlatMirrorConfig, incidenceAngle float64) (*FlatMirror, error) {
	in := cfg.NominalIn
	if in.LengthSquared() == 0 {
		in = core.NewVec3(0, 0, 1)
	}
	if in.Z == 0 {
		return nil, fmt.Errorf("mirror %s nominal input %v: %w", cfg.Name, in, core.ErrDivisionByZero)
	}

	sign := -1.0
	if incidenceAngle > 0 {
		sign = 1.0
	}

	if cfg.Orientation.Horizontal() {
		a := incidenceAngle + math.Atan(in.X/in.Z)
		cfg.Normal = core.NewVec3(math.Cos(a)*sign, 0, -math.Abs(math.Sin(a)))
	} else {
		a := incidenceAngle + math.Atan(in.Y/in.Z)
		cfg.Normal = core.NewVec3(0, math.Cos(a)*sign, -math.Abs(math.Sin(a)))
	}
	cfg.NominalIn = in

	return NewFlatMirror(cfg)
}

func (m *FlatMirror) Kind() Kind   { return KindFlatMirror }
func (m *FlatMirror) Name() string { return m.name }

// Center returns the nominal face center
func (m *FlatMirror) Center() core.Vec3 { return m.center }

// Normal returns the nominal unit face normal
func (m *FlatMirror) Normal() core.Vec3 { return m.normal }

// NominalIn returns the unit nominal incident direction
func (m *FlatMirror) NominalIn() core.Vec3 { return m.nominalIn }

// NominalOut returns the nominal incident direction reflected off the nominal face
func (m *FlatMirror) NominalOut() core.Vec3 { return m.nominalOut }

func (m *FlatMirror) Orientation() Orientation { return m.orientation }
func (m *FlatMirror) SurfaceOnly() bool        { return m.surfaceOnly }

// Reset rewinds the jitter stream to its construction seed
func (m *FlatMirror) Reset() {
	m.sampler.Reset()
}

// Transport samples a fresh alignment error, intersects the ray with the
// perturbed face plane and reflects it when the hit lies on the active face.
// Misses pass straight through in surface-only mode; otherwise the ray is
// tested against the mirror body and stopped when it runs into it.
func (m *FlatMirror) Transport(in core.Ray) (core.Ray, error) {
	rotation := m.sampler.Uniform(m.rotationJitter.Lo, m.rotationJitter.Hi)
	translation := m.sampler.Uniform(m.translationJitter.Lo, m.translationJitter.Hi)
	normal, center := m.perturb(rotation, translation)

	hit, err := geometry.IntersectPlane(in, center, normal)
	if err != nil {
		return core.Ray{}, fmt.Errorf("mirror %s: %w", m.name, err)
	}

	delta := m.halfSpan(normal)
	bounds := m.surfaceBounds(center, delta)

	if m.verbose {
		m.logger.Debug("perturbed mirror",
			log.Vec("normal", normal),
			log.Float64("rotation", rotation),
			log.Vec("center", center),
			log.Float64("translation", translation),
			log.Vec("hit", hit),
			log.Vec("delta", delta),
			log.Vec("min", bounds.Min),
			log.Vec("max", bounds.Max),
		)
	}

	if bounds.Contains(hit, boundsTolerance) {
		direction, err := in.Direction.Reflect(normal)
		if err != nil {
			return core.Ray{}, fmt.Errorf("mirror %s: %w", m.name, err)
		}
		if m.verbose {
			m.logger.Debug("hit mirror surface", log.Vec("direction", direction))
		}
		return core.Ray{Start: hit, Direction: direction}, nil
	}

	passed := core.Ray{Start: hit, Direction: in.Direction}
	if m.surfaceOnly {
		return passed, nil
	}

	body, err := m.body(center, normal)
	if err != nil {
		return core.Ray{}, fmt.Errorf("mirror %s body: %w", m.name, err)
	}
	if t, blocked := body.HitForward(in); blocked {
		if m.verbose {
			m.logger.Debug("blocked by mirror body", log.Vec("entry", in.At(t)))
		}
		return core.Ray{Start: in.At(t), Direction: in.Direction, Stopped: true}, nil
	}

	return passed, nil
}

// perturb applies the sampled rotation and translation according to orientation
func (m *FlatMirror) perturb(rotation, translation float64) (core.Vec3, core.Vec3) {
	sign := m.orientation.sign()
	center := m.center

	if m.orientation.Horizontal() {
		center.X += sign * translation
		return m.normal.RotateY(sign * rotation), center
	}
	center.Y += sign * translation
	return m.normal.RotateX(sign * rotation), center
}

// halfSpan is the in-plane half-length vector of the face: the normal turned
// a quarter turn about the orientation's rotation axis, scaled by halfLength
func (m *FlatMirror) halfSpan(normal core.Vec3) core.Vec3 {
	if m.orientation.Horizontal() {
		return normal.RotateY(-math.Pi * 0.5).Multiply(m.halfLength)
	}
	return normal.RotateX(-math.Pi * 0.5).Multiply(m.halfLength)
}

// surfaceBounds is the axis-aligned box the hit point must fall in
func (m *FlatMirror) surfaceBounds(center, delta core.Vec3) core.AABB {
	if m.orientation.Horizontal() {
		return core.NewAABBFromCenter(center, core.NewVec3(delta.X, m.halfWidth, delta.Z))
	}
	return core.NewAABBFromCenter(center, core.NewVec3(m.halfWidth, delta.Y, delta.Z))
}

// lengthAxis is the unit in-plane axis along the face length, made exactly
// perpendicular to normal
func (m *FlatMirror) lengthAxis(normal core.Vec3) (core.Vec3, error) {
	span := m.halfSpan(normal)
	return span.Subtract(normal.Multiply(span.Dot(normal))).Normalized()
}

// body is the mirror substrate: the face rectangle extruded by thickness
// behind the reflective side
func (m *FlatMirror) body(center, normal core.Vec3) (*geometry.OBB, error) {
	u, err := m.lengthAxis(normal)
	if err != nil {
		return nil, err
	}
	v := normal.Cross(u)
	halfDepth := m.thickness * 0.5

	return geometry.NewOBB(
		center.Subtract(normal.Multiply(halfDepth)),
		u, v, normal,
		core.NewVec3(m.halfLength, m.halfWidth, halfDepth),
	)
}
