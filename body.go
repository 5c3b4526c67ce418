package main

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

const (
	birthRate = 0.001
	deathRate = 0.0005
)

// Vec is a point or offset in world space.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Len() float64  { return math.Hypot(v.X, v.Y) }

// Appearance selects how a body is drawn.
type Appearance int

const (
	SolidCircle Appearance = iota
)

func (a Appearance) String() string {
	switch a {
	case SolidCircle:
		return "solid-circle"
	default:
		return "unknown"
	}
}

// Body is a planet. It never references other bodies or the world.
type Body struct {
	Name       string
	Color      color.RGBA
	Position   Vec
	Diameter   float64
	Appearance Appearance

	population int64
	panelOpen  bool
	hovered    bool
	openedAt   time.Time // zero until the panel is first opened
}

func NewBody(name string, col color.RGBA, pos Vec, diameter float64, look Appearance, population int64) *Body {
	return &Body{
		Name:       name,
		Color:      col,
		Position:   pos,
		Diameter:   diameter,
		Appearance: look,
		population: max(population, 0),
	}
}

func (b *Body) Population() int64   { return b.population }
func (b *Body) PanelOpen() bool     { return b.panelOpen }
func (b *Body) Hovered() bool       { return b.hovered }
func (b *Body) OpenedAt() time.Time { return b.openedAt }

func (b *Body) ClosePanel() {
	b.panelOpen = false
}

// Update advances the population by one frame. Deaths are sampled on the
// population after births and the result is clamped at zero.
func (b *Body) Update(speed float64, rng *rand.Rand) {
	b.population += poissonSample(rng, float64(b.population)*birthRate*speed)
	deaths := poissonSample(rng, float64(b.population)*deathRate*speed)
	b.population = max(b.population-deaths, 0)
}

// Contains reports whether p lies strictly inside the body's disc.
func (b *Body) Contains(p Vec) bool {
	return p.Sub(b.Position).Len() < b.Diameter*0.5
}

// HandleClick toggles the info panel when p hits the body. Opening the
// panel stamps it with now.
func (b *Body) HandleClick(p Vec, now time.Time) bool {
	if !b.Contains(p) {
		return false
	}
	b.panelOpen = !b.panelOpen
	if b.panelOpen {
		b.openedAt = now
	}
	return true
}

func (b *Body) HandleMove(p Vec) {
	b.hovered = b.Contains(p)
}
