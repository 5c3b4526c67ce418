package main

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBody(pop int64) *Body {
	return NewBody("Test", color.RGBA{10, 20, 30, 255}, Vec{-10, -45}, 30, SolidCircle, pop)
}

func TestBodyUpdateNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, speed := range []float64{0.5, 1, 50, 10000} {
		b := testBody(10)
		for i := 0; i < 500; i++ {
			b.Update(speed, rng)
			require.GreaterOrEqual(t, b.Population(), int64(0), "speed=%v step=%d", speed, i)
		}
	}
}

func TestBodyUpdateClampsLargeDeathSample(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := testBody(10)

	// deaths average five times the population at this speed
	b.Update(10000, rng)
	assert.Equal(t, int64(0), b.Population())

	b.Update(10000, rng)
	assert.Equal(t, int64(0), b.Population(), "an empty planet stays empty")
}

func TestBodyUpdateGrowsOnAverage(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := testBody(200000)
	for i := 0; i < 100; i++ {
		b.Update(1, rng)
	}
	// net rate is 0.0005 per frame, roughly +10000 after 100 frames
	assert.InDelta(t, 210000, b.Population(), 3000)
}

func TestNewBodyClampsPopulation(t *testing.T) {
	assert.Equal(t, int64(0), testBody(-5).Population())
}

func TestBodyContains(t *testing.T) {
	b := testBody(0)
	assert.True(t, b.Contains(b.Position))

	for _, eps := range []float64{1e-6, 0.5, 10} {
		for _, angle := range []float64{0, math.Pi / 3, math.Pi, 4} {
			r := b.Diameter/2 + eps
			p := b.Position.Add(Vec{r * math.Cos(angle), r * math.Sin(angle)})
			assert.False(t, b.Contains(p), "eps=%v angle=%v", eps, angle)
		}
	}

	assert.False(t, b.Contains(b.Position.Add(Vec{15, 0})), "the rim itself is outside")
	assert.True(t, b.Contains(b.Position.Add(Vec{14.9, 0})))
}

func TestBodyHandleClickToggles(t *testing.T) {
	b := testBody(0)
	t1 := time.Unix(100, 0)
	t2 := time.Unix(200, 0)

	assert.False(t, b.HandleClick(Vec{500, 500}, t1))
	assert.False(t, b.PanelOpen())
	assert.True(t, b.OpenedAt().IsZero())

	assert.True(t, b.HandleClick(b.Position, t1))
	assert.True(t, b.PanelOpen())
	assert.Equal(t, t1, b.OpenedAt())

	// closing keeps the previous stamp
	assert.True(t, b.HandleClick(b.Position, t2))
	assert.False(t, b.PanelOpen())
	assert.Equal(t, t1, b.OpenedAt())
}

func TestBodyHandleMove(t *testing.T) {
	b := testBody(0)
	b.HandleMove(b.Position)
	assert.True(t, b.Hovered())
	assert.False(t, b.PanelOpen(), "hover never opens the panel")

	b.HandleMove(Vec{1000, 1000})
	assert.False(t, b.Hovered())
}
