// Package camera maps the wrapping arena onto the window, with pan and zoom.
package camera

import (
	"math"

	"github.com/pthm-cable/blobs/systems"
)

// DefaultMaxZoom is the closest zoom New allows.
const DefaultMaxZoom = 4.0

// Camera controls the viewport into the arena.
// Positions are in world units; the screen is in pixels.
type Camera struct {
	// Camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	ViewportW, ViewportH float64
	WorldW, WorldH       float64

	MinZoom, MaxZoom float64
}

// New creates a camera centered on the arena with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		X:       worldW / 2,
		Y:       worldH / 2,
		Zoom:    1,
		WorldW:  worldW,
		WorldH:  worldH,
		MaxZoom: DefaultMaxZoom,
	}
	c.Resize(viewportW, viewportH)
	return c
}

// WorldToScreen converts a world position to screen pixels, taking the
// shortest way around the wrap from the camera center.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	dx := delta(wx, c.X, c.WorldW)
	dy := delta(wy, c.Y, c.WorldH)
	return c.ViewportW/2 + dx*c.Zoom, c.ViewportH/2 + dy*c.Zoom
}

// ScreenToWorld converts screen pixels to a wrapped world position.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (sy - c.ViewportH/2) / c.Zoom
	return systems.Wrap(c.X+dx, c.Y+dy, c.WorldW, c.WorldH)
}

// IsVisible reports whether a disc at (wx, wy) may overlap the screen.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	dx := delta(wx, c.X, c.WorldW)
	dy := delta(wy, c.Y, c.WorldH)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// Ghosts returns the extra screen positions of a disc that straddles the
// visible edge of the wrap, so it shows on both sides. At most three.
func (c *Camera) Ghosts(wx, wy, radius float64, dst [][2]float64) [][2]float64 {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	dx := delta(wx, c.X, c.WorldW)
	dy := delta(wy, c.Y, c.WorldH)

	shiftX := edgeShift(dx, halfW, radius, c.WorldW)
	shiftY := edgeShift(dy, halfH, radius, c.WorldH)

	sx := c.ViewportW/2 + dx*c.Zoom
	sy := c.ViewportH/2 + dy*c.Zoom
	gx := c.ViewportW/2 + (dx+shiftX)*c.Zoom
	gy := c.ViewportH/2 + (dy+shiftY)*c.Zoom

	if shiftX != 0 {
		dst = append(dst, [2]float64{gx, sy})
	}
	if shiftY != 0 {
		dst = append(dst, [2]float64{sx, gy})
	}
	if shiftX != 0 && shiftY != 0 {
		dst = append(dst, [2]float64{gx, gy})
	}
	return dst
}

// edgeShift returns the world offset that brings a disc near one visible
// edge to the opposite edge, or 0.
func edgeShift(d, half, radius, size float64) float64 {
	switch {
	case d > half-radius && d < half+radius:
		return -size
	case d < -half+radius && d > -half-radius:
		return size
	}
	return 0
}

// Resize updates viewport dimensions and recalculates zoom constraints
// so the viewport never shows more than one copy of the arena.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = max(viewportW/c.WorldW, viewportH/c.WorldH)
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by a delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X, c.Y = systems.Wrap(c.X+dx/c.Zoom, c.Y+dy/c.Zoom, c.WorldW, c.WorldH)
}

// SetZoom sets the zoom level, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the arena center at 1:1.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.SetZoom(1)
}

// delta is the shortest signed distance from -> to around a wrap of size.
func delta(to, from, size float64) float64 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}
