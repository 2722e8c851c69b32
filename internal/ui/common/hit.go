package common

import zone "github.com/lrstanley/bubblezone"

// HitRegion represents a rectangular hit target in screen coordinates.
type HitRegion struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point is within the hit region bounds.
func (h HitRegion) Contains(x, y int) bool {
	return x >= h.X && x < h.X+h.Width && y >= h.Y && y < h.Y+h.Height
}

// ZoneRegion returns the bounds recorded for id by the last zone scan. ok is
// false when the manager is nil or has not seen the zone yet.
func ZoneRegion(z *zone.Manager, id string) (HitRegion, bool) {
	if z == nil {
		return HitRegion{}, false
	}
	info := z.Get(id)
	if info == nil || info.IsZero() {
		return HitRegion{}, false
	}
	return HitRegion{
		ID:     id,
		X:      info.StartX,
		Y:      info.StartY,
		Width:  info.EndX - info.StartX + 1,
		Height: info.EndY - info.StartY + 1,
	}, true
}
