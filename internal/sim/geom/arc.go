package geom

import (
	"errors"
	"math"
)

// ErrDegenerateFacing reports a facing vector with no horizontal component;
// the cone has no defined axis and nothing can be swept.
var ErrDegenerateFacing = errors.New("degenerate horizontal facing")

// ArcCells enumerates the grid cells covered by a horizontal cone of
// widthDeg degrees centered on facing, at whole-block distances
// 1..rangeBlocks from origin, all at the origin's vertical level.
//
// Sampling is one ray per whole degree of arc, so nearby cells are hit from
// several angles; duplicates are removed within this call, preserving
// first-seen order (near to far). widthDeg 0 degenerates to a straight line,
// rangeBlocks 0 to an empty result.
func ArcCells(origin Vec3i, facing Vec3, widthDeg, rangeBlocks int) ([]Vec3i, error) {
	forward, ok := facing.NormalizedXZ()
	if !ok {
		return nil, ErrDegenerateFacing
	}

	half := widthDeg / 2
	seen := make(map[Vec3i]struct{})
	var cells []Vec3i
	for dist := 1; dist <= rangeBlocks; dist++ {
		for angle := -half; angle <= half; angle++ {
			off := forward.RotateY(float64(angle)).Scale(float64(dist))
			cell := Vec3i{
				X: origin.X + int(math.Round(off.X)),
				Y: origin.Y,
				Z: origin.Z + int(math.Round(off.Z)),
			}
			if _, dup := seen[cell]; dup {
				continue
			}
			seen[cell] = struct{}{}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}
