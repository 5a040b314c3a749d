package harvest

import "scythecraft.gg/internal/sim/geom"

// SweepBlocks enumerates the cells a swing covers: the arc at the actor's
// foot level, the same arc one level up, and the cell directly above the
// actor. Duplicates are suppressed within this single invocation only;
// results are never cached across swings.
func SweepBlocks(origin geom.Vec3i, facing geom.Vec3, widthDeg, rangeBlocks int) ([]geom.Vec3i, error) {
	base, err := geom.ArcCells(origin, facing, widthDeg, rangeBlocks)
	if err != nil {
		return nil, err
	}

	seen := make(map[geom.Vec3i]struct{}, 2*len(base)+1)
	cells := make([]geom.Vec3i, 0, 2*len(base)+1)
	add := func(c geom.Vec3i) {
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		cells = append(cells, c)
	}
	for _, c := range base {
		add(c)
		add(c.Above())
	}
	add(origin.Above())
	return cells, nil
}

// SweepEntityCells enumerates the cells checked for entities: the foot-level
// arc only. Entities are keyed by the cell their feet occupy, so the upper
// level is not sampled.
func SweepEntityCells(origin geom.Vec3i, facing geom.Vec3, widthDeg, rangeBlocks int) ([]geom.Vec3i, error) {
	return geom.ArcCells(origin, facing, widthDeg, rangeBlocks)
}
