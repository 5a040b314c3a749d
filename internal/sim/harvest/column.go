package harvest

import (
	"errors"
	"fmt"

	"scythecraft.gg/internal/sim/geom"
)

// ErrNoSupport reports a stacked plant with no block underneath its column.
// The swing skips the column; nothing is harvested.
var ErrNoSupport = errors.New("stacked plant has no support block")

// DiscoverColumn locates the full column of a stacked plant given any of its
// cells. It rays straight down from the struck cell to the first non-plant
// block (the support), then walks upward from the cell above the support,
// collecting every matching block bottom-first until the type changes or the
// column reaches maxY.
func DiscoverColumn(v View, struck geom.Vec3i, plantType string, maxY int) ([]geom.Vec3i, error) {
	support, ok := v.SupportBelow(struck, plantType)
	if !ok {
		return nil, fmt.Errorf("column at %v: %w", struck, ErrNoSupport)
	}

	var column []geom.Vec3i
	for pos := support.Above(); pos.Y <= maxY; pos = pos.Above() {
		if v.BlockAt(pos).Block != plantType {
			break
		}
		column = append(column, pos)
	}
	return column, nil
}
