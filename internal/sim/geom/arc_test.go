package geom

import "testing"

func TestArcCells_ZeroWidthSingleCell(t *testing.T) {
	cells, err := ArcCells(Vec3i{}, Vec3{X: 1}, 0, 1)
	if err != nil {
		t.Fatalf("arc: %v", err)
	}
	if len(cells) != 1 || cells[0] != (Vec3i{X: 1}) {
		t.Fatalf("want single forward cell, got %v", cells)
	}
}

func TestArcCells_ZeroRangeEmpty(t *testing.T) {
	cells, err := ArcCells(Vec3i{}, Vec3{Z: -1}, 120, 0)
	if err != nil {
		t.Fatalf("arc: %v", err)
	}
	if len(cells) != 0 {
		t.Fatalf("want no cells, got %v", cells)
	}
}

func TestArcCells_NoDuplicates(t *testing.T) {
	cells, err := ArcCells(Vec3i{X: 10, Z: -4}, Vec3{X: 0.7, Z: 0.3}, 90, 5)
	if err != nil {
		t.Fatalf("arc: %v", err)
	}
	seen := make(map[Vec3i]struct{}, len(cells))
	for _, c := range cells {
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate cell %v", c)
		}
		seen[c] = struct{}{}
		if c.Y != 0 {
			t.Fatalf("cell %v left the origin level", c)
		}
	}
	if len(cells) == 0 {
		t.Fatalf("expected cells")
	}
}

func TestArcCells_WideArcCoversSides(t *testing.T) {
	cells, err := ArcCells(Vec3i{}, Vec3{X: 1}, 180, 2)
	if err != nil {
		t.Fatalf("arc: %v", err)
	}
	want := map[Vec3i]bool{
		{X: 0, Z: 2}:  false, // +90 degrees at distance 2
		{X: 0, Z: -2}: false, // -90 degrees at distance 2
		{X: 2}:        false,
	}
	for _, c := range cells {
		if _, ok := want[c]; ok {
			want[c] = true
		}
	}
	for c, hit := range want {
		if !hit {
			t.Fatalf("cell %v not covered by 180 degree arc: %v", c, cells)
		}
	}
}

func TestArcCells_DegenerateFacing(t *testing.T) {
	if _, err := ArcCells(Vec3i{}, Vec3{Y: 1}, 60, 3); err != ErrDegenerateFacing {
		t.Fatalf("want ErrDegenerateFacing, got %v", err)
	}
}
