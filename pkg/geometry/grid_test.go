package geometry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-deckgen/pkg/geometry"
)

func TestDistributeIntoRows_NonIncreasingAndComplete(t *testing.T) {
	for count := 1; count <= 16; count++ {
		rows := geometry.DistributeIntoRows(count, geometry.DefaultMaxRows, geometry.DefaultPerRowCap)
		sum := 0
		for i, n := range rows {
			sum += n
			if i > 0 && n > rows[i-1] {
				t.Fatalf("count %d: row %d (%d) larger than previous (%d): %v", count, i, n, rows[i-1], rows)
			}
		}
		if sum != count {
			t.Fatalf("count %d: rows sum to %d: %v", count, sum, rows)
		}
	}
}

func TestDistributeIntoRows_Scenarios(t *testing.T) {
	cases := []struct {
		count int
		want  []int
	}{
		{count: 1, want: []int{1}},
		{count: 4, want: []int{4}},
		{count: 5, want: []int{3, 2}},
		{count: 7, want: []int{4, 3}},
		{count: 11, want: []int{4, 4, 3}},
		{count: 13, want: []int{4, 3, 3, 3}},
		{count: 16, want: []int{4, 4, 4, 4}},
		{count: 40, want: []int{4, 4, 4, 4}},
	}
	for _, tc := range cases {
		got := geometry.DistributeIntoRows(tc.count, 4, 4)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("count %d mismatch (-want +got):\n%s", tc.count, diff)
		}
	}
}

func TestDistributeIntoRows_DegenerateInput(t *testing.T) {
	if rows := geometry.DistributeIntoRows(0, 4, 4); rows != nil {
		t.Fatalf("expected nil rows for zero count, got %v", rows)
	}
	if rows := geometry.DistributeIntoRows(-3, 4, 4); rows != nil {
		t.Fatalf("expected nil rows for negative count, got %v", rows)
	}
}

func TestDistributeIntoRows_OverflowDropsItems(t *testing.T) {
	for _, count := range []int{17, 20, 100} {
		rows := geometry.DistributeIntoRows(count, 4, 4)
		cells := geometry.GridCells(rows, geometry.R(0, 0, 800, 400), 10)
		if len(cells) != 16 {
			t.Fatalf("count %d: expected 16 cells, got %d", count, len(cells))
		}
	}
}

func TestCellRect_WidthsAndPositions(t *testing.T) {
	rows := []int{3, 2}
	first := geometry.CellRect(0, 2, rows, 320, 210, 10)
	want := geometry.R(220, 0, 100, 100)
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("cell (0,2) mismatch (-want +got):\n%s", diff)
	}

	second := geometry.CellRect(1, 1, rows, 320, 210, 10)
	want = geometry.R(165, 110, 155, 100)
	if diff := cmp.Diff(want, second); diff != "" {
		t.Fatalf("cell (1,1) mismatch (-want +got):\n%s", diff)
	}

	if got := geometry.CellRect(2, 0, rows, 320, 210, 10); got != (geometry.Rect{}) {
		t.Fatalf("out of range row should be empty, got %+v", got)
	}
}

func TestGridCells_StayInsideArea(t *testing.T) {
	area := geometry.R(40, 100, 880, 400)
	for count := 1; count <= 16; count++ {
		rows := geometry.DistributeIntoRows(count, 4, 4)
		for i, cell := range geometry.GridCells(rows, area, 12) {
			grown := geometry.R(area.X-1e-9, area.Y-1e-9, area.W+2e-9, area.H+2e-9)
			if !grown.Contains(cell) {
				t.Fatalf("count %d: cell %d %+v escapes area %+v", count, i, cell, area)
			}
		}
	}
}
