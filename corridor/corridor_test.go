package corridor_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/terracost/corridor"
	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
	"github.com/katalvlaran/terracost/pathfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noData = -9999.0

// flatSetup builds a flat 3×5 field and the two endpoint surfaces plus the
// best path cost between (1,0) and (1,4).
func flatSetup(t *testing.T) (fromStart, fromEnd *pathfind.Surface, best float64) {
	t.Helper()
	elev := [][]float64{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}
	g, err := costgrid.NewGrid(elev, noData, costgrid.SimpleTransform(0, 30, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultTobler())
	require.NoError(t, err)

	ctx := context.Background()
	start, end := costgrid.Cell{Row: 1, Col: 0}, costgrid.Cell{Row: 1, Col: 4}
	fromStart, err = pathfind.Dijkstra(ctx, f, start)
	require.NoError(t, err)
	fromEnd, err = pathfind.Dijkstra(ctx, f, end)
	require.NoError(t, err)
	res, err := pathfind.AStar(ctx, f, start, end)
	require.NoError(t, err)

	return fromStart, fromEnd, res.Cost
}

// TestMask_ZeroPercent: with pct = 0 the corridor is exactly the middle row,
// the only cells lying on an optimal 4-connected path.
func TestMask_ZeroPercent(t *testing.T) {
	fromStart, fromEnd, best := flatSetup(t)

	mask, err := corridor.Mask(fromStart, fromEnd, best, 0)
	require.NoError(t, err)
	require.Len(t, mask, 15)

	for i, in := range mask {
		row := i / 5
		assert.Equal(t, row == 1, in, "cell %d", i)
	}
}

// TestMask_MonotoneInPercent: growing pct never shrinks the corridor, and a
// large enough pct swallows the whole reachable grid.
func TestMask_MonotoneInPercent(t *testing.T) {
	fromStart, fromEnd, best := flatSetup(t)

	m0, err := corridor.Mask(fromStart, fromEnd, best, 0)
	require.NoError(t, err)
	m50, err := corridor.Mask(fromStart, fromEnd, best, 50)
	require.NoError(t, err)
	m200, err := corridor.Mask(fromStart, fromEnd, best, 200)
	require.NoError(t, err)

	for i := range m0 {
		if m0[i] {
			assert.True(t, m50[i], "pct=50 lost cell %d", i)
		}
		if m50[i] {
			assert.True(t, m200[i], "pct=200 lost cell %d", i)
		}
	}
	for i := range m200 {
		assert.True(t, m200[i], "pct=200 must cover the whole flat grid")
	}
}

// TestMask_Validation exercises the argument sentinels.
func TestMask_Validation(t *testing.T) {
	fromStart, fromEnd, best := flatSetup(t)
	other := &pathfind.Surface{Rows: 2, Cols: 2, Dist: make([]float64, 4), Prev: make([]int32, 4)}

	_, err := corridor.Mask(nil, fromEnd, best, 0)
	assert.ErrorIs(t, err, corridor.ErrNilSurface)

	_, err = corridor.Mask(fromStart, other, best, 0)
	assert.ErrorIs(t, err, corridor.ErrShapeMismatch)

	_, err = corridor.Mask(fromStart, fromEnd, best, -1)
	assert.ErrorIs(t, err, corridor.ErrBadPercent)

	_, err = corridor.Mask(fromStart, fromEnd, math.Inf(1), 0)
	assert.ErrorIs(t, err, corridor.ErrBadCost)
}

// TestLevels covers the default minute schedule, plateau coarsening,
// deduplication, the cap and the empty cases.
func TestLevels(t *testing.T) {
	assert.Equal(t, []float64{900, 1800, 2700, 3600}, corridor.Levels(3600))

	assert.Equal(t, []float64{900, 1800, 2700, 3600, 5400, 7200}, corridor.Levels(7200))

	assert.Equal(t, []float64{900, 1800}, corridor.Levels(7200, corridor.WithMaxLevels(2)))

	assert.Equal(t, []float64{10, 20, 30, 60}, corridor.Levels(80,
		corridor.WithFineStep(10), corridor.WithPlateau(30), corridor.WithCoarseStep(30)))

	assert.Nil(t, corridor.Levels(0))
	assert.Nil(t, corridor.Levels(math.Inf(1)))

	assert.Panics(t, func() { corridor.WithFineStep(0)(&corridor.LevelOptions{}) })
	assert.Panics(t, func() { corridor.WithMaxLevels(0)(&corridor.LevelOptions{}) })
}

// gradientSurface fabricates a surface whose cost grows 10 per column.
func gradientSurface(rows, cols int) *pathfind.Surface {
	s := &pathfind.Surface{
		Rows: rows,
		Cols: cols,
		Dist: make([]float64, rows*cols),
		Prev: make([]int32, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s.Dist[r*cols+c] = float64(c) * 10
			s.Prev[r*cols+c] = -1
		}
	}

	return s
}

// TestTrace_Gradient: on a column gradient the level-25 contour is a single
// vertical polyline midway between the 20 and 30 columns.
func TestTrace_Gradient(t *testing.T) {
	elev := make([][]float64, 4)
	for r := range elev {
		elev[r] = make([]float64, 5)
	}
	grid, err := costgrid.NewGrid(elev, noData, costgrid.SimpleTransform(0, 40, 10, 10))
	require.NoError(t, err)
	surf := gradientSurface(4, 5)

	iso, err := corridor.Trace(surf, grid, []float64{25})
	require.NoError(t, err)
	require.Len(t, iso, 1)
	assert.Equal(t, 25.0, iso[0].Level)
	require.Len(t, iso[0].Lines, 1, "adjacent squares must stitch into one line")

	line := iso[0].Lines[0]
	require.Len(t, line, 4, "one vertex per sample row")
	for _, p := range line {
		assert.InDelta(t, 30.0, p.X, 1e-9, "crossing sits midway between the 20 and 30 columns")
	}
}

// TestTrace_SkipsUnreachable: squares touching an unreachable sample produce
// no geometry, so the contour stops at the hole.
func TestTrace_SkipsUnreachable(t *testing.T) {
	elev := make([][]float64, 4)
	for r := range elev {
		elev[r] = make([]float64, 5)
	}
	grid, err := costgrid.NewGrid(elev, noData, costgrid.SimpleTransform(0, 40, 10, 10))
	require.NoError(t, err)

	surf := gradientSurface(4, 5)
	surf.Dist[surf.Index(1, 2)] = math.Inf(1)

	iso, err := corridor.Trace(surf, grid, []float64{25})
	require.NoError(t, err)
	require.Len(t, iso[0].Lines, 1)
	assert.Len(t, iso[0].Lines[0], 2, "only the square clear of the hole contributes")
}

// TestTrace_Validation exercises the argument sentinels.
func TestTrace_Validation(t *testing.T) {
	elev := [][]float64{{0, 0}, {0, 0}}
	grid, err := costgrid.NewGrid(elev, noData, costgrid.SimpleTransform(0, 20, 10, 10))
	require.NoError(t, err)

	_, err = corridor.Trace(nil, grid, []float64{1})
	assert.ErrorIs(t, err, corridor.ErrNilSurface)

	_, err = corridor.Trace(gradientSurface(3, 3), grid, []float64{1})
	assert.ErrorIs(t, err, corridor.ErrShapeMismatch)
}
