package spatial

import (
	"sort"

	"github.com/golang/geo/s2"
)

// capSlack widens query caps so points sitting exactly on the radius survive the covering
const capSlack = 1e-6

// CellIndex provides radius queries over a fixed set of points using S2 cells.
// Cell level is chosen so that a cell is at least as wide as the query radius,
// which keeps each covering down to a handful of cells.
type CellIndex struct {
	points  []Point
	level   int
	cells   map[s2.CellID][]int // Cell ID → point indices
	coverer *s2.RegionCoverer
}

// NewCellIndex builds an index over points for queries of the given radius
func NewCellIndex(points []Point, radiusKm float64) *CellIndex {
	level := s2.MinWidthMetric.MaxLevel(KmToAngle(radiusKm).Radians())
	if level > s2.MaxLevel {
		level = s2.MaxLevel
	}

	idx := &CellIndex{
		points: points,
		level:  level,
		cells:  make(map[s2.CellID][]int, len(points)),
		coverer: &s2.RegionCoverer{
			MinLevel: level,
			MaxLevel: level,
			LevelMod: 1,
			MaxCells: 8,
		},
	}

	for i, p := range points {
		cellID := s2.CellIDFromLatLng(p.LatLng()).Parent(level)
		idx.cells[cellID] = append(idx.cells[cellID], i)
	}

	return idx
}

// Level returns the S2 cell level used for bucketing
func (idx *CellIndex) Level() int {
	return idx.level
}

// Within returns the indices of all points within radiusKm of points[i], the point itself
// included, in ascending order
func (idx *CellIndex) Within(i int, radiusKm float64) []int {
	center := idx.points[i]
	region := s2.CapFromCenterAngle(s2.PointFromLatLng(center.LatLng()), KmToAngle(radiusKm*(1+capSlack)))

	visited := make(map[s2.CellID]bool)
	var neighbors []int
	scan := func(cellID s2.CellID) {
		if visited[cellID] {
			return
		}
		visited[cellID] = true
		for _, j := range idx.cells[cellID] {
			if DistanceKm(center, idx.points[j]) <= radiusKm {
				neighbors = append(neighbors, j)
			}
		}
	}

	for _, cellID := range idx.coverer.Covering(region) {
		switch {
		case cellID.Level() > idx.level:
			scan(cellID.Parent(idx.level))
		case cellID.Level() < idx.level:
			end := cellID.ChildEndAtLevel(idx.level)
			for child := cellID.ChildBeginAtLevel(idx.level); child != end; child = child.Next() {
				scan(child)
			}
		default:
			scan(cellID)
		}
	}

	sort.Ints(neighbors)
	return neighbors
}
