package categorizer

import (
	"math"
	"math/rand"
	"sort"
)

// Isolation forest over presentation price rows. Anomalous rows take
// fewer random splits to isolate, which shows up as a short average
// path length across the trees.

const (
	forestTrees      = 50
	forestSampleSize = 64
)

type isoNode struct {
	splitCol int
	splitVal float64
	left     *isoNode
	right    *isoNode
	size     int
}

type isoForest struct {
	trees  []*isoNode
	sample int
}

func buildForest(rows [][]float64, seed int64) *isoForest {
	rng := rand.New(rand.NewSource(seed))
	sample := forestSampleSize
	if sample > len(rows) {
		sample = len(rows)
	}
	depthCap := int(math.Ceil(math.Log2(float64(sample)))) + 1

	f := &isoForest{sample: sample}
	for t := 0; t < forestTrees; t++ {
		idx := rng.Perm(len(rows))[:sample]
		subset := make([][]float64, sample)
		for i, j := range idx {
			subset[i] = rows[j]
		}
		f.trees = append(f.trees, buildIsoTree(subset, 0, depthCap, rng))
	}
	return f
}

func buildIsoTree(rows [][]float64, depth, depthCap int, rng *rand.Rand) *isoNode {
	if len(rows) <= 1 || depth >= depthCap {
		return &isoNode{size: len(rows)}
	}
	col := rng.Intn(len(rows[0]))
	lo, hi := rows[0][col], rows[0][col]
	for _, row := range rows {
		if row[col] < lo {
			lo = row[col]
		}
		if row[col] > hi {
			hi = row[col]
		}
	}
	if lo == hi {
		return &isoNode{size: len(rows)}
	}
	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, row := range rows {
		if row[col] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	return &isoNode{
		splitCol: col,
		splitVal: split,
		size:     len(rows),
		left:     buildIsoTree(left, depth+1, depthCap, rng),
		right:    buildIsoTree(right, depth+1, depthCap, rng),
	}
}

func pathLength(n *isoNode, row []float64, depth float64) float64 {
	if n.left == nil && n.right == nil {
		return depth + avgUnsuccessfulSearch(n.size)
	}
	if row[n.splitCol] < n.splitVal {
		return pathLength(n.left, row, depth+1)
	}
	return pathLength(n.right, row, depth+1)
}

// avgUnsuccessfulSearch is c(n), the BST adjustment for leaves that
// still hold several points.
func avgUnsuccessfulSearch(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}

// score maps a row to (0,1]; values near 1 are anomalous.
func (f *isoForest) score(row []float64) float64 {
	sum := 0.0
	for _, tree := range f.trees {
		sum += pathLength(tree, row, 0)
	}
	avg := sum / float64(len(f.trees))
	c := avgUnsuccessfulSearch(f.sample)
	if c == 0 {
		return 0.5
	}
	return math.Pow(2, -avg/c)
}

// outliers flags the top contamination share of rows by anomaly score.
func (f *isoForest) outliers(rows [][]float64, contamination float64) []bool {
	flags := make([]bool, len(rows))
	if len(rows) == 0 || contamination <= 0 {
		return flags
	}
	scores := make([]float64, len(rows))
	for i, row := range rows {
		scores[i] = f.score(row)
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	cut := int(math.Ceil(float64(len(rows)) * (1 - contamination)))
	if cut >= len(sorted) {
		cut = len(sorted) - 1
	}
	threshold := sorted[cut]
	for i, s := range scores {
		flags[i] = s >= threshold && s > 0.5
	}
	return flags
}
