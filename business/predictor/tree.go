package predictor

import (
	"math/rand"
	"sort"
)

// Regression tree grown by variance reduction. Kept deliberately small;
// the ensemble carries the accuracy.

const (
	maxTreeDepth = 6
	minLeafSize  = 2
)

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

func growTree(xs [][]float64, ys []float64, depth int, rng *rand.Rand) *treeNode {
	if len(ys) < minLeafSize*2 || depth >= maxTreeDepth || uniform(ys) {
		return &treeNode{leaf: true, value: mean(ys)}
	}

	bestFeature, bestThreshold, bestScore := -1, 0.0, variance(ys)*float64(len(ys))

	// random subset of features per split keeps the bagged trees
	// decorrelated
	features := rng.Perm(len(xs[0]))
	if len(features) > 4 {
		features = features[:4]
	}

	for _, f := range features {
		for _, th := range candidateThresholds(xs, f) {
			var leftY, rightY []float64
			for i, x := range xs {
				if x[f] < th {
					leftY = append(leftY, ys[i])
				} else {
					rightY = append(rightY, ys[i])
				}
			}
			if len(leftY) < minLeafSize || len(rightY) < minLeafSize {
				continue
			}
			score := variance(leftY)*float64(len(leftY)) + variance(rightY)*float64(len(rightY))
			if score < bestScore {
				bestFeature, bestThreshold, bestScore = f, th, score
			}
		}
	}

	if bestFeature < 0 {
		return &treeNode{leaf: true, value: mean(ys)}
	}

	var leftX, rightX [][]float64
	var leftY, rightY []float64
	for i, x := range xs {
		if x[bestFeature] < bestThreshold {
			leftX = append(leftX, x)
			leftY = append(leftY, ys[i])
		} else {
			rightX = append(rightX, x)
			rightY = append(rightY, ys[i])
		}
	}
	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      growTree(leftX, leftY, depth+1, rng),
		right:     growTree(rightX, rightY, depth+1, rng),
	}
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// candidateThresholds returns midpoints between consecutive distinct
// values of one feature column.
func candidateThresholds(xs [][]float64, f int) []float64 {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		vals = append(vals, x[f])
	}
	sort.Float64s(vals)

	var out []float64
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1] {
			out = append(out, (vals[i]+vals[i-1])/2)
		}
	}
	return out
}

func mean(ys []float64) float64 {
	if len(ys) == 0 {
		return 0
	}
	sum := 0.0
	for _, y := range ys {
		sum += y
	}
	return sum / float64(len(ys))
}

func variance(ys []float64) float64 {
	if len(ys) < 2 {
		return 0
	}
	m := mean(ys)
	sum := 0.0
	for _, y := range ys {
		d := y - m
		sum += d * d
	}
	return sum / float64(len(ys))
}

func uniform(ys []float64) bool {
	for i := 1; i < len(ys); i++ {
		if ys[i] != ys[0] {
			return false
		}
	}
	return true
}
