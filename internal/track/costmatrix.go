package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// distanceMatrix builds the square Euclidean cost matrix between predicted
// slot positions and a new observation batch. Entry (i, j) is the distance
// from observation i to the prediction for slot j, matching the
// row/column convention solveAssignment documents.
//
// The orchestrator pads both sides to equal length before building;
// unequal lengths here indicate a defect in that padding, so they panic
// rather than surface as a recoverable error. A zero-length input yields
// nil.
func distanceMatrix(predX, predY, obsX, obsY []float64) *mat.Dense {
	if len(predX) != len(predY) || len(obsX) != len(obsY) || len(predX) != len(obsX) {
		panic(fmt.Sprintf("track: distance matrix inputs disagree: pred %d/%d, obs %d/%d",
			len(predX), len(predY), len(obsX), len(obsY)))
	}
	dim := len(predX)
	if dim == 0 {
		return nil
	}

	m := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			dx := predX[j] - obsX[i]
			dy := predY[j] - obsY[i]
			m.Set(i, j, math.Hypot(dx, dy))
		}
	}
	return m
}
