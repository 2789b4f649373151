package feature

import "math"

// Scaler standardizes feature vectors to zero mean and unit variance using
// statistics captured at fit time. Fields are exported for gob serialization
// with the trained model snapshot.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-column mean and standard deviation over the
// training set. Columns with zero variance scale to zero.
func FitScaler(data [][]float64) *Scaler {
	if len(data) == 0 {
		return &Scaler{}
	}

	cols := len(data[0])
	mean := make([]float64, cols)
	std := make([]float64, cols)

	for _, row := range data {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(data))
	}

	for _, row := range data {
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(len(data)))
	}

	return &Scaler{Mean: mean, Std: std}
}

// Transform returns the standardized copy of v.
func (s *Scaler) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for j, x := range v {
		if j < len(s.Std) && s.Std[j] > 0 {
			out[j] = (x - s.Mean[j]) / s.Std[j]
		}
	}
	return out
}

// TransformAll standardizes every row of data.
func (s *Scaler) TransformAll(data [][]float64) [][]float64 {
	out := make([][]float64, len(data))
	for i, row := range data {
		out[i] = s.Transform(row)
	}
	return out
}
