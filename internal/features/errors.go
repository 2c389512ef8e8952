package features

import "errors"

// ErrInvalidFeatureInput marks numeric input the features cannot be derived
// from, such as an empty table or an AdjTempo mean of zero.
var ErrInvalidFeatureInput = errors.New("invalid feature input")
