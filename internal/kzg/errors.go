package kzg

import "errors"

var (
	ErrInvalidPolynomialSize = errors.New("invalid polynomial size (larger than SRS or == 0)")
	ErrMinSRSSize            = errors.New("minimum srs degree is 1")
	ErrInvalidNumProofs      = errors.New("number of proofs is not the same as the number of claims")
)
