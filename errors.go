package sonicpc

import "errors"

var (
	// ErrDegreeTooLarge is returned when a polynomial, or a requested
	// supported degree, exceeds what the key (or the SRS behind it) can
	// commit to.
	ErrDegreeTooLarge = errors.New("degree is too large")

	// ErrUnsupportedDegreeBound is returned when a degree bound is not part
	// of the supported set the key was derived with.
	ErrUnsupportedDegreeBound = errors.New("degree bound is not supported")

	// ErrUnsupportedLagrangeSize is returned when a Lagrange domain size is
	// not part of the supported set the key was derived with.
	ErrUnsupportedLagrangeSize = errors.New("lagrange domain size is not supported")

	// ErrMissingPolynomial is returned when a query set references a label
	// for which no polynomial or commitment was supplied.
	ErrMissingPolynomial = errors.New("query set references an unknown polynomial label")

	// ErrMissingEvaluation is returned when no claimed value was supplied
	// for a queried (label, point) pair.
	ErrMissingEvaluation = errors.New("missing evaluation for a queried point")

	// ErrInvalidLinearCombination is returned for an empty combination, or
	// one mixing a degree-bound-carrying term with further terms.
	ErrInvalidLinearCombination = errors.New("invalid linear combination")

	// ErrMissingRNG is returned when a polynomial declares a hiding bound
	// but no randomness source was supplied.
	ErrMissingRNG = errors.New("hiding commitment requested without a randomness source")

	// ErrMismatchedRandomness is returned when the randomness slice does not
	// line up one-to-one with the polynomial slice.
	ErrMismatchedRandomness = errors.New("number of randomness values does not match number of polynomials")

	// ErrMalformedCommitment is returned when a commitment declares a degree
	// bound but carries no shifted element, or vice versa.
	ErrMalformedCommitment = errors.New("malformed commitment")
)
