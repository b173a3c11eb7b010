package sonicpc

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"sort"
	"time"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/crate-crypto/go-sonic-pc/internal/kzg"
	"github.com/crate-crypto/go-sonic-pc/internal/utils"
	"github.com/crate-crypto/go-sonic-pc/logger"
)

// UniversalParams is the structured reference string. It is generated once
// per maximum degree, is immutable, and every key derived from it must
// respect its degree cap.
type UniversalParams struct {
	srs       *kzg.SRS
	maxDegree uint64
}

// MaxDegree is the largest polynomial degree any key derived from these
// parameters can support.
func (p *UniversalParams) MaxDegree() uint64 {
	return p.maxDegree
}

// LoadSRS produces universal parameters supporting any polynomial of degree
// up to `maxDegree`.
//
// The toxic waste is derived from fixed seeds, so the output is
// deterministic. This stands in for the output of a setup ceremony and must
// never be used in production.
func LoadSRS(maxDegree uint64) (*UniversalParams, error) {
	log := logger.Logger().With().Str("component", "srs").Logger()
	start := time.Now()

	srs, err := kzg.NewSRSInsecure(maxDegree, insecureScalar("beta"), insecureScalar("gamma"))
	if err != nil {
		return nil, err
	}

	log.Debug().Uint64("maxDegree", maxDegree).Dur("took", time.Since(start)).Msg("loaded insecure srs")

	return &UniversalParams{srs: srs, maxDegree: maxDegree}, nil
}

func insecureScalar(label string) *big.Int {
	digest := sha256.Sum256([]byte("go-sonic-pc insecure setup: " + label))
	return new(big.Int).SetBytes(digest[:])
}

// DegreeInfo declares what a specific use needs from the SRS. The sets are
// membership-only; no iteration order is assumed over them.
type DegreeInfo struct {
	// MaxDegree caps the degree of committable polynomials. It must not
	// exceed the SRS maximum.
	MaxDegree uint64

	// MaxFFTSize caps the FFT sizes the consumer will use. It is carried
	// for consumers of the key and does not affect trimming.
	MaxFFTSize uint64

	// DegreeBounds enables degree-bound commitments for exactly these
	// bounds. Nil disables them.
	DegreeBounds map[uint64]struct{}

	// HidingBound is the largest blinding polynomial degree commitments may
	// request. Zero disables hiding.
	HidingBound uint64

	// LagrangeSizes enables direct Lagrange-basis commitment for exactly
	// these power-of-two domain sizes. Nil disables them.
	LagrangeSizes map[uint64]struct{}
}

// UniversalProverKey is the SRS specialized to one DegreeInfo. It is
// read-only after derivation and shared across commit and open calls.
type UniversalProverKey struct {
	ck kzg.CommitKey

	// shiftedPowers[d] = PowersOfG[N-d:], the basis committing to
	// x^(N-d) * p(x) for a degree bound d.
	shiftedPowers map[uint64][]bls12381.G1Affine

	// lagrangeBases[size] is the G1 Lagrange basis over the radix-2 domain
	// of that size.
	lagrangeBases map[uint64][]bls12381.G1Affine

	maxDegree       uint64
	supportedDegree uint64
	hidingBound     uint64
}

// MaxDegree returns the SRS degree cap N that shifted commitments are
// anchored to.
func (pk *UniversalProverKey) MaxDegree() uint64 { return pk.maxDegree }

// SupportedDegree is the largest degree this key commits to.
func (pk *UniversalProverKey) SupportedDegree() uint64 { return pk.supportedDegree }

// HidingBound is the largest blinding degree this key supports.
func (pk *UniversalProverKey) HidingBound() uint64 { return pk.hidingBound }

// EnforcedDegreeBounds returns the degree bounds this key can certify, in
// ascending order.
func (pk *UniversalProverKey) EnforcedDegreeBounds() []uint64 {
	bounds := make([]uint64, 0, len(pk.shiftedPowers))
	for bound := range pk.shiftedPowers {
		bounds = append(bounds, bound)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	return bounds
}

// SupportedLagrangeSizes returns the Lagrange domain sizes this key can
// commit against, in ascending order.
func (pk *UniversalProverKey) SupportedLagrangeSizes() []uint64 {
	sizes := make([]uint64, 0, len(pk.lagrangeBases))
	for size := range pk.lagrangeBases {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

// UniversalVerifierKey holds the pairing-check constants. It is independent
// of any DegreeInfo beyond the global degree cap.
type UniversalVerifierKey struct {
	G      bls12381.G1Affine
	GammaG bls12381.G1Affine
	H      bls12381.G2Affine
	BetaH  bls12381.G2Affine

	// MaxDegree is the SRS cap N; declared degree bounds beyond it cannot
	// have been committed and are rejected.
	MaxDegree uint64
}

func (vk *UniversalVerifierKey) openingKey() *kzg.OpeningKey {
	return &kzg.OpeningKey{G: vk.G, GammaG: vk.GammaG, H: vk.H, BetaH: vk.BetaH}
}

// ToUniversalVerifier derives the verifier key. It always succeeds.
func (p *UniversalParams) ToUniversalVerifier() (*UniversalVerifierKey, error) {
	ok := p.srs.OpeningKey
	return &UniversalVerifierKey{
		G:         ok.G,
		GammaG:    ok.GammaG,
		H:         ok.H,
		BetaH:     ok.BetaH,
		MaxDegree: p.maxDegree,
	}, nil
}

// ToUniversalProver specializes the SRS per `info`: it selects the shifted
// power slices for each requested degree bound, converts SRS prefixes into
// Lagrange bases for each requested domain size, and trims the blinding row
// to the hiding bound. Deterministic given identical inputs.
func (p *UniversalParams) ToUniversalProver(info DegreeInfo) (*UniversalProverKey, error) {
	log := logger.Logger().With().Str("component", "srs").Logger()
	start := time.Now()

	if info.MaxDegree == 0 || info.MaxDegree > p.maxDegree {
		return nil, fmt.Errorf("%w: requested max degree %d, srs supports up to %d", ErrDegreeTooLarge, info.MaxDegree, p.maxDegree)
	}

	pk := &UniversalProverKey{
		maxDegree:       p.maxDegree,
		supportedDegree: info.MaxDegree,
		hidingBound:     info.HidingBound,
	}

	pk.ck.PowersOfG = p.srs.CommitKey.PowersOfG

	gammaLen := info.HidingBound + 2
	if gammaLen > uint64(len(p.srs.CommitKey.PowersOfGammaG)) {
		gammaLen = uint64(len(p.srs.CommitKey.PowersOfGammaG))
	}
	pk.ck.PowersOfGammaG = p.srs.CommitKey.PowersOfGammaG[:gammaLen]

	if info.DegreeBounds != nil {
		pk.shiftedPowers = make(map[uint64][]bls12381.G1Affine, len(info.DegreeBounds))
		for bound := range info.DegreeBounds {
			if bound == 0 || bound > p.maxDegree {
				return nil, fmt.Errorf("%w: bound %d has no shift element in an srs of degree %d", ErrUnsupportedDegreeBound, bound, p.maxDegree)
			}
			pk.shiftedPowers[bound] = p.srs.CommitKey.PowersOfG[p.maxDegree-bound:]
		}
	}

	if info.LagrangeSizes != nil {
		pk.lagrangeBases = make(map[uint64][]bls12381.G1Affine, len(info.LagrangeSizes))
		for size := range info.LagrangeSizes {
			if !utils.IsPowerOfTwo(size) {
				return nil, fmt.Errorf("%w: size %d is not a power of two", ErrUnsupportedLagrangeSize, size)
			}
			if size > p.maxDegree+1 {
				return nil, fmt.Errorf("%w: size %d exceeds srs degree %d", ErrUnsupportedLagrangeSize, size, p.maxDegree)
			}
			domain := fft.NewDomain(size)
			pk.lagrangeBases[size] = kzg.IfftG1(p.srs.CommitKey.PowersOfG[:size], domain.GeneratorInv)
		}
	}

	log.Debug().
		Uint64("supportedDegree", info.MaxDegree).
		Int("degreeBounds", len(info.DegreeBounds)).
		Int("lagrangeSizes", len(info.LagrangeSizes)).
		Dur("took", time.Since(start)).
		Msg("derived prover key")

	return pk, nil
}
