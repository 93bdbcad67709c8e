// Package commitment is the thin PLONK-facing surface over gnark-crypto's
// KZG scheme (spec.md §2.3/§6): commit a single polynomial, and open a
// batch of polynomials at one point by folding them with powers of a
// verifier-supplied challenge v before calling through to kzg.Open.
//
// SRS generation/trust-setup is out of scope (spec.md §1); this package
// only consumes an already-built *kzg.SRS.
package commitment

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/iammadab/proof-systems/poly"
)

// ErrSRSTooSmall is returned when the configured SRS cannot commit to a
// polynomial of the required degree (spec.md §7, "SrsTooSmall").
var ErrSRSTooSmall = errors.New("commitment: SRS too small")

// MinSRSSize returns the minimal SRS capacity required for a domain of size
// n, per spec.md §2.3 ("SRS capacity must be at least 3n+5").
func MinSRSSize(n uint64) uint64 {
	return 3*n + 5
}

// CheckSRSSize validates an SRS against MinSRSSize, surfacing ErrSRSTooSmall
// immediately rather than failing deep inside a later commit.
func CheckSRSSize(srs *kzg.SRS, n uint64) error {
	need := MinSRSSize(n)
	if uint64(len(srs.G1)) < need {
		return fmt.Errorf("%w: have %d, need %d", ErrSRSTooSmall, len(srs.G1), need)
	}
	return nil
}

// Commit commits to p under srs.
func Commit(p poly.Polynomial, srs *kzg.SRS) (kzg.Digest, error) {
	d, err := kzg.Commit(p, srs)
	if err != nil {
		return kzg.Digest{}, fmt.Errorf("commitment: commit: %w", err)
	}
	return d, nil
}

// Open combines polys by ascending powers of v (polys[0] + v*polys[1] +
// v^2*polys[2] + ...) and returns a single KZG opening proof of the
// combination at point. This realizes the "open(polys, v, point)"
// collaborator contract of spec.md §4.2/§6: the combining challenge is
// supplied by the caller's transcript, not re-derived internally the way
// kzg.BatchOpenSinglePoint does it.
func Open(polys []poly.Polynomial, v fr.Element, point fr.Element, domain *fft.Domain, srs *kzg.SRS) (kzg.OpeningProof, error) {
	if len(polys) == 0 {
		return kzg.OpeningProof{}, errors.New("commitment: open: no polynomials given")
	}

	combined := poly.Clone(polys[0])
	vPow := fr.One()
	for i := 1; i < len(polys); i++ {
		vPow.Mul(&vPow, &v)
		combined = poly.Add(combined, poly.Scale(polys[i], vPow))
	}

	proof, err := kzg.Open(combined, &point, domain, srs)
	if err != nil {
		return kzg.OpeningProof{}, fmt.Errorf("commitment: open: %w", err)
	}
	return proof, nil
}
