// Package index holds the preprocessed-circuit data the prover consumes
// (spec.md §3 "Index"). Constructing it (computing sigma permutation
// polynomials, selector polynomials, and s_id from a circuit) is out of
// scope for this repo (spec.md §1): the Index here is a read-only data
// structure. See build.go for the minimal test-fixture constructor used by
// this repo's own tests and the end-to-end scenarios of spec.md §8.
package index

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/iammadab/proof-systems/poly"
)

// Index is immutable preprocessing shared read-only across every proof
// built against the circuit it describes.
type Index struct {
	Domain *fft.Domain // H: size n = 2^k, generator omega = Domain.Generator

	// K1, K2 (spec.md's "r", "o") are coset scalars such that {1, K1, K2}
	// generate three disjoint cosets of H inside F*.
	K1, K2 fr.Element

	// Selector polynomials, degree < n.
	QL, QR, QO, QM, QC poly.Polynomial

	// Permutation polynomials, degree < n, one per column.
	S1, S2, S3 poly.Polynomial

	// SID holds the identity evaluations on H: SID[j] = omega^j.
	SID []fr.Element

	// L, R, O carry, for each trace row j, the witness index gate_j.l/r/o
	// reads from (spec.md §4.2 round 1, "A_j = w[gate_j.l]" etc). This is
	// the one piece of per-row circuit data the prover's round 1 needs
	// beyond the selector/permutation polynomials spec.md §3 enumerates
	// for Index; preprocessing still computes it from the circuit, so it
	// lives here rather than as a fourth argument to the prover entry
	// point (see DESIGN.md).
	L, R, O []int

	Public int // number of public-input rows

	SRS *kzg.SRS
}

// Size returns n, the domain cardinality.
func (idx *Index) Size() int {
	return int(idx.Domain.Cardinality)
}
