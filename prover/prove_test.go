package prover_test

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/iammadab/proof-systems/gate"
	"github.com/iammadab/proof-systems/index"
	"github.com/iammadab/proof-systems/prover"
	"github.com/iammadab/proof-systems/witness"
)

func fe(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// circuit builds a tiny two-row trace:
//
//	row 0: w[0] + w[1] - w[2] = 0   (w[0] is the public input)
//	row 1: w[2] * w[3] - w[4] = 0
func circuit(t *testing.T) *index.Index {
	t.Helper()

	zero := fr.Element{}
	one := fe(1)
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)

	g0 := gate.CreateGeneric(gate.WireRef{Row: 0}, gate.WireRef{Row: 1}, gate.WireRef{Row: 2}, one, one, minusOne, zero, zero)
	g1 := gate.CreateGeneric(gate.WireRef{Row: 2}, gate.WireRef{Row: 3}, gate.WireRef{Row: 4}, zero, zero, minusOne, one, zero)

	srs, err := kzg.NewSRS(64, big.NewInt(987654321))
	require.NoError(t, err)

	idx, err := index.Build([]gate.CircuitGate{g0, g1}, 1, nil, srs)
	require.NoError(t, err)
	return idx
}

func validWitness() witness.Witness {
	// w0=3 (public, per circuit's idx.Public=1), w1=4, w2=7, w3=2, w4=14
	return witness.Witness{
		Values: []fr.Element{fe(3), fe(4), fe(7), fe(2), fe(14)},
	}
}

func seededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestCreateSucceedsForSatisfyingWitness(t *testing.T) {
	idx := circuit(t)
	w := validWitness()

	proof, err := prover.Create(w, idx, seededRNG(1))
	require.NoError(t, err)
	require.NotNil(t, proof)
	require.Len(t, proof.Public, 1)
	require.True(t, proof.Public[0].Equal(&w.Values[0]))
}

func TestCreateFailsWithPolyDivisionForUnsatisfyingWitness(t *testing.T) {
	idx := circuit(t)
	w := validWitness()
	w.Values[4] = fe(999) // breaks row 1's multiplication check

	_, err := prover.Create(w, idx, seededRNG(1))
	require.Error(t, err)
	require.True(t, errors.Is(err, prover.ErrPolyDivision))
}

func TestCreateIsDeterministicGivenTheSameRNGStream(t *testing.T) {
	idx := circuit(t)
	w := validWitness()

	p1, err := prover.Create(w, idx, seededRNG(42))
	require.NoError(t, err)
	p2, err := prover.Create(w, idx, seededRNG(42))
	require.NoError(t, err)

	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Fatalf("proofs over an identical rng stream diverged (-first +second):\n%s", diff)
	}
}

func TestCreateChallengeOrderMatchesOracles(t *testing.T) {
	idx := circuit(t)
	w := validWitness()

	proof, err := prover.Create(w, idx, seededRNG(7))
	require.NoError(t, err)

	// beta, gamma, alpha, zeta, v must all be distinct: a collision would
	// mean two challenge draws shared a transcript position.
	oracles := []fr.Element{proof.Oracles.Beta, proof.Oracles.Gamma, proof.Oracles.Alpha, proof.Oracles.Zeta, proof.Oracles.V}
	for i := range oracles {
		for j := i + 1; j < len(oracles); j++ {
			require.False(t, oracles[i].Equal(&oracles[j]), "oracles[%d] == oracles[%d]", i, j)
		}
	}
}

func TestCreateSurfacesSRSTooSmall(t *testing.T) {
	idx := circuit(t)
	// shrink the SRS below what a proof over this domain needs.
	idx.SRS.G1 = idx.SRS.G1[:3]

	_, err := prover.Create(validWitness(), idx, seededRNG(1))
	require.Error(t, err)
}

// copyConstraintCircuit builds a two-row trace whose rows do not share a
// witness index for the value they have in common:
//
//	row 0: w[0] + w[1] - w[2] = 0        (w[0] is the public input)
//	row 1: w[5] * w[3] - w[4] = 0
//
// w[2] (row 0's output) and w[5] (row 1's left input) are asserted equal
// only via the permutation argument, linking Cell{ColO,0} to Cell{ColL,1}.
// Nothing in either row's own generic-gate check forces w[2] == w[5]: that
// equality is exactly what the copy constraint's cycle in S1/S2/S3 must
// carry through computeGrandProductEvals/t3 for the proof to go through.
func copyConstraintCircuit(t *testing.T) *index.Index {
	t.Helper()

	zero := fr.Element{}
	one := fe(1)
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)

	g0 := gate.CreateGeneric(gate.WireRef{Row: 0}, gate.WireRef{Row: 1}, gate.WireRef{Row: 2}, one, one, minusOne, zero, zero)
	g1 := gate.CreateGeneric(gate.WireRef{Row: 5}, gate.WireRef{Row: 3}, gate.WireRef{Row: 4}, zero, zero, minusOne, one, zero)

	srs, err := kzg.NewSRS(64, big.NewInt(13579))
	require.NoError(t, err)

	copies := []index.CopyConstraint{
		{A: index.Cell{Col: index.ColO, Row: 0}, B: index.Cell{Col: index.ColL, Row: 1}},
	}
	idx, err := index.Build([]gate.CircuitGate{g0, g1}, 1, copies, srs)
	require.NoError(t, err)
	return idx
}

func TestCreateSucceedsWhenCopyConstraintIsSatisfied(t *testing.T) {
	idx := copyConstraintCircuit(t)

	// w0=3 (public), w1=4, w2=7 (row 0's output), w3=2, w4=14, w5=7 (row 1's
	// left input, copy-constrained equal to w2).
	w := witness.Witness{Values: []fr.Element{fe(3), fe(4), fe(7), fe(2), fe(14), fe(7)}}

	proof, err := prover.Create(w, idx, seededRNG(1))
	require.NoError(t, err)
	require.NotNil(t, proof)
}

func TestCreateFailsWithPolyDivisionWhenCopyConstraintIsViolated(t *testing.T) {
	idx := copyConstraintCircuit(t)

	// Each row's own generic-gate check still holds in isolation (3+4-7=0
	// and 99*2-198=0), but w5 no longer equals w2: the copy constraint the
	// permutation argument encodes is violated even though neither gate's
	// local constraint is.
	w := witness.Witness{Values: []fr.Element{fe(3), fe(4), fe(7), fe(2), fe(198), fe(99)}}

	_, err := prover.Create(w, idx, seededRNG(1))
	require.Error(t, err)
	require.True(t, errors.Is(err, prover.ErrPolyDivision))
}
