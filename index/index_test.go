package index_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
	"github.com/stretchr/testify/require"

	"github.com/iammadab/proof-systems/commitment"
	"github.com/iammadab/proof-systems/gate"
	"github.com/iammadab/proof-systems/index"
	"github.com/iammadab/proof-systems/poly"
)

func fe(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func testSRS(t *testing.T, size uint64) *kzg.SRS {
	t.Helper()
	srs, err := kzg.NewSRS(size, big.NewInt(42))
	require.NoError(t, err)
	return srs
}

func simpleGates() []gate.CircuitGate {
	zero := fr.Element{}
	one := fe(1)
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)

	// row 0: w[0] + w[1] - w[2] = 0
	g0 := gate.CreateGeneric(gate.WireRef{Row: 0}, gate.WireRef{Row: 1}, gate.WireRef{Row: 2}, one, one, minusOne, zero, zero)
	// row 1: w[2] * w[3] - w[4] = 0
	g1 := gate.CreateGeneric(gate.WireRef{Row: 2}, gate.WireRef{Row: 3}, gate.WireRef{Row: 4}, zero, zero, minusOne, one, zero)
	return []gate.CircuitGate{g0, g1}
}

func TestBuildPadsToPowerOfTwo(t *testing.T) {
	srs := testSRS(t, commitment.MinSRSSize(4))
	// three gates are not a power of two, so the domain pads to 4 rows.
	gates := append(simpleGates(), simpleGates()[0])
	idx, err := index.Build(gates, 0, nil, srs)
	require.NoError(t, err)
	require.Equal(t, 4, idx.Size())
}

func TestBuildNoCopyConstraintsLeavesIdentityPermutation(t *testing.T) {
	srs := testSRS(t, commitment.MinSRSSize(4))
	idx, err := index.Build(simpleGates(), 0, nil, srs)
	require.NoError(t, err)

	s1Evals := poly.Evaluations(idx.S1, idx.Domain)
	for i := range s1Evals {
		require.True(t, s1Evals[i].Equal(&idx.SID[i]), "row %d", i)
	}
}

func TestBuildCopyConstraintSwapsPermutation(t *testing.T) {
	srs := testSRS(t, commitment.MinSRSSize(4))
	cc := []index.CopyConstraint{{A: index.Cell{Col: index.ColL, Row: 0}, B: index.Cell{Col: index.ColR, Row: 1}}}
	idx, err := index.Build(simpleGates(), 0, cc, srs)
	require.NoError(t, err)

	s1Evals := poly.Evaluations(idx.S1, idx.Domain)
	s2Evals := poly.Evaluations(idx.S2, idx.Domain)

	// before the swap, s1[0] and s2[1] would each carry their own cell's
	// identity value (1 and k1*omega respectively); the copy constraint
	// swaps them.
	var k1Omega fr.Element
	k1Omega.Mul(&idx.K1, &idx.Domain.Generator)
	one := fe(1)

	require.True(t, s1Evals[0].Equal(&k1Omega))
	require.True(t, s2Evals[1].Equal(&one))
}

func TestBuildRejectsEmptyGateList(t *testing.T) {
	srs := testSRS(t, 16)
	_, err := index.Build(nil, 0, nil, srs)
	require.Error(t, err)
}

func TestBuildSurfacesSRSTooSmall(t *testing.T) {
	srs := testSRS(t, 2)
	_, err := index.Build(simpleGates(), 0, nil, srs)
	require.Error(t, err)
}
