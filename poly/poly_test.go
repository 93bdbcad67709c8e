package poly_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/stretchr/testify/require"

	"github.com/iammadab/proof-systems/poly"
)

func fe(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestInterpolateEvaluateRoundTrip(t *testing.T) {
	domain := fft.NewDomain(8, fft.WithoutPrecompute())
	evals := []fr.Element{fe(1), fe(2), fe(3), fe(4), fe(5), fe(6), fe(7), fe(8)}

	p := poly.FromEvaluations(append([]fr.Element{}, evals...), domain)
	back := poly.Evaluations(p, domain)

	require.Equal(t, len(evals), len(back))
	for i := range evals {
		require.True(t, evals[i].Equal(&back[i]), "index %d", i)
	}
}

func TestEvaluateMatchesDirectSubstitution(t *testing.T) {
	// p(X) = 2 + 3X + 5X^2
	p := poly.New([]fr.Element{fe(2), fe(3), fe(5)})
	x := fe(7)

	got := poly.Evaluate(p, x)

	// 2 + 3*7 + 5*49 = 2 + 21 + 245 = 268
	want := fe(268)
	require.True(t, want.Equal(&got))
}

func TestAddSubScale(t *testing.T) {
	a := poly.New([]fr.Element{fe(1), fe(2)})
	b := poly.New([]fr.Element{fe(10), fe(20), fe(30)})

	sum := poly.Add(a, b)
	require.Len(t, sum, 3)
	require.True(t, fe(11).Equal(&sum[0]))
	require.True(t, fe(22).Equal(&sum[1]))
	require.True(t, fe(30).Equal(&sum[2]))

	diff := poly.Sub(b, a)
	require.True(t, fe(9).Equal(&diff[0]))
	require.True(t, fe(18).Equal(&diff[1]))
	require.True(t, fe(30).Equal(&diff[2]))

	scaled := poly.Scale(a, fe(3))
	require.True(t, fe(3).Equal(&scaled[0]))
	require.True(t, fe(6).Equal(&scaled[1]))
}

func TestMulAgainstKnownProduct(t *testing.T) {
	// (1 + X) * (1 - X) = 1 - X^2
	one := poly.New([]fr.Element{fe(1), fe(1)})
	minusOne := fe(1)
	minusOne.Neg(&minusOne)
	other := poly.New([]fr.Element{fe(1), minusOne})

	got := poly.Mul(one, other)

	require.True(t, fe(1).Equal(&got[0]))
	require.True(t, got[1].IsZero())
	require.True(t, minusOne.Equal(&got[2]))
}

func TestDivideByVanishingExact(t *testing.T) {
	domain := fft.NewDomain(4, fft.WithoutPrecompute())
	// Z_H(X) = X^4 - 1. Pick q(X) = X + 2, so p = q * Z_H has zero remainder.
	q := poly.New([]fr.Element{fe(2), fe(1)})
	zH := poly.New([]fr.Element{fe(-1), fe(0), fe(0), fe(0), fe(1)})
	p := poly.Mul(q, zH)

	gotQ, rem := poly.DivideByVanishing(p, domain)
	require.True(t, poly.IsZero(rem))
	require.True(t, fe(2).Equal(&gotQ[0]))
	require.True(t, fe(1).Equal(&gotQ[1]))
}

func TestDivideByVanishingNonZeroRemainder(t *testing.T) {
	domain := fft.NewDomain(4, fft.WithoutPrecompute())
	p := poly.New([]fr.Element{fe(1), fe(2), fe(3), fe(4), fe(5), fe(6)})

	_, rem := poly.DivideByVanishing(p, domain)
	require.False(t, poly.IsZero(rem))
}
