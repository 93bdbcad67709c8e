// Package gate defines the generic constraint gate (spec.md §4.1): one row
// of the circuit trace, its five selectors, and the witness-satisfaction
// predicate the prover must honor when it builds the constraint polynomial
// t1 in round 3.
//
// Following the re-architecture note of spec.md §9 ("Gate polymorphism"),
// gate kinds are a tagged variant rather than a shared coefficient vector
// with runtime tag checks everywhere; Generic is the only variant this
// prover core understands (other gate kinds are out of scope — spec.md §1
// Non-goals), but the accessor methods stay tag-guarded so a future variant
// cannot silently leak a selector into the wrong gate's constraint.
package gate

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Type distinguishes gate kinds. Generic is the only kind this prover core
// implements; the others are reserved so the type stays extensible without
// changing CircuitGate's shape.
type Type uint8

const (
	Generic Type = iota
)

// WireRef names a cell of the trace. Only Row is read by the generic gate's
// verifier/accessors; Column is kept for callers that need to address a
// specific wire cell (e.g. an Index builder assembling the permutation).
type WireRef struct {
	Row    int
	Column int
}

// CircuitGate is one row of the trace. Selectors are stored positionally in
// Coeffs as (q_L, q_R, q_O, q_M, q_C) and are only meaningful when Typ is
// Generic; accessors return zero for any other gate type, so a
// misclassified row can never contribute to the constraint sum.
type CircuitGate struct {
	Typ  Type
	L, R, O WireRef
	Coeffs [5]fr.Element
}

// CreateGeneric builds a Generic gate with coefficient vector
// [qL, qR, qO, qM, qC].
func CreateGeneric(l, r, o WireRef, qL, qR, qO, qM, qC fr.Element) CircuitGate {
	return CircuitGate{
		Typ:    Generic,
		L:      l,
		R:      r,
		O:      o,
		Coeffs: [5]fr.Element{qL, qR, qO, qM, qC},
	}
}

func (g *CircuitGate) selector(i int) fr.Element {
	if g.Typ != Generic {
		return fr.Element{}
	}
	return g.Coeffs[i]
}

// QL, QR, QO, QM, QC are the tag-guarded selector accessors: they return 0
// for any gate whose Typ is not Generic.
func (g *CircuitGate) QL() fr.Element { return g.selector(0) }
func (g *CircuitGate) QR() fr.Element { return g.selector(1) }
func (g *CircuitGate) QO() fr.Element { return g.selector(2) }
func (g *CircuitGate) QM() fr.Element { return g.selector(3) }
func (g *CircuitGate) QC() fr.Element { return g.selector(4) }

// VerifyGeneric reports whether the row is Generic and its witness values
// satisfy
//
//	qL*w[l] + qR*w[r] + qO*w[o] + qM*w[l]*w[r] + qC = 0
func (g *CircuitGate) VerifyGeneric(w []fr.Element) bool {
	if g.Typ != Generic {
		return false
	}

	var acc, t fr.Element
	t.Mul(&g.Coeffs[0], &w[g.L.Row])
	acc.Add(&acc, &t)
	t.Mul(&g.Coeffs[1], &w[g.R.Row])
	acc.Add(&acc, &t)
	t.Mul(&g.Coeffs[2], &w[g.O.Row])
	acc.Add(&acc, &t)
	t.Mul(&g.Coeffs[3], &w[g.L.Row]).Mul(&t, &w[g.R.Row])
	acc.Add(&acc, &t)
	acc.Add(&acc, &g.Coeffs[4])

	return acc.IsZero()
}
