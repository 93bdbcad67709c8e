// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prover implements the five-round PLONK proving pipeline
// (spec.md §4.2): given a witness and a preprocessed Index, it produces a
// ProverProof by committing to the wire polynomials, the permutation
// polynomial, and the quotient polynomial, then opening the resulting batch
// at a verifier-chosen point.
//
// The round structure, the blinding scheme, and the concurrent-commit shape
// all follow the retrieval pack's gnark-fork PLONK backends (see
// vck3000-gnark/internal/backend/bls12-381/plonk/prove.go and
// VolodymyrBg-gnark/internal/backend/bn254/plonk/prove.go); only the wire
// protocol (generic gate, externally supplied SRS/transcript, single-proof
// scope) differs.
package prover

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/iammadab/proof-systems/commitment"
	"github.com/iammadab/proof-systems/index"
	"github.com/iammadab/proof-systems/internal/plonklog"
	"github.com/iammadab/proof-systems/poly"
	"github.com/iammadab/proof-systems/transcript"
	"github.com/iammadab/proof-systems/witness"
)

// ErrPolyDivision is returned when the quotient polynomial does not divide
// the vanishing polynomial evenly: the witness fails to satisfy the circuit
// under the given Index, or the two are mismatched (spec.md §7).
var ErrPolyDivision = errors.New("prover: quotient t does not evenly divide Z_H; witness does not satisfy the circuit")

// RandomOracles collects the five Fiat-Shamir challenges drawn over the
// course of a proof, in the fixed order beta, gamma, alpha, zeta, v
// (spec.md §5/§6). Exported so tests can assert on transcript determinism.
type RandomOracles struct {
	Beta, Gamma, Alpha, Zeta, V fr.Element
}

// ProofEvaluations holds every polynomial evaluation a proof discloses:
// a, b, c, the first two permutation polynomials, and the linearization
// polynomial, all at zeta, plus z at zeta*omega (spec.md §3). Sigma3 is not
// disclosed: its contribution stays folded into R, one fewer opening for
// the same soundness.
type ProofEvaluations struct {
	A, B, C fr.Element
	S1, S2  fr.Element
	Z       fr.Element // z(zeta*omega)
	R       fr.Element // linearization polynomial at zeta
}

// ProverProof is the complete output of Create: every commitment, both
// opening proofs, the disclosed evaluations, and the public input the proof
// was built against (spec.md §3).
type ProverProof struct {
	ACommit, BCommit, CCommit           kzg.Digest
	ZCommit                             kzg.Digest
	TLowCommit, TMidCommit, THighCommit kzg.Digest

	Proof1 kzg.OpeningProof // batched opening of combinedT, r, a, b, c, s1, s2 at zeta
	Proof2 kzg.OpeningProof // opening of z at zeta*omega

	Evals ProofEvaluations

	Public []fr.Element

	Oracles RandomOracles
}

// one returns the constant polynomial 1.
func one() poly.Polynomial { return poly.New([]fr.Element{fr.One()}) }

// constPoly returns the constant polynomial c.
func constPoly(c fr.Element) poly.Polynomial { return poly.New([]fr.Element{c}) }

// monomialX returns the polynomial X.
func monomialX() poly.Polynomial {
	var zero, one fr.Element
	one.SetOne()
	return poly.New([]fr.Element{zero, one})
}

// vanishingPolynomial returns Z_H(X) = X^n - 1.
func vanishingPolynomial(n int) poly.Polynomial {
	z := make(poly.Polynomial, n+1)
	var minusOne fr.Element
	minusOne.SetOne()
	minusOne.Neg(&minusOne)
	z[0] = minusOne
	z[n].SetOne()
	return z
}

// blindingDegree1 returns p + (b1 + b0*X) * zH, the standard one-random-pair
// blinding applied to each wire polynomial in round 1.
func blindingDegree1(p, zH poly.Polynomial, b0, b1 fr.Element) poly.Polynomial {
	mask := poly.New([]fr.Element{b1, b0})
	return poly.Add(p, poly.Mul(mask, zH))
}

// blindingDegree2 returns p + (b2 + b1*X + b0*X^2) * zH, the three-random
// blinding applied to the permutation polynomial in round 2.
func blindingDegree2(p, zH poly.Polynomial, b0, b1, b2 fr.Element) poly.Polynomial {
	mask := poly.New([]fr.Element{b2, b1, b0})
	return poly.Add(p, poly.Mul(mask, zH))
}

// randomElement reads a field-sized big-endian buffer from rng and reduces
// it into F. rng must be cryptographically strong for a production proof;
// tests use a seeded deterministic source so proofs are reproducible.
func randomElement(rng io.Reader) (fr.Element, error) {
	var buf [fr.Bytes]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return fr.Element{}, fmt.Errorf("prover: sampling blinder: %w", err)
	}
	var e fr.Element
	e.SetBytes(buf[:])
	return e, nil
}

// extract returns p's coefficients over [lo, hi), zero-padded if p is
// shorter than hi.
func extract(p poly.Polynomial, lo, hi int) poly.Polynomial {
	if hi <= lo {
		return poly.New(nil)
	}
	q := make(poly.Polynomial, hi-lo)
	for i := lo; i < hi && i < len(p); i++ {
		q[i-lo] = p[i]
	}
	return q
}

// commitResult pairs a commitment with the error from computing it, for use
// across the concurrent-commit fan-out below.
type commitResult struct {
	digest kzg.Digest
	err    error
}

// commitAll commits to every polynomial in ps concurrently: committing is an
// embarrassingly parallel, side-effect-free multi-scalar-multiplication, so
// running the commits of a round (three in rounds 1 and 3, one in round 2)
// on separate goroutines
// only shortens wall-clock time without touching the sequential
// prover/transcript order spec.md §5 requires.
func commitAll(ps []poly.Polynomial, srs *kzg.SRS) ([]kzg.Digest, error) {
	out := make([]commitResult, len(ps))
	var wg sync.WaitGroup
	wg.Add(len(ps))
	for i := range ps {
		i := i
		go func() {
			defer wg.Done()
			d, err := commitment.Commit(ps[i], srs)
			out[i] = commitResult{digest: d, err: err}
		}()
	}
	wg.Wait()

	digests := make([]kzg.Digest, len(ps))
	for i, r := range out {
		if r.err != nil {
			return nil, r.err
		}
		digests[i] = r.digest
	}
	return digests, nil
}

// publicInputPolynomial interpolates the additive public-input term:
// w_i on each of the first idx.Public rows, 0 elsewhere (spec.md §3/§4.2).
// The public-input count is read from idx, the Index being proved against,
// not from the witness: spec.md §3 makes it an Index attribute.
func publicInputPolynomial(w witness.Witness, idx *index.Index, n int, domain *fft.Domain) (poly.Polynomial, error) {
	if idx.Public > len(w.Values) {
		return nil, fmt.Errorf("prover: index requires %d public inputs but witness only has %d values", idx.Public, len(w.Values))
	}
	evals := make([]fr.Element, n)
	copy(evals, w.Values[:idx.Public])
	return poly.FromEvaluations(evals, domain), nil
}

// computeGrandProductEvals computes z's evaluations on H via the standard
// Montgomery-batch-inverted recurrence (spec.md §4.2 round 2): z_0 = 1, and
// for j = 1..n-1, z_j = z_{j-1} * num_j / den_j, where num_j/den_j are the
// permutation argument's numerator and denominator evaluated at row j
// itself (using the raw witness, ahead of the k1/k2 scaling round 1 bakes
// into the committed b, c wire polynomials).
func computeGrandProductEvals(la, lb, lc []fr.Element, idx *index.Index, beta, gamma fr.Element) ([]fr.Element, error) {
	n := len(la)

	s1Evals := poly.Evaluations(idx.S1, idx.Domain)
	s2Evals := poly.Evaluations(idx.S2, idx.Domain)
	s3Evals := poly.Evaluations(idx.S3, idx.Domain)

	z := make([]fr.Element, n)
	z[0].SetOne()

	num := make([]fr.Element, n)
	den := make([]fr.Element, n)

	var k1sid, k2sid, f0, f1, f2, g0, g1, g2 fr.Element
	for j := 1; j < n; j++ {
		k1sid.Mul(&idx.K1, &idx.SID[j])
		k2sid.Mul(&idx.K2, &idx.SID[j])

		f0.Add(&la[j], &scaledBeta(beta, idx.SID[j])).Add(&f0, &gamma)
		f1.Add(&lb[j], &scaledBeta(beta, k1sid)).Add(&f1, &gamma)
		f2.Add(&lc[j], &scaledBeta(beta, k2sid)).Add(&f2, &gamma)

		g0.Add(&la[j], &scaledBeta(beta, s1Evals[j])).Add(&g0, &gamma)
		g1.Add(&lb[j], &scaledBeta(beta, s2Evals[j])).Add(&g1, &gamma)
		g2.Add(&lc[j], &scaledBeta(beta, s3Evals[j])).Add(&g2, &gamma)

		num[j].Mul(&f0, &f1).Mul(&num[j], &f2)
		den[j].Mul(&g0, &g1).Mul(&den[j], &g2)
	}

	denInv := fr.BatchInvert(den[1:n])
	acc := fr.One()
	for j := 1; j < n; j++ {
		var ratio fr.Element
		ratio.Mul(&num[j], &denInv[j-1])
		acc.Mul(&acc, &ratio)
		z[j] = acc
	}

	return z, nil
}

// scaledBeta returns beta*x.
func scaledBeta(beta, x fr.Element) fr.Element {
	var r fr.Element
	r.Mul(&beta, &x)
	return r
}

// linearizationPolynomial builds r, the polynomial whose evaluation at zeta
// folds every round-4 check into one opening (spec.md §4.2 round 4). Its
// second ordering term (r2 below) evaluates at evalZ, the shifted opening
// z(zeta*omega), per the source convention documented in DESIGN.md (Open
// Question 3) rather than a fresh evaluation of z at zeta.
func linearizationPolynomial(idx *index.Index, evalA, evalB, evalC, evalS1, evalS2, evalZ fr.Element, zBlind poly.Polynomial, beta, gamma, alpha, alphaSq fr.Element) poly.Polynomial {
	var ab fr.Element
	ab.Mul(&evalA, &evalB)

	r1 := poly.Add(poly.Add(poly.Add(poly.Add(
		poly.Scale(idx.QL, evalA),
		poly.Scale(idx.QR, evalB)),
		poly.Scale(idx.QO, evalC)),
		poly.Scale(idx.QM, ab)),
		idx.QC)

	// r2's identity-term factors use evalZ (the shifted opening z(zeta*omega),
	// i.e. z_zeta in the source's notation), not a fresh beta*zeta term (see
	// DESIGN.md, Open Question 3).
	var betaZ, betaK1Z, betaK2Z fr.Element
	betaZ.Mul(&beta, &evalZ)
	betaK1Z.Mul(&betaZ, &idx.K1)
	betaK2Z.Mul(&betaZ, &idx.K2)

	var f0, f1, f2 fr.Element
	f0.Add(&evalA, &betaZ).Add(&f0, &gamma)
	f1.Add(&evalB, &betaK1Z).Add(&f1, &gamma)
	f2.Add(&evalC, &betaK2Z).Add(&f2, &gamma)

	var r2Scalar fr.Element
	r2Scalar.Mul(&f0, &f1).Mul(&r2Scalar, &f2).Mul(&r2Scalar, &alpha)
	r2 := poly.Scale(zBlind, r2Scalar)

	var betaS1, betaS2 fr.Element
	betaS1.Mul(&beta, &evalS1)
	betaS2.Mul(&beta, &evalS2)

	var g0, g1 fr.Element
	g0.Add(&evalA, &betaS1).Add(&g0, &gamma)
	g1.Add(&evalB, &betaS2).Add(&g1, &gamma)

	var r3Scalar fr.Element
	r3Scalar.Mul(&g0, &g1).Mul(&r3Scalar, &beta).Mul(&r3Scalar, &evalZ).Mul(&r3Scalar, &alpha)
	r3Scalar.Neg(&r3Scalar)
	r3 := poly.Scale(idx.S3, r3Scalar)

	// r4 is a plain alpha^2 scaling of z, not (z-1): the "-1" boundary check
	// t4 encodes is already folded into t, so r's copy of the same term
	// omits it (spec.md §4.2 round 4).
	r4 := poly.Scale(zBlind, alphaSq)

	return poly.Add(poly.Add(poly.Add(r1, r2), r3), r4)
}

// Create runs the five-round prover pipeline and returns a ProverProof.
// rng supplies every blinding scalar the protocol draws (9 in total: two
// each for a, b, c in round 1, three for z in round 2); it is never a
// package-level default, so tests can inject a deterministic source and
// production callers must supply crypto/rand.Reader explicitly.
func Create(w witness.Witness, idx *index.Index, rng io.Reader) (*ProverProof, error) {
	log := plonklog.Logger()
	start := time.Now()

	n := idx.Size()
	domain := idx.Domain

	if err := commitment.CheckSRSSize(idx.SRS, uint64(n)); err != nil {
		return nil, err
	}

	zH := vanishingPolynomial(n)
	ts := transcript.New("")

	// --- Round 1: wire polynomials --------------------------------------
	round1 := time.Now()

	// la, lb, lc hold the raw witness values per wire column; round 2's
	// grand-product argument uses these unscaled (spec.md §4.2 round 2). The
	// committed wire polynomials b, c additionally carry the k1, k2 coset
	// scaling baked in at construction time (spec.md §4.2 round 1).
	la := make([]fr.Element, n)
	lb := make([]fr.Element, n)
	lc := make([]fr.Element, n)
	bEvals := make([]fr.Element, n)
	cEvals := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		la[i] = w.Values[idx.L[i]]
		lb[i] = w.Values[idx.R[i]]
		lc[i] = w.Values[idx.O[i]]
		bEvals[i].Mul(&idx.K1, &lb[i])
		cEvals[i].Mul(&idx.K2, &lc[i])
	}

	a := poly.FromEvaluations(append([]fr.Element{}, la...), domain)
	b := poly.FromEvaluations(bEvals, domain)
	c := poly.FromEvaluations(cEvals, domain)

	var blinders [9]fr.Element
	for i := range blinders {
		e, err := randomElement(rng)
		if err != nil {
			return nil, err
		}
		blinders[i] = e
	}

	aBlind := blindingDegree1(a, zH, blinders[0], blinders[1])
	bBlind := blindingDegree1(b, zH, blinders[2], blinders[3])
	cBlind := blindingDegree1(c, zH, blinders[4], blinders[5])

	digests1, err := commitAll([]poly.Polynomial{aBlind, bBlind, cBlind}, idx.SRS)
	if err != nil {
		return nil, fmt.Errorf("prover: round 1 commit: %w", err)
	}
	aCommit, bCommit, cCommit := digests1[0], digests1[1], digests1[2]

	if err := ts.AbsorbG(aCommit, bCommit, cCommit); err != nil {
		return nil, err
	}
	beta, err := ts.Challenge()
	if err != nil {
		return nil, err
	}
	gamma, err := ts.Challenge()
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("elapsed", time.Since(round1)).Msg("prover: round 1 done")

	// --- Round 2: permutation polynomial ---------------------------------
	round2 := time.Now()

	zEvals, err := computeGrandProductEvals(la, lb, lc, idx, beta, gamma)
	if err != nil {
		return nil, err
	}

	z := poly.FromEvaluations(zEvals, domain)
	zBlind := blindingDegree2(z, zH, blinders[6], blinders[7], blinders[8])

	digests2, err := commitAll([]poly.Polynomial{zBlind}, idx.SRS)
	if err != nil {
		return nil, fmt.Errorf("prover: round 2 commit: %w", err)
	}
	zCommit := digests2[0]

	if err := ts.AbsorbG(zCommit); err != nil {
		return nil, err
	}
	alpha, err := ts.Challenge()
	if err != nil {
		return nil, err
	}
	var alphaSq fr.Element
	alphaSq.Square(&alpha)
	log.Debug().Dur("elapsed", time.Since(round2)).Msg("prover: round 2 done")

	// --- Round 3: quotient polynomial ------------------------------------
	round3 := time.Now()

	pi, err := publicInputPolynomial(w, idx, n, domain)
	if err != nil {
		return nil, err
	}

	// t1: the generic gate constraint, evaluated as a polynomial identity
	// over the blinded wire polynomials.
	tConstraints := poly.Add(poly.Add(poly.Add(poly.Add(
		poly.Mul(idx.QL, aBlind),
		poly.Mul(idx.QR, bBlind)),
		poly.Mul(idx.QO, cBlind)),
		poly.Mul(idx.QM, poly.Mul(aBlind, bBlind))),
		idx.QC)
	tConstraints = poly.Add(tConstraints, pi)

	// t2/t3: the permutation-ordering argument, alpha*(num*z - den*zShift).
	x := monomialX()
	var betaK1, betaK2 fr.Element
	betaK1.Mul(&beta, &idx.K1)
	betaK2.Mul(&beta, &idx.K2)

	numFactor1 := poly.Add(poly.Add(aBlind, poly.Scale(x, beta)), constPoly(gamma))
	numFactor2 := poly.Add(poly.Add(bBlind, poly.Scale(x, betaK1)), constPoly(gamma))
	numFactor3 := poly.Add(poly.Add(cBlind, poly.Scale(x, betaK2)), constPoly(gamma))
	tOrderNum := poly.Scale(poly.Mul(poly.Mul(poly.Mul(numFactor1, numFactor2), numFactor3), zBlind), alpha)

	// zShift approximates z(omega*X): drop z's constant term and multiply
	// the remaining coefficients elementwise by the identity evaluations
	// table s_id, truncating to the shorter of the two (length n) rather
	// than performing a true evaluation shift. This is a literal
	// reproduction of the source construction (see DESIGN.md, Open
	// Question 2).
	zShift := make(poly.Polynomial, n)
	for i := 0; i < n; i++ {
		zShift[i].Mul(&zBlind[i+1], &idx.SID[i])
	}

	denFactor1 := poly.Add(poly.Add(aBlind, poly.Scale(idx.S1, beta)), constPoly(gamma))
	denFactor2 := poly.Add(poly.Add(bBlind, poly.Scale(idx.S2, beta)), constPoly(gamma))
	denFactor3 := poly.Add(poly.Add(cBlind, poly.Scale(idx.S3, beta)), constPoly(gamma))
	tOrderDen := poly.Scale(poly.Mul(poly.Mul(poly.Mul(denFactor1, denFactor2), denFactor3), zShift), alpha)

	tOrdering := poly.Sub(tOrderNum, tOrderDen)

	// t4: the z(1)=1 boundary check. The source multiplies (z-1) by a
	// length-n vector whose every entry is alpha^2 treated as a coefficient
	// vector, not a pointwise scale: as a genuine polynomial this is
	// alpha^2*(1+X+...+X^(n-1)), which equals n*alpha^2*L_0(X) on H. This is
	// a literal reproduction of that construction rather than the canonical
	// alpha^2*(z-1)*L_0(X) (see DESIGN.md, Open Question 1).
	alphaSqVector := make(poly.Polynomial, n)
	for i := range alphaSqVector {
		alphaSqVector[i] = alphaSq
	}
	tBoundary := poly.Mul(poly.Sub(zBlind, one()), alphaSqVector)

	tNum := poly.Add(poly.Add(tConstraints, tOrdering), tBoundary)

	quotient, remainder := poly.DivideByVanishing(tNum, domain)
	if !poly.IsZero(remainder) {
		return nil, ErrPolyDivision
	}

	tLow := extract(quotient, 0, n)
	tMid := extract(quotient, n, 2*n)
	tHigh := extract(quotient, 2*n, len(quotient))

	digests3, err := commitAll([]poly.Polynomial{tLow, tMid, tHigh}, idx.SRS)
	if err != nil {
		return nil, fmt.Errorf("prover: round 3 commit: %w", err)
	}
	tLowCommit, tMidCommit, tHighCommit := digests3[0], digests3[1], digests3[2]

	if err := ts.AbsorbG(tLowCommit, tMidCommit, tHighCommit); err != nil {
		return nil, err
	}
	zeta, err := ts.Challenge()
	if err != nil {
		return nil, err
	}

	var zetaN, zeta2N fr.Element
	zetaN.Exp(zeta, big.NewInt(int64(n)))
	zeta2N.Square(&zetaN)
	log.Debug().Dur("elapsed", time.Since(round3)).Msg("prover: round 3 done")

	// --- Round 4: evaluations and linearization --------------------------
	round4 := time.Now()

	evalA := poly.Evaluate(aBlind, zeta)
	evalB := poly.Evaluate(bBlind, zeta)
	evalC := poly.Evaluate(cBlind, zeta)
	evalS1 := poly.Evaluate(idx.S1, zeta)
	evalS2 := poly.Evaluate(idx.S2, zeta)

	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &domain.Generator)
	evalZ := poly.Evaluate(zBlind, zetaOmega)

	r := linearizationPolynomial(idx, evalA, evalB, evalC, evalS1, evalS2, evalZ, zBlind, beta, gamma, alpha, alphaSq)
	evalR := poly.Evaluate(r, zeta)

	evals := ProofEvaluations{A: evalA, B: evalB, C: evalC, S1: evalS1, S2: evalS2, Z: evalZ, R: evalR}
	log.Debug().Dur("elapsed", time.Since(round4)).Msg("prover: round 4 done")

	// --- Round 5: batched opening -----------------------------------------
	round5 := time.Now()

	v, err := ts.Challenge()
	if err != nil {
		return nil, err
	}

	combinedT := poly.Add(poly.Add(tLow, poly.Scale(tMid, zetaN)), poly.Scale(tHigh, zeta2N))

	proof1, err := commitment.Open([]poly.Polynomial{combinedT, r, aBlind, bBlind, cBlind, idx.S1, idx.S2}, v, zeta, domain, idx.SRS)
	if err != nil {
		return nil, fmt.Errorf("prover: round 5 open at zeta: %w", err)
	}
	proof2, err := commitment.Open([]poly.Polynomial{zBlind}, v, zetaOmega, domain, idx.SRS)
	if err != nil {
		return nil, fmt.Errorf("prover: round 5 open at zeta*omega: %w", err)
	}
	log.Debug().Dur("elapsed", time.Since(round5)).Msg("prover: round 5 done")

	log.Info().Dur("elapsed", time.Since(start)).Int("n", n).Msg("prover: proof complete")

	return &ProverProof{
		ACommit:     aCommit,
		BCommit:     bCommit,
		CCommit:     cCommit,
		ZCommit:     zCommit,
		TLowCommit:  tLowCommit,
		TMidCommit:  tMidCommit,
		THighCommit: tHighCommit,
		Proof1:      proof1,
		Proof2:      proof2,
		Evals:       evals,
		Public:      append([]fr.Element{}, w.Values[:idx.Public]...),
		Oracles:     RandomOracles{Beta: beta, Gamma: gamma, Alpha: alpha, Zeta: zeta, V: v},
	}, nil
}
