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

// Package poly provides the dense-polynomial operations the PLONK prover
// needs on top of gnark-crypto's field and FFT primitives: interpolation
// over a multiplicative subgroup, scaling, addition, multiplication via the
// domain's FFT, and division by the vanishing polynomial Z_H(X) = X^n-1.
//
// Field, group and FFT-domain arithmetic themselves are out of scope here —
// they are consumed from github.com/consensys/gnark-crypto, the same way
// every backend in the retrieved gnark forks does it.
package poly

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/polynomial"
)

// Polynomial is a dense univariate polynomial over F in coefficient form,
// coefficients[i] is the coefficient of X^i.
type Polynomial = polynomial.Polynomial

// ErrNonZeroRemainder is returned by DivideByVanishing when the candidate
// quotient does not evenly divide: the witness does not satisfy the
// constraint system (or the Index/challenges are inconsistent).
var ErrNonZeroRemainder = errors.New("poly: division by vanishing polynomial left a non-zero remainder")

// New wraps a coefficient slice as a Polynomial without copying.
func New(coeffs []fr.Element) Polynomial {
	return Polynomial(coeffs)
}

// FromEvaluations interpolates p from its evaluations on H (domain, in
// natural order) and returns p in coefficient form. evals is consumed.
func FromEvaluations(evals []fr.Element, domain *fft.Domain) Polynomial {
	p := make(Polynomial, domain.Cardinality)
	copy(p, evals)
	domain.FFTInverse(p, fft.DIF)
	fft.BitReverse(p)
	return p
}

// Clone returns an independent copy of p.
func Clone(p Polynomial) Polynomial {
	q := make(Polynomial, len(p))
	copy(q, p)
	return q
}

// Scale returns s*p.
func Scale(p Polynomial, s fr.Element) Polynomial {
	q := make(Polynomial, len(p))
	for i := range p {
		q[i].Mul(&p[i], &s)
	}
	return q
}

// Add returns a+b.
func Add(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	q := make(Polynomial, n)
	copy(q, a)
	for i := range b {
		q[i].Add(&q[i], &b[i])
	}
	return q
}

// Sub returns a-b.
func Sub(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	q := make(Polynomial, n)
	copy(q, a)
	for i := range b {
		q[i].Sub(&q[i], &b[i])
	}
	return q
}

// Mul returns a*b, computed via the smallest power-of-two FFT domain that
// fits deg(a)+deg(b).
func Mul(a, b Polynomial) Polynomial {
	if len(a) == 0 || len(b) == 0 {
		return Polynomial{}
	}
	size := uint64(len(a) + len(b) - 1)
	d := fft.NewDomain(size, fft.WithoutPrecompute())

	pa := make(Polynomial, d.Cardinality)
	copy(pa, a)
	pb := make(Polynomial, d.Cardinality)
	copy(pb, b)

	d.FFT(pa, fft.DIF)
	d.FFT(pb, fft.DIF)
	for i := range pa {
		pa[i].Mul(&pa[i], &pb[i])
	}
	d.FFTInverse(pa, fft.DIT)

	return pa[:size]
}

// Evaluate returns p(x).
func Evaluate(p Polynomial, x fr.Element) fr.Element {
	return p.Eval(&x)
}

// Evaluations returns p's evaluations on domain, in natural (not
// bit-reversed) order. It is FromEvaluations's inverse.
func Evaluations(p Polynomial, domain *fft.Domain) []fr.Element {
	buf := make(Polynomial, domain.Cardinality)
	copy(buf, p)
	domain.FFT(buf, fft.DIF)
	fft.BitReverse(buf)
	return buf
}

// DivideByVanishing divides p by Z_H(X) = X^n-1 (n = domain.Cardinality),
// returning (quotient, remainder). It never errors by itself; callers check
// the remainder against the zero polynomial per the PolyDivision contract
// of the prover (spec.md §4.2/§7).
func DivideByVanishing(p Polynomial, domain *fft.Domain) (quotient, remainder Polynomial) {
	n := int(domain.Cardinality)
	c := Clone(p)
	if len(c) <= n {
		remainder = make(Polynomial, n)
		copy(remainder, c)
		return Polynomial{}, remainder
	}

	q := make(Polynomial, len(c)-n)
	for i := len(c) - 1; i >= n; i-- {
		q[i-n] = c[i]
		c[i-n].Add(&c[i-n], &c[i])
	}
	return q, c[:n]
}

// IsZero reports whether every coefficient of p is zero.
func IsZero(p Polynomial) bool {
	for i := range p {
		if !p[i].IsZero() {
			return false
		}
	}
	return true
}
