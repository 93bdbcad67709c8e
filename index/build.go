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

package index

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/iammadab/proof-systems/commitment"
	"github.com/iammadab/proof-systems/gate"
	"github.com/iammadab/proof-systems/poly"
)

// Column identifies one of the three wire columns a copy constraint links.
type Column int

const (
	ColL Column = iota
	ColR
	ColO
)

// Cell names one wire cell: (column, row).
type Cell struct {
	Col Column
	Row int
}

// CopyConstraint requires the witness to assign the same value to two
// cells; Build folds every CopyConstraint into the permutation cycles that
// S1, S2, S3 encode (spec.md §3's "wire-permutation on the three columns").
type CopyConstraint struct {
	A, B Cell
}

// Build constructs a minimal Index for the given gates (padded to the next
// power of two) and copy constraints. It is a small test-fixture builder,
// not a circuit compiler: it assumes the caller already knows, by
// construction, which cells must be equal (see SPEC_FULL.md §4). Production
// index/preprocessing construction is out of scope for this repo
// (spec.md §1).
func Build(gates []gate.CircuitGate, public int, copies []CopyConstraint, srs *kzg.SRS) (*Index, error) {
	if len(gates) == 0 {
		return nil, fmt.Errorf("index: build: no gates given")
	}

	domain := fft.NewDomain(uint64(len(gates)), fft.WithoutPrecompute())
	n := int(domain.Cardinality)

	if err := commitment.CheckSRSSize(srs, domain.Cardinality); err != nil {
		return nil, err
	}

	ql := make([]fr.Element, n)
	qr := make([]fr.Element, n)
	qo := make([]fr.Element, n)
	qm := make([]fr.Element, n)
	qc := make([]fr.Element, n)
	l := make([]int, n)
	r := make([]int, n)
	o := make([]int, n)
	for i, g := range gates {
		ql[i] = g.QL()
		qr[i] = g.QR()
		qo[i] = g.QO()
		qm[i] = g.QM()
		qc[i] = g.QC()
		l[i] = g.L.Row
		r[i] = g.R.Row
		o[i] = g.O.Row
	}

	k1 := domain.FrMultiplicativeGen
	var k2 fr.Element
	k2.Square(&k1)

	// support[col*n+row] = k_col * omega^row, the three disjoint cosets of
	// H that the permutation acts on.
	support := make([]fr.Element, 3*n)
	support[0].SetOne()
	support[n] = k1
	support[2*n] = k2
	for i := 1; i < n; i++ {
		support[i].Mul(&support[i-1], &domain.Generator)
		support[n+i].Mul(&support[n+i-1], &domain.Generator)
		support[2*n+i].Mul(&support[2*n+i-1], &domain.Generator)
	}

	perm := make([]int, 3*n)
	for i := range perm {
		perm[i] = i
	}
	idx := func(c Cell) int {
		return int(c.Col)*n + c.Row
	}
	for _, cc := range copies {
		i, j := idx(cc.A), idx(cc.B)
		perm[i], perm[j] = perm[j], perm[i]
	}

	s1 := make([]fr.Element, n)
	s2 := make([]fr.Element, n)
	s3 := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		s1[i] = support[perm[i]]
		s2[i] = support[perm[n+i]]
		s3[i] = support[perm[2*n+i]]
	}

	sid := make([]fr.Element, n)
	copy(sid, support[:n])

	return &Index{
		Domain: domain,
		K1:     k1,
		K2:     k2,
		QL:     poly.FromEvaluations(ql, domain),
		QR:     poly.FromEvaluations(qr, domain),
		QO:     poly.FromEvaluations(qo, domain),
		QM:     poly.FromEvaluations(qm, domain),
		QC:     poly.FromEvaluations(qc, domain),
		S1:     poly.FromEvaluations(s1, domain),
		S2:     poly.FromEvaluations(s2, domain),
		S3:     poly.FromEvaluations(s3, domain),
		SID:    sid,
		L:      l,
		R:      r,
		O:      o,
		Public: public,
		SRS:    srs,
	}, nil
}
