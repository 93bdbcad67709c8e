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

package proofdump

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"

	"github.com/iammadab/proof-systems/prover"
)

func marshalG1(p bn254.G1Affine) []byte { return p.Marshal() }

func unmarshalG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return bn254.G1Affine{}, err
	}
	return p, nil
}

func marshalFr(e fr.Element) []byte { return e.Marshal() }

func unmarshalFr(b []byte) fr.Element {
	var e fr.Element
	e.SetBytes(b)
	return e
}

func marshalFrSlice(es []fr.Element) []byte {
	out := make([]byte, 0, len(es)*fr.Bytes)
	for i := range es {
		out = append(out, es[i].Marshal()...)
	}
	return out
}

func unmarshalFrSlice(b []byte) []fr.Element {
	out := make([]fr.Element, 0, len(b)/fr.Bytes)
	for i := 0; i+fr.Bytes <= len(b); i += fr.Bytes {
		out = append(out, unmarshalFr(b[i:i+fr.Bytes]))
	}
	return out
}

func toDump(p *prover.ProverProof) *dump {
	return &dump{
		ACommit:     marshalG1(p.ACommit),
		BCommit:     marshalG1(p.BCommit),
		CCommit:     marshalG1(p.CCommit),
		ZCommit:     marshalG1(p.ZCommit),
		TLowCommit:  marshalG1(p.TLowCommit),
		TMidCommit:  marshalG1(p.TMidCommit),
		THighCommit: marshalG1(p.THighCommit),

		Proof1H:          marshalG1(p.Proof1.H),
		Proof1Point:      marshalFr(p.Proof1.Point),
		Proof1ClaimedVal: marshalFr(p.Proof1.ClaimedValue),

		Proof2H:          marshalG1(p.Proof2.H),
		Proof2Point:      marshalFr(p.Proof2.Point),
		Proof2ClaimedVal: marshalFr(p.Proof2.ClaimedValue),

		EvalA: marshalFr(p.Evals.A),
		EvalB: marshalFr(p.Evals.B),
		EvalC: marshalFr(p.Evals.C),
		EvalS1: marshalFr(p.Evals.S1),
		EvalS2: marshalFr(p.Evals.S2),
		EvalZ:  marshalFr(p.Evals.Z),
		EvalR:  marshalFr(p.Evals.R),

		Public: marshalFrSlice(p.Public),
	}
}

func fromDump(d *dump) (*prover.ProverProof, error) {
	aCommit, err := unmarshalG1(d.ACommit)
	if err != nil {
		return nil, err
	}
	bCommit, err := unmarshalG1(d.BCommit)
	if err != nil {
		return nil, err
	}
	cCommit, err := unmarshalG1(d.CCommit)
	if err != nil {
		return nil, err
	}
	zCommit, err := unmarshalG1(d.ZCommit)
	if err != nil {
		return nil, err
	}
	tLowCommit, err := unmarshalG1(d.TLowCommit)
	if err != nil {
		return nil, err
	}
	tMidCommit, err := unmarshalG1(d.TMidCommit)
	if err != nil {
		return nil, err
	}
	tHighCommit, err := unmarshalG1(d.THighCommit)
	if err != nil {
		return nil, err
	}

	proof1H, err := unmarshalG1(d.Proof1H)
	if err != nil {
		return nil, err
	}
	proof2H, err := unmarshalG1(d.Proof2H)
	if err != nil {
		return nil, err
	}

	return &prover.ProverProof{
		ACommit:     aCommit,
		BCommit:     bCommit,
		CCommit:     cCommit,
		ZCommit:     zCommit,
		TLowCommit:  tLowCommit,
		TMidCommit:  tMidCommit,
		THighCommit: tHighCommit,
		Proof1: kzg.OpeningProof{
			H:            proof1H,
			Point:        unmarshalFr(d.Proof1Point),
			ClaimedValue: unmarshalFr(d.Proof1ClaimedVal),
		},
		Proof2: kzg.OpeningProof{
			H:            proof2H,
			Point:        unmarshalFr(d.Proof2Point),
			ClaimedValue: unmarshalFr(d.Proof2ClaimedVal),
		},
		Evals: prover.ProofEvaluations{
			A:  unmarshalFr(d.EvalA),
			B:  unmarshalFr(d.EvalB),
			C:  unmarshalFr(d.EvalC),
			S1: unmarshalFr(d.EvalS1),
			S2: unmarshalFr(d.EvalS2),
			Z:  unmarshalFr(d.EvalZ),
			R:  unmarshalFr(d.EvalR),
		},
		Public: unmarshalFrSlice(d.Public),
	}, nil
}
