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

// Package proofdump encodes a ProverProof to CBOR for debugging and test
// fixtures. It follows the CBOR WriteTo/ReadFrom shape used elsewhere in the
// retrieval pack (nume-crypto-gnark's bw6-633 SparseR1CS.WriteTo/ReadFrom),
// but this is explicitly NOT a canonical wire format: proof serialization is
// out of scope for this repo (spec.md §1 Non-goals), so no compatibility,
// versioning, or cross-language guarantee is made about the bytes it
// produces.
package proofdump

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/iammadab/proof-systems/prover"
)

// dump mirrors every prover.ProverProof field except Oracles, which is not
// encoded (a decoded proof carries zero-valued Oracles); it exists only so
// CBOR, which cannot marshal gnark-crypto's field/group types directly, has a
// plain-bytes shape to encode. Fields are captured via their Marshal forms.
type dump struct {
	ACommit, BCommit, CCommit           []byte
	ZCommit                             []byte
	TLowCommit, TMidCommit, THighCommit []byte

	Proof1H          []byte
	Proof1Point      []byte
	Proof1ClaimedVal []byte

	Proof2H          []byte
	Proof2Point      []byte
	Proof2ClaimedVal []byte

	EvalA, EvalB, EvalC []byte
	EvalS1, EvalS2      []byte
	EvalZ, EvalR        []byte

	Public []byte
}

// WriteTo CBOR-encodes p into w, returning the number of bytes written.
func WriteTo(p *prover.ProverProof, w io.Writer) (int64, error) {
	d := toDump(p)

	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, fmt.Errorf("proofdump: encode mode: %w", err)
	}
	b, err := enc.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("proofdump: marshal: %w", err)
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ReadFrom CBOR-decodes a ProverProof dump from r. The result is a debug
// snapshot: field and group elements are restored, but it is not a
// commitment the KZG scheme will treat as equal-by-identity to the original
// unless every byte round-trips exactly.
func ReadFrom(r io.Reader) (*prover.ProverProof, int64, error) {
	buf := new(bytes.Buffer)
	n, err := buf.ReadFrom(r)
	if err != nil {
		return nil, n, fmt.Errorf("proofdump: read: %w", err)
	}

	dm, err := cbor.DecOptions{MaxArrayElements: 1 << 20, MaxMapPairs: 1 << 20}.DecMode()
	if err != nil {
		return nil, n, fmt.Errorf("proofdump: decode mode: %w", err)
	}

	var d dump
	if err := dm.Unmarshal(buf.Bytes(), &d); err != nil {
		return nil, n, fmt.Errorf("proofdump: unmarshal: %w", err)
	}

	p, err := fromDump(&d)
	if err != nil {
		return nil, n, err
	}
	return p, n, nil
}
