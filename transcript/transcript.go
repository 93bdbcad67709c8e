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

// Package transcript implements the FqSponge collaborator of spec.md §2.4 /
// §6: a single-owner, process-local Fiat-Shamir transcript over the base
// field that absorbs group elements (commitments) and emits scalar-field
// challenges, one per declared label, in a fixed order.
//
// It is a thin wrapper over github.com/consensys/gnark-crypto/fiat-shamir,
// the transcript every backend in the retrieval pack (vck3000-gnark,
// VolodymyrBg-gnark, ...) drives its own Prove with.
package transcript

import (
	"crypto/sha256"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// order is the fixed challenge sequence spec.md §5 says must never be
// reordered: beta, gamma, alpha, zeta, v.
var order = []string{"beta", "gamma", "alpha", "zeta", "v"}

// FqSponge is a fresh-per-proof transcript. A zero value is not usable; use
// New.
type FqSponge struct {
	fs  *fiatshamir.Transcript
	pos int
}

// New returns a fresh FqSponge. params is reserved for sponge
// personalization (domain separation label); it is bound as the first
// absorb so two proofs over different params never share a transcript
// prefix.
func New(params string) *FqSponge {
	fs := fiatshamir.NewTranscript(sha256.New(), order...)
	if params != "" {
		for _, label := range order {
			_ = fs.Bind(label, []byte(params))
		}
	}
	return &FqSponge{fs: fs}
}

// AbsorbG absorbs one or more commitments (group elements) into the
// transcript, ahead of the next Challenge call.
func (s *FqSponge) AbsorbG(points ...bn254.G1Affine) error {
	if s.pos >= len(order) {
		return fmt.Errorf("transcript: no more challenges to bind, all %d labels consumed", len(order))
	}
	label := order[s.pos]
	for i := range points {
		b := points[i].Marshal()
		if err := s.fs.Bind(label, b); err != nil {
			return fmt.Errorf("transcript: absorb: %w", err)
		}
	}
	return nil
}

// Challenge derives the next challenge in the fixed order
// (beta, gamma, alpha, zeta, v) from everything absorbed so far, and
// advances the transcript so the same label can never be reused.
func (s *FqSponge) Challenge() (fr.Element, error) {
	if s.pos >= len(order) {
		return fr.Element{}, fmt.Errorf("transcript: exhausted all %d challenges", len(order))
	}
	label := order[s.pos]
	b, err := s.fs.ComputeChallenge(label)
	if err != nil {
		return fr.Element{}, fmt.Errorf("transcript: challenge %s: %w", label, err)
	}
	s.pos++

	var c fr.Element
	c.SetBytes(b)
	return c, nil
}
