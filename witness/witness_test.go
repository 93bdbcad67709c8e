package witness_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/iammadab/proof-systems/witness"
)

func fe(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestWitnessHoldsFlatAssignment(t *testing.T) {
	w := witness.Witness{Values: []fr.Element{fe(1), fe(2), fe(3), fe(4)}}
	one := fe(1)

	require.Len(t, w.Values, 4)
	require.True(t, w.Values[0].Equal(&one))
}
