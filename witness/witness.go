// Package witness holds the flat field assignment the prover consumes.
package witness

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Witness is the ordered assignment w_0..w_{m-1} (spec.md §3): a flat vector
// of variable values shared across every gate's l/r/o wire references, not
// one entry per trace row (a gate's L.Row/R.Row/O.Row index into this same
// vector, possibly out of gate order, which is how copy constraints wire
// distinct gates to a shared value). How many of those values are public is
// an attribute of the Index being proved against (spec.md §3), not of the
// witness itself; see index.Index.Public.
type Witness struct {
	Values []fr.Element
}
