// Package strategy implements the four capital-deployment strategies as
// independent per-day ledger reducers. Each reducer owns its full state
// (shares, cash, invested weeks) so a simulation run never shares mutable
// state with another. The strategies are deliberately not unified behind a
// single interface: their return denominators, caps and trade triggers
// differ in ways an abstraction would blur.
//
// Reducers keep unrounded share/cash state internally and round only the
// ledger entries they emit. Fees are a multiplicative (1-fee) haircut on
// the cash side of every buy and sell.
package strategy

// weekSet tracks calendar weeks in which an investment already happened.
// Local to one reducer; never shared across runs.
type weekSet map[string]struct{}

func (w weekSet) has(key string) bool {
	_, ok := w[key]
	return ok
}

func (w weekSet) add(key string) {
	w[key] = struct{}{}
}
