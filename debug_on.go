//go:build rowvecdebug

package rowvec

// Built with -tags rowvecdebug every mutator re-validates the row bookkeeping.
const debugChecks = true
