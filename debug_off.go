//go:build !rowvecdebug

package rowvec

const debugChecks = false
