// Package checkpoint signs and verifies the root of a Merkle Mountain Range
// view as a COSE Sign1 message over a cbor ViewState.
package checkpoint
