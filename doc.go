// Package authflow implements a strategy-based authentication pipeline:
// signup and login verify credentials against a write-serialized credential
// store, successful verification issues a signed token into a single-slot
// token store, and a guard state machine resolves each incoming request to
// exactly one of authorized, denied, or faulted.
package authflow
