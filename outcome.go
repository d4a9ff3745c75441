package authflow

import "fmt"

// OutcomeKind tags the three possible results of a strategy invocation.
type OutcomeKind int

const (
	// OutcomeSuccess carries a verified identity.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRejected carries a client-facing reason; the input failed
	// policy or verification. Not a fault.
	OutcomeRejected
	// OutcomeError carries an application fault that must propagate to a
	// generic error handler, never be shown as a rejection message.
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeError:
		return "error"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Rejection reasons surfaced to clients. Each maps to a distinct negative
// path and stays distinguishable end to end.
const (
	ReasonBadCredentials     = "credentials do not meet criteria"
	ReasonUserExists         = "user already exists"
	ReasonUserNotFound       = "user not found"
	ReasonInvalidCredentials = "invalid credentials"
	ReasonNoAuthToken        = "no auth token"
	ReasonInvalidToken       = "invalid token"
	ReasonNoUser             = "no user"
)

// Outcome is the tri-variant result every strategy returns. Exactly one of
// identity, reason, or cause is populated; callers branch on Kind and must
// handle all three.
type Outcome struct {
	kind     OutcomeKind
	identity Identity
	reason   string
	cause    error
}

// Success builds an Outcome carrying a verified identity.
func Success(identity Identity) Outcome {
	return Outcome{kind: OutcomeSuccess, identity: identity}
}

// Rejected builds an Outcome carrying a client-facing rejection reason.
func Rejected(reason string) Outcome {
	return Outcome{kind: OutcomeRejected, reason: reason}
}

// Errored builds an Outcome carrying an application fault.
func Errored(cause error) Outcome {
	return Outcome{kind: OutcomeError, cause: cause}
}

func (o Outcome) Kind() OutcomeKind { return o.kind }

func (o Outcome) Succeeded() bool { return o.kind == OutcomeSuccess }

// Identity returns the verified identity. Only set for OutcomeSuccess.
func (o Outcome) Identity() Identity { return o.identity }

// Reason returns the rejection message. Only set for OutcomeRejected.
func (o Outcome) Reason() string { return o.reason }

// Cause returns the underlying fault. Only set for OutcomeError.
func (o Outcome) Cause() error { return o.cause }

func (o Outcome) String() string {
	switch o.kind {
	case OutcomeSuccess:
		return fmt.Sprintf("success(%s)", o.identity.Email())
	case OutcomeRejected:
		return fmt.Sprintf("rejected(%s)", o.reason)
	default:
		return fmt.Sprintf("error(%v)", o.cause)
	}
}
