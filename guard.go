package authflow

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// GuardState names a node in the guard's state machine.
type GuardState string

const (
	GuardStart        GuardState = "start"
	GuardExtractToken GuardState = "extract_token"
	GuardNoToken      GuardState = "no_token"
	GuardHasToken     GuardState = "has_token"
	GuardDecoding     GuardState = "decoding"

	// Terminal states. Every request reaches exactly one of these.
	GuardDenied     GuardState = "denied"
	GuardErrored    GuardState = "errored"
	GuardAuthorized GuardState = "authorized"
)

// Decision is the guard's terminal verdict for one request. Identity is set
// only for GuardAuthorized, Reason only for GuardDenied, Cause only for
// GuardErrored — the downstream handler never sees a partial mix.
type Decision struct {
	State    GuardState
	Identity Identity
	Reason   string
	Cause    error
}

func (d Decision) Authorized() bool { return d.State == GuardAuthorized }
func (d Decision) Denied() bool     { return d.State == GuardDenied }
func (d Decision) Faulted() bool    { return d.State == GuardErrored }

// TokenGuard walks a raw incoming request through token extraction and
// verification. A missing token short-circuits to Denied before the token
// strategy — and therefore the codec — is ever invoked, which keeps "no
// token" observably distinct from "invalid token".
type TokenGuard struct {
	tokens   TokenStore
	strategy Strategy
	logger   Logger
}

func NewTokenGuard(tokens TokenStore, strategy Strategy) *TokenGuard {
	return &TokenGuard{
		tokens:   tokens,
		strategy: strategy,
		logger:   defLogger{},
	}
}

func (g *TokenGuard) WithLogger(logger Logger) *TokenGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Authorize runs the state machine to its terminal state.
func (g *TokenGuard) Authorize(ctx context.Context) Decision {
	state := GuardStart
	token := ""

	for {
		switch state {
		case GuardStart:
			state = GuardExtractToken

		case GuardExtractToken:
			raw, err := g.tokens.Read(ctx)
			if err != nil {
				return Decision{
					State: GuardErrored,
					Cause: goerrors.Wrap(err, goerrors.CategoryInternal, "guard failed to read token store"),
				}
			}
			if raw == "" {
				state = GuardNoToken
			} else {
				token = raw
				state = GuardHasToken
			}

		case GuardNoToken:
			return Decision{State: GuardDenied, Reason: ReasonNoAuthToken}

		case GuardHasToken:
			state = GuardDecoding

		case GuardDecoding:
			outcome := g.strategy.Authenticate(ctx, &Request{Token: token})
			switch outcome.Kind() {
			case OutcomeSuccess:
				return Decision{State: GuardAuthorized, Identity: outcome.Identity()}
			case OutcomeRejected:
				return Decision{State: GuardDenied, Reason: outcome.Reason()}
			default:
				return Decision{State: GuardErrored, Cause: outcome.Cause()}
			}

		default:
			return Decision{
				State: GuardErrored,
				Cause: goerrors.New("guard reached an unknown state", goerrors.CategoryInternal),
			}
		}
	}
}
