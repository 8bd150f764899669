// Package access decides whether a caller may perform an operation on a
// poem record. Decisions depend only on the caller's credential state and
// the record's visibility; there is no per-record ownership.
package access

import "github.com/suryaansh001/shayari-backend/internal/apperrors"

// CredentialState describes what the caller presented.
type CredentialState int

const (
	// Anonymous callers sent no bearer token.
	Anonymous CredentialState = iota
	// Authenticated callers sent a token that verified.
	Authenticated
	// InvalidCredential callers sent a token that failed verification.
	InvalidCredential
)

func (s CredentialState) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case InvalidCredential:
		return "invalid"
	default:
		return "anonymous"
	}
}

// Identity is the caller as seen by the policy. Subject is set only when
// State is Authenticated.
type Identity struct {
	Subject string
	State   CredentialState
}

// AnonymousIdentity is a caller that sent no token.
func AnonymousIdentity() Identity { return Identity{State: Anonymous} }

// InvalidIdentity is a caller whose token failed verification.
func InvalidIdentity() Identity { return Identity{State: InvalidCredential} }

// AuthenticatedAs is a caller whose token verified for subject.
func AuthenticatedAs(subject string) Identity {
	return Identity{Subject: subject, State: Authenticated}
}

func (i Identity) IsAuthenticated() bool { return i.State == Authenticated }

// Operation is an action the policy rules on.
type Operation int

const (
	Read Operation = iota
	ListAll
	Create
	Update
	Delete
	React
)

func (o Operation) String() string {
	switch o {
	case Read:
		return "read"
	case ListAll:
		return "list-all"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case React:
		return "react"
	}
	return "unknown"
}

// Visibility is a record's exposure as seen by the policy.
type Visibility int

const (
	// None means the record does not exist. Callers resolve existence
	// before consulting the policy.
	None Visibility = iota
	// Public records are readable and reactable by anyone.
	Public
	// Private records are readable only with a valid token.
	Private
)

// VisibilityOf maps a record's isPublic flag.
func VisibilityOf(isPublic bool) Visibility {
	if isPublic {
		return Public
	}
	return Private
}

// Decision is the policy outcome; Allow is true.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Decide is pure and safe for concurrent use.
func Decide(id Identity, op Operation, vis Visibility) Decision {
	switch op {
	case Read:
		switch vis {
		case Public:
			return Allow
		case Private:
			return Decision(id.IsAuthenticated())
		}
		return Deny
	case ListAll, Create, Update, Delete:
		return Decision(id.IsAuthenticated())
	case React:
		// private records never accept reactions, authenticated or not
		return Decision(vis == Public)
	}
	return Deny
}

// DenialError is the error for a denied identity-gated operation: a missing
// credential is Unauthenticated, a present-but-invalid one is Unauthorized.
func DenialError(id Identity) error {
	switch id.State {
	case Anonymous:
		return apperrors.Unauthenticated("No token provided")
	case InvalidCredential:
		return apperrors.Unauthorized("Invalid or expired token")
	default:
		return apperrors.Unauthorized("Access denied")
	}
}
