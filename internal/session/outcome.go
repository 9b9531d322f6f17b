package session

import (
	"net/url"

	apperrors "c2panel/internal/errors"
)

// Outcome is the result of a guard check.
type Outcome int

const (
	Allowed Outcome = iota
	Unauthenticated
	SessionExpired
	Unauthorized
)

// Reason codes carried in the message query parameter.
const (
	ReasonSessionExpired = "session_expired"
	ReasonUnauthorized   = "unauthorized"
)

// Reason returns the machine-readable code attached to the redirect, if any.
func (o Outcome) Reason() string {
	switch o {
	case SessionExpired:
		return ReasonSessionExpired
	case Unauthorized:
		return ReasonUnauthorized
	}
	return ""
}

// Err returns the sentinel error for a failed outcome, nil when allowed.
func (o Outcome) Err() error {
	switch o {
	case Allowed:
		return nil
	case Unauthenticated:
		return apperrors.ErrSessionNotFound
	case SessionExpired:
		return apperrors.ErrSessionExpired
	}
	return apperrors.ErrUnauthorized
}

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case Unauthenticated:
		return "unauthenticated"
	case SessionExpired:
		return "session_expired"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// RedirectURL returns target with message=<reason> appended for outcomes that carry a reason.
func RedirectURL(target string, o Outcome) string {
	return WithMessage(target, o.Reason())
}

// WithMessage appends message=msg to target; an empty msg leaves target unchanged.
func WithMessage(target, msg string) string {
	if msg == "" {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("message", msg)
	u.RawQuery = q.Encode()
	return u.String()
}
