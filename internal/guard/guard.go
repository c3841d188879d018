package guard

import (
	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/session"
)

// Decision is the outcome of one navigation check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
)

// Sessions is the slice of the session store the guard reads.
type Sessions interface {
	IsLoggedIn() bool
	Current() session.Session
}

// Check gates one navigation attempt. No session, or one whose token
// has expired, redirects to login; a role outside a non-empty allowed
// list redirects to the unauthorized view; anything else renders. The
// check is pure and re-evaluated on every attempt, never cached.
func Check(s Sessions, allowedRoles []domain.Role) Decision {
	if !s.IsLoggedIn() {
		return RedirectLogin
	}

	if len(allowedRoles) == 0 {
		return Allow
	}

	current := s.Current()
	if current.User == nil {
		return RedirectLogin
	}
	for _, role := range allowedRoles {
		if current.User.Role == role {
			return Allow
		}
	}
	return RedirectUnauthorized
}

// RedirectPath maps a deny decision to its target path. Allow has no
// target and returns the empty string.
func RedirectPath(d Decision) string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectUnauthorized:
		return UnauthorizedPath
	default:
		return ""
	}
}
