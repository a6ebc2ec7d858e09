package checker

import (
	"context"
	"net/http"

	"github.com/namelens/handlescan/internal/core"
)

// Checker is the interface all platform checkers implement.
type Checker interface {
	// Platform returns the platform the checker probes.
	Platform() core.Platform
}

// UsernameChecker probes whether a username can be registered.
type UsernameChecker interface {
	Checker
	CheckUsername(ctx context.Context, username string) (*core.Response, error)
}

// EmailChecker probes whether an email address is already in use.
type EmailChecker interface {
	Checker
	CheckEmail(ctx context.Context, email string) (*core.Response, error)
}

// Prerequester fetches a platform token before queries can run.
type Prerequester interface {
	Checker
	// Prerequest performs the token fetch. A nil token with a nil error means none could be found.
	Prerequest(ctx context.Context) (*Token, error)
	// Token returns the cached token, fetching it once on first use.
	Token(ctx context.Context) (*Token, error)
}

// Capabilities declares which probes a platform supports.
type Capabilities struct {
	Username   bool `json:"username" yaml:"username"`
	Email      bool `json:"email" yaml:"email"`
	Prerequest bool `json:"prerequest" yaml:"prerequest"`
}

// Token is the value a platform issues before accepting probes.
type Token struct {
	Value string
	// Secondary carries a second token for platforms that issue one per form.
	Secondary string
	Cookies   []*http.Cookie
}
