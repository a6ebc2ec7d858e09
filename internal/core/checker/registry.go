package checker

import (
	"errors"
	"fmt"

	"github.com/namelens/handlescan/internal/core"
)

// Descriptor declares what a platform supports and how to build its checker.
type Descriptor struct {
	Capabilities Capabilities
	New          func(*Session) Checker
}

var descriptors = map[core.Platform]Descriptor{
	core.PlatformGitHub: {
		Capabilities: Capabilities{Username: true, Email: true, Prerequest: true},
		New:          func(s *Session) Checker { return NewGitHub(s) },
	},
	core.PlatformGitLab: {
		Capabilities: Capabilities{Username: true},
		New:          func(s *Session) Checker { return NewGitLab(s) },
	},
	core.PlatformInstagram: {
		Capabilities: Capabilities{Username: true, Email: true, Prerequest: true},
		New:          func(s *Session) Checker { return NewInstagram(s) },
	},
	core.PlatformLastfm: {
		Capabilities: Capabilities{Username: true, Email: true, Prerequest: true},
		New:          func(s *Session) Checker { return NewLastfm(s) },
	},
	core.PlatformPastebin: {
		Capabilities: Capabilities{Username: true, Email: true},
		New:          func(s *Session) Checker { return NewPastebin(s) },
	},
	core.PlatformPinterest: {
		Capabilities: Capabilities{Email: true},
		New:          func(s *Session) Checker { return NewPinterest(s) },
	},
	core.PlatformReddit: {
		Capabilities: Capabilities{Username: true},
		New:          func(s *Session) Checker { return NewReddit(s) },
	},
	core.PlatformSnapchat: {
		Capabilities: Capabilities{Username: true, Prerequest: true},
		New:          func(s *Session) Checker { return NewSnapchat(s) },
	},
	core.PlatformSpotify: {
		Capabilities: Capabilities{Email: true},
		New:          func(s *Session) Checker { return NewSpotify(s) },
	},
	core.PlatformTwitter: {
		Capabilities: Capabilities{Username: true, Email: true},
		New:          func(s *Session) Checker { return NewTwitter(s) },
	},
	core.PlatformTumblr: {
		Capabilities: Capabilities{Username: true, Email: true, Prerequest: true},
		New:          func(s *Session) Checker { return NewTumblr(s) },
	},
	core.PlatformYahoo: {
		Capabilities: Capabilities{Username: true, Prerequest: true},
		New:          func(s *Session) Checker { return NewYahoo(s) },
	},
	core.PlatformFirefox: {
		Capabilities: Capabilities{Email: true},
		New:          func(s *Session) Checker { return NewFirefox(s) },
	},
}

// Describe returns the capabilities declared for a platform.
func Describe(platform core.Platform) (Capabilities, bool) {
	d, ok := descriptors[platform]
	return d.Capabilities, ok
}

// Registry maps platforms to live checkers sharing one session.
type Registry struct {
	order        []core.Platform
	checkers     map[core.Platform]Checker
	capabilities map[core.Platform]Capabilities
}

// NewRegistry builds checkers for the given platforms, or for every platform when none are given.
func NewRegistry(session *Session, platforms []core.Platform) (*Registry, error) {
	if len(platforms) == 0 {
		platforms = core.AllPlatforms()
	}
	registry := &Registry{}
	for _, platform := range platforms {
		d, ok := descriptors[platform]
		if !ok {
			return nil, fmt.Errorf("%s is not a valid platform", platform)
		}
		if err := registry.Register(d.Capabilities, d.New(session)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds a checker after validating it against its declared capabilities.
func (r *Registry) Register(caps Capabilities, c Checker) error {
	if c == nil {
		return errors.New("checker is nil")
	}
	platform := c.Platform()
	if err := Validate(caps, c); err != nil {
		return fmt.Errorf("%s: %w", platform, err)
	}
	if r.checkers == nil {
		r.checkers = make(map[core.Platform]Checker)
		r.capabilities = make(map[core.Platform]Capabilities)
	}
	if _, exists := r.checkers[platform]; !exists {
		r.order = append(r.order, platform)
	}
	r.checkers[platform] = c
	r.capabilities[platform] = caps
	return nil
}

// Validate reports a mismatch between declared capabilities and implemented methods.
func Validate(caps Capabilities, c Checker) error {
	_, username := c.(UsernameChecker)
	_, email := c.(EmailChecker)
	_, prerequest := c.(Prerequester)

	switch {
	case !caps.Username && !caps.Email:
		return errors.New("declares neither username nor email checks")
	case caps.Username != username:
		return fmt.Errorf("declares username=%t but CheckUsername implemented=%t", caps.Username, username)
	case caps.Email != email:
		return fmt.Errorf("declares email=%t but CheckEmail implemented=%t", caps.Email, email)
	case caps.Prerequest != prerequest:
		return fmt.Errorf("declares prerequest=%t but Prerequest implemented=%t", caps.Prerequest, prerequest)
	}
	return nil
}

// Checker returns the checker for a platform.
func (r *Registry) Checker(platform core.Platform) (Checker, bool) {
	c, ok := r.checkers[platform]
	return c, ok
}

// Capabilities returns the declared capabilities for a platform.
func (r *Registry) Capabilities(platform core.Platform) (Capabilities, bool) {
	caps, ok := r.capabilities[platform]
	return caps, ok
}

// Platforms returns the registered platforms in registration order.
func (r *Registry) Platforms() []core.Platform {
	return append([]core.Platform(nil), r.order...)
}
