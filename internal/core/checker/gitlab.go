package checker

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/namelens/handlescan/internal/core"
)

const (
	gitlabUsernameURL = "https://gitlab.com/users/{}/exists"
	gitlabLink        = "https://gitlab.com/{}"
	gitlabInvalidText = "Please create a username with only alphanumeric characters."
)

// GitLab validates username syntax client side, so the rule is applied locally.
var gitlabUsernamePattern = regexp.MustCompile(`^(?:[a-zA-Z0-9_\.][a-zA-Z0-9_\-\.]*[a-zA-Z0-9_\-]|[a-zA-Z0-9_])$`)

// GitLab checks usernames. Email lookups require a captcha.
type GitLab struct {
	base
}

// NewGitLab creates a GitLab checker.
func NewGitLab(session *Session) *GitLab {
	return &GitLab{base: base{platform: core.PlatformGitLab, session: session}}
}

// CheckUsername queries the user existence endpoint.
func (c *GitLab) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	if !gitlabUsernamePattern.MatchString(username) {
		return core.Invalid(c.platform, username, gitlabInvalidText), nil
	}

	endpoint := strings.ReplaceAll(c.endpoint("username", gitlabUsernameURL), "{}", url.PathEscape(username))
	r, err := c.get(ctx, endpoint, nil, map[string]string{"X-Requested-With": "XMLHttpRequest"})
	if err != nil {
		return nil, err
	}
	if r.Status == http.StatusUnauthorized {
		return core.Unavailable(c.platform, username, "", linkFor(gitlabLink, username)), nil
	}

	var body struct {
		Exists *bool `json:"exists"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.Exists == nil {
		return nil, core.MissingField("exists")
	}
	if *body.Exists {
		return core.Unavailable(c.platform, username, "", linkFor(gitlabLink, username)), nil
	}
	return core.Available(c.platform, username, ""), nil
}
