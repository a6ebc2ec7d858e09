package checker

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/namelens/handlescan/internal/core"
)

const (
	pastebinUsernameURL  = "https://pastebin.com/ajax/check_username.php"
	pastebinEmailURL     = "https://pastebin.com/ajax/check_email.php"
	pastebinLink         = "https://pastebin.com/u/{}"
	pastebinInvalidEmail = "Please use a valid email address."
)

var (
	pastebinTaken   = []string{"Username not available!"}
	pastebinPattern = regexp.MustCompile(`^<font color="(red|green)">([^<>]+)</font>$`)
)

// Pastebin checks usernames and email addresses through the signup form checks.
type Pastebin struct {
	base
}

// NewPastebin creates a Pastebin checker.
func NewPastebin(session *Session) *Pastebin {
	return &Pastebin{base: base{platform: core.PlatformPastebin, session: session}}
}

func (c *Pastebin) check(ctx context.Context, endpoint string, form url.Values) (color, message string, err error) {
	r, err := c.post(ctx, endpoint, form, nil)
	if err != nil {
		return "", "", err
	}
	match := pastebinPattern.FindStringSubmatch(strings.TrimSuffix(r.text(), "\n"))
	if match == nil {
		return "", "", core.UnexpectedContent(r.contentType())
	}
	return match[1], match[2], nil
}

// CheckUsername runs the signup username check.
func (c *Pastebin) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	color, message, err := c.check(ctx, c.endpoint("username", pastebinUsernameURL),
		url.Values{"action": {"check_username"}, "username": {username}})
	if err != nil {
		return nil, err
	}
	if color == "green" {
		return core.Available(c.platform, username, message), nil
	}
	return core.UnavailableOrInvalid(c.platform, username, message, pastebinTaken, linkFor(pastebinLink, username)), nil
}

// CheckEmail runs the signup email check.
func (c *Pastebin) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	color, message, err := c.check(ctx, c.endpoint("email", pastebinEmailURL),
		url.Values{"action": {"check_email"}, "username": {email}})
	if err != nil {
		return nil, err
	}
	switch {
	case color == "green":
		return core.Available(c.platform, email, message), nil
	case message == pastebinInvalidEmail:
		return core.Invalid(c.platform, email, message), nil
	default:
		return core.Unavailable(c.platform, email, message, ""), nil
	}
}
