package checker

import (
	"context"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const (
	twitterUsernameURL = "https://api.twitter.com/i/users/username_available.json"
	twitterEmailURL    = "https://api.twitter.com/i/users/email_available.json"
	twitterLink        = "https://twitter.com/{}"
)

// Covers accounts in use and suspended accounts.
var twitterTaken = []string{"That username has been taken", "unavailable"}

// Twitter checks usernames and email addresses through the public availability API.
type Twitter struct {
	base
}

// NewTwitter creates a Twitter checker.
func NewTwitter(session *Session) *Twitter {
	return &Twitter{base: base{platform: core.PlatformTwitter, session: session}}
}

// CheckUsername queries the username availability API.
func (c *Twitter) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	r, err := c.get(ctx, c.endpoint("username", twitterUsernameURL), url.Values{"username": {username}}, nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Valid *bool   `json:"valid"`
		Desc  *string `json:"desc"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.Desc == nil {
		return nil, core.MissingField("desc")
	}
	if body.Valid == nil {
		return nil, core.MissingField("valid")
	}
	if *body.Valid {
		return core.Available(c.platform, username, *body.Desc), nil
	}
	return core.UnavailableOrInvalid(c.platform, username, *body.Desc, twitterTaken, linkFor(twitterLink, username)), nil
}

// CheckEmail queries the email availability API.
func (c *Twitter) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	r, err := c.get(ctx, c.endpoint("email", twitterEmailURL), url.Values{"email": {email}}, nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Msg   *string `json:"msg"`
		Valid *bool   `json:"valid"`
		Taken *bool   `json:"taken"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	switch {
	case body.Msg == nil:
		return nil, core.MissingField("msg")
	case body.Valid == nil:
		return nil, core.MissingField("valid")
	case body.Taken == nil:
		return nil, core.MissingField("taken")
	}
	switch {
	case !*body.Valid && !*body.Taken:
		return core.Invalid(c.platform, email, *body.Msg), nil
	case *body.Taken:
		return core.Unavailable(c.platform, email, *body.Msg, ""), nil
	default:
		return core.Available(c.platform, email, *body.Msg), nil
	}
}
