package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/namelens/handlescan/internal/core"
)

const (
	tumblrTokenURL = "https://tumblr.com/register"
	tumblrCheckURL = "https://www.tumblr.com/svc/account/register"
	tumblrLink     = "https://{}.tumblr.com"

	// Placeholders fill the half of the signup form that is not under test.
	tumblrUnusedEmail    = "akc2rW33AuSqQWY8@gmail.com"
	tumblrUnusedUsername = "akc2rW33AuSqQWY8"
	tumblrPassword       = "correcthorsebatterystaple"

	tumblrEmailTaken   = "This email address is already in use."
	tumblrEmailInvalid = "This email address isn't correct. Please try again."
)

var tumblrTaken = []string{
	"That's a good one, but it's taken",
	"Someone beat you to that username",
	"Try something else, that one is spoken for",
}

// Tumblr checks usernames and email addresses through the signup form.
type Tumblr struct {
	base
}

// NewTumblr creates a Tumblr checker.
func NewTumblr(session *Session) *Tumblr {
	return &Tumblr{base: base{platform: core.PlatformTumblr, session: session}}
}

type tumblrReply struct {
	Errors    *[]string       `json:"errors"`
	Usernames json.RawMessage `json:"usernames"`
}

// Prerequest reads the form key from the registration page.
func (c *Tumblr) Prerequest(ctx context.Context) (*Token, error) {
	r, err := c.get(ctx, c.endpoint("token", tumblrTokenURL), nil, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	if err != nil {
		return nil, err
	}
	key := doc.Find(`meta[name="tumblr-form-key"]`).AttrOr("content", "")
	if key == "" {
		return nil, nil
	}
	return &Token{Value: key, Cookies: r.Cookies}, nil
}

// Token returns the cached form key.
func (c *Tumblr) Token(ctx context.Context) (*Token, error) {
	return c.token(ctx, c.Prerequest)
}

func (c *Tumblr) register(ctx context.Context, email, username string) (*tumblrReply, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	form := url.Values{
		"action":          {"signup_account"},
		"form_key":        {token.Value},
		"user[email]":     {email},
		"user[password]":  {tumblrPassword},
		"tumblelog[name]": {username},
	}
	r, err := c.post(ctx, c.endpoint("check", tumblrCheckURL), form, nil, token.Cookies...)
	if err != nil {
		return nil, err
	}
	var body tumblrReply
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.Errors == nil {
		return nil, core.MissingField("errors")
	}
	return &body, nil
}

// CheckUsername submits the username with a placeholder email.
func (c *Tumblr) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	body, err := c.register(ctx, tumblrUnusedEmail, username)
	if err != nil {
		return nil, err
	}
	errs := *body.Errors
	if len(body.Usernames) > 0 || len(errs) > 0 {
		if len(errs) == 0 {
			return nil, core.MissingField("errors")
		}
		return core.UnavailableOrInvalid(c.platform, username, errs[0], tumblrTaken, linkFor(tumblrLink, username)), nil
	}
	return core.Available(c.platform, username, ""), nil
}

// CheckEmail submits the address with a placeholder username.
func (c *Tumblr) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	body, err := c.register(ctx, email, tumblrUnusedUsername)
	if err != nil {
		return nil, err
	}
	errs := *body.Errors
	switch {
	case slices.Contains(errs, tumblrEmailTaken):
		return core.Unavailable(c.platform, email, errs[0], ""), nil
	case slices.Contains(errs, tumblrEmailInvalid):
		return core.Invalid(c.platform, email, errs[0]), nil
	case len(errs) == 0:
		return core.Available(c.platform, email, ""), nil
	default:
		return nil, nil
	}
}
