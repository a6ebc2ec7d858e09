package checker

import (
	"context"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const (
	instagramTokenURL = "https://instagram.com"
	instagramCheckURL = "https://www.instagram.com/accounts/web_create_ajax/attempt/"
	instagramLink     = "https://www.instagram.com/{}"
)

var instagramTaken = []string{
	"This username isn't available.",
	"A user with that username already exists.",
}

// Instagram checks usernames and email addresses through the signup form.
type Instagram struct {
	base
}

// NewInstagram creates an Instagram checker.
func NewInstagram(session *Session) *Instagram {
	return &Instagram{base: base{platform: core.PlatformInstagram, session: session}}
}

type instagramFieldError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type instagramReply struct {
	Status  string                           `json:"status"`
	Message string                           `json:"message"`
	Errors  map[string][]instagramFieldError `json:"errors"`
}

// Prerequest reads the csrftoken cookie from the landing page.
func (c *Instagram) Prerequest(ctx context.Context) (*Token, error) {
	r, err := c.get(ctx, c.endpoint("token", instagramTokenURL), nil, nil)
	if err != nil {
		return nil, err
	}
	value := cookieValue(r.Cookies, "csrftoken")
	if value == "" {
		return nil, nil
	}
	return &Token{Value: value, Cookies: r.Cookies}, nil
}

// Token returns the cached csrf token.
func (c *Instagram) Token(ctx context.Context) (*Token, error) {
	return c.token(ctx, c.Prerequest)
}

func (c *Instagram) attempt(ctx context.Context, field, value string) (*instagramReply, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	r, err := c.post(ctx, c.endpoint("check", instagramCheckURL), url.Values{field: {value}},
		map[string]string{"x-csrftoken": token.Value}, token.Cookies...)
	if err != nil {
		return nil, err
	}
	var body instagramReply
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// CheckUsername submits the username to the signup dry-run endpoint.
func (c *Instagram) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	body, err := c.attempt(ctx, "username", username)
	if err != nil {
		return nil, err
	}
	if body.Status == "fail" {
		return core.Failed(c.platform, username, body.Message), nil
	}
	if body.Errors == nil {
		return nil, core.MissingField("errors")
	}
	errs, ok := body.Errors["username"]
	if !ok {
		return core.Available(c.platform, username, ""), nil
	}
	if len(errs) == 0 {
		return nil, core.MissingField("errors.username")
	}
	return core.UnavailableOrInvalid(c.platform, username, errs[0].Message, instagramTaken, linkFor(instagramLink, username)), nil
}

// CheckEmail submits the address to the signup dry-run endpoint.
func (c *Instagram) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	body, err := c.attempt(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if body.Status == "fail" {
		return core.Failed(c.platform, email, body.Message), nil
	}
	if body.Errors == nil {
		return nil, core.MissingField("errors")
	}
	errs, ok := body.Errors["email"]
	if !ok {
		return core.Available(c.platform, email, ""), nil
	}
	if len(errs) == 0 {
		return nil, core.MissingField("errors.email")
	}
	if errs[0].Code == "invalid_email" {
		return core.Invalid(c.platform, email, errs[0].Message), nil
	}
	return core.Unavailable(c.platform, email, errs[0].Message, ""), nil
}
