package checker

import (
	"context"
	"net/http"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const (
	lastfmTokenURL = "https://www.last.fm/join"
	lastfmCheckURL = "https://www.last.fm/join/partial/validate"
	lastfmLink     = "https://www.last.fm/user/{}"
)

var lastfmTaken = []string{"Sorry, this username isn't available."}

// Lastfm checks usernames and email addresses through the join form validation.
type Lastfm struct {
	base
}

// NewLastfm creates a Last.fm checker.
func NewLastfm(session *Session) *Lastfm {
	return &Lastfm{base: base{platform: core.PlatformLastfm, session: session}}
}

type lastfmField struct {
	Valid          bool     `json:"valid"`
	SuccessMessage string   `json:"success_message"`
	ErrorMessages  []string `json:"error_messages"`
}

// Prerequest reads the csrftoken cookie from the join page.
func (c *Lastfm) Prerequest(ctx context.Context) (*Token, error) {
	r, err := c.get(ctx, c.endpoint("token", lastfmTokenURL), nil, nil)
	if err != nil {
		return nil, err
	}
	value := cookieValue(r.Cookies, "csrftoken")
	if value == "" {
		return nil, nil
	}
	return &Token{Value: value}, nil
}

// Token returns the cached csrf token.
func (c *Lastfm) Token(ctx context.Context) (*Token, error) {
	return c.token(ctx, c.Prerequest)
}

func (c *Lastfm) validate(ctx context.Context, username, email string) (map[string]*lastfmField, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	form := url.Values{"csrfmiddlewaretoken": {token.Value}, "userName": {username}, "email": {email}}
	headers := map[string]string{
		"Accept":           "*/*",
		"Referer":          c.endpoint("token", lastfmTokenURL),
		"X-Requested-With": "XMLHttpRequest",
	}
	r, err := c.post(ctx, c.endpoint("check", lastfmCheckURL), form, headers,
		&http.Cookie{Name: "csrftoken", Value: token.Value})
	if err != nil {
		return nil, err
	}
	var body map[string]*lastfmField
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// CheckUsername validates the username field of the join form.
func (c *Lastfm) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	body, err := c.validate(ctx, username, "")
	if err != nil {
		return nil, err
	}
	field := body["userName"]
	if field == nil {
		return nil, core.MissingField("userName")
	}
	if field.Valid {
		return core.Available(c.platform, username, field.SuccessMessage), nil
	}
	if len(field.ErrorMessages) == 0 {
		return nil, core.MissingField("userName.error_messages")
	}
	return core.UnavailableOrInvalid(c.platform, username, stripTags(field.ErrorMessages[0]), lastfmTaken, linkFor(lastfmLink, username)), nil
}

// CheckEmail validates the email field of the join form.
func (c *Lastfm) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	body, err := c.validate(ctx, "", email)
	if err != nil {
		return nil, err
	}
	field := body["email"]
	if field == nil {
		return nil, core.MissingField("email")
	}
	if field.Valid {
		return core.Available(c.platform, email, field.SuccessMessage), nil
	}
	if len(field.ErrorMessages) == 0 {
		return nil, core.MissingField("email.error_messages")
	}
	return core.Unavailable(c.platform, email, field.ErrorMessages[0], ""), nil
}
