package checker

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/namelens/handlescan/internal/core"
)

const (
	githubTokenURL    = "https://github.com/join"
	githubUsernameURL = "https://github.com/signup_check/username"
	githubEmailURL    = "https://github.com/signup_check/email"
	githubLink        = "https://github.com/{}"
)

var githubTaken = []string{"already taken", "unavailable", "not available"}

// GitHub checks usernames and email addresses through the signup form checks.
type GitHub struct {
	base
}

// NewGitHub creates a GitHub checker.
func NewGitHub(session *Session) *GitHub {
	return &GitHub{base: base{platform: core.PlatformGitHub, session: session}}
}

// Prerequest reads the authenticity tokens of the username and email checks on the join page.
func (c *GitHub) Prerequest(ctx context.Context) (*Token, error) {
	r, err := c.get(ctx, c.endpoint("token", githubTokenURL), nil, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	if err != nil {
		return nil, err
	}

	username := githubFormToken(doc, "/signup_check/username")
	email := githubFormToken(doc, "/signup_check/email")
	if username == "" || email == "" {
		return nil, nil
	}
	return &Token{Value: username, Secondary: email, Cookies: r.Cookies}, nil
}

func githubFormToken(doc *goquery.Document, src string) string {
	var token string
	doc.Find(`auto-check[src^="` + src + `"] input[type="hidden"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if value, ok := s.Attr("value"); ok && value != "" {
			token = value
			return false
		}
		return true
	})
	return token
}

// Token returns the cached authenticity tokens.
func (c *GitHub) Token(ctx context.Context) (*Token, error) {
	return c.token(ctx, c.Prerequest)
}

// CheckUsername runs the signup username check.
func (c *GitHub) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	r, err := c.post(ctx, c.endpoint("username", githubUsernameURL),
		url.Values{"value": {username}, "authenticity_token": {token.Value}}, nil, token.Cookies...)
	if err != nil {
		return nil, err
	}

	switch r.Status {
	case http.StatusUnprocessableEntity:
		return core.UnavailableOrInvalid(c.platform, username, stripTags(r.text()), githubTaken, linkFor(githubLink, username)), nil
	case http.StatusOK:
		return core.Available(c.platform, username, ""), nil
	default:
		return nil, nil
	}
}

// CheckEmail runs the signup email check.
func (c *GitHub) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	r, err := c.post(ctx, c.endpoint("email", githubEmailURL),
		url.Values{"value": {email}, "authenticity_token": {token.Secondary}}, nil, token.Cookies...)
	if err != nil {
		return nil, err
	}

	switch r.Status {
	case http.StatusUnprocessableEntity:
		return core.Unavailable(c.platform, email, stripTags(r.text()), ""), nil
	case http.StatusOK:
		return core.Available(c.platform, email, ""), nil
	default:
		return nil, nil
	}
}
