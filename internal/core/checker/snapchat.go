package checker

import (
	"context"
	"net/http"
	"net/url"
	"regexp"

	"github.com/namelens/handlescan/internal/core"
)

const (
	snapchatTokenURL    = "https://accounts.snapchat.com/accounts/login"
	snapchatUsernameURL = "https://accounts.snapchat.com/accounts/get_username_suggestions"
)

var (
	snapchatTaken       = []string{"is already taken", "is currently unavailable"}
	snapchatXSRFPattern = regexp.MustCompile(`xsrf_token=([\w-]*);`)
)

// Snapchat checks usernames. Snapchat does not tie email addresses to accounts.
type Snapchat struct {
	base
}

// NewSnapchat creates a Snapchat checker.
func NewSnapchat(session *Session) *Snapchat {
	return &Snapchat{base: base{platform: core.PlatformSnapchat, session: session}}
}

// Prerequest reads the xsrf token from the login page cookies.
func (c *Snapchat) Prerequest(ctx context.Context) (*Token, error) {
	r, err := c.get(ctx, c.endpoint("token", snapchatTokenURL), nil, nil)
	if err != nil {
		return nil, err
	}
	// The page sets xsrf_token more than once; the first header carries the usable value.
	for _, header := range r.Header.Values("Set-Cookie") {
		if match := snapchatXSRFPattern.FindStringSubmatch(header); match != nil {
			return &Token{Value: match[1]}, nil
		}
	}
	return nil, nil
}

// Token returns the cached xsrf token.
func (c *Snapchat) Token(ctx context.Context) (*Token, error) {
	return c.token(ctx, c.Prerequest)
}

// CheckUsername asks Snapchat for suggestions on the requested username.
func (c *Snapchat) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{"requested_username": {username}, "xsrf_token": {token.Value}}
	r, err := c.post(ctx, c.endpoint("username", snapchatUsernameURL), form, nil,
		&http.Cookie{Name: "xsrf_token", Value: token.Value})
	if err != nil {
		return nil, err
	}

	var body struct {
		Reference *struct {
			ErrorMessage *string `json:"error_message"`
			StatusCode   string  `json:"status_code"`
		} `json:"reference"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.Reference == nil {
		return nil, core.MissingField("reference")
	}
	if body.Reference.ErrorMessage != nil {
		return core.UnavailableOrInvalid(c.platform, username, *body.Reference.ErrorMessage, snapchatTaken, ""), nil
	}
	if body.Reference.StatusCode == "OK" {
		return core.Available(c.platform, username, ""), nil
	}
	return nil, nil
}
