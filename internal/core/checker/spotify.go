package checker

import (
	"context"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const spotifyEmailURL = "https://spclient.wg.spotify.com/signup/public/v1/account"

// Spotify checks email addresses.
type Spotify struct {
	base
}

// NewSpotify creates a Spotify checker.
func NewSpotify(session *Session) *Spotify {
	return &Spotify{base: base{platform: core.PlatformSpotify, session: session}}
}

// CheckEmail calls the signup validation API.
func (c *Spotify) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	r, err := c.get(ctx, c.endpoint("email", spotifyEmailURL), url.Values{"validate": {"1"}, "email": {email}}, nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Status *int `json:"status"`
		Errors struct {
			Email string `json:"email"`
		} `json:"errors"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.Status == nil {
		return nil, core.MissingField("status")
	}
	switch *body.Status {
	case 1:
		return core.Available(c.platform, email, ""), nil
	case 20:
		return core.Unavailable(c.platform, email, body.Errors.Email, ""), nil
	default:
		return core.Failed(c.platform, email, body.Errors.Email), nil
	}
}
