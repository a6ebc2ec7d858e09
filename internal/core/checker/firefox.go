package checker

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const firefoxEmailURL = "https://api.accounts.firefox.com/v1/account/status"

// Firefox checks email addresses against Firefox Accounts.
type Firefox struct {
	base
}

// NewFirefox creates a Firefox checker.
func NewFirefox(session *Session) *Firefox {
	return &Firefox{base: base{platform: core.PlatformFirefox, session: session}}
}

// CheckEmail calls the account status API.
func (c *Firefox) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	r, err := c.post(ctx, c.endpoint("email", firefoxEmailURL), url.Values{"email": {email}}, nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Exists  *bool           `json:"exists"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.Error != nil {
		return core.Failed(c.platform, email, body.Message), nil
	}
	if body.Exists == nil {
		return nil, core.MissingField("exists")
	}
	if *body.Exists {
		return core.Unavailable(c.platform, email, "", ""), nil
	}
	return core.Available(c.platform, email, ""), nil
}
