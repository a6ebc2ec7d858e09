package checker

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const (
	redditUsernameURL = "https://www.reddit.com/api/check_username.json"
	redditLink        = "https://www.reddit.com/u/{}"
)

var redditTaken = []string{
	"that username is already taken",
	"that username is taken by a deleted account",
}

// Reddit checks usernames. Reddit allows many accounts per email address.
type Reddit struct {
	base
}

// NewReddit creates a Reddit checker.
func NewReddit(session *Session) *Reddit {
	return &Reddit{base: base{platform: core.PlatformReddit, session: session}}
}

// CheckUsername calls the username check API.
func (c *Reddit) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	r, err := c.post(ctx, c.endpoint("username", redditUsernameURL), url.Values{"user": {username}}, nil)
	if err != nil {
		return nil, err
	}

	var body map[string]json.RawMessage
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}

	if raw, ok := body["error"]; ok {
		var code int
		if json.Unmarshal(raw, &code) == nil && code == 429 {
			return nil, core.RateLimited()
		}
	}
	if raw, ok := body["json"]; ok {
		var payload struct {
			Errors [][]any `json:"errors"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, core.WrapError(core.ErrorKindLookup, err)
		}
		if len(payload.Errors) == 0 || len(payload.Errors[0]) < 2 {
			return nil, core.MissingField("json.errors")
		}
		message, ok := payload.Errors[0][1].(string)
		if !ok {
			return nil, core.MissingField("json.errors")
		}
		return core.UnavailableOrInvalid(c.platform, username, message, redditTaken, linkFor(redditLink, username)), nil
	}
	if len(body) == 0 {
		return core.Available(c.platform, username, ""), nil
	}
	return nil, nil
}
