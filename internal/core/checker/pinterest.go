package checker

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/namelens/handlescan/internal/core"
)

const pinterestEmailURL = "https://www.pinterest.com/_ngjs/resource/EmailExistsResource/get/"

// Pinterest checks email addresses.
type Pinterest struct {
	base
}

// NewPinterest creates a Pinterest checker.
func NewPinterest(session *Session) *Pinterest {
	return &Pinterest{base: base{platform: core.PlatformPinterest, session: session}}
}

// CheckEmail calls the email existence resource.
func (c *Pinterest) CheckEmail(ctx context.Context, email string) (*core.Response, error) {
	data, err := json.Marshal(map[string]any{
		"options": map[string]string{"email": email},
		"context": map[string]any{},
	})
	if err != nil {
		return nil, err
	}

	r, err := c.get(ctx, c.endpoint("email", pinterestEmailURL), url.Values{"source_url": {"/"}, "data": {string(data)}}, nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		ResourceResponse *struct {
			Data any `json:"data"`
		} `json:"resource_response"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body.ResourceResponse == nil {
		return nil, core.MissingField("resource_response")
	}
	if truthy(body.ResourceResponse.Data) {
		return core.Unavailable(c.platform, email, "", ""), nil
	}
	return core.Available(c.platform, email, ""), nil
}

// truthy reports whether a decoded JSON value is non-empty.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
