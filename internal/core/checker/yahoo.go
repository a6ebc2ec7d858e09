package checker

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/namelens/handlescan/internal/core"
)

const (
	yahooTokenURL    = "https://login.yahoo.com/account/create"
	yahooUsernameURL = "https://login.yahoo.com/account/module/create?validateField=yid"
)

var (
	yahooCrumbPattern = regexp.MustCompile(`v=1&s=([^\s]*)`)

	yahooMessages = map[string]string{
		"IDENTIFIER_EXISTS":                             "A Yahoo account already exists with this username.",
		"RESERVED_WORD_PRESENT":                         "A reserved word is present in the username",
		"FIELD_EMPTY":                                   "This is required.",
		"SOME_SPECIAL_CHARACTERS_NOT_ALLOWED":           "You can only use letters, numbers, full stops (‘.’) and underscores (‘_’) in your username",
		"CANNOT_END_WITH_SPECIAL_CHARACTER":             "Your username has to end with a letter or a number",
		"CANNOT_HAVE_MORE_THAN_ONE_PERIOD":              "You can’t have more than one ‘.’ in your username.",
		"NEED_AT_LEAST_ONE_ALPHA":                       "Please use at least one letter in your username",
		"CANNOT_START_WITH_SPECIAL_CHARACTER_OR_NUMBER": "Your username has to start with a letter",
		"CONSECUTIVE_SPECIAL_CHARACTERS_NOT_ALLOWED":    "You can’t have more than one ‘.’ or ‘_’ in a row.",
		"LENGTH_TOO_SHORT":                              "That username is too short, please use a longer one.",
		"LENGTH_TOO_LONG":                               "That username is too long, please use a shorter one.",
	}
)

// Yahoo checks usernames through the account creation form validation.
type Yahoo struct {
	base
}

// NewYahoo creates a Yahoo checker.
func NewYahoo(session *Session) *Yahoo {
	return &Yahoo{base: base{platform: core.PlatformYahoo, session: session}}
}

// Prerequest extracts the crumb from the AS cookie set by the signup page.
func (c *Yahoo) Prerequest(ctx context.Context) (*Token, error) {
	r, err := c.get(ctx, c.endpoint("token", yahooTokenURL), nil, nil)
	if err != nil {
		return nil, err
	}
	match := yahooCrumbPattern.FindStringSubmatch(cookieValue(r.Cookies, "AS"))
	if match == nil {
		return nil, nil
	}
	return &Token{Value: match[1], Cookies: r.Cookies}, nil
}

// Token returns the cached crumb.
func (c *Yahoo) Token(ctx context.Context) (*Token, error) {
	return c.token(ctx, c.Prerequest)
}

// CheckUsername validates the yid field of the signup form.
func (c *Yahoo) CheckUsername(ctx context.Context, username string) (*core.Response, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	form := url.Values{"specId": {"yidReg"}, "acrumb": {token.Value}, "yid": {username}}
	r, err := c.post(ctx, c.endpoint("username", yahooUsernameURL), form,
		map[string]string{"X-Requested-With": "XMLHttpRequest"}, token.Cookies...)
	if err != nil {
		return nil, err
	}

	var body struct {
		Errors []struct {
			Name  string `json:"name"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	// The form reports one entry per field; the third is the username.
	if len(body.Errors) < 3 {
		return nil, core.MissingField("errors[2]")
	}
	field := body.Errors[2]
	if field.Name != "yid" {
		return core.Available(c.platform, username, ""), nil
	}

	message := yahooMessage(field.Error)
	if field.Error == "IDENTIFIER_EXISTS" || field.Error == "RESERVED_WORD_PRESENT" {
		return core.Unavailable(c.platform, username, message, ""), nil
	}
	return core.Invalid(c.platform, username, message), nil
}

func yahooMessage(code string) string {
	if message, ok := yahooMessages[code]; ok {
		return message
	}
	text := strings.ToLower(strings.ReplaceAll(code, "_", " "))
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
