package checker

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/namelens/handlescan/internal/core"
)

func TestSnapchatCheckUsername(t *testing.T) {
	var tokenFetches atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		tokenFetches.Add(1)
		w.Header().Add("Set-Cookie", "sc-a-session=1; Path=/")
		w.Header().Add("Set-Cookie", "xsrf_token=abc-123; Path=/")
		w.Header().Add("Set-Cookie", "xsrf_token=overwritten; Path=/")
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "abc-123", r.PostForm.Get("xsrf_token"))
		cookie, err := r.Cookie("xsrf_token")
		require.NoError(t, err)
		require.Equal(t, "abc-123", cookie.Value)

		switch r.PostForm.Get("requested_username") {
		case "alice":
			writeJSON(w, http.StatusOK, `{"reference":{"status_code":"OK"}}`)
		case "taken":
			writeJSON(w, http.StatusOK, `{"reference":{"status_code":"TAKEN","error_message":"Username taken is already taken"}}`)
		case "bad":
			writeJSON(w, http.StatusOK, `{"reference":{"status_code":"INVALID","error_message":"Usernames must be 3-15 characters"}}`)
		default:
			writeJSON(w, http.StatusOK, `{"reference":{"status_code":"UNKNOWN"}}`)
		}
	})
	session := newTestServer(t, core.PlatformSnapchat, mux, map[string]string{"token": "/login", "username": "/check"})
	checker := NewSnapchat(session)

	response, err := checker.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(context.Background(), "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "Username taken is already taken", response.Message)

	response, err = checker.CheckUsername(context.Background(), "bad")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	response, err = checker.CheckUsername(context.Background(), "other")
	require.NoError(t, err)
	require.Nil(t, response)

	require.Equal(t, int32(1), tokenFetches.Load())
}

func TestSnapchatMissingTokenIsTokenError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {})
	session := newTestServer(t, core.PlatformSnapchat, mux, map[string]string{"token": "/login", "username": "/check"})

	_, err := NewSnapchat(session).CheckUsername(context.Background(), "alice")
	require.Equal(t, core.ErrorKindToken, core.KindOf(err))
}

const githubJoinPage = `<!DOCTYPE html><html><body><form>
<auto-check src="/signup_check/username" required>
  <input type="text" name="user[login]">
  <input type="hidden" data-csrf="true" value="user-token">
</auto-check>
<auto-check src="/signup_check/email" required>
  <input type="email" name="user[email]">
  <input type="hidden" data-csrf="true" value="email-token">
</auto-check>
</form></body></html>`

func TestGitHubChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(githubJoinPage))
	})
	mux.HandleFunc("/signup_check/username", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "user-token", r.PostForm.Get("authenticity_token"))
		switch r.PostForm.Get("value") {
		case "alice":
			w.WriteHeader(http.StatusOK)
		case "taken":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div>Username <strong>taken</strong> is not available.</div>`))
		case "a--b":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`Username may not contain consecutive hyphens.`))
		case "busy":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("/signup_check/email", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "email-token", r.PostForm.Get("authenticity_token"))
		if r.PostForm.Get("value") == "used@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`The email you have provided is already associated with an account.`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	session := newTestServer(t, core.PlatformGitHub, mux, map[string]string{
		"token":    "/join",
		"username": "/signup_check/username",
		"email":    "/signup_check/email",
	})
	checker := NewGitHub(session)
	ctx := context.Background()

	token, err := checker.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "user-token", token.Value)
	require.Equal(t, "email-token", token.Secondary)

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "Username taken is not available.", response.Message)
	require.Equal(t, "https://github.com/taken", response.Link)

	response, err = checker.CheckUsername(ctx, "a--b")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())
	require.Empty(t, response.Link)

	_, err = checker.CheckUsername(ctx, "busy")
	require.Equal(t, core.ErrorKindRateLimit, core.KindOf(err))

	response, err = checker.CheckUsername(ctx, "other")
	require.NoError(t, err)
	require.Nil(t, response)

	response, err = checker.CheckEmail(ctx, "used@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())

	response, err = checker.CheckEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())
}

func TestGitLabCheckUsername(t *testing.T) {
	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/users/"), "/exists") {
		case "alice":
			writeJSON(w, http.StatusOK, `{"exists": false}`)
		case "taken":
			writeJSON(w, http.StatusOK, `{"exists": true}`)
		case "private":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			writeJSON(w, http.StatusOK, `{}`)
		}
	})
	session := newTestServer(t, core.PlatformGitLab, mux, map[string]string{"username": "/users/{}/exists"})
	checker := NewGitLab(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "-bad-")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())
	require.Equal(t, gitlabInvalidText, response.Message)
	require.Equal(t, int32(0), requests.Load())

	response, err = checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "https://gitlab.com/taken", response.Link)

	response, err = checker.CheckUsername(ctx, "private")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())

	_, err = checker.CheckUsername(ctx, "missing")
	require.Equal(t, core.ErrorKindLookup, core.KindOf(err))
}

func TestRedditCheckUsername(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("user") {
		case "alice":
			writeJSON(w, http.StatusOK, `{}`)
		case "taken":
			writeJSON(w, http.StatusOK, `{"json":{"errors":[["USERNAME_TAKEN","that username is already taken","user"]]}}`)
		case "x":
			writeJSON(w, http.StatusOK, `{"json":{"errors":[["BAD_USERNAME","username must be between 3 and 20 characters","user"]]}}`)
		case "busy":
			writeJSON(w, http.StatusTooManyRequests, `{"message":"Too Many Requests","error":429}`)
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}
	})
	session := newTestServer(t, core.PlatformReddit, mux, map[string]string{"username": "/check"})
	checker := NewReddit(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "https://www.reddit.com/u/taken", response.Link)

	response, err = checker.CheckUsername(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	_, err = checker.CheckUsername(ctx, "busy")
	require.Equal(t, core.ErrorKindRateLimit, core.KindOf(err))

	_, err = checker.CheckUsername(ctx, "blocked")
	require.Equal(t, core.ErrorKindUnexpectedContent, core.KindOf(err))
}

func TestPastebinChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/username", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "check_username", r.PostForm.Get("action"))
		switch r.PostForm.Get("username") {
		case "alice":
			_, _ = w.Write([]byte(`<font color="green">Username Available!</font>`))
		case "taken":
			_, _ = w.Write([]byte(`<font color="red">Username not available!</font>` + "\n"))
		case "a":
			_, _ = w.Write([]byte(`<font color="red">Username too short</font>`))
		default:
			_, _ = w.Write([]byte(`<html>captcha</html>`))
		}
	})
	mux.HandleFunc("/email", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "check_email", r.PostForm.Get("action"))
		switch r.PostForm.Get("username") {
		case "bad@example":
			_, _ = w.Write([]byte(`<font color="red">Please use a valid email address.</font>`))
		default:
			_, _ = w.Write([]byte(`<font color="red">Email already in use!</font>`))
		}
	})
	session := newTestServer(t, core.PlatformPastebin, mux, map[string]string{"username": "/username", "email": "/email"})
	checker := NewPastebin(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())
	require.Equal(t, "Username Available!", response.Message)

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "https://pastebin.com/u/taken", response.Link)

	response, err = checker.CheckUsername(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	_, err = checker.CheckUsername(ctx, "captcha")
	require.Equal(t, core.ErrorKindUnexpectedContent, core.KindOf(err))

	response, err = checker.CheckEmail(ctx, "bad@example")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	response, err = checker.CheckEmail(ctx, "used@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
}

func TestTwitterChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/username", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("username") {
		case "alice":
			writeJSON(w, http.StatusOK, `{"valid":true,"reason":"available","desc":"Available!"}`)
		case "jack":
			writeJSON(w, http.StatusOK, `{"valid":false,"reason":"taken","desc":"That username has been taken. Please choose another."}`)
		default:
			writeJSON(w, http.StatusOK, `{"valid":false,"reason":"invalid","desc":"Your username can only contain letters, numbers and '_'"}`)
		}
	})
	mux.HandleFunc("/email", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("email") {
		case "new@example.com":
			writeJSON(w, http.StatusOK, `{"valid":true,"msg":"Available!","taken":false}`)
		case "used@example.com":
			writeJSON(w, http.StatusOK, `{"valid":false,"msg":"Email has already been taken.","taken":true}`)
		default:
			writeJSON(w, http.StatusOK, `{"valid":false,"msg":"Please enter a valid email.","taken":false}`)
		}
	})
	session := newTestServer(t, core.PlatformTwitter, mux, map[string]string{"username": "/username", "email": "/email"})
	checker := NewTwitter(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())
	require.Equal(t, "Available!", response.Message)

	response, err = checker.CheckUsername(ctx, "jack")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "https://twitter.com/jack", response.Link)

	response, err = checker.CheckUsername(ctx, "a b")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	response, err = checker.CheckEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckEmail(ctx, "used@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())

	response, err = checker.CheckEmail(ctx, "bad@example")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())
}

func TestYahooCheckUsername(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/create", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "AS", Value: "v=1&s=crumb123&d=A"})
	})
	mux.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "yidReg", r.PostForm.Get("specId"))
		require.Equal(t, "crumb123&d=A", r.PostForm.Get("acrumb"))
		switch r.PostForm.Get("yid") {
		case "alice":
			writeJSON(w, http.StatusOK, `{"errors":[{"name":"firstName","error":"FIELD_EMPTY"},{"name":"lastName","error":"FIELD_EMPTY"},{"name":"password","error":"FIELD_EMPTY"}]}`)
		case "taken":
			writeJSON(w, http.StatusOK, `{"errors":[{"name":"firstName","error":"FIELD_EMPTY"},{"name":"lastName","error":"FIELD_EMPTY"},{"name":"yid","error":"IDENTIFIER_EXISTS"}]}`)
		case "ab":
			writeJSON(w, http.StatusOK, `{"errors":[{"name":"firstName","error":"FIELD_EMPTY"},{"name":"lastName","error":"FIELD_EMPTY"},{"name":"yid","error":"LENGTH_TOO_SHORT"}]}`)
		default:
			writeJSON(w, http.StatusOK, `{"errors":[{"name":"firstName","error":"FIELD_EMPTY"},{"name":"lastName","error":"FIELD_EMPTY"},{"name":"yid","error":"BRAND_NEW_RULE"}]}`)
		}
	})
	session := newTestServer(t, core.PlatformYahoo, mux, map[string]string{"token": "/create", "username": "/validate"})
	checker := NewYahoo(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "A Yahoo account already exists with this username.", response.Message)

	response, err = checker.CheckUsername(ctx, "ab")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())
	require.Equal(t, "That username is too short, please use a longer one.", response.Message)

	response, err = checker.CheckUsername(ctx, "other")
	require.NoError(t, err)
	require.Equal(t, "Brand new rule", response.Message)
}

func TestTumblrChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><meta name="tumblr-form-key" id="tumblr_form_key" content="!1234|abcd"></head><body></body></html>`))
	})
	mux.HandleFunc("/svc", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "!1234|abcd", r.PostForm.Get("form_key"))
		require.Equal(t, "signup_account", r.PostForm.Get("action"))
		email := r.PostForm.Get("user[email]")
		name := r.PostForm.Get("tumblelog[name]")
		switch {
		case name == "taken":
			writeJSON(w, http.StatusOK, `{"errors":["That's a good one, but it's taken"],"usernames":["taken2"]}`)
		case email == "used@example.com":
			writeJSON(w, http.StatusOK, `{"errors":["This email address is already in use."]}`)
		case email == "bad@example":
			writeJSON(w, http.StatusOK, `{"errors":["This email address isn't correct. Please try again."]}`)
		default:
			writeJSON(w, http.StatusOK, `{"errors":[]}`)
		}
	})
	session := newTestServer(t, core.PlatformTumblr, mux, map[string]string{"token": "/register", "check": "/svc"})
	checker := NewTumblr(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "https://taken.tumblr.com", response.Link)

	response, err = checker.CheckEmail(ctx, "used@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())

	response, err = checker.CheckEmail(ctx, "bad@example")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	response, err = checker.CheckEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())
}

func TestInstagramChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "ctok"})
	})
	mux.HandleFunc("/attempt", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ctok", r.Header.Get("x-csrftoken"))
		require.NoError(t, r.ParseForm())
		switch {
		case r.PostForm.Get("username") == "alice":
			writeJSON(w, http.StatusOK, `{"status":"ok","errors":{}}`)
		case r.PostForm.Get("username") == "taken":
			writeJSON(w, http.StatusOK, `{"status":"ok","errors":{"username":[{"message":"A user with that username already exists.","code":"username_is_taken"}]}}`)
		case r.PostForm.Get("email") == "bad@example":
			writeJSON(w, http.StatusOK, `{"status":"ok","errors":{"email":[{"message":"Enter a valid email address.","code":"invalid_email"}]}}`)
		case r.PostForm.Get("email") == "used@example.com":
			writeJSON(w, http.StatusOK, `{"status":"ok","errors":{"email":[{"message":"Another account is using used@example.com.","code":"email_is_taken"}]}}`)
		default:
			writeJSON(w, http.StatusOK, `{"status":"fail","message":"Please wait a few minutes before you try again."}`)
		}
	})
	session := newTestServer(t, core.PlatformInstagram, mux, map[string]string{"token": "/", "check": "/attempt"})
	checker := NewInstagram(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "https://www.instagram.com/taken", response.Link)

	response, err = checker.CheckEmail(ctx, "bad@example")
	require.NoError(t, err)
	require.Equal(t, core.ClassInvalid, response.Class())

	response, err = checker.CheckEmail(ctx, "used@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())

	response, err = checker.CheckUsername(ctx, "throttled")
	require.NoError(t, err)
	require.Equal(t, core.ClassFailed, response.Class())
	require.Equal(t, "Please wait a few minutes before you try again.", response.Message)
}

func TestLastfmChecks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "lfm"})
	})
	mux.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "lfm", r.PostForm.Get("csrfmiddlewaretoken"))
		require.Equal(t, "http://"+r.Host+"/join", r.Header.Get("Referer"))
		cookie, err := r.Cookie("csrftoken")
		require.NoError(t, err)
		require.Equal(t, "lfm", cookie.Value)
		switch {
		case r.PostForm.Get("userName") == "alice":
			writeJSON(w, http.StatusOK, `{"userName":{"valid":true,"success_message":"Looks good!","error_messages":[]}}`)
		case r.PostForm.Get("userName") == "taken":
			writeJSON(w, http.StatusOK, `{"userName":{"valid":false,"error_messages":["<p>Sorry, this username isn't available.</p>"]}}`)
		case r.PostForm.Get("email") != "":
			writeJSON(w, http.StatusOK, `{"email":{"valid":false,"error_messages":["Sorry, that email address is already registered."]}}`)
		}
	})
	session := newTestServer(t, core.PlatformLastfm, mux, map[string]string{"token": "/join", "check": "/validate"})
	checker := NewLastfm(session)
	ctx := context.Background()

	response, err := checker.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, core.ClassAvailable, response.Class())
	require.Equal(t, "Looks good!", response.Message)

	response, err = checker.CheckUsername(ctx, "taken")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
	require.Equal(t, "Sorry, this username isn't available.", response.Message)
	require.Equal(t, "https://www.last.fm/user/taken", response.Link)

	response, err = checker.CheckEmail(ctx, "used@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassUnavailable, response.Class())
}

func TestEmailOnlyPlatforms(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/spotify", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("validate"))
		switch r.URL.Query().Get("email") {
		case "new@example.com":
			writeJSON(w, http.StatusOK, `{"status":1}`)
		case "used@example.com":
			writeJSON(w, http.StatusOK, `{"status":20,"errors":{"email":"That email is already registered to an account."}}`)
		default:
			writeJSON(w, http.StatusOK, `{"status":2,"errors":{"email":"Something went wrong."}}`)
		}
	})
	mux.HandleFunc("/firefox", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("email") {
		case "new@example.com":
			writeJSON(w, http.StatusOK, `{"exists":false}`)
		case "used@example.com":
			writeJSON(w, http.StatusOK, `{"exists":true}`)
		default:
			writeJSON(w, http.StatusBadRequest, `{"code":400,"errno":107,"error":"Bad Request","message":"Invalid parameter in request body"}`)
		}
	})
	mux.HandleFunc("/pinterest", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/", r.URL.Query().Get("source_url"))
		if strings.Contains(r.URL.Query().Get("data"), "used@example.com") {
			writeJSON(w, http.StatusOK, `{"resource_response":{"data":true}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"resource_response":{"data":false}}`)
	})
	session := newTestServer(t, core.PlatformSpotify, mux, map[string]string{"email": "/spotify"})
	root := strings.TrimSuffix(session.Endpoints[core.PlatformSpotify]["email"], "/spotify")
	session.Endpoints[core.PlatformFirefox] = map[string]string{"email": root + "/firefox"}
	session.Endpoints[core.PlatformPinterest] = map[string]string{"email": root + "/pinterest"}
	ctx := context.Background()

	checkers := []EmailChecker{NewSpotify(session), NewFirefox(session), NewPinterest(session)}
	for _, checker := range checkers {
		response, err := checker.CheckEmail(ctx, "new@example.com")
		require.NoError(t, err, checker.Platform())
		require.Equal(t, core.ClassAvailable, response.Class(), checker.Platform())

		response, err = checker.CheckEmail(ctx, "used@example.com")
		require.NoError(t, err, checker.Platform())
		require.Equal(t, core.ClassUnavailable, response.Class(), checker.Platform())
	}

	response, err := NewSpotify(session).CheckEmail(ctx, "odd@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassFailed, response.Class())
	require.Equal(t, "Something went wrong.", response.Message)

	response, err = NewFirefox(session).CheckEmail(ctx, "odd@example.com")
	require.NoError(t, err)
	require.Equal(t, core.ClassFailed, response.Class())
	require.Equal(t, "Invalid parameter in request body", response.Message)
}
