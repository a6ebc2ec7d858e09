package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform identifies one of the supported online services.
type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformGitLab    Platform = "gitlab"
	PlatformInstagram Platform = "instagram"
	PlatformLastfm    Platform = "lastfm"
	PlatformPastebin  Platform = "pastebin"
	PlatformPinterest Platform = "pinterest"
	PlatformReddit    Platform = "reddit"
	PlatformSnapchat  Platform = "snapchat"
	PlatformSpotify   Platform = "spotify"
	PlatformTwitter   Platform = "twitter"
	PlatformTumblr    Platform = "tumblr"
	PlatformYahoo     Platform = "yahoo"
	PlatformFirefox   Platform = "firefox"
)

var displayNames = map[Platform]string{
	PlatformGitHub:    "GitHub",
	PlatformGitLab:    "GitLab",
	PlatformInstagram: "Instagram",
	PlatformLastfm:    "Lastfm",
	PlatformPastebin:  "Pastebin",
	PlatformPinterest: "Pinterest",
	PlatformReddit:    "Reddit",
	PlatformSnapchat:  "Snapchat",
	PlatformSpotify:   "Spotify",
	PlatformTwitter:   "Twitter",
	PlatformTumblr:    "Tumblr",
	PlatformYahoo:     "Yahoo",
	PlatformFirefox:   "Firefox",
}

// AllPlatforms returns every supported platform sorted by name.
func AllPlatforms() []Platform {
	platforms := make([]Platform, 0, len(displayNames))
	for platform := range displayNames {
		platforms = append(platforms, platform)
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i] < platforms[j]
	})
	return platforms
}

// DisplayName returns the human readable platform name.
func (p Platform) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return p.DisplayName()
}

// Known reports whether the platform is part of the supported set.
func (p Platform) Known() bool {
	_, ok := displayNames[p]
	return ok
}

// ParsePlatform resolves a platform from a case-insensitive name.
func ParsePlatform(value string) (Platform, error) {
	platform := Platform(strings.ToLower(strings.TrimSpace(value)))
	if !platform.Known() {
		return "", fmt.Errorf("%s is not a valid platform", strings.TrimSpace(value))
	}
	return platform, nil
}

// ParsePlatforms resolves a list of names, dropping duplicates. An empty input selects every platform.
func ParsePlatforms(values []string) ([]Platform, error) {
	seen := make(map[Platform]struct{})
	platforms := make([]Platform, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			platform, err := ParsePlatform(part)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[platform]; ok {
				continue
			}
			seen[platform] = struct{}{}
			platforms = append(platforms, platform)
		}
	}
	if len(platforms) == 0 {
		return AllPlatforms(), nil
	}
	return platforms, nil
}

// Class is the mutually exclusive verdict derived from a Response.
type Class int

const (
	ClassAvailable Class = iota
	ClassUnavailable
	ClassInvalid
	ClassFailed
)

func (c Class) String() string {
	switch c {
	case ClassAvailable:
		return "available"
	case ClassUnavailable:
		return "unavailable"
	case ClassInvalid:
		return "invalid"
	default:
		return "failed"
	}
}

// Response is the outcome of one query against one platform.
//
// Responses are built through the constructors below, which keep the
// success/valid/available flags consistent, and are never mutated afterwards.
type Response struct {
	Platform   Platform  `json:"platform" yaml:"platform"`
	Query      string    `json:"query" yaml:"query"`
	Available  bool      `json:"available" yaml:"available"`
	Valid      bool      `json:"valid" yaml:"valid"`
	Success    bool      `json:"success" yaml:"success"`
	Message    string    `json:"message" yaml:"message"`
	Link       string    `json:"link,omitempty" yaml:"link,omitempty"`
	CheckID    string    `json:"check_id,omitempty" yaml:"check_id,omitempty"`
	ResolvedAt time.Time `json:"resolved_at" yaml:"resolved_at"`
}

// Class reports which of available, unavailable, invalid or failed describes the response.
func (r *Response) Class() Class {
	switch {
	case r == nil || !r.Success:
		return ClassFailed
	case !r.Valid:
		return ClassInvalid
	case r.Available:
		return ClassAvailable
	default:
		return ClassUnavailable
	}
}

// Default messages used when a platform gives none.
const (
	MessageAvailable   = "Available"
	MessageUnavailable = "Unavailable"
	MessageInvalid     = "Invalid"
	MessageFailure     = "Failure"
)

// Available builds a successful, valid, available response.
func Available(platform Platform, query, message string) *Response {
	return newResponse(platform, query, true, true, true, orDefault(message, MessageAvailable), "")
}

// Unavailable builds a response for an identifier that is taken or reserved.
func Unavailable(platform Platform, query, message, link string) *Response {
	return newResponse(platform, query, false, true, true, orDefault(message, MessageUnavailable), link)
}

// Invalid builds a response for an identifier the platform rejects as malformed.
func Invalid(platform Platform, query, message string) *Response {
	return newResponse(platform, query, false, false, true, orDefault(message, MessageInvalid), "")
}

// Failed builds a response for a probe that produced no verdict.
func Failed(platform Platform, query, message string) *Response {
	return newResponse(platform, query, false, false, false, orDefault(message, MessageFailure), "")
}

// UnavailableOrInvalid classifies a platform message with Classify and builds the matching response.
func UnavailableOrInvalid(platform Platform, query, message string, taken []string, link string) *Response {
	if Classify(message, taken) == ClassUnavailable {
		return Unavailable(platform, query, message, link)
	}
	return Invalid(platform, query, message)
}

func newResponse(platform Platform, query string, available, valid, success bool, message, link string) *Response {
	return &Response{
		Platform:   platform,
		Query:      query,
		Available:  available,
		Valid:      valid,
		Success:    success,
		Message:    message,
		Link:       link,
		CheckID:    uuid.New().String(),
		ResolvedAt: time.Now().UTC(),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
