package core

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestResponseConstructorsClass(t *testing.T) {
	cases := []struct {
		name     string
		response *Response
		want     Class
	}{
		{"available", Available(PlatformGitHub, "alice", ""), ClassAvailable},
		{"unavailable", Unavailable(PlatformGitHub, "alice", "", "https://github.com/alice"), ClassUnavailable},
		{"invalid", Invalid(PlatformGitHub, "alice", ""), ClassInvalid},
		{"failed", Failed(PlatformGitHub, "alice", ""), ClassFailed},
		{"nil", nil, ClassFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.response.Class())
		})
	}
}

func TestResponseFlagsAreConsistent(t *testing.T) {
	for _, response := range []*Response{
		Available(PlatformReddit, "q", "ok"),
		Unavailable(PlatformReddit, "q", "taken", ""),
		Invalid(PlatformReddit, "q", "bad"),
		Failed(PlatformReddit, "q", "boom"),
	} {
		if !response.Success {
			require.False(t, response.Valid)
			require.False(t, response.Available)
		}
		if !response.Valid {
			require.False(t, response.Available)
		}
		require.NotEmpty(t, response.Message)
		require.NotEmpty(t, response.CheckID)
		require.False(t, response.ResolvedAt.IsZero())
	}
}

func TestDefaultMessages(t *testing.T) {
	require.Equal(t, MessageAvailable, Available(PlatformGitHub, "q", "").Message)
	require.Equal(t, MessageUnavailable, Unavailable(PlatformGitHub, "q", "", "").Message)
	require.Equal(t, MessageInvalid, Invalid(PlatformGitHub, "q", "").Message)
	require.Equal(t, MessageFailure, Failed(PlatformGitHub, "q", "").Message)
}

func TestOnlyUnavailableCarriesLink(t *testing.T) {
	response := UnavailableOrInvalid(PlatformGitHub, "alice", "Username already taken", []string{"already taken"}, "https://github.com/alice")
	require.Equal(t, ClassUnavailable, response.Class())
	require.Equal(t, "https://github.com/alice", response.Link)

	response = UnavailableOrInvalid(PlatformGitHub, "a--b", "Username may not contain --", []string{"already taken"}, "https://github.com/a--b")
	require.Equal(t, ClassInvalid, response.Class())
	require.Empty(t, response.Link)
}

func TestClassify(t *testing.T) {
	taken := []string{"already taken", "unavailable"}
	require.Equal(t, ClassUnavailable, Classify("Username is already taken", taken))
	require.Equal(t, ClassUnavailable, Classify("That name is unavailable.", taken))
	require.Equal(t, ClassInvalid, Classify("Username contains invalid characters", taken))
	require.Equal(t, ClassInvalid, Classify("Already Taken", taken))
	require.Equal(t, ClassInvalid, Classify("anything", nil))
}

func TestClassifyProperties(t *testing.T) {
	containsTaken := func(prefix, needle, suffix string) bool {
		return Classify(prefix+needle+suffix, []string{needle}) == ClassUnavailable
	}
	require.NoError(t, quick.Check(containsTaken, nil))

	absentIsInvalid := func(message string, candidates []string) bool {
		var taken []string
		for _, candidate := range candidates {
			if candidate != "" && !strings.Contains(message, candidate) {
				taken = append(taken, candidate)
			}
		}
		return Classify(message, taken) == ClassInvalid
	}
	require.NoError(t, quick.Check(absentIsInvalid, nil))

	onlyTwoOutcomes := func(message string, taken []string) bool {
		class := Classify(message, taken)
		return class == ClassUnavailable || class == ClassInvalid
	}
	require.NoError(t, quick.Check(onlyTwoOutcomes, nil))
}

func TestParsePlatforms(t *testing.T) {
	platforms, err := ParsePlatforms([]string{"GitHub", "reddit,github", " "})
	require.NoError(t, err)
	require.Equal(t, []Platform{PlatformGitHub, PlatformReddit}, platforms)

	platforms, err = ParsePlatforms(nil)
	require.NoError(t, err)
	require.Len(t, platforms, 13)

	_, err = ParsePlatforms([]string{"myspace"})
	require.EqualError(t, err, "myspace is not a valid platform")
}

func TestPlatformDisplayName(t *testing.T) {
	require.Equal(t, "GitHub", PlatformGitHub.DisplayName())
	require.Equal(t, "GitHub", PlatformGitHub.String())
	require.Equal(t, "unknown", Platform("unknown").DisplayName())
	require.False(t, Platform("unknown").Known())
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]*Response{
		Available(PlatformGitHub, "alice", ""),
		Unavailable(PlatformReddit, "alice", "", ""),
		Invalid(PlatformGitHub, "bob", ""),
		Failed(PlatformReddit, "bob", ""),
		nil,
	}, 0)
	require.Equal(t, 2, summary.Queries)
	require.Equal(t, 4, summary.Responses)
	require.Equal(t, 1, summary.Available)
	require.Equal(t, 1, summary.Unavailable)
	require.Equal(t, 1, summary.Invalid)
	require.Equal(t, 1, summary.Failed)
}
