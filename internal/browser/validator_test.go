package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsWebURLs(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		rawURL   string
		protocol string
		host     string
	}{
		{"https://example.com", "https", "example.com"},
		{"http://example.com/path?q=1", "http", "example.com"},
		{"example.com", "https", "example.com"}, // scheme assumed
		{"HTTPS://EXAMPLE.COM", "https", "EXAMPLE.COM"},
		{"http://localhost:3000/board", "http", "localhost"},
		{"http://127.0.0.1:8080", "http", "127.0.0.1"},
		{"http://192.168.1.10", "http", "192.168.1.10"},
	}
	for _, tc := range cases {
		t.Run(tc.rawURL, func(t *testing.T) {
			result := v.Validate(tc.rawURL)
			require.True(t, result.IsValid, "expected %q valid, got: %s", tc.rawURL, result.Error)
			assert.Equal(t, tc.protocol, result.Protocol)
			assert.Equal(t, tc.host, result.Host)
		})
	}
}

func TestValidate_BlocksDangerousURLs(t *testing.T) {
	v := NewValidator()

	blocked := []string{
		"javascript:alert(1)",
		"JaVaScRiPt:alert(1)",
		"data:text/html,<h1>x</h1>",
		"vbscript:msgbox",
		"file:///etc/passwd",
		"ftp://example.com/file",
		"https://example.com/<script>alert(1)</script>",
	}
	for _, rawURL := range blocked {
		t.Run(rawURL, func(t *testing.T) {
			assert.False(t, v.QuickValidate(rawURL))
		})
	}
}

func TestValidate_RejectsOverlongURL(t *testing.T) {
	v := NewValidator()

	long := "https://example.com/" + strings.Repeat("a", maxURLLength)
	result := v.Validate(long)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Error, "too long")
}

func TestValidate_RejectsBadHosts(t *testing.T) {
	v := NewValidator()

	for _, rawURL := range []string{"https://", "https://noTLD", "https://bad_host!.com"} {
		t.Run(rawURL, func(t *testing.T) {
			assert.False(t, v.QuickValidate(rawURL))
		})
	}
}

func TestSuggestCorrections(t *testing.T) {
	v := NewValidator()

	assert.Contains(t, v.SuggestCorrections("example.com"), "https://example.com")
	assert.Contains(t, v.SuggestCorrections("http://example.com"), "https://example.com")
	assert.Empty(t, v.SuggestCorrections("https://example.com"))
}

func TestParseSettings(t *testing.T) {
	empty, err := ParseSettings(nil)
	require.NoError(t, err)
	assert.False(t, empty.Enabled)

	blank := "   "
	empty, err = ParseSettings(&blank)
	require.NoError(t, err)
	assert.False(t, empty.Enabled)

	raw := `{"enabled":true,"actions":[{"id":"a","label":"Board","url":"https://example.com","enabled":true,"order":0}]}`
	settings, err := ParseSettings(&raw)
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
	require.Len(t, settings.Actions, 1)
	assert.Equal(t, "Board", settings.Actions[0].Label)

	garbage := "{not json"
	_, err = ParseSettings(&garbage)
	assert.Error(t, err)
}

func TestEnabledActions_FiltersAndSorts(t *testing.T) {
	settings := Settings{
		Enabled: true,
		Actions: []Action{
			{ID: "c", Enabled: true, Order: 2},
			{ID: "a", Enabled: true, Order: 0},
			{ID: "off", Enabled: false, Order: 1},
		},
	}

	actions := settings.EnabledActions()
	require.Len(t, actions, 2)
	assert.Equal(t, "a", actions[0].ID)
	assert.Equal(t, "c", actions[1].ID)

	settings.Enabled = false
	assert.Empty(t, settings.EnabledActions())
}
