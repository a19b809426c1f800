package browser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// maxURLLength bounds stored URLs; anything longer is rejected at the boundary.
const maxURLLength = 2048

var (
	allowedProtocols = map[string]bool{"http": true, "https": true}
	blockedProtocols = map[string]bool{
		"javascript": true,
		"data":       true,
		"file":       true,
		"ftp":        true,
		"vbscript":   true,
	}
	blockedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)data:`),
		regexp.MustCompile(`(?i)vbscript:`),
		regexp.MustCompile(`(?i)<script`),
	}
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidationResult reports whether a URL is safe to store and open.
type ValidationResult struct {
	IsValid  bool   `json:"isValid"`
	Protocol string `json:"protocol"`
	Host     string `json:"host"`
	Error    string `json:"error,omitempty"`
}

func invalidResult(reason string) ValidationResult {
	return ValidationResult{IsValid: false, Protocol: "invalid", Error: reason}
}

// Validator performs the security checks applied before a browser action is
// persisted. The dispatcher re-runs it defensively before each open.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs the full check: length, dangerous patterns, protocol
// allow-list, and host shape.
func (v *Validator) Validate(rawURL string) ValidationResult {
	if len(rawURL) > maxURLLength {
		return invalidResult(fmt.Sprintf("URL too long: %d characters (max: %d)", len(rawURL), maxURLLength))
	}

	for _, pattern := range blockedPatterns {
		if pattern.MatchString(rawURL) {
			return invalidResult("URL contains dangerous patterns")
		}
	}

	parsed, err := parseWithProtocol(rawURL)
	if err != nil {
		return invalidResult(fmt.Sprintf("Invalid URL format: %v", err))
	}

	scheme := strings.ToLower(parsed.Scheme)
	if blockedProtocols[scheme] {
		return invalidResult(fmt.Sprintf("Blocked protocol: %s", scheme))
	}
	if !allowedProtocols[scheme] {
		return invalidResult(fmt.Sprintf("Protocol not allowed: %s", scheme))
	}

	host := parsed.Hostname()
	if host == "" {
		return invalidResult("No host found in URL")
	}
	if !validHost(host) {
		return invalidResult(fmt.Sprintf("Invalid host format: %s", host))
	}

	return ValidationResult{IsValid: true, Protocol: scheme, Host: host}
}

// QuickValidate is the boolean form used for UI feedback.
func (v *Validator) QuickValidate(rawURL string) bool {
	return v.Validate(rawURL).IsValid
}

// SuggestCorrections proposes fixes for common URL mistakes.
func (v *Validator) SuggestCorrections(rawURL string) []string {
	var suggestions []string
	if !strings.Contains(rawURL, "://") && rawURL != "" {
		suggestions = append(suggestions, "https://"+rawURL)
	}
	if strings.HasPrefix(rawURL, "http://") {
		suggestions = append(suggestions, strings.Replace(rawURL, "http://", "https://", 1))
	}
	return suggestions
}

// parseWithProtocol parses the URL, assuming https:// when no scheme is given.
func parseWithProtocol(rawURL string) (*url.URL, error) {
	if strings.Contains(rawURL, "://") {
		return url.Parse(rawURL)
	}
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Scheme != "" {
		// Schemes like "javascript:" parse without "://".
		return parsed, nil
	}
	return url.Parse("https://" + rawURL)
}

func validHost(host string) bool {
	if host == "" {
		return false
	}
	// Allow localhost and private addresses for development.
	if host == "localhost" || strings.HasPrefix(host, "127.") || strings.HasPrefix(host, "192.168.") {
		return true
	}
	if !strings.Contains(host, ".") {
		return false
	}
	return domainPattern.MatchString(host)
}
