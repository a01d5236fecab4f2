package markdown

import (
	"net/mail"
	"net/url"
	"strings"
)

// EnsureProtocol turns what a user typed into a link dialog into an absolute
// URL: values with a scheme are kept, e-mail addresses get "mailto:" and
// everything else is assumed to be a web address. Empty input stays empty.
func EnsureProtocol(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "://"),
		strings.HasPrefix(lower, "mailto:"),
		strings.HasPrefix(lower, "tg:"):
	case isEmail(raw):
		raw = "mailto:" + raw
	default:
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}

func isEmail(s string) bool {
	if strings.ContainsAny(s, " /") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
