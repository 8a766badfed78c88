package das

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidConnector = errors.New("das: invalid connector")

// ResolveConnector turns a connector reference into an absolute endpoint URL.
// Absolute http(s) URLs pass through; relative references are resolved
// against base.
func ResolveConnector(base, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrInvalidConnector)
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConnector, err)
	}
	if u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
			return "", fmt.Errorf("%w: %s", ErrInvalidConnector, ref)
		}
		return u.String(), nil
	}

	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("%w: relative reference %q needs DAS_BASE_URL", ErrInvalidConnector, ref)
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || (b.Scheme != "http" && b.Scheme != "https") || b.Host == "" {
		return "", fmt.Errorf("%w: bad base URL %q", ErrInvalidConnector, base)
	}
	// keep any path prefix on the base, e.g. https://host/tenant + /api/...
	b.Path = strings.TrimRight(b.Path, "/") + "/" + strings.TrimLeft(u.Path, "/")
	b.RawPath = ""
	b.RawQuery = u.RawQuery
	return b.String(), nil
}
