package domain

import (
	"context"
	"net/http"
)

// FileReader is the host's file-access capability.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// HTTPClient is the host's outbound network capability.
// A non-2xx status is not an error at this level; transport failures are.
type HTTPClient interface {
	Post(ctx context.Context, url string, header http.Header, body []byte) (Response, error)
}
