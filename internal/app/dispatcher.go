package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"das_notify/internal/adapters/observability"
	"das_notify/internal/domain"
)

// Dispatcher turns one stored reservation into one DAS push notification.
type Dispatcher struct {
	files  domain.FileReader
	client domain.HTTPClient
	log    zerolog.Logger
}

func NewDispatcher(f domain.FileReader, c domain.HTTPClient, l zerolog.Logger) *Dispatcher {
	return &Dispatcher{files: f, client: c, log: l}
}

// Execute runs one invocation: read, parse, send, check.
// A parse failure returns before any network call is made.
func (d *Dispatcher) Execute(ctx context.Context, p domain.Params) (domain.Result, error) {
	invID := uuid.NewString()
	l := d.log.With().Str("invocation_id", invID).Logger()

	res, err := d.execute(ctx, l, p)
	observability.ObserveDispatch(outcome(err))
	if err != nil {
		return domain.Result{}, err
	}
	res.InvocationID = invID
	return res, nil
}

func (d *Dispatcher) execute(ctx context.Context, l zerolog.Logger, p domain.Params) (domain.Result, error) {
	if err := p.Validate(); err != nil {
		return domain.Result{}, err
	}
	in, err := d.ReadInput(ctx, p.InputDataPath)
	if err != nil {
		return domain.Result{}, err
	}
	r := in.Clients[0].Reservation
	body, err := d.send(ctx, l, r, p)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{DocumentID: p.DocumentID, ClientID: r.GuestClientID, Response: body}, nil
}

// ReadInput reads and parses the input file through the FileReader.
func (d *Dispatcher) ReadInput(ctx context.Context, path string) (domain.InputPayload, error) {
	data, err := d.files.ReadFile(ctx, path)
	if err != nil {
		return domain.InputPayload{}, fmt.Errorf("read input %s: %w", path, err)
	}
	return ParseInput(path, data)
}

// Send posts the notification for r and returns the compact DAS response body.
func (d *Dispatcher) Send(ctx context.Context, r domain.Reservation, p domain.Params) (json.RawMessage, error) {
	return d.send(ctx, d.log, r, p)
}

func (d *Dispatcher) send(ctx context.Context, l zerolog.Logger, r domain.Reservation, p domain.Params) (json.RawMessage, error) {
	l.Info().Str("document_id", p.DocumentID).Msg("sending push notification")

	body, err := EncodeRequest(BuildRequest(r, p))
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")

	resp, err := d.client.Post(ctx, p.Connector, h, body)
	if err != nil {
		return nil, fmt.Errorf("post notification: %w", err)
	}

	// the body is parsed before the status is looked at, same as the host's fetch contract
	out, err := compactJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: DAS status %d %s: %v", domain.ErrInvalidResponse, resp.StatusCode, resp.StatusText, err)
	}
	if !resp.OK() {
		return nil, &domain.DispatchError{StatusCode: resp.StatusCode, StatusText: resp.StatusText, Body: string(out)}
	}

	l.Info().
		Str("document_id", p.DocumentID).
		RawJSON("response", out).
		Msg("successfully queued push notification")
	return out, nil
}

// BuildRequest maps a reservation and the invocation parameters onto the DAS body.
func BuildRequest(r domain.Reservation, p domain.Params) domain.NotificationRequest {
	return domain.NotificationRequest{
		ApplicationID: p.ApplicationID,
		Notifications: []domain.Notification{{
			ClientIDs: []string{r.GuestClientID},
			IsSilent:  true,
			Message:   p.MessageContent,
			Title:     p.MessageTitle,
			Content:   domain.NotificationContent{DocumentID: p.DocumentID},
		}},
	}
}

// EncodeRequest serializes without HTML escaping and without a trailing newline.
func EncodeRequest(req domain.NotificationRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// compactJSON treats an empty body as null.
func compactJSON(b []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return json.RawMessage("null"), nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrParse):
		return "parse_error"
	case errors.Is(err, domain.ErrDispatch):
		return "dispatch_error"
	case errors.Is(err, domain.ErrMissingParam):
		return "invalid_params"
	default:
		return "error"
	}
}
