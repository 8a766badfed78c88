package domain

import "encoding/json"

// NotificationRequest is the body POSTed to the DAS SendNotifications endpoint.
// Field order matters: it is the order on the wire.
type NotificationRequest struct {
	ApplicationID string         `json:"applicationId"`
	Notifications []Notification `json:"notifications"`
}

type Notification struct {
	ClientIDs []string            `json:"clientIds"`
	IsSilent  bool                `json:"isSilent"`
	Message   string              `json:"message"`
	Title     string              `json:"title"`
	Content   NotificationContent `json:"content"`
}

type NotificationContent struct {
	DocumentID string `json:"documentId"`
}

// Response is what the HTTP capability hands back for one POST.
type Response struct {
	StatusCode int
	StatusText string
	Body       []byte
}

// OK mirrors fetch's Response.ok.
func (r Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode <= 299 }

// Result summarizes one acknowledged invocation.
type Result struct {
	InvocationID string          `json:"invocationId"`
	DocumentID   string          `json:"documentId"`
	ClientID     string          `json:"clientId"`
	Response     json.RawMessage `json:"response"`
}
