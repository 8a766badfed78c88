package domain

import (
	"fmt"
	"strings"
)

// Parameter identifiers as declared to the host.
const (
	ParamInputDataPath  = "inputDataPath"
	ParamDASConnector   = "dasConnector"
	ParamApplicationID  = "applicationId"
	ParamMessageTitle   = "messageTitle"
	ParamMessageContent = "messageContent"
	ParamDocumentID     = "documentId"
)

// ParamType is the declared type the host uses to render a parameter input.
type ParamType string

const (
	TypeInputResource ParamType = "InputResource"
	TypeConnector     ParamType = "Connector"
	TypeString        ParamType = "String"
)

const (
	DefaultConnector      = "/api/publish/MobileBackend/SendNotifications"
	DefaultMessageTitle   = "Push Notification"
	DefaultMessageContent = "A new document is available."
)

type ParamSpec struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Description  string    `json:"description"`
	DefaultValue string    `json:"defaultValue,omitempty"`
	Type         ParamType `json:"type"`
	Required     bool      `json:"required"`
}

type ScriptDescription struct {
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Input       []ParamSpec `json:"input"`
}

// Describe returns the parameter schema the host renders as a configuration form.
func Describe() ScriptDescription {
	return ScriptDescription{
		Description: "Script to send push notifications with Digital Advantage.",
		Icon:        "",
		Input: []ParamSpec{
			{
				ID:          ParamInputDataPath,
				DisplayName: "Input data file path",
				Description: "Path to the data file to read input from (JSON format).",
				Type:        TypeInputResource,
				Required:    true,
			},
			{
				ID:           ParamDASConnector,
				DisplayName:  "DAS connector",
				Description:  "The web endpoint connector configured with the URL of Digital Advantage instance to use.",
				DefaultValue: DefaultConnector,
				Type:         TypeConnector,
				Required:     true,
			},
			{
				ID:          ParamApplicationID,
				DisplayName: "Application ID",
				Description: "The Digital Advantage application identifier.",
				Type:        TypeString,
				Required:    true,
			},
			{
				ID:           ParamMessageTitle,
				DisplayName:  "Message title",
				Description:  "The title of the message to send.",
				DefaultValue: DefaultMessageTitle,
				Type:         TypeString,
				Required:     true,
			},
			{
				ID:           ParamMessageContent,
				DisplayName:  "Message content",
				Description:  "The content of the message to be sent.",
				DefaultValue: DefaultMessageContent,
				Type:         TypeString,
				Required:     true,
			},
			{
				ID:          ParamDocumentID,
				DisplayName: "Document ID",
				Description: "The ID of the document sent along with the notification.",
				Type:        TypeString,
				Required:    true,
			},
		},
	}
}

// Params are the resolved parameter values of one invocation.
// Connector holds the resolved endpoint URL by the time it reaches the dispatcher.
type Params struct {
	InputDataPath  string
	Connector      string
	ApplicationID  string
	MessageTitle   string
	MessageContent string
	DocumentID     string
}

// ParamsFromValues maps host form values onto Params, filling declared defaults
// for values that are absent or blank.
func ParamsFromValues(v map[string]string) Params {
	get := func(id string) string {
		if s := strings.TrimSpace(v[id]); s != "" {
			return v[id]
		}
		for _, p := range Describe().Input {
			if p.ID == id {
				return p.DefaultValue
			}
		}
		return ""
	}
	return Params{
		InputDataPath:  get(ParamInputDataPath),
		Connector:      get(ParamDASConnector),
		ApplicationID:  get(ParamApplicationID),
		MessageTitle:   get(ParamMessageTitle),
		MessageContent: get(ParamMessageContent),
		DocumentID:     get(ParamDocumentID),
	}
}

// Validate reports every required parameter that is empty.
func (p Params) Validate() error {
	var missing []string
	for _, kv := range []struct{ id, v string }{
		{ParamInputDataPath, p.InputDataPath},
		{ParamDASConnector, p.Connector},
		{ParamApplicationID, p.ApplicationID},
		{ParamMessageTitle, p.MessageTitle},
		{ParamMessageContent, p.MessageContent},
		{ParamDocumentID, p.DocumentID},
	} {
		if strings.TrimSpace(kv.v) == "" {
			missing = append(missing, kv.id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingParam, strings.Join(missing, ", "))
	}
	return nil
}
