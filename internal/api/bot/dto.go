package bot

import "encoding/json"

const (
	CandidatePerson     = "person"
	CandidateDepartment = "department"
	CandidateForm       = "form"
	CandidateProblem    = "problem"
)

type StartSessionRequest struct {
	Municipality string `json:"gmina" validate:"required,min=2,max=120"`
}

type SendRequest struct {
	Message      string     `json:"message,omitempty"`
	ButtonAction string     `json:"button_action,omitempty"`
	Selection    *Selection `json:"selection_data,omitempty"`
}

// Selection is a SearchCandidate the user picked from a previously returned
// suggestion list; Record is the original source record echoed back.
type Selection struct {
	Type   string          `json:"type" validate:"required"`
	Record json.RawMessage `json:"record" validate:"required"`
}

type SearchRequest struct {
	Query   string `json:"query" validate:"required"`
	Context string `json:"context" validate:"required"`
}

type CustomProblemRequest struct {
	CustomInput string `json:"custom_input" validate:"required"`
	Type        string `json:"type,omitempty"`
}

type TrackNoResultsRequest struct {
	Query      string `json:"query" validate:"required"`
	SearchType string `json:"search_type,omitempty"`
}

type Button struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// Reply is the single unit the dialog core hands back to the transport.
type Reply struct {
	TextMessage   string            `json:"text_message"`
	Buttons       []Button          `json:"buttons,omitempty"`
	InputExpected bool              `json:"input_expected,omitempty"`
	InputContext  string            `json:"input_context,omitempty"`
	Suggestions   []SearchCandidate `json:"suggestions,omitempty"`
	SearchMode    *bool             `json:"search_mode,omitempty"`
	SearchContext string            `json:"search_context,omitempty"`
}

// SearchCandidate wraps a ranked dataset record together with its display
// formatting. Record carries the original record so a later selection event
// resolves without re-querying. Never persisted.
type SearchCandidate struct {
	Type     string      `json:"type"`
	Icon     string      `json:"icon"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Detail   string      `json:"detail,omitempty"`
	Score    int         `json:"score"`
	Record   interface{} `json:"record"`
}

type SearchResponse struct {
	Suggestions []SearchCandidate `json:"suggestions"`
}

type ReplyResponse struct {
	Reply *Reply `json:"reply"`
}

type TrackNoResultsResponse struct {
	Status      string `json:"status"`
	GA4Sent     bool   `json:"ga4_sent"`
	QueryLength int    `json:"query_length"`
	SearchType  string `json:"search_type"`
}
