package entity

// SessionContext is the per-conversation state snapshot. Handlers receive it,
// compute the next snapshot and hand it back to the caller to persist; the
// dialog service never stores it.
type SessionContext struct {
	Municipality  string        `json:"municipality,omitempty"`
	CurrentPath   string        `json:"current_path"`
	Awaiting      Capture       `json:"awaiting"`
	SearchMode    bool          `json:"search_mode,omitempty"`
	SearchContext SearchContext `json:"search_context,omitempty"`
}

// NewSessionContext is the initial state after a municipality is selected.
// Re-selection resets every field back to this shape.
func NewSessionContext(municipality string) SessionContext {
	return SessionContext{
		Municipality: municipality,
		CurrentPath:  "start",
	}
}

func (s SessionContext) HasMunicipality() bool {
	return s.Municipality != ""
}

// TakeCapture consumes the pending single-shot capture. The capture is cleared
// no matter what the caller does with it, so a failed capture can never leave
// the session stuck awaiting input.
func (s *SessionContext) TakeCapture() Capture {
	c := s.Awaiting
	s.Awaiting = Capture{}
	return c
}

// Capture tags the next free-text message with its expected interpretation.
// The zero value means nothing is awaited.
type Capture struct {
	Kind CaptureKind `json:"kind,omitempty"`
	Arg  string      `json:"arg,omitempty"`
}

func (c Capture) Active() bool {
	return c.Kind != CaptureNone
}

type CaptureKind uint8

const (
	CaptureNone CaptureKind = iota
	CaptureMunicipalityName
	CapturePersonName
	CaptureEnvironmentForm
	CaptureProblemDetails
	CaptureTicketNumber
)

var captureKindMap = map[CaptureKind]string{
	CaptureNone:             "",
	CaptureMunicipalityName: "sprawdz_gmine",
	CapturePersonName:       "kontakt_osoba_szczegoly",
	CaptureEnvironmentForm:  "formularz_srodowisko_szczegoly",
	CaptureProblemDetails:   "problem_szczegoly",
	CaptureTicketNumber:     "sprawdz_status",
}

func (c CaptureKind) String() string {
	return captureKindMap[c]
}

// SearchContext selects which dataset predictive search ranks against while
// search mode is active.
type SearchContext uint8

const (
	SearchContextNone SearchContext = iota
	SearchContextContacts
	SearchContextForms
	SearchContextProblems
	SearchContextMunicipalityCheck
	SearchContextStatusCheck
)

var searchContextMap = map[SearchContext]string{
	SearchContextNone:              "",
	SearchContextContacts:          "contacts",
	SearchContextForms:             "forms",
	SearchContextProblems:          "problems",
	SearchContextMunicipalityCheck: "municipality_check",
	SearchContextStatusCheck:       "status_check",
}

func (s SearchContext) String() string {
	return searchContextMap[s]
}

// ParseSearchContext maps the wire name back to the enum; unknown names map
// to SearchContextNone.
func ParseSearchContext(name string) SearchContext {
	for sc, n := range searchContextMap {
		if n != "" && n == name {
			return sc
		}
	}
	return SearchContextNone
}
