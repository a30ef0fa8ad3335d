package analytics

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const collectEndpoint = "https://www.google-analytics.com/mp/collect"

// ISink delivers no-results search events to GA4 via the Measurement
// Protocol. Fire-and-forget: the return value only says whether the event was
// handed off, and a failure never changes the reply the user gets.
type ISink interface {
	RecordNoResultsEvent(query string, searchType string) bool
}

type ga4Sink struct {
	measurementID string
	apiSecret     string
	httpClient    *http.Client
	log           *logrus.Logger
}

func New(log *logrus.Logger) ISink {
	return &ga4Sink{
		measurementID: os.Getenv("GA4_MEASUREMENT_ID"),
		apiSecret:     os.Getenv("GA4_API_SECRET"),
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		log:           log,
	}
}

type eventPayload struct {
	ClientID string  `json:"client_id"`
	Events   []event `json:"events"`
}

type event struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

// RecordNoResultsEvent sends only the query length and the search domain,
// never the phrase itself (GDPR: no PII leaves the service).
func (s *ga4Sink) RecordNoResultsEvent(query string, searchType string) bool {
	if s.measurementID == "" || s.apiSecret == "" {
		return false
	}
	if len([]rune(query)) <= 2 {
		return false
	}

	payload := eventPayload{
		ClientID: uuid.NewString(),
		Events: []event{{
			Name: "search_no_results",
			Params: map[string]interface{}{
				"search_term_length": len([]rune(query)),
				"search_type":        searchType,
			},
		}},
	}

	body, err := jsoniter.Marshal(payload)
	if err != nil {
		s.log.Errorf("Failed to encode GA4 payload: %v", err)
		return false
	}

	url := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s", collectEndpoint, s.measurementID, s.apiSecret)

	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		s.log.Warnf("GA4 no-results event failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 300
}

// NewDisabled returns a sink that drops every event; used when analytics is
// not configured and in tests.
func NewDisabled() ISink {
	return disabledSink{}
}

type disabledSink struct{}

func (disabledSink) RecordNoResultsEvent(string, string) bool { return false }
