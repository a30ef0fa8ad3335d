package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionContext(t *testing.T) {
	sctx := NewSessionContext("Przykładowa Gmina")

	assert.Equal(t, "Przykładowa Gmina", sctx.Municipality)
	assert.Equal(t, "start", sctx.CurrentPath)
	assert.False(t, sctx.Awaiting.Active())
	assert.False(t, sctx.SearchMode)
	assert.True(t, sctx.HasMunicipality())
}

func TestTakeCaptureConsumesOnce(t *testing.T) {
	sctx := NewSessionContext("Przykładowa Gmina")
	sctx.Awaiting = Capture{Kind: CaptureProblemDetails, Arg: "drogi"}

	first := sctx.TakeCapture()
	assert.Equal(t, CaptureProblemDetails, first.Kind)
	assert.Equal(t, "drogi", first.Arg)

	second := sctx.TakeCapture()
	assert.Equal(t, CaptureNone, second.Kind)
	assert.False(t, second.Active())
}

func TestSessionContextJSONRoundTrip(t *testing.T) {
	sctx := NewSessionContext("Przykładowa Gmina")
	sctx.Awaiting = Capture{Kind: CapturePersonName}
	sctx.SearchMode = true
	sctx.SearchContext = SearchContextContacts

	data, err := json.Marshal(sctx)
	require.NoError(t, err)

	var got SessionContext
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sctx, got)
}

func TestParseSearchContext(t *testing.T) {
	tests := []struct {
		name string
		want SearchContext
	}{
		{"contacts", SearchContextContacts},
		{"forms", SearchContextForms},
		{"problems", SearchContextProblems},
		{"municipality_check", SearchContextMunicipalityCheck},
		{"status_check", SearchContextStatusCheck},
		{"unknown", SearchContextNone},
		{"", SearchContextNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSearchContext(tt.name))
		})
	}
}

func TestCaptureKindWireNames(t *testing.T) {
	assert.Equal(t, "sprawdz_gmine", CaptureMunicipalityName.String())
	assert.Equal(t, "kontakt_osoba_szczegoly", CapturePersonName.String())
	assert.Equal(t, "problem_szczegoly", CaptureProblemDetails.String())
	assert.Equal(t, "", CaptureNone.String())
}

func TestDepartmentStatusMappings(t *testing.T) {
	assert.Equal(t, "dostepne_online", DepartmentStatusAvailableOnline.String())
	assert.Equal(t, "Dostępne online", DepartmentStatusAvailableOnline.Label())
	assert.Equal(t, "green-dot", DepartmentStatusAvailableOnline.Color())
	assert.Equal(t, "grey-dot", DepartmentStatusNoData.Color())
	assert.Equal(t, uint8(2), DepartmentStatusRequiresVisit.Value())
}
