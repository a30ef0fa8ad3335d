package botService

import (
	"context"
	"os"
	"regexp"
	"testing"

	"GminaGolang/internal/api/bot"
	botRepository "GminaGolang/internal/api/bot/repository"
	"GminaGolang/internal/entity"
	"GminaGolang/pkg/analytics"
	"GminaGolang/pkg/log"
	"GminaGolang/pkg/search"
	"GminaGolang/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketRe = regexp.MustCompile(`ZGL-\d{4}`)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	log.NewLogger()
	os.Exit(m.Run())
}

func newTestService() IBotService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	repo := botRepository.NewMemory(logger)
	return NewBotService(logger, repo, search.NewEngine(), analytics.NewDisabled(), nil, nil, utils.New())
}

func startedSession(t *testing.T, svc IBotService) entity.SessionContext {
	t.Helper()

	_, sctx, err := svc.StartSession(context.Background(), "Przykładowa Gmina")
	require.NoError(t, err)
	return sctx
}

func TestStartSessionGreeting(t *testing.T) {
	svc := newTestService()

	reply, sctx, err := svc.StartSession(context.Background(), "Przykładowa Gmina")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Przykładowa Gmina")
	assert.Len(t, reply.Buttons, 5)
	assert.Equal(t, "start", sctx.CurrentPath)
	assert.False(t, sctx.Awaiting.Active())
}

func TestStartSessionEmptyMunicipality(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.StartSession(context.Background(), "   ")
	assert.ErrorIs(t, err, bot.ErrMunicipalityRequired)
}

func TestStartSessionResetsState(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_gmine")
	require.NoError(t, err)
	require.True(t, sctx.Awaiting.Active())

	_, fresh, err := svc.StartSession(context.Background(), "Przykładowa Gmina")
	require.NoError(t, err)
	assert.False(t, fresh.Awaiting.Active())
	assert.False(t, fresh.SearchMode)
	assert.Equal(t, "start", fresh.CurrentPath)
}

func TestStartSessionUnknownMunicipality(t *testing.T) {
	svc := newTestService()

	reply, sctx, err := svc.StartSession(context.Background(), "Gmina Nieznana")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Gmina Nieznana")
	assert.True(t, sctx.HasMunicipality())
}

func TestButtonActionWithoutMunicipality(t *testing.T) {
	svc := newTestService()
	sctx := entity.SessionContext{}

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "znajdz_kontakt")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Sesja wygasła")
}

func TestMainMenuButton(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "main_menu")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Jak mogę Ci pomóc")
	assert.Equal(t, "start", sctx.CurrentPath)
}

func TestUnknownButtonAction(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "teleportacja")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Nie rozpoznaję tej opcji")
}

func TestCheckMunicipalityButtonArmsCapture(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_gmine")

	require.NoError(t, err)
	assert.True(t, reply.InputExpected)
	assert.Equal(t, "sprawdz_gmine", reply.InputContext)
	assert.Equal(t, entity.CaptureMunicipalityName, sctx.Awaiting.Kind)
	assert.True(t, sctx.SearchMode)
	assert.Equal(t, entity.SearchContextMunicipalityCheck, sctx.SearchContext)
}

func TestDepartmentCardButton(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "kontakt_wydzial_odpady")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Referat Gospodarki Komunalnej")
	assert.Contains(t, reply.TextMessage, "odpady@przykladowa.pl")
	assert.Contains(t, reply.TextMessage, "Dostępne online")
}

func TestDepartmentCardUnknownKey(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "kontakt_wydzial_lotnisko")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Nie znaleziono informacji")
}

func TestOfficeCardButton(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "kontakt_urzad")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Urząd Gminy Przykładowa")
	assert.Contains(t, reply.TextMessage, "NIP: 1234567890")
	assert.Contains(t, reply.TextMessage, "REGON: 123456789")
}

func TestFormCategoryButton(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "formularz_odpady")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Deklaracja odpadów komunalnych")
	assert.Contains(t, reply.TextMessage, "https://przykladowa.pl/formularze/odpady.pdf")
}

func TestProblemIntakeButton(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleButtonAction(context.Background(), &sctx, "problem_drogi")

	require.NoError(t, err)
	assert.True(t, reply.InputExpected)
	assert.Equal(t, entity.CaptureProblemDetails, sctx.Awaiting.Kind)
	assert.Equal(t, "drogi", sctx.Awaiting.Arg)
	assert.Equal(t, entity.SearchContextProblems, sctx.SearchContext)
	assert.Contains(t, reply.TextMessage, "infrastruktura@przykladowa.pl")
}

func TestMessageWithoutMunicipality(t *testing.T) {
	svc := newTestService()
	sctx := entity.SessionContext{}

	reply, err := svc.HandleMessage(context.Background(), &sctx, "dzień dobry")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Sesja wygasła")
}

func TestMunicipalityVerificationFound(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_gmine")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Gorzów Wielkopolski")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Gorzów Wielkopolski")
	assert.Contains(t, reply.TextMessage, "zweryfikowana pomyślnie")
	assert.False(t, sctx.Awaiting.Active())
}

func TestMunicipalityVerificationAmbiguous(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_gmine")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Biała")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "kilkanaście gmin")
	assert.True(t, reply.InputExpected)
}

func TestMunicipalityVerificationNotFound(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_gmine")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Atlantyda")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Nie znalazłem gminy")
	assert.Contains(t, reply.TextMessage, "Atlantyda")
}

func TestPersonLookupStrongMatch(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "kontakt_osoba")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Jan Kowalski")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Kierownik Referatu Finansowego")
	assert.Contains(t, reply.TextMessage, "j.kowalski@przykladowa.pl")
}

func TestPersonLookupSurnameOnly(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "kontakt_osoba")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Kowalski")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Kierownik Referatu Finansowego")
}

func TestPersonLookupNotFoundKeepsSearchMode(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "kontakt_osoba")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Xyz Qwertyson")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Nie znaleziono kontaktu")
	assert.True(t, reply.InputExpected)
	require.NotNil(t, reply.SearchMode)
	assert.True(t, *reply.SearchMode)
	assert.True(t, sctx.SearchMode)
	assert.Equal(t, entity.SearchContextContacts, sctx.SearchContext)
	assert.Equal(t, entity.CapturePersonName, sctx.Awaiting.Kind)

	retry, err := svc.HandleMessage(context.Background(), &sctx, "Kowalski")

	require.NoError(t, err)
	assert.Contains(t, retry.TextMessage, "Kierownik Referatu Finansowego")
	assert.False(t, sctx.SearchMode)
	assert.False(t, sctx.Awaiting.Active())
}

func TestEnvironmentFormNotFoundKeepsSearchMode(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "formularz_srodowisko")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "xyzqwabc")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Nie znalazłem formularza")
	assert.True(t, reply.InputExpected)
	require.NotNil(t, reply.SearchMode)
	assert.True(t, *reply.SearchMode)
	assert.True(t, sctx.SearchMode)
	assert.Equal(t, entity.SearchContextForms, sctx.SearchContext)
	assert.Equal(t, entity.CaptureEnvironmentForm, sctx.Awaiting.Kind)

	retry, err := svc.HandleMessage(context.Background(), &sctx, "deklaracja śmieciowa")

	require.NoError(t, err)
	assert.Contains(t, retry.TextMessage, "Deklaracja odpadów komunalnych")
	assert.False(t, sctx.SearchMode)
}

func TestIntentDetectionRoads(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "dziura na ulicy Głównej 15")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "dróg/infrastruktury")
	assert.Contains(t, reply.TextMessage, "dziura na ulicy Głównej 15")
}

func TestIntentFallbackEcho(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "abrakadabra")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "abrakadabra")
	assert.Contains(t, reply.TextMessage, "Nie jestem pewien")
}

func TestTicketStatusValid(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_status")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "zgl-1234")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "ZGL-1234")
	assert.Contains(t, reply.TextMessage, "Przekazano do odpowiedniego wydziału")
}

func TestTicketStatusInvalidFormat(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "sprawdz_status")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "1234")

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "format ZGL-1234")
}

func TestProblemReportIssuesTicket(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "problem_drogi")
	require.NoError(t, err)

	reply, err := svc.HandleMessage(context.Background(), &sctx, "Wielka dziura przy szkole")

	require.NoError(t, err)
	assert.Regexp(t, ticketRe, reply.TextMessage)
	assert.Contains(t, reply.TextMessage, "Zgłoszenie przyjęte")
	assert.False(t, sctx.SearchMode)
	assert.False(t, sctx.Awaiting.Active())
}

func TestProblemLongDescriptionCategorized(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleButtonAction(context.Background(), &sctx, "problem_inne")
	require.NoError(t, err)

	description := "Od dwóch tygodni nikt nie odebrał śmieci z naszej ulicy, kontenery się przepełniają"
	reply, err := svc.HandleMessage(context.Background(), &sctx, description)

	require.NoError(t, err)
	assert.Regexp(t, ticketRe, reply.TextMessage)

	var actions []string
	for _, b := range reply.Buttons {
		actions = append(actions, b.Action)
	}
	assert.Contains(t, actions, "kontakt_wydzial_odpady")
}

func TestSearchSuggestionsContacts(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "Kowalski", "contacts")

	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.LessOrEqual(t, len(candidates), search.DefaultMaxResults)
	assert.Equal(t, bot.CandidatePerson, candidates[0].Type)
	assert.Equal(t, "Jan Kowalski", candidates[0].Title)
	assert.Greater(t, candidates[0].Score, search.DefaultMinScore)
}

func TestSearchSuggestionsForms(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "deklaracja", "forms")

	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, bot.CandidateForm, candidates[0].Type)
	assert.Equal(t, "Deklaracja odpadów komunalnych", candidates[0].Title)
}

func TestSearchSuggestionsProblems(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "smieci", "problems")

	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	assert.Equal(t, bot.CandidateProblem, candidates[0].Type)
}

func TestSearchSuggestionsShortQuery(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "a", "contacts")

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearchSuggestionsUnknownContext(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.SearchSuggestions(context.Background(), &sctx, "Kowalski", "galaktyka")
	assert.ErrorIs(t, err, bot.ErrUnknownSearchContext)
}

func TestSearchSuggestionsWithoutSession(t *testing.T) {
	svc := newTestService()
	sctx := entity.SessionContext{}

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "Kowalski", "contacts")

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSelectionRoundTripPerson(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "Kowalski", "contacts")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	record, err := jsoniter.Marshal(candidates[0].Record)
	require.NoError(t, err)

	reply, err := svc.HandleSelection(context.Background(), &sctx, bot.Selection{
		Type:   candidates[0].Type,
		Record: record,
	})

	require.NoError(t, err)
	assert.Contains(t, reply.TextMessage, "Jan Kowalski")
	assert.Contains(t, reply.TextMessage, "+48 123 456 801")
	require.NotNil(t, reply.SearchMode)
	assert.False(t, *reply.SearchMode)
}

func TestSelectionProblemTemplateIssuesTicket(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	candidates, err := svc.SearchSuggestions(context.Background(), &sctx, "smieci", "problems")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	record, err := jsoniter.Marshal(candidates[0].Record)
	require.NoError(t, err)

	reply, err := svc.HandleSelection(context.Background(), &sctx, bot.Selection{
		Type:   candidates[0].Type,
		Record: record,
	})

	require.NoError(t, err)
	assert.Regexp(t, ticketRe, reply.TextMessage)
	assert.False(t, sctx.SearchMode)
	require.NotNil(t, reply.SearchMode)
	assert.False(t, *reply.SearchMode)
}

func TestSelectionInvalidPayload(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleSelection(context.Background(), &sctx, bot.Selection{
		Type:   bot.CandidatePerson,
		Record: []byte(`{}`),
	})
	assert.ErrorIs(t, err, bot.ErrInvalidSelection)
}

func TestSelectionUnknownType(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.HandleSelection(context.Background(), &sctx, bot.Selection{
		Type:   "planeta",
		Record: []byte(`{}`),
	})
	assert.ErrorIs(t, err, bot.ErrUnknownCandidateType)
}

func TestProcessCustomProblem(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	reply, err := svc.ProcessCustomProblem(context.Background(), &sctx, "Połamane drzewo blokuje chodnik przy ul. Lipowej")

	require.NoError(t, err)
	assert.Regexp(t, ticketRe, reply.TextMessage)
}

func TestProcessCustomProblemEmptyInput(t *testing.T) {
	svc := newTestService()
	sctx := startedSession(t, svc)

	_, err := svc.ProcessCustomProblem(context.Background(), &sctx, "  ")
	assert.ErrorIs(t, err, bot.ErrEmptyEvent)
}

func TestCategorizeProblem(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"nie odebrano śmieci", "odpady"},
		{"dziura w chodniku", "drogi"},
		{"wycinka starych drzew w parku", "środowisko"},
		{"pozwolenie na budowę garażu", "budownictwo"},
		{"zupełnie inna sprawa", "inne"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeProblem(tt.description))
		})
	}
}

func TestTrackNoResultsDisabledSink(t *testing.T) {
	svc := newTestService()
	assert.False(t, svc.TrackNoResults("deklaracja", "forms"))
}
