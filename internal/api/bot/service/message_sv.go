package botService

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"GminaGolang/internal/api/bot"
	"GminaGolang/internal/entity"
	"GminaGolang/pkg/search"

	"github.com/sirupsen/logrus"
)

// descriptionThreshold separates a search phrase from a full problem
// description while the problem path awaits input.
const descriptionThreshold = 60

// strongMatchScore short-circuits a suggestion list into a single card.
const strongMatchScore = 80

var ticketPattern = regexp.MustCompile(`^ZGL-\d{4,6}$`)

// categoryKeywords routes free text to a case category. Order matters: the
// first category with a matching keyword wins.
var categoryKeywords = []struct {
	Category string
	Keywords []string
}{
	{"odpady", []string{"śmieci", "odpadki", "deklaracja śmieciowa", "wywóz śmieci", "odpady", "śmieć"}},
	{"podatki", []string{"podatek", "opłata", "należność", "płatność", "finanse"}},
	{"budownictwo", []string{"budowa", "remont", "pozwolenie", "zgłoszenie budowlane", "budynek"}},
	{"działalność", []string{"firma", "biznes", "rejestracja", "działalność gospodarcza", "przedsiębiorstwo"}},
	{"drogi", []string{"dziura", "uszkodzenie", "naprawa drogi", "infrastruktura", "droga", "chodnik"}},
	{"środowisko", []string{"drzewo", "wycinka", "ochrona środowiska", "zieleń", "las", "park"}},
	{"problemy", []string{"problem", "skarga", "zgłoszenie", "awaria", "usterka", "reklamacja"}},
}

func (s *botService) HandleMessage(ctx context.Context, sctx *entity.SessionContext, message string) (reply *bot.Reply, err error) {
	defer s.recoverReply("handle_message", &reply, &err)

	if !sctx.HasMunicipality() {
		return s.sessionExpiredReply(), nil
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, bot.ErrEmptyEvent
	}

	capture := sctx.TakeCapture()
	sctx.SearchMode = false
	sctx.SearchContext = entity.SearchContextNone

	switch capture.Kind {
	case entity.CaptureMunicipalityName:
		return s.verifyMunicipalityReply(message)
	case entity.CapturePersonName:
		return s.personLookupReply(ctx, sctx, message)
	case entity.CaptureEnvironmentForm:
		return s.environmentFormReply(ctx, sctx, message)
	case entity.CaptureProblemDetails:
		if len([]rune(message)) > descriptionThreshold {
			return s.customProblemReply(ctx, sctx, message)
		}
		return s.confirmProblemReport(ctx, sctx, capture.Arg, message)
	case entity.CaptureTicketNumber:
		return s.ticketStatusReply(message), nil
	}

	return s.smartIntentReply(message), nil
}

// verifyMunicipalityReply checks the name against the verification register.
// Verification is strict: anything outside the register is reported as not
// found instead of being guessed at.
func (s *botService) verifyMunicipalityReply(name string) (*bot.Reply, error) {
	trimmed := strings.TrimSpace(name)
	folded := search.Normalize(trimmed)

	if folded == "biala" {
		return &bot.Reply{
			TextMessage:   "W Polsce jest kilkanaście gmin o tej nazwie. Aby wskazać właściwą, podaj kod pocztowy lub miasto powiatowe.",
			InputExpected: true,
			InputContext:  entity.CaptureMunicipalityName.String(),
		}, nil
	}

	for _, m := range verificationRegister {
		if strings.Contains(folded, m.match) {
			return &bot.Reply{
				TextMessage: fmt.Sprintf(
					"🏛️ **Znaleziono: %s**\n\n📍 Adres: %s\n📞 Telefon: %s\n🌐 Strona: %s\n\n✅ Gmina zweryfikowana pomyślnie.",
					m.name, m.address, m.phone, m.website),
				Buttons: []bot.Button{
					{Text: "Sprawdź inną gminę", Action: actionCheckMunicip},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}, nil
		}
	}

	return &bot.Reply{
		TextMessage: fmt.Sprintf(`❌ Nie znalazłem gminy "%s" w bazie danych. Sprawdź pisownię i spróbuj ponownie.`, trimmed),
		Buttons: []bot.Button{
			{Text: "Spróbuj ponownie", Action: actionCheckMunicip},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

// verificationRegister is the fixed list the municipality check matches
// against. Matching runs on folded text so "Gorzów", "gorzow" and typos with
// stripped diacritics all resolve.
var verificationRegister = []struct {
	match   string
	name    string
	address string
	phone   string
	website string
}{
	{
		match:   "gorzow",
		name:    "Gmina Gorzów Wielkopolski",
		address: "ul. Sikorskiego 3-4, 66-400 Gorzów Wielkopolski",
		phone:   "+48 95 735 75 00",
		website: "www.gorzow.pl",
	},
	{
		match:   "przykladowa",
		name:    "Urząd Gminy Przykładowa",
		address: "ul. Główna 1, 00-001 Przykładowa",
		phone:   "+48 123 456 789",
		website: "https://przykladowa.pl",
	},
	{
		match:   "demo",
		name:    "Urząd Gminy Demo",
		address: "ul. Testowa 5, 00-002 Demo",
		phone:   "+48 987 654 321",
		website: "https://demo.pl",
	},
}

func (s *botService) personLookupReply(ctx context.Context, sctx *entity.SessionContext, query string) (*bot.Reply, error) {
	persons, err := s.repo.ListPersons(ctx)
	if err != nil {
		return nil, err
	}

	// Ranking runs on the bare name: appending position or department would
	// drag whole-string similarity down for exact name queries.
	items := make([]search.Item, 0, len(persons))
	for i := range persons {
		items = append(items, search.Item{
			Text: persons[i].Name,
			Ref:  persons[i],
		})
	}

	matches := s.engine.Rank(query, items)
	if len(matches) == 0 {
		go s.analytics.RecordNoResultsEvent(query, entity.SearchContextContacts.String())
		// A miss is not a dead end, the search stays armed for another try.
		sctx.Awaiting = entity.Capture{Kind: entity.CapturePersonName}
		sctx.SearchMode = true
		sctx.SearchContext = entity.SearchContextContacts
		return &bot.Reply{
			TextMessage:   fmt.Sprintf(`❌ Nie znaleziono kontaktu do osoby "%s". Sprawdź pisownię lub skontaktuj się z centralą urzędu.`, query),
			InputExpected: true,
			InputContext:  entity.CapturePersonName.String(),
			SearchMode:    boolPtr(true),
			SearchContext: entity.SearchContextContacts.String(),
			Buttons: []bot.Button{
				{Text: "Kontakt do centrali", Action: actionContactOffice},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil
	}

	best := matches[0]
	if best.Score >= strongMatchScore {
		return s.personCard(best.Item.Ref.(entity.PersonRecord)), nil
	}

	return &bot.Reply{
		TextMessage: "Znalazłem kilka pasujących osób. Wybierz właściwą z listy:",
		Suggestions: s.personCandidates(matches),
		Buttons: []bot.Button{
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

func (s *botService) personCard(p entity.PersonRecord) *bot.Reply {
	return &bot.Reply{
		TextMessage: fmt.Sprintf(
			"👤 **%s**\n🏢 Stanowisko: %s\n🏛️ Wydział: %s\n📞 Telefon: %s\n✉️ E-mail: %s",
			p.Name, p.Position, p.Department, p.Phone, p.Email),
		Buttons: []bot.Button{
			{Text: "Szukaj innej osoby", Action: actionContactPerson},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}
}

func (s *botService) environmentFormReply(ctx context.Context, sctx *entity.SessionContext, query string) (*bot.Reply, error) {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return nil, err
	}

	items := make([]search.Item, 0, len(rec.Forms))
	for i := range rec.Forms {
		items = append(items, search.Item{
			Text: rec.Forms[i].Name + " " + rec.Forms[i].Category,
			Ref:  rec.Forms[i],
		})
	}

	matches := s.engine.Rank(query, items)
	if len(matches) == 0 {
		go s.analytics.RecordNoResultsEvent(query, entity.SearchContextForms.String())
		// A miss is not a dead end, the search stays armed for another try.
		sctx.Awaiting = entity.Capture{Kind: entity.CaptureEnvironmentForm}
		sctx.SearchMode = true
		sctx.SearchContext = entity.SearchContextForms
		return &bot.Reply{
			TextMessage:   `Nie znalazłem formularza dla tego zapytania. Spróbuj użyć innych słów kluczowych (np. "wycinka drzew", "deklaracja śmieciowa").`,
			InputExpected: true,
			InputContext:  entity.CaptureEnvironmentForm.String(),
			SearchMode:    boolPtr(true),
			SearchContext: entity.SearchContextForms.String(),
			Buttons: []bot.Button{
				{Text: "Inne kategorie", Action: actionDownloadForm},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil
	}

	form := matches[0].Item.Ref.(entity.FormRecord)
	return &bot.Reply{
		TextMessage: fmt.Sprintf(
			"📋 **%s**\n\n🔗 **Link do formularza:** %s\n\n🏢 **Potrzebujesz pomocy?** Skontaktuj się z wydziałem środowiska.",
			form.Name, s.formLink(form.Link)),
		Buttons: []bot.Button{
			{Text: "Kontakt do wydziału", Action: prefixContactDept + "środowisko"},
			{Text: "Inne formularze środowiskowe", Action: prefixForm + "srodowisko"},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

// confirmProblemReport issues the report confirmation with a fresh ticket and
// notifies the owning department by email. A mail failure downgrades to a log
// entry, the user still gets the confirmation.
func (s *botService) confirmProblemReport(ctx context.Context, sctx *entity.SessionContext, problemType, description string) (*bot.Reply, error) {
	ticket, err := s.utils.NewTicketNumber()
	if err != nil {
		return nil, err
	}

	deptEmail := s.departmentEmail(ctx, sctx, problemType)
	if s.mailer != nil && deptEmail != "" {
		if mailErr := s.mailer.SendReportNotification(deptEmail, ticket, description); mailErr != nil {
			s.log.WithFields(logrus.Fields{
				"ticket": ticket,
				"error":  mailErr.Error(),
			}).Warn("Failed to send report notification email")
		}
	}

	s.log.WithFields(logrus.Fields{
		"ticket":       ticket,
		"problem_type": problemType,
		"municipality": sctx.Municipality,
	}).Info("Problem report accepted")

	return &bot.Reply{
		TextMessage: fmt.Sprintf(
			"✅ **Zgłoszenie przyjęte**\n\n📝 **Opis problemu:** %s\n\n📋 **Numer zgłoszenia:** %s\n\n📞 **Status:** Przekazano do odpowiedniego wydziału\n⏰ **Czas realizacji:** 3-5 dni roboczych",
			description, ticket),
		Buttons: []bot.Button{
			{Text: "Zgłoś kolejny problem", Action: actionReportProblem},
			{Text: "Kontakt do wydziału", Action: prefixContactDept + problemType},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

func (s *botService) departmentEmail(ctx context.Context, sctx *entity.SessionContext, deptKey string) string {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return ""
	}
	if dept, ok := rec.Department(deptKey); ok {
		return dept.Email
	}
	return rec.Email
}

func (s *botService) ticketStatusReply(message string) *bot.Reply {
	ticket := strings.ToUpper(strings.TrimSpace(message))

	if !ticketPattern.MatchString(ticket) {
		return &bot.Reply{
			TextMessage:   "Nie rozpoznaję tego numeru zgłoszenia. Numer ma format ZGL-1234. Spróbuj ponownie.",
			InputExpected: true,
			InputContext:  entity.CaptureTicketNumber.String(),
			Buttons: []bot.Button{
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}
	}

	return &bot.Reply{
		TextMessage: fmt.Sprintf(
			"📋 **Zgłoszenie %s**\n\n📞 **Status:** Przekazano do odpowiedniego wydziału\n⏰ **Przewidywany czas realizacji:** 3-5 dni roboczych",
			ticket),
		Buttons: []bot.Button{
			{Text: "Sprawdź inne zgłoszenie", Action: actionCheckStatus},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}
}

// smartIntentReply is the free-text fallback: keyword categorization routes
// the message to the matching case path, anything else echoes the message
// with the main menu.
func (s *botService) smartIntentReply(message string) *bot.Reply {
	lower := strings.ToLower(message)

	for _, entry := range categoryKeywords {
		if !containsAny(lower, entry.Keywords) {
			continue
		}

		switch entry.Category {
		case "drogi":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("🚧 Rozpoznałem, że Twoje pytanie dotyczy **dróg/infrastruktury**.\n\nTwoje zapytanie: \"%s\"\n\nCzy chcesz:", message),
				Buttons: []bot.Button{
					{Text: "Zgłosić uszkodzenie", Action: prefixProblem + "drogi"},
					{Text: "Znaleźć kontakt", Action: prefixContactDept + "drogi"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		case "odpady":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("🗑️ Rozpoznałem, że Twoje pytanie dotyczy **odpadów**.\n\nTwoje zapytanie: \"%s\"\n\nCzy chcesz:", message),
				Buttons: []bot.Button{
					{Text: "Pobrać formularz", Action: prefixForm + "odpady"},
					{Text: "Znaleźć kontakt", Action: prefixContactDept + "odpady"},
					{Text: "Zgłosić problem", Action: prefixProblem + "odpady"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		case "środowisko":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("🌳 Rozpoznałem, że Twoje pytanie dotyczy **ochrony środowiska**.\n\nTwoje zapytanie: \"%s\"\n\nCzy chcesz:", message),
				Buttons: []bot.Button{
					{Text: "Pobrać formularz", Action: prefixForm + "srodowisko"},
					{Text: "Znaleźć kontakt", Action: prefixContactDept + "środowisko"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		case "podatki":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("🏛️ Rozpoznałem, że Twoje pytanie dotyczy **podatków i opłat**.\n\nTwoje zapytanie: \"%s\"\n\nCzy chcesz:", message),
				Buttons: []bot.Button{
					{Text: "Znaleźć kontakt", Action: prefixContactDept + "podatki"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		case "budownictwo":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("🏗️ Rozpoznałem, że Twoje pytanie dotyczy **budownictwa**.\n\nTwoje zapytanie: \"%s\"\n\nCzy chcesz:", message),
				Buttons: []bot.Button{
					{Text: "Pobrać formularz", Action: prefixForm + "budownictwo"},
					{Text: "Znaleźć kontakt", Action: prefixContactDept + "budownictwo"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		case "działalność":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("💼 Rozpoznałem, że Twoje pytanie dotyczy **działalności gospodarczej**.\n\nTwoje zapytanie: \"%s\"\n\nCzy chcesz:", message),
				Buttons: []bot.Button{
					{Text: "Pobrać formularz", Action: prefixForm + "dzialalnosc"},
					{Text: "Znaleźć kontakt", Action: prefixContactDept + "działalność"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		case "problemy":
			return &bot.Reply{
				TextMessage: fmt.Sprintf("📝 Rozpoznałem, że chcesz **zgłosić problem**.\n\nTwoje zapytanie: \"%s\"\n\nWybierz kategorię:", message),
				Buttons: []bot.Button{
					{Text: "Uszkodzenia dróg/chodników", Action: prefixProblem + "drogi"},
					{Text: "Problemy z odpadami", Action: prefixProblem + "odpady"},
					{Text: "Awarie oświetlenia", Action: prefixProblem + "oswietlenie"},
					{Text: "Inne problemy", Action: prefixProblem + "inne"},
					{Text: "Powrót do menu", Action: actionMainMenu},
				},
			}
		}
	}

	return &bot.Reply{
		TextMessage: fmt.Sprintf("🤔 Otrzymałem Twoją wiadomość: \"%s\"\n\nNie jestem pewien, jak najlepiej Ci pomóc. Wybierz jedną z opcji poniżej lub skorzystaj z menu głównego.", message),
		Buttons: []bot.Button{
			{Text: "Znajdź Kontakt", Action: actionFindContact},
			{Text: "Pobierz Formularz", Action: actionDownloadForm},
			{Text: "Zgłoś Problem", Action: actionReportProblem},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
