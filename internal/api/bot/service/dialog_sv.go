package botService

import (
	"context"
	"fmt"
	"strings"

	"GminaGolang/internal/api/bot"
	"GminaGolang/internal/entity"
	contextPkg "GminaGolang/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *botService) StartSession(ctx context.Context, municipality string) (reply *bot.Reply, sctx entity.SessionContext, err error) {
	defer s.recoverReply("start_session", &reply, &err)

	requestID := contextPkg.GetRequestID(ctx)

	municipality = strings.TrimSpace(municipality)
	if municipality == "" {
		return nil, entity.SessionContext{}, bot.ErrMunicipalityRequired
	}

	rec, err := s.repo.GetMunicipality(ctx, municipality)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"municipality": municipality,
			"error":        err.Error(),
		}).Error("Failed to resolve municipality on session start")
		return nil, entity.SessionContext{}, err
	}

	sctx = entity.NewSessionContext(rec.Name)

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"municipality": rec.Name,
		"placeholder":  rec.Placeholder,
	}).Info("Dialog session started")

	return s.greeting(rec.Name), sctx, nil
}

func (s *botService) HandleButtonAction(ctx context.Context, sctx *entity.SessionContext, action string) (reply *bot.Reply, err error) {
	defer s.recoverReply("handle_button_action", &reply, &err)

	if !sctx.HasMunicipality() {
		return s.sessionExpiredReply(), nil
	}

	// Every button press leaves the previous capture and search state behind;
	// branches that expect input re-arm them below.
	sctx.CurrentPath = action
	sctx.TakeCapture()
	sctx.SearchMode = false
	sctx.SearchContext = entity.SearchContextNone

	parsed := parseAction(action)

	switch parsed.Kind {
	case actionTopLevel:
		return s.handleTopLevelAction(ctx, sctx, parsed.Token)
	case actionDepartmentCard:
		return s.departmentCard(ctx, sctx, parsed.Arg)
	case actionFormCategory:
		return s.formCategoryReply(ctx, sctx, parsed.Arg)
	case actionProblemCategory:
		return s.problemIntakeReply(ctx, sctx, parsed.Arg)
	default:
		return &bot.Reply{
			TextMessage: "Nie rozpoznaję tej opcji. Wybierz jedną z dostępnych opcji.",
			Buttons: []bot.Button{
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil
	}
}

func (s *botService) handleTopLevelAction(ctx context.Context, sctx *entity.SessionContext, token string) (*bot.Reply, error) {
	switch token {
	case actionFindContact:
		return &bot.Reply{
			TextMessage: "Szukasz kontaktu do całego urzędu, konkretnego wydziału czy osoby?",
			Buttons: []bot.Button{
				{Text: "Urząd (Dane Ogólne)", Action: actionContactOffice},
				{Text: "Wydział/Referat", Action: actionContactDept},
				{Text: "Konkretna Osoba", Action: actionContactPerson},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil

	case actionDownloadForm:
		return &bot.Reply{
			TextMessage: "Jakiej sprawy dotyczy formularz? Wybierz kategorię:",
			Buttons: []bot.Button{
				{Text: "Budownictwo", Action: prefixForm + "budownictwo"},
				{Text: "Ochrona Środowiska", Action: prefixForm + "srodowisko"},
				{Text: "Działalność Gospodarcza", Action: prefixForm + "dzialalnosc"},
				{Text: "Odpady", Action: prefixForm + "odpady"},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil

	case actionReportProblem:
		return &bot.Reply{
			TextMessage: "Jakiego typu problem chcesz zgłosić? Wybierz kategorię:",
			Buttons: []bot.Button{
				{Text: "Uszkodzenia dróg/chodników", Action: prefixProblem + "drogi"},
				{Text: "Problemy z odpadami", Action: prefixProblem + "odpady"},
				{Text: "Awarie oświetlenia", Action: prefixProblem + "oswietlenie"},
				{Text: "Inne problemy", Action: prefixProblem + "inne"},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil

	case actionCheckMunicip:
		sctx.Awaiting = entity.Capture{Kind: entity.CaptureMunicipalityName}
		sctx.SearchMode = true
		sctx.SearchContext = entity.SearchContextMunicipalityCheck
		return &bot.Reply{
			TextMessage:   "Podaj nazwę gminy, którą chcesz zweryfikować.",
			InputExpected: true,
			InputContext:  entity.CaptureMunicipalityName.String(),
			SearchMode:    boolPtr(true),
			SearchContext: entity.SearchContextMunicipalityCheck.String(),
		}, nil

	case actionCheckStatus:
		sctx.Awaiting = entity.Capture{Kind: entity.CaptureTicketNumber}
		sctx.SearchMode = true
		sctx.SearchContext = entity.SearchContextStatusCheck
		return &bot.Reply{
			TextMessage:   "Podaj numer zgłoszenia (np. ZGL-1234), którego status chcesz sprawdzić.",
			InputExpected: true,
			InputContext:  entity.CaptureTicketNumber.String(),
			SearchMode:    boolPtr(true),
			SearchContext: entity.SearchContextStatusCheck.String(),
		}, nil

	case actionContactOffice:
		return s.officeCard(ctx, sctx)

	case actionContactDept:
		return &bot.Reply{
			TextMessage: "Wybierz kategorię sprawy:",
			Buttons: []bot.Button{
				{Text: "Odpady", Action: prefixContactDept + "odpady"},
				{Text: "Podatki", Action: prefixContactDept + "podatki"},
				{Text: "Budownictwo", Action: prefixContactDept + "budownictwo"},
				{Text: "Drogi/Infrastruktura", Action: prefixContactDept + "drogi"},
				{Text: "Powrót", Action: actionFindContact},
			},
		}, nil

	case actionContactPerson:
		sctx.Awaiting = entity.Capture{Kind: entity.CapturePersonName}
		sctx.SearchMode = true
		sctx.SearchContext = entity.SearchContextContacts
		return &bot.Reply{
			TextMessage:   "Podaj imię i nazwisko osoby, której kontakt Cię interesuje.",
			InputExpected: true,
			InputContext:  entity.CapturePersonName.String(),
			SearchMode:    boolPtr(true),
			SearchContext: entity.SearchContextContacts.String(),
		}, nil

	case actionMainMenu, actionRestart:
		sctx.CurrentPath = "start"
		return s.greeting(sctx.Municipality), nil
	}

	return &bot.Reply{
		TextMessage: "Nie rozpoznaję tej opcji. Wybierz jedną z dostępnych opcji.",
		Buttons: []bot.Button{
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

func (s *botService) greeting(municipality string) *bot.Reply {
	return &bot.Reply{
		TextMessage: fmt.Sprintf(
			"Witaj. Jestem Adept, wirtualny asystent urzędu. Pomagam w sprawach gminy %s. Jak mogę Ci pomóc?",
			municipality),
		Buttons: []bot.Button{
			{Text: "Znajdź Kontakt", Action: actionFindContact},
			{Text: "Pobierz Formularz", Action: actionDownloadForm},
			{Text: "Zgłoś Problem", Action: actionReportProblem},
			{Text: "Sprawdź Gminę", Action: actionCheckMunicip},
			{Text: "Sprawdź Status", Action: actionCheckStatus},
		},
	}
}

func (s *botService) sessionExpiredReply() *bot.Reply {
	return &bot.Reply{
		TextMessage: "Sesja wygasła. Proszę wybrać gminę ponownie.",
		Buttons: []bot.Button{
			{Text: "Powrót do wyboru gminy", Action: actionRestart},
		},
	}
}

func (s *botService) officeCard(ctx context.Context, sctx *entity.SessionContext) (*bot.Reply, error) {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return nil, err
	}

	card := fmt.Sprintf(
		"📍 %s\n🏢 Adres: %s\n📞 Telefon: %s\n✉️ E-mail: %s\n🏛️ NIP: %s\n📊 REGON: %s",
		rec.OfficeName, rec.Address, rec.Phone, rec.Email, rec.NIP, rec.REGON)

	return &bot.Reply{
		TextMessage: card,
		Buttons: []bot.Button{
			{Text: "Inne kontakty", Action: actionFindContact},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

func (s *botService) departmentCard(ctx context.Context, sctx *entity.SessionContext, deptKey string) (*bot.Reply, error) {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return nil, err
	}

	dept, ok := rec.Department(deptKey)
	if !ok {
		return &bot.Reply{
			TextMessage: "Nie znaleziono informacji o tym kontakcie.",
			Buttons: []bot.Button{
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil
	}

	card := fmt.Sprintf(
		"🏢 %s\n📞 Telefon: %s\n✉️ E-mail: %s\n🕐 Godziny: %s\nStatus dostępności: %s",
		dept.Name, dept.Phone, dept.Email, dept.OfficeHours, dept.Status.Label())

	return &bot.Reply{
		TextMessage: card,
		Buttons: []bot.Button{
			{Text: "Inne wydziały", Action: actionContactDept},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

func (s *botService) formCategoryReply(ctx context.Context, sctx *entity.SessionContext, category string) (*bot.Reply, error) {
	switch category {
	case "srodowisko":
		sctx.Awaiting = entity.Capture{Kind: entity.CaptureEnvironmentForm}
		sctx.SearchMode = true
		sctx.SearchContext = entity.SearchContextForms
		return &bot.Reply{
			TextMessage:   `OK. Wpisz, czego konkretnie szukasz (np. "wycinka drzew", "deklaracja śmieciowa").`,
			InputExpected: true,
			InputContext:  entity.CaptureEnvironmentForm.String(),
			SearchMode:    boolPtr(true),
			SearchContext: entity.SearchContextForms.String(),
		}, nil

	case "budownictwo":
		return s.formCard(ctx, sctx, "pozwolenie_budowlane",
			"⚠️ **Uwaga:** To skomplikowana procedura. Zalecamy konsultację z wydziałem przed złożeniem wniosku.",
			[]bot.Button{
				{Text: "Kontakt do wydziału", Action: prefixContactDept + "budownictwo"},
				{Text: "Inne formularze", Action: actionDownloadForm},
				{Text: "Powrót do menu", Action: actionMainMenu},
			})

	case "dzialalnosc":
		return s.formCard(ctx, sctx, "rejestracja_firmy",
			"📝 **Wymagane dokumenty:**\n• Wypełniony formularz CEIDG-1\n• Kopia dowodu osobistego\n• Oświadczenie o niekaralności",
			[]bot.Button{
				{Text: "Kontakt do wydziału", Action: prefixContactDept + "działalność"},
				{Text: "Inne formularze", Action: actionDownloadForm},
				{Text: "Powrót do menu", Action: actionMainMenu},
			})

	case "odpady":
		return s.formCard(ctx, sctx, "deklaracja_smieciowa",
			"✅ **Dostępne online** - możesz wypełnić i wysłać elektronicznie\n\n📅 **Termin składania:** Do 31 stycznia każdego roku",
			[]bot.Button{
				{Text: "Inne formularze", Action: actionDownloadForm},
				{Text: "Kontakt ws. odpadów", Action: prefixContactDept + "odpady"},
				{Text: "Powrót do menu", Action: actionMainMenu},
			})
	}

	return &bot.Reply{
		TextMessage: "Ta kategoria jest w trakcie przygotowywania.",
		Buttons: []bot.Button{
			{Text: "Wybierz inną kategorię", Action: actionDownloadForm},
			{Text: "Powrót do menu", Action: actionMainMenu},
		},
	}, nil
}

func (s *botService) formCard(ctx context.Context, sctx *entity.SessionContext, formKey, note string, buttons []bot.Button) (*bot.Reply, error) {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return nil, err
	}

	form, ok := rec.Form(formKey)
	if !ok {
		return &bot.Reply{
			TextMessage: "Ta kategoria jest w trakcie przygotowywania.",
			Buttons: []bot.Button{
				{Text: "Wybierz inną kategorię", Action: actionDownloadForm},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil
	}

	card := fmt.Sprintf("📋 **%s**\n\n🔗 Link: %s\n\n%s", form.Name, s.formLink(form.Link), note)

	return &bot.Reply{
		TextMessage: card,
		Buttons:     buttons,
	}, nil
}

// formLink swaps bucket-hosted form files for short-lived signed links; plain
// external URLs pass through untouched, as does any presign failure.
func (s *botService) formLink(link string) string {
	if s.s3Client == nil || !strings.Contains(link, "amazonaws.com") {
		return link
	}

	signed, err := s.s3Client.PresignUrl(link)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to presign form link, serving raw URL")
		return link
	}

	return signed
}

func (s *botService) problemIntakeReply(ctx context.Context, sctx *entity.SessionContext, problemType string) (*bot.Reply, error) {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return nil, err
	}

	var (
		header  string
		deptKey string
	)

	switch problemType {
	case "drogi":
		header = "🚧 **Zgłaszanie uszkodzeń dróg i chodników**\n\nOpisz lokalizację i rodzaj uszkodzenia (np. \"dziura na ul. Głównej przed nr 15\")."
		deptKey = "drogi"
	case "odpady":
		header = "🗑️ **Problemy z odpadami**\n\nOpisz problem (np. \"nie odebrano śmieci\", \"przepełniony kontener\")."
		deptKey = "odpady"
	case "oswietlenie":
		header = "💡 **Awarie oświetlenia ulicznego**\n\nPodaj dokładną lokalizację (ulica, numer budynku, słup)."
		deptKey = "oswietlenie"
	case "inne":
		header = "📝 **Inne problemy**\n\nOpisz szczegółowo problem, którego dotyczy Twoje zgłoszenie."
	default:
		return &bot.Reply{
			TextMessage: "Nie rozpoznaję tego typu problemu.",
			Buttons: []bot.Button{
				{Text: "Powrót do zgłoszeń", Action: actionReportProblem},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
		}, nil
	}

	phone, email := rec.Phone, rec.Email
	if dept, ok := rec.Department(deptKey); ok {
		phone, email = dept.Phone, dept.Email
	}

	sctx.Awaiting = entity.Capture{Kind: entity.CaptureProblemDetails, Arg: problemType}
	sctx.SearchMode = true
	sctx.SearchContext = entity.SearchContextProblems

	return &bot.Reply{
		TextMessage:   fmt.Sprintf("%s\n\n📞 **Kontakt:** %s\n✉️ **Email:** %s", header, phone, email),
		InputExpected: true,
		InputContext:  entity.CaptureProblemDetails.String(),
		SearchMode:    boolPtr(true),
		SearchContext: entity.SearchContextProblems.String(),
	}, nil
}

func boolPtr(v bool) *bool { return &v }
