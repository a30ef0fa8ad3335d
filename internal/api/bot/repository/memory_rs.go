package botRepository

import (
	"strings"

	"GminaGolang/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type memoryRepository struct {
	log            *logrus.Logger
	municipalities []entity.MunicipalityRecord
	persons        []entity.PersonRecord
	forms          []entity.FormRecord
	problems       []entity.ProblemTemplate
	placeholders   *placeholderCache
}

func (r *memoryRepository) GetMunicipality(_ context.Context, name string) (entity.MunicipalityRecord, error) {
	for _, m := range r.municipalities {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}

	r.log.WithFields(logrus.Fields{
		"municipality": name,
	}).Debug("Unknown municipality, serving placeholder record")

	return r.placeholders.getOrBuild(name), nil
}

func (r *memoryRepository) ListPersons(_ context.Context) ([]entity.PersonRecord, error) {
	return r.persons, nil
}

func (r *memoryRepository) ListDepartments(_ context.Context) ([]entity.Department, error) {
	// The searchable department directory is the primary municipality's.
	return r.municipalities[0].Departments, nil
}

func (r *memoryRepository) ListForms(_ context.Context) ([]entity.FormRecord, error) {
	return r.forms, nil
}

func (r *memoryRepository) ListProblemTemplates(_ context.Context) ([]entity.ProblemTemplate, error) {
	return r.problems, nil
}

func seedMunicipalities() []entity.MunicipalityRecord {
	forms := seedForms()

	return []entity.MunicipalityRecord{
		{
			Name:       "Przykładowa Gmina",
			OfficeName: "Urząd Gminy Przykładowa",
			Address:    "ul. Główna 1, 00-001 Przykładowa",
			Phone:      "+48 123 456 789",
			Email:      "kontakt@przykladowa.pl",
			NIP:        "1234567890",
			REGON:      "123456789",
			Website:    "https://przykladowa.pl",
			Departments: []entity.Department{
				{
					Key:         "odpady",
					Name:        "Referat Gospodarki Komunalnej",
					Phone:       "+48 123 456 790",
					Email:       "odpady@przykladowa.pl",
					OfficeHours: "pn-pt 8:00-16:00",
					Status:      entity.DepartmentStatusAvailableOnline,
				},
				{
					Key:         "podatki",
					Name:        "Referat Finansowy",
					Phone:       "+48 123 456 791",
					Email:       "finanse@przykladowa.pl",
					OfficeHours: "pn-pt 8:00-15:00",
					Status:      entity.DepartmentStatusRequiresVisit,
				},
				{
					Key:         "budownictwo",
					Name:        "Referat Architektury",
					Phone:       "+48 123 456 792",
					Email:       "architektura@przykladowa.pl",
					OfficeHours: "pn-śr 8:00-14:00",
					Status:      entity.DepartmentStatusComplex,
				},
				{
					Key:         "drogi",
					Name:        "Referat Infrastruktury",
					Phone:       "+48 123 456 793",
					Email:       "infrastruktura@przykladowa.pl",
					OfficeHours: "pn-pt 7:30-15:30",
					Status:      entity.DepartmentStatusAvailableOnline,
				},
				{
					Key:         "działalność",
					Name:        "Referat Rozwoju Gospodarczego",
					Phone:       "+48 123 456 794",
					Email:       "gospodarka@przykladowa.pl",
					OfficeHours: "pn-pt 8:00-16:00",
					Status:      entity.DepartmentStatusRequiresVisit,
				},
				{
					Key:         "środowisko",
					Name:        "Referat Ochrony Środowiska",
					Phone:       "+48 123 456 795",
					Email:       "srodowisko@przykladowa.pl",
					OfficeHours: "pn-pt 8:00-16:00",
					Status:      entity.DepartmentStatusAvailableOnline,
				},
				{
					Key:         "oswietlenie",
					Name:        "Referat Utrzymania Oświetlenia",
					Phone:       "+48 123 456 799",
					Email:       "oswietlenie@przykladowa.pl",
					OfficeHours: "zgłoszenia 24/7",
					Status:      entity.DepartmentStatusAvailableOnline,
				},
			},
			Forms: forms,
		},
		{
			Name:       "Demo Gmina",
			OfficeName: "Urząd Gminy Demo",
			Address:    "ul. Testowa 5, 00-002 Demo",
			Phone:      "+48 987 654 321",
			Email:      "kontakt@demo.pl",
			NIP:        "9876543210",
			REGON:      "987654321",
			Website:    "https://demo.pl",
			Departments: []entity.Department{
				{
					Key:         "odpady",
					Name:        "Wydział Ekologii",
					Phone:       "+48 987 654 322",
					Email:       "ekologia@demo.pl",
					OfficeHours: "pn-pt 8:00-16:00",
					Status:      entity.DepartmentStatusAvailableOnline,
				},
			},
			Forms: nil,
		},
	}
}

func seedPersons() []entity.PersonRecord {
	return []entity.PersonRecord{
		{
			Name:       "Jan Kowalski",
			Position:   "Kierownik Referatu Finansowego",
			Phone:      "+48 123 456 801",
			Email:      "j.kowalski@przykladowa.pl",
			Department: "Referat Finansowy",
		},
		{
			Name:       "Anna Nowak",
			Position:   "Specjalista ds. Środowiska",
			Phone:      "+48 123 456 802",
			Email:      "a.nowak@przykladowa.pl",
			Department: "Referat Ochrony Środowiska",
		},
		{
			Name:       "Marek Wiśniewski",
			Position:   "Kierownik Referatu Infrastruktury",
			Phone:      "+48 123 456 803",
			Email:      "m.wisniewski@przykladowa.pl",
			Department: "Referat Infrastruktury",
		},
		{
			Name:       "Katarzyna Zielińska",
			Position:   "Inspektor ds. Gospodarki Odpadami",
			Phone:      "+48 123 456 804",
			Email:      "k.zielinska@przykladowa.pl",
			Department: "Referat Gospodarki Komunalnej",
		},
		{
			Name:       "Piotr Lewandowski",
			Position:   "Architekt Gminny",
			Phone:      "+48 123 456 805",
			Email:      "p.lewandowski@przykladowa.pl",
			Department: "Referat Architektury",
		},
	}
}

func seedForms() []entity.FormRecord {
	return []entity.FormRecord{
		{
			Key:      "deklaracja_smieciowa",
			Name:     "Deklaracja odpadów komunalnych",
			Category: "odpady",
			Code:     "GK-01",
			Link:     "https://przykladowa.pl/formularze/odpady.pdf",
			Online:   true,
		},
		{
			Key:      "pozwolenie_budowlane",
			Name:     "Wniosek o pozwolenie na budowę",
			Category: "budownictwo",
			Code:     "AR-07",
			Link:     "https://przykladowa.pl/formularze/budowa.pdf",
			Online:   false,
		},
		{
			Key:      "wycinka_drzew",
			Name:     "Wniosek o zezwolenie na usunięcie drzewa",
			Category: "środowisko",
			Code:     "OS-03",
			Link:     "https://przykladowa.pl/formularze/wycinka.pdf",
			Online:   true,
		},
		{
			Key:      "rejestracja_firmy",
			Name:     "Zgłoszenie działalności gospodarczej",
			Category: "działalność",
			Code:     "RG-11",
			Link:     "https://przykladowa.pl/formularze/firma.pdf",
			Online:   false,
		},
	}
}

func seedProblemTemplates() []entity.ProblemTemplate {
	return []entity.ProblemTemplate{
		{Text: "Nieodebrane śmieci", Category: "odpady"},
		{Text: "Przepełniony kontener na odpady", Category: "odpady"},
		{Text: "Dziura w jezdni", Category: "drogi"},
		{Text: "Uszkodzony chodnik", Category: "drogi"},
		{Text: "Awaria oświetlenia ulicznego", Category: "oswietlenie"},
		{Text: "Niedziałająca latarnia", Category: "oswietlenie"},
		{Text: "Połamane drzewo zagrażające przechodniom", Category: "środowisko"},
		{Text: "Dzikie wysypisko odpadów", Category: "środowisko"},
		{Text: "Zalana ulica po opadach", Category: "drogi"},
		{Text: "Zniszczona wiata przystankowa", Category: "inne"},
	}
}
