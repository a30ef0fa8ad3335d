package botService

import "strings"

// Action tokens carried by buttons. Prefixed tokens encode their argument
// after the prefix, e.g. kontakt_wydzial_odpady selects the odpady
// department card.
const (
	actionFindContact   = "znajdz_kontakt"
	actionDownloadForm  = "pobierz_formularz"
	actionReportProblem = "zglos_problem"
	actionCheckMunicip  = "sprawdz_gmine"
	actionCheckStatus   = "sprawdz_status"
	actionMainMenu      = "main_menu"
	actionRestart       = "restart"
	actionContactOffice = "kontakt_urzad"
	actionContactDept   = "kontakt_wydzial"
	actionContactPerson = "kontakt_osoba"
	prefixContactDept   = "kontakt_wydzial_"
	prefixForm          = "formularz_"
	prefixProblem       = "problem_"
)

type actionKind uint8

const (
	actionUnknown actionKind = iota
	actionTopLevel
	actionDepartmentCard
	actionFormCategory
	actionProblemCategory
)

// parsedAction is the decoded form of a button token. For prefixed tokens
// Arg is the category key, for top-level tokens Token is the full name.
type parsedAction struct {
	Kind  actionKind
	Token string
	Arg   string
}

func parseAction(action string) parsedAction {
	action = strings.TrimSpace(action)

	switch action {
	case actionFindContact, actionDownloadForm, actionReportProblem,
		actionCheckMunicip, actionCheckStatus, actionMainMenu, actionRestart,
		actionContactOffice, actionContactDept, actionContactPerson:
		return parsedAction{Kind: actionTopLevel, Token: action}
	}

	switch {
	case strings.HasPrefix(action, prefixContactDept):
		return parsedAction{
			Kind:  actionDepartmentCard,
			Token: action,
			Arg:   strings.TrimPrefix(action, prefixContactDept),
		}
	case strings.HasPrefix(action, prefixForm):
		return parsedAction{
			Kind:  actionFormCategory,
			Token: action,
			Arg:   strings.TrimPrefix(action, prefixForm),
		}
	case strings.HasPrefix(action, prefixProblem):
		return parsedAction{
			Kind:  actionProblemCategory,
			Token: action,
			Arg:   strings.TrimPrefix(action, prefixProblem),
		}
	}

	return parsedAction{Kind: actionUnknown, Token: action}
}
