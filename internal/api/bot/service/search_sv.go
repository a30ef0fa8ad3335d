package botService

import (
	"context"
	"fmt"

	"GminaGolang/internal/api/bot"
	"GminaGolang/internal/entity"
	"GminaGolang/pkg/log"
	"GminaGolang/pkg/search"
)

func (s *botService) SearchSuggestions(ctx context.Context, sctx *entity.SessionContext, query, searchContext string) (candidates []bot.SearchCandidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorWithTraceID(log.Fields{
				"operation": "search_suggestions",
				"panic":     fmt.Sprintf("%v", r),
			}, "Recovered panic in predictive search")
			candidates, err = nil, nil
		}
	}()

	if !sctx.HasMunicipality() {
		return nil, nil
	}
	if len([]rune(query)) < search.MinQueryLength {
		return nil, nil
	}

	sc := entity.ParseSearchContext(searchContext)
	if sc == entity.SearchContextNone {
		return nil, bot.ErrUnknownSearchContext
	}

	switch sc {
	case entity.SearchContextContacts:
		candidates, err = s.contactCandidates(ctx, query)
	case entity.SearchContextForms:
		candidates, err = s.formCandidates(ctx, sctx, query)
	case entity.SearchContextProblems:
		candidates, err = s.problemCandidates(ctx, query)
	case entity.SearchContextMunicipalityCheck, entity.SearchContextStatusCheck:
		// Verification and ticket numbers are exact-match flows, there is
		// nothing to suggest while typing.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		go s.analytics.RecordNoResultsEvent(query, sc.String())
	}

	return candidates, nil
}

func (s *botService) TrackNoResults(query, searchType string) bool {
	return s.analytics.RecordNoResultsEvent(query, searchType)
}

// contactCandidates ranks persons and departments together so one query box
// covers the whole directory.
func (s *botService) contactCandidates(ctx context.Context, query string) ([]bot.SearchCandidate, error) {
	persons, err := s.repo.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]search.Item, 0, len(persons)+len(departments))
	for i := range persons {
		items = append(items, search.Item{
			Text: persons[i].Name + " " + persons[i].Position + " " + persons[i].Department,
			Ref:  persons[i],
		})
	}
	for i := range departments {
		items = append(items, search.Item{
			Text: departments[i].Name,
			Ref:  departments[i],
		})
	}

	matches := s.engine.Rank(query, items)
	candidates := make([]bot.SearchCandidate, 0, len(matches))
	for _, m := range matches {
		switch ref := m.Item.Ref.(type) {
		case entity.PersonRecord:
			candidates = append(candidates, bot.SearchCandidate{
				Type:     bot.CandidatePerson,
				Icon:     "👤",
				Title:    ref.Name,
				Subtitle: ref.Position,
				Detail:   ref.Department,
				Score:    m.Score,
				Record:   ref,
			})
		case entity.Department:
			candidates = append(candidates, bot.SearchCandidate{
				Type:     bot.CandidateDepartment,
				Icon:     "🏢",
				Title:    ref.Name,
				Subtitle: ref.Status.Label(),
				Detail:   ref.Phone,
				Score:    m.Score,
				Record:   ref,
			})
		}
	}

	return candidates, nil
}

func (s *botService) personCandidates(matches []search.Match) []bot.SearchCandidate {
	candidates := make([]bot.SearchCandidate, 0, len(matches))
	for _, m := range matches {
		p := m.Item.Ref.(entity.PersonRecord)
		candidates = append(candidates, bot.SearchCandidate{
			Type:     bot.CandidatePerson,
			Icon:     "👤",
			Title:    p.Name,
			Subtitle: p.Position,
			Detail:   p.Department,
			Score:    m.Score,
			Record:   p,
		})
	}
	return candidates
}

func (s *botService) formCandidates(ctx context.Context, sctx *entity.SessionContext, query string) ([]bot.SearchCandidate, error) {
	rec, err := s.repo.GetMunicipality(ctx, sctx.Municipality)
	if err != nil {
		return nil, err
	}

	forms := rec.Forms
	if len(forms) == 0 {
		// Placeholder municipalities fall back to the shared form catalog.
		forms, err = s.repo.ListForms(ctx)
		if err != nil {
			return nil, err
		}
	}

	items := make([]search.Item, 0, len(forms))
	for i := range forms {
		items = append(items, search.Item{
			Text: forms[i].Name + " " + forms[i].Category + " " + forms[i].Code,
			Ref:  forms[i],
		})
	}

	matches := s.engine.Rank(query, items)
	candidates := make([]bot.SearchCandidate, 0, len(matches))
	for _, m := range matches {
		f := m.Item.Ref.(entity.FormRecord)
		candidates = append(candidates, bot.SearchCandidate{
			Type:     bot.CandidateForm,
			Icon:     "📋",
			Title:    f.Name,
			Subtitle: f.Category,
			Detail:   f.Code,
			Score:    m.Score,
			Record:   f,
		})
	}

	return candidates, nil
}

func (s *botService) problemCandidates(ctx context.Context, query string) ([]bot.SearchCandidate, error) {
	templates, err := s.repo.ListProblemTemplates(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]search.Item, 0, len(templates))
	for i := range templates {
		items = append(items, search.Item{
			Text: templates[i].Text,
			Ref:  templates[i],
		})
	}

	matches := s.engine.Rank(query, items)
	candidates := make([]bot.SearchCandidate, 0, len(matches))
	for _, m := range matches {
		t := m.Item.Ref.(entity.ProblemTemplate)
		candidates = append(candidates, bot.SearchCandidate{
			Type:     bot.CandidateProblem,
			Icon:     "📝",
			Title:    t.Text,
			Subtitle: t.Category,
			Score:    m.Score,
			Record:   t,
		})
	}

	return candidates, nil
}
