package botService

import (
	"context"
	"fmt"

	"GminaGolang/internal/api/bot"
	"GminaGolang/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// HandleSelection resolves a suggestion the user picked from a previous
// search reply. The echoed record is decoded by its type tag, so no second
// dataset lookup is needed. A committed selection always leaves search mode.
func (s *botService) HandleSelection(ctx context.Context, sctx *entity.SessionContext, sel bot.Selection) (reply *bot.Reply, err error) {
	defer s.recoverReply("handle_selection", &reply, &err)

	if !sctx.HasMunicipality() {
		return s.sessionExpiredReply(), nil
	}

	sctx.TakeCapture()
	sctx.SearchMode = false
	sctx.SearchContext = entity.SearchContextNone

	switch sel.Type {
	case bot.CandidatePerson:
		var p entity.PersonRecord
		if err := jsoniter.Unmarshal(sel.Record, &p); err != nil || p.Name == "" {
			return nil, bot.ErrInvalidSelection
		}
		reply = s.personCard(p)
		reply.SearchMode = boolPtr(false)
		return reply, nil

	case bot.CandidateDepartment:
		var d entity.Department
		if err := jsoniter.Unmarshal(sel.Record, &d); err != nil || d.Name == "" {
			return nil, bot.ErrInvalidSelection
		}
		return &bot.Reply{
			TextMessage: fmt.Sprintf(
				"🏢 %s\n📞 Telefon: %s\n✉️ E-mail: %s\n🕐 Godziny: %s\nStatus dostępności: %s",
				d.Name, d.Phone, d.Email, d.OfficeHours, d.Status.Label()),
			Buttons: []bot.Button{
				{Text: "Inne wydziały", Action: actionContactDept},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
			SearchMode: boolPtr(false),
		}, nil

	case bot.CandidateForm:
		var f entity.FormRecord
		if err := jsoniter.Unmarshal(sel.Record, &f); err != nil || f.Name == "" {
			return nil, bot.ErrInvalidSelection
		}
		return &bot.Reply{
			TextMessage: fmt.Sprintf(
				"📋 **%s**\n\n🔗 **Link do formularza:** %s\n\n🏷️ Kategoria: %s (kod %s)",
				f.Name, s.formLink(f.Link), f.Category, f.Code),
			Buttons: []bot.Button{
				{Text: "Inne formularze", Action: actionDownloadForm},
				{Text: "Powrót do menu", Action: actionMainMenu},
			},
			SearchMode: boolPtr(false),
		}, nil

	case bot.CandidateProblem:
		var t entity.ProblemTemplate
		if err := jsoniter.Unmarshal(sel.Record, &t); err != nil || t.Text == "" {
			return nil, bot.ErrInvalidSelection
		}

		s.log.WithFields(logrus.Fields{
			"category": t.Category,
		}).Debug("Problem template selected from suggestions")

		reply, err = s.confirmProblemReport(ctx, sctx, t.Category, t.Text)
		if err != nil {
			return nil, err
		}
		reply.SearchMode = boolPtr(false)
		return reply, nil
	}

	return nil, bot.ErrUnknownCandidateType
}
