package botService

import (
	"context"
	"strings"

	"GminaGolang/internal/api/bot"
	"GminaGolang/internal/entity"
)

// ProcessCustomProblem accepts a free-form problem description outside the
// guided report path, categorizes it by keyword and issues a ticket.
func (s *botService) ProcessCustomProblem(ctx context.Context, sctx *entity.SessionContext, input string) (reply *bot.Reply, err error) {
	defer s.recoverReply("process_custom_problem", &reply, &err)

	if !sctx.HasMunicipality() {
		return s.sessionExpiredReply(), nil
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return nil, bot.ErrEmptyEvent
	}

	return s.customProblemReply(ctx, sctx, input)
}

func (s *botService) customProblemReply(ctx context.Context, sctx *entity.SessionContext, description string) (*bot.Reply, error) {
	category := categorizeProblem(description)
	return s.confirmProblemReport(ctx, sctx, category, description)
}

// categorizeProblem maps a description to the department category owning it.
// Descriptions no keyword claims land in "inne" and go to the main office.
func categorizeProblem(description string) string {
	lower := strings.ToLower(description)

	for _, entry := range categoryKeywords {
		if entry.Category == "problemy" {
			// "problemy" keywords mark intent, not a department.
			continue
		}
		if containsAny(lower, entry.Keywords) {
			return entry.Category
		}
	}

	return "inne"
}
