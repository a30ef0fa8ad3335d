package botService

import (
	"context"
	"fmt"

	"GminaGolang/internal/api/bot"
	botRepository "GminaGolang/internal/api/bot/repository"
	"GminaGolang/internal/entity"
	"GminaGolang/pkg/analytics"
	"GminaGolang/pkg/log"
	"GminaGolang/pkg/s3"
	"GminaGolang/pkg/search"
	"GminaGolang/pkg/smtp"
	"GminaGolang/pkg/utils"

	"github.com/sirupsen/logrus"
)

// IBotService is the dialog core. Every method takes the session snapshot,
// mutates it in place and returns the reply to render; the transport layer
// owns persisting the snapshot afterwards.
type IBotService interface {
	StartSession(ctx context.Context, municipality string) (*bot.Reply, entity.SessionContext, error)
	HandleButtonAction(ctx context.Context, sctx *entity.SessionContext, action string) (*bot.Reply, error)
	HandleMessage(ctx context.Context, sctx *entity.SessionContext, message string) (*bot.Reply, error)
	HandleSelection(ctx context.Context, sctx *entity.SessionContext, sel bot.Selection) (*bot.Reply, error)
	SearchSuggestions(ctx context.Context, sctx *entity.SessionContext, query, searchContext string) ([]bot.SearchCandidate, error)
	ProcessCustomProblem(ctx context.Context, sctx *entity.SessionContext, input string) (*bot.Reply, error)
	TrackNoResults(query, searchType string) bool
}

type botService struct {
	log       *logrus.Logger
	repo      botRepository.Repository
	engine    *search.Engine
	analytics analytics.ISink
	mailer    smtp.ItfSmtp
	s3Client  s3.ItfS3
	utils     utils.IUtils
}

func NewBotService(
	log *logrus.Logger,
	repo botRepository.Repository,
	engine *search.Engine,
	sink analytics.ISink,
	mailer smtp.ItfSmtp,
	s3Client s3.ItfS3,
	utilsPkg utils.IUtils,
) IBotService {
	return &botService{
		log:       log,
		repo:      repo,
		engine:    engine,
		analytics: sink,
		mailer:    mailer,
		s3Client:  s3Client,
		utils:     utilsPkg,
	}
}

// recoverReply converts a panic inside a dialog operation into a generic
// retry reply. The session snapshot stays as it was when the panic hit, so
// the conversation can continue from the main menu.
func (s *botService) recoverReply(op string, reply **bot.Reply, err *error) {
	if r := recover(); r != nil {
		traceID := log.ErrorWithTraceID(log.Fields{
			"operation": op,
			"panic":     fmt.Sprintf("%v", r),
		}, "Recovered panic in dialog operation")

		s.log.WithFields(logrus.Fields{
			"trace_id":  traceID,
			"operation": op,
		}).Warn("Serving generic retry reply after panic")

		*reply = &bot.Reply{
			TextMessage: "Wystąpił błąd podczas przetwarzania zapytania. Spróbuj ponownie.",
			Buttons: []bot.Button{
				{Text: "Powrót do menu", Action: "main_menu"},
			},
		}
		*err = nil
	}
}
