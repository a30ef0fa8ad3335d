package botHandler

import (
	botService "GminaGolang/internal/api/bot/service"
	"GminaGolang/internal/middleware"
	"GminaGolang/pkg/session"
	"GminaGolang/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BotHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	botService botService.IBotService
	sessions   session.IStore
	utils      utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	bs botService.IBotService,
	sessions session.IStore,
	utilsPkg utils.IUtils,
) *BotHandler {
	return &BotHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		botService: bs,
		sessions:   sessions,
		utils:      utilsPkg,
	}
}

func (h *BotHandler) Start(srv fiber.Router) {
	bot := srv.Group("/bot")

	bot.Post("/start", h.StartSession)
	bot.Post("/send", h.Send)
	bot.Post("/search", h.Search)
	bot.Post("/process-custom", h.ProcessCustom)
	bot.Post("/track-no-results", h.TrackNoResults)
}
