package botHandler

import (
	"time"

	"GminaGolang/internal/api/bot"
	"GminaGolang/internal/entity"
	contextPkg "GminaGolang/pkg/context"
	"GminaGolang/pkg/handlerUtil"
	"GminaGolang/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const (
	sessionCookie  = "gmina_session"
	requestTimeout = 10 * time.Second
)

func (h *BotHandler) StartSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing bot session start request")

	var req bot.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	reply, sctx, err := h.botService.StartSession(c, req.Municipality)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "start_session")
	}

	sessionID, err := h.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "start_session")
	}

	if err := h.sessions.Set(c, sessionID, sctx); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "start_session")
	}

	h.setSessionCookie(ctx, sessionID)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.ReplyResponse{Reply: reply})
	}
}

func (h *BotHandler) Send(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing bot send request")

	var req bot.SendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	sessionID, sctx := h.loadSession(c, ctx)

	var (
		reply *bot.Reply
		err   error
	)

	// Selection wins over a button press, which wins over free text; a single
	// request carries exactly one event in practice.
	switch {
	case req.Selection != nil:
		reply, err = h.botService.HandleSelection(c, &sctx, *req.Selection)
	case req.ButtonAction != "":
		reply, err = h.botService.HandleButtonAction(c, &sctx, req.ButtonAction)
	case req.Message != "":
		reply, err = h.botService.HandleMessage(c, &sctx, req.Message)
	default:
		return errHandler.Handle(ctx, requestID, bot.ErrEmptyEvent, ctx.Path(), "send")
	}

	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send")
	}

	h.persistSession(c, requestID, sessionID, sctx)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.ReplyResponse{Reply: reply})
	}
}

func (h *BotHandler) Search(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req bot.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	_, sctx := h.loadSession(c, ctx)

	suggestions, err := h.botService.SearchSuggestions(c, &sctx, req.Query, req.Context)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "search")
	}

	if suggestions == nil {
		suggestions = []bot.SearchCandidate{}
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.SearchResponse{Suggestions: suggestions})
	}
}

func (h *BotHandler) ProcessCustom(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req bot.CustomProblemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	sessionID, sctx := h.loadSession(c, ctx)

	var (
		reply *bot.Reply
		err   error
	)

	if req.Type == "" || req.Type == "problem" {
		reply, err = h.botService.ProcessCustomProblem(c, &sctx, req.CustomInput)
	} else {
		reply, err = h.botService.HandleMessage(c, &sctx, req.CustomInput)
	}

	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_custom")
	}

	h.persistSession(c, requestID, sessionID, sctx)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.ReplyResponse{Reply: reply})
	}
}

func (h *BotHandler) TrackNoResults(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req bot.TrackNoResultsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	searchType := req.SearchType
	if searchType == "" {
		searchType = "general"
	}

	queryLen := len([]rune(req.Query))

	// Short phrases and sessionless calls are acknowledged without sending
	// anything, the sink only ever gets the phrase length anyway.
	if queryLen <= 2 {
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.TrackNoResultsResponse{
			Status:      "skipped",
			QueryLength: queryLen,
			SearchType:  searchType,
		})
	}

	if _, sctx := h.loadSession(c, ctx); !sctx.HasMunicipality() {
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.TrackNoResultsResponse{
			Status:      "skipped",
			QueryLength: queryLen,
			SearchType:  searchType,
		})
	}

	sent := h.botService.TrackNoResults(req.Query, searchType)

	status := "success"
	if !sent {
		status = "partial_success"
	}

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"ga4_sent":     sent,
		"query_length": queryLen,
		"search_type":  searchType,
	}).Debug("No-results tracking processed")

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, bot.TrackNoResultsResponse{
			Status:      status,
			GA4Sent:     sent,
			QueryLength: queryLen,
			SearchType:  searchType,
		})
	}
}

// loadSession resolves the cookie-bound session context. A missing cookie or
// expired snapshot yields the zero context, which every dialog operation
// answers with a session-expired reply.
func (h *BotHandler) loadSession(c context.Context, ctx *fiber.Ctx) (string, entity.SessionContext) {
	sessionID := ctx.Cookies(sessionCookie)
	if sessionID == "" {
		return "", entity.SessionContext{}
	}

	sctx, ok, err := h.sessions.Get(c, sessionID)
	if err != nil || !ok {
		return sessionID, entity.SessionContext{}
	}

	return sessionID, sctx
}

func (h *BotHandler) persistSession(c context.Context, requestID, sessionID string, sctx entity.SessionContext) {
	if sessionID == "" || !sctx.HasMunicipality() {
		return
	}

	if err := h.sessions.Set(c, sessionID, sctx); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to persist session context")
	}
}

func (h *BotHandler) setSessionCookie(ctx *fiber.Ctx, sessionID string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		MaxAge:   int((24 * time.Hour).Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
