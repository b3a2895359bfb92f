package reportHandler

import (
	"FinTrack/internal/api/report"
	reportPkg "FinTrack/internal/report"
	contextPkg "FinTrack/pkg/context"
	"FinTrack/pkg/handlerUtil"
	jwtPkg "FinTrack/pkg/jwt"
	"FinTrack/pkg/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

// Reports are built in memory, so nothing reaches the client unless rendering
// finished.
func sendPDF(ctx *fiber.Ctx, out *reportPkg.Output) error {
	ctx.Attachment(out.Filename)
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.Status(fiber.StatusOK).Send(out.Data)
}

func (h *ReportHandler) MonthlyReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing monthly report request")

	var req report.MonthlyReportQuery
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	req.OwnerID = userData.ID
	req.OwnerEmail = userData.Email

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	out, err := h.reportService.Monthly(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "monthly_report")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendPDF(ctx, out)
	}
}

func (h *ReportHandler) AnnualReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing annual report request")

	var req report.AnnualReportQuery
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	req.OwnerID = userData.ID
	req.OwnerEmail = userData.Email

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	out, err := h.reportService.Annual(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "annual_report")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendPDF(ctx, out)
	}
}

func (h *ReportHandler) CustomReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing custom report request")

	var req report.CustomReportQuery
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	req.OwnerID = userData.ID
	req.OwnerEmail = userData.Email

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	out, err := h.reportService.Custom(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "custom_report")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return sendPDF(ctx, out)
	}
}
