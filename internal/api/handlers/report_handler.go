package handlers

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/internal/api/presenters"
	"Recipe-Hub-Backend/pkg/report"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	ReportHandler interface {
		SubmitReport(c *fiber.Ctx) error
		GetReportHistory(c *fiber.Ctx) error
		ExportReportPDF(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
	}
)

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandler{reportService: reportService}
}

// SubmitReport accepts arbitrary JSON from the relay collaborator. The
// response shape is the relay contract itself, not the presenter envelope.
func (h *reportHandler) SubmitReport(c *fiber.Ctx) error {
	res, err := h.reportService.Submit(c.Context(), c.Body())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidJSON) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitReport, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSubmitReport, err)
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *reportHandler) GetReportHistory(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		limit = 10
	}

	res, err := h.reportService.GetRecent(c.Context(), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReports, err)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *reportHandler) ExportReportPDF(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportReportPDF, err)
	}

	out, filename, err := h.reportService.ExportPDF(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedExportReportPDF, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedExportReportPDF, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(out)
}
