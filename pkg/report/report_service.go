package report

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/pkg/pdf"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// HistoryLimit is how many submitted documents survive a prune.
const HistoryLimit = 10

type (
	ReportService interface {
		Submit(ctx context.Context, body []byte) (domain.SubmitReportResponse, error)
		GetRecent(ctx context.Context, limit int) (domain.ReportHistoryResponse, error)
		Get(ctx context.Context, id uint) (domain.ReportEntryResponse, error)
		ExportPDF(ctx context.Context, id uint) ([]byte, string, error)
	}

	reportService struct {
		reportRepository ReportRepository
		renderer         pdf.Renderer
	}
)

func NewReportService(reportRepository ReportRepository, renderer pdf.Renderer) ReportService {
	return &reportService{
		reportRepository: reportRepository,
		renderer:         renderer,
	}
}

func (s *reportService) Submit(ctx context.Context, body []byte) (domain.SubmitReportResponse, error) {
	// Reject before any write so a bad submission never touches the history.
	if !json.Valid(body) {
		return domain.SubmitReportResponse{}, domain.ErrInvalidJSON
	}

	entry := entities.ReportEntry{
		Payload:   string(body),
		CreatedAt: time.Now(),
	}

	if err := s.reportRepository.CreateAndPrune(ctx, &entry, HistoryLimit); err != nil {
		return domain.SubmitReportResponse{}, err
	}

	return domain.SubmitReportResponse{
		Status: "ok",
		ID:     entry.ID,
		Link:   fmt.Sprintf("/api/v1/reports/%d/pdf", entry.ID),
	}, nil
}

func (s *reportService) GetRecent(ctx context.Context, limit int) (domain.ReportHistoryResponse, error) {
	if limit < 1 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	entries, err := s.reportRepository.GetRecent(ctx, limit)
	if err != nil {
		return domain.ReportHistoryResponse{}, err
	}

	reports := make([]domain.ReportEntryResponse, 0, len(entries))
	for _, entry := range entries {
		reports = append(reports, domain.ReportEntryResponse{
			ID:        entry.ID,
			Document:  json.RawMessage(entry.Payload),
			CreatedAt: entry.CreatedAt,
		})
	}

	return domain.ReportHistoryResponse{
		Reports: reports,
		Count:   len(reports),
	}, nil
}

func (s *reportService) Get(ctx context.Context, id uint) (domain.ReportEntryResponse, error) {
	entry, err := s.reportRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReportEntryResponse{}, domain.ErrReportNotFound
		}
		return domain.ReportEntryResponse{}, err
	}

	return domain.ReportEntryResponse{
		ID:        entry.ID,
		Document:  json.RawMessage(entry.Payload),
		CreatedAt: entry.CreatedAt,
	}, nil
}

func (s *reportService) ExportPDF(ctx context.Context, id uint) ([]byte, string, error) {
	entry, err := s.reportRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrReportNotFound
		}
		return nil, "", err
	}

	var doc any
	if err := json.Unmarshal([]byte(entry.Payload), &doc); err != nil {
		return nil, "", domain.ErrInvalidJSON
	}

	sections := []pdf.Section{
		{Lines: []string{fmt.Sprintf("Received: %s", entry.CreatedAt.Format("2006-01-02 15:04:05"))}},
		pdf.FlatSection(doc),
	}

	out, err := s.renderer.Render(fmt.Sprintf("JSON Report #%d", entry.ID), sections)
	if err != nil {
		return nil, "", err
	}

	return out, fmt.Sprintf("report-%d.pdf", entry.ID), nil
}
