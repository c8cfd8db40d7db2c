package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	MessageSuccessSubmitReport = "report stored successfully"
	MessageSuccessGetReports   = "success get report history"

	MessageFailedSubmitReport    = "failed to store report"
	MessageFailedGetReports      = "failed to get report history"
	MessageFailedExportReportPDF = "failed to export report pdf"

	ErrInvalidJSON    = errors.New("body is not valid JSON")
	ErrReportNotFound = errors.New("report not found")
)

type (
	SubmitReportResponse struct {
		Status string `json:"status"`
		ID     uint   `json:"id"`
		Link   string `json:"link"`
	}

	ReportEntryResponse struct {
		ID        uint            `json:"id"`
		Document  json.RawMessage `json:"document"`
		CreatedAt time.Time       `json:"created_at"`
	}

	ReportHistoryResponse struct {
		Reports []ReportEntryResponse `json:"reports"`
		Count   int                   `json:"count"`
	}
)
