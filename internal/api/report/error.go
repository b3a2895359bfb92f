package report

import (
	"FinTrack/pkg/response"
	"net/http"
)

var (
	ErrInvalidReportPeriod = response.NewError(http.StatusBadRequest, "invalid report period")
	ErrReportFetch         = response.NewError(http.StatusInternalServerError, "failed to load report data")
	ErrReportGeneration    = response.NewError(http.StatusInternalServerError, "failed to generate report")
)
