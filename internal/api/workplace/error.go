package workplace

import (
	"FinTrack/pkg/response"
	"net/http"
)

var (
	ErrWorkplaceNotFound     = response.NewError(http.StatusNotFound, "workplace not found")
	ErrWorkplaceNameRequired = response.NewError(http.StatusBadRequest, "workplace name is required")
	ErrWorkplaceExists       = response.NewError(http.StatusConflict, "workplace with this name already exists")
	ErrWorkplaceInactive     = response.NewError(http.StatusConflict, "workplace is not active")
	ErrCreateWorkplace       = response.NewError(http.StatusInternalServerError, "failed to create workplace")
	ErrDeactivateWorkplace   = response.NewError(http.StatusInternalServerError, "failed to deactivate workplace")
)
