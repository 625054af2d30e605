package handler

import (
	"net/http"

	"github.com/serviguard/roster/backend/internal/domain"
)

func (h *Handler) CreateInstallation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required,max=200"`
		Account string `json:"account" validate:"required,max=200"`
		Address string `json:"address" validate:"max=300"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	installation := &domain.Installation{
		OrganizationID: h.organizationID(r),
		Name:           req.Name,
		Account:        req.Account,
		Address:        req.Address,
	}

	if err := h.repository.CreateInstallation(installation); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "installation created", installation)
}

func (h *Handler) GetAllInstallations(w http.ResponseWriter, r *http.Request) {
	installations, err := h.repository.GetAllInstallations(h.organizationID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "installations listed", installations)
}

func (h *Handler) GetInstallation(w http.ResponseWriter, r *http.Request) {
	installation := r.Context().Value(InstallationCtxKey).(*domain.Installation)
	h.successResponse(w, r, "installation fetched", installation)
}
