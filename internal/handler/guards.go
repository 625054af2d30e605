package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/serviguard/roster/backend/internal/domain"
)

func (h *Handler) CreateGuard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName       string `json:"fullName" validate:"required,max=200"`
		DocumentNumber string `json:"documentNumber" validate:"required,max=30"`
		Email          string `json:"email" validate:"omitempty,email"`
		Phone          string `json:"phone" validate:"max=30"`
		Status         string `json:"status" validate:"required,oneof=postulado seleccionado contratado_activo desvinculado"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	guard := &domain.Guard{
		OrganizationID: h.organizationID(r),
		FullName:       req.FullName,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         domain.GuardStatus(req.Status),
	}

	if err := h.repository.CreateGuard(guard); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if guard.Email != "" {
		msg := domain.MailMessage{
			Type: "guard_welcome",
			To:   guard.Email,
			Data: domain.GuardWelcomeMailData{GuardName: guard.FullName},
		}
		if err := h.publishMail(msg); err != nil {
			slog.Error("could not queue welcome mail", "error", err)
		}
	}

	h.successResponse(w, r, "guard created", guard)
}

func (h *Handler) GetAllGuards(w http.ResponseWriter, r *http.Request) {
	guards, err := h.repository.GetAllGuards(h.organizationID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "guards listed", guards)
}

func (h *Handler) GetGuard(w http.ResponseWriter, r *http.Request) {
	guard := r.Context().Value(GuardCtxKey).(*domain.Guard)
	h.successResponse(w, r, "guard fetched", guard)
}

func (h *Handler) UpdateGuard(w http.ResponseWriter, r *http.Request) {
	guard := r.Context().Value(GuardCtxKey).(*domain.Guard)

	var req struct {
		FullName    *string `json:"fullName" validate:"omitempty,max=200"`
		Email       *string `json:"email" validate:"omitempty,email"`
		Phone       *string `json:"phone" validate:"omitempty,max=30"`
		Status      *string `json:"status" validate:"omitempty,oneof=postulado seleccionado contratado_activo desvinculado"`
		Blacklisted *bool   `json:"blacklisted"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		guard.FullName = *req.FullName
	}
	if req.Email != nil {
		guard.Email = *req.Email
	}
	if req.Phone != nil {
		guard.Phone = *req.Phone
	}
	if req.Status != nil {
		guard.Status = domain.GuardStatus(*req.Status)
	}
	if req.Blacklisted != nil {
		guard.Blacklisted = *req.Blacklisted
	}

	if err := h.repository.UpdateGuard(guard); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "conflict", "guard was modified concurrently, retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "guard updated", guard)
}

// CheckActiveAssignment tells the caller whether the guard is already
// posted somewhere, so the UI can warn before a transfer.
func (h *Handler) CheckActiveAssignment(w http.ResponseWriter, r *http.Request) {
	guard := r.Context().Value(GuardCtxKey).(*domain.Guard)

	info, err := h.repository.GetActiveAssignmentInfoByGuard(h.organizationID(r), guard.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "guard has no active assignment", map[string]any{
				"hasActiveAssignment": false,
			})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "guard has an active assignment", map[string]any{
		"hasActiveAssignment": true,
		"assignment":          info,
	})
}
