package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstallationID int64   `json:"installationID" validate:"required"`
		Name           string  `json:"name" validate:"required,max=200"`
		ShiftStart     string  `json:"shiftStart" validate:"required"`
		ShiftEnd       string  `json:"shiftEnd" validate:"required"`
		Weekdays       []int32 `json:"weekdays" validate:"omitempty,dive,min=1,max=7"`
		RequiredGuards int32   `json:"requiredGuards" validate:"required,min=1,max=20"`
		ActiveFrom     string  `json:"activeFrom" validate:"required"`
		ActiveUntil    *string `json:"activeUntil"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateShiftTimes(req.ShiftStart, req.ShiftEnd); err != nil {
		h.badRequest(w, r, err)
		return
	}

	activeFrom, err := parseDate(req.ActiveFrom)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	activeUntil, err := parseOptionalDate(req.ActiveUntil)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	organizationID := h.organizationID(r)

	// the installation must exist inside the caller's tenant
	if _, err := h.repository.GetInstallationByID(organizationID, req.InstallationID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.businessError(w, r, domain.ErrInstallationNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	post := &domain.Post{
		OrganizationID: organizationID,
		InstallationID: req.InstallationID,
		Name:           req.Name,
		ShiftStart:     req.ShiftStart,
		ShiftEnd:       req.ShiftEnd,
		Weekdays:       req.Weekdays,
		RequiredGuards: req.RequiredGuards,
		ActiveFrom:     activeFrom,
		ActiveUntil:    activeUntil,
	}

	if err := h.repository.CreatePost(post); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "post created", post)
}

func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	var installationID *int64
	if raw := r.URL.Query().Get("installationID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "bad_request", "invalid installationID")
			return
		}
		installationID = &id
	}

	posts, err := h.repository.GetAllPosts(h.organizationID(r), installationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "posts listed", posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post := r.Context().Value(PostCtxKey).(*domain.Post)
	h.successResponse(w, r, "post fetched", post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	post := r.Context().Value(PostCtxKey).(*domain.Post)

	var req struct {
		Name           *string `json:"name" validate:"omitempty,max=200"`
		ShiftStart     *string `json:"shiftStart"`
		ShiftEnd       *string `json:"shiftEnd"`
		Weekdays       []int32 `json:"weekdays" validate:"omitempty,dive,min=1,max=7"`
		RequiredGuards *int32  `json:"requiredGuards" validate:"omitempty,min=1,max=20"`
		ActiveFrom     *string `json:"activeFrom"`
		ActiveUntil    *string `json:"activeUntil"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		post.Name = *req.Name
	}
	if req.ShiftStart != nil {
		post.ShiftStart = *req.ShiftStart
	}
	if req.ShiftEnd != nil {
		post.ShiftEnd = *req.ShiftEnd
	}
	if err := utils.ValidateShiftTimes(post.ShiftStart, post.ShiftEnd); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Weekdays != nil {
		post.Weekdays = req.Weekdays
	}
	if req.RequiredGuards != nil {
		post.RequiredGuards = *req.RequiredGuards
	}
	if req.ActiveFrom != nil {
		activeFrom, err := parseDate(*req.ActiveFrom)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		post.ActiveFrom = activeFrom
	}
	if req.ActiveUntil != nil {
		activeUntil, err := parseOptionalDate(req.ActiveUntil)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		post.ActiveUntil = activeUntil
	}

	if post.ActiveUntil != nil && post.ActiveUntil.Before(post.ActiveFrom) {
		h.errorResponse(w, r, "bad_request", "activeUntil must not precede activeFrom")
		return
	}

	if err := h.repository.UpdatePost(post); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "conflict", "post was modified concurrently, retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "post updated", post)
}
