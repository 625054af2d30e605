package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/repository"
	"github.com/serviguard/roster/backend/internal/roster"
)

func (h *Handler) PaintSeries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID                int64   `json:"postID" validate:"required"`
		SlotNumber            int32   `json:"slotNumber" validate:"required,min=1,max=20"`
		PatternCode           string  `json:"patternCode" validate:"required,max=20"`
		WorkDays              int32   `json:"workDays" validate:"required,min=1,max=30"`
		RestDays              int32   `json:"restDays" validate:"min=0,max=30"`
		StartDate             string  `json:"startDate" validate:"required"`
		StartPosition         int32   `json:"startPosition" validate:"required,min=1,max=60"`
		Month                 int     `json:"month" validate:"required,min=1,max=12"`
		Year                  int     `json:"year" validate:"required,min=2000,max=2100"`
		IsRotating            bool    `json:"isRotating"`
		CounterpartPostID     *int64  `json:"counterpartPostID" validate:"required_if=IsRotating true"`
		CounterpartSlotNumber *int32  `json:"counterpartSlotNumber" validate:"required_if=IsRotating true,omitempty,min=1,max=20"`
		StartShift            *string `json:"startShift" validate:"required_if=IsRotating true,omitempty,oneof=day night"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	organizationID := h.organizationID(r)

	post, err := h.repository.GetPostByID(organizationID, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.businessError(w, r, domain.ErrPostNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !post.HasSlot(req.SlotNumber) {
		h.businessError(w, r, domain.ErrSlotExceedsDotation)
		return
	}

	pattern := roster.Pattern{
		Code:          req.PatternCode,
		WorkDays:      req.WorkDays,
		RestDays:      req.RestDays,
		StartPosition: req.StartPosition,
		StartDate:     startDate,
	}

	// every bound is re-checked before a single cell is written
	if err := pattern.Validate(); err != nil {
		h.businessError(w, r, err)
		return
	}

	var rotation *roster.Rotation
	var counterpartPost *domain.Post
	if req.IsRotating {
		counterpartPost, err = h.repository.GetPostByID(organizationID, *req.CounterpartPostID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.businessError(w, r, domain.ErrPostNotFound)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		if !counterpartPost.HasSlot(*req.CounterpartSlotNumber) {
			h.businessError(w, r, domain.ErrSlotExceedsDotation)
			return
		}

		rotation = &roster.Rotation{
			CounterpartPostID: *req.CounterpartPostID,
			CounterpartSlot:   *req.CounterpartSlotNumber,
			StartShift:        *req.StartShift,
		}
		if err := rotation.Validate(req.PostID, req.SlotNumber); err != nil {
			h.businessError(w, r, err)
			return
		}
	}

	result, err := h.repository.PaintSeries(repository.PaintSeriesParams{
		OrganizationID:  organizationID,
		Post:            post,
		SlotNumber:      req.SlotNumber,
		Pattern:         pattern,
		Window:          roster.MonthWindow{Year: req.Year, Month: time.Month(req.Month)},
		Rotation:        rotation,
		CounterpartPost: counterpartPost,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "series painted", result)
}

func (h *Handler) GenerateGrid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstallationID int64 `json:"installationID" validate:"required"`
		Month          int   `json:"month" validate:"required,min=1,max=12"`
		Year           int   `json:"year" validate:"required,min=2000,max=2100"`
		Overwrite      bool  `json:"overwrite"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	organizationID := h.organizationID(r)

	if _, err := h.repository.GetInstallationByID(organizationID, req.InstallationID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.businessError(w, r, domain.ErrInstallationNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	window := roster.MonthWindow{Year: req.Year, Month: time.Month(req.Month)}
	result, err := h.repository.GenerateGrid(organizationID, req.InstallationID, window, req.Overwrite)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "grid generated", result)
}

func (h *Handler) UpsertCell(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID         int64   `json:"postID" validate:"required"`
		SlotNumber     int32   `json:"slotNumber" validate:"required,min=1,max=20"`
		Date           string  `json:"date" validate:"required"`
		PlannedGuardID *int64  `json:"plannedGuardID"`
		ShiftCode      string  `json:"shiftCode" validate:"max=20"`
		Status         string  `json:"status" validate:"max=20"`
		Notes          string  `json:"notes" validate:"max=2000"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := parseDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	organizationID := h.organizationID(r)

	post, err := h.repository.GetPostByID(organizationID, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.businessError(w, r, domain.ErrPostNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !post.HasSlot(req.SlotNumber) {
		h.businessError(w, r, domain.ErrSlotExceedsDotation)
		return
	}

	if req.PlannedGuardID != nil {
		if _, err := h.repository.GetGuardByID(organizationID, *req.PlannedGuardID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.businessError(w, r, domain.ErrGuardNotFound)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
	}

	cell := &domain.RosterCell{
		OrganizationID: organizationID,
		PostID:         req.PostID,
		SlotNumber:     req.SlotNumber,
		Day:            roster.DateOnly(day),
		ShiftCode:      req.ShiftCode,
		PlannedGuardID: req.PlannedGuardID,
		Status:         req.Status,
		Notes:          req.Notes,
	}

	if err := h.repository.UpsertCell(cell); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "cell saved", cell)
}

// GetSeries returns the pattern currently governing a slot, if one has
// been painted.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	postID, err := strconv.ParseInt(q.Get("postID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "bad_request", "invalid postID")
		return
	}
	slotNumber, err := strconv.ParseInt(q.Get("slotNumber"), 10, 32)
	if err != nil || slotNumber < 1 {
		h.errorResponse(w, r, "bad_request", "invalid slotNumber")
		return
	}

	series, err := h.repository.GetSeriesBySlot(h.organizationID(r), postID, int32(slotNumber))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "slot has no painted series", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "series fetched", series)
}

func (h *Handler) GetMonthCells(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	postID, err := strconv.ParseInt(q.Get("postID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "bad_request", "invalid postID")
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.errorResponse(w, r, "bad_request", "invalid month")
		return
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		h.errorResponse(w, r, "bad_request", "invalid year")
		return
	}

	organizationID := h.organizationID(r)

	if _, err := h.repository.GetPostByID(organizationID, postID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.businessError(w, r, domain.ErrPostNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	window := roster.MonthWindow{Year: year, Month: time.Month(month)}
	cells, err := h.repository.GetMonthCells(organizationID, postID, window)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "cells fetched", cells)
}
