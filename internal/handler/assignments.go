package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/repository"
	"github.com/serviguard/roster/backend/internal/roster"
)

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuardID           int64   `json:"guardID" validate:"required"`
		PostID            int64   `json:"postID" validate:"required"`
		SlotNumber        int32   `json:"slotNumber" validate:"required,min=1,max=20"`
		StartDate         *string `json:"startDate"`
		EndDateOfPrevious *string `json:"endDateOfPrevious"`
		Reason            string  `json:"reason" validate:"max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDateInput, err := parseOptionalDate(req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	previousEndInput, err := parseOptionalDate(req.EndDateOfPrevious)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	organizationID := h.organizationID(r)
	actorID, err := h.actorID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	guard, err := h.repository.GetGuardByID(organizationID, req.GuardID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.businessError(w, r, domain.ErrGuardNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if guard.Blacklisted {
		h.businessError(w, r, domain.ErrGuardBlacklisted)
		return
	}
	if !guard.Eligible() {
		h.businessError(w, r, domain.ErrGuardIneligible)
		return
	}

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

	startDate := roster.DefaultStartDate(startDateInput, time.Now())
	previousEnd := roster.DefaultPreviousEnd(previousEndInput, startDate)

	// serialize on both the guard and the target slot
	lockCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	release, ok, err := h.acquireLocks(lockCtx,
		guardLockKey(organizationID, req.GuardID),
		slotLockKey(organizationID, req.PostID, req.SlotNumber),
	)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !ok {
		h.businessError(w, r, domain.ErrOperationInProgress)
		return
	}
	defer release()

	result, err := h.repository.AssignGuard(repository.AssignParams{
		OrganizationID: organizationID,
		GuardID:        req.GuardID,
		PostID:         req.PostID,
		SlotNumber:     req.SlotNumber,
		InstallationID: post.InstallationID,
		StartDate:      startDate,
		PreviousEnd:    previousEnd,
		Reason:         req.Reason,
		CreatedBy:      actorID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "assignments_one_active_per_guard_idx", "assignments_one_active_per_slot_idx":
				// the application-level check lost a race; one retry
				// after a fresh read is expected to resolve it
				h.businessError(w, r, domain.ErrAssignmentConflict)
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyAssignmentChange(organizationID, guard, post, result)

	h.successResponse(w, r, "guard assigned", result)
}

// notifyAssignmentChange queues the notification mails a completed
// assignment change produces. Failures are logged, never surfaced: the
// assignment is already committed.
func (h *Handler) notifyAssignmentChange(organizationID int64, guard *domain.Guard, post *domain.Post, result *repository.AssignResult) {
	installation, err := h.repository.GetInstallationByID(organizationID, post.InstallationID)
	if err != nil {
		slog.Error("could not load installation for notification", "error", err)
		return
	}

	if guard.Email != "" {
		msg := domain.MailMessage{
			Type: "assignment_created",
			To:   guard.Email,
			Data: domain.AssignmentCreatedMailData{
				GuardName:        guard.FullName,
				PostName:         post.Name,
				InstallationName: installation.Name,
				SlotNumber:       result.Assignment.SlotNumber,
				StartDate:        result.Assignment.StartDate.Format(dateLayout),
			},
		}
		if err := h.publishMail(msg); err != nil {
			slog.Error("could not queue assignment mail", "error", err)
		}
	}

	if result.Displaced == nil {
		return
	}

	displacedGuard, err := h.repository.GetGuardByID(organizationID, result.Displaced.GuardID)
	if err != nil || displacedGuard.Email == "" {
		return
	}

	msg := domain.MailMessage{
		Type: "assignment_closed",
		To:   displacedGuard.Email,
		Data: domain.AssignmentClosedMailData{
			GuardName:        displacedGuard.FullName,
			PostName:         post.Name,
			InstallationName: installation.Name,
			EndDate:          result.Displaced.EndDate.Format(dateLayout),
			Reason:           result.Displaced.Reason,
		},
	}
	if err := h.publishMail(msg); err != nil {
		slog.Error("could not queue displacement mail", "error", err)
	}
}

func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	assignmentIDParam := chi.URLParam(r, "id")
	assignmentID, err := strconv.ParseInt(assignmentIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "bad_request", "invalid assignment id")
		return
	}

	var req struct {
		EndDate *string `json:"endDate"`
		Reason  string  `json:"reason" validate:"max=500"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	endDateInput, err := parseOptionalDate(req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	organizationID := h.organizationID(r)
	endDate := roster.DefaultEndDate(endDateInput, time.Now())
	reason := req.Reason
	if reason == "" {
		reason = "unassigned"
	}

	result, err := h.repository.UnassignGuard(organizationID, assignmentID, endDate, reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssignmentNotFound):
			h.businessError(w, r, domain.ErrAssignmentNotFound)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "assignment closed", result)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	filters := domain.AssignmentFilters{ActiveOnly: true}

	q := r.URL.Query()
	for name, dst := range map[string]**int64{
		"installationID": &filters.InstallationID,
		"postID":         &filters.PostID,
		"guardID":        &filters.GuardID,
	} {
		if raw := q.Get(name); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				h.errorResponse(w, r, "bad_request", "invalid "+name)
				return
			}
			*dst = &id
		}
	}
	if raw := q.Get("activeOnly"); raw != "" {
		activeOnly, err := strconv.ParseBool(raw)
		if err != nil {
			h.errorResponse(w, r, "bad_request", "invalid activeOnly")
			return
		}
		filters.ActiveOnly = activeOnly
	}

	items, err := h.repository.ListAssignments(h.organizationID(r), filters)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignments listed", items)
}
