package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/serviguard/roster/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "unauthenticated", "not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "unauthenticated", "invalid token")
			return
		}

		// the claims carry the caller context: actor, role and tenant
		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, OrganizationCtxKey, claims.OrganizationID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.errorResponse(w, r, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// organizationID extracts the tenant scope the auth middleware stored.
func (h *Handler) organizationID(r *http.Request) int64 {
	return r.Context().Value(OrganizationCtxKey).(int64)
}

// actorID extracts the operator id from the JWT subject.
func (h *Handler) actorID(r *http.Request) (int64, error) {
	sub := r.Context().Value(SubCtxKey).(string)
	return strconv.ParseInt(sub, 10, 64)
}

func (h *Handler) guardInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guardIDParam := chi.URLParam(r, "id")
		guardID, err := strconv.ParseInt(guardIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "bad_request", "invalid guard id")
			return
		}

		guard, err := h.repository.GetGuardByID(h.organizationID(r), guardID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.businessError(w, r, domain.ErrGuardNotFound)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), GuardCtxKey, guard)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) postInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postIDParam := chi.URLParam(r, "id")
		postID, err := strconv.ParseInt(postIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "bad_request", "invalid post id")
			return
		}

		post, err := h.repository.GetPostByID(h.organizationID(r), postID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.businessError(w, r, domain.ErrPostNotFound)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), PostCtxKey, post)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) installationInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		installationIDParam := chi.URLParam(r, "id")
		installationID, err := strconv.ParseInt(installationIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "bad_request", "invalid installation id")
			return
		}

		installation, err := h.repository.GetInstallationByID(h.organizationID(r), installationID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.businessError(w, r, domain.ErrInstallationNotFound)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), InstallationCtxKey, installation)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
