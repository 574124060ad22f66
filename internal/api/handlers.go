// Package api implements the Kotoba REST API using chi.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/autolearn/kotoba/internal/apperr"
	"github.com/autolearn/kotoba/internal/auth"
	"github.com/autolearn/kotoba/internal/catalog"
)

const (
	sessionCookie = "session"
	// Max-age hint for the client; the server enforces no expiry.
	sessionMaxAge = 86400

	maxUploadBytes = 32 << 20
)

// Handler holds API route handlers.
type Handler struct {
	svc  *catalog.Service
	gate *auth.Gate
}

// NewHandler creates a new Handler.
func NewHandler(svc *catalog.Service, gate *auth.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

// sessionToken extracts the session cookie value, or "" when absent.
func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "AutoLearn JP API"})
}

// Login handles POST /auth/login. On success the user object is returned and
// the session cookie set.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	user, token, err := h.gate.Login(req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("Invalid credentials"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		MaxAge:   sessionMaxAge,
	})
	writeJSON(w, http.StatusOK, user)
}

// Check handles GET /auth/check.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	user, err := h.gate.Check(sessionToken(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("Not authenticated"))
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /auth/logout. Idempotent; always clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout(sessionToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, LogoutResponse{Success: true})
}

// Words handles GET /words.
func (h *Handler) Words(w http.ResponseWriter, r *http.Request) {
	words, err := h.svc.List(r.Context(), sessionToken(r))
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized"))
			return
		}
		slog.Error("list words failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// Upload handles POST /upload: a multipart batch of markdown flashcards that
// replaces the whole catalog. Admin only.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	// Gate before touching the form so an unauthenticated empty upload
	// still yields 401, not 400.
	user, err := h.gate.Check(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized"))
		return
	}
	if err := h.gate.RequireAdmin(user); err != nil {
		writeJSON(w, http.StatusForbidden, errorBody("Admin access required"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("No files provided"))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("No files provided"))
		return
	}

	var files []catalog.UploadFile
	var readErrs []string
	for _, fh := range headers {
		if !strings.HasSuffix(fh.Filename, ".md") {
			continue
		}
		content, err := readUploadFile(fh)
		if err != nil {
			readErrs = append(readErrs, fmt.Sprintf("Error processing %s: %v", fh.Filename, err))
			continue
		}
		files = append(files, catalog.UploadFile{Name: fh.Filename, Content: content})
	}

	res, err := h.svc.ReplaceAll(r.Context(), token, files)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized"))
		case errors.Is(err, apperr.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorBody("Admin access required"))
		default:
			slog.Error("upload failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Processed: res.Processed,
		Errors:    append(res.Errors, readErrs...),
	})
}

// NotFound handles every unmatched route/method combination.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("Route %s not found", r.URL.Path)))
}

func readUploadFile(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
