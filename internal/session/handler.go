package session

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
	"github.com/FabricioUDB/control-gastos/internal/transport"
	"github.com/FabricioUDB/control-gastos/pkg/logger"
	"github.com/go-chi/chi"
)

// Handler forwards UI intents into the session core and renders snapshots
// back as JSON. It holds no state of its own: everything lives in the
// per-identity session.
type Handler struct {
	*transport.BaseHandler
	Sessions *Manager
}

func NewHandler(sessions *Manager) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Sessions:    sessions,
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.Logger.Error("request without user identity", "path", r.URL.Path)
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return h.Sessions.Session(userID), true
}

// LoadMonth loads the requested period into the session and returns the
// resulting snapshot.
func (h *Handler) LoadMonth(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid month")
		return
	}

	if err := sess.LoadMonth(r.Context(), year, month); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

// GetLedger returns the current snapshot without reloading anything.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var form ExpenseForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Error("AddExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := sess.AddExpense(r.Context(), form)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) EditExpense(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	var form ExpenseForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Error("EditExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := sess.EditExpense(r.Context(), id, form); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := sess.DeleteExpense(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var dto SetFilterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SetFilter: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.SetFilter(r.Context(), dto.Category)
	h.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.Sessions.SignOut(userID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// GetCategories returns the fixed suggestion set shown in the add form.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": ledger.SuggestedCategories,
	})
}
