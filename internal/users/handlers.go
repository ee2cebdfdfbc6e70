package users

import (
	"net/http"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/utils"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IDParam(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	u, err := h.repo.Get(r.Context(), id)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u, err := h.repo.Create(r.Context(), in)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IDParam(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var in Input
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IDParam(r)
	if !ok {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		apperr.Write(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
