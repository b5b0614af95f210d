package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/rest"
)

type ActivityDTO struct {
	ID           int       `json:"id"`
	Description  string    `json:"description,omitempty"`
	CreationDate time.Time `json:"creationDate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	activities, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		dtos = append(dtos, ActivityToDTO(a))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathId(w, r)
	if !ok {
		return
	}

	activity, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ActivityToDTO(activity)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new activity")
	w.Header().Set("Content-Type", "application/json")

	var dto ActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.Create(r.Context(), DTOToActivity(dto))
	if err != nil {
		if errors.Is(err, ErrActivityAlreadyExists) {
			http.Error(w, "Activity already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/activities/%d", created.ID))
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ActivityToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var dto ActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID != id {
		http.Error(w, "Activity id in request body does not match the path", http.StatusBadRequest)
		return
	}

	if err := h.service.Replace(r.Context(), DTOToActivity(dto)); err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Deleting activity")

	id, ok := pathId(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			http.Error(w, "Activity not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ActivityToDTO(deleted)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		http.Error(w, "Invalid activity id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func ActivityToDTO(activity Activity) ActivityDTO {
	return ActivityDTO{
		ID:           activity.ID,
		Description:  activity.Description,
		CreationDate: activity.CreationDate,
	}
}

func DTOToActivity(dto ActivityDTO) Activity {
	return Activity{
		ID:           dto.ID,
		Description:  dto.Description,
		CreationDate: dto.CreationDate,
	}
}
