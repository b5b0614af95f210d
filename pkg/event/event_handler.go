package event

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
	"github.com/zenithweb/zenith/pkg/activity"
)

type EventDTO struct {
	ID           int                   `json:"id"`
	ActivityID   int                   `json:"activityId"`
	CreationDate time.Time             `json:"creationDate"`
	EnteredBy    string                `json:"enteredBy,omitempty"`
	EventFrom    time.Time             `json:"eventFrom"`
	EventTo      time.Time             `json:"eventTo"`
	IsActive     bool                  `json:"isActive"`
	Activity     *activity.ActivityDTO `json:"activity,omitempty"`
}

type EventHandler struct {
	eventService EventService
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{eventService}
}

// ListEvents returns all events, each with its activity attached.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.eventService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathId(w, r)
	if !ok {
		return
	}

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Accept json
// @Produce json
// @Success 201 {object} EventDTO
// @Failure 409 {string} string "id already taken"
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new event")
	w.Header().Set("Content-Type", "application/json")

	var dto EventDTO
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

	created, err := h.eventService.Create(r.Context(), dtoToEvent(dto))
	if err != nil {
		if errors.Is(err, ErrEventAlreadyExists) {
			http.Error(w, "Event already exists", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/events/%d", created.ID))
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateEvent replaces the stored event entirely. The payload id must match
// the path id; a mismatch is rejected before the store is touched.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := pathId(w, r)
	if !ok {
		return
	}

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID != id {
		http.Error(w, "Event id in request body does not match the path", http.StatusBadRequest)
		return
	}

	if err := h.eventService.Replace(r.Context(), dtoToEvent(dto)); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Deleting event")

	id, ok := pathId(w, r)
	if !ok {
		return
	}

	deleted, err := h.eventService.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(deleted)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CurrentWeekEvents godoc
// @Summary List this week's active events
// @Description Public view of the active events in the Monday-based week containing today, sorted by start time.
// @Produce json
// @Success 200 {array} EventDTO
// @Router /api/events/week [get]
func (h *EventHandler) CurrentWeekEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Getting current week events")

	events, err := h.eventService.CurrentWeek(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		http.Error(w, "Invalid event id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func eventToDTO(event Event) EventDTO {
	var activityDTO *activity.ActivityDTO
	if event.Activity != nil {
		dto := activity.ActivityToDTO(*event.Activity)
		activityDTO = &dto
	}
	return EventDTO{
		ID:           event.ID,
		ActivityID:   event.ActivityID,
		CreationDate: event.CreationDate,
		EnteredBy:    event.EnteredBy,
		EventFrom:    event.From,
		EventTo:      event.To,
		IsActive:     event.IsActive,
		Activity:     activityDTO,
	}
}

func dtoToEvent(dto EventDTO) Event {
	return Event{
		ID:           dto.ID,
		ActivityID:   dto.ActivityID,
		CreationDate: dto.CreationDate,
		EnteredBy:    dto.EnteredBy,
		From:         dto.EventFrom,
		To:           dto.EventTo,
		IsActive:     dto.IsActive,
	}
}
