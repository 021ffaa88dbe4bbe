package http

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/service"
)

const imageField = "image"

type EventHandler struct {
	events         service.EventService
	volunteers     service.VolunteerService
	maxUploadBytes int64
}

func NewEventHandler(events service.EventService, volunteers service.VolunteerService, maxUploadBytes int64) *EventHandler {
	return &EventHandler{events: events, volunteers: volunteers, maxUploadBytes: maxUploadBytes}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	upcoming, _ := strconv.ParseBool(r.URL.Query().Get("upcoming"))
	events, err := h.events.ListEvents(r.Context(), upcoming)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	details, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, details)
}

func (h *EventHandler) Capacity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	capacities, err := h.events.GetEventCapacity(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, capacities)
}

func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	roleID, err := pathID(r, "roleId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	req, err := h.volunteers.JoinEvent(r.Context(), PrincipalFromContext(r.Context()), eventID, roleID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Request submitted", Data: req})
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, err := h.readEventInput(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer closeUpload(image)
	details, err := h.events.CreateEvent(r.Context(), PrincipalFromContext(r.Context()), input, image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Event created", Data: details})
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	input, image, err := h.readEventInput(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer closeUpload(image)
	details, err := h.events.UpdateEvent(r.Context(), PrincipalFromContext(r.Context()), id, input, image)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Event updated", Data: details})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.events.DeleteEvent(r.Context(), PrincipalFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, "Event deleted")
}

// readEventInput accepts a JSON body, or a multipart form whose "event"
// field holds the JSON input and whose optional "image" part is the picture.
func (h *EventHandler) readEventInput(w http.ResponseWriter, r *http.Request) (*domain.EventInput, *service.ImageUpload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var input domain.EventInput
		if err := decodeJSON(w, r, &input); err != nil {
			return nil, nil, err
		}
		return &input, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+maxJSONBody)
	if err := r.ParseMultipartForm(maxJSONBody); err != nil {
		return nil, nil, domain.Invalid("Invalid form upload: %v", err)
	}

	var input domain.EventInput
	if err := json.Unmarshal([]byte(r.FormValue("event")), &input); err != nil {
		return nil, nil, domain.Invalid("Invalid event field: %v", err)
	}

	file, header, err := r.FormFile(imageField)
	if err == http.ErrMissingFile {
		return &input, nil, nil
	}
	if err != nil {
		return nil, nil, domain.Invalid("Invalid image upload: %v", err)
	}
	if header.Size > h.maxUploadBytes {
		file.Close()
		return nil, nil, domain.Invalid("Image is too large")
	}
	return &input, &service.ImageUpload{ContentType: header.Header.Get("Content-Type"), Body: file}, nil
}

func closeUpload(image *service.ImageUpload) {
	if image == nil {
		return
	}
	if c, ok := image.Body.(io.Closer); ok {
		c.Close()
	}
}
