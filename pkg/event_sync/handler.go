package event_sync

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calevents/calevents/pkg/event_store"
	log "github.com/sirupsen/logrus"
)

type OperationDTO struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	EventID string `json:"eventId"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}

type SyncHandler struct {
	service *Service
}

func NewSyncHandler(service *Service) *SyncHandler {
	return &SyncHandler{service}
}

// Refresh forces a full reload of the event collection from the store.
func (handler *SyncHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	log.Debug("Refreshing event collection from store")
	w.Header().Set("Content-Type", "application/json")

	events, err := handler.service.Load(r.Context())
	if err != nil {
		if errors.Is(err, event_store.ErrUnauthenticated) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrStaleLoad) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]int{"eventCount": len(events)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *SyncHandler) GetOperations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ops := handler.service.Operations()
	opsDTO := make([]OperationDTO, 0, len(ops))
	for _, op := range ops {
		opsDTO = append(opsDTO, OperationToDTO(op))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(opsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func OperationToDTO(op Operation) OperationDTO {
	return OperationDTO{
		ID:      op.ID,
		Kind:    string(op.Kind),
		EventID: op.EventID,
		State:   string(op.State),
		Error:   op.Error,
	}
}
