package handler

import (
	"net/http"
	"time"

	"salesdash/internal/backend"
	"salesdash/internal/metrics"
	"salesdash/internal/utils"
)

// LoadStater is satisfied by *backend.Loader.
type LoadStater interface {
	State() backend.State
}

type backendStatus struct {
	Loading  bool       `json:"loading"`
	InFlight int        `json:"in_flight"`
	Error    string     `json:"error,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Metrics map[string]uint64 `json:"metrics"`
	Backend backendStatus     `json:"backend"`
}

func Health(reg *metrics.Registry, loads LoadStater) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := loads.State()
		status := backendStatus{Loading: st.Loading, InFlight: st.InFlight}
		if st.Err != nil {
			status.Error = st.Err.Error()
		}
		if !st.LoadedAt.IsZero() {
			status.LoadedAt = &st.LoadedAt
		}
		utils.WriteJSON(w, http.StatusOK, healthResponse{Status: "OK", Metrics: reg.Snapshot(), Backend: status})
	}
}
