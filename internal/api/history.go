package api

import (
	"net/http"

	apperrors "github.com/culinai/chef/internal/errors"
	"github.com/culinai/chef/internal/history"
	"github.com/culinai/chef/internal/i18n"
	"github.com/culinai/chef/internal/localstate"
	"github.com/culinai/chef/internal/middleware"
)

func owner(r *http.Request) (history.Owner, error) {
	deviceID, err := middleware.RequireDeviceID(r.Context())
	if err != nil {
		return history.Owner{}, err
	}
	userID, _ := middleware.GetUserID(r.Context())
	return history.Owner{DeviceID: deviceID, UserID: userID}, nil
}

func (s *Server) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}

	listing, err := s.history.List(r.Context(), o)
	if err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// HandleClearHistory clears the device list. Remote history is kept.
func (s *Server) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}

	if err := s.history.Clear(r.Context(), o); err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleGetConsent(w http.ResponseWriter, r *http.Request) {
	deviceID, err := middleware.RequireDeviceID(r.Context())
	if err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}

	consent, err := localstate.GetConsent(r.Context(), s.state, deviceID)
	if err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	writeJSON(w, http.StatusOK, consent)
}

type ConsentRequest struct {
	Accepted *bool `json:"accepted"`
}

func (s *Server) HandleSetConsent(w http.ResponseWriter, r *http.Request) {
	deviceID, err := middleware.RequireDeviceID(r.Context())
	if err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}

	var req ConsentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	if req.Accepted == nil {
		writeError(w, r, i18n.English, featureNone,
			apperrors.NewValidationError("accepted is required", "ACCEPTED_REQUIRED", "Send true or false."))
		return
	}

	if err := localstate.SetConsent(r.Context(), s.state, deviceID, *req.Accepted); err != nil {
		writeError(w, r, i18n.English, featureNone, err)
		return
	}
	writeJSON(w, http.StatusOK, localstate.Consent{Decided: true, Accepted: *req.Accepted})
}
