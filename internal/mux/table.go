package mux

import (
	"errors"
	"net/http"

	"handhistory-server/pkg/action"
	"handhistory-server/pkg/holdem"
)

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := m.dealer.State(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err)
			return
		}

		writeJSON(w, http.StatusOK, ts)
	}
}

func (m *Mux) postTableReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := m.dealer.Reset(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, ts)
	}
}

type postTableActionPayload struct {
	Action string `json:"action"`
	Amount *int   `json:"amount"`
}

func (m *Mux) postTableAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTableActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		a, err := action.FromString(pp.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		ts, err := m.dealer.Action(r.Context(), holdem.Intent{Action: a, Amount: pp.Amount})
		if err != nil {
			if errors.Is(err, holdem.ErrInvalidAmount) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		writeJSON(w, http.StatusOK, ts)
	}
}
