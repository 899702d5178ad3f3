package common

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/inkwell-labs/inkwell/pkg/nav"
)

const (
	sessionName  = "inkwell"
	openStateKey = "open"
)

// LoadOpenState reads the accordion open state from the request session.
// A missing or malformed value yields an empty state.
func LoadOpenState(store sessions.Store, r *http.Request) nav.OpenState {
	sess, _ := store.Get(r, sessionName)

	raw, ok := sess.Values[openStateKey].(string)
	if !ok {
		return nav.OpenState{}
	}

	var open []string
	if err := json.Unmarshal([]byte(raw), &open); err != nil {
		return nav.OpenState{}
	}

	state := nav.OpenState{}
	for _, p := range open {
		state[p] = true
	}
	return state
}

// SaveOpenState persists the accordion open state into the session cookie.
// Paths are stored as a JSON array so the cookie stays codec-free.
func SaveOpenState(store sessions.Store, w http.ResponseWriter, r *http.Request, state nav.OpenState) error {
	open := make([]string, 0, len(state))
	for p, isOpen := range state {
		if isOpen {
			open = append(open, p)
		}
	}

	raw, err := json.Marshal(open)
	if err != nil {
		return err
	}

	sess, _ := store.Get(r, sessionName)
	sess.Values[openStateKey] = string(raw)
	return sess.Save(r, w)
}
