// Package store persists the rental store as two JSON documents (users and
// application data) plus a current-session pointer. Backends: JSON files,
// a Postgres documents table, and a SQLite documents table through gorm.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

const (
	keyUsers   = "users"
	keyAppData = "appData"
	keySession = "currentUserId"
)

var (
	_ rental.Repository = (*File)(nil)
	_ rental.Repository = (*Postgres)(nil)
	_ rental.Repository = (*SQLite)(nil)
)

type sessionDoc struct {
	UserID int64 `json:"userId"`
}

// decodeState builds a state from raw documents. A nil document is treated as
// empty; a malformed one is discarded with a warning.
func decodeState(users, data []byte) *rental.State {
	st := rental.NewState()

	if users != nil {
		var decoded []rental.User
		if err := json.Unmarshal(users, &decoded); err != nil {
			slog.Warn("discarding corrupt document", "key", keyUsers, "error", err)
		} else if decoded != nil {
			st.Users = decoded
		}
	}

	if data != nil {
		var decoded rental.Data
		if err := json.Unmarshal(data, &decoded); err != nil {
			slog.Warn("discarding corrupt document", "key", keyAppData, "error", err)
		} else {
			st.Data = decoded
		}
	}

	st.Data.Normalize()

	return st
}

func encodeState(st *rental.State) (users, data []byte, err error) {
	st.Data.Normalize()

	if st.Users == nil {
		st.Users = []rental.User{}
	}

	users, err = json.Marshal(st.Users)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding users: %w", err)
	}

	data, err = json.Marshal(st.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding app data: %w", err)
	}

	return users, data, nil
}

// decodeSession reads a session document. A malformed or zero pointer counts as no session.
func decodeSession(b []byte) (int64, bool) {
	if b == nil {
		return 0, false
	}

	var doc sessionDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		slog.Warn("discarding corrupt document", "key", keySession, "error", err)
		return 0, false
	}

	return doc.UserID, doc.UserID != 0
}

func encodeSession(userID int64) ([]byte, error) {
	return json.Marshal(sessionDoc{UserID: userID})
}
