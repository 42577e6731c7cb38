package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v with the proper content type. Encoding errors are
// ignored; the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
