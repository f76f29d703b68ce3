package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as the JSON body of a response with the given status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Message writes the bare {"message"} body returned by the open signup path
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// Success writes {"message","status":"success"} for login and the teacher path
func Success(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, MessageResponse{Message: msg, Status: StatusSuccess})
}
