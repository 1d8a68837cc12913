package common

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Msg string `json:"msg"`
}

// MessageResponse is the body of most successful mutations.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Msg: message})
}

// RespondWithDomainError logs unexpected failures and writes the mapped status.
func RespondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code := HTTPStatusFromError(err)
	if code >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
	}
	RespondWithError(w, code, PublicMessage(err))
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"msg": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
