package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"runboard/internal/api/middleware"
	"runboard/internal/common"
	"runboard/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// Middleware is a route-level middleware such as the authenticated-user chain.
type Middleware func(http.Handler) http.Handler

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// limitParam reads ?limit=N; anything unparsable falls back to the default.
func limitParam(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return nil, false
	}
	return user, true
}
