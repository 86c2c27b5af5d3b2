package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techpro/techpromanager/application/port/inbound"
	apperr "github.com/techpro/techpromanager/domain/error"
	"github.com/techpro/techpromanager/infrastructure/http/middleware"
	"github.com/techpro/techpromanager/infrastructure/http/response"
	"github.com/techpro/techpromanager/infrastructure/http/validator"
)

// actor returns the caller that RequireAuth attached to the request. Routes
// using it are always mounted behind RequireAuth; a missing identity is
// answered like a missing token.
func actor(w http.ResponseWriter, r *http.Request) (inbound.Actor, bool) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.AppError(w, apperr.ErrMissingToken())
		return inbound.Actor{}, false
	}
	return inbound.Actor{UserID: claims.UserID, Role: claims.Role}, true
}

// pathID reads the {id} route variable. Anything that is not a UUID cannot
// name a stored record and is reported as not found.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (string, bool) {
	id, ok := idParam(r)
	if !ok {
		response.AppError(w, apperr.ErrNotFound(resource, id))
	}
	return id, ok
}

func idParam(r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	return id, validator.ValidateUUID(id)
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := validator.DecodeJSON(w, r, dst); err != nil {
		if errors.Is(err, validator.ErrEmptyBody) {
			response.BadRequest(w, "Request body is required")
			return false
		}
		response.BadRequest(w, "Invalid request body")
		return false
	}
	return true
}
