package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jitendra-jitu/Project-Mang-system/apperrors"
	"github.com/jitendra-jitu/Project-Mang-system/middleware"
	"github.com/jitendra-jitu/Project-Mang-system/models"
)

// principal pulls the authenticated actor placed on the context by the auth
// middleware. Routes are always mounted behind it, so a miss is a wiring
// bug surfacing as 401 rather than a panic.
func principal(r *http.Request) (models.Principal, error) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, apperrors.Unauthorizedf("not authorized to access this route")
	}
	return p, nil
}

// pathID parses the named route variable as an ObjectID. An id that does
// not parse can never resolve, so it reads as not-found for the resource.
func pathID(r *http.Request, name, resource string) (primitive.ObjectID, error) {
	raw := mux.Vars(r)[name]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.NotFoundf("%s not found with id of %s", resource, raw)
	}
	return id, nil
}
