package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sellerboost-api/internal/middleware"
	"sellerboost-api/internal/model"
	"sellerboost-api/pkg/apierror"
	"sellerboost-api/pkg/response"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 64 << 10

var validate = validator.New()

// decodeBody reads a JSON body into dst and validates its struct tags.
// invalidMsg is returned for unreadable or malformed bodies.
func decodeBody(r *http.Request, dst any, invalidMsg string) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apierror.BadRequest(invalidMsg)
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, dst); err != nil {
		return apierror.BadRequest(invalidMsg)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if msg, ok := fieldMessages[verrs[0].Field()]; ok {
				return apierror.BadRequest(msg)
			}
			return apierror.BadRequest(verrs[0].Field() + " is " + verrs[0].Tag())
		}
		return apierror.BadRequest(invalidMsg)
	}
	return nil
}

var fieldMessages = map[string]string{
	"ProductID": "Product ID required",
}

// principalOrReject returns the request principal or writes a 401.
func principalOrReject(w http.ResponseWriter, r *http.Request) (*model.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, apierror.Unauthorized(""))
		return nil, false
	}
	return p, true
}

// Preflight answers OPTIONS with an empty 200. CORS headers are set by the router.
func Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// MethodNotAllowed writes the JSON 405 body.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Error(w, apierror.MethodNotAllowed())
}

// NotFound writes the JSON 404 body for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.Error(w, apierror.NotFound("route not found"))
}
