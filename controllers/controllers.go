// Package controllers holds the HTTP handlers: decode the request, call a
// service, translate the result to a status code and JSON body.
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"localmarket/middleware"
	"localmarket/services"
	"localmarket/utils"
)

// requestTimeout bounds the service calls a handler makes, so a slow
// database cannot hold a connection open indefinitely.
const requestTimeout = 10 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeMessage sends a simple {"message": ...} body.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the service error taxonomy onto HTTP statuses. Business
// failures become client errors; anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrEmptyCart):
		http.Error(w, "Your cart is empty", http.StatusBadRequest)
	case errors.Is(err, services.ErrValidation):
		http.Error(w, "Invalid input", http.StatusBadRequest)
	case errors.Is(err, services.ErrUnauthorized):
		http.Error(w, "Not authorized", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// principal pulls the authenticated claims and the caller's ObjectID from
// the request. It writes the error response itself on failure.
func principal(w http.ResponseWriter, r *http.Request) (*utils.Claims, primitive.ObjectID, bool) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, primitive.NilObjectID, false
	}
	return claims, id, true
}

// pathID parses a hex ObjectID from a mux path variable, writing a 400 on
// failure.
func pathID(w http.ResponseWriter, vars map[string]string, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(vars[name])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}
