package controllers

import (
	"encoding/json"
	"net/http"

	"localmarket/models"
	"localmarket/services"
	"localmarket/utils"
)

// UserController handles registration, login and profile requests.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Register creates an account and returns a session token.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
		Locality string      `json:"locality"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := uc.users.Register(ctx, req.Email, req.Password, req.Role, req.Locality)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login authenticates and returns a session token.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := uc.users.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetProfile returns the caller's account without credential fields.
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := uc.users.Profile(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword verifies the old password and stores the new one.
func (uc *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := principal(w, r)
	if !ok {
		return
	}

	var req struct {
		OldPassword     string `json:"old_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := uc.users.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password changed successfully")
}

// Community lists other vendors and suppliers in the caller's locality.
func (uc *UserController) Community(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := principal(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	view, err := uc.users.Community(ctx, userID, claims.Locality)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Dashboard tells the client where to land for the caller's role.
func (uc *UserController) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, _, ok := principal(w, r)
	if !ok {
		return
	}

	var target string
	switch claims.Role {
	case models.RoleVendor:
		target = "/marketplace"
	case models.RoleSupplier:
		target = "/dashboard/supplier"
	case models.RoleAdmin:
		target = "/admin/grievances"
	default:
		http.Error(w, "Unknown role", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"role": string(claims.Role), "dashboard": target})
}
