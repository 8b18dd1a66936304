package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"localmarket/models"
	"localmarket/store"
)

// UserService owns registration, authentication and profile operations.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates an account with a bcrypt-hashed password. Email, role and
// locality are required; a duplicate email is a validation failure.
func (s *UserService) Register(ctx context.Context, email, password string, role models.Role, locality string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	locality = strings.TrimSpace(locality)
	if email == "" || !strings.Contains(email, "@") || password == "" || locality == "" {
		return nil, ErrValidation
	}
	if !role.Valid() {
		return nil, ErrValidation
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrValidation
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		Locality: locality,
		Cart:     []models.CartItem{},
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, storeErr(err)
	}
	user.ID = id
	return user, nil
}

// Authenticate checks the credentials and returns the account. Missing user
// and wrong password both read as ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Profile returns the account by id.
func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// ChangePassword verifies the old password and stores a new hash. A
// new/confirm mismatch is a validation failure; a wrong old password is
// unauthorized.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword, confirmPassword string) error {
	if newPassword == "" || newPassword != confirmPassword {
		return ErrValidation
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return storeErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return storeErr(err)
	}
	return nil
}

// CommunityView splits the caller's locality neighbours by role.
type CommunityView struct {
	Vendors   []models.User `json:"vendors"`
	Suppliers []models.User `json:"suppliers"`
}

// Community lists other users sharing the caller's locality.
func (s *UserService) Community(ctx context.Context, userID primitive.ObjectID, locality string) (*CommunityView, error) {
	members, err := s.users.FindByLocality(ctx, locality, userID)
	if err != nil {
		return nil, storeErr(err)
	}

	view := &CommunityView{Vendors: []models.User{}, Suppliers: []models.User{}}
	for _, member := range members {
		member.Password = ""
		member.Cart = nil
		switch member.Role {
		case models.RoleVendor:
			view.Vendors = append(view.Vendors, member)
		case models.RoleSupplier:
			view.Suppliers = append(view.Suppliers, member)
		}
	}
	return view, nil
}
