package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gotrack/internal/errors"
	"gotrack/internal/model"
	"gotrack/internal/platform/supabase"
	"gotrack/internal/repository"
)

// IdentityProvider is the anonymous-scope surface of the auth provider.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*supabase.AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
}

// AdminDirectory is the service-role surface used for user listing.
type AdminDirectory interface {
	AdminListUsers(ctx context.Context) ([]supabase.AuthUser, error)
}

// Registration is the outcome of a successful registration.
type Registration struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// UserService handles registration, login, and user listing.
type UserService interface {
	Register(ctx context.Context, email, password string, role model.Role) (*Registration, error)
	Login(ctx context.Context, email, password string) (*supabase.Session, error)
	CreateSuperuser(ctx context.Context, callerID, email, password string) (*Registration, error)
	ListUsers(ctx context.Context) ([]string, error)
}

type userService struct {
	provider IdentityProvider
	admin    AdminDirectory
	profiles repository.ProfileRepository
}

// NewUserService creates a new user service.
func NewUserService(provider IdentityProvider, admin AdminDirectory, profiles repository.ProfileRepository) UserService {
	return &userService{
		provider: provider,
		admin:    admin,
		profiles: profiles,
	}
}

// Register signs the user up with the auth provider and then inserts the
// profile row best-effort. A failed profile insert is logged, never
// surfaced: the identity exists either way and the caller sees success.
func (s *userService) Register(ctx context.Context, email, password string, role model.Role) (*Registration, error) {
	user, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRequest, err)
	}

	registeredEmail := user.Email
	if registeredEmail == "" {
		registeredEmail = email
	}

	profile := &model.Profile{
		ID:       user.ID,
		FullName: fullNameFromEmail(registeredEmail),
		Role:     role,
		Email:    registeredEmail,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		log.Printf("profile insert failed for %s: %v", registeredEmail, err)
	}

	return &Registration{Email: registeredEmail, Role: role}, nil
}

// Login authenticates against the provider and returns its session tokens.
func (s *userService) Login(ctx context.Context, email, password string) (*supabase.Session, error) {
	session, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	return session, nil
}

// CreateSuperuser registers a new superuser. Only callers whose own
// profile role is superuser may do this.
func (s *userService) CreateSuperuser(ctx context.Context, callerID, email, password string) (*Registration, error) {
	role, err := s.profiles.GetRole(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleSuperuser {
		return nil, errors.ErrNotSuperuser
	}

	return s.Register(ctx, email, password, model.RoleSuperuser)
}

// ListUsers returns the email of every identity known to the provider.
func (s *userService) ListUsers(ctx context.Context) ([]string, error) {
	users, err := s.admin.AdminListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", errors.ErrDatabase, err)
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}
	return emails, nil
}

var titleCaser = cases.Title(language.Und)

// fullNameFromEmail derives a display name from the email local part.
func fullNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return titleCaser.String(local)
}
