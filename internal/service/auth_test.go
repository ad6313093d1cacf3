package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cosmicwatch/cosmicwatch-go/internal/crypto"
	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
	"github.com/cosmicwatch/cosmicwatch-go/internal/repository"
)

var testHashParams = crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func openTestStore(t *testing.T) *repository.FileStore {
	t.Helper()
	store, err := repository.OpenFileStore(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("OpenFileStore() unexpected error: %v", err)
	}
	return store
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewFileUserRepository(openTestStore(t)),
		crypto.NewHasher(testHashParams),
		crypto.NewTokenIssuer("test-secret", 7*24*time.Hour),
	)
}

func TestSignup_MissingFields(t *testing.T) {
	svc := newTestAuthService(t)

	tests := []struct {
		name string
		req  model.SignupRequest
	}{
		{"no name", model.SignupRequest{Email: "a@b.c", Password: "pw"}},
		{"blank name", model.SignupRequest{Name: "  ", Email: "a@b.c", Password: "pw"}},
		{"no email", model.SignupRequest{Name: "Ada", Password: "pw"}},
		{"no password", model.SignupRequest{Name: "Ada", Email: "a@b.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Signup(context.Background(), tt.req); err != ErrMissingFields {
				t.Errorf("Signup() error = %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestSignup_Role(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, model.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if resp.User.Role != model.RoleEnthusiast {
		t.Errorf("Signup() role = %q, want %q", resp.User.Role, model.RoleEnthusiast)
	}

	resp, err = svc.Signup(ctx, model.SignupRequest{Name: "Bo", Email: "bo@example.com", Password: "pw", Role: model.RoleResearcher})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if resp.User.Role != model.RoleResearcher {
		t.Errorf("Signup() role = %q, want %q", resp.User.Role, model.RoleResearcher)
	}

	_, err = svc.Signup(ctx, model.SignupRequest{Name: "Cy", Email: "cy@example.com", Password: "pw", Role: "admin"})
	if err != ErrInvalidRole {
		t.Errorf("Signup() error = %v, want ErrInvalidRole", err)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, model.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	_, err := svc.Signup(ctx, model.SignupRequest{Name: "Ada 2", Email: " ADA@example.com ", Password: "pw2"})
	if err != ErrEmailTaken {
		t.Errorf("Signup() error = %v, want ErrEmailTaken", err)
	}
}

func TestSignupLoginProfile(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, model.SignupRequest{Name: "Vera", Email: "vera@example.com", Password: "stargazer"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if signup.Token == "" {
		t.Fatal("Signup() returned an empty token")
	}

	login, err := svc.Login(ctx, model.LoginRequest{Email: "Vera@Example.com", Password: "stargazer"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if login.User.ID != signup.User.ID {
		t.Errorf("Login() user id = %q, want %q", login.User.ID, signup.User.ID)
	}

	claims, err := svc.tokens.Validate(login.Token)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if claims.Email != "vera@example.com" || claims.Name != "Vera" {
		t.Errorf("token identity = %q/%q, want vera@example.com/Vera", claims.Email, claims.Name)
	}

	profile, err := svc.Profile(ctx, claims.UserID)
	if err != nil {
		t.Fatalf("Profile() unexpected error: %v", err)
	}
	want := model.UserResponse{ID: signup.User.ID, Name: "Vera", Email: "vera@example.com", Role: model.RoleEnthusiast}
	if profile != want {
		t.Errorf("Profile() = %+v, want %+v", profile, want)
	}
}

func TestLogin_Failures(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	if _, err := svc.Signup(ctx, model.SignupRequest{Name: "Vera", Email: "vera@example.com", Password: "stargazer"}); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	tests := []struct {
		name string
		req  model.LoginRequest
		want error
	}{
		{"wrong password", model.LoginRequest{Email: "vera@example.com", Password: "nope"}, ErrInvalidCredentials},
		{"unknown email", model.LoginRequest{Email: "who@example.com", Password: "stargazer"}, ErrInvalidCredentials},
		{"missing password", model.LoginRequest{Email: "vera@example.com"}, ErrMissingCredentials},
		{"missing email", model.LoginRequest{Password: "stargazer"}, ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.req); err != tt.want {
				t.Errorf("Login() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProfile_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t)
	if _, err := svc.Profile(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Profile() error = %v, want ErrUserNotFound", err)
	}
}

func TestLogin_RehashesWeakerHash(t *testing.T) {
	store := openTestStore(t)
	users := repository.NewFileUserRepository(store)
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	ctx := context.Background()

	old := NewAuthService(users, crypto.NewHasher(testHashParams), tokens)
	resp, err := old.Signup(ctx, model.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	stronger := crypto.HashParams{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hasher := crypto.NewHasher(stronger)
	svc := NewAuthService(users, hasher, tokens)
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	user, err := users.GetByID(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if hasher.NeedsRehash(user.PasswordHash) {
		t.Errorf("stored hash %q still uses the old params", user.PasswordHash)
	}
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Errorf("Login() after rehash unexpected error: %v", err)
	}
}
