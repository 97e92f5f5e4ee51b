package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink/association-api/internal/core/domain"
	"github.com/campuslink/association-api/internal/core/service"
)

// In-memory repositories so the full stack — router, middleware,
// handlers, real services — runs without mongo or redis.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	next  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := *user
	r.next++
	stored.ID = fmt.Sprintf("user_%d", r.next)
	r.users[stored.Email] = &stored
	out := stored
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		copy := *u
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memUserRepo) ListPresidents(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if domain.HasAnyRole(u.Roles, []domain.Role{domain.RoleAdmin, domain.RolePresident}) {
			copy := *u
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.users {
		if u.ID == user.ID {
			if email != user.Email {
				delete(r.users, email)
			}
			stored := *user
			r.users[user.Email] = &stored
			out := stored
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type memClubRepo struct {
	mu    sync.Mutex
	clubs map[string]*domain.Club
	next  int
}

func newMemClubRepo() *memClubRepo {
	return &memClubRepo{clubs: make(map[string]*domain.Club)}
}

func (r *memClubRepo) Create(_ context.Context, club *domain.Club) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.clubs {
		if existing.Name == club.Name {
			return nil, domain.ErrClubExists
		}
	}
	stored := *club
	stored.Members = append([]string(nil), club.Members...)
	r.next++
	stored.ID = fmt.Sprintf("club_%d", r.next)
	r.clubs[stored.ID] = &stored
	out := stored
	out.Members = append([]string(nil), stored.Members...)
	return &out, nil
}

func (r *memClubRepo) FindByID(_ context.Context, id string) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	club, ok := r.clubs[id]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	out := *club
	out.Members = append([]string(nil), club.Members...)
	return &out, nil
}

func (r *memClubRepo) List(_ context.Context) ([]*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		copy := *c
		copy.Members = append([]string(nil), c.Members...)
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memClubRepo) Update(_ context.Context, club *domain.Club) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.clubs[club.ID]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	updated := *club
	updated.Members = append([]string(nil), stored.Members...)
	r.clubs[club.ID] = &updated
	out := updated
	out.Members = append([]string(nil), updated.Members...)
	return &out, nil
}

func (r *memClubRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clubs[id]; !ok {
		return domain.ErrClubNotFound
	}
	delete(r.clubs, id)
	return nil
}

func (r *memClubRepo) AddMember(_ context.Context, clubID, userID string) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	club, ok := r.clubs[clubID]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	if club.IsMember(userID) {
		return nil, domain.ErrAlreadyMember
	}
	club.Members = append(club.Members, userID)
	out := *club
	out.Members = append([]string(nil), club.Members...)
	return &out, nil
}

func (r *memClubRepo) RemoveMember(_ context.Context, clubID, userID string) (*domain.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	club, ok := r.clubs[clubID]
	if !ok {
		return nil, domain.ErrClubNotFound
	}
	if !club.IsMember(userID) {
		return nil, domain.ErrNotMember
	}
	members := make([]string, 0, len(club.Members))
	for _, m := range club.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	club.Members = members
	out := *club
	out.Members = append([]string(nil), club.Members...)
	return &out, nil
}

type memActivityRepo struct {
	mu      sync.Mutex
	entries []*domain.MembershipActivity
}

func (r *memActivityRepo) Insert(_ context.Context, entry *domain.MembershipActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memActivityRepo) FindByClub(_ context.Context, clubID string, limit int) ([]*domain.MembershipActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.MembershipActivity
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].ClubID == clubID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type testEnv struct {
	e        *echo.Echo
	users    *memUserRepo
	clubs    *memClubRepo
	activity *memActivityRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	// Each env builds a full router, which registers prometheus collectors
	// in the default registry; swap in a fresh one so repeated construction
	// across tests does not panic with a duplicate-registration error.
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	users := newMemUserRepo()
	clubs := newMemClubRepo()
	activity := &memActivityRepo{}
	log := zerolog.Nop()

	tokens := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(users, tokens, nil, bcrypt.MinCost, log)
	userService := service.NewUserService(users, log)
	clubService := service.NewClubService(clubs, activity, nil, log)

	e := NewRouter(Deps{
		AuthService: authService,
		UserService: userService,
		ClubService: clubService,
		Tokens:      tokens,
		Logger:      log,
	})
	return &testEnv{e: e, users: users, clubs: clubs, activity: activity}
}

func (env *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(t *testing.T, email, password string, roles ...string) {
	t.Helper()
	body := map[string]any{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   password,
	}
	if len(roles) > 0 {
		body["roles"] = roles
	}
	raw, _ := json.Marshal(body)
	rec := env.do(http.MethodPost, "/auth/register", "", string(raw))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	raw, _ := json.Marshal(map[string]string{"email": email, "password": password})
	rec := env.do(http.MethodPost, "/auth/login", "", string(raw))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}
	return resp.Token
}

func (env *testEnv) seedClub(t *testing.T, name string) string {
	t.Helper()
	club, err := env.clubs.Create(context.Background(), &domain.Club{
		Name:    name,
		Members: []string{},
		Type:    domain.TypeClub,
	})
	if err != nil {
		t.Fatalf("seed club: %v", err)
	}
	return club.ID
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode message envelope: %v: %s", err, rec.Body.String())
	}
	return resp.Message
}

func TestRouter_RegisterLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "alice@example.com", "pass123")

	// Duplicate registration keeps the exact external wording.
	raw, _ := json.Marshal(map[string]string{
		"first_name": "Test", "last_name": "User",
		"email": "alice@example.com", "password": "other1",
	})
	rec := env.do(http.MethodPost, "/auth/register", "", string(raw))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "User already exists" {
		t.Fatalf("unexpected duplicate message: %q", msg)
	}

	token := env.login(t, "alice@example.com", "pass123")
	rec = env.do(http.MethodGet, "/users/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile with valid token: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_LoginFailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bob@example.com", "goodpass")

	wrongPass, _ := json.Marshal(map[string]string{"email": "bob@example.com", "password": "badpass"})
	unknown, _ := json.Marshal(map[string]string{"email": "ghost@example.com", "password": "whatever"})

	recA := env.do(http.MethodPost, "/auth/login", "", string(wrongPass))
	recB := env.do(http.MethodPost, "/auth/login", "", string(unknown))

	if recA.Code != http.StatusUnauthorized || recB.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", recA.Code, recB.Code)
	}
	if recA.Body.String() != recB.Body.String() {
		t.Fatalf("wrong-password and unknown-email bodies differ: %s vs %s", recA.Body.String(), recB.Body.String())
	}
}

func TestRouter_LoginMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/login", "", `{"email":"x@example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Please provide email and password" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestRouter_RoleGuards(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "student@example.com", "pass123")
	env.register(t, "admin@example.com", "pass123", "admin")

	studentToken := env.login(t, "student@example.com", "pass123")
	adminToken := env.login(t, "admin@example.com", "pass123")

	// The user directory is admin-only.
	if rec := env.do(http.MethodGet, "/users", studentToken, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("student listing users: expected 401, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/users", adminToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("admin listing users: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Any authenticated user can read their own profile.
	if rec := env.do(http.MethodGet, "/users/profile", studentToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("student profile: expected 200, got %d", rec.Code)
	}

	// No header at all.
	rec := env.do(http.MethodGet, "/users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous listing users: expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthorized" {
		t.Fatalf("unexpected anonymous rejection message: %q", msg)
	}
}

func TestRouter_MembershipFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "carol@example.com", "pass123")
	token := env.login(t, "carol@example.com", "pass123")
	clubID := env.seedClub(t, "Chess Club")

	// Join, then join again.
	rec := env.do(http.MethodPost, "/clubs/join/"+clubID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg != "You have joined the club." {
		t.Fatalf("unexpected join message: %q", msg)
	}

	rec = env.do(http.MethodPost, "/clubs/join/"+clubID, token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("repeat join: expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "You are already a member of this club" {
		t.Fatalf("unexpected repeat-join message: %q", msg)
	}

	// Leave, then leave again.
	rec = env.do(http.MethodPost, "/clubs/leave/"+clubID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leave: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(http.MethodPost, "/clubs/leave/"+clubID, token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("repeat leave: expected 400, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "You are not a member of this club" {
		t.Fatalf("unexpected repeat-leave message: %q", msg)
	}

	// Unknown club.
	rec = env.do(http.MethodPost, "/clubs/join/nope", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("join unknown club: expected 404, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Club not found" {
		t.Fatalf("unexpected unknown-club message: %q", msg)
	}

	// Membership requires authentication but no particular role.
	rec = env.do(http.MethodPost, "/clubs/join/"+clubID, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous join: expected 401, got %d", rec.Code)
	}
}

func TestRouter_ClubWritesAreGated(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "student@example.com", "pass123")
	env.register(t, "president@example.com", "pass123", "president")

	studentToken := env.login(t, "student@example.com", "pass123")
	presidentToken := env.login(t, "president@example.com", "pass123")

	body := `{"name":"Debate Society","description":"weekly debates","category":"culture","email":"debate@example.com"}`

	if rec := env.do(http.MethodPost, "/clubs", studentToken, body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("student creating club: expected 401, got %d", rec.Code)
	}
	rec := env.do(http.MethodPost, "/clubs", presidentToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("president creating club: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Reads stay public.
	if rec := env.do(http.MethodGet, "/clubs", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("anonymous club listing: expected 200, got %d", rec.Code)
	}
}
