package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/models"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository keyed by userid. Find methods
// return copies so handler mutations only land through Save, mirroring the
// real store.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserID]; ok {
		return repository.ErrDuplicateUserID
	}
	cp := *user
	r.users[user.UserID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByUserID(_ context.Context, userid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userid]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.UserID] = &cp
	return nil
}

// get returns a copy of the stored record for assertions.
func (r *fakeUserRepo) get(t *testing.T, userid string) models.User {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userid]
	require.True(t, ok, "user %q not in store", userid)
	return *user
}

// put stores a record directly, bypassing the handlers.
func (r *fakeUserRepo) put(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UserID] = &user
}

type sentSMS struct {
	Phone string
	Code  string
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (s *fakeSMS) SendOTP(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSMS{Phone: phone, Code: code})
	return s.err
}

func (s *fakeSMS) last(t *testing.T) sentSMS {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.sent)
	return s.sent[len(s.sent)-1]
}

func newTestApp(users repository.UserRepository, sms SMSSender) *fiber.App {
	app := fiber.New()

	authHandler := NewAuthHandler(users)
	otpHandler := NewOTPHandler(users, sms)
	accountHandler := NewAccountHandler(users)

	app.Post("/signup", authHandler.Signup)
	app.Post("/login", authHandler.Login)
	app.Post("/send-otp", otpHandler.SendOTP)
	app.Post("/verify-otp", otpHandler.VerifyOTP)
	app.Post("/update-profile", accountHandler.UpdateProfile)
	app.Post("/reset-password", accountHandler.ResetPassword)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return postRaw(t, app, path, string(data))
}

func postRaw(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func signup(t *testing.T, app *fiber.App, name, userid, pwd, email, phone string) {
	t.Helper()
	resp, body := postJSON(t, app, "/signup", map[string]any{
		"name":   name,
		"userid": userid,
		"pwd":    pwd,
		"email":  email,
		"phone":  phone,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Signup Successful", body["msg"])
}
