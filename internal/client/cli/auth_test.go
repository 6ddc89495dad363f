package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/DorLamesh/devops-web-app/internal/client/api"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
)

// stubInputs replaces the interactive input seams. Each call to the text
// prompt consumes the next queued answer.
func stubInputs(t *testing.T, answers []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected extra prompt (%d answers queued)", len(answers))
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeBackend struct {
	loginUser string
	loginPass []byte
	loginErr  error

	signupUser   string
	signupEmail  string
	signupPass   []byte
	signupCustom bool
	signupErr    error

	profileUser *models.PublicUser
	profileErr  error

	usersList []*models.PublicUser
	usersErr  error

	hasToken     bool
	logoutCalled bool
}

func (f *fakeBackend) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr == nil {
		f.hasToken = true
	}
	return f.loginErr
}

func (f *fakeBackend) Signup(_ context.Context, user, email string, pass []byte, custom bool) error {
	f.signupUser, f.signupEmail = user, email
	f.signupPass = append([]byte(nil), pass...)
	f.signupCustom = custom
	if f.signupErr == nil {
		f.hasToken = true
	}
	return f.signupErr
}

func (f *fakeBackend) Profile(context.Context) (*models.PublicUser, error) {
	return f.profileUser, f.profileErr
}

func (f *fakeBackend) Users(context.Context) ([]*models.PublicUser, error) {
	return f.usersList, f.usersErr
}

func (f *fakeBackend) Logout() {
	f.logoutCalled = true
	f.hasToken = false
}

func (f *fakeBackend) HasToken() bool { return f.hasToken }

func TestLogin_Success(t *testing.T) {
	f := &fakeBackend{}
	a := &App{client: f}

	restore := stubInputs(t, []string{"alice"}, []byte("secret123"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginUser != "alice" {
		t.Fatalf("Login user mismatch: %q", f.loginUser)
	}
	if string(f.loginPass) != "secret123" {
		t.Fatalf("Login pass mismatch: %q", string(f.loginPass))
	}
	if a.userName != "alice" {
		t.Fatalf("userName not set: %q", a.userName)
	}
}

func TestLogin_BadCredentialsDoesNotSetUser(t *testing.T) {
	f := &fakeBackend{loginErr: &api.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid credentials"}}
	a := &App{client: f}

	restore := stubInputs(t, []string{"alice"}, []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("server rejection should not surface as error, got: %v", err)
	}
	if a.userName != "" {
		t.Fatalf("userName set after failed login: %q", a.userName)
	}
}

func TestLogin_TransportErrorPropagates(t *testing.T) {
	f := &fakeBackend{loginErr: errors.New("connection refused")}
	a := &App{client: f}

	restore := stubInputs(t, []string{"alice"}, []byte("secret123"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatalf("want transport error")
	}
}

func TestSignup_Success(t *testing.T) {
	f := &fakeBackend{}
	a := &App{client: f}

	restore := stubInputs(t, []string{"bob", "bob@example.com", "y"}, []byte("secret123!"))
	defer restore()

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	if f.signupUser != "bob" || f.signupEmail != "bob@example.com" {
		t.Fatalf("Signup fields mismatch: %q %q", f.signupUser, f.signupEmail)
	}
	if !f.signupCustom {
		t.Fatalf("strict policy answer 'y' should set custom")
	}
	if a.userName != "bob" {
		t.Fatalf("userName not set: %q", a.userName)
	}
}

func TestSignup_DefaultPolicy(t *testing.T) {
	f := &fakeBackend{}
	a := &App{client: f}

	restore := stubInputs(t, []string{"bob", "", ""}, []byte("secret123"))
	defer restore()

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	if f.signupCustom {
		t.Fatalf("empty answer should not enable strict policy")
	}
	if f.signupEmail != "" {
		t.Fatalf("email should be empty, got %q", f.signupEmail)
	}
}

func TestLogout(t *testing.T) {
	f := &fakeBackend{hasToken: true}
	a := &App{client: f, userName: "alice"}

	a.Logout()

	if !f.logoutCalled {
		t.Fatalf("client Logout not called")
	}
	if a.userName != "" {
		t.Fatalf("userName not cleared")
	}
}
