package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, body := range []string{`{}`, `{"username":"a"}`, `{"password":"b"}`, `{"username":"","password":"b"}`} {
		rec := env.do(t, jsonRequest(http.MethodPost, "/api/register", body))
		expectStatus(t, rec, http.StatusBadRequest)
		expectMessage(t, rec, "Username and password required")
	}

	rec := env.do(t, jsonRequest(http.MethodPost, "/api/register", `not json`))
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t, nil)
	body := `{"username":"alice","password":"pa55word"}`

	rec := env.do(t, jsonRequest(http.MethodPost, "/api/register", body))
	expectStatus(t, rec, http.StatusCreated)
	expectMessage(t, rec, "User registered successfully")

	rec = env.do(t, jsonRequest(http.MethodPost, "/api/register", body))
	expectStatus(t, rec, http.StatusBadRequest)
	expectMessage(t, rec, "Username already exists")

	user, err := env.db.UserRepo().FindByUsername("alice")
	if err != nil || user == nil {
		t.Fatalf("FindByUsername = %v, %v", user, err)
	}
	if user.PasswordHash == "pa55word" || !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("password stored without bcrypt: %q", user.PasswordHash)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(t, jsonRequest(http.MethodPost, "/api/register", `{"username":"bob","password":"correct"}`))
	expectStatus(t, rec, http.StatusCreated)

	rec = env.do(t, jsonRequest(http.MethodPost, "/api/login", `{"username":"bob","password":"correct"}`))
	expectStatus(t, rec, http.StatusOK)
	expectMessage(t, rec, "Login successful")

	wrongPassword := env.do(t, jsonRequest(http.MethodPost, "/api/login", `{"username":"bob","password":"nope"}`))
	expectStatus(t, wrongPassword, http.StatusUnauthorized)
	unknownUser := env.do(t, jsonRequest(http.MethodPost, "/api/login", `{"username":"mallory","password":"correct"}`))
	expectStatus(t, unknownUser, http.StatusUnauthorized)

	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("responses disclose the failing factor:\n%s\n%s", wrongPassword.Body.String(), unknownUser.Body.String())
	}
	expectMessage(t, unknownUser, "Invalid credentials")

	rec = env.do(t, jsonRequest(http.MethodPost, "/api/login", `{"username":"bob"}`))
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestAuthRateLimit(t *testing.T) {
	env := newTestEnv(t, map[string]string{"AUTH_RATE_LIMIT": "2"})
	body := `{"username":"x","password":"y"}`

	for i := 0; i < 2; i++ {
		rec := env.do(t, jsonRequest(http.MethodPost, "/api/login", body))
		expectStatus(t, rec, http.StatusUnauthorized)
	}
	rec := env.do(t, jsonRequest(http.MethodPost, "/api/login", body))
	expectStatus(t, rec, http.StatusTooManyRequests)

	// Other routes are not limited.
	rec = env.do(t, jsonRequest(http.MethodGet, "/api/videos", ""))
	expectStatus(t, rec, http.StatusOK)
}

func TestRegisterAndLoginWithLongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	password := strings.Repeat("a", 80)
	body := `{"username":"carol","password":"` + password + `"}`

	rec := env.do(t, jsonRequest(http.MethodPost, "/api/register", body))
	expectStatus(t, rec, http.StatusCreated)
	expectMessage(t, rec, "User registered successfully")

	rec = env.do(t, jsonRequest(http.MethodPost, "/api/login", body))
	expectStatus(t, rec, http.StatusOK)
	expectMessage(t, rec, "Login successful")

	rec = env.do(t, jsonRequest(http.MethodPost, "/api/login", `{"username":"carol","password":"`+password[:71]+`"}`))
	expectStatus(t, rec, http.StatusUnauthorized)
}
