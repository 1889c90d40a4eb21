package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequiresEmailAndPasswordFlags(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login", "--email", "ops@branch.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"password\" not set")
}

func TestLoginThenWhoamiHappyPath(t *testing.T) {
	home := t.TempDir()
	startBackends(t)

	stdout, _, err := executeCLI(t, home,
		"login",
		"--email", "ops@branch.com",
		"--password", "secret",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as ops@branch.com (EMPLOYEE)")
	assert.Contains(t, stdout, "Landing: lops home employee")

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ops@branch.com (EMPLOYEE)")
	assert.Contains(t, stdout, "branch: b1")
}

func TestLoginPersistsDurableRecord(t *testing.T) {
	home := t.TempDir()
	startBackends(t)

	_, _, err := executeCLI(t, home,
		"login",
		"--email", "ops@branch.com",
		"--password", "secret",
	)
	require.NoError(t, err)

	info, statErr := os.Stat(sessionFilePath(home))
	require.NoError(t, statErr)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoginRejectionPersistsNothing(t *testing.T) {
	home := t.TempDir()
	startBackends(t)

	_, _, err := executeCLI(t, home,
		"login",
		"--email", "ops@branch.com",
		"--password", "wrong",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")

	_, statErr := os.Stat(sessionFilePath(home))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoginBasicSkipsStaffProfile(t *testing.T) {
	home := t.TempDir()
	staffCalls := startBackends(t)

	stdout, _, err := executeCLI(t, home,
		"login", "--basic",
		"--email", "ops@branch.com",
		"--password", "secret",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as ops@branch.com (EMPLOYEE)")
	assert.Equal(t, 0, *staffCalls)

	stdout, _, err = executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "branch:")
}

func TestWhoamiJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "EMPLOYEE"))

	stdout, _, err := executeCLI(t, home, "whoami", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"role\": \"EMPLOYEE\"")
	assert.Contains(t, stdout, "\"branchId\": \"b1\"")
}

func TestWhoamiWithoutSessionRedirectsToLogin(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, stdout, "Run `lops login`, then retry `lops whoami`.")
}

func TestHomeRendersRoleLanding(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "EMPLOYEE"))

	stdout, _, err := executeCLI(t, home, "home")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Laundries Ops Console")
	assert.Contains(t, stdout, "shell: employee")
	assert.Contains(t, stdout, "Signed in as ops@branch.com (EMPLOYEE)")
}

func TestHomeEmployeeAdmitsEmployee(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "EMPLOYEE"))

	stdout, _, err := executeCLI(t, home, "home", "employee")
	require.NoError(t, err)
	assert.Contains(t, stdout, "shell: employee")
	assert.NotContains(t, stdout, "not available for your role")
}

func TestHomeAdminDenialFallsOpenToOwnLanding(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "EMPLOYEE"))

	stdout, _, err := executeCLI(t, home, "home", "admin")
	require.NoError(t, err)
	assert.Contains(t, stdout, "`lops home admin` is not available for your role")
	assert.Contains(t, stdout, "shell: employee")
	assert.NotContains(t, stdout, "shell: admin")
}

func TestHomeAdminAdmitsAdmin(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "ADMIN"))

	stdout, _, err := executeCLI(t, home, "home", "admin")
	require.NoError(t, err)
	assert.Contains(t, stdout, "shell: admin")
	assert.Contains(t, stdout, "Branches")
}

func TestUnknownRoleLandsOnEmployeeHome(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "SUPERVISOR"))

	stdout, _, err := executeCLI(t, home, "home")
	require.NoError(t, err)
	assert.Contains(t, stdout, "shell: employee")
}

func TestRegisterManagerDeniedForEmployee(t *testing.T) {
	home := t.TempDir()
	registerCalls := 0
	startBackendsWithRegisterCounter(t, &registerCalls)
	require.NoError(t, writeSessionFixture(home, "EMPLOYEE"))

	stdout, _, err := executeCLI(t, home,
		"register-manager",
		"--email", "new-manager@branch.com",
		"--password", "secret",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "`lops register-manager` is not available for your role")
	assert.Equal(t, 0, registerCalls)
}

func TestRegisterManagerAsAdmin(t *testing.T) {
	home := t.TempDir()
	registerCalls := 0
	startBackendsWithRegisterCounter(t, &registerCalls)
	require.NoError(t, writeSessionFixture(home, "ADMIN"))

	stdout, _, err := executeCLI(t, home,
		"register-manager",
		"--email", "new-manager@branch.com",
		"--password", "secret",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created manager account new-manager@branch.com")
	assert.Equal(t, 1, registerCalls)
}

func TestLogoutErasesSessionAndIsIdempotent(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "EMPLOYEE"))

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out.")

	_, statErr := os.Stat(sessionFilePath(home))
	assert.True(t, os.IsNotExist(statErr))

	_, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
}

func TestCorruptSessionRecordIsDiscardedOnStartup(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".laundries"), 0o755))
	require.NoError(t, os.WriteFile(sessionFilePath(home), []byte("{definitely not toml"), 0o600))

	stdout, _, err := executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, stdout, "Run `lops login`")

	_, statErr := os.Stat(sessionFilePath(home))
	assert.True(t, os.IsNotExist(statErr))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// startBackends stands up fake identity and staff-directory services
// and points the CLI at them. Returns a counter of staff calls.
func startBackends(t *testing.T) *int {
	t.Helper()

	staffCalls := 0

	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if body["email"] != "ops@branch.com" || body["password"] != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		_, _ = fmt.Fprint(w, `{
			"success": true,
			"data": {
				"id": "u1",
				"email": "ops@branch.com",
				"role": "EMPLOYEE",
				"accessToken": "tok1",
				"refreshToken": "ref1"
			}
		}`)
	}))
	t.Cleanup(identity.Close)

	staff := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffCalls++
		if r.Header.Get("Authorization") != "Bearer tok1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = fmt.Fprint(w, `{
			"staffId": "u1",
			"name": "Ops",
			"address": "Av. Central 12",
			"phone": "555-0101",
			"nationalId": "40123456",
			"dateOfBirth": "1994-03-18",
			"branchId": "b1"
		}`)
	}))
	t.Cleanup(staff.Close)

	t.Setenv("LAUNDRIES_API_URL", identity.URL)
	t.Setenv("LAUNDRIES_EMPLOYEES_API_URL", staff.URL)

	return &staffCalls
}

func startBackendsWithRegisterCounter(t *testing.T, registerCalls *int) {
	t.Helper()

	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-fixture" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		*registerCalls++
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(identity.Close)

	t.Setenv("LAUNDRIES_API_URL", identity.URL)
}

func sessionFilePath(home string) string {
	return filepath.Join(home, ".laundries", "session.toml")
}

func writeSessionFixture(home string, role string) error {
	configDir := filepath.Join(home, ".laundries")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	session := fmt.Sprintf(`version = 1

[session]
access_token = "tok-fixture"
refresh_token = "ref-fixture"

[session.user]
id = "u1"
email = "ops@branch.com"
role = %q

[session.profile]
staff_id = "u1"
name = "Ops"
address = "Av. Central 12"
phone = "555-0101"
national_id = "40123456"
date_of_birth = "1994-03-18"
branch_id = "b1"
`, role)

	return os.WriteFile(sessionFilePath(home), []byte(session), 0o600)
}
