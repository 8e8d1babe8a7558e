package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vocuz/vocuz/internal/api"
	"github.com/vocuz/vocuz/internal/app"
	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/config"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/service"
	"github.com/vocuz/vocuz/internal/settings"
	"github.com/vocuz/vocuz/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB and a temp home dir.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	backend := app.NewLocal(database, slog.New(slog.DiscardHandler), auth.WithHashCost(bcrypt.MinCost))

	home := t.TempDir()
	cfg := &config.Config{HomeDir: home, Backend: config.BackendLocal, ListenAddr: "127.0.0.1:0"}
	holder, err := settings.NewHolder(settings.NewFileStore(cfg.PreferencesPath()))
	require.NoError(t, err)
	deps := backend.APIDeps()

	return &App{
		Missions:    backend.Missions,
		Notes:       backend.Notes,
		Sessions:    backend.Sessions,
		Profile:     backend.Profile,
		Auth:        backend.Auth,
		Credentials: auth.NewCredentialStore(cfg.CredentialsPath()),
		Settings:    holder,
		Config:      cfg,
		API:         &deps,
		PruneTokens: backend.Pruner.PruneExpired,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func signUp(t *testing.T, app *App) {
	t.Helper()
	_, err := executeCmd(t, app, "signup", "--email", "ada@example.com", "--password", "secret123", "--name", "Ada")
	require.NoError(t, err)
}

// userCtx acts as the signed-in user when calling services directly.
func userCtx(t *testing.T, app *App) context.Context {
	t.Helper()
	ctx, err := app.userContext(context.Background())
	require.NoError(t, err)
	return ctx
}

// --- auth ---

func TestAuthCommands_SignUpWhoAmILogout(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")

	out, err = executeCmd(t, a, "signup", "--email", "ada@example.com", "--password", "secret123", "--name", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ada!")

	out, err = executeCmd(t, a, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "(local)")

	out, err = executeCmd(t, a, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out ada@example.com")

	creds, err := a.Credentials.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)

	out, err = executeCmd(t, a, "login", "--email", "ada@example.com", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ada@example.com")
}

func TestAuthCommands_NeedFlagsWithoutTerminal(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestAuthCommands_WrongPassword(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	_, err := executeCmd(t, a, "login", "--email", "ada@example.com", "--password", "nope-nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestCredentials_FromOtherBackendAreIgnored(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	a.Config.Backend = config.BackendRemote
	creds, err := a.signedIn()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestCredentials_Expired(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	a.Now = func() time.Time { return time.Now().Add(auth.DefaultTokenTTL + time.Hour) }
	creds, err := a.signedIn()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestExplainError_SignedOut(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "mission", "list")
	require.ErrorIs(t, err, service.ErrNotAuthenticated)
	assert.Contains(t, ExplainError(err).Error(), "vocuz login")
}

// --- missions ---

func TestMissionCommands_Lifecycle(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	out, err := executeCmd(t, a, "mission", "add", "Write", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Added mission Write report")

	_, err = executeCmd(t, a, "mission", "add", "Read paper")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "mission", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Read paper")

	out, err = executeCmd(t, a, "mission", "done", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "marked completed")

	pending, err := a.Missions.ListPending(userCtx(t, a))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Read paper", pending[0].Title)

	out, err = executeCmd(t, a, "mission", "toggle", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")

	_, err = executeCmd(t, a, "mission", "rename", "2", "Read", "two", "papers")
	require.NoError(t, err)

	all, err := a.Missions.List(userCtx(t, a))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[0].IsCompleted)
	assert.Equal(t, "Read two papers", all[1].Title)

	out, err = executeCmd(t, a, "mission", "rm", "--yes", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted mission Read two papers")
}

func TestMissionCommands_RefByIDPrefix(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	m, err := a.Missions.Create(userCtx(t, a), "Prefix me")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "mission", "done", m.ID[:6])
	require.NoError(t, err)

	got, err := a.Missions.GetByID(userCtx(t, a), m.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
}

func TestMissionCommands_UnknownRef(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	_, err := executeCmd(t, a, "mission", "done", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mission #3")
}

func TestMissionCommands_EmptyTitle(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	_, err := executeCmd(t, a, "mission", "add", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

// --- notes ---

func TestNoteCommands_Lifecycle(t *testing.T) {
	a := testApp(t)
	signUp(t, a)

	out, err := executeCmd(t, a, "note", "add", "Idea", "--body", "ship it on friday")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved note Idea")

	out, err = executeCmd(t, a, "note", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "ship it on friday")

	_, err = executeCmd(t, a, "note", "edit", "1", "--title", "Better idea")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Better idea")

	_, err = executeCmd(t, a, "note", "edit", "1")
	require.Error(t, err)

	_, err = executeCmd(t, a, "note", "rm", "1")
	require.NoError(t, err)

	notes, err := a.Notes.List(userCtx(t, a))
	require.NoError(t, err)
	assert.Empty(t, notes)
}

// --- sessions ---

func TestSessionCommands_LogAndStats(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	_, err := executeCmd(t, a, "mission", "add", "Deep work")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "session", "log", "--minutes", "25", "--mission", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged")

	_, err = executeCmd(t, a, "session", "log", "--mode", "short", "--minutes", "5")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "session", "log", "--mode", "short", "--minutes", "5", "--mission", "1")
	require.Error(t, err)

	out, err = executeCmd(t, a, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Deep work")

	stats, err := a.Sessions.Stats(userCtx(t, a), 7)
	require.NoError(t, err)
	assert.Equal(t, 25, stats.FocusMinutes)

	out, err = executeCmd(t, a, "session", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 7 days")
}

func TestSessionCommands_BadMode(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	_, err := executeCmd(t, a, "session", "log", "--mode", "nap", "--minutes", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nap")
}

// --- settings ---

func TestSettingsCommand_UpdatesDurations(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "settings", "--focus", "50", "--short", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "50 min")

	got := a.Settings.Timer()
	assert.Equal(t, domain.TimerSettings{Focus: 50, ShortBreak: 10, LongBreak: 15}, got)

	reloaded, err := settings.NewFileStore(a.Config.PreferencesPath()).Load()
	require.NoError(t, err)
	assert.Equal(t, got, reloaded.Timer)
}

func TestSettingsCommand_RejectsOutOfRange(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "settings", "--focus", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
	assert.Equal(t, domain.DefaultTimerSettings(), a.Settings.Timer())
}

func TestThemeCommand(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "Mint Focus")

	_, err = executeCmd(t, a, "theme", "mint")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeMint, a.Settings.Get().Theme)

	_, err = executeCmd(t, a, "theme", "neon")
	assert.Error(t, err)
}

// --- timer (plain) ---

func TestTimerCommand_PlainModeSwitch(t *testing.T) {
	a := testApp(t)

	out, err := executeCmdWithInput(t, a, "short\nq\n", "timer", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "[Deep Locked In] 25:00 paused")
	assert.Contains(t, out, "[Short Break] 05:00 paused")
}

func TestTimerCommand_StartMode(t *testing.T) {
	a := testApp(t)

	out, err := executeCmdWithInput(t, a, "q\n", "timer", "--plain", "--mode", "long")
	require.NoError(t, err)
	assert.Contains(t, out, "[Long Break] 15:00 paused")
}

func TestTimerCommand_MissionNeedsSignIn(t *testing.T) {
	a := testApp(t)
	_, err := executeCmdWithInput(t, a, "q\n", "timer", "--plain", "--mission", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signed-in")
}

func TestTimerCommand_SelectsMission(t *testing.T) {
	a := testApp(t)
	signUp(t, a)
	_, err := executeCmd(t, a, "mission", "add", "First")
	require.NoError(t, err)
	_, err = executeCmd(t, a, "mission", "add", "Second")
	require.NoError(t, err)

	out, err := executeCmdWithInput(t, a, "q\n", "timer", "--plain", "--mission", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "· Second")
}

func TestBellSignaler(t *testing.T) {
	var buf bytes.Buffer
	s := NewBellSignaler(&buf)

	require.NoError(t, s.Signal(domain.ModeFocus))
	assert.Equal(t, "\a\a", buf.String())

	buf.Reset()
	require.NoError(t, s.Signal(domain.ModeShort))
	assert.Equal(t, "\a", buf.String())
}

// --- serve ---

func TestServeAPI_ServesUntilCancelled(t *testing.T) {
	a := testApp(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveAPI(ctx, ln, api.NewRouter(*a.API, slog.New(slog.DiscardHandler)), slog.New(slog.DiscardHandler))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeCommand_NeedsLocalBackend(t *testing.T) {
	a := testApp(t)
	a.API = nil
	_, err := executeCmd(t, a, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local backend")
}

func TestInvokedCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"serve"}, "serve"},
		{[]string{"serve", "--addr", "127.0.0.1:9000"}, "serve"},
		{[]string{"note", "add", "serve"}, "add"},
		{[]string{"mission", "add", "serve", "the", "api"}, "add"},
		{[]string{"timer", "--plain"}, "timer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InvokedCommand(tt.args), "args %q", tt.args)
	}
}
