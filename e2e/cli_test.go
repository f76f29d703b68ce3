package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/mergington-activities/internal/api"
	"github.com/mcoot/mergington-activities/internal/factory"
	"github.com/mcoot/mergington-activities/internal/web"
)

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
	buildOut   []byte
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	env        []string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary once per test binary
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "signup-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "signup-test")
		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/signup")
		cmd.Dir = projectRoot
		buildOut, buildErr = cmd.CombinedOutput()
	})
	require.NoError(t, buildErr, "failed to build CLI: %s", string(buildOut))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), r.env...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	app      *factory.App
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	// Create application from the shipped seed files
	projectRoot := findProjectRoot(t)
	logger := slog.New(slog.DiscardHandler)
	app, err := factory.New(factory.Config{
		TeachersPath: filepath.Join(projectRoot, "data/teachers.json"),
		Logger:       logger,
	})
	require.NoError(t, err)
	require.NoError(t, app.SeedFromFile(context.Background(), filepath.Join(projectRoot, "data/activities.json")))

	// Create routers
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		RegistryService: app.RegistryService,
		StaticDir:       filepath.Join(projectRoot, "internal/web/static"),
	})
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RegistryService: app.RegistryService,
		Web:             webRouter,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(router, serverCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, listener)
	}()

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/health")

	return &testServer{
		addr: serverURL,
		app:  app,
		shutdown: func() {
			cancel()
			if err := <-done; err != nil {
				t.Logf("server error: %v", err)
			}
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type activityResponse struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (r *cliRunner) activities(t *testing.T) map[string]activityResponse {
	t.Helper()
	output, err := r.run("activities")
	require.NoError(t, err, "output: %s", output)

	var resp map[string]activityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	return resp
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_ListShippedActivities(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	activities := cli.activities(t)

	require.Contains(t, activities, "Chess Club")
	assert.Equal(t, 12, activities["Chess Club"].MaxParticipants)
	assert.NotEmpty(t, activities["Chess Club"].Participants)
}

func TestCLI_TeacherFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	cli.env = []string{"SIGNUP_USERNAME=mr.smith", "SIGNUP_PASSWORD=pass123"}

	// Login
	output, err := cli.run("login")
	require.NoError(t, err, "output: %s", output)
	var login messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &login))
	assert.Equal(t, "Login successful", login.Message)

	// Register
	output, err = cli.run("register", "Chess Club", "e2e@mergington.edu")
	require.NoError(t, err, "output: %s", output)
	var reg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reg))
	assert.Equal(t, "success", reg.Status)
	assert.Contains(t, reg.Message, "e2e@mergington.edu")

	participants := cli.activities(t)["Chess Club"].Participants
	assert.Equal(t, "e2e@mergington.edu", participants[len(participants)-1])

	// Duplicate
	output, err = cli.run("register", "Chess Club", "e2e@mergington.edu")
	require.Error(t, err)
	assert.Contains(t, output, "Student is already signed up")

	// Unregister
	output, err = cli.run("unregister", "Chess Club", "e2e@mergington.edu")
	require.NoError(t, err, "output: %s", output)
	assert.NotContains(t, cli.activities(t)["Chess Club"].Participants, "e2e@mergington.edu")
}

func TestCLI_OpenFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("signup", "Art Club", "open@mergington.edu")
	require.NoError(t, err, "output: %s", output)
	var resp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "Signed up open@mergington.edu for Art Club", resp.Message)

	output, err = cli.run("leave", "Art Club", "open@mergington.edu")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("leave", "Art Club", "open@mergington.edu")
	require.Error(t, err)
	assert.Contains(t, output, "Student is not signed up for this activity")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Wrong password
	output, err := cli.run("register", "-u", "mr.smith", "-p", "wrong", "Chess Club", "x@mergington.edu")
	require.Error(t, err)
	assert.Contains(t, output, "Unauthorized")

	// Unknown activity
	output, err = cli.run("signup", "Underwater Basket Weaving", "x@mergington.edu")
	require.Error(t, err)
	assert.Contains(t, output, "Activity not found")

	// Missing arguments
	_, err = cli.run("signup", "Chess Club")
	require.Error(t, err)
}

func TestCLI_ConcurrentSignups(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Five processes race to sign up the same student; exactly one wins
	var wg sync.WaitGroup
	results := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cli.run("signup", "Math Club", "race@mergington.edu")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	count := 0
	for _, p := range cli.activities(t)["Math Club"].Participants {
		if strings.EqualFold(p, "race@mergington.edu") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestServer_LandingAndBoard(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	client := &http.Client{
		Timeout: 2 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.addr + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/static/index.html", resp.Header.Get("Location"))

	resp, err = client.Get(ts.addr + "/board")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Chess Club")
}
