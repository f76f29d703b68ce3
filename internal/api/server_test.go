package api_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/mergington-activities/internal/api"
	"github.com/mcoot/mergington-activities/internal/factory"
	"github.com/mcoot/mergington-activities/internal/testutil"
)

func TestServerServesUntilContextCancelled(t *testing.T) {
	app := factory.NewTestApp()
	require.NoError(t, app.SeedTestActivities())

	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		AuthService:     app.AuthService,
		RegistryService: app.RegistryService,
	})

	cfg := api.DefaultServerConfig()
	cfg.ShutdownTimeout = time.Second
	server := api.NewServer(router, cfg, testutil.NopLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/activities")
	require.NoError(t, err)
	var activities map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activities))
	_ = resp.Body.Close()
	require.Contains(t, activities, "Chess Club")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}

	_, err = http.Get("http://" + ln.Addr().String() + "/health")
	require.Error(t, err)
}

func TestServerRunReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)
	server := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())

	err = server.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen on")
}
