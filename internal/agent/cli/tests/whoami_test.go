package tests

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/IvanChernomyrdin/credkeeper/internal/agent/cli"
	"github.com/IvanChernomyrdin/credkeeper/internal/agent/config"
	"github.com/IvanChernomyrdin/credkeeper/internal/shared/utils"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

func TestNewWhoamiCmd_NotLoggedIn(t *testing.T) {
	cmd := cli.NewWhoamiCmd(newApp(t, ""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if !errors.Is(err, cli.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestNewWhoamiCmd_PrintsProfile(t *testing.T) {
	app := newApp(t, "")
	app.Profile = &config.Profile{Server: "http://127.0.0.1:8000", User: utils.Ptr(aliceProfile())}

	cmd := cli.NewWhoamiCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, want := range []string{"user_id=1", "username=alice", "email=a@x.com", "name=A L", "phone=555-0100"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output %q", want, out.String())
		}
	}
}

func TestNewHealthCmd(t *testing.T) {
	var down atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if !down.Load() {
			writeJSON(w, http.StatusOK, smodels.StatusResponse{Status: smodels.StatusOK})
			return
		}
		writeErr(w, http.StatusServiceUnavailable, "store unavailable")
	})
	srv := newServer(t, mux)

	cmd := cli.NewHealthCmd(newApp(t, srv.URL))
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if strings.TrimSpace(out.String()) != "ok" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	down.Store(true)
	cmd = cli.NewHealthCmd(newApp(t, srv.URL))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || err.Error() != "store unavailable" {
		t.Fatalf("expected store unavailable, got %v", err)
	}
}
