package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/credkeeper/internal/agent/cli"
	"github.com/IvanChernomyrdin/credkeeper/internal/agent/config"
	smodels "github.com/IvanChernomyrdin/credkeeper/internal/shared/models"
)

// newApp создаёт App с профилем во временной директории
func newApp(t *testing.T, serverURL string) *cli.App {
	t.Helper()
	return &cli.App{
		ServerURL:   serverURL,
		ProfilePath: filepath.Join(t.TempDir(), "profile.json"),
		Profile:     &config.Profile{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, smodels.ErrorResponse{Error: msg})
}

// stubPassword подменяет чтение пароля на время теста
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := cli.ReadPassword
	t.Cleanup(func() { cli.ReadPassword = orig })
	cli.ReadPassword = func(_ *cobra.Command, _ bool) (string, error) {
		return pw, nil
	}
}

func newServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
