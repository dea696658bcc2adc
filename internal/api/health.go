package api

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/draxxycodes/NFT/internal/types"
)

// @Title: Get Health
// @Route: GET /api/health
// @Description: Returns server health status
// @Response: {"status": "ok", "name": "...", "timestamp": "..."}
func (s *Service) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"name":      "nft-explorer",
		"env":       runtime.GOOS,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// @Title: Get Version
// @Route: GET /api/version
// @Description: Returns service version and build info
// @Response: {"version": "...", "status": "ok", "hostname": "..."}
func (s *Service) HandleVersion(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()

	s.writeJSON(w, http.StatusOK, map[string]string{
		"version":    types.Version,
		"build_time": types.BuildTime,
		"status":     "ok",
		"hostname":   hostname,
		"go_ver":     runtime.Version(),
		"os_arch":    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	})
}

// @Title: Get Nonce
// @Route: GET /api/nonce
// @Description: Returns a fresh 32-character hex nonce for wallet auth
// @Response: {"nonce": "..."}
func (s *Service) HandleNonce(w http.ResponseWriter, r *http.Request) {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	s.writeJSON(w, http.StatusOK, map[string]string{"nonce": nonce})
}
