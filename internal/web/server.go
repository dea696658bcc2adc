// Package web implements the HTTP server for the NFT explorer: the
// JSON API routes, the live vault SSE stream, the status WebSocket, and
// a small dashboard page.
package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/draxxycodes/NFT/internal/api"
	"github.com/draxxycodes/NFT/internal/chain"
	"github.com/draxxycodes/NFT/internal/config"
	"github.com/draxxycodes/NFT/internal/docs"
	"github.com/draxxycodes/NFT/internal/logger"
	"github.com/draxxycodes/NFT/internal/types"
	"github.com/draxxycodes/NFT/internal/vault"
	"github.com/draxxycodes/NFT/internal/worldid"
)

// TemplateData holds the data passed to the dashboard template.
type TemplateData struct {
	CurrentVersion string
	BuildTime      string
	ChainID        int
	ExplorerURL    string
	RecordCount    int
	Verified       bool
	DocList        []string
	DocContent     template.HTML
	CurrentDoc     string
}

// sseBroker manages SSE connections for broadcasting vault updates
type sseBroker struct {
	mu      sync.RWMutex
	clients map[chan []byte]struct{}
}

func newSSEBroker() *sseBroker {
	return &sseBroker{
		clients: make(map[chan []byte]struct{}),
	}
}

func (b *sseBroker) register(client chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = struct{}{}
}

func (b *sseBroker) unregister(client chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, client)
	close(client)
}

func (b *sseBroker) broadcast(data []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		select {
		case client <- data:
		default:
			// Client is slow/blocked, skip
		}
	}
}

// Server is the web server for the dashboard and API.
type Server struct {
	store      *vault.Store
	session    *worldid.Session
	cfg        *config.Config
	port       int
	templates  *template.Template
	logger     *logger.Logger
	sseBroker  *sseBroker
	apiService *api.Service
	docService *docs.Service
}

// NewServer creates a new web server wired to the given collaborators.
func NewServer(cfg *config.Config, store *vault.Store, provider *chain.Client, session *worldid.Session, verifier worldid.Verifier, l *logger.Logger) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	apiService := api.NewService(store, provider, session, verifier, cfg.VerifyAction, l)
	docService := docs.NewService("internal/docs")

	s := &Server{
		store:      store,
		session:    session,
		cfg:        cfg,
		port:       cfg.Port,
		templates:  templates,
		logger:     l,
		sseBroker:  newSSEBroker(),
		apiService: apiService,
		docService: docService,
	}

	s.logger.Infof("Explorer server initialized")

	// Broadcast ledger appends to SSE clients
	go s.watchVaultUpdates()

	return s, nil
}

// Logger returns the server's logger instance
func (s *Server) Logger() *logger.Logger {
	return s.logger
}

// Start initializes and runs the web server.
func (s *Server) Start() <-chan error {
	log.Printf("Web UI: Starting dashboard and API server on http://localhost:%d", s.port)

	mux := http.NewServeMux()

	// Page routes
	mux.HandleFunc("/", s.handlePageLoad)
	mux.HandleFunc("/docs", s.handleDocsView)

	// API routes (delegated to apiService)
	mux.HandleFunc("/api/health", s.apiService.HandleHealth)
	mux.HandleFunc("/api/version", s.apiService.HandleVersion)
	mux.HandleFunc("/api/nonce", s.apiService.HandleNonce)
	mux.HandleFunc("/api/nfts", s.apiService.HandleNFTs)
	mux.HandleFunc("/api/nfts/metadata", s.apiService.HandleNFTMetadata)
	mux.HandleFunc("/api/collections", s.apiService.HandleCollections)
	mux.HandleFunc("/api/verify", s.apiService.HandleVerify)
	mux.HandleFunc("/api/verify/status", s.apiService.HandleVerifyStatus)
	mux.HandleFunc("/api/verify/reset", s.apiService.HandleVerifyReset)
	mux.HandleFunc("/api/mint", s.apiService.HandleMint)
	mux.HandleFunc("/api/vault", s.apiService.HandleVault)
	mux.HandleFunc("/api/vault/stream", s.handleVaultStream) // Kept in web for SSE logic

	// WebSocket routes
	mux.HandleFunc("/ws/status", s.handleStatusWS)

	addr := fmt.Sprintf(":%d", s.port)
	errCh := make(chan error, 1)

	go func() {
		err := http.ListenAndServe(addr, mux)
		errCh <- err
		close(errCh)
	}()

	return errCh
}

func (s *Server) handlePageLoad(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.setCacheHeaders(w)

	err := s.templates.ExecuteTemplate(w, "index.html", TemplateData{
		CurrentVersion: types.Version,
		BuildTime:      types.BuildTime,
		ChainID:        s.cfg.ChainID,
		ExplorerURL:    s.cfg.BlockExplorerURL,
		RecordCount:    len(s.store.LoadAll()),
		Verified:       s.session.IsVerified(),
	})
	if err != nil {
		log.Printf("Error executing index template: %s", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) handleDocsView(w http.ResponseWriter, r *http.Request) {
	s.setCacheHeaders(w)

	docName := r.URL.Query().Get("doc")
	docList, _ := s.docService.ListDocs()

	if docName == "" && len(docList) > 0 {
		docName = docList[0]
	}

	var docContent string
	if docName != "" {
		content, err := s.docService.GetDoc(r.Context(), docName)
		if err == nil {
			docContent = content
		} else {
			s.logger.Errorf("Failed to load doc %s: %v", docName, err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.templates.ExecuteTemplate(w, "docs.html", TemplateData{
		CurrentVersion: types.Version,
		BuildTime:      types.BuildTime,
		DocList:        docList,
		DocContent:     template.HTML(docContent),
		CurrentDoc:     docName,
	})
	if err != nil {
		log.Printf("Error executing docs template: %s", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// watchVaultUpdates listens for ledger appends and broadcasts the
// current record list to all SSE clients.
func (s *Server) watchVaultUpdates() {
	for range s.store.Updates() {
		data := s.renderVaultEvent()
		if data != nil {
			s.sseBroker.broadcast(data)
		}
	}
}

// renderVaultEvent formats the session's current records as an SSE
// event payload.
func (s *Server) renderVaultEvent() []byte {
	records := s.store.ListByOwner(s.session.IdentityKey())
	vault.SortRecords(records, vault.SortNewest)

	payload, err := json.Marshal(map[string]any{
		"records": records,
		"count":   len(records),
	})
	if err != nil {
		s.logger.Errorf("Failed to marshal vault event: %v", err)
		return nil
	}

	return []byte(fmt.Sprintf("event: vault\ndata: %s\n\n", payload))
}

// handleVaultStream establishes an SSE connection and streams vault
// updates as they happen.
func (s *Server) handleVaultStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable proxy buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan []byte, 10)
	s.sseBroker.register(clientChan)
	defer s.sseBroker.unregister(clientChan)

	s.logger.Infof("SSE client connected for vault updates")
	defer s.logger.Infof("SSE client disconnected")

	// Send initial state immediately
	if initial := s.renderVaultEvent(); initial != nil {
		w.Write(initial)
		flusher.Flush()
	}

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-clientChan:
			w.Write(data)
			flusher.Flush()
		case <-keepAlive.C:
			// Keep-alive comment to prevent proxy timeouts
			fmt.Fprintf(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

// handleStatusWS streams status log messages over a WebSocket: recent
// history first, then live messages as they are logged.
func (s *Server) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	live, cancel := s.logger.Subscribe()
	defer cancel()

	for _, msg := range s.logger.Recent(50) {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-live:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

// setCacheHeaders sets cache-busting headers to prevent browser caching.
func (s *Server) setCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
