// internal/runtime/server.go
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/getllm/getllm/internal/logging"
)

// defaultProbeTimeout bounds a single readiness probe.
const defaultProbeTimeout = 5 * time.Second

// Server manages the local runtime server process and its readiness probe.
// Stop only acts on a process this instance started; a server launched
// elsewhere is observed over HTTP but never signaled.
type Server struct {
	Binary  string
	BaseURL string
	Client  *http.Client

	mu     sync.Mutex
	cmd    *exec.Cmd
	exited chan error
}

// NewServer returns a Server probing baseURL and spawning binary on demand.
// probeTimeout bounds each HTTP probe; non-positive selects a default.
func NewServer(binary, baseURL string, probeTimeout time.Duration) *Server {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &Server{
		Binary:  binary,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: probeTimeout},
	}
}

// Version asks the server for its version over HTTP. An error means the
// server is not reachable or not healthy.
func (s *Server) Version(ctx context.Context) (string, error) {
	url := s.BaseURL + "/api/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build version request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		logging.LogRequest(http.MethodGet, url, 0)
		return "", fmt.Errorf("runtime server not reachable: %w", err)
	}
	defer resp.Body.Close()
	logging.LogRequest(http.MethodGet, url, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("runtime server responded %s", resp.Status)
	}

	var payload struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode version response: %w", err)
	}
	return payload.Version, nil
}

// Ready reports whether the server answers the version probe.
func (s *Server) Ready(ctx context.Context) bool {
	_, err := s.Version(ctx)
	return err == nil
}

// Start spawns the serve process unless the server already answers, then
// polls until it responds or ctx expires. The first return is false when the
// server was already running and nothing was spawned.
func (s *Server) Start(ctx context.Context) (bool, error) {
	if s.Ready(ctx) {
		return false, nil
	}

	path, err := exec.LookPath(s.Binary)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrRuntimeNotFound, s.Binary)
	}

	logging.LogCommand(s.Binary, []string{"serve"})
	// Not CommandContext: the server is meant to outlive this process.
	cmd := exec.Command(path, "serve")
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("start runtime server: %w", err)
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	s.mu.Lock()
	s.cmd = cmd
	s.exited = exited
	s.mu.Unlock()

	logging.LogEvent("runtime server starting: binary=%s pid=%d", s.Binary, cmd.Process.Pid)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-exited:
			s.clear()
			return true, fmt.Errorf("runtime server exited during startup: %v", err)
		case <-ctx.Done():
			return true, fmt.Errorf("runtime server did not become ready: %w", ctx.Err())
		case <-ticker.C:
			if s.Ready(ctx) {
				return true, nil
			}
		}
	}
}

// Stop terminates the serve process started by this instance, waiting up to
// ten seconds before killing it. It reports false when this instance owns no
// process.
func (s *Server) Stop() (bool, error) {
	s.mu.Lock()
	cmd := s.cmd
	exited := s.exited
	s.cmd = nil
	s.exited = nil
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return false, nil
	}

	logging.LogEvent("stopping runtime server pid=%d", cmd.Process.Pid)
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}

	select {
	case <-exited:
		return true, nil
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		<-exited
		return true, nil
	}
}

func (s *Server) clear() {
	s.mu.Lock()
	s.cmd = nil
	s.exited = nil
	s.mu.Unlock()
}
