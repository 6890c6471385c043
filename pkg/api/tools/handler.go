package tools

import (
	"encoding/json"
	"fmt"
	"net/http"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/registry"
)

// Handler exposes the calculator registry over HTTP for direct (non-agent)
// callers.
type Handler struct {
	registry *registry.Registry
}

func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{registry: reg}
}

// ExecuteRequest names a tool and carries its arguments verbatim. Args may be
// any payload the registry's lenient decoder accepts.
type ExecuteRequest struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args"`
}

// ErrorResponse carries the engine's failure kind to the client.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleList returns every tool contract.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"tools": h.registry.Specs(),
	})
}

// HandleExecute runs one calculator and returns its structured result.
func (h *Handler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}
	if req.Tool == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("tool name is required"))
		return
	}

	result, err := h.registry.Execute(req.Tool, string(req.Args))
	if err != nil {
		status := http.StatusBadRequest
		if !h.registry.Has(req.Tool) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"tool":   req.Tool,
		"result": result,
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
		Kind:  string(engine.KindOf(err)),
	})
}
