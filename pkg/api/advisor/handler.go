package advisor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"finagent/pkg/core/agent"
	"finagent/pkg/core/knowledge"
	"finagent/pkg/core/store"
	"finagent/pkg/core/utils"
)

// Handler exposes the function-calling advisor and the reference library.
// The conversation repo is optional; without a database, sessions simply are
// not persisted.
type Handler struct {
	advisor *agent.Advisor
	manager *agent.Manager
	library *knowledge.Library
	repo    *store.ConversationRepo
}

func NewHandler(adv *agent.Advisor, mgr *agent.Manager, lib *knowledge.Library, repo *store.ConversationRepo) *Handler {
	return &Handler{advisor: adv, manager: mgr, library: lib, repo: repo}
}

// AskRequest is one advisor question. An empty session_id starts a session.
type AskRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Question  string `json:"question"`
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleAsk runs one advisor turn.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.advisor == nil {
		http.Error(w, "Advisor not configured (GEMINI_API_KEY missing)", http.StatusServiceUnavailable)
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := h.advisor.Ask(r.Context(), req.SessionID, req.Question)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if h.repo != nil {
		if err := h.repo.SaveTurn(r.Context(), answer.SessionID, req.Question, answer); err != nil {
			fmt.Printf("[WARNING] Failed to persist advisor turn: %v\n", err)
		}
	}
	json.NewEncoder(w).Encode(answer)
}

// HandleHistory returns a session's stored turns.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.repo == nil {
		http.Error(w, "Conversation store not configured", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	turns, err := h.repo.ListTurns(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session_id": sessionID,
		"turns":      turns,
	})
}

// ExplainRequest asks for a plain-language explanation of a topic grounded in
// the reference library.
type ExplainRequest struct {
	Topic string `json:"topic"`
}

const explainSystemPrompt = `You are a financial educator for Indian retail
users. Explain the topic in plain language using ONLY the reference excerpts
provided. Do not compute numbers; point the user to the calculators for that.
If the excerpts do not cover the topic, say so.`

// HandleExplain narrates a knowledge-library topic through the configured
// provider. No tools are involved; this is pure explanation.
func (h *Handler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	articles := h.library.Search(req.Topic, 3)
	if len(articles) == 0 {
		http.Error(w, "no reference material covers this topic", http.StatusNotFound)
		return
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Topic: %s\n\nReference excerpts:\n", req.Topic)
	sources := make([]string, 0, len(articles))
	for _, a := range articles {
		fmt.Fprintf(&prompt, "\n## %s\n%s\n", a.Title, a.Content)
		sources = append(sources, a.Title)
	}

	text, err := h.manager.ExecutePrompt(r.Context(), agent.TeamPersonalFinance,
		prompt.String(), explainSystemPrompt, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	text = utils.CleanMarkdown(text)
	html, err := utils.RenderMarkdown(text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"topic":   req.Topic,
		"text":    text,
		"html":    html,
		"sources": sources,
	})
}

// HandleSessions lists the most recently active advisor sessions.
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.repo == nil {
		http.Error(w, "Conversation store not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	sessions, err := h.repo.RecentSessions(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessions": sessions,
	})
}

// HandleKnowledge searches the reference library.
func (h *Handler) HandleKnowledge(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"query":   query,
		"results": h.library.Search(query, limit),
	})
}
