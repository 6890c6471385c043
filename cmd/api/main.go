package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finagent/pkg/api/advisor"
	"finagent/pkg/api/tools"
	"finagent/pkg/core/agent"
	"finagent/pkg/core/knowledge"
	"finagent/pkg/core/registry"
	"finagent/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()
	ctx := context.Background()

	// Agent/provider configuration
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err != nil {
		fmt.Printf("[WARNING] Failed to read config/models.yaml: %v\n", err)
		fmt.Println("  Falling back to default provider configuration")
	} else if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config/models.yaml: %v\n", err)
	}
	agentMgr := agent.NewManager(agentCfg)
	fmt.Printf("[CONFIG] Active provider: %s\n", agentMgr.GetActiveProvider())

	// Calculator registry
	reg := registry.New()
	fmt.Printf("[REGISTRY] %d calculator tools registered\n", len(reg.Specs()))

	// Reference library
	library := knowledge.NewLibrary()
	if loaded, err := library.LoadDirectory("resources/knowledge"); err != nil {
		fmt.Printf("[WARNING] Knowledge library not loaded: %v\n", err)
	} else {
		fmt.Printf("[KNOWLEDGE] Loaded %d articles\n", loaded)
	}

	// Conversation store (optional)
	var convRepo *store.ConversationRepo
	if pool, err := store.Connect(ctx); err != nil {
		fmt.Printf("[WARNING] Database unavailable, sessions will not persist: %v\n", err)
	} else {
		convRepo = store.NewConversationRepo(pool)
		defer convRepo.Close()
	}

	// Function-calling advisor (optional, needs a Gemini key)
	var adv *agent.Advisor
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		var err error
		adv, err = agent.NewAdvisor(ctx, apiKey, agentMgr.AdvisorModel(), reg)
		if err != nil {
			fmt.Printf("[WARNING] Advisor disabled: %v\n", err)
		} else {
			defer adv.Close()
			fmt.Printf("[ADVISOR] Ready on model %s\n", agentMgr.AdvisorModel())
		}
	} else {
		fmt.Println("[WARNING] GEMINI_API_KEY not set, advisor endpoints disabled")
	}

	// Direct tool endpoints
	toolsHandler := tools.NewHandler(reg)
	http.HandleFunc("/api/tools", toolsHandler.HandleList)
	http.HandleFunc("/api/tools/execute", toolsHandler.HandleExecute)

	// Advisor endpoints
	advisorHandler := advisor.NewHandler(adv, agentMgr, library, convRepo)
	http.HandleFunc("/api/advisor/ask", advisorHandler.HandleAsk)
	http.HandleFunc("/api/advisor/history", advisorHandler.HandleHistory)
	http.HandleFunc("/api/advisor/sessions", advisorHandler.HandleSessions)
	http.HandleFunc("/api/knowledge/search", advisorHandler.HandleKnowledge)
	http.HandleFunc("/api/knowledge/explain", advisorHandler.HandleExplain)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/tools")
	fmt.Println("  - POST /api/tools/execute")
	fmt.Println("  - POST /api/advisor/ask")
	fmt.Println("  - GET  /api/advisor/history?session_id=...")
	fmt.Println("  - GET  /api/advisor/sessions")
	fmt.Println("  - GET  /api/knowledge/search?q=...")
	fmt.Println("  - POST /api/knowledge/explain")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
