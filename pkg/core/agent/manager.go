package agent

import (
	"context"
	"fmt"

	"finagent/pkg/core/llm"
)

// Agent teams routed by the manager.
const (
	TeamPersonalFinance = "personal_finance"
	TeamInvestment      = "investment"
	TeamAdvisor         = "advisor"
)

// Config is loaded from config/models.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	AdvisorModel   string                 `yaml:"advisor_model"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig overrides the provider for one agent team.
type AgentConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager routes each agent team to its configured LLM provider.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// GetProvider resolves the provider for an agent team: team override first,
// then the global active provider, then Gemini.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ModelFor returns the configured model override for an agent team, if any.
func (m *Manager) ModelFor(agentType string) string {
	if agentConfig, ok := m.config.Agents[agentType]; ok {
		return agentConfig.Model
	}
	return ""
}

// ExecutePrompt adapts the instructions for the team's provider and runs the
// prompt.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType, rawPrompt, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)
	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)
	if options == nil {
		options = map[string]interface{}{}
	}
	if _, ok := options["model"]; !ok {
		if model := m.ModelFor(agentType); model != "" {
			options["model"] = model
		}
	}
	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, options)
}

// SetGlobalProvider switches the default provider at runtime.
func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}

// AdvisorModel returns the model the function-calling advisor should use.
func (m *Manager) AdvisorModel() string {
	if m.config.AdvisorModel != "" {
		return m.config.AdvisorModel
	}
	return "gemini-2.0-flash-exp"
}
