package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
	groqx "github.com/tanpawarit/Nephro-Postcare-Assistant/pkg/groq"
)

// Config is the shared language-model backend configuration, with optional
// per-responder model and temperature overrides.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.groq.com/openai/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1024"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.4"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	ReceptionistModel       string  `envconfig:"RECEPTIONIST_MODEL" split_words:"true"`
	ClinicalModel           string  `envconfig:"CLINICAL_MODEL" split_words:"true"`
	ReceptionistTemperature float32 `envconfig:"RECEPTIONIST_TEMPERATURE" split_words:"true" default:"-1"`
	ClinicalTemperature     float32 `envconfig:"CLINICAL_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// GroqFor resolves the backend config for one responder, applying overrides
// on top of the shared defaults.
func (c Config) GroqFor(agentType contractx.AgentType) groqx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeReceptionist:
		if v := strings.TrimSpace(c.ReceptionistModel); v != "" {
			modelName = v
		}
		if c.ReceptionistTemperature >= 0 {
			temp = c.ReceptionistTemperature
		}
	case contractx.AgentTypeClinical:
		if v := strings.TrimSpace(c.ClinicalModel); v != "" {
			modelName = v
		}
		if c.ClinicalTemperature >= 0 {
			temp = c.ClinicalTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return groqx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}
