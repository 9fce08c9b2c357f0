package internal

import (
	"fmt"
	"strings"

	"github.com/rabiawaqar06/studycrew/internal/models"
	"github.com/rabiawaqar06/studycrew/internal/text"
	"github.com/rabiawaqar06/studycrew/internal/vendors"
	"github.com/rabiawaqar06/studycrew/internal/vendors/gemini"
	"github.com/rabiawaqar06/studycrew/internal/vendors/ollama"
	"github.com/rabiawaqar06/studycrew/internal/vendors/openai"
)

// CreateChatQuerier by checking the model name for which vendor to use,
// then initiating a text querier for that vendor. Models with a tag
// suffix (such as 'gemma3:4b') are assumed to live in a local Ollama.
func CreateChatQuerier(conf text.Configurations) (models.ChatQuerier, error) {
	switch {
	case strings.HasPrefix(conf.Model, "gemini"):
		dflt := gemini.Default
		dflt.Model = conf.Model
		q, err := text.NewQuerier(conf, &dflt)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini querier: %w", err)
		}
		return q, nil
	case strings.HasPrefix(conf.Model, "gpt"), strings.HasPrefix(conf.Model, "o1"), strings.HasPrefix(conf.Model, "o3"):
		dflt := openai.Default
		dflt.Model = conf.Model
		q, err := text.NewQuerier(conf, &dflt)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai querier: %w", err)
		}
		return q, nil
	case conf.Model == "mock":
		q, err := text.NewQuerier(conf, &vendors.Mock{})
		if err != nil {
			return nil, fmt.Errorf("failed to create mock querier: %w", err)
		}
		return q, nil
	case strings.Contains(conf.Model, ":"):
		dflt := ollama.Default
		dflt.Model = conf.Model
		q, err := text.NewQuerier(conf, &dflt)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama querier: %w", err)
		}
		return q, nil
	default:
		return nil, fmt.Errorf("failed to find vendor for model: '%v'. Use gemini-*, gpt-*, a local '<model>:<tag>' or 'mock'", conf.Model)
	}
}
