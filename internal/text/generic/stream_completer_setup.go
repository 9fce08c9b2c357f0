package generic

import (
	"fmt"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

func (s *StreamCompleter) Setup(apiKeyEnv, url, debugEnv string) error {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	s.client = &http.Client{}
	s.limiter = RateLimiter{}
	s.apiKey = apiKey
	s.url = url

	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv(debugEnv)) {
		s.debug = true
	}

	return nil
}

func (s *StreamCompleter) SetRateLimiter(rl RateLimiter) {
	s.limiter = rl
}
