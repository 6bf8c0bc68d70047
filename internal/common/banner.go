package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the effective startup settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.PrintSimple("Cafe Finder", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("environment", config.Environment).
		Str("places_base_url", config.Places.BaseURL).
		Str("description_provider", string(config.Description.Provider)).
		Str("description_model", config.Description.ModelName()).
		Msg("Cafe Finder starting")
}
