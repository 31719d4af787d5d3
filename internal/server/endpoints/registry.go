package endpoints

import (
	"github.com/jackzampolin/lpnmatch/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Match endpoints
		&MatchEndpoint{},
		&ListResultsEndpoint{},
		&GetResultEndpoint{},
		&DeleteResultEndpoint{},
		&DownloadEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}
