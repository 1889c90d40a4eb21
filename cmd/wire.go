package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/lavanderia/laundries-cli/internal/adapters/authapi"
	shelladapter "github.com/lavanderia/laundries-cli/internal/adapters/render/shell"
	tomlrepo "github.com/lavanderia/laundries-cli/internal/adapters/repo/toml"
	"github.com/lavanderia/laundries-cli/internal/adapters/staffapi"
	"github.com/lavanderia/laundries-cli/internal/application"
	"github.com/lavanderia/laundries-cli/internal/ports"
)

type app struct {
	sessions      *application.SessionService
	gate          *application.Gate
	identity      ports.IdentityClient
	shellRenderer func(shelladapter.View, shelladapter.RenderOptions) (string, error)
	now           func() time.Time
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	httpClient := http.DefaultClient

	identity := &authapi.Client{
		BaseURL:    envOrDefault("LAUNDRIES_API_URL", "http://100.68.70.25:5500"),
		HTTPClient: httpClient,
	}
	staff := &staffapi.Client{
		BaseURL:    envOrDefault("LAUNDRIES_EMPLOYEES_API_URL", "http://100.68.70.25:8882"),
		HTTPClient: httpClient,
	}

	sessions := application.NewSessionService(repo, identity, staff)

	return &app{
		sessions:      sessions,
		gate:          application.NewGate(sessions),
		identity:      identity,
		shellRenderer: shelladapter.Render,
		now:           time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
