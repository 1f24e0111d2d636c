// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, storage, validation, remote clients)
// that both front-ends require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/porcus-tools/internal/config"
	"github.com/JaimeStill/porcus-tools/internal/relay"
	"github.com/JaimeStill/porcus-tools/internal/tools"
	"github.com/JaimeStill/porcus-tools/pkg/lifecycle"
	"github.com/JaimeStill/porcus-tools/pkg/logging"
	"github.com/JaimeStill/porcus-tools/pkg/storage"
	"github.com/JaimeStill/porcus-tools/pkg/validation"
)

// Infrastructure holds the core systems required by the front-end modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Validator *validation.Validator
	Tools     tools.System
}

// New creates an Infrastructure from the application configuration.
// Logs are written to w. Systems are initialized but not started; call Start separately.
func New(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging, w)

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	v := validation.New()

	// Timeouts are applied per call through the request context.
	httpClient := &http.Client{}

	toolsSys := tools.New(
		tools.Clients{
			Remote:  relay.New(&cfg.Remote, httpClient, logger),
			Prodigi: relay.New(&cfg.Prodigi, httpClient, logger),
			Catalog: relay.New(&cfg.Catalog, httpClient, logger),
		},
		store,
		v,
		logger,
	)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Storage:   store,
		Validator: v,
		Tools:     toolsSys,
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	if err := i.Tools.CheckAPIKey(); err != nil {
		i.Logger.Warn("remote operations disabled", "error", err)
	}
	return nil
}
