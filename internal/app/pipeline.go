package app

import (
	"log/slog"

	"github.com/dmitrymomot/digest/internal/config"
	"github.com/dmitrymomot/digest/pkg/archive"
	"github.com/dmitrymomot/digest/pkg/dispatch"
	dispatchresend "github.com/dmitrymomot/digest/pkg/dispatch/resend"
	"github.com/dmitrymomot/digest/pkg/pipeline"
	"github.com/dmitrymomot/digest/pkg/render"
)

// NewPipeline assembles a pipeline from cfg around connector. extra options
// are applied after the configured ones.
func NewPipeline(cfg *config.Config, connector pipeline.Connector, log *slog.Logger, extra ...pipeline.Option) (*pipeline.Pipeline, error) {
	opts := []pipeline.Option{
		pipeline.WithJobCount(cfg.JobCount),
		pipeline.WithExcludedSources(cfg.ExcludedSources...),
		pipeline.WithLocation(cfg.Location),
		pipeline.WithRunTimeout(cfg.RunTimeout),
		pipeline.WithLogger(log),
	}

	if cfg.Archive.Enabled() {
		a, err := archive.New(cfg.Archive)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithArchive(a))
	}

	renderer := render.New(cfg.Render, render.WithLocation(cfg.Location))
	return pipeline.New(cfg.Kind, connector, renderer, NewDispatcher(cfg, log), append(opts, extra...)...), nil
}

// NewDispatcher returns a dispatcher for the configured provider with the
// configured sender and audience.
func NewDispatcher(cfg *config.Config, log *slog.Logger) *dispatch.Dispatcher {
	return dispatch.New(NewProvider(cfg, log),
		dispatch.WithLogger(log),
		dispatch.WithDefaults(cfg.Sender(), cfg.AudienceID),
	)
}

// NewProvider returns the campaign provider named by DIGEST_PROVIDER.
func NewProvider(cfg *config.Config, log *slog.Logger) dispatch.Provider {
	if cfg.Provider == config.ProviderLog {
		return dispatch.NewLogProvider(log)
	}
	return dispatchresend.New(cfg.Resend, dispatchresend.WithLogger(log))
}
