package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// SeedService implements the Seeder interface.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type SeedService struct {
	openerFactory cosmosload.OpenerFactory
	loader        cosmosload.DatasetLoader
	dryRunLoader  cosmosload.DatasetLoader
	logger        cosmosload.Logger
	newRunID      func() uuid.UUID
}

// NewSeedService creates a SeedService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// at startup. Configuration, credential, file and network problems are
// returned from Run.
func NewSeedService(
	openerFactory cosmosload.OpenerFactory,
	loader cosmosload.DatasetLoader,
	dryRunLoader cosmosload.DatasetLoader,
	logger cosmosload.Logger,
) *SeedService {
	if openerFactory == nil {
		panic("openerFactory cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if dryRunLoader == nil {
		panic("dryRunLoader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SeedService{
		openerFactory: openerFactory,
		loader:        loader,
		dryRunLoader:  dryRunLoader,
		logger:        logger,
		newRunID:      uuid.New,
	}
}

// Run loads every configured dataset in order.
//
// Configuration is validated before any file or network access; an invalid
// configuration is returned as is. Every later fatal error is reported once
// as "An error occurred: ..." and ends the run. Per-item failures never end
// the run; they are returned as ErrItemsFailed only when cfg.FailOnItemError
// is set.
func (s *SeedService) Run(ctx context.Context, cfg cosmosload.LoadConfig) (cosmosload.Report, error) {
	report := cosmosload.Report{RunID: s.newRunID(), DryRun: cfg.DryRun}

	if err := cfg.Validate(); err != nil {
		return report, err
	}
	s.logger.Verbose("Run %s: %d dataset(s) into %s", report.RunID, len(cfg.Datasets), cfg.Database)

	if err := s.load(ctx, &cfg, &report); err != nil {
		s.logger.Error("An error occurred: %v", err)
		return report, err
	}

	s.logger.Info("Data loading complete.")
	s.summarize(report)

	if failed := report.Failed(); failed > 0 && cfg.FailOnItemError {
		return report, fmt.Errorf("%d item(s) failed to load: %w", failed, cosmosload.ErrItemsFailed)
	}
	return report, nil
}

func (s *SeedService) load(ctx context.Context, cfg *cosmosload.LoadConfig, report *cosmosload.Report) error {
	opener, loader, err := s.prepare(cfg)
	if err != nil {
		return err
	}

	// Handles are created before the first dataset is read. Creating one
	// sends no request; service errors surface per record.
	targets := make([]cosmosload.Upserter, len(cfg.Datasets))
	for i, ds := range cfg.Datasets {
		target, err := opener.OpenContainer(ctx, ds)
		if err != nil {
			return err
		}
		targets[i] = target
	}

	for i, ds := range cfg.Datasets {
		s.logger.Info("Loading %s data...", ds.Name)

		result, err := loader.Load(ctx, targets[i], datasetPath(cfg.DataDir, ds.File))
		result.Name = ds.Name
		result.Container = ds.Container
		if len(result.Items) > 0 || err == nil {
			report.Datasets = append(report.Datasets, result)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SeedService) prepare(cfg *cosmosload.LoadConfig) (cosmosload.ContainerOpener, cosmosload.DatasetLoader, error) {
	if cfg.DryRun {
		s.logger.Verbose("Dry run: no request is sent to %s", displayEndpoint(cfg.Endpoint))
		return dryRunOpener{}, s.dryRunLoader, nil
	}

	opener, err := s.openerFactory(cfg)
	if err != nil {
		if !errors.Is(err, cosmosload.ErrInvalidConfig) && !errors.Is(err, cosmosload.ErrConnectionFailed) {
			err = fmt.Errorf("%w: %w", cosmosload.ErrConnectionFailed, err)
		}
		return nil, nil, err
	}
	return opener, s.loader, nil
}

func (s *SeedService) summarize(report cosmosload.Report) {
	for _, d := range report.Datasets {
		if report.DryRun {
			s.logger.Verbose("%s: %d record(s) parsed", d.Name, len(d.Items))
			continue
		}
		s.logger.Verbose("%s: %d upserted, %d failed, %.2f RU", d.Name, d.Succeeded(), d.Failed(), d.RequestCharge())
	}
}

func datasetPath(dir, file string) string {
	if filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

func displayEndpoint(endpoint string) string {
	if endpoint == "" {
		return "(no endpoint)"
	}
	return endpoint
}
