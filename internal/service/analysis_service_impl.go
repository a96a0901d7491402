package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
	"github.com/tfournier/girder/internal/engine"
	"github.com/tfournier/girder/internal/importer"
)

// AnalysisServiceImpl wires the importer and the derivation engine.
type AnalysisServiceImpl struct {
	engine   *engine.Engine
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewAnalysisService(logger *slog.Logger, observer UseCaseObserver) *AnalysisServiceImpl {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &AnalysisServiceImpl{
		engine:   engine.New(logger),
		logger:   logger,
		observer: observer,
	}
}

// Dataset loads and converts the input file. Validation findings are logged
// but never fatal; malformed records degrade per field instead.
func (s *AnalysisServiceImpl) Dataset(ctx context.Context, inputPath string) (*domain.Dataset, error) {
	var ds *domain.Dataset
	err := observe(ctx, s.observer, "dataset_load", map[string]any{"path": inputPath}, func() error {
		raw, err := importer.LoadFile(inputPath)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		ds = importer.Convert(raw)

		if issues := importer.Validate(ds); len(issues) > 0 && s.logger != nil {
			s.logger.Warn("dataset validation findings", "count", len(issues))
			for _, issue := range issues {
				s.logger.Debug("validation finding", "detail", issue.Error())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (s *AnalysisServiceImpl) Derive(ctx context.Context, inputPath string) (*contract.DeriveResult, error) {
	ds, err := s.Dataset(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	var result *contract.DeriveResult
	err = observe(ctx, s.observer, "derive", map[string]any{"tasks": len(ds.Tasks)}, func() error {
		result = s.engine.Derive(ds)
		result.QualityMetrics.ValidationIssues = len(importer.Validate(ds))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BuildSnapshot exposes the engine's scoped snapshot builder to the
// snapshot service without re-reading the input.
func (s *AnalysisServiceImpl) BuildSnapshot(ds *domain.Dataset, scope domain.SnapshotScope, scopeID string, view domain.SnapshotView) *contract.SnapshotPayload {
	return s.engine.BuildSnapshot(ds, scope, scopeID, view)
}
