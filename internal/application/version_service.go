package application

import (
	"context"
	"fmt"

	"github.com/standardrb/standardgo/internal/domain"
)

// VersionService reports the wrapper's version and, verbosely, the engine's.
type VersionService struct {
	engine  domain.Engine
	version string
}

func NewVersionService(engine domain.Engine, version string) *VersionService {
	return &VersionService{engine: engine, version: version}
}

func (s *VersionService) Version() string {
	return s.version
}

// Verbose returns the lines printed by --verbose-version.
func (s *VersionService) Verbose(ctx context.Context) (string, error) {
	engineVersion, err := s.engine.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("reading rubocop version: %w", err)
	}
	return fmt.Sprintf("Standard version: %s\nRuboCop version: %s\n", s.version, engineVersion), nil
}
