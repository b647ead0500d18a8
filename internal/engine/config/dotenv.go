package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/irahardianto/codereview/internal/platform/logger"
	"github.com/joho/godotenv"
)

// WithDotEnv layers the variables of a .env file under the loader's environment.
// Real environment variables always win. A missing file is not an error.
func (l *Loader) WithDotEnv(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			log.Debug("no .env file", "path", path)
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	log.Debug("loaded .env file", "path", path, "vars", len(vars))

	next := l.getenv
	l.getenv = func(key string) string {
		if v := next(key); v != "" {
			return v
		}
		return vars[key]
	}
	return nil
}
