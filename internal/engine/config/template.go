package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/irahardianto/codereview/internal/engine/llm"
	"github.com/irahardianto/codereview/internal/platform/logger"
)

// Template is the commented config file written by `codereview init`.
const Template = `# codereview configuration.
# Environment variables override every value in this file:
#   GEMINI_API_KEY, CODEREVIEW_MODEL, CODEREVIEW_TIMEOUT, CODEREVIEW_ADDR, CODEREVIEW_NO_COLOR

# Get a key at https://aistudio.google.com/app/apikey
gemini_api_key: ""

model: ` + llm.DefaultModel + `

# Applies to every request sent to the model provider.
request_timeout: 2m

server:
  addr: "` + defaultAddr + `"

output:
  color: true
  verbose: false
`

// WriteTemplate writes Template to path unless a file already exists there.
// Returns true if the file was created.
func (l *Loader) WriteTemplate(ctx context.Context, path string) (bool, error) {
	path = filepath.Clean(path)

	if _, err := l.fs.Stat(path); err == nil {
		logger.FromContext(ctx).Debug("config already exists", "path", path)
		return false, nil
	} else if !l.fs.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := l.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	// The file may hold the API key.
	if err := l.fs.WriteFile(path, []byte(Template), 0o600); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}
