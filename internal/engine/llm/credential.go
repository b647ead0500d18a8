package llm

import (
	"strings"

	"github.com/irahardianto/codereview/internal/engine/failure"
)

// CredentialPrefix is the literal prefix of every Gemini API key.
const CredentialPrefix = "AIzaSy"

// CredentialEnv is the environment variable the credential is read from.
const CredentialEnv = "GEMINI_API_KEY"

// ValidateCredential checks that key is present and shaped like a Gemini API key.
// It never contacts the provider.
func ValidateCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return failure.Newf(failure.MissingCredential, "%s not found in environment variables", CredentialEnv)
	}
	if !strings.HasPrefix(key, CredentialPrefix) {
		return failure.Newf(failure.InvalidCredentialFormat, "Invalid API key format. Gemini API keys should start with '%s'", CredentialPrefix)
	}
	return nil
}
