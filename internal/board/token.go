package board

import (
	"errors"
	"os/exec"
	"strings"
)

// ResolveToken returns the configured API token, falling back to the gh
// CLI's stored credentials when the environment carries none.
func ResolveToken(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	out, err := exec.Command("gh", "auth", "token").Output()
	if err == nil {
		if token := strings.TrimSpace(string(out)); token != "" {
			return token, nil
		}
	}

	return "", errors.New("no GitHub token: set GITHUB_TOKEN or log in with gh auth login")
}
