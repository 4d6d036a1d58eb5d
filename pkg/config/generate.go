package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# anvil user configuration
#
# This file applies to every anvil run. Values are shown commented out at
# their defaults; uncomment a line to change it.
#
# ignore.addons   extra ignore patterns on top of the built-in set
# context         lowest-precedence template variable defaults
# noinput         disable interactive prompting

`

// GenerateConfigContent renders a starter user config with every value
// commented out at its default.
func GenerateConfigContent() (string, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", err
	}
	return generatedHeader + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes TOML content and comments out all non-comment,
// non-blank lines that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [ignore], [context]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
