package config

import (
	"strings"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/types"
)

// GenerateConfigContent returns the defaults file with every setting
// commented out, ready to be saved as a user config.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// InitConfig writes the generated template to path. An existing file is
// only replaced when force is set.
func InitConfig(fsys types.FS, path string, force bool) error {
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", path)
	}
	if exists && !force {
		return errors.Newf(errors.ErrAlreadyExists, "config file %s already exists", path).
			WithDetail("path", path)
	}
	if err := filesystem.WriteFileAtomic(fsys, path, []byte(GenerateConfigContent())); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
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

		// Keep table headers such as [logging]. Array tables would create an
		// empty element, so they are commented like values.
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
