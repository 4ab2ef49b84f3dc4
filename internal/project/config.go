package project

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ToolConfig holds per-project kestrel settings, read from an optional
// kestrel.yml next to the project descriptor. All fields have defaults,
// so a project without a kestrel.yml works out of the box.
type ToolConfig struct {
	ModulesDir   string // directory containing module directories
	GeneratedDir string // default name of the generated-code folder
}

// LoadToolConfig reads kestrel.yml from projectDir, applying defaults
// and KESTREL_* environment overrides.
func LoadToolConfig(projectDir string) (*ToolConfig, error) {
	v := viper.New()
	v.SetConfigName("kestrel")
	v.SetConfigType("yaml")
	v.AddConfigPath(projectDir)

	v.SetDefault("modulesDir", "modules")
	v.SetDefault("generatedDir", "Generated")

	v.AutomaticEnv()
	v.SetEnvPrefix("KESTREL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read kestrel.yml: %w", err)
		}
	}

	return &ToolConfig{
		ModulesDir:   v.GetString("modulesDir"),
		GeneratedDir: v.GetString("generatedDir"),
	}, nil
}
