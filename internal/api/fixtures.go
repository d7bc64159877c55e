package api

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/seed.yaml
var seedYAML []byte

// Fixtures returns the embedded sample dataset. It backs offline mode and the
// mock server's default data.
func Fixtures() (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(seedYAML, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse embedded fixtures: %w", err)
	}
	return &ds, nil
}

// LoadDataset reads a dataset from a YAML file, the same shape as the
// embedded fixtures. The mock server uses this for --data overrides.
func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return &ds, nil
}
