package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"gravity/pkg/logging"
)

// LoadDirectory reads every service descriptor from a catalog directory. Each
// *.yaml / *.yml file holds exactly one descriptor. Files are read in name
// order so errors are deterministic; the descriptor set is validated as a
// whole before it is returned.
func LoadDirectory(dir string) ([]ServiceDescriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	descriptors := make([]ServiceDescriptor, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		descriptor, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, descriptor)
	}

	if err := Validate(descriptors); err != nil {
		return nil, err
	}

	logging.Debug("Catalog", "Loaded %d service descriptor(s) from %s", len(descriptors), dir)
	return descriptors, nil
}

// LoadFile reads a single service descriptor from a YAML file.
func LoadFile(path string) (ServiceDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServiceDescriptor{}, fmt.Errorf("failed to read descriptor %s: %w", path, err)
	}

	var descriptor ServiceDescriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return ServiceDescriptor{}, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	return descriptor, nil
}
