package game

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveDir is where finished runs are written. Overridable from config.
var SaveDir = ".runs"

// SaveHistory writes a run's full snapshot history to
// <SaveDir>/<name>/history.yaml.
func SaveHistory(name string, history []Snapshot) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "history.yaml"), data, 0644)
}

// LoadHistory reads a previously saved run.
func LoadHistory(name string) ([]Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(SaveDir, name, "history.yaml"))
	if err != nil {
		return nil, err
	}

	var history []Snapshot
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ListRuns returns the names of saved runs under SaveDir.
func ListRuns() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var runs []string
	for _, entry := range entries {
		if entry.IsDir() {
			historyPath := filepath.Join(SaveDir, entry.Name(), "history.yaml")
			if _, err := os.Stat(historyPath); err == nil {
				runs = append(runs, entry.Name())
			}
		}
	}
	return runs, nil
}
