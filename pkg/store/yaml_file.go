package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xlttj/whitelist/pkg/logging"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML document used by import and export
type File struct {
	Whitelist []FileEntry `yaml:"whitelist"`
}

// FileEntry is one exported hostname
type FileEntry struct {
	Hostname string `yaml:"hostname"`
	Enabled  *bool  `yaml:"enabled,omitempty"` // Missing means enabled
}

// ReadFile parses a whitelist YAML file. IDs and timestamps are not part of the format.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read whitelist file %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses whitelist YAML, rejecting entries without a hostname
func Decode(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal whitelist file: %w", err)
	}

	entries := make([]Entry, 0, len(f.Whitelist))
	for i, fe := range f.Whitelist {
		hostname := strings.TrimSpace(fe.Hostname)
		if hostname == "" {
			return nil, fmt.Errorf("whitelist entry at index %d has empty hostname", i)
		}
		enabled := true
		if fe.Enabled != nil {
			enabled = *fe.Enabled
		}
		entries = append(entries, Entry{Hostname: hostname, Enabled: enabled})
	}
	return entries, nil
}

// Encode writes entries as whitelist YAML
func Encode(w io.Writer, entries []Entry) error {
	f := File{Whitelist: make([]FileEntry, 0, len(entries))}
	for _, e := range entries {
		enabled := e.Enabled
		f.Whitelist = append(f.Whitelist, FileEntry{Hostname: e.Hostname, Enabled: &enabled})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("failed to marshal whitelist: %w", err)
	}
	return enc.Close()
}

// WriteFile exports entries to path, or to stdout when path is empty or "-"
func WriteFile(path string, entries []Entry) error {
	if path == "" || path == "-" {
		return Encode(os.Stdout, entries)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create whitelist file %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, entries); err != nil {
		return err
	}

	logging.LogDebug("Exported %d whitelist entries to %s", len(entries), path)
	return nil
}
