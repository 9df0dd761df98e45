package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/stint/internal/log"
)

// DefaultConfigYAML renders the default configuration as a commented
// YAML document. Comments are attached through yaml.Node so the output
// stays in sync with Defaults().
func DefaultConfigYAML() (string, error) {
	defaults := Defaults()

	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			{
				Kind:        yaml.MappingNode,
				HeadComment: "stint configuration",
				Content: []*yaml.Node{
					keyNode("db", "Database settings"),
					mapNode(
						keyNode("path", "Path to the sqlite database file"),
						valueNode(defaults.DB.Path),
						keyNode("auto_refresh", "Reload when the database changes on disk"),
						valueNode(fmt.Sprintf("%t", defaults.DB.AutoRefresh)),
					),
					keyNode("undo", "Undo engine settings"),
					mapNode(
						keyNode("capacity", "Commands kept in history; 0 uses the built-in default"),
						valueNode(fmt.Sprintf("%d", defaults.Undo.Capacity)),
					),
					keyNode("log", "Logging settings"),
					mapNode(
						keyNode("level", "Minimum level: debug, info, warn, error"),
						valueNode(defaults.Log.Level),
						keyNode("file", "Log file path; empty disables file logging"),
						valueNode(defaults.Log.File),
					),
					keyNode("tracing", "Tracing settings (exported spans for undo and report operations)"),
					mapNode(
						keyNode("enabled", "Enable span export"),
						valueNode(fmt.Sprintf("%t", defaults.Tracing.Enabled)),
						keyNode("exporter", "Export backend: none, file, stdout, otlp"),
						valueNode(defaults.Tracing.Exporter),
						keyNode("file_path", "Output file for the file exporter"),
						valueNode(defaults.Tracing.FilePath),
						keyNode("otlp_endpoint", "Collector endpoint for the otlp exporter"),
						valueNode(defaults.Tracing.OTLPEndpoint),
						keyNode("sample_rate", "Trace sampling rate between 0.0 and 1.0"),
						valueNode(fmt.Sprintf("%v", defaults.Tracing.SampleRate)),
					),
					keyNode("ui", "Interface settings"),
					mapNode(
						keyNode("theme", "Color scheme: dark or light"),
						valueNode(defaults.UI.Theme),
					),
				},
			},
		},
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return buf.String(), nil
}

func keyNode(name, comment string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: name, HeadComment: comment}
}

func valueNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func mapNode(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: pairs}
}

// WriteDefaultConfig creates a config file at the given path with
// default settings and comments. Creates the parent directory if it
// doesn't exist; the write goes through a temp file and rename.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	content, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".stint.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write([]byte(content)); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tempPath, 0o600); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting config permissions: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
