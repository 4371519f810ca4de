// Package config manages the ~/.groqqy configuration directory: the
// YAML settings file, the boot.md system instruction, and the
// knowledge directory. Environment variables override file settings;
// a .env file is loaded best-effort for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDirName = ".groqqy"
	configFileName       = "config.yaml"
	bootFileName         = "boot.md"
	knowledgeDirName     = "knowledge"
)

// Config holds the settings the CLI wires into the agent and provider.
type Config struct {
	Model         string `yaml:"model"`
	BaseURL       string `yaml:"base_url"`
	APIKey        string `yaml:"api_key"`
	MaxIterations int    `yaml:"max_iterations"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Model:         "llama-3.1-8b-instant",
		MaxIterations: 10,
	}
	cfg.Logging.Level = "info"
	return cfg
}

// Dir locates a configuration directory and its well-known files.
type Dir struct {
	Root string
}

// DefaultDir returns ~/.groqqy.
func DefaultDir() (Dir, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dir{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return Dir{Root: filepath.Join(home, defaultConfigDirName)}, nil
}

// ConfigFile returns the path of the YAML settings file.
func (d Dir) ConfigFile() string {
	return filepath.Join(d.Root, configFileName)
}

// BootFile returns the path of the base system instruction file.
func (d Dir) BootFile() string {
	return filepath.Join(d.Root, bootFileName)
}

// KnowledgeDir returns the path of the knowledge directory.
func (d Dir) KnowledgeDir() string {
	return filepath.Join(d.Root, knowledgeDirName)
}

// Ensure creates the directory structure and a default boot.md on
// first run.
func (d Dir) Ensure() error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(d.KnowledgeDir(), 0o755); err != nil {
		return fmt.Errorf("create knowledge dir: %w", err)
	}
	if _, err := os.Stat(d.BootFile()); os.IsNotExist(err) {
		if err := os.WriteFile(d.BootFile(), []byte(defaultBoot), 0o644); err != nil {
			return fmt.Errorf("create default boot file: %w", err)
		}
	}
	return nil
}

// Load reads the directory's config.yaml, falling back to [Default]
// when the file does not exist, then applies environment overrides.
// A .env file in the working directory is loaded first, if present.
func (d Dir) Load() (*Config, error) {
	// Best-effort; absence of .env is the normal case outside dev.
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(d.ConfigFile())
	switch {
	case os.IsNotExist(err):
		// keep defaults
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes the configuration back to config.yaml.
func (d Dir) Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(d.ConfigFile(), data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg. GROQ_API_KEY is
// the canonical key variable; GROQQY_* cover the rest.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GROQQY_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GROQQY_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GROQQY_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv("GROQQY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// SystemInstruction combines the base boot.md instruction with any
// additional context files and an optional extra prompt. When nothing
// loads, a built-in fallback instruction is returned.
func (d Dir) SystemInstruction(contextFiles []string, extraPrompt string) string {
	var parts []string

	if boot := readIfExists(d.BootFile()); boot != "" {
		parts = append(parts, boot)
	}
	for _, path := range contextFiles {
		if content := readIfExists(path); content != "" {
			parts = append(parts,
				fmt.Sprintf("\n# Additional Context: %s\n\n%s", path, content))
		}
	}
	if extraPrompt != "" {
		parts = append(parts, fmt.Sprintf("\n# Additional Instructions\n\n%s", extraPrompt))
	}

	if len(parts) == 0 {
		return fallbackInstruction
	}
	return strings.Join(parts, "\n\n")
}

func readIfExists(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

const fallbackInstruction = `You are Groqqy, a helpful assistant.
You have access to tools for reading files, running commands, and searching.
Keep responses concise and friendly. Use tools when needed to help the user.`

const defaultBoot = `# Groqqy Boot Instructions

You are Groqqy, a helpful AI assistant powered by fast LLM inference.

## Your Capabilities

You have access to tools for:
- **read_file**: Read contents of files
- **run_command**: Execute shell commands (use carefully!)
- **search_files**: Find files matching patterns
- **search_content**: Search for text in files

## Guidelines

- Keep responses concise and friendly
- Use tools when they help answer the question
- Explain what you're doing when using tools
- If a command might be destructive, ask first
- Provide context with your answers

## Custom Instructions

Add your own instructions below this line:

---

`
