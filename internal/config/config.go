// Package config provides configuration file support for promptfan.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/promptfan/promptfan/internal/agent"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = ".promptfan.yaml"

// Config represents the promptfan configuration file.
// Pointer fields distinguish "not set" from zero values so resolution
// can fall through to env vars and defaults.
type Config struct {
	Model            *string `yaml:"model"`
	OutputDir        *string `yaml:"output_dir"`
	Concurrency      *int    `yaml:"concurrency"`
	Instructions     *string `yaml:"instructions"`
	InstructionsFile *string `yaml:"instructions_file"`
}

// LoadResult contains the loaded config and any warnings encountered.
type LoadResult struct {
	Config    *Config
	ConfigDir string
	Warnings  []string
}

// Load reads .promptfan.yaml from the current working directory.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*LoadResult, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return &LoadResult{Config: &Config{}}, nil
	}
	return LoadFromPath(filepath.Join(cwd, ConfigFileName))
}

// LoadFromPath reads a config file and returns warnings for unknown keys.
// Returns an empty config (not an error) if the file doesn't exist.
// Returns an error if the file exists but is invalid YAML or fails
// validation.
func LoadFromPath(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &LoadResult{Config: &Config{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	warnings := checkUnknownKeys(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFileName, err)
	}

	return &LoadResult{
		Config:    &cfg,
		ConfigDir: filepath.Dir(path),
		Warnings:  warnings,
	}, nil
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	if c.Model != nil && *c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Concurrency != nil && *c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", *c.Concurrency)
	}
	return nil
}

// knownKeys are the valid top-level keys in the config file.
var knownKeys = []string{"model", "output_dir", "concurrency", "instructions", "instructions_file"}

// checkUnknownKeys checks for unknown keys in the YAML data and returns warnings.
func checkUnknownKeys(data []byte) []string {
	var warnings []string

	// Parse into a generic map to inspect keys
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// If we can't parse, let the main parser handle the error
		return nil
	}

	for key := range raw {
		if !slices.Contains(knownKeys, key) {
			warning := fmt.Sprintf("unknown key %q in %s", key, ConfigFileName)
			if suggestion := findSimilar(key, knownKeys); suggestion != "" {
				warning += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			warnings = append(warnings, warning)
		}
	}

	return warnings
}

// findSimilar finds the most similar string from candidates using Levenshtein distance.
// Returns empty string if no candidate is similar enough (threshold: 3 edits).
func findSimilar(input string, candidates []string) string {
	const maxDistance = 3
	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		dist := levenshtein(input, candidate)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshtein calculates the Levenshtein distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(ra)][len(rb)]
}

// Defaults holds the built-in default values.
var Defaults = ResolvedConfig{
	Model:       agent.DefaultModel,
	OutputDir:   "./output",
	Concurrency: 0, // means "one goroutine per file"
}

// ResolvedConfig holds the final resolved configuration values.
type ResolvedConfig struct {
	Model            string
	OutputDir        string
	Concurrency      int
	Instructions     string
	InstructionsFile string
}

// FlagState tracks whether a flag was explicitly set.
type FlagState struct {
	ModelSet            bool
	OutputDirSet        bool
	ConcurrencySet      bool
	InstructionsSet     bool
	InstructionsFileSet bool
}

// EnvState captures env var values and whether they were set.
type EnvState struct {
	Model               string
	ModelSet            bool
	OutputDir           string
	OutputDirSet        bool
	Concurrency         int
	ConcurrencySet      bool
	Instructions        string
	InstructionsSet     bool
	InstructionsFile    string
	InstructionsFileSet bool
}

// LoadEnvState reads environment variables and returns their state.
func LoadEnvState() EnvState {
	var state EnvState

	if v := os.Getenv("PROMPTFAN_MODEL"); v != "" {
		state.Model = v
		state.ModelSet = true
	}
	if v := os.Getenv("PROMPTFAN_OUTPUT_DIR"); v != "" {
		state.OutputDir = v
		state.OutputDirSet = true
	}
	if v := os.Getenv("PROMPTFAN_CONCURRENCY"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			state.Concurrency = i
			state.ConcurrencySet = true
		}
	}
	if v := os.Getenv("PROMPTFAN_INSTRUCTIONS"); v != "" {
		state.Instructions = v
		state.InstructionsSet = true
	}
	if v := os.Getenv("PROMPTFAN_INSTRUCTIONS_FILE"); v != "" {
		state.InstructionsFile = v
		state.InstructionsFileSet = true
	}

	return state
}

// Resolve merges config file values with env vars and flags.
// Precedence: flags > env vars > config file > defaults
func Resolve(cfg *Config, envState EnvState, flagState FlagState, flagValues ResolvedConfig) ResolvedConfig {
	result := Defaults

	// Apply config file values (if set)
	if cfg != nil {
		if cfg.Model != nil {
			result.Model = *cfg.Model
		}
		if cfg.OutputDir != nil {
			result.OutputDir = *cfg.OutputDir
		}
		if cfg.Concurrency != nil {
			result.Concurrency = *cfg.Concurrency
		}
		if cfg.Instructions != nil {
			result.Instructions = *cfg.Instructions
		}
		if cfg.InstructionsFile != nil {
			result.InstructionsFile = *cfg.InstructionsFile
		}
	}

	// Apply env var values (if set)
	if envState.ModelSet {
		result.Model = envState.Model
	}
	if envState.OutputDirSet {
		result.OutputDir = envState.OutputDir
	}
	if envState.ConcurrencySet {
		result.Concurrency = envState.Concurrency
	}
	if envState.InstructionsSet {
		result.Instructions = envState.Instructions
	}
	if envState.InstructionsFileSet {
		result.InstructionsFile = envState.InstructionsFile
	}

	// Apply flag values (if explicitly set)
	if flagState.ModelSet {
		result.Model = flagValues.Model
	}
	if flagState.OutputDirSet {
		result.OutputDir = flagValues.OutputDir
	}
	if flagState.ConcurrencySet {
		result.Concurrency = flagValues.Concurrency
	}
	if flagState.InstructionsSet {
		result.Instructions = flagValues.Instructions
	}
	if flagState.InstructionsFileSet {
		result.InstructionsFile = flagValues.InstructionsFile
	}

	return result
}

// ResolveInstructions resolves the final instruction text with custom
// precedence logic. Instruction-file sources rank just below the
// instruction string from the same source.
//
// Precedence (highest to lowest):
//  1. --instructions flag
//  2. --instructions-file flag
//  3. PROMPTFAN_INSTRUCTIONS env var
//  4. PROMPTFAN_INSTRUCTIONS_FILE env var
//  5. instructions config field
//  6. instructions_file config field (relative paths resolve against the
//     config file's directory)
//  7. empty string (the agent factory substitutes its default)
//
// Returns an error if an instructions file cannot be read.
func ResolveInstructions(cfg *Config, envState EnvState, flagState FlagState, flagValues ResolvedConfig, configDir string) (string, error) {
	readFile := func(path string) (string, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read instructions file %q: %w", path, err)
		}
		return string(content), nil
	}

	if flagState.InstructionsSet && flagValues.Instructions != "" {
		return flagValues.Instructions, nil
	}
	if flagState.InstructionsFileSet && flagValues.InstructionsFile != "" {
		return readFile(flagValues.InstructionsFile)
	}
	if envState.InstructionsSet {
		return envState.Instructions, nil
	}
	if envState.InstructionsFileSet {
		return readFile(envState.InstructionsFile)
	}
	if cfg != nil && cfg.Instructions != nil && *cfg.Instructions != "" {
		return *cfg.Instructions, nil
	}
	if cfg != nil && cfg.InstructionsFile != nil && *cfg.InstructionsFile != "" {
		path := *cfg.InstructionsFile
		if !filepath.IsAbs(path) && configDir != "" {
			path = filepath.Join(configDir, path)
		}
		return readFile(path)
	}

	return "", nil
}
