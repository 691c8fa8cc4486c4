package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// Version information for the rowvec tools
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-17"
	CommitSHA = "unknown" // Will be set during build
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version      string `json:"version"`
	BuildDate    string `json:"build_date"`
	CommitSHA    string `json:"commit_sha"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
	Arch         string `json:"arch"`
	TraceVersion string `json:"trace_version"`
}

// GetVersionInfo returns structured version information. traceVersion is the
// trace format the tool writes.
func GetVersionInfo(traceVersion string) *VersionInfo {
	return &VersionInfo{
		Version:      Version,
		BuildDate:    BuildDate,
		CommitSHA:    CommitSHA,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS,
		Arch:         runtime.GOARCH,
		TraceVersion: traceVersion,
	}
}

// PrintVersion writes version information in a consistent format
func PrintVersion(w io.Writer, toolName, traceVersion string, jsonOutput bool) {
	info := GetVersionInfo(traceVersion)

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err == nil {
			fmt.Fprintln(w, string(data))
			return
		}
		// Fallback to plain text if JSON marshaling fails
		fmt.Fprintf(os.Stderr, "Error: Failed to marshal version info to JSON: %v\n", err)
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Trace Format: %s\n", info.TraceVersion)
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
}

// ExitWithError prints an error message and exits with code 2
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(2)
}

// Logger provides leveled logging for CLI tools
type Logger struct {
	Verbose   bool
	DebugMode bool
	Out       io.Writer // nil means stdout
}

// NewLogger creates a new logger instance
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
	}
}

func (l *Logger) printf(level, format string, args ...interface{}) {
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", level, time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		l.printf("INFO", format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.printf("DEBUG", format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf("WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf("ERROR", format, args...)
}

// Config holds the replay tool settings that may come from a JSON file.
// Zero fields keep the built-in defaults.
type Config struct {
	Verbose     bool   `json:"verbose"`
	Debug       bool   `json:"debug"`
	Trials      int    `json:"trials"`
	Size        int    `json:"size"`
	Width       int    `json:"width"`
	Concurrency int    `json:"concurrency"`
	OutDir      string `json:"out_dir"`
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Default config if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
