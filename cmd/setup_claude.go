package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
)

// setupClaudeCmd represents the setup-claude subcommand
var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Configure Claude Desktop to use the ytsubs MCP server",
	Long: `Register ytsubs as an MCP server in Claude Desktop.

This command will:
- Locate claude_desktop_config.json for the current platform
- Add or replace the "youtube" server entry pointing at this binary
- Carry over the --args value so every download gets the same yt-dlp arguments
- Preserve existing MCP server configurations
- Set XDG environment variables so the server finds its config and log paths`,
	Example: `  ytsubs setup-claude
  ytsubs setup-claude --args "--cookies-from-browser firefox"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := getClaudeDesktopConfigPath()
		if err != nil {
			return fmt.Errorf("getting Claude Desktop config path: %w", err)
		}
		ytdlpArgs, _ := cmd.Flags().GetString("args")
		if err := setupClaudeDesktop(configPath, ytdlpArgs); err != nil {
			return err
		}

		fmt.Printf("Successfully configured Claude Desktop MCP server\n")
		fmt.Printf("Restart Claude Desktop to use the ytsubs MCP server\n")
		return nil
	},
}

// MCPServerConfig represents an individual MCP server configuration
type MCPServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// claudeServerName is the key ytsubs is registered under in mcpServers
const claudeServerName = "youtube"

// setupClaudeDesktop adds this binary to the Claude Desktop config at configPath
func setupClaudeDesktop(configPath, ytdlpArgs string) error {
	// Get the path to the current binary
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("getting executable path: %w", err)
	}

	// Resolve symlinks to get the actual binary path
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	// Check if config file exists - abort if it doesn't
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config for Claude Desktop not found at %s", configPath)
	}

	// Read existing config, keeping keys we don't know about
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading existing config: %w", err)
	}

	desktopConfig := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &desktopConfig); err != nil {
		return fmt.Errorf("parsing existing config: %w", err)
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := desktopConfig["mcpServers"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parsing mcpServers: %w", err)
		}
	}

	// Claude Desktop starts servers with a minimal environment
	xdgPaths := map[string]string{
		"XDG_CONFIG_HOME": xdg.ConfigHome,
		"XDG_CACHE_HOME":  xdg.CacheHome,
	}

	serverArgs := []string{}
	if ytdlpArgs != "" {
		serverArgs = append(serverArgs, "--args", ytdlpArgs)
	}

	entry, err := json.Marshal(MCPServerConfig{
		Command: execPath,
		Args:    serverArgs,
		Env:     xdgPaths,
	})
	if err != nil {
		return fmt.Errorf("marshaling server entry: %w", err)
	}
	servers[claudeServerName] = entry

	desktopConfig["mcpServers"], err = json.Marshal(servers)
	if err != nil {
		return fmt.Errorf("marshaling mcpServers: %w", err)
	}

	// Write updated config back to file
	data, err = json.MarshalIndent(desktopConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// getClaudeDesktopConfigPath returns the platform-specific config path for Claude Desktop
func getClaudeDesktopConfigPath() (string, error) {
	var configPath string

	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Application Support/Claude/claude_desktop_config.json
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configPath = filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json")

	case "windows":
		// Windows: %APPDATA%/Claude/claude_desktop_config.json
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		configPath = filepath.Join(appData, "Claude", "claude_desktop_config.json")

	case "linux":
		// Linux: ~/.config/Claude/claude_desktop_config.json
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configPath = filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json")

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return configPath, nil
}

func init() {
	rootCmd.AddCommand(setupClaudeCmd)
}
