package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/linearmcp/linear-mcp-server/internal/linearmcp"
	"github.com/linearmcp/linear-mcp-server/pkg/linear"
	"github.com/linearmcp/linear-mcp-server/pkg/ssecmd"
	mcpserv "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// These variables are set by the build process using ldflags.
var version = "version"
var commit = "commit"
var date = "date"

var (
	rootCmd = &cobra.Command{
		Use:     "server",
		Short:   "Linear MCP Server",
		Long:    `A Linear MCP server that exposes issue tracking tools over the Model Context Protocol.`,
		Version: fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s", version, commit, date),
	}

	sseCmd = &cobra.Command{
		Use:   "sse",
		Short: "Start SSE server",
		Long:  `Start a Server-Sent Events (SSE) server that allows real-time streaming of events to clients over HTTP.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			auth, err := linearmcp.BuildAuthConfig()
			if err != nil && !viper.GetBool("multi-user") {
				return err
			}

			// If you're wondering why we're not using viper.GetStringSlice("toolsets"),
			// it's because viper doesn't handle comma-separated values correctly for env
			// vars when using GetStringSlice.
			// https://github.com/spf13/viper/issues/380
			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}

			server, err := ssecmd.CreateServerWithOptions(
				ssecmd.WithAPIKey(auth.APIKey),
				ssecmd.WithHost(viper.GetString("host")),
				ssecmd.WithAddress(viper.GetString("address")),
				ssecmd.WithBasePath(viper.GetString("base-path")),
				ssecmd.WithLogFilePath(viper.GetString("log-file")),
				ssecmd.WithDynamicToolsets(viper.GetBool("dynamic_toolsets")),
				ssecmd.WithMultiUser(viper.GetBool("multi-user")),
				ssecmd.WithReadOnly(viper.GetBool("read-only")),
				ssecmd.WithEnabledToolsets(enabledToolsets),
				ssecmd.WithVersion(version),
			)
			if err != nil {
				return err
			}

			sseServer := mcpserv.NewSSEServer(
				server.GetMcpServer(),
				mcpserv.WithStaticBasePath(viper.GetString("base-path")),
			)
			mux := http.NewServeMux()
			mux.Handle("/v1/mcp/linear/sse", sseServer.SSEHandler())
			mux.Handle("/v1/mcp/linear/message", sseServer.MessageHandler())
			return http.ListenAndServe(viper.GetString("address"), mux)
		},
	}

	stdioCmd = &cobra.Command{
		Use:   "stdio",
		Short: "Start stdio server",
		Long:  `Start a server that communicates via standard input/output streams using JSON-RPC messages.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			auth, err := linearmcp.BuildAuthConfig()
			if err != nil && !viper.GetBool("multi-user") {
				return err
			}

			var enabledToolsets []string
			if err := viper.UnmarshalKey("toolsets", &enabledToolsets); err != nil {
				return fmt.Errorf("failed to unmarshal toolsets: %w", err)
			}

			stdioServerConfig := linearmcp.StdioServerConfig{
				Version:              version,
				Host:                 viper.GetString("host"),
				Auth:                 auth,
				EnabledToolsets:      enabledToolsets,
				DynamicToolsets:      viper.GetBool("dynamic_toolsets"),
				MultiUser:            viper.GetBool("multi-user"),
				ReadOnly:             viper.GetBool("read-only"),
				ExportTranslations:   viper.GetBool("export-translations"),
				EnableCommandLogging: viper.GetBool("enable-command-logging"),
				LogFilePath:          viper.GetString("log-file"),
			}
			return linearmcp.RunStdioServer(stdioServerConfig)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	// Add global flags that will be shared by all commands
	rootCmd.PersistentFlags().StringSlice("toolsets", linear.DefaultTools, "An optional comma separated list of groups of tools to allow, defaults to enabling all")
	rootCmd.PersistentFlags().Bool("dynamic-toolsets", false, "Enable dynamic toolsets")
	rootCmd.PersistentFlags().Bool("multi-user", false, "Require an api_key parameter on every tool call instead of a server-wide key")
	rootCmd.PersistentFlags().Bool("read-only", false, "Restrict the server to read-only operations")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().Bool("enable-command-logging", false, "When enabled, the server will log all Linear API requests and responses to the log file")
	rootCmd.PersistentFlags().Bool("export-translations", false, "Save translations to a JSON file")
	rootCmd.PersistentFlags().String("linear-host", "", "Specify the Linear API base URL (for testing against a mock server)")

	// Bind flag to viper
	_ = viper.BindPFlag("toolsets", rootCmd.PersistentFlags().Lookup("toolsets"))
	_ = viper.BindPFlag("dynamic_toolsets", rootCmd.PersistentFlags().Lookup("dynamic-toolsets"))
	_ = viper.BindPFlag("multi-user", rootCmd.PersistentFlags().Lookup("multi-user"))
	_ = viper.BindPFlag("read-only", rootCmd.PersistentFlags().Lookup("read-only"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("enable-command-logging", rootCmd.PersistentFlags().Lookup("enable-command-logging"))
	_ = viper.BindPFlag("export-translations", rootCmd.PersistentFlags().Lookup("export-translations"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("linear-host"))

	// Setup flags for SSE command
	sseCmd.Flags().String("address", "localhost:8080", "Address to listen on for SSE server")
	sseCmd.Flags().String("base-path", "", "Base path for SSE server URLs")

	// Bind SSE flags to viper
	_ = viper.BindPFlag("address", sseCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("base-path", sseCmd.Flags().Lookup("base-path"))

	// Add subcommands
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(sseCmd)
}

func initConfig() {
	viper.SetEnvPrefix("linear")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
