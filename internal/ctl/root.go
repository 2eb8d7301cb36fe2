package ctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"swapman/pkg/types"
)

// Config carries the CLI-wide options resolved from flags and environment.
type Config struct {
	Server string
}

func defaultServer() string {
	if v := os.Getenv("SWAPMAN_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(&Config{Server: defaultServer()}) }

// buildRootCmdWith constructs the Cobra command tree wired to a Client.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "swapctl",
		Short:         "Manage a running swapman server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("server", cfg.Server, "swapman base URL (defaults SWAPMAN_SERVER or http://localhost:8000)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("server"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.Server = v
			}
		}
	}
	client := func() *Client { return NewClient(cfg.Server) }

	// models group
	modelsCmd := &cobra.Command{Use: "models", Short: "Inspect and edit model configurations", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("models requires a subcommand: list|add|remove")
	}}
	modelsList := &cobra.Command{Use: "list", Short: "List active, configured and local models", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().Models()
		if err != nil {
			return err
		}
		fmt.Println("Active:")
		for _, m := range out.ActiveModels {
			fmt.Printf("  %s\n", m.ID)
		}
		fmt.Println("Configured:")
		for _, name := range out.ConfiguredModels {
			fmt.Printf("  %s\n", name)
		}
		fmt.Printf("Local files (%s):\n", out.ModelsPath)
		for _, f := range out.LocalFiles {
			fmt.Printf("  %s\n", f)
		}
		return nil
	}}

	modelsAdd := &cobra.Command{Use: "add <name> <file-path>", Short: "Add or update a model configuration", Args: cobra.ExactArgs(2), RunE: func(cmd *cobra.Command, args []string) error {
		spec := types.DefaultModelSpec()
		spec.Name = args[0]
		spec.FilePath = args[1]
		spec.GPULayers, _ = cmd.Flags().GetInt("ngl")
		spec.ContextSize, _ = cmd.Flags().GetInt("ctx")
		if aliases, _ := cmd.Flags().GetString("aliases"); aliases != "" {
			spec.Aliases = strings.Split(aliases, ",")
		}
		out, err := client().AddModel(spec)
		if err != nil {
			return err
		}
		fmt.Println(out.Message)
		fmt.Printf("  cmd: %s\n", out.Config.Cmd)
		return nil
	}}
	modelsAdd.Flags().Int("ngl", types.DefaultModelSpec().GPULayers, "GPU layers")
	modelsAdd.Flags().Int("ctx", types.DefaultModelSpec().ContextSize, "Context size")
	modelsAdd.Flags().String("aliases", "", "Comma-separated aliases")

	modelsRemove := &cobra.Command{Use: "remove <name>", Short: "Remove a model configuration", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().RemoveModel(args[0])
		if err != nil {
			return err
		}
		fmt.Println(out.Message)
		return nil
	}}

	modelsDownload := &cobra.Command{Use: "download <url>", Short: "Start a background model download on the server", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		filename, _ := cmd.Flags().GetString("filename")
		out, err := client().StartDownload(args[0], filename)
		if err != nil {
			return err
		}
		fmt.Println(out.Message)
		return nil
	}}
	modelsDownload.Flags().String("filename", "", "Target filename (derived from URL when omitted)")

	modelsCmd.AddCommand(modelsList, modelsAdd, modelsRemove, modelsDownload)
	root.AddCommand(modelsCmd)

	statusCmd := &cobra.Command{Use: "status", Short: "Show swap service status", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().Status()
		if err != nil {
			return err
		}
		fmt.Printf("connection:     %s\n", out.ConnectionStatus)
		fmt.Printf("active models:  %d\n", out.ActiveModels)
		fmt.Printf("total requests: %d\n", out.TotalRequests)
		if out.AvgResponseTime != nil {
			fmt.Printf("avg response:   %dms\n", *out.AvgResponseTime)
		}
		return nil
	}}
	root.AddCommand(statusCmd)

	testCmd := &cobra.Command{Use: "test", Short: "Run a test completion against the active model", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().Test()
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (%dms)\n", out.Model, out.Response, out.ResponseTime)
		return nil
	}}
	root.AddCommand(testCmd)

	// logs group
	logsCmd := &cobra.Command{Use: "logs", Short: "Activity log operations", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("logs requires a subcommand: show|clear|export")
	}}
	logsShow := &cobra.Command{Use: "show", Short: "Print activity log entries", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().Logs()
		if err != nil {
			return err
		}
		for _, e := range out.Logs {
			fmt.Println(e)
		}
		return nil
	}}
	logsClear := &cobra.Command{Use: "clear", Short: "Clear the activity log", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().ClearLogs()
		if err != nil {
			return err
		}
		fmt.Println(out.Message)
		return nil
	}}
	logsExport := &cobra.Command{Use: "export", Short: "Dump the activity log to stdout", RunE: func(cmd *cobra.Command, args []string) error {
		content, err := client().DownloadLogs()
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	}}
	logsCmd.AddCommand(logsShow, logsClear, logsExport)
	root.AddCommand(logsCmd)

	healthCmd := &cobra.Command{Use: "health", Short: "Probe server liveness", RunE: func(cmd *cobra.Command, args []string) error {
		out, err := client().Health()
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", out.Status, out.Timestamp)
		return nil
	}}
	root.AddCommand(healthCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

// Execute runs the CLI and returns a process exit code.
func Execute(args []string) int {
	cfg := &Config{Server: defaultServer()}
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "swapctl: %v\n", err)
		return 1
	}
	return 0
}
