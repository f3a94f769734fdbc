package main

import (
	"fmt"
	"strings"

	"github.com/deppfellow/registry/internal/service"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the assistant one question against a running server",
	Long: `chat runs the assistant once, using the tools published at
assistant.tools_url, and prints the reply. The server must be running.`,
	Example: `  registry chat "Which athletes are older than 30?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx := log.WithContext(cmd.Context())
		reply, err := service.NewAssistantService(cfg.Assistant, nil).Chat(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
		return err
	},
}
