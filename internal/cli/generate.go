package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"adaptive-quiz-service/internal/config"
	"github.com/spf13/cobra"
)

// NewGenerateCmd generates one question pool and prints it, answers
// included, to check a provider and prompt without starting the server.
func NewGenerateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a question pool for a topic and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, _ := cmd.Flags().GetString("topic")
			topic = strings.TrimSpace(topic)
			if topic == "" {
				return fmt.Errorf("--topic is required")
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			generator, err := newPoolGenerator(cmd.Context(), cfg, log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			if err != nil {
				return err
			}

			pool, err := generator.Generate(cmd.Context(), topic)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(pool, "", "  ")
			if err != nil {
				return fmt.Errorf("encode pool: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().String("topic", "", "topic to generate questions for")
	return cmd
}
