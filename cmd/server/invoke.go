package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RecipeDeck/internal/infrastructure/server"
	"github.com/GriffinCanCode/RecipeDeck/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type dispatcher interface {
	Dispatch(ctx context.Context, ev *types.Event) *types.Response
}

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Run a single turn from an event file and print the response",
	Long: `Reads one event (JSON, YAML or TOML) from --event, optionally replaces its
session attributes with the contents of --session, runs it through the
dispatcher against the configured Drive folder and prints the response.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		eventPath, _ := cmd.Flags().GetString("event")
		event, err := readDocument(eventPath)
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var attrs []byte
		if sessionPath, _ := cmd.Flags().GetString("session"); sessionPath != "" {
			if attrs, err = readDocument(sessionPath); err != nil {
				return fmt.Errorf("failed to read session: %w", err)
			}
		}

		logger := invokeLogger(cfg.Logging.Level, cfg.Logging.Development)
		defer func() { _ = logger.Sync() }()

		d, _ := server.NewDispatcher(cfg, logger, nil)
		return invoke(cmd.Context(), d, event, attrs, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringP("event", "e", "", "Event file (.json, .yaml, .yml or .toml)")
	invokeCmd.Flags().StringP("session", "s", "", "Session attributes file, replacing the event's own")
	_ = invokeCmd.MarkFlagRequired("event")
}

// invokeLogger writes to stderr so stdout carries only the response document
func invokeLogger(level string, development bool) *logging.Logger {
	logger, err := logging.New(logging.Config{
		Level:       level,
		Development: development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

// readDocument loads a file as JSON, converting YAML and TOML by extension
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.YAMLToJSON(data)
	case ".toml":
		var parsed map[string]interface{}
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
		return sonic.Marshal(parsed)
	}
	return data, nil
}

// invoke decodes one event, runs it and writes the indented response to out
func invoke(ctx context.Context, d dispatcher, event, attrs []byte, out io.Writer) error {
	var ev types.Event
	if err := sonic.Unmarshal(event, &ev); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	if len(attrs) > 0 {
		var a map[string]interface{}
		if err := sonic.Unmarshal(attrs, &a); err != nil {
			return fmt.Errorf("invalid session attributes: %w", err)
		}
		if ev.Session == nil {
			ev.Session = &types.EventSession{}
		}
		ev.Session.Attributes = a
	}

	if ctx == nil {
		ctx = context.Background()
	}
	resp := d.Dispatch(ctx, &ev)

	data, err := sonic.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
