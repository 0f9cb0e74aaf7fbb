package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check storage and AI service configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			allOK := true

			kv, err := newKV(ctx, logger)
			if err != nil {
				fmt.Printf("Storage: FAIL (%v)\n", err)
				allOK = false
			} else {
				defer func() { _ = kv.Close() }()
				if err := kv.Ping(ctx); err != nil {
					fmt.Printf("Storage: FAIL (%v)\n", err)
					allOK = false
				} else if cfg.Storage.Ephemeral {
					fmt.Println("Storage: OK (in-memory)")
				} else {
					fmt.Printf("Storage: OK (%s)\n", cfg.Storage.Path)
				}
			}

			creds := newCredentials()
			backend := newBackend(creds, logger)
			if creds == nil {
				fmt.Printf("AI service (%s): OK (no API key required)\n", backend.Name())
			} else if _, err := creds.APIKey(); err != nil {
				fmt.Printf("AI service (%s): FAIL (%v)\n", backend.Name(), err)
				allOK = false
			} else {
				fmt.Printf("AI service (%s): OK\n", backend.Name())
			}

			if !allOK {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}
}
