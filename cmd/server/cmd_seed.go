package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/themirzaalibaig/server-ecommerce/config"
	"github.com/themirzaalibaig/server-ecommerce/database/seeders"
	"github.com/themirzaalibaig/server-ecommerce/pkg/database"
)

// server seed — run every registered seeder.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := database.Connect(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		if err := database.EnsureIndexes(ctx); err != nil {
			return err
		}

		fmt.Println("Seeding database…")
		return seeders.RunAll(ctx, database.DB)
	},
}
