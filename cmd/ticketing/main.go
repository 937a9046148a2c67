package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/HIMU202508/TicketingSystem/internal/interfaces/cli/migrate"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/cli/server"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ticketing",
		Short:        "Ticketing - helpdesk repair ticket service",
		Long:         `Ticketing tracks device repair tickets from submission to completion or decline, with a decline log for reporting.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
