package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"esplan/internal/platform/config"
	"esplan/internal/platform/logger"
	"esplan/internal/stub"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run the seeded development API server",
	Long: `Serve the full API contract from seeded in-memory state. Useful for
development and demos; nothing survives a restart.

Configuration: ESPLAN_STUB_ADDR, ESPLAN_JWT_SIGNING_KEY, ESPLAN_TOKEN_TTL.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.StubFromEnv()
		srv, err := stub.New(cfg, logger.New())
		if err != nil {
			return err
		}

		fmt.Printf("stub api on %s\n", cfg.Addr)
		fmt.Printf("  admin:   %s / %s\n", stub.SeedAdminEmail, stub.SeedAdminPassword)
		fmt.Printf("  officer: %s / %s\n", stub.SeedOfficerEmail, stub.SeedOfficerPassword)

		return srv.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)
}
