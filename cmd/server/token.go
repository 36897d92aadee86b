package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/wedding-venue-booking/internal/config"
	"github.com/iliyamo/wedding-venue-booking/internal/model"
	"github.com/iliyamo/wedding-venue-booking/internal/utils"
)

func newTokenCmd() *cobra.Command {
	var (
		userID uint64
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadJWT()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.AccessTTL
			}
			tok, err := utils.NewAccessToken(cfg.Secret, userID, model.Role(role), ttl)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tok)
		},
	}
	cmd.Flags().Uint64Var(&userID, "user", 0, "user id placed in the sub claim")
	cmd.Flags().StringVar(&role, "role", string(model.RoleCustomer), "customer, hall_owner, service_owner or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_ACCESS_TTL)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
