package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage authentication with Synapse",
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Synapse account",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Register()
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to Synapse",
	Long:  "Authenticate with Synapse using email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Login()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from Synapse",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Logout()
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Display current authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.GetMe()
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.RefreshToken()
	},
}

func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(meCmd)
	authCmd.AddCommand(refreshCmd)
}
