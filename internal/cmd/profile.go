package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/service"
)

var (
	profileDisplayName string
	profileBio         string
	profileLocation    string
	profileAvatarURL   string
)

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "View a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.ShowProfile(args[0])
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		update := api.ProfileUpdate{
			DisplayName: profileDisplayName,
			Bio:         profileBio,
			Location:    profileLocation,
			AvatarURL:   profileAvatarURL,
		}

		profileSvc := service.NewProfileService()
		return profileSvc.UpdateProfile(update)
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileDisplayName, "name", "", "Display name")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "Profile bio")
	profileUpdateCmd.Flags().StringVar(&profileLocation, "location", "", "Location")
	profileUpdateCmd.Flags().StringVar(&profileAvatarURL, "avatar", "", "Avatar image URL")

	profileCmd.AddCommand(profileUpdateCmd)
}
