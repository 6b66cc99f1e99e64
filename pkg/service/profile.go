package service

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
)

// ProfileService handles profile viewing and editing plus search
type ProfileService struct{}

// NewProfileService creates a new profile service
func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// ShowProfile displays a user's profile by username
func (ps *ProfileService) ShowProfile(username string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	user, err := api.GetUserProfile(username)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	displayUser(user)
	return nil
}

// UpdateProfile applies the given profile changes
func (ps *ProfileService) UpdateProfile(update api.ProfileUpdate) error {
	if err := RequireSession(); err != nil {
		return err
	}

	user, err := api.UpdateProfile(update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	formatter.PrintSuccess("✓ Profile updated")
	displayUser(user)
	return nil
}

// SearchUsers displays users matching the query
func (ps *ProfileService) SearchUsers(query string, page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.SearchUsers(query, page, 20)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(result.Users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	for _, u := range result.Users {
		line := "@" + u.Username
		if u.DisplayName != "" {
			line += "  " + u.DisplayName
		}
		fmt.Println(line)
	}
	return nil
}

// SearchPosts displays posts matching the query
func (ps *ProfileService) SearchPosts(query string, page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.SearchPosts(query, page, 20)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(result.Posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	for _, p := range result.Posts {
		username := "unknown"
		if p.User != nil {
			username = p.User.Username
		}
		fmt.Printf("%s @%s: %s\n", p.ID, username, truncateString(p.Content, 80))
	}
	return nil
}

func displayUser(user *api.User) {
	fmt.Printf("\n%s", formatter.Bold.Sprint("@"+user.Username))
	if user.DisplayName != "" {
		fmt.Printf(" (%s)", user.DisplayName)
	}
	fmt.Println()
	if user.Bio != "" {
		fmt.Println(user.Bio)
	}
	fmt.Printf("followers: %d  following: %d  posts: %d\n",
		user.FollowerCount, user.FollowingCount, user.PostCount)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
