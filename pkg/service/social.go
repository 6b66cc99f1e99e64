package service

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	syncpkg "github.com/Pradeep-10x/synapse-cli/pkg/sync"
)

// SocialService handles follow relationships. Follow toggles apply
// optimistically against the locally cached profile and are serialized
// per user id through the coordinator.
type SocialService struct {
	coordinator *syncpkg.Coordinator
	users       map[string]*api.User
}

// NewSocialService creates a new social service
func NewSocialService() *SocialService {
	return &SocialService{
		coordinator: syncpkg.NewCoordinator(),
		users:       make(map[string]*api.User),
	}
}

// ToggleFollow follows the user if not followed, unfollows otherwise
func (ss *SocialService) ToggleFollow(username string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	user, ok := ss.users[username]
	if !ok {
		fetched, err := api.GetUserProfile(username)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		ss.users[username] = fetched
		user = fetched
	}

	prevFollowing, prevCount := user.IsFollowing, user.FollowerCount
	wantFollow := !prevFollowing

	err := ss.coordinator.Do(syncpkg.Mutation{
		EntityID: user.ID,
		Action:   "update follow",
		Apply: func() {
			user.IsFollowing = wantFollow
			if wantFollow {
				user.FollowerCount++
			} else {
				user.FollowerCount--
			}
		},
		Rollback: func() {
			user.IsFollowing = prevFollowing
			user.FollowerCount = prevCount
		},
		Call: func() (func(), error) {
			var result *api.FollowResult
			var err error
			if wantFollow {
				result, err = api.FollowUser(user.ID)
			} else {
				result, err = api.UnfollowUser(user.ID)
			}
			if err != nil {
				return nil, err
			}
			return func() {
				user.IsFollowing = result.Following
				user.FollowerCount = result.FollowerCount
			}, nil
		},
	})
	if err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	if user.IsFollowing {
		formatter.PrintSuccess("✓ Following @%s (%d followers)", user.Username, user.FollowerCount)
	} else {
		formatter.PrintSuccess("✓ Unfollowed @%s (%d followers)", user.Username, user.FollowerCount)
	}
	return nil
}

// ShowFollowers displays the followers of a user
func (ss *SocialService) ShowFollowers(userID string, page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.GetFollowers(userID, page, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch followers: %w", err)
	}

	printUserList(result, "No followers yet.")
	return nil
}

// ShowFollowing displays who a user follows
func (ss *SocialService) ShowFollowing(userID string, page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.GetFollowing(userID, page, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch following: %w", err)
	}

	printUserList(result, "Not following anyone yet.")
	return nil
}

// FollowState reports the locally-tracked follow state for a username
func (ss *SocialService) FollowState(username string) (following bool, followerCount int, ok bool) {
	user, found := ss.users[username]
	if !found {
		return false, 0, false
	}
	return user.IsFollowing, user.FollowerCount, true
}

func printUserList(result *api.UserListResponse, empty string) {
	if len(result.Users) == 0 {
		fmt.Println(empty)
		return
	}
	for _, u := range result.Users {
		line := "@" + u.Username
		if u.DisplayName != "" {
			line += "  " + u.DisplayName
		}
		if u.IsOnline {
			line += "  🟢"
		}
		fmt.Println(line)
	}
}
