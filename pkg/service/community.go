package service

import (
	"fmt"
	"strings"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	syncpkg "github.com/Pradeep-10x/synapse-cli/pkg/sync"
)

// CommunityService handles community browsing and membership. Join
// and leave apply optimistically like the other toggles.
type CommunityService struct {
	coordinator *syncpkg.Coordinator
	communities map[string]*api.Community
}

// NewCommunityService creates a new community service
func NewCommunityService() *CommunityService {
	return &CommunityService{
		coordinator: syncpkg.NewCoordinator(),
		communities: make(map[string]*api.Community),
	}
}

// ListCommunities displays a page of communities
func (cs *CommunityService) ListCommunities(page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.ListCommunities(page, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch communities: %w", err)
	}

	if len(result.Communities) == 0 {
		fmt.Println("No communities found.")
		return nil
	}

	for _, c := range result.Communities {
		member := ""
		if c.IsMember {
			member = "  ✓ member"
		}
		fmt.Printf("%s %s (%d members)%s\n", c.ID, formatter.Bold.Sprint(c.Name), c.MemberCount, member)
		if c.Description != "" {
			fmt.Printf("  %s\n", truncateString(c.Description, 80))
		}
	}
	return nil
}

// ShowCommunity displays one community and its recent posts
func (cs *CommunityService) ShowCommunity(communityID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	community, err := api.GetCommunity(communityID)
	if err != nil {
		return fmt.Errorf("failed to fetch community: %w", err)
	}
	cs.communities[community.ID] = community

	fmt.Printf("\n%s (%d members)\n", formatter.Bold.Sprint(community.Name), community.MemberCount)
	if community.Description != "" {
		fmt.Println(community.Description)
	}
	fmt.Println(strings.Repeat("─", 50))

	feed, err := api.GetCommunityFeed(communityID, 1, 10)
	if err != nil {
		return fmt.Errorf("failed to fetch community feed: %w", err)
	}
	for _, p := range feed.Posts {
		username := "unknown"
		if p.User != nil {
			username = p.User.Username
		}
		fmt.Printf("@%s: %s\n", username, truncateString(p.Content, 80))
	}
	return nil
}

// ToggleMembership joins the community if not a member, leaves it
// otherwise
func (cs *CommunityService) ToggleMembership(communityID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	community, ok := cs.communities[communityID]
	if !ok {
		fetched, err := api.GetCommunity(communityID)
		if err != nil {
			return fmt.Errorf("failed to fetch community: %w", err)
		}
		cs.communities[communityID] = fetched
		community = fetched
	}

	prevMember, prevCount := community.IsMember, community.MemberCount
	wantJoin := !prevMember

	err := cs.coordinator.Do(syncpkg.Mutation{
		EntityID: communityID,
		Action:   "update membership",
		Apply: func() {
			community.IsMember = wantJoin
			if wantJoin {
				community.MemberCount++
			} else {
				community.MemberCount--
			}
		},
		Rollback: func() {
			community.IsMember = prevMember
			community.MemberCount = prevCount
		},
		Call: func() (func(), error) {
			var result *api.JoinResult
			var err error
			if wantJoin {
				result, err = api.JoinCommunity(communityID)
			} else {
				result, err = api.LeaveCommunity(communityID)
			}
			if err != nil {
				return nil, err
			}
			return func() {
				community.IsMember = result.IsMember
				community.MemberCount = result.MemberCount
			}, nil
		},
	})
	if err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	if community.IsMember {
		formatter.PrintSuccess("✓ Joined %s (%d members)", community.Name, community.MemberCount)
	} else {
		formatter.PrintSuccess("✓ Left %s (%d members)", community.Name, community.MemberCount)
	}
	return nil
}
