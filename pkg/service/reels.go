package service

import (
	"fmt"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	syncpkg "github.com/Pradeep-10x/synapse-cli/pkg/sync"
)

// ReelService handles short-video browsing and likes
type ReelService struct {
	coordinator *syncpkg.Coordinator
	reels       map[string]*api.Reel
}

// NewReelService creates a new reel service
func NewReelService() *ReelService {
	return &ReelService{
		coordinator: syncpkg.NewCoordinator(),
		reels:       make(map[string]*api.Reel),
	}
}

// ShowReels displays a page of reels
func (rs *ReelService) ShowReels(page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.GetReels(page, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch reels: %w", err)
	}

	if len(result.Reels) == 0 {
		fmt.Println("No reels yet.")
		return nil
	}

	for i := range result.Reels {
		r := result.Reels[i]
		rs.reels[r.ID] = &r
		rs.displayReel(&r)
	}
	return nil
}

// ShowUserReels displays reels by a specific user
func (rs *ReelService) ShowUserReels(userID string, page int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	result, err := api.GetUserReels(userID, page, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch reels: %w", err)
	}

	if len(result.Reels) == 0 {
		fmt.Println("No reels yet.")
		return nil
	}

	for i := range result.Reels {
		r := result.Reels[i]
		rs.reels[r.ID] = &r
		rs.displayReel(&r)
	}
	return nil
}

// ToggleLike flips the like state of a reel optimistically
func (rs *ReelService) ToggleLike(reelID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	reel, ok := rs.reels[reelID]
	if !ok {
		return fmt.Errorf("reel %s not loaded (run reels first)", reelID)
	}

	prevLiked, prevCount := reel.IsLiked, reel.LikeCount
	wantLike := !prevLiked

	err := rs.coordinator.Do(syncpkg.Mutation{
		EntityID: reelID,
		Action:   "update like",
		Apply: func() {
			reel.IsLiked = wantLike
			if wantLike {
				reel.LikeCount++
			} else {
				reel.LikeCount--
			}
		},
		Rollback: func() {
			reel.IsLiked = prevLiked
			reel.LikeCount = prevCount
		},
		Call: func() (func(), error) {
			var result *api.ReactionResult
			var err error
			if wantLike {
				result, err = api.LikeReel(reelID)
			} else {
				result, err = api.UnlikeReel(reelID)
			}
			if err != nil {
				return nil, err
			}
			return func() {
				reel.IsLiked = result.Liked
				reel.LikeCount = result.LikeCount
			}, nil
		},
	})
	if err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	if reel.IsLiked {
		formatter.PrintSuccess("♥ Liked (%d)", reel.LikeCount)
	} else {
		formatter.PrintSuccess("♡ Unliked (%d)", reel.LikeCount)
	}
	return nil
}

func (rs *ReelService) displayReel(r *api.Reel) {
	username := "unknown"
	if r.User != nil {
		username = r.User.Username
	}
	likeMark := "♡"
	if r.IsLiked {
		likeMark = "♥"
	}
	fmt.Printf("🎬 %s @%s\n", r.ID, username)
	if r.Caption != "" {
		fmt.Printf("   %s\n", truncateString(r.Caption, 80))
	}
	fmt.Printf("   %s %d  💬 %d  👁 %d\n", likeMark, r.LikeCount, r.CommentCount, r.ViewCount)
}
