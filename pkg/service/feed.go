package service

import (
	"fmt"
	"strings"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/formatter"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
	syncpkg "github.com/Pradeep-10x/synapse-cli/pkg/sync"
)

// FeedService provides feed browsing and the per-post optimistic
// actions (like/unlike). Every toggle goes through the coordinator so
// rapid repeats on the same post cannot double-count.
type FeedService struct {
	coordinator *syncpkg.Coordinator
	posts       map[string]*api.Post
}

// NewFeedService creates a new feed service
func NewFeedService() *FeedService {
	return &FeedService{
		coordinator: syncpkg.NewCoordinator(),
		posts:       make(map[string]*api.Post),
	}
}

// ShowFeed displays a page of the given feed
func (fs *FeedService) ShowFeed(feedType string, page, pageSize int) error {
	if err := RequireSession(); err != nil {
		return err
	}

	logger.Debug("Showing feed", "type", feedType, "page", page)

	feed, err := api.GetFeed(feedType, page, pageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	if len(feed.Posts) == 0 {
		fmt.Println("Nothing here yet.")
		return nil
	}

	fs.remember(feed.Posts)
	fs.displayPosts(feed.Posts)

	if feed.HasMore {
		fmt.Printf("\nMore available: --page %d\n", page+1)
	}
	return nil
}

// ShowPost displays a single post with its comments
func (fs *FeedService) ShowPost(postID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	post, err := api.GetPost(postID)
	if err != nil {
		return fmt.Errorf("failed to fetch post: %w", err)
	}

	fs.remember([]api.Post{*post})
	fs.displayPosts([]api.Post{*post})

	comments, err := api.GetComments(postID, 1, 20)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}

	if len(comments.Comments) > 0 {
		fmt.Printf("\nComments (%d):\n", comments.CommentCount)
		for _, c := range comments.Comments {
			username := "unknown"
			if c.User != nil {
				username = c.User.Username
			}
			fmt.Printf("  @%s: %s\n", username, c.Content)
		}
	}
	return nil
}

// CreatePost publishes a new post
func (fs *FeedService) CreatePost(content, communityID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post content cannot be empty")
	}

	post, err := api.CreatePost(content, communityID)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	formatter.PrintSuccess("✓ Posted!")
	fmt.Printf("Post ID: %s\n", post.ID)
	return nil
}

// ToggleLike flips the like state of a post optimistically: the
// displayed state changes before the network call, rolls back if the
// call fails, and reconciles to the server's answer if it differs from
// the local guess.
func (fs *FeedService) ToggleLike(postID string) error {
	if err := RequireSession(); err != nil {
		return err
	}

	post, ok := fs.posts[postID]
	if !ok {
		fetched, err := api.GetPost(postID)
		if err != nil {
			return fmt.Errorf("failed to fetch post: %w", err)
		}
		fs.posts[postID] = fetched
		post = fetched
	}

	prevLiked, prevCount := post.IsLiked, post.LikeCount
	wantLike := !prevLiked

	err := fs.coordinator.Do(syncpkg.Mutation{
		EntityID: postID,
		Action:   "update like",
		Apply: func() {
			post.IsLiked = wantLike
			if wantLike {
				post.LikeCount++
			} else {
				post.LikeCount--
			}
		},
		Rollback: func() {
			post.IsLiked = prevLiked
			post.LikeCount = prevCount
		},
		Call: func() (func(), error) {
			var result *api.ReactionResult
			var err error
			if wantLike {
				result, err = api.LikePost(postID)
			} else {
				result, err = api.UnlikePost(postID)
			}
			if err != nil {
				return nil, err
			}
			return func() {
				post.IsLiked = result.Liked
				post.LikeCount = result.LikeCount
			}, nil
		},
	})
	if err != nil {
		formatter.PrintError("%v", err)
		return err
	}

	if post.IsLiked {
		formatter.PrintSuccess("♥ Liked (%d)", post.LikeCount)
	} else {
		formatter.PrintSuccess("♡ Unliked (%d)", post.LikeCount)
	}
	return nil
}

// PostState returns the locally-tracked state of a post, if any.
// Used by tests and by command output after a toggle.
func (fs *FeedService) PostState(postID string) (liked bool, likeCount int, ok bool) {
	post, found := fs.posts[postID]
	if !found {
		return false, 0, false
	}
	return post.IsLiked, post.LikeCount, true
}

func (fs *FeedService) remember(posts []api.Post) {
	for i := range posts {
		p := posts[i]
		fs.posts[p.ID] = &p
	}
}

func (fs *FeedService) displayPosts(posts []api.Post) {
	for _, post := range posts {
		username := "unknown"
		if post.User != nil {
			username = post.User.Username
		}

		likeMark := "♡"
		if post.IsLiked {
			likeMark = "♥"
		}

		fmt.Printf("\n%s @%s · %s\n", formatter.Bold.Sprint(post.ID), username, post.CreatedAt.Format("Jan 2 15:04"))
		fmt.Printf("%s\n", post.Content)
		if post.ImageURL != "" {
			fmt.Printf("[image] %s\n", post.ImageURL)
		}
		if post.VideoURL != "" {
			fmt.Printf("[video] %s\n", post.VideoURL)
		}
		fmt.Printf("%s %d   💬 %d\n", likeMark, post.LikeCount, post.CommentCount)
		fmt.Println(strings.Repeat("─", 50))
	}
}
