package api

import "time"

// Auth Response Types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	AvatarURL      string    `json:"avatar_url"`
	CoverURL       string    `json:"cover_url"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	PostCount      int       `json:"post_count"`
	IsPrivate      bool      `json:"is_private"`
	IsFollowing    bool      `json:"is_following"`
	IsOnline       bool      `json:"is_online"`
	CreatedAt      time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User User `json:"user"`
}

// Post is a feed entry. LikeCount and CommentCount are the
// server-authoritative values at response time.
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	User         *User     `json:"user,omitempty"`
	CommunityID  string    `json:"community_id,omitempty"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
	IsSaved      bool      `json:"is_saved"`
	CreatedAt    time.Time `json:"created_at"`
}

type FeedResponse struct {
	Posts      []Post `json:"posts"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	HasMore    bool   `json:"has_more"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	User      *User     `json:"user,omitempty"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentListResponse struct {
	Comments     []Comment `json:"comments"`
	CommentCount int       `json:"comment_count"`
	Page         int       `json:"page"`
	PageSize     int       `json:"page_size"`
}

// Notification kinds mirror the server's vocabulary.
const (
	NotificationKindLike    = "like"
	NotificationKindComment = "comment"
	NotificationKindFollow  = "follow"
	NotificationKindMention = "mention"
	NotificationKindPost    = "post"
	NotificationKindReel    = "reel"
	NotificationKindStory   = "story"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	SourceID  string    `json:"source_id"`
	Source    *User     `json:"source,omitempty"`
	TargetID  string    `json:"target_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
}

type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconURL     string    `json:"icon_url,omitempty"`
	MemberCount int       `json:"member_count"`
	IsMember    bool      `json:"is_member"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommunityListResponse struct {
	Communities []Community `json:"communities"`
	TotalCount  int         `json:"total_count"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
}

type Reel struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	User         *User     `json:"user,omitempty"`
	VideoURL     string    `json:"video_url"`
	Caption      string    `json:"caption"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	ViewCount    int       `json:"view_count"`
	IsLiked      bool      `json:"is_liked"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReelListResponse struct {
	Reels    []Reel `json:"reels"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	HasMore  bool   `json:"has_more"`
}

type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// ErrorResponse is the standard error envelope from the API
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
