package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its post. UserName/UserAvatar are snapshots taken
// at creation time and are not kept in sync with later profile edits.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	UserName   string             `bson:"user_name" json:"userName"`
	UserAvatar string             `bson:"user_avatar" json:"userAvatar"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Content      string               `bson:"content" json:"content"`
	Image        string               `bson:"image,omitempty" json:"image,omitempty"`
	Author       primitive.ObjectID   `bson:"author" json:"author"`
	AuthorName   string               `bson:"author_name" json:"authorName"`
	AuthorAvatar string               `bson:"author_avatar" json:"authorAvatar"`
	Category     string               `bson:"category" json:"category"`
	Tags         []string             `bson:"tags" json:"tags"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments     []Comment            `bson:"comments" json:"comments"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleLike flips the user's membership in the like set and reports
// whether the post is liked afterwards.
func (p *Post) ToggleLike(userID primitive.ObjectID) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// ParseTags splits a comma-delimited tag string, trimming whitespace and
// dropping empties. Duplicates are kept as given.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasMore     bool  `json:"hasMore"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalPosts:  total,
		HasMore:     page < totalPages,
	}
}

// PostView is the feed display shape: counts instead of embedded arrays.
type PostView struct {
	ID           primitive.ObjectID `json:"id"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Image        string             `json:"image"`
	AuthorName   string             `json:"authorName"`
	AuthorAvatar string             `json:"authorAvatar"`
	Category     string             `json:"category"`
	Tags         []string           `json:"tags"`
	Likes        int                `json:"likes"`
	Comments     int                `json:"comments"`
	CreatedAt    time.Time          `json:"createdAt"`
	TimeAgo      string             `json:"timeAgo"`
}

func NewPostView(p *Post, now time.Time) PostView {
	return PostView{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Image:        p.Image,
		AuthorName:   p.AuthorName,
		AuthorAvatar: p.AuthorAvatar,
		Category:     p.Category,
		Tags:         p.Tags,
		Likes:        len(p.Likes),
		Comments:     len(p.Comments),
		CreatedAt:    p.CreatedAt,
		TimeAgo:      TimeAgo(p.CreatedAt, now),
	}
}

type CommentView struct {
	ID         primitive.ObjectID `json:"id"`
	Content    string             `json:"content"`
	UserName   string             `json:"userName"`
	UserAvatar string             `json:"userAvatar"`
	CreatedAt  time.Time          `json:"createdAt"`
	TimeAgo    string             `json:"timeAgo"`
}

func NewCommentView(cm *Comment, now time.Time) CommentView {
	return CommentView{
		ID:         cm.ID,
		Content:    cm.Content,
		UserName:   cm.UserName,
		UserAvatar: cm.UserAvatar,
		CreatedAt:  cm.CreatedAt,
		TimeAgo:    TimeAgo(cm.CreatedAt, now),
	}
}

// TimeAgo renders a coarse relative timestamp for feed display.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%dd ago", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%dmo ago", seconds/2592000)
	default:
		return fmt.Sprintf("%dy ago", seconds/31536000)
	}
}
