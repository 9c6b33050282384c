package models

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleLikeTwiceReturnsToOriginal(t *testing.T) {
	user := primitive.NewObjectID()
	other := primitive.NewObjectID()
	p := Post{Likes: []primitive.ObjectID{other}}

	if liked := p.ToggleLike(user); !liked {
		t.Fatal("first toggle should like")
	}
	if len(p.Likes) != 2 {
		t.Fatalf("likes after first toggle = %d, want 2", len(p.Likes))
	}

	if liked := p.ToggleLike(user); liked {
		t.Fatal("second toggle should unlike")
	}
	if len(p.Likes) != 1 || p.Likes[0] != other {
		t.Errorf("likes after second toggle = %v, want just the other user", p.Likes)
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" go, web , ,go ")
	want := []string{"go", "web", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTags = %v, want %v", got, want)
	}

	if got := ParseTags(""); len(got) != 0 {
		t.Errorf("ParseTags(empty) = %v, want empty", got)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		wantPages   int
		wantMore    bool
	}{
		{1, 10, 15, 2, true},
		{2, 10, 15, 2, false},
		{1, 10, 0, 0, false},
		{1, 10, 10, 1, false},
		{3, 5, 11, 3, false},
	}
	for _, tc := range cases {
		p := NewPagination(tc.page, tc.limit, tc.total)
		if p.TotalPages != tc.wantPages || p.HasMore != tc.wantMore {
			t.Errorf("NewPagination(%d,%d,%d) = pages %d hasMore %v, want %d %v",
				tc.page, tc.limit, tc.total, p.TotalPages, p.HasMore, tc.wantPages, tc.wantMore)
		}
		if p.TotalPosts != tc.total || p.CurrentPage != tc.page {
			t.Errorf("NewPagination(%d,%d,%d) echoed %d/%d", tc.page, tc.limit, tc.total, p.CurrentPage, p.TotalPosts)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{48 * time.Hour, "2d ago"},
		{65 * 24 * time.Hour, "2mo ago"},
		{3 * 365 * 24 * time.Hour, "3y ago"},
	}
	for _, tc := range cases {
		if got := TimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestNewPostViewCounts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := Post{
		ID:        primitive.NewObjectID(),
		Title:     "hello",
		Likes:     []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
		Comments:  []Comment{{Content: "hi"}},
		CreatedAt: now.Add(-10 * time.Minute),
	}

	v := NewPostView(&p, now)
	if v.Likes != 2 || v.Comments != 1 {
		t.Errorf("counts = %d likes %d comments, want 2/1", v.Likes, v.Comments)
	}
	if v.TimeAgo != "10m ago" {
		t.Errorf("timeAgo = %q, want 10m ago", v.TimeAgo)
	}
}
