package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exactly three days", now.Add(72 * time.Hour), 3},
		{"just under three days rounds up", now.Add(71 * time.Hour), 3},
		{"just over three days rounds up", now.Add(73 * time.Hour), 4},
		{"one second left", now.Add(time.Second), 1},
		{"ends now", now, 0},
		{"already ended", now.Add(-24 * time.Hour), 0},
	}
	for _, tc := range cases {
		if got := DaysLeft(tc.end, now); got != tc.want {
			t.Errorf("%s: DaysLeft = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestCampaignStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	active := Campaign{EndDate: now.Add(48 * time.Hour)}
	if got := active.StatusAt(now); got != "active" {
		t.Errorf("future campaign status = %q, want active", got)
	}

	done := Campaign{EndDate: now.Add(-time.Hour)}
	if got := done.StatusAt(now); got != "completed" {
		t.Errorf("past campaign status = %q, want completed", got)
	}
	if got := DaysLeft(done.EndDate, now); got != 0 {
		t.Errorf("past campaign daysLeft = %d, want 0", got)
	}
}

func TestApplyPledgeAccumulates(t *testing.T) {
	c := Campaign{GoalAmount: 1000}

	c.ApplyPledge(Pledge{Name: "first", Amount: 250})
	c.ApplyPledge(Pledge{Name: "second", Amount: 250})

	if c.RaisedAmount != 500 {
		t.Errorf("raised = %v, want 500", c.RaisedAmount)
	}
	if len(c.Backers) != 2 {
		t.Fatalf("backers = %d, want 2", len(c.Backers))
	}
	if c.Backers[0].Name != "first" || c.Backers[1].Name != "second" {
		t.Errorf("backers out of order: %v, %v", c.Backers[0].Name, c.Backers[1].Name)
	}
}

func TestFindAndRemoveCampaign(t *testing.T) {
	ids := []primitive.ObjectID{
		primitive.NewObjectID(),
		primitive.NewObjectID(),
		primitive.NewObjectID(),
	}
	u := User{Campaigns: []Campaign{
		{ID: ids[0], Name: "a"},
		{ID: ids[1], Name: "b"},
		{ID: ids[2], Name: "c"},
	}}

	if got := u.FindCampaign(ids[1]); got == nil || got.Name != "b" {
		t.Fatalf("FindCampaign(ids[1]) = %v, want b", got)
	}
	if got := u.FindCampaign(primitive.NewObjectID()); got != nil {
		t.Fatalf("FindCampaign(unknown) = %v, want nil", got)
	}

	if !u.RemoveCampaign(ids[1]) {
		t.Fatal("RemoveCampaign(ids[1]) = false, want true")
	}
	if len(u.Campaigns) != 2 || u.Campaigns[0].Name != "a" || u.Campaigns[1].Name != "c" {
		t.Errorf("remaining campaigns out of order: %+v", u.Campaigns)
	}
	if u.RemoveCampaign(ids[1]) {
		t.Error("RemoveCampaign of deleted id = true, want false")
	}
}

func TestTotalRaised(t *testing.T) {
	u := User{Campaigns: []Campaign{
		{RaisedAmount: 100},
		{RaisedAmount: 250.5},
	}}
	if got := u.TotalRaised(); got != 350.5 {
		t.Errorf("TotalRaised = %v, want 350.5", got)
	}
}

func TestNewCampaignViewDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	owner := User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}
	c := Campaign{
		ID:           primitive.NewObjectID(),
		Name:         "Well",
		Description:  "Clean water",
		GoalAmount:   1000,
		RaisedAmount: 400,
		EndDate:      now.Add(5 * 24 * time.Hour),
		Backers:      []Pledge{{Amount: 400}},
	}

	v := NewCampaignView(&c, &owner, now)

	if v.Image != DefaultCampaignImage {
		t.Errorf("image fallback = %q", v.Image)
	}
	if v.Location != "Location not specified" {
		t.Errorf("location fallback = %q", v.Location)
	}
	if v.Category != "General" {
		t.Errorf("category fallback = %q", v.Category)
	}
	if v.Creator.Phone != "Not provided" {
		t.Errorf("phone fallback = %q", v.Creator.Phone)
	}
	if v.Creator.Avatar != DefaultAvatar {
		t.Errorf("avatar fallback = %q", v.Creator.Avatar)
	}
	if v.Raised != 400 || v.Goal != 1000 {
		t.Errorf("raised/goal = %v/%v", v.Raised, v.Goal)
	}
	if v.Backers != 1 {
		t.Errorf("backers = %d, want 1", v.Backers)
	}
	if v.DaysLeft != 5 || v.Status != "active" {
		t.Errorf("daysLeft/status = %d/%q", v.DaysLeft, v.Status)
	}
}

func TestSortCampaignViews(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	idA, _ := primitive.ObjectIDFromHex("aaaaaaaaaaaaaaaaaaaaaaaa")
	idB, _ := primitive.ObjectIDFromHex("bbbbbbbbbbbbbbbbbbbbbbbb")
	idC, _ := primitive.ObjectIDFromHex("cccccccccccccccccccccccc")

	views := []CampaignView{
		{ID: idC, EndDate: base.Add(day)},
		{ID: idB, EndDate: base.Add(3 * day)},
		{ID: idA, EndDate: base.Add(3 * day)},
	}

	SortCampaignViews(views)

	// latest end date first; equal dates ordered by id hex ascending
	want := []primitive.ObjectID{idA, idB, idC}
	for i, w := range want {
		if views[i].ID != w {
			t.Fatalf("views[%d].ID = %s, want %s", i, views[i].ID.Hex(), w.Hex())
		}
	}
}
