package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frontend fallbacks for records saved without images.
const (
	DefaultAvatar        = "https://images.unsplash.com/photo-1494790108755-2616b612b786?auto=format&fit=crop&w=150&q=80"
	DefaultCampaignImage = "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?auto=format&fit=crop&w=600&q=80"
)

// Pledge records one backer's contribution to a campaign. UserID and
// PaymentIntentID are lookup references only.
type Pledge struct {
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Amount          float64            `bson:"amount" json:"amount"`
	Message         string             `bson:"message,omitempty" json:"message,omitempty"`
	Date            time.Time          `bson:"date" json:"date"`
	PaymentIntentID string             `bson:"payment_intent_id" json:"paymentIntentId"`
}

// Campaign is embedded in its owner's user document; it has no collection
// of its own.
type Campaign struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	GoalAmount   float64            `bson:"goal_amount" json:"goalAmount"`
	RaisedAmount float64            `bson:"raised_amount" json:"raisedAmount"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	StartDate    time.Time          `bson:"start_date" json:"startDate"`
	EndDate      time.Time          `bson:"end_date" json:"endDate"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Backers      []Pledge           `bson:"backers" json:"backers"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Mobile    string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	IsAdmin   bool               `bson:"is_admin" json:"isAdmin"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	Campaigns []Campaign         `bson:"campaigns" json:"campaigns"`
}

func (u *User) AvatarOrDefault() string {
	if u.Avatar == "" {
		return DefaultAvatar
	}
	return u.Avatar
}

// FindCampaign locates an embedded campaign by identity. Returns nil when
// the user owns no campaign with that id.
func (u *User) FindCampaign(id primitive.ObjectID) *Campaign {
	for i := range u.Campaigns {
		if u.Campaigns[i].ID == id {
			return &u.Campaigns[i]
		}
	}
	return nil
}

// RemoveCampaign deletes by identity match, not index, so the remaining
// campaigns keep their insertion order.
func (u *User) RemoveCampaign(id primitive.ObjectID) bool {
	for i := range u.Campaigns {
		if u.Campaigns[i].ID == id {
			u.Campaigns = append(u.Campaigns[:i], u.Campaigns[i+1:]...)
			return true
		}
	}
	return false
}

// TotalRaised sums raised amounts across all of the user's campaigns.
func (u *User) TotalRaised() float64 {
	var total float64
	for i := range u.Campaigns {
		total += u.Campaigns[i].RaisedAmount
	}
	return total
}

// ApplyPledge increments the raised amount and appends the backer record.
func (c *Campaign) ApplyPledge(p Pledge) {
	c.RaisedAmount += p.Amount
	c.Backers = append(c.Backers, p)
}

// DaysLeft counts whole days remaining until end, rounding partial days up.
// An end exactly 72h away yields 3; an end in the past yields 0.
func DaysLeft(end, now time.Time) int {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// StatusAt reports "active" while days remain, "completed" after the end date.
func (c *Campaign) StatusAt(now time.Time) string {
	if DaysLeft(c.EndDate, now) > 0 {
		return "active"
	}
	return "completed"
}

// Creator is the owning-user info attached to campaign views.
type Creator struct {
	ID     primitive.ObjectID `json:"id,omitempty"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Phone  string             `json:"phone,omitempty"`
	Avatar string             `json:"avatar"`
}

// CampaignView is the display shape for listings: stored fields plus the
// derived daysLeft/backers/status values computed at read time.
type CampaignView struct {
	ID              primitive.ObjectID `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	LongDescription string             `json:"longDescription"`
	Image           string             `json:"image"`
	Raised          float64            `json:"raised"`
	Goal            float64            `json:"goal"`
	DaysLeft        int                `json:"daysLeft"`
	Location        string             `json:"location"`
	Category        string             `json:"category"`
	Backers         int                `json:"backers"`
	Status          string             `json:"status"`
	Creator         Creator            `json:"creator"`
	StartDate       time.Time          `json:"startDate"`
	EndDate         time.Time          `json:"endDate"`
}

func NewCampaignView(c *Campaign, owner *User, now time.Time) CampaignView {
	image := c.Image
	if image == "" {
		image = DefaultCampaignImage
	}
	location := c.Location
	if location == "" {
		location = "Location not specified"
	}
	category := c.Category
	if category == "" {
		category = "General"
	}
	phone := owner.Mobile
	if phone == "" {
		phone = "Not provided"
	}

	return CampaignView{
		ID:              c.ID,
		Title:           c.Name,
		Description:     c.Description,
		LongDescription: c.Description,
		Image:           image,
		Raised:          c.RaisedAmount,
		Goal:            c.GoalAmount,
		DaysLeft:        DaysLeft(c.EndDate, now),
		Location:        location,
		Category:        category,
		Backers:         len(c.Backers),
		Status:          c.StatusAt(now),
		Creator: Creator{
			ID:     owner.ID,
			Name:   owner.Name,
			Email:  owner.Email,
			Phone:  phone,
			Avatar: owner.AvatarOrDefault(),
		},
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}
}

// SortCampaignViews orders by end date descending; equal end dates fall
// back to ascending campaign id hex so the order is deterministic.
func SortCampaignViews(views []CampaignView) {
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].EndDate.Equal(views[j].EndDate) {
			return views[i].EndDate.After(views[j].EndDate)
		}
		return views[i].ID.Hex() < views[j].ID.Hex()
	})
}
