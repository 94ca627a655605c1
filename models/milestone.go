package models

import "time"

const (
	MilestoneMotor     = "motor"
	MilestoneCognitive = "cognitive"
	MilestoneSocial    = "social"
	MilestoneLanguage  = "language"
	MilestonePhysical  = "physical"
)

// Milestone is seeded reference data.
type Milestone struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Category          string    `json:"category" gorm:"size:16;not null;index"`
	Title             string    `json:"title" gorm:"size:255;uniqueIndex;not null"`
	Description       string    `json:"description"`
	ExpectedAgeMonths int       `json:"expectedAgeMonths"`
	MinAgeMonths      int       `json:"minAgeMonths"`
	MaxAgeMonths      int       `json:"maxAgeMonths"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (m *Milestone) FitsAge(months int) bool {
	return months >= m.MinAgeMonths && months <= m.MaxAgeMonths
}

// MilestoneData is stored in Event.Data for MILESTONE events.
type MilestoneData struct {
	MilestoneID uint   `json:"milestoneId"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Notes       string `json:"notes,omitempty"`
}

type AchieveMilestoneRequest struct {
	MilestoneID uint       `json:"milestoneId" binding:"required"`
	AchievedAt  *time.Time `json:"achievedAt"`
	Notes       string     `json:"notes"`
}

// AchievedMilestone pairs the log entry with the reference row.
type AchievedMilestone struct {
	EventID    uint       `json:"eventId"`
	AchievedAt time.Time  `json:"achievedAt"`
	Notes      string     `json:"notes"`
	Milestone  *Milestone `json:"milestone"`
}

var DefaultMilestones = []Milestone{
	{Category: MilestoneSocial, Title: "Social smile", Description: "Smiles in response to a familiar face", ExpectedAgeMonths: 2, MinAgeMonths: 1, MaxAgeMonths: 3},
	{Category: MilestoneMotor, Title: "Holds head up", Description: "Holds head steady while on tummy", ExpectedAgeMonths: 3, MinAgeMonths: 1, MaxAgeMonths: 4},
	{Category: MilestoneLanguage, Title: "Coos", Description: "Makes cooing and gurgling sounds", ExpectedAgeMonths: 2, MinAgeMonths: 1, MaxAgeMonths: 4},
	{Category: MilestoneCognitive, Title: "Follows objects", Description: "Follows moving things with eyes", ExpectedAgeMonths: 3, MinAgeMonths: 2, MaxAgeMonths: 4},
	{Category: MilestoneMotor, Title: "Rolls over", Description: "Rolls from tummy to back", ExpectedAgeMonths: 5, MinAgeMonths: 4, MaxAgeMonths: 7},
	{Category: MilestoneLanguage, Title: "Babbles", Description: "Strings vowels together", ExpectedAgeMonths: 6, MinAgeMonths: 4, MaxAgeMonths: 9},
	{Category: MilestoneMotor, Title: "Sits without support", Description: "Sits steadily without help", ExpectedAgeMonths: 7, MinAgeMonths: 5, MaxAgeMonths: 9},
	{Category: MilestonePhysical, Title: "First tooth", Description: "First tooth comes through", ExpectedAgeMonths: 7, MinAgeMonths: 4, MaxAgeMonths: 12},
	{Category: MilestoneSocial, Title: "Stranger awareness", Description: "Knows familiar faces and is wary of strangers", ExpectedAgeMonths: 8, MinAgeMonths: 6, MaxAgeMonths: 10},
	{Category: MilestoneMotor, Title: "Crawls", Description: "Moves forward on hands and knees", ExpectedAgeMonths: 9, MinAgeMonths: 6, MaxAgeMonths: 11},
	{Category: MilestoneCognitive, Title: "Object permanence", Description: "Looks for things they see you hide", ExpectedAgeMonths: 9, MinAgeMonths: 7, MaxAgeMonths: 11},
	{Category: MilestoneMotor, Title: "Pulls to stand", Description: "Pulls up to stand holding furniture", ExpectedAgeMonths: 10, MinAgeMonths: 8, MaxAgeMonths: 12},
	{Category: MilestoneLanguage, Title: "First word", Description: "Says a first meaningful word", ExpectedAgeMonths: 12, MinAgeMonths: 9, MaxAgeMonths: 15},
	{Category: MilestoneMotor, Title: "First steps", Description: "Takes a few steps without holding on", ExpectedAgeMonths: 12, MinAgeMonths: 9, MaxAgeMonths: 18},
	{Category: MilestoneSocial, Title: "Waves bye-bye", Description: "Waves goodbye", ExpectedAgeMonths: 9, MinAgeMonths: 7, MaxAgeMonths: 12},
	{Category: MilestoneCognitive, Title: "Points to objects", Description: "Points to show interest", ExpectedAgeMonths: 12, MinAgeMonths: 10, MaxAgeMonths: 15},
	{Category: MilestoneLanguage, Title: "Two-word phrases", Description: "Puts two words together", ExpectedAgeMonths: 24, MinAgeMonths: 18, MaxAgeMonths: 30},
	{Category: MilestoneMotor, Title: "Runs", Description: "Runs with steady balance", ExpectedAgeMonths: 18, MinAgeMonths: 14, MaxAgeMonths: 24},
}
