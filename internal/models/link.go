package models

import "time"

type Activities []ActivityKind

// Link is a company's capability grant for one edition: the bearer token
// it authenticates with, how many days it may book a stand for and which
// extra activities it may claim. Without a valid, unexpired link a company
// cannot act.
type Link struct {
	ID                uint       `gorm:"primaryKey" json:"-"`
	CompanyID         string     `gorm:"not null;uniqueIndex:idx_link_company_edition,priority:1" json:"company_id"`
	Edition           string     `gorm:"not null;uniqueIndex:idx_link_company_edition,priority:2" json:"edition"`
	Token             string     `gorm:"not null" json:"-"`
	Valid             bool       `gorm:"not null;default:true" json:"valid"`
	ParticipationDays int        `gorm:"not null" json:"participation_days"`
	Activities        Activities `gorm:"serializer:json" json:"activities"`
	ExpiresAt         time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"-"`
}

// Usable reports whether the link grants any capability at the given time.
func (l *Link) Usable(now time.Time) bool {
	return l.Valid && now.Before(l.ExpiresAt)
}
