package models

import "time"

// Info is a company's extra submission data for an edition. It shares the
// reservation feedback lifecycle but never occupies venue resources.
type Info struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CompanyID string    `gorm:"not null;uniqueIndex:idx_info_company_edition,priority:1" json:"company_id"`
	Edition   string    `gorm:"not null;uniqueIndex:idx_info_company_edition,priority:2" json:"edition"`
	Data      string    `gorm:"type:text" json:"data"`
	Feedback  Feedback  `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contract records a company's signed-contract acknowledgment.
type Contract struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CompanyID string    `gorm:"not null;uniqueIndex:idx_contract_company_edition,priority:1" json:"company_id"`
	Edition   string    `gorm:"not null;uniqueIndex:idx_contract_company_edition,priority:2" json:"edition"`
	Signed    bool      `gorm:"not null;default:false" json:"signed"`
	Feedback  Feedback  `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FeatureFlags map[string]bool

// EditionConfig carries per-company feature flags for an edition.
type EditionConfig struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	CompanyID string       `gorm:"not null;uniqueIndex:idx_config_company_edition,priority:1" json:"company_id"`
	Edition   string       `gorm:"not null;uniqueIndex:idx_config_company_edition,priority:2" json:"edition"`
	Flags     FeatureFlags `gorm:"serializer:json" json:"flags"`
	Feedback  Feedback     `gorm:"embedded;embeddedPrefix:feedback_" json:"feedback"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
