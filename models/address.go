package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID        uuid.UUID      `gorm:"type:char(36);primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:char(36);not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Label     string         `json:"label"` // home, work, ...
	Name      string         `gorm:"not null" json:"name"`
	Phone     string         `json:"phone"`
	Line1     string         `gorm:"not null" json:"line1"`
	Line2     string         `json:"line2"`
	City      string         `gorm:"not null" json:"city"`
	State     string         `json:"state"`
	PostCode  string         `gorm:"not null" json:"post_code"`
	Country   string         `gorm:"default:IN" json:"country"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Text renders the single-line snapshot stored on orders.
func (a *Address) Text() string {
	out := a.Name + ", " + a.Line1
	if a.Line2 != "" {
		out += ", " + a.Line2
	}
	out += ", " + a.City
	if a.State != "" {
		out += ", " + a.State
	}
	out += " " + a.PostCode
	if a.Phone != "" {
		out += " (" + a.Phone + ")"
	}
	return out
}
