package models

import (
	"time"
)

type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	FirstName string    `gorm:"not null;size:50" json:"first_name"`
	LastName  string    `gorm:"not null;size:50" json:"last_name"`
	Email     string    `gorm:"not null;size:254" json:"email"`
	TeamID    *uint     `gorm:"index" json:"team_id"`
	Team      *Team     `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// TableName keeps the relation named persons rather than gorm's plural people.
func (Person) TableName() string {
	return "persons"
}

// HasTeam reports whether the person currently belongs to a team.
func (p *Person) HasTeam() bool {
	return p.TeamID != nil
}
