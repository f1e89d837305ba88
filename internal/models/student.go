package models

import (
	"time"
)

type Student struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	FirstName        string    `json:"first_name"`
	MiddleName       string    `json:"middle_name"`
	LastName         string    `json:"last_name"`
	Email            string    `gorm:"uniqueIndex" json:"email"`
	RollNumber       string    `json:"roll_number"`
	PrnNumber        string    `gorm:"uniqueIndex" json:"prn_number"`
	DateOfBirth      string    `json:"date_of_birth"`
	Branch           string    `json:"branch"`
	Division         string    `json:"division"`
	Gender           string    `json:"gender"`
	Address          string    `json:"address"`
	SgpaSem1         string    `gorm:"column:sgpa_sem1" json:"sgpa_sem1,omitempty"`
	SgpaSem2         string    `gorm:"column:sgpa_sem2" json:"sgpa_sem2,omitempty"`
	ProfilePhoto     string    `json:"profile_photo,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	IsPaid           bool      `json:"is_paid"`
	Mentor           string    `json:"mentor"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
