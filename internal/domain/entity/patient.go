package entity

import (
	"time"
)

// Patient is a person registered with the clinic
type Patient struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(50);not null" json:"last_name"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"type:varchar(20);not null" json:"phone"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Address     *string   `gorm:"type:varchar(500)" json:"address,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
