package model

import "time"

// Message is a contact-form submission. Only AdminID changes after creation.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"full_name" gorm:"size:60;not null"`
	Email       string    `json:"email" gorm:"size:120;not null"`
	PhoneNumber string    `json:"phone_number" gorm:"size:20"`
	Body        string    `json:"message" gorm:"column:message;type:text;not null"`
	PageURL     string    `json:"page_url" gorm:"size:200;not null"`
	AdminID     *uint     `json:"admin_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	Admin *Administrator `json:"-" gorm:"foreignKey:AdminID"`
}
