package models

import (
	"time"
)

// Intake records are write-once: each submission persists a flat row
// with a creation timestamp and no further lifecycle.

// Testimonial is a visitor-submitted product testimonial.
type Testimonial struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	City      string    `gorm:"not null" json:"city"`
	Rating    int       `gorm:"not null" json:"rating"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName names the table.
func (Testimonial) TableName() string {
	return "testimonials"
}

// Faq is a visitor-submitted question.
type Faq struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Email     string    `json:"email"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName names the table.
func (Faq) TableName() string {
	return "faqs"
}

// ContactMessage is a contact form submission.
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName names the table.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// WaitlistEntry is a product waitlist signup.
type WaitlistEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"not null;index" json:"email"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName names the table.
func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
