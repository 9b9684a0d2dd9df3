package domain

// User Model
type User struct {
	ID       uint      `gorm:"primaryKey"`                                     // Primary key
	Username string    `gorm:"size:100;uniqueIndex;not null"`                  // Unique username
	Email    string    `gorm:"size:255;uniqueIndex;not null"`                  // Unique email
	Password string    `gorm:"not null"`                                       // Hashed password
	Accounts []Account `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"` // One-to-many relationship with Account
}
