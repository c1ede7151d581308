package models

// Pathway is a student's declared academic track
type Pathway struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
