package entity

import "time"

// Category representa uma categoria de brindes.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Unit representa uma unidade de medida ("UN", "CX", ...).
type Unit struct {
	ID          string
	Code        string
	Description string
	Active      bool
	CreatedAt   time.Time
}
