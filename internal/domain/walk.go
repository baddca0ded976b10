package domain

import "time"

// Walk is a single trail entry in the catalogue.
type Walk struct {
	ID           string
	Name         string
	Description  string
	LengthKm     float64
	ImageURL     string
	DifficultyID string
	RegionID     string
	Difficulty   *Difficulty
	Region       *Region
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Difficulty grades a walk. The set is seeded at startup and immutable.
type Difficulty struct {
	ID   string
	Name string
}

// Region is a geographic area walks belong to.
type Region struct {
	ID       string
	Code     string
	Name     string
	ImageURL string
}
