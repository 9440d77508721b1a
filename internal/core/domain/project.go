package domain

import "time"

const MaxProjectNameLength = 120

type Project struct {
	ID          string
	Name        string
	Description string
	Color       string
	OwnerID     string
	SharedWith  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
