package models

import "time"

// Document is a JSON object stored under (Collection, ID) and owned by the
// user who wrote it.
type Document struct {
	Collection string
	ID         string
	OwnerID    string
	Fields     map[string]any
	UpdatedAt  time.Time
}
