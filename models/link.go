package models

import (
	"time"
)

// Link is the persisted association between a short code and its target URL.
type Link struct {
	Code        string     `json:"code"`
	URL         string     `json:"url"`
	Clicks      int        `json:"clicks"`
	CreatedAt   time.Time  `json:"created_at"`
	LastClicked *time.Time `json:"last_clicked"`
}
