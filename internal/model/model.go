// Package model defines the domain types used across the application.
package model

import "time"

// Service is an entry in the static service catalog.
type Service struct {
	ID   int64
	Name string
	URL  string
}

// Subscriber is a chat that receives slot notifications for its chosen
// services.
type Subscriber struct {
	ChatID   int64
	Services []int64
}

// Slot is a single bookable appointment day reported by the portal for one
// service. Slots are produced per poll cycle and never persisted.
type Slot struct {
	ServiceID int64
	URL       string
	Date      time.Time
}
