package model

import "time"

// User represents a registered account of the distributor storefront. Staff
// accounts operate the fulfillment workstations.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Staff        bool
	CreatedAt    time.Time
}
