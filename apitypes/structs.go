package apitypes

import (
	"fmt"
	"time"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type CountResponse struct {
	Layout  string `json:"layout"`
	Letters int    `json:"letters"`
}

// Variant is one character reachable from the queried letter.
type Variant struct {
	Character   string `json:"character"`
	KeySequence string `json:"keySequence"`
	// Modifier and Key form the chord; Then is the key typed after a dead key.
	Modifier string `json:"modifier,omitempty"`
	Key      string `json:"key"`
	Then     string `json:"then,omitempty"`
}

type VariantsResponse struct {
	Letter   string    `json:"letter"`
	Variants []Variant `json:"variants"`
}

type LayoutInfoResponse struct {
	Layout         string     `json:"layout"`
	Source         string     `json:"source"`
	Keys           int        `json:"keys"`
	Letters        int        `json:"letters"`
	Entries        int        `json:"entries"`
	DirectEntries  int        `json:"directEntries"`
	DeadKeys       int        `json:"deadKeys"`
	DeadKeyEntries int        `json:"deadKeyEntries"`
	Builds         uint64     `json:"builds"`
	Failures       uint64     `json:"failures"`
	LastBuild      *time.Time `json:"lastBuild,omitempty"`
}

type LayoutReloadResponse struct {
	Layout  string `json:"layout"`
	Letters int    `json:"letters"`
	Entries int    `json:"entries"`
}
