// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package mainproject

import (
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
)

// State is the sales lifecycle of a main project.
type State string

const (
	StateAvailable State = "available"
	StateSold      State = "sold"
)

// Field identifiers used in validation error details.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldState       = "state"
	FieldImages      = "images"
)

// MainProject is an active development: a compound or tower currently being
// marketed, composed of individual units.
type MainProject struct {
	ID          string         `json:"id"`
	Name        localized.Text `json:"name"`
	Description localized.Text `json:"description"`
	Location    localized.Text `json:"location,omitempty"`
	State       State          `json:"state"`
	Images      []string       `json:"images"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	UnitsCount  int            `json:"unitsCount,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
}

// Unit is a single sellable property inside a main project.
type Unit struct {
	ID       string               `json:"id"`
	Title    localized.Text       `json:"title"`
	Details  localized.Text       `json:"details,omitempty"`
	Area     float64              `json:"area,omitempty"`
	Bedrooms int                  `json:"bedrooms,omitempty"`
	Features localized.StringList `json:"features"`
	Images   []string             `json:"images"`
	Sold     bool                 `json:"sold"`

	// Highlights is Features resolved for the request locale. It is computed
	// per response and never stored.
	Highlights []string `json:"highlights,omitempty"`
}

// Input is the payload accepted for create and update operations.
type Input struct {
	Name        localized.Text `json:"name"`
	Description localized.Text `json:"description"`
	Location    localized.Text `json:"location,omitempty"`
	State       State          `json:"state"`
	Images      []string       `json:"images"`
	VideoURL    string         `json:"videoUrl,omitempty"`
}
