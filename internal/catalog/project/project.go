// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package project

import (
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
)

// Type classifies a completed development.
type Type string

const (
	TypeResidential Type = "Residential"
	TypeCommercial  Type = "Commercial"
)

// Field identifiers used in validation error details.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldType        = "type"
	FieldImages      = "images"
)

// Project is one completed development in the company portfolio.
//
// Title, Description, Location, and Status arrive from the backend in either
// the plain-string or the {en, ar} wire shape; [localized.Text] normalizes
// both at decode time so nothing past the store ever branches on shape.
type Project struct {
	ID          string         `json:"id"`
	Title       localized.Text `json:"title"`
	Description localized.Text `json:"description"`
	Location    localized.Text `json:"location,omitempty"`
	Status      localized.Text `json:"status,omitempty"`
	Type        Type           `json:"type,omitempty"`
	Images      []string       `json:"images"`

	// Features is the locale-keyed selling-point list ({"en": [...], "ar": [...]}).
	Features localized.StringList `json:"features"`

	VideoURL       string `json:"videoUrl,omitempty"`
	CompletionDate string `json:"completionDate,omitempty"`

	// MainProjectID links a unit back to its parent development, when the
	// project was sold out of an active compound.
	MainProjectID string `json:"mainProjectId,omitempty"`

	Slug      string `json:"slug,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Input is the payload accepted for create and update operations. It is
// forwarded to the backend after local validation; the backend remains the
// authority on what persists.
type Input struct {
	Title          localized.Text       `json:"title"`
	Description    localized.Text       `json:"description"`
	Location       localized.Text       `json:"location,omitempty"`
	Status         localized.Text       `json:"status,omitempty"`
	Type           Type                 `json:"type"`
	Images         []string             `json:"images"`
	Features       localized.StringList `json:"features"`
	VideoURL       string               `json:"videoUrl,omitempty"`
	CompletionDate string               `json:"completionDate,omitempty"`
	MainProjectID  string               `json:"mainProjectId,omitempty"`
}
