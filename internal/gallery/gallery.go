// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package gallery

// FieldImages is the validation field identifier for the image set.
const FieldImages = "images"

// Input is the payload for replacing the gallery's image set.
type Input struct {
	Images []string `json:"images"`
}
