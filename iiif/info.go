package iiif

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
)

// Image API 3.0 constants.
const (
	ContextURI  = "http://iiif.io/api/image/3/context.json"
	Protocol    = "http://iiif.io/api/image"
	ServiceType = "ImageService3"
)

// InfoSize is one entry of the `sizes` list.
type InfoSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// InfoTile is one entry of the `tiles` list. A zero Height means square
// tiles of Width.
type InfoTile struct {
	Width        int   `json:"width"`
	Height       int   `json:"height,omitempty"`
	ScaleFactors []int `json:"scaleFactors"`
}

// ImageServiceInfo is the info.json document. With only id, type,
// protocol, profile and the dimensions set it doubles as the embedded
// service reference.
type ImageServiceInfo struct {
	Context        string     `json:"@context,omitempty"`
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Protocol       string     `json:"protocol"`
	Profile        string     `json:"profile"`
	Width          int        `json:"width,omitempty"`
	Height         int        `json:"height,omitempty"`
	MaxWidth       int        `json:"maxWidth,omitempty"`
	MaxHeight      int        `json:"maxHeight,omitempty"`
	MaxArea        int        `json:"maxArea,omitempty"`
	Sizes          []InfoSize `json:"sizes,omitempty"`
	Tiles          []InfoTile `json:"tiles,omitempty"`
	ExtraFormats   []string   `json:"extraFormats,omitempty"`
	ExtraQualities []string   `json:"extraQualities,omitempty"`
	ExtraFeatures  []string   `json:"extraFeatures,omitempty"`
	Rights         string     `json:"rights,omitempty"`
}

// Validate checks the document against the Image API 3.0 requirements and
// accumulates every violation instead of stopping at the first.
func (info *ImageServiceInfo) Validate() []string {
	var violations []string

	if info.Context == "" {
		violations = append(violations, "missing required field: @context")
	}
	if info.ID == "" {
		violations = append(violations, "missing required field: id")
	}
	if info.Type == "" {
		violations = append(violations, "missing required field: type")
	} else if info.Type != ServiceType {
		violations = append(violations, fmt.Sprintf("type must be %#v, got %#v", ServiceType, info.Type))
	}
	if info.Protocol == "" {
		violations = append(violations, "missing required field: protocol")
	}
	if info.Profile == "" {
		violations = append(violations, "missing required field: profile")
	} else if !isLevel(info.Profile) {
		violations = append(violations, fmt.Sprintf("profile must be one of level0, level1 or level2, got %#v", info.Profile))
	}
	if info.Width <= 0 {
		violations = append(violations, "width must be a positive integer")
	}
	if info.Height <= 0 {
		violations = append(violations, "height must be a positive integer")
	}

	return violations
}

// GenerateInfo builds a minimal conformant document. Extra optional fields
// (maxWidth, rights, sizes, ...) are merged in verbatim from the loosely
// typed map.
func GenerateInfo(id string, width, height int, profile string, extras map[string]interface{}) (*ImageServiceInfo, error) {
	info := &ImageServiceInfo{
		Context:  ContextURI,
		ID:       id,
		Type:     ServiceType,
		Protocol: Protocol,
		Profile:  profile,
		Width:    width,
		Height:   height,
	}

	if len(extras) > 0 {
		if err := mapstructure.Decode(extras, info); err != nil {
			return nil, newError(ErrStructure, "cannot merge extra fields: %v", err)
		}
	}

	return info, nil
}

// GenerateStandardSizes scales each candidate width preserving the aspect
// ratio. Candidates wider than the original are dropped.
func GenerateStandardSizes(origWidth, origHeight int, widths []int) []InfoSize {
	sizes := make([]InfoSize, 0, len(widths))
	for _, w := range widths {
		if w > origWidth {
			continue
		}
		h := int(math.Round(float64(w) * float64(origHeight) / float64(origWidth)))
		sizes = append(sizes, InfoSize{Width: w, Height: h})
	}
	return sizes
}

// GenerateStandardTiles returns the usual single tile configuration,
// defaulting to 512px tiles at scale factors 1, 2, 4 and 8.
func GenerateStandardTiles(tileWidth int, scaleFactors []int) []InfoTile {
	if tileWidth <= 0 {
		tileWidth = 512
	}
	if len(scaleFactors) == 0 {
		scaleFactors = []int{1, 2, 4, 8}
	}
	return []InfoTile{{Width: tileWidth, ScaleFactors: scaleFactors}}
}
