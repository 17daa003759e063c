package iiif

import (
	"strings"
)

// NewImageServiceReference builds the minimal service pointer embedded in
// another resource, a canvas typically. The profile defaults to level2.
// Width and height are optional and skipped when zero.
func NewImageServiceReference(id, profile string, width, height int) *ImageServiceInfo {
	if profile == "" {
		profile = Level2
	}
	return &ImageServiceInfo{
		ID:       id,
		Type:     ServiceType,
		Protocol: Protocol,
		Profile:  profile,
		Width:    width,
		Height:   height,
	}
}

// IsImageService3 reports whether v is an ImageService3 reference, either
// as the typed document or as loosely decoded JSON.
func IsImageService3(v interface{}) bool {
	switch s := v.(type) {
	case *ImageServiceInfo:
		return s != nil && s.Type == ServiceType && isLevel(s.Profile)
	case ImageServiceInfo:
		return s.Type == ServiceType && isLevel(s.Profile)
	case map[string]interface{}:
		t, _ := s["type"].(string)
		p, _ := s["profile"].(string)
		return t == ServiceType && isLevel(p)
	}
	return false
}

// ImageService binds one logical image to its service endpoint and
// exposes the model operations for it.
type ImageService struct {
	BaseURI    string
	Identifier string
	Width      int
	Height     int
	Profile    string
}

// NewImageService builds a facade for one image. The profile defaults to
// level2.
func NewImageService(baseURI, identifier string, width, height int, profile string) *ImageService {
	if profile == "" {
		profile = Level2
	}
	return &ImageService{
		BaseURI:    baseURI,
		Identifier: identifier,
		Width:      width,
		Height:     height,
		Profile:    profile,
	}
}

// URI is the base of every request for this image.
func (s *ImageService) URI() string {
	return strings.TrimSuffix(s.BaseURI, "/") + "/" + EncodeIdentifier(s.Identifier)
}

// InfoURI points at this image's service description.
func (s *ImageService) InfoURI() string {
	return BuildInfoURI(s.URI())
}

// InfoJSON generates this image's service description.
func (s *ImageService) InfoJSON() (*ImageServiceInfo, error) {
	return GenerateInfo(s.URI(), s.Width, s.Height, s.Profile, nil)
}

// ImageURI validates the request against the profile's capabilities and
// renders it below this image's base.
func (s *ImageService) ImageURI(req ImageRequest) (string, error) {
	caps := CapabilitiesForInfo(&ImageServiceInfo{Profile: s.Profile})
	if _, err := ValidateImageRequest(req, caps); err != nil {
		return "", err
	}
	return BuildImageURI(s.URI(), req), nil
}
