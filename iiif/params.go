package iiif

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The grammar only admits plain decimals. ParseFloat alone would also let
// NaN, Inf, exponents and a + sign through; a leading - still parses so
// the range rules can name it.
var decimalToken = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

func parseDecimal(s string) (float64, bool) {
	if !decimalToken.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInteger(s string) (int64, bool) {
	if strings.HasPrefix(s, "+") {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// error messages
var regionError = "IIIF 3.0 `region` argument is not recognized: %#v"
var regionExtentError = "IIIF 3.0 `region` width and height must be greater than 0: %#v"
var regionNegativeError = "IIIF 3.0 `region` x and y must not be negative: %#v"
var sizeError = "IIIF 3.0 `size` argument is not recognized: %#v"
var sizeExtentError = "IIIF 3.0 `size` values must be greater than 0: %#v"
var upscaleError = "Upscaling (`^`) is not supported by this service: %#v"
var rotationError = "IIIF 3.0 `rotation` argument is not recognized: %#v"
var rotationRangeError = "IIIF 3.0 `rotation` must be between 0 and 360: %#v"
var rotationBy90Error = "this service only rotates by 90-degree increments: %#v"
var mirrorError = "Mirroring (`!`) is not supported by this service: %#v"
var qualityError = "IIIF 3.0 `quality` argument is not recognized: %#v"
var qualityMissing = "this service does not offer the %#v quality"
var formatError = "IIIF 3.0 `format` argument is not recognized: %#v"
var formatMissing = "this service does not offer the %#v format"

// RegionKind discriminates the region variants.
type RegionKind int

const (
	RegionFull RegionKind = iota
	RegionSquare
	RegionPixels
	RegionPercent
)

// Region is one parsed `region` segment.
// X, Y, W, H are only meaningful for the pixels and percent kinds.
type Region struct {
	Kind RegionKind
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Size is one parsed `size` segment.
type Size struct {
	Kind    SizeKind
	Width   int
	Height  int
	Percent float64
	Upscale bool
}

// SizeKind discriminates the size variants.
type SizeKind int

const (
	SizeMax SizeKind = iota
	SizeWidth
	SizeHeight
	SizePercent
	SizeWidthHeight
	SizeConfined
)

// Rotation is one parsed `rotation` segment.
type Rotation struct {
	Degrees float64
	Mirror  bool
}

// Capabilities declares what a service supports, the way the validators
// need it. Derive one from an info document with CapabilitiesForInfo.
type Capabilities struct {
	Qualities         []string
	Formats           []string
	Upscale           bool
	ArbitraryRotation bool
	Mirroring         bool
}

// ImageRequest is the raw five segments of an image request.
// Region and size may come pre-formatted from a Region or Size value.
type ImageRequest struct {
	Region   string `json:"region"`
	Size     string `json:"size"`
	Rotation string `json:"rotation"`
	Quality  string `json:"quality"`
	Format   string `json:"format"`
}

// ParsedImageRequest is a fully validated image request.
type ParsedImageRequest struct {
	Region   *Region
	Size     *Size
	Rotation *Rotation
	Quality  string
	Format   string
}

// ValidateRegion parses one `region` segment.
//
//	full
//	square
//	x,y,w,h (in pixels)
//	pct:x,y,w,h (in percents)
func ValidateRegion(region string) (*Region, error) {
	switch region {
	case "full":
		return &Region{Kind: RegionFull}, nil
	case "square":
		return &Region{Kind: RegionSquare}, nil
	}

	kind := RegionPixels
	rest := region
	if strings.HasPrefix(region, "pct:") {
		kind = RegionPercent
		rest = region[4:]
	}

	parts := strings.Split(rest, ",")
	if len(parts) != 4 {
		return nil, newError(ErrSyntax, regionError, region)
	}

	var values [4]float64
	for i, part := range parts {
		v, ok := parseDecimal(part)
		if !ok {
			return nil, newError(ErrSyntax, regionError, region)
		}
		values[i] = v
	}

	if values[0] < 0 || values[1] < 0 {
		return nil, newError(ErrRange, regionNegativeError, region)
	}
	if values[2] <= 0 || values[3] <= 0 {
		return nil, newError(ErrRange, regionExtentError, region)
	}

	return &Region{kind, values[0], values[1], values[2], values[3]}, nil
}

// ValidateSize parses one `size` segment.
//
//	max
//	w, (force width)
//	,h (force height)
//	pct:n (scale in %)
//	w,h (deform)
//	!w,h (best fit within size)
//
// A leading ^ requests upscaling and is only legal when supportsUpscale.
// The segment must parse before the capability gate applies, so a
// malformed ^ size stays a syntax error.
func ValidateSize(size string, supportsUpscale bool) (*Size, error) {
	parsed, err := parseSize(size)
	if err != nil {
		return nil, err
	}
	if parsed.Upscale && !supportsUpscale {
		return nil, newError(ErrCapability, upscaleError, size)
	}
	return parsed, nil
}

func parseSize(size string) (*Size, error) {
	upscale := strings.HasPrefix(size, "^")
	rest := strings.TrimPrefix(size, "^")

	if rest == "max" {
		return &Size{Kind: SizeMax, Upscale: upscale}, nil
	}

	if strings.HasPrefix(rest, "pct:") {
		pct, ok := parseDecimal(rest[4:])
		if !ok {
			return nil, newError(ErrSyntax, sizeError, size)
		}
		if pct <= 0 {
			return nil, newError(ErrRange, sizeExtentError, size)
		}
		return &Size{Kind: SizePercent, Percent: pct, Upscale: upscale}, nil
	}

	confined := strings.HasPrefix(rest, "!")
	rest = strings.TrimPrefix(rest, "!")

	parts := strings.Split(rest, ",")
	if len(parts) != 2 {
		return nil, newError(ErrSyntax, sizeError, size)
	}

	w, okW := parseInteger(parts[0])
	h, okH := parseInteger(parts[1])

	switch {
	case confined:
		if !okW || !okH {
			return nil, newError(ErrSyntax, sizeError, size)
		}
		if w <= 0 || h <= 0 {
			return nil, newError(ErrRange, sizeExtentError, size)
		}
		return &Size{Kind: SizeConfined, Width: int(w), Height: int(h), Upscale: upscale}, nil
	case parts[1] == "" && okW:
		if w <= 0 {
			return nil, newError(ErrRange, sizeExtentError, size)
		}
		return &Size{Kind: SizeWidth, Width: int(w), Upscale: upscale}, nil
	case parts[0] == "" && okH:
		if h <= 0 {
			return nil, newError(ErrRange, sizeExtentError, size)
		}
		return &Size{Kind: SizeHeight, Height: int(h), Upscale: upscale}, nil
	case okW && okH:
		if w <= 0 || h <= 0 {
			return nil, newError(ErrRange, sizeExtentError, size)
		}
		return &Size{Kind: SizeWidthHeight, Width: int(w), Height: int(h), Upscale: upscale}, nil
	}

	return nil, newError(ErrSyntax, sizeError, size)
}

// ValidateRotation parses one `rotation` segment.
//
//	n angle clockwise in degrees
//	!n angle clockwise in degrees with a flip (beforehand)
//
// Angles outside [0,360] are rejected. Non-multiples of 90 need
// supportsArbitrary, the ! prefix needs supportsMirror.
func ValidateRotation(rotation string, supportsArbitrary, supportsMirror bool) (*Rotation, error) {
	mirror := strings.HasPrefix(rotation, "!")
	rest := strings.TrimPrefix(rotation, "!")

	degrees, ok := parseDecimal(rest)
	if !ok {
		return nil, newError(ErrSyntax, rotationError, rotation)
	}
	if degrees < 0 || degrees > 360 {
		return nil, newError(ErrRange, rotationRangeError, rotation)
	}
	if mirror && !supportsMirror {
		return nil, newError(ErrCapability, mirrorError, rotation)
	}
	if math.Mod(degrees, 90) != 0 && !supportsArbitrary {
		return nil, newError(ErrCapability, rotationBy90Error, rotation)
	}

	return &Rotation{Degrees: degrees, Mirror: mirror}, nil
}

// ValidateQuality checks one `quality` token against the supported set.
// Tokens outside the Image API vocabulary are rejected regardless of it.
func ValidateQuality(quality string, supported []string) error {
	if !contains(knownQualities, quality) {
		return newError(ErrSyntax, qualityError, quality)
	}
	if !contains(supported, quality) {
		return newError(ErrCapability, qualityMissing, quality)
	}
	return nil
}

// ValidateFormat checks one `format` token against the supported set.
func ValidateFormat(format string, supported []string) error {
	if !contains(knownFormats, format) {
		return newError(ErrSyntax, formatError, format)
	}
	if !contains(supported, format) {
		return newError(ErrCapability, formatMissing, format)
	}
	return nil
}

// ValidateImageRequest validates all five segments against the declared
// capabilities, stopping at the first rejection.
func ValidateImageRequest(req ImageRequest, caps *Capabilities) (*ParsedImageRequest, error) {
	region, err := ValidateRegion(req.Region)
	if err != nil {
		return nil, err
	}

	size, err := ValidateSize(req.Size, caps.Upscale)
	if err != nil {
		return nil, err
	}

	rotation, err := ValidateRotation(req.Rotation, caps.ArbitraryRotation, caps.Mirroring)
	if err != nil {
		return nil, err
	}

	if err := ValidateQuality(req.Quality, caps.Qualities); err != nil {
		return nil, err
	}

	if err := ValidateFormat(req.Format, caps.Formats); err != nil {
		return nil, err
	}

	debug("request ok: %s/%s/%s/%s.%s", req.Region, req.Size, req.Rotation, req.Quality, req.Format)

	return &ParsedImageRequest{
		Region:   region,
		Size:     size,
		Rotation: rotation,
		Quality:  req.Quality,
		Format:   req.Format,
	}, nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
