package iiif

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// String renders the canonical `region` segment.
func (r *Region) String() string {
	switch r.Kind {
	case RegionFull:
		return "full"
	case RegionSquare:
		return "square"
	case RegionPercent:
		return fmt.Sprintf("pct:%s,%s,%s,%s",
			formatNumber(r.X), formatNumber(r.Y), formatNumber(r.W), formatNumber(r.H))
	}
	return fmt.Sprintf("%s,%s,%s,%s",
		formatNumber(r.X), formatNumber(r.Y), formatNumber(r.W), formatNumber(r.H))
}

// String renders the canonical `size` segment, ^ prefix included.
func (s *Size) String() string {
	prefix := ""
	if s.Upscale {
		prefix = "^"
	}

	switch s.Kind {
	case SizeMax:
		return prefix + "max"
	case SizeWidth:
		return fmt.Sprintf("%s%d,", prefix, s.Width)
	case SizeHeight:
		return fmt.Sprintf("%s,%d", prefix, s.Height)
	case SizePercent:
		return prefix + "pct:" + formatNumber(s.Percent)
	case SizeConfined:
		return fmt.Sprintf("%s!%d,%d", prefix, s.Width, s.Height)
	}
	return fmt.Sprintf("%s%d,%d", prefix, s.Width, s.Height)
}

// String renders the canonical `rotation` segment.
func (r *Rotation) String() string {
	if r.Mirror {
		return "!" + formatNumber(r.Degrees)
	}
	return formatNumber(r.Degrees)
}

// BuildImageURI joins the five request segments below the base URI.
func BuildImageURI(base string, req ImageRequest) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s.%s",
		strings.TrimSuffix(base, "/"),
		req.Region, req.Size, req.Rotation, req.Quality, req.Format)
}

// BuildInfoURI points at the service description of the base URI.
func BuildInfoURI(base string) string {
	return strings.TrimSuffix(base, "/") + "/info.json"
}

// ParsedURI holds the pieces recovered from a full image request URI.
type ParsedURI struct {
	Identifier string
	Region     string
	Size       string
	Rotation   string
	Quality    string
	Format     string
}

var imageURIPattern = regexp.MustCompile(
	`^(.+)/([^/]+)/([^/]+)/([^/]+)/([^/]+)\.([^/.]+)$`)

// ParseImageURI splits a full image request URI on its fixed 5-segment
// tail, or returns nil when the tail does not match. The identifier soaks
// up everything ahead of the last four slashes, scheme and authority
// included, and quality/format split on the last dot, so degenerate inputs
// partition lossily. Both behaviors are part of the contract.
func ParseImageURI(uri string) *ParsedURI {
	m := imageURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return nil
	}
	return &ParsedURI{
		Identifier: m[1],
		Region:     m[2],
		Size:       m[3],
		Rotation:   m[4],
		Quality:    m[5],
		Format:     m[6],
	}
}

// EncodeIdentifier percent-escapes an identifier for use as a single path
// segment, slashes included.
func EncodeIdentifier(identifier string) string {
	return url.PathEscape(identifier)
}

// DecodeIdentifier reverses EncodeIdentifier.
func DecodeIdentifier(identifier string) (string, error) {
	return url.PathUnescape(identifier)
}

// formatNumber keeps integral values free of a trailing ".0" so that
// formatted segments reparse to the same value.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
