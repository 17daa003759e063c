package iiif

import (
	"testing"
)

func TestBuildImageURI(t *testing.T) {
	uri := BuildImageURI("https://example.com/iiif/image1", ImageRequest{
		Region:   "full",
		Size:     "max",
		Rotation: "0",
		Quality:  "default",
		Format:   "jpg",
	})

	want := "https://example.com/iiif/image1/full/max/0/default.jpg"
	if uri != want {
		t.Errorf("BuildImageURI returned bad value: got %#v want %#v", uri, want)
	}

	// a trailing slash on the base folds away
	uri = BuildImageURI("https://example.com/iiif/image1/", ImageRequest{
		Region:   "square",
		Size:     "!400,300",
		Rotation: "!90",
		Quality:  "gray",
		Format:   "png",
	})

	want = "https://example.com/iiif/image1/square/!400,300/!90/gray.png"
	if uri != want {
		t.Errorf("BuildImageURI returned bad value: got %#v want %#v", uri, want)
	}
}

func TestBuildInfoURI(t *testing.T) {
	var tests = []struct {
		base string
		want string
	}{
		{"https://example.com/iiif/image1", "https://example.com/iiif/image1/info.json"},
		{"https://example.com/iiif/image1/", "https://example.com/iiif/image1/info.json"},
	}

	for _, test := range tests {
		if uri := BuildInfoURI(test.base); uri != test.want {
			t.Errorf("BuildInfoURI returned bad value: got %#v want %#v", uri, test.want)
		}
	}
}

func TestParseImageURI(t *testing.T) {
	uri := "https://example.com/iiif/image1/full/max/0/default.jpg"

	parsed := ParseImageURI(uri)
	if parsed == nil {
		t.Fatalf("%#v should parse", uri)
	}

	// The matcher only knows about the 5-segment tail: the scheme and the
	// host end up inside the identifier. Lossy, and pinned on purpose.
	if parsed.Identifier != "https://example.com/iiif/image1" {
		t.Errorf("identifier returned bad value: got %#v", parsed.Identifier)
	}
	if parsed.Region != "full" || parsed.Size != "max" || parsed.Rotation != "0" {
		t.Errorf("segments returned bad values: %+v", parsed)
	}
	if parsed.Quality != "default" || parsed.Format != "jpg" {
		t.Errorf("quality/format returned bad values: %+v", parsed)
	}
}

func TestParseImageURIDottedQuality(t *testing.T) {
	// quality and format split on the last dot, so a dotted token
	// mis-partitions. Also pinned on purpose.
	parsed := ParseImageURI("http://example.com/id/full/max/0/gray.v2.png")
	if parsed == nil {
		t.Fatal("dotted quality should still parse")
	}
	if parsed.Quality != "gray.v2" || parsed.Format != "png" {
		t.Errorf("quality/format partitioned badly: got %#v / %#v", parsed.Quality, parsed.Format)
	}

	// An info URI has enough segments to match too, with everything
	// shifted: the scheme becomes the identifier and info.json splits
	// into quality/format.
	parsed = ParseImageURI("https://example.com/iiif/image1/info.json")
	if parsed == nil {
		t.Fatal("the info URI happens to match the tail grammar")
	}
	if parsed.Identifier != "https:/" || parsed.Quality != "info" || parsed.Format != "json" {
		t.Errorf("info URI partitioned differently than pinned: %+v", parsed)
	}
}

func TestParseImageURINoMatch(t *testing.T) {
	var tests = []string{
		"",
		"nonsense",
		"https://example.com/iiif/image1/full/max/0",
		"full/max/0/default.jpg",
	}

	for _, uri := range tests {
		if parsed := ParseImageURI(uri); parsed != nil {
			t.Errorf("%#v should not parse, got %+v", uri, parsed)
		}
	}
}

func TestIdentifierEncoding(t *testing.T) {
	var tests = []struct {
		decoded string
		encoded string
	}{
		{"my image.jpg", "my%20image.jpg"},
		{"a/b/c.png", "a%2Fb%2Fc.png"},
		{"plain.tif", "plain.tif"},
	}

	for _, test := range tests {
		if encoded := EncodeIdentifier(test.decoded); encoded != test.encoded {
			t.Errorf("EncodeIdentifier(%#v) returned bad value: got %#v want %#v", test.decoded, encoded, test.encoded)
		}

		decoded, err := DecodeIdentifier(test.encoded)
		if err != nil {
			t.Errorf("DecodeIdentifier(%#v) failed: %v", test.encoded, err)
			continue
		}
		if decoded != test.decoded {
			t.Errorf("DecodeIdentifier(%#v) returned bad value: got %#v want %#v", test.encoded, decoded, test.decoded)
		}
	}
}

func TestMimeTypes(t *testing.T) {
	var tests = []struct {
		format string
		mime   string
	}{
		{"jpg", "image/jpeg"},
		{"png", "image/png"},
		{"tif", "image/tiff"},
		{"webp", "image/webp"},
		{"pdf", "application/pdf"},
	}

	for _, test := range tests {
		mime, ok := MimeTypeForFormat(test.format)
		if !ok || mime != test.mime {
			t.Errorf("MimeTypeForFormat(%#v): got %#v want %#v", test.format, mime, test.mime)
		}

		format, ok := FormatForMimeType(test.mime)
		if !ok || format != test.format {
			t.Errorf("FormatForMimeType(%#v): got %#v want %#v", test.mime, format, test.format)
		}
	}

	if _, ok := MimeTypeForFormat("svg"); ok {
		t.Errorf("svg should not have a media type")
	}
	if _, ok := FormatForMimeType("image/svg+xml"); ok {
		t.Errorf("image/svg+xml should not have a format token")
	}
}
