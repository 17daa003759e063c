package iiif

// The format tokens and media types the Image API 3.0 names.
var knownQualities = []string{"color", "gray", "bitonal", "default"}

var knownFormats = []string{"jpg", "tif", "png", "gif", "jp2", "pdf", "webp"}

var formatMimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"tif":  "image/tiff",
	"png":  "image/png",
	"gif":  "image/gif",
	"jp2":  "image/jp2",
	"pdf":  "application/pdf",
	"webp": "image/webp",
}

var mimeTypeFormats = map[string]string{
	"image/jpeg":      "jpg",
	"image/tiff":      "tif",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/jp2":       "jp2",
	"application/pdf": "pdf",
	"image/webp":      "webp",
}

// MimeTypeForFormat returns the media type of a format token.
func MimeTypeForFormat(format string) (string, bool) {
	mime, ok := formatMimeTypes[format]
	return mime, ok
}

// FormatForMimeType returns the format token of a media type.
func FormatForMimeType(mime string) (string, bool) {
	format, ok := mimeTypeFormats[mime]
	return format, ok
}
