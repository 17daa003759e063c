package iiif

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang/groupcache"
	"github.com/gorilla/mux"
)

// error messages
var scaleFactorError = "`scaleFactor` argument is not recognized: %#v"
var scaleFactorMissing = "this image does not offer scale factor %#v"

// IndexHandler lists the catalog with a pointer to each info.json.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	config, _ := r.Context().Value(ContextKey("config")).(*Config)

	type entry struct {
		Identifier string `json:"identifier"`
		Info       string `json:"info"`
	}

	entries := make([]entry, 0, len(config.Images))
	for _, image := range config.Images {
		base := serviceBase(r, image.Identifier)
		entries = append(entries, entry{image.Identifier, BuildInfoURI(base)})
	}

	buffer, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		http.Error(w, "Cannot create index", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(buffer)
}

// RedirectHandler sends the bare identifier to its info.json.
func RedirectHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	identifier, err := DecodeIdentifier(vars["identifier"])
	if err != nil {
		log.Printf("Identifier is frob %#v", vars["identifier"])
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, BuildInfoURI(serviceBase(r, identifier)), http.StatusSeeOther)
}

// InfoHandler responds with the image technical properties.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	identifier, err := DecodeIdentifier(vars["identifier"])
	if err != nil {
		log.Printf("Identifier is frob %#v", vars["identifier"])
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	config, _ := ctx.Value(ContextKey("config")).(*Config)
	infos, _ := ctx.Value(ContextKey("infos")).(*groupcache.Group)

	entry := config.Lookup(identifier)
	if entry == nil {
		http.NotFound(w, r)
		return
	}

	id := serviceBase(r, identifier)

	var buffer []byte
	if infos != nil {
		gctx := struct {
			entry *ImageConfig
			id    string
		}{entry, id}
		err = infos.Get(gctx, BuildInfoURI(id), groupcache.AllocatingByteSliceSink(&buffer))
	} else {
		buffer, err = marshalInfo(entry, id)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	header := w.Header()

	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/ld+json") {
		header.Set("Content-Type", "application/ld+json")
	} else {
		header.Set("Content-Type", "application/json")
	}
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
	header.Set("ETag", getETag(r.URL.String()))
	header.Set("Cache-Control", fmt.Sprintf("max-age=%v, public", config.Cache.HTTP))
	w.Write(buffer)
}

// RequestHandler answers an image request URL with the parsed request and
// its canonical URI rather than pixels.
func RequestHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	identifier, err := DecodeIdentifier(vars["identifier"])
	if err != nil {
		log.Printf("Identifier is frob %#v", vars["identifier"])
		http.NotFound(w, r)
		return
	}

	config, _ := r.Context().Value(ContextKey("config")).(*Config)

	entry := config.Lookup(identifier)
	if entry == nil {
		http.NotFound(w, r)
		return
	}

	id := serviceBase(r, identifier)

	info, err := infoForEntry(entry, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	parsed, err := ValidateImageRequest(ImageRequest{
		Region:   vars["region"],
		Size:     vars["size"],
		Rotation: vars["rotation"],
		Quality:  vars["quality"],
		Format:   vars["format"],
	}, CapabilitiesForInfo(info))
	if err != nil {
		if e, ok := err.(*Error); ok {
			http.Error(w, e.Error(), e.StatusCode())
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	canonical := ImageRequest{
		Region:   parsed.Region.String(),
		Size:     parsed.Size.String(),
		Rotation: parsed.Rotation.String(),
		Quality:  parsed.Quality,
		Format:   parsed.Format,
	}
	mimeType, _ := MimeTypeForFormat(parsed.Format)

	p := struct {
		Identifier string       `json:"identifier"`
		Canonical  string       `json:"canonical"`
		Request    ImageRequest `json:"request"`
		MimeType   string       `json:"mimeType,omitempty"`
	}{identifier, BuildImageURI(id, canonical), canonical, mimeType}

	buffer, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		http.Error(w, "Cannot create response", http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("ETag", getETag(r.URL.String()))
	w.Write(buffer)
}

// TilesHandler enumerates the tile grid of one scale factor.
func TilesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	identifier, err := DecodeIdentifier(vars["identifier"])
	if err != nil {
		log.Printf("Identifier is frob %#v", vars["identifier"])
		http.NotFound(w, r)
		return
	}

	config, _ := r.Context().Value(ContextKey("config")).(*Config)

	entry := config.Lookup(identifier)
	if entry == nil {
		http.NotFound(w, r)
		return
	}

	scaleFactor, err := strconv.Atoi(vars["scaleFactor"])
	if err != nil || scaleFactor <= 0 {
		http.Error(w, fmt.Sprintf(scaleFactorError, vars["scaleFactor"]), http.StatusBadRequest)
		return
	}

	tile := GenerateStandardTiles(entry.TileWidth, entry.ScaleFactors)[0]
	if !containsInt(tile.ScaleFactors, scaleFactor) {
		http.Error(w, fmt.Sprintf(scaleFactorMissing, scaleFactor), http.StatusBadRequest)
		return
	}

	tileHeight := tile.Height
	if tileHeight == 0 {
		tileHeight = tile.Width
	}

	id := serviceBase(r, identifier)
	columns, rows := CalculateTileCount(entry.Width, entry.Height, tile.Width, tileHeight, scaleFactor)

	p := struct {
		Identifier  string   `json:"identifier"`
		ScaleFactor int      `json:"scaleFactor"`
		Columns     int      `json:"columns"`
		Rows        int      `json:"rows"`
		Tiles       []string `json:"tiles"`
	}{
		identifier,
		scaleFactor,
		columns,
		rows,
		AllTileURIs(id, entry.Width, entry.Height, tile.Width, tileHeight, scaleFactor),
	}

	buffer, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		http.Error(w, "Cannot create tile list", http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("ETag", getETag(r.URL.String()))
	w.Write(buffer)
}

func infoForEntry(entry *ImageConfig, id string) (*ImageServiceInfo, error) {
	profile := entry.Profile
	if profile == "" {
		profile = Level2
	}

	info, err := GenerateInfo(id, entry.Width, entry.Height, profile, nil)
	if err != nil {
		return nil, err
	}

	info.ExtraFeatures = entry.ExtraFeatures
	info.ExtraFormats = entry.ExtraFormats
	info.ExtraQualities = entry.ExtraQualities
	info.Rights = entry.Rights
	if len(entry.SizeWidths) > 0 {
		info.Sizes = GenerateStandardSizes(entry.Width, entry.Height, entry.SizeWidths)
	}
	info.Tiles = GenerateStandardTiles(entry.TileWidth, entry.ScaleFactors)

	return info, nil
}

func marshalInfo(entry *ImageConfig, id string) ([]byte, error) {
	info, err := infoForEntry(entry, id)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}

// serviceBase rebuilds the public base URI of one image from the request.
func serviceBase(r *http.Request, identifier string) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	if r.Header.Get("X-Forwarded-Proto") != "" {
		scheme = r.Header.Get("X-Forwarded-Proto")
	}

	host := r.Host
	if r.Header.Get("X-Forwarded-Host") != "" {
		host = r.Header.Get("X-Forwarded-Host")
	}

	return fmt.Sprintf("%s://%s/%s", scheme, host, EncodeIdentifier(identifier))
}

func getETag(str string) string {
	return fmt.Sprintf("\"%x\"", sha1.Sum([]byte(str)))
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
