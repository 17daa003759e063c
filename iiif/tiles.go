package iiif

// TileRequest is one cell of the deep-zoom grid: the pixel region it
// covers and the scale factor dividing it down.
type TileRequest struct {
	X           int `json:"x"`
	Y           int `json:"y"`
	Width       int `json:"width"`
	Height      int `json:"height"`
	ScaleFactor int `json:"scaleFactor"`
}

// TargetWidth is the delivered width of the tile after scaling.
func (t TileRequest) TargetWidth() int {
	return ceilDiv(t.Width, t.ScaleFactor)
}

// TargetHeight is the delivered height of the tile after scaling.
func (t TileRequest) TargetHeight() int {
	return ceilDiv(t.Height, t.ScaleFactor)
}

// CalculateTileRequest computes the region covered by grid cell
// (tileX, tileY) at the given scale factor. Edge tiles are clipped to the
// image bounds and come out smaller.
func CalculateTileRequest(imageWidth, imageHeight, tileWidth, tileHeight, scaleFactor, tileX, tileY int) TileRequest {
	x := tileX * tileWidth * scaleFactor
	y := tileY * tileHeight * scaleFactor

	w := tileWidth * scaleFactor
	if x+w > imageWidth {
		w = imageWidth - x
	}

	h := tileHeight * scaleFactor
	if y+h > imageHeight {
		h = imageHeight - y
	}

	return TileRequest{X: x, Y: y, Width: w, Height: h, ScaleFactor: scaleFactor}
}

// CalculateTileCount returns the grid dimensions at one scale factor.
func CalculateTileCount(imageWidth, imageHeight, tileWidth, tileHeight, scaleFactor int) (columns, rows int) {
	columns = ceilDiv(imageWidth, tileWidth*scaleFactor)
	rows = ceilDiv(imageHeight, tileHeight*scaleFactor)
	return
}

// BuildTileURI renders one tile request as a canonical image request URI.
func BuildTileURI(base string, t TileRequest) string {
	region := Region{
		Kind: RegionPixels,
		X:    float64(t.X),
		Y:    float64(t.Y),
		W:    float64(t.Width),
		H:    float64(t.Height),
	}
	size := Size{
		Kind:   SizeWidthHeight,
		Width:  t.TargetWidth(),
		Height: t.TargetHeight(),
	}

	return BuildImageURI(base, ImageRequest{
		Region:   region.String(),
		Size:     size.String(),
		Rotation: "0",
		Quality:  "default",
		Format:   "jpg",
	})
}

// AllTileURIs enumerates the whole grid of one scale factor in row-major
// order.
func AllTileURIs(base string, imageWidth, imageHeight, tileWidth, tileHeight, scaleFactor int) []string {
	columns, rows := CalculateTileCount(imageWidth, imageHeight, tileWidth, tileHeight, scaleFactor)

	uris := make([]string, 0, columns*rows)
	for tileY := 0; tileY < rows; tileY++ {
		for tileX := 0; tileX < columns; tileX++ {
			t := CalculateTileRequest(imageWidth, imageHeight, tileWidth, tileHeight, scaleFactor, tileX, tileY)
			uris = append(uris, BuildTileURI(base, t))
		}
	}
	return uris
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
