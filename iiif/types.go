package iiif

// Config stores the IIIF service configuration.
type Config struct {
	Host   string        `toml:"host"`
	Port   int           `toml:"port"`
	Images []ImageConfig `toml:"images"`
	Cache  CacheConfig   `toml:"cache"`
}

// ImageConfig declares one image of the catalog. The service never opens
// pixels, so the dimensions live here.
type ImageConfig struct {
	Identifier     string   `toml:"identifier"`
	Width          int      `toml:"width"`
	Height         int      `toml:"height"`
	Profile        string   `toml:"profile"`
	ExtraFeatures  []string `toml:"extraFeatures"`
	ExtraFormats   []string `toml:"extraFormats"`
	ExtraQualities []string `toml:"extraQualities"`
	Rights         string   `toml:"rights"`
	TileWidth      int      `toml:"tileWidth"`
	ScaleFactors   []int    `toml:"scaleFactors"`
	SizeWidths     []int    `toml:"sizeWidths"`
}

// CacheConfig represents the configuration information regarding the cache.
type CacheConfig struct {
	HTTP      int64  `toml:"http"`
	Infos     string `toml:"infos"`
	InfosSize int64
}

// Lookup finds a catalog entry by identifier.
func (c *Config) Lookup(identifier string) *ImageConfig {
	for i := range c.Images {
		if c.Images[i].Identifier == identifier {
			return &c.Images[i]
		}
	}
	return nil
}
