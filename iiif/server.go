package iiif

import (
	"net/http"

	"github.com/golang/groupcache"
	"github.com/gorilla/mux"

	d "github.com/tj/go-debug"
)

var debug = d.Debug("iiif")

// MakeRouter construct the basic router (no middlewares)
func MakeRouter() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", IndexHandler)
	router.HandleFunc("/{identifier:.*}/info.json", InfoHandler)
	router.HandleFunc("/{identifier:.*}/tiles/{scaleFactor}.json", TilesHandler)
	router.HandleFunc("/{identifier:.*}/{region}/{size}/{rotation}/{quality}.{format}", RequestHandler)
	router.HandleFunc("/{identifier:.*}", RedirectHandler)

	return router
}

// SetGroupCache sets the cache holding the serialized info documents.
func SetGroupCache(router http.Handler, config *Config, peers ...string) http.Handler {
	pool := groupcache.NewHTTPPool(peers[0])
	pool.Set(peers...)

	var infos = groupcache.NewGroup("infos", config.Cache.InfosSize, groupcache.GetterFunc(
		func(ctx groupcache.Context, key string, dest groupcache.Sink) error {
			c := ctx.(struct {
				entry *ImageConfig
				id    string
			})
			buffer, err := marshalInfo(c.entry, c.id)
			if err != nil {
				return err
			}

			debug("Caching %s", key)

			dest.SetBytes(buffer)
			return nil
		},
	))

	return WithGroupCaches(router, map[string]*groupcache.Group{
		"infos": infos,
	})
}
