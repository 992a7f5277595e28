package houseprice

import (
	"io/fs"

	"github.com/goliatone/go-houseprice/pkg/renderers/vanilla"
)

// AssetsFS exposes the widget stylesheet so Go applications can serve it
// next to the rendered form.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(houseprice.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
