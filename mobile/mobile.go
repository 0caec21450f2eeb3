package mobile

import (
	"log"
	"net/http"

	httpserver "dropchess/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// strictTurns: whether new rooms enforce alternating turns
func StartServer(webDir string, port string, strictTurns bool) {
	srv := httpserver.NewServer(webDir, httpserver.Options{StrictTurns: strictTurns})

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
