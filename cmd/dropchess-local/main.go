package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpserver "dropchess/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	// Headless machines have no browser to start.
	_ = cmd.Start()
}

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("DROPCHESS_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("DROPCHESS_WEB", "./web"), "directory with the static client")
	strict := flag.Bool("strict-turns", getenb("DROPCHESS_STRICT_TURNS", false), "new rooms enforce alternating turns")
	open := flag.Bool("open", getenb("DROPCHESS_OPEN", true), "open the default browser once listening")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpserver.NewServer(*webDir, httpserver.Options{StrictTurns: *strict}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s, serving static from %s (strict turns: %v)", *addr, *webDir, *strict)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if *open {
		go func() {
			// Give ListenAndServe a moment before the browser connects.
			time.Sleep(100 * time.Millisecond)
			openBrowser(localURL(*addr))
		}()
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://127.0.0.1" + addr
	}
	return "http://" + addr
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
