// Package status serves a read-only JSON status page.
package status

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/starshine-sys/sentinel/common"
	"github.com/starshine-sys/sentinel/db/stats"
)

// Source is where the status page gets its numbers from.
type Source interface {
	GuildCount() int
	CommandCount() int
	Totals() stats.Totals
}

// Status is the response to GET /status.
type Status struct {
	Version string `json:"version"`

	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	Guilds   int `json:"guilds"`
	Commands int `json:"commands"`

	Totals stats.Totals `json:"totals"`

	Memory     string `json:"memory"`
	Goroutines int    `json:"goroutines"`
}

type Server struct {
	Source Source
	Start  time.Time

	mux *chi.Mux
}

func New(src Source, start time.Time) *Server {
	s := &Server{
		Source: src,
		Start:  start,
		mux:    chi.NewMux(),
	}

	s.mux.Use(middleware.Recoverer)
	s.mux.Get("/status", s.status)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := time.Since(s.Start)

	render.JSON(w, r, Status{
		Version:       common.Version(),
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: uptime.Seconds(),
		Guilds:        s.Source.GuildCount(),
		Commands:      s.Source.CommandCount(),
		Totals:        s.Source.Totals(),
		Memory:        humanize.Bytes(mem.Alloc),
		Goroutines:    runtime.NumGoroutine(),
	})
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	common.Log.Infof("Status server listening on %v", addr)

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving status page")
	}
	return nil
}
