package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"smarteventparser/internal/catalog"
	"smarteventparser/internal/http-server/handlers"
	"smarteventparser/internal/http-server/middleware"
)

type Server struct {
	log *slog.Logger
	mux *http.ServeMux
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{log: log, mux: http.NewServeMux()}
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = middleware.WithRequestID(h)
	h = middleware.RecoverPanic(s.log, h)
	h = middleware.AccessLog(s.log, h)
	return h
}

type Deps struct {
	Fetcher         catalog.Fetcher
	DefaultChannel  string
	DefaultLanguage string
	Timeout         time.Duration
}

func (s *Server) RegisterRoutes(dep Deps) {
	opts := handlers.Options{
		Log:             s.log,
		Fetcher:         dep.Fetcher,
		DefaultChannel:  dep.DefaultChannel,
		DefaultLanguage: dep.DefaultLanguage,
		Timeout:         dep.Timeout,
	}

	s.mux.HandleFunc("/events", handlers.NewEventsHandler(opts))
	s.mux.HandleFunc("/channels", handlers.NewChannelsHandler(opts))
	s.mux.HandleFunc("/cities", handlers.NewCitiesHandler(opts))
	s.mux.HandleFunc("/dates", handlers.NewDatesHandler(opts))
}
