package telegram

import (
	"encoding/json"
	"net/http"
	"time"

	"matheo/internal/log"
)

// secretTokenHeader is set by Telegram on every webhook delivery when a
// secret was registered with setWebhook.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Server receives webhook deliveries and feeds them to the handler.
type Server struct {
	*http.Server
}

func NewServer(addr string, handler *Handler, secret string, logger *log.Logger) *Server {
	httpLogger := logger.WithComponent(log.ComponentHTTP)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", webhookEndpoint(handler, secret))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		Server: &http.Server{
			Addr:           addr,
			Handler:        log.Middleware(httpLogger)(mux),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
	}
}

func webhookEndpoint(handler *Handler, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		if secret != "" && r.Header.Get(secretTokenHeader) != secret {
			logger.WarnContext(r.Context(), "Webhook request with bad secret token",
				log.FieldClientIP, r.RemoteAddr)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var update Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			logger.WarnContext(r.Context(), "Failed to decode update", log.FieldError, err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		handler.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	}
}
