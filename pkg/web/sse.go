package web

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/marcusbikes/storefront/pkg/logging"
	"github.com/marcusbikes/storefront/pkg/pubsub"
)

func (s *Server) handleSubscribeCatalogStatus(w http.ResponseWriter, r *http.Request) {
	s.streamTopic(w, r, pubsub.TopicCatalogStatus)
}

func (s *Server) handleSubscribeSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := s.sessions.get(id); !ok {
		writeError(w, http.StatusNotFound, "no such session")
		return
	}
	s.streamTopic(w, r, pubsub.SessionTopic(id))
}

// streamTopic subscribes the client to a topic and streams events as SSE
// until the client disconnects.
func (s *Server) streamTopic(w http.ResponseWriter, r *http.Request, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sub, err := s.publisher.Subscribe(r.Context(), topic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}
	defer sub.Close()

	logging.DebugContext(r.Context(), "sse subscriber connected", "topic", topic)

	// Initial comment so the client knows the stream is live
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.DebugContext(r.Context(), "sse write failed", "topic", topic, "error", err)
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			logging.DebugContext(r.Context(), "sse subscriber disconnected", "topic", topic)
			return
		}
	}
}
