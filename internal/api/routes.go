package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bft-labs/i2p/internal/command"
	"github.com/bft-labs/i2p/internal/domain"
	"github.com/bft-labs/i2p/pkg/log"
)

// maxCommandBody bounds POST /v1/commands bodies.
const maxCommandBody = 4 << 10

// PacketResponse is a single lookup result.
type PacketResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bound string `json:"bound"`
}

// EntryResponse is one row of a listing.
type EntryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListingResponse holds both directions in insertion order.
type ListingResponse struct {
	ServerBound []EntryResponse `json:"serverBound"`
	ClientBound []EntryResponse `json:"clientBound"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes holds the handler dependencies.
type Routes struct {
	service    PacketService
	dispatcher *command.Dispatcher
	logger     log.Logger
}

// Router creates the /v1 routes. d may be nil, in which case the command
// endpoint is not registered.
func Router(svc PacketService, d *command.Dispatcher, logger log.Logger) http.Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	rr := &Routes{service: svc, dispatcher: d, logger: logger}

	r := chi.NewRouter()
	r.Route("/packets", func(r chi.Router) {
		r.Get("/", rr.listPackets)
		r.Get("/{bound}/{id}", rr.getPacket)
	})
	if d != nil {
		r.Post("/commands", rr.runCommand)
	}
	return r
}

// HealthRouter serves liveness and readiness probes.
func HealthRouter(svc PacketService) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", healthHandler)
	r.Get("/readyz", readinessHandler(svc))

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func readinessHandler(svc PacketService) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !svc.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"packet registry not ready"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

func (rr *Routes) listPackets(w http.ResponseWriter, _ *http.Request) {
	if !rr.service.Ready() {
		rr.writeError(w, command.MsgNotReady, http.StatusServiceUnavailable)
		return
	}
	l := rr.service.ListAll()
	rr.writeJSON(w, http.StatusOK, ListingResponse{
		ServerBound: toEntries(l.ServerBound),
		ClientBound: toEntries(l.ClientBound),
	})
}

func (rr *Routes) getPacket(w http.ResponseWriter, r *http.Request) {
	res, err := rr.service.LookupPacket(chi.URLParam(r, "bound"), chi.URLParam(r, "id"))
	if err != nil {
		rr.writeError(w, command.UserMessage(err), statusFor(err))
		return
	}
	rr.writeJSON(w, http.StatusOK, PacketResponse{
		ID:    res.ID,
		Name:  res.Name,
		Bound: res.Direction.String(),
	})
}

func (rr *Routes) runCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBody+1))
	if err != nil {
		rr.writeError(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) > maxCommandBody {
		rr.writeError(w, "command too long", http.StatusRequestEntityTooLarge)
		return
	}

	reply, ok := rr.dispatcher.Handle(r.Context(), string(body))
	if !ok {
		rr.writeError(w, "not a command, prefix with "+rr.dispatcher.Prefix(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	status := http.StatusOK
	if reply.Error {
		status = http.StatusUnprocessableEntity
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply.Text)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidIDFormat), errors.Is(err, domain.ErrUnknownDirection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPacketNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toEntries(in []domain.Entry) []EntryResponse {
	out := make([]EntryResponse, len(in))
	for i, e := range in {
		out[i] = EntryResponse{ID: e.ID, Name: e.Name}
	}
	return out
}

func (rr *Routes) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		rr.logger.Error("failed to encode JSON response", log.Err(err))
	}
}

func (rr *Routes) writeError(w http.ResponseWriter, message string, status int) {
	rr.writeJSON(w, status, ErrorResponse{Error: message})
}
