package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"roomalloc-service/internal/domain/entity"
	"roomalloc-service/internal/domain/repository"
	"roomalloc-service/internal/usecase"
	"roomalloc-service/pkg/logger"
	"roomalloc-service/pkg/metrics"
)

// Server exposes the allocation engine to the booking-lifecycle collaborator
// and to UI read endpoints. It owns no business rules; every handler loads
// the referenced records and delegates to the usecase layer.
type Server struct {
	bookingRepo repository.BookingRepository
	programRepo repository.ProgramRepository
	resolver    *usecase.FamilyResolver
	allocator   *usecase.RoomAllocator
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// NewServer creates a Server. metrics may be nil.
func NewServer(
	bookingRepo repository.BookingRepository,
	programRepo repository.ProgramRepository,
	resolver *usecase.FamilyResolver,
	allocator *usecase.RoomAllocator,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Server {
	return &Server{
		bookingRepo: bookingRepo,
		programRepo: programRepo,
		resolver:    resolver,
		allocator:   allocator,
		logger:      logger,
		metrics:     metrics,
	}
}

// Register attaches all allocation routes to the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/allocations/assign", s.handleAssign)
	mux.HandleFunc("POST /api/v1/allocations/remove-city", s.handleRemoveCity)
	mux.HandleFunc("POST /api/v1/allocations/remove-program", s.handleRemoveProgram)
	mux.HandleFunc("GET /api/v1/allocations/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/families", s.handleFamily)
}

type assignRequest struct {
	TenantID  string `json:"tenantId"`
	BookingID string `json:"bookingId"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TenantID == "" || req.BookingID == "" {
		s.respondError(w, http.StatusBadRequest, "tenantId and bookingId are required")
		return
	}

	booking, err := s.bookingRepo.FindByID(r.Context(), req.TenantID, req.BookingID)
	if err != nil {
		s.respondFailure(w, "assign", err)
		return
	}
	if err := s.allocator.Assign(r.Context(), req.TenantID, booking); err != nil {
		s.respondFailure(w, "assign", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

type removeCityRequest struct {
	TenantID    string   `json:"tenantId"`
	TripID      string   `json:"tripId"`
	City        string   `json:"city"`
	OccupantIDs []string `json:"occupantIds"`
}

func (s *Server) handleRemoveCity(w http.ResponseWriter, r *http.Request) {
	var req removeCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TenantID == "" || req.TripID == "" || req.City == "" {
		s.respondError(w, http.StatusBadRequest, "tenantId, tripId and city are required")
		return
	}

	program, err := s.programRepo.FindByID(r.Context(), req.TenantID, req.TripID)
	if err != nil {
		s.respondFailure(w, "remove-city", err)
		return
	}
	if err := s.allocator.RemoveFromCity(r.Context(), req.TenantID, program, req.City, req.OccupantIDs); err != nil {
		s.respondFailure(w, "remove-city", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type removeProgramRequest struct {
	TenantID   string `json:"tenantId"`
	TripID     string `json:"tripId"`
	OccupantID string `json:"occupantId"`
}

func (s *Server) handleRemoveProgram(w http.ResponseWriter, r *http.Request) {
	var req removeProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TenantID == "" || req.TripID == "" || req.OccupantID == "" {
		s.respondError(w, http.StatusBadRequest, "tenantId, tripId and occupantId are required")
		return
	}

	program, err := s.programRepo.FindByID(r.Context(), req.TenantID, req.TripID)
	if err != nil {
		s.respondFailure(w, "remove-program", err)
		return
	}
	if err := s.allocator.RemoveFromProgram(r.Context(), req.TenantID, program, req.OccupantID); err != nil {
		s.respondFailure(w, "remove-program", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenantId")
	tripID := r.URL.Query().Get("tripId")
	bookingID := r.URL.Query().Get("bookingId")
	if tenantID == "" || tripID == "" || bookingID == "" {
		s.respondError(w, http.StatusBadRequest, "tenantId, tripId and bookingId are required")
		return
	}

	booking, err := s.bookingRepo.FindByID(r.Context(), tenantID, bookingID)
	if err != nil {
		s.respondFailure(w, "status", err)
		return
	}
	program, err := s.programRepo.FindByID(r.Context(), tenantID, tripID)
	if err != nil {
		s.respondFailure(w, "status", err)
		return
	}
	full, err := s.allocator.IsFullyAssigned(r.Context(), tenantID, program, booking)
	if err != nil {
		s.respondFailure(w, "status", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"fullyAssigned": full})
}

func (s *Server) handleFamily(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenantId")
	bookingID := r.URL.Query().Get("bookingId")
	if tenantID == "" || bookingID == "" {
		s.respondError(w, http.StatusBadRequest, "tenantId and bookingId are required")
		return
	}

	family, err := s.resolver.Resolve(r.Context(), tenantID, bookingID)
	if err != nil {
		s.respondFailure(w, "family", err)
		return
	}
	if family == nil {
		family = []*entity.Booking{}
	}
	s.respondJSON(w, http.StatusOK, family)
}

func (s *Server) respondFailure(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, entity.ErrVersionConflict):
		// Concurrent writer won; the caller retries the whole pass.
		s.respondError(w, http.StatusConflict, "version conflict, retry")
	default:
		s.metrics.Error(operation)
		s.logger.Error("Request failed", "operation", operation, "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
