package http

import (
	"net/http"

	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	appointmentHandler    *handler.AppointmentHandler
	serviceHandler        *handler.ServiceHandler
	officeHandler         *handler.OfficeHandler
	clinicalRecordHandler *handler.ClinicalRecordHandler
	doctorHandler         *handler.DoctorHandler
	patientHandler        *handler.PatientHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	serviceHandler *handler.ServiceHandler,
	officeHandler *handler.OfficeHandler,
	clinicalRecordHandler *handler.ClinicalRecordHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		appointmentHandler:    appointmentHandler,
		serviceHandler:        serviceHandler,
		officeHandler:         officeHandler,
		clinicalRecordHandler: clinicalRecordHandler,
		doctorHandler:         doctorHandler,
		patientHandler:        patientHandler,
		auditLogHandler:       auditLogHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Service catalog (public reads)
	api.HandleFunc("/servicios", r.serviceHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/servicios/{id}", r.serviceHandler.GetByID).Methods(http.MethodGet)

	// Office directory (authenticated reads)
	consultorios := api.NewRoute().Subrouter()
	consultorios.Use(r.authMiddleware.Authenticate)
	consultorios.HandleFunc("/consultorios", r.officeHandler.List).Methods(http.MethodGet)
	consultorios.HandleFunc("/consultorios/{id}", r.officeHandler.GetByID).Methods(http.MethodGet)

	// Appointments (authenticated)
	citas := api.PathPrefix("/citas").Subrouter()
	citas.Use(r.authMiddleware.Authenticate)
	citas.Handle("", middleware.RequireRole(entity.RolePatient, entity.RoleAdmin)(
		http.HandlerFunc(r.appointmentHandler.Create))).Methods(http.MethodPost)
	citas.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	citas.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	citas.Handle("/{id}", middleware.RequireRole(entity.RolePatient, entity.RoleAdmin)(
		http.HandlerFunc(r.appointmentHandler.Update))).Methods(http.MethodPut)
	citas.HandleFunc("/{id}/cancelar", r.appointmentHandler.Cancel).Methods(http.MethodPatch)
	citas.Handle("/{id}", middleware.RequireAdmin(
		http.HandlerFunc(r.appointmentHandler.HardDelete))).Methods(http.MethodDelete)

	// Dentist directory (authenticated)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.List).Methods(http.MethodGet)

	// Patient directory (authenticated; listing restricted to staff, the
	// usecase scopes single-patient access)
	pacientes := api.PathPrefix("/pacientes").Subrouter()
	pacientes.Use(r.authMiddleware.Authenticate)
	pacientes.Handle("", middleware.RequireRole(entity.RoleDentist, entity.RoleAdmin)(
		http.HandlerFunc(r.patientHandler.List))).Methods(http.MethodGet)
	pacientes.HandleFunc("/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)
	pacientes.HandleFunc("/{id}", r.patientHandler.Update).Methods(http.MethodPut)

	// Clinical records (authenticated; writes restricted per route)
	historiales := api.PathPrefix("/historiales").Subrouter()
	historiales.Use(r.authMiddleware.Authenticate)
	historiales.Handle("", middleware.RequireRole(entity.RoleDentist, entity.RoleAdmin)(
		http.HandlerFunc(r.clinicalRecordHandler.Create))).Methods(http.MethodPost)
	historiales.HandleFunc("/paciente/{pacienteId}", r.clinicalRecordHandler.ListByPatient).Methods(http.MethodGet)
	historiales.HandleFunc("/paciente/{pacienteId}/pdf", r.clinicalRecordHandler.ExportPDF).Methods(http.MethodGet)
	historiales.HandleFunc("/{id}", r.clinicalRecordHandler.GetByID).Methods(http.MethodGet)
	historiales.Handle("/{id}", middleware.RequireRole(entity.RoleDentist, entity.RoleAdmin)(
		http.HandlerFunc(r.clinicalRecordHandler.Update))).Methods(http.MethodPut)
	historiales.Handle("/{id}", middleware.RequireAdmin(
		http.HandlerFunc(r.clinicalRecordHandler.Delete))).Methods(http.MethodDelete)
	historiales.Handle("/{id}/tratamientos", middleware.RequireRole(entity.RoleDentist, entity.RoleAdmin)(
		http.HandlerFunc(r.clinicalRecordHandler.AddTreatment))).Methods(http.MethodPost)

	// Catalog writes (admin)
	adminCatalog := api.NewRoute().Subrouter()
	adminCatalog.Use(r.authMiddleware.Authenticate)
	adminCatalog.Use(middleware.RequireAdmin)
	adminCatalog.HandleFunc("/servicios", r.serviceHandler.Create).Methods(http.MethodPost)
	adminCatalog.HandleFunc("/servicios/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	adminCatalog.HandleFunc("/servicios/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)
	adminCatalog.HandleFunc("/consultorios", r.officeHandler.Create).Methods(http.MethodPost)
	adminCatalog.HandleFunc("/consultorios/{id}", r.officeHandler.Update).Methods(http.MethodPut)
	adminCatalog.HandleFunc("/consultorios/{id}", r.officeHandler.Delete).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
