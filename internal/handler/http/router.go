package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/vitilevu-hr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/vitilevu-hr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	env string,
	JWTService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	timesheetHandler TimesheetHandler,
	wageHandler WageHandler,
	approvalHandler ApprovalHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// External approval link: token possession only, no JWT.
		r.Route("/approvals/{token}", func(r chi.Router) {
			r.Get("/", approvalHandler.GetByToken)
			r.Post("/", approvalHandler.SetStatus)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Deactivate)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Put("/entries", timesheetHandler.SaveEntry)
				r.Get("/entries", timesheetHandler.GetEntry)
				r.Get("/week", timesheetHandler.GetWeek)
				r.Get("/weeks", timesheetHandler.ListWeeks)
			})

			r.Route("/wages", func(r chi.Router) {
				r.Get("/eligible-reviews", wageHandler.EligibleReviewPeriods)
				r.Get("/eligible-final", wageHandler.EligibleFinalWagePeriods)
				r.Get("/batches", wageHandler.ListBatches)
				r.Get("/batches/{approvalID}", wageHandler.GetBatch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/reviews", wageHandler.RequestReview)
					r.Post("/batches", wageHandler.RequestFinalWage)
					r.Put("/batches/{approvalID}/records", wageHandler.EditBatchRecords)
					r.Delete("/batches/{approvalID}", wageHandler.DeleteBatch)
				})
			})
		})
	})

	return r
}
