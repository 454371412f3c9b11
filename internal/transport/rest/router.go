package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/gym-management/internal/absence"
	"github.com/frahmantamala/gym-management/internal/analytics"
	"github.com/frahmantamala/gym-management/internal/audit"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/campaign"
	"github.com/frahmantamala/gym-management/internal/campaignlog"
	"github.com/frahmantamala/gym-management/internal/companytx"
	"github.com/frahmantamala/gym-management/internal/member"
	"github.com/frahmantamala/gym-management/internal/transaction"
	"github.com/frahmantamala/gym-management/internal/transport/middleware"
	"github.com/frahmantamala/gym-management/internal/transport/swagger"
)

type Handlers struct {
	Auth        *auth.Handler
	Member      *member.Handler
	Transaction *transaction.Handler
	CompanyTx   *companytx.Handler
	Absence     *absence.Handler
	Campaign    *campaign.Handler
	CampaignLog *campaignlog.Handler
	Analytics   *analytics.Handler
	ActivityLog *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, sessions auth.SessionProvider, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRBACAuthorization(logger)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if handlers.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", handlers.Auth.Login)
				sr.Post("/refresh", handlers.Auth.RefreshToken)
				sr.Post("/logout", handlers.Auth.Logout)
			})
		}

		// Protected routes that require a resolved session
		r.Group(func(pr chi.Router) {
			pr.Use(auth.SessionMiddleware(sessions, logger))

			if handlers.Auth != nil {
				pr.Get("/users/me", handlers.Auth.GetCurrentUser)
			}

			if handlers.Member != nil {
				pr.Route("/members", func(mr chi.Router) {
					mr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRead(auth.ResourceMembers))
						rr.Get("/", handlers.Member.ListMembers)
						rr.Get("/{id}", handlers.Member.GetMember)
					})
					mr.Group(func(wr chi.Router) {
						wr.Use(rbac.RequireWrite(auth.ResourceMembers))
						wr.Post("/", handlers.Member.CreateMember)
						wr.Put("/{id}", handlers.Member.UpdateMember)
						wr.Delete("/{id}", handlers.Member.DeleteMember)
					})
				})
			}

			if handlers.Transaction != nil {
				pr.Route("/member-transactions", func(tr chi.Router) {
					tr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRead(auth.ResourceMemberTransactions))
						rr.Get("/", handlers.Transaction.ListTransactions)
						rr.Get("/{id}", handlers.Transaction.GetTransaction)
					})
					tr.Group(func(wr chi.Router) {
						wr.Use(rbac.RequireWrite(auth.ResourceMemberTransactions))
						wr.Post("/", handlers.Transaction.CreateTransaction)
						wr.Put("/{id}", handlers.Transaction.UpdateTransaction)
						wr.Patch("/{id}/mark-paid", handlers.Transaction.MarkPaid)
						wr.Delete("/{id}", handlers.Transaction.DeleteTransaction)
					})
				})
			}

			if handlers.CompanyTx != nil {
				pr.Route("/company-transactions", func(cr chi.Router) {
					cr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRead(auth.ResourceCompanyTransactions))
						rr.Get("/", handlers.CompanyTx.ListCompanyTransactions)
						rr.Get("/{id}", handlers.CompanyTx.GetCompanyTransaction)
					})
					cr.Group(func(wr chi.Router) {
						wr.Use(rbac.RequireWrite(auth.ResourceCompanyTransactions))
						wr.Post("/", handlers.CompanyTx.CreateCompanyTransaction)
						wr.Put("/{id}", handlers.CompanyTx.UpdateCompanyTransaction)
						wr.Delete("/{id}", handlers.CompanyTx.DeleteCompanyTransaction)
					})
				})
			}

			if handlers.Absence != nil {
				pr.Route("/member-absences", func(ar chi.Router) {
					ar.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRead(auth.ResourceMemberAbsences))
						rr.Get("/", handlers.Absence.ListAbsences)
						rr.Get("/{id}", handlers.Absence.GetAbsence)
					})
					ar.Group(func(wr chi.Router) {
						wr.Use(rbac.RequireWrite(auth.ResourceMemberAbsences))
						wr.Post("/", handlers.Absence.CreateAbsence)
						wr.Put("/{id}", handlers.Absence.UpdateAbsence)
						wr.Delete("/{id}", handlers.Absence.DeleteAbsence)
					})
				})
			}

			if handlers.Campaign != nil {
				pr.Route("/campaigns", func(cr chi.Router) {
					cr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRead(auth.ResourceCampaigns))
						rr.Get("/", handlers.Campaign.ListCampaigns)
						rr.Get("/{id}", handlers.Campaign.GetCampaign)
					})
					cr.Group(func(wr chi.Router) {
						wr.Use(rbac.RequireWrite(auth.ResourceCampaigns))
						wr.Post("/", handlers.Campaign.CreateCampaign)
						wr.Put("/{id}", handlers.Campaign.UpdateCampaign)
						wr.Delete("/{id}", handlers.Campaign.DeleteCampaign)
					})
				})
			}

			if handlers.CampaignLog != nil {
				pr.Route("/campaign-logs", func(lr chi.Router) {
					lr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRead(auth.ResourceCampaignLogs))
						rr.Get("/", handlers.CampaignLog.ListCampaignLogs)
						rr.Get("/{id}", handlers.CampaignLog.GetCampaignLog)
					})
					lr.Group(func(wr chi.Router) {
						wr.Use(rbac.RequireWrite(auth.ResourceCampaignLogs))
						wr.Post("/", handlers.CampaignLog.CreateCampaignLog)
						wr.Put("/{id}", handlers.CampaignLog.UpdateCampaignLog)
						wr.Delete("/{id}", handlers.CampaignLog.DeleteCampaignLog)
					})
				})
			}

			if handlers.Analytics != nil {
				pr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireRead(auth.ResourceAnalytics))
					ar.Get("/analytics", handlers.Analytics.GetAnalytics)
				})
				// Dashboard sections are filtered per role in the service.
				pr.Get("/dashboard/stats", handlers.Analytics.GetDashboardStats)
			}

			if handlers.ActivityLog != nil {
				pr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireRead(auth.ResourceActivityLogs))
					ar.Get("/activity-logs", handlers.ActivityLog.ListActivityLogs)
				})
			}
		})
	})
}
