package auth_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/gym-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubSessionProvider struct {
	session *auth.Session
	err     error
}

func (p *stubSessionProvider) Resolve(_ *http.Request) (*auth.Session, error) {
	return p.session, p.err
}

var _ = Describe("Sessions", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	})

	Describe("StaticSessionProvider", func() {
		It("resolves the fixed demo owner identity", func() {
			provider := auth.NewStaticSessionProvider()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)

			session, err := provider.Resolve(req)

			Expect(err).NotTo(HaveOccurred())
			Expect(session.UserID).To(Equal("demo-owner-id"))
			Expect(session.Role).To(Equal(auth.RoleOwner))
		})

		It("hands out independent session copies", func() {
			provider := auth.NewStaticSessionProvider()

			first, _ := provider.Resolve(nil)
			first.Role = auth.RoleMarketing
			second, _ := provider.Resolve(nil)

			Expect(second.Role).To(Equal(auth.RoleOwner))
		})
	})

	Describe("SessionMiddleware", func() {
		var nextCalled bool
		var captured *auth.Session

		next := func() http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				captured, _ = auth.SessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
		}

		BeforeEach(func() {
			nextCalled = false
			captured = nil
		})

		It("stores the resolved session in the request context", func() {
			provider := &stubSessionProvider{session: &auth.Session{
				UserID: "user-1",
				Role:   auth.RoleSupervisor,
			}}
			handler := auth.SessionMiddleware(provider, logger)(next())
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(nextCalled).To(BeTrue())
			Expect(captured).NotTo(BeNil())
			Expect(captured.UserID).To(Equal("user-1"))
		})

		It("returns 401 when no session can be resolved", func() {
			provider := &stubSessionProvider{err: errors.New("invalid token")}
			handler := auth.SessionMiddleware(provider, logger)(next())
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/members", nil))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(nextCalled).To(BeFalse())
		})
	})

	Describe("RBACAuthorization", func() {
		newHandler := func(rbac *auth.RBACAuthorization, permission auth.Permission) http.Handler {
			return rbac.Require(permission)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
		}

		serve := func(handler http.Handler, session *auth.Session) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/company-transactions", nil)
			if session != nil {
				req = req.WithContext(auth.ContextWithSession(req.Context(), session))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec
		}

		It("allows a role that holds the permission", func() {
			rbac := auth.NewRBACAuthorization(logger)
			handler := newHandler(rbac, auth.ReadPermission(auth.ResourceCompanyTransactions))

			rec := serve(handler, &auth.Session{UserID: "u", Role: auth.RoleAccounting})

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("returns 403 for a role without the permission", func() {
			rbac := auth.NewRBACAuthorization(logger)
			handler := newHandler(rbac, auth.WritePermission(auth.ResourceCompanyTransactions))

			rec := serve(handler, &auth.Session{UserID: "u", Role: auth.RoleFrontOffice})

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 401 when the request carries no session", func() {
			rbac := auth.NewRBACAuthorization(logger)
			handler := newHandler(rbac, auth.ReadPermission(auth.ResourceMembers))

			rec := serve(handler, nil)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
