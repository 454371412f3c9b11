package member_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/gym-management/internal"
	"github.com/frahmantamala/gym-management/internal/auth"
	"github.com/frahmantamala/gym-management/internal/member"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockService answers the handler without touching a database.
type mockService struct {
	members map[string]*member.Member
	err     error
}

func newMockService() *mockService {
	return &mockService{members: make(map[string]*member.Member)}
}

func (m *mockService) ListMembers(activeOnly bool) ([]*member.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*member.Member
	for _, mem := range m.members {
		if activeOnly && !mem.IsActive {
			continue
		}
		out = append(out, mem)
	}
	return out, nil
}

func (m *mockService) GetMember(id string) (*member.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	mem, ok := m.members[id]
	if !ok {
		return nil, internal.ErrMemberNotFound
	}
	return mem, nil
}

func (m *mockService) CreateMember(_ context.Context, _ *auth.Session, dto member.CreateMemberDTO) (*member.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}
	mem := &member.Member{ID: "new-id", MemberCode: "MEM250001", Name: dto.Name, IsActive: true}
	m.members[mem.ID] = mem
	return mem, nil
}

func (m *mockService) UpdateMember(_ context.Context, _ *auth.Session, id string, dto member.UpdateMemberDTO) (*member.Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, internal.ErrMemberNotFound
	}
	if dto.Name != nil {
		mem.Name = *dto.Name
	}
	return mem, nil
}

func (m *mockService) DeleteMember(_ context.Context, _ *auth.Session, id string) error {
	if _, ok := m.members[id]; !ok {
		return internal.ErrMemberNotFound
	}
	delete(m.members, id)
	return nil
}

var _ = Describe("Member Handler", func() {
	var (
		svc     *mockService
		router  *chi.Mux
		session *auth.Session
	)

	BeforeEach(func() {
		svc = newMockService()
		handler := member.NewHandler(svc)

		router = chi.NewRouter()
		router.Get("/members", handler.ListMembers)
		router.Get("/members/{id}", handler.GetMember)
		router.Post("/members", handler.CreateMember)
		router.Put("/members/{id}", handler.UpdateMember)
		router.Delete("/members/{id}", handler.DeleteMember)

		session = &auth.Session{UserID: "staff-1", Role: auth.RoleFrontOffice}
	})

	do := func(method, path string, body []byte, withSession bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		if withSession {
			req = req.WithContext(auth.ContextWithSession(req.Context(), session))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("POST /members", func() {
		It("creates a member and returns 201", func() {
			rec := do(http.MethodPost, "/members", []byte(`{"name": "John Doe"}`), true)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var got member.Member
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.Name).To(Equal("John Doe"))
			Expect(got.MemberCode).To(Equal("MEM250001"))
		})

		It("returns 401 without a session", func() {
			rec := do(http.MethodPost, "/members", []byte(`{"name": "John Doe"}`), false)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 400 on a malformed body", func() {
			rec := do(http.MethodPost, "/members", []byte(`{`), true)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 422 on a validation failure", func() {
			rec := do(http.MethodPost, "/members", []byte(`{}`), true)
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("GET /members/{id}", func() {
		It("returns the member", func() {
			svc.members["m-1"] = &member.Member{ID: "m-1", Name: "Jane", IsActive: true}

			rec := do(http.MethodGet, "/members/m-1", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Jane"))
		})

		It("returns 404 for an unknown id", func() {
			rec := do(http.MethodGet, "/members/nope", nil, true)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /members", func() {
		It("lists members, honoring the active filter", func() {
			svc.members["m-1"] = &member.Member{ID: "m-1", Name: "Jane", IsActive: true}
			svc.members["m-2"] = &member.Member{ID: "m-2", Name: "Gone", IsActive: false}

			rec := do(http.MethodGet, "/members?active=true", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var got []member.Member
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Name).To(Equal("Jane"))
		})
	})

	Describe("DELETE /members/{id}", func() {
		It("deletes and reports success", func() {
			svc.members["m-1"] = &member.Member{ID: "m-1", Name: "Jane"}

			rec := do(http.MethodDelete, "/members/m-1", nil, true)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("true"))
			Expect(svc.members).NotTo(HaveKey("m-1"))
		})

		It("returns 401 without a session", func() {
			rec := do(http.MethodDelete, "/members/m-1", nil, false)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
