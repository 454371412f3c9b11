package auth_test

import (
	"testing"

	"github.com/frahmantamala/gym-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

var _ = Describe("Role Permissions", func() {
	Describe("HasPermission", func() {
		It("grants front office read and write on member resources", func() {
			Expect(auth.HasPermission(auth.RoleFrontOffice, "members:read")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleFrontOffice, "members:write")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleFrontOffice, "member_transactions:write")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleFrontOffice, "member_absences:write")).To(BeTrue())
		})

		It("denies front office everything outside member resources", func() {
			Expect(auth.HasPermission(auth.RoleFrontOffice, "company_transactions:read")).To(BeFalse())
			Expect(auth.HasPermission(auth.RoleFrontOffice, "campaigns:read")).To(BeFalse())
			Expect(auth.HasPermission(auth.RoleFrontOffice, "analytics:read")).To(BeFalse())
			Expect(auth.HasPermission(auth.RoleFrontOffice, "activity_logs:read")).To(BeFalse())
		})

		It("limits accounting to company transactions", func() {
			Expect(auth.HasPermission(auth.RoleAccounting, "company_transactions:read")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleAccounting, "company_transactions:write")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleAccounting, "members:read")).To(BeFalse())
			Expect(auth.HasPermission(auth.RoleAccounting, "campaigns:write")).To(BeFalse())
		})

		It("limits marketing to campaigns and campaign logs", func() {
			Expect(auth.HasPermission(auth.RoleMarketing, "campaigns:write")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleMarketing, "campaign_logs:write")).To(BeTrue())
			Expect(auth.HasPermission(auth.RoleMarketing, "members:read")).To(BeFalse())
			Expect(auth.HasPermission(auth.RoleMarketing, "company_transactions:read")).To(BeFalse())
		})

		It("gives supervisor read-only access to the operational resources", func() {
			for _, resource := range []string{
				auth.ResourceMembers, auth.ResourceMemberTransactions, auth.ResourceMemberAbsences,
				auth.ResourceCompanyTransactions, auth.ResourceCampaigns, auth.ResourceCampaignLogs,
			} {
				Expect(auth.CanRead(auth.RoleSupervisor, resource)).To(BeTrue(), "supervisor should read %s", resource)
				Expect(auth.CanWrite(auth.RoleSupervisor, resource)).To(BeFalse(), "supervisor should not write %s", resource)
			}
		})

		It("keeps analytics and activity logs exclusive to the owner", func() {
			for _, role := range auth.AllRoles() {
				expected := role == auth.RoleOwner
				Expect(auth.CanRead(role, auth.ResourceAnalytics)).To(Equal(expected), "role %s", role)
				Expect(auth.CanRead(role, auth.ResourceActivityLogs)).To(Equal(expected), "role %s", role)
			}
		})

		It("grants the owner a strict superset of every other role", func() {
			for _, role := range auth.AllRoles() {
				for _, perm := range auth.PermissionsForRole(role) {
					Expect(auth.HasPermission(auth.RoleOwner, perm)).To(BeTrue(),
						"owner missing %s held by %s", perm, role)
				}
			}
		})

		It("returns false for unknown roles and permissions instead of panicking", func() {
			Expect(auth.HasPermission("JANITOR", "members:read")).To(BeFalse())
			Expect(auth.HasPermission(auth.RoleOwner, "members:delete")).To(BeFalse())
			Expect(auth.HasPermission("", "")).To(BeFalse())
		})

		It("does not treat write as implying read", func() {
			Expect(auth.HasPermission(auth.RoleAccounting, "company_transactions:write")).To(BeTrue())
			// read is granted separately, not derived
			Expect(auth.PermissionsForRole(auth.RoleAccounting)).To(ContainElement(auth.Permission("company_transactions:read")))
		})
	})

	Describe("ValidRole", func() {
		It("accepts the five known roles", func() {
			for _, role := range auth.AllRoles() {
				Expect(auth.ValidRole(role)).To(BeTrue())
			}
		})

		It("rejects anything else", func() {
			Expect(auth.ValidRole("ADMIN")).To(BeFalse())
			Expect(auth.ValidRole("")).To(BeFalse())
		})
	})

	Describe("PermissionsForRole", func() {
		It("returns a copy that cannot mutate the table", func() {
			perms := auth.PermissionsForRole(auth.RoleAccounting)
			perms[0] = "members:write"
			Expect(auth.HasPermission(auth.RoleAccounting, "members:write")).To(BeFalse())
		})
	})
})
