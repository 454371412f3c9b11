package codegen_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/frahmantamala/gym-management/internal/core/codegen"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestCodegen(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Codegen Suite")
}

var _ = Describe("Generator", func() {
	var gen *codegen.Generator

	// 2025-06-15 12:00:00 UTC, UnixMilli 1749988800000
	fixedNow := func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	fixedRand := func(n int) int { return 7 }

	BeforeEach(func() {
		gen = codegen.NewWithClock(fixedNow, fixedRand)
	})

	Describe("MemberCodePrefix", func() {
		It("combines MEM with the two-digit year", func() {
			Expect(gen.MemberCodePrefix()).To(Equal("MEM25"))
		})
	})

	Describe("NextMemberCode", func() {
		It("starts the sequence at 0001 when no member exists", func() {
			Expect(gen.NextMemberCode("")).To(Equal("MEM250001"))
		})

		It("increments the highest existing code", func() {
			Expect(gen.NextMemberCode("MEM250041")).To(Equal("MEM250042"))
		})

		It("pads the sequence to four digits", func() {
			Expect(gen.NextMemberCode("MEM250009")).To(Equal("MEM250010"))
		})

		It("restarts the sequence when the last code is from another year", func() {
			Expect(gen.NextMemberCode("MEM240117")).To(Equal("MEM250001"))
		})

		It("falls back to 0001 on malformed input", func() {
			Expect(gen.NextMemberCode("MEM25abcd")).To(Equal("MEM250001"))
			Expect(gen.NextMemberCode("bogus")).To(Equal("MEM250001"))
			Expect(gen.NextMemberCode("MEM2512345")).To(Equal("MEM250001"))
		})
	})

	Describe("TransactionCode", func() {
		It("builds the code from the last eight epoch millis digits and the random suffix", func() {
			millis := fmt.Sprintf("%d", fixedNow().UnixMilli())
			want := "TRX" + millis[len(millis)-8:] + "007"
			Expect(gen.TransactionCode()).To(Equal(want))
		})

		It("is deterministic under a fixed clock and random source", func() {
			Expect(gen.TransactionCode()).To(Equal(gen.TransactionCode()))
		})
	})

	Describe("CompanyTransactionCode", func() {
		It("uses the CTRX prefix with the same shape", func() {
			code := gen.CompanyTransactionCode()
			Expect(code).To(HavePrefix("CTRX"))
			Expect(code).To(HaveLen(len("CTRX") + 8 + 3))
		})
	})
})

var _ = Describe("IsDuplicate", func() {
	It("recognizes gorm's translated duplicate key error", func() {
		Expect(codegen.IsDuplicate(gorm.ErrDuplicatedKey)).To(BeTrue())
		Expect(codegen.IsDuplicate(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey))).To(BeTrue())
	})

	It("recognizes postgres and sqlite message shapes", func() {
		Expect(codegen.IsDuplicate(errors.New(`pq: duplicate key value violates unique constraint "idx_members_member_code"`))).To(BeTrue())
		Expect(codegen.IsDuplicate(errors.New("UNIQUE constraint failed: members.member_code"))).To(BeTrue())
	})

	It("ignores nil and unrelated errors", func() {
		Expect(codegen.IsDuplicate(nil)).To(BeFalse())
		Expect(codegen.IsDuplicate(errors.New("connection refused"))).To(BeFalse())
	})
})
