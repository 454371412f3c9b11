package codegen

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	MemberPrefix             = "MEM"
	TransactionPrefix        = "TRX"
	CompanyTransactionPrefix = "CTRX"
)

// Generator produces human-readable codes for members and transactions.
// The clock and random source are injectable for tests.
type Generator struct {
	now  func() time.Time
	rand func(n int) int
}

func New() *Generator {
	return &Generator{
		now:  time.Now,
		rand: rand.Intn,
	}
}

func NewWithClock(now func() time.Time, randInt func(int) int) *Generator {
	g := New()
	if now != nil {
		g.now = now
	}
	if randInt != nil {
		g.rand = randInt
	}
	return g
}

// MemberCodePrefix returns "MEM" plus the current two-digit year; member
// sequences restart every year under this prefix.
func (g *Generator) MemberCodePrefix() string {
	return MemberPrefix + g.now().Format("06")
}

// NextMemberCode builds the next member code from the highest existing code
// under the current year prefix. Pass "" when no member exists yet; the
// sequence starts at 0001.
//
// This is a read-then-write scheme: concurrent creations can race to the
// same number. Callers must rely on the unique constraint on member_code and
// retry once on violation.
func (g *Generator) NextMemberCode(lastCode string) string {
	prefix := g.MemberCodePrefix()

	next := 1
	if strings.HasPrefix(lastCode, prefix) && len(lastCode) == len(prefix)+4 {
		if n, err := strconv.Atoi(lastCode[len(prefix):]); err == nil {
			next = n + 1
		}
	}

	return fmt.Sprintf("%s%04d", prefix, next)
}

// TransactionCode builds "TRX" + last 8 digits of epoch millis + 3-digit
// random suffix. Not monotonic; collisions are unlikely but possible, so the
// same retry-on-unique-violation policy applies.
func (g *Generator) TransactionCode() string {
	return g.timestampCode(TransactionPrefix)
}

// CompanyTransactionCode is the "CTRX"-prefixed variant of TransactionCode.
func (g *Generator) CompanyTransactionCode() string {
	return g.timestampCode(CompanyTransactionPrefix)
}

func (g *Generator) timestampCode(prefix string) string {
	millis := strconv.FormatInt(g.now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("%s%s%03d", prefix, millis, g.rand(1000))
}

// IsDuplicate reports whether err is a unique-constraint violation. Covers
// gorm's translated error, postgres and sqlite message shapes.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
