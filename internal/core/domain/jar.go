package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// JarType identifies one of the six budget jars.
type JarType string

const (
	JarNecessities JarType = "NEC"  // daily necessities
	JarLongTerm    JarType = "LTS"  // long-term savings
	JarEducation   JarType = "EDU"  // education
	JarPlay        JarType = "PLAY" // leisure
	JarFinancial   JarType = "FFA"  // financial freedom / investment
	JarGive        JarType = "GIVE" // giving
)

// AutoJarLabel is how an unset jar is rendered to clients and in exports.
const AutoJarLabel = "AUTO"

// AllJars lists the jars in their canonical order.
var AllJars = []JarType{JarNecessities, JarLongTerm, JarEducation, JarPlay, JarFinancial, JarGive}

// IsValid reports whether j is one of the six jars.
func (j JarType) IsValid() bool {
	for _, jar := range AllJars {
		if jar == j {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to a copy of j.
func (j JarType) Ptr() *JarType {
	return &j
}

// ParseJarTarget parses a client-supplied jar. An empty string or "AUTO" yields nil,
// meaning the amount is distributed across all jars.
func ParseJarTarget(s string) (*JarType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == AutoJarLabel {
		return nil, nil
	}
	j := JarType(s)
	if !j.IsValid() {
		return nil, fmt.Errorf("unknown jar %q", s)
	}
	return &j, nil
}

// JarLabel renders an optional jar, using AutoJarLabel for nil.
func JarLabel(j *JarType) string {
	if j == nil {
		return AutoJarLabel
	}
	return string(*j)
}

// JarRatios maps each jar to its share of an AUTO amount. The six shares sum to 1.
type JarRatios map[JarType]decimal.Decimal

// DefaultJarRatios returns the standard 55/10/10/10/10/5 split.
func DefaultJarRatios() JarRatios {
	return JarRatios{
		JarNecessities: decimal.RequireFromString("0.55"),
		JarLongTerm:    decimal.RequireFromString("0.10"),
		JarEducation:   decimal.RequireFromString("0.10"),
		JarPlay:        decimal.RequireFromString("0.10"),
		JarFinancial:   decimal.RequireFromString("0.10"),
		JarGive:        decimal.RequireFromString("0.05"),
	}
}

// Get returns the ratio for jar, or zero when missing.
func (r JarRatios) Get(jar JarType) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return r[jar]
}

// Sum returns the total of all six ratios.
func (r JarRatios) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, jar := range AllJars {
		sum = sum.Add(r.Get(jar))
	}
	return sum
}

// Clone returns an independent copy.
func (r JarRatios) Clone() JarRatios {
	if r == nil {
		return nil
	}
	out := make(JarRatios, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Validate checks every jar is present with a share in [0,1] and the shares sum to exactly 1.
func (r JarRatios) Validate() error {
	one := decimal.NewFromInt(1)
	for _, jar := range AllJars {
		v, ok := r[jar]
		if !ok {
			return fmt.Errorf("ratio for jar %s is missing", jar)
		}
		if v.IsNegative() || v.GreaterThan(one) {
			return fmt.Errorf("ratio for jar %s must be between 0 and 1, got %s", jar, v.String())
		}
	}
	for jar := range r {
		if !jar.IsValid() {
			return fmt.Errorf("unknown jar %q in ratios", jar)
		}
	}
	if sum := r.Sum(); !sum.Equal(one) {
		return fmt.Errorf("ratios must sum to 1, got %s", sum.String())
	}
	return nil
}

// JarBalance holds the running balance of every jar in the base currency.
type JarBalance map[JarType]decimal.Decimal

// NewJarBalance returns a balance vector with every jar at zero.
func NewJarBalance() JarBalance {
	b := make(JarBalance, len(AllJars))
	for _, jar := range AllJars {
		b[jar] = decimal.Zero
	}
	return b
}

// Get returns the balance of jar, or zero when missing.
func (b JarBalance) Get(jar JarType) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return b[jar]
}

// Total sums all six jars.
func (b JarBalance) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, jar := range AllJars {
		sum = sum.Add(b.Get(jar))
	}
	return sum
}

// Clone returns an independent copy with every jar present.
func (b JarBalance) Clone() JarBalance {
	out := NewJarBalance()
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Equal reports whether both vectors hold the same amount for every jar.
func (b JarBalance) Equal(other JarBalance) bool {
	for _, jar := range AllJars {
		if !b.Get(jar).Equal(other.Get(jar)) {
			return false
		}
	}
	return true
}
