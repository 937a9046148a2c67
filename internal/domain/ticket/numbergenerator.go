package ticket

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
	"github.com/HIMU202508/TicketingSystem/internal/shared/sanitize"
)

// NumberGenerator produces ticket numbers for submissions that arrive without one.
type NumberGenerator interface {
	Generate(deviceType string, now time.Time) string
}

// DeviceDateNumberGenerator builds numbers as a two letter device prefix, the business
// date as YYYYMMDD and a three digit random suffix, e.g. LA20250114042.
type DeviceDateNumberGenerator struct {
	intn func(n int) int
}

func NewDeviceDateNumberGenerator() *DeviceDateNumberGenerator {
	return &DeviceDateNumberGenerator{intn: rand.IntN}
}

func (g *DeviceDateNumberGenerator) Generate(deviceType string, now time.Time) string {
	return fmt.Sprintf("%s%s%03d", devicePrefix(deviceType), biztime.DateStamp(now), g.intn(1000))
}

func devicePrefix(deviceType string) string {
	var b strings.Builder
	for _, r := range deviceType {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() >= 2 {
				break
			}
		}
	}
	prefix := sanitize.Upper(b.String())
	for len(prefix) < 2 {
		prefix += "X"
	}
	return prefix
}
