package thaitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	d := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 มกราคม 2569", Format(d))

	d = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31 ธันวาคม 2568", Format(d))
}

func TestFormatZero(t *testing.T) {
	assert.Equal(t, "-", Format(time.Time{}))
	assert.Equal(t, "-", FormatShort(time.Time{}))
}

func TestFormatShort(t *testing.T) {
	d := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02/01/2569", FormatShort(d))
}

func TestYear(t *testing.T) {
	assert.Equal(t, 2569, Year(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)))
}
