package models_test

import (
	"testing"

	"palette_api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestRegionFromTimezone(t *testing.T) {
	cases := map[string]string{
		"Asia/Seoul":        "Asia",
		"Europe/Berlin":     "Europe",
		"America/Sao_Paulo": "America",
		"UTC":               "UTC",
		"":                  "unknown",
		"  ":                "unknown",
	}
	for tz, want := range cases {
		assert.Equal(t, want, models.RegionFromTimezone(tz), "tz=%q", tz)
	}
}
