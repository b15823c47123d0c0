package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("GALLERY_TEST_KEY", "a=b")

	c := New()
	assert.Equal(t, "a=b", c["GALLERY_TEST_KEY"])
}

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":           "9090",
		"BAD_INT":        "nine",
		"ENABLED":        "true",
		"DELAY_MS":       "800",
		"EMPTY":          "",
		"ORIGINS":        " http://a.test, ,http://b.test ",
		"ENV":            "Production",
		"NEGATIVE_DELAY": "-5",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))

	assert.True(t, GetBool(c, "ENABLED", false))
	assert.False(t, GetBool(c, "PORT", false))

	assert.Equal(t, 800*time.Millisecond, GetDuration(c, "DELAY_MS", time.Millisecond, time.Second))
	assert.Equal(t, time.Second, GetDuration(c, "NEGATIVE_DELAY", time.Millisecond, time.Second))

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))

	assert.True(t, IsProduction(c))
}
