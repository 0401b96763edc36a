package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("PICO_WATT_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnvOrDefault("PICO_WATT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("PICO_WATT_TEST_MISSING", "fallback"))
}

func TestParseInteger(t *testing.T) {
	assert.Equal(t, 42, ParseInteger("42", 7))
	assert.Equal(t, 42, ParseInteger(" 42 ", 7))
	assert.Equal(t, 7, ParseInteger("", 7))
	assert.Equal(t, 7, ParseInteger("abc", 7))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 10.5, ParseFloat("10.5", 1.0))
	assert.Equal(t, 1.0, ParseFloat("", 1.0))
	assert.Equal(t, 1.0, ParseFloat("watt", 1.0))
}

func TestParseBoolean(t *testing.T) {
	assert.True(t, ParseBoolean("true", false))
	assert.False(t, ParseBoolean("false", true))
	assert.True(t, ParseBoolean("", true))
	assert.True(t, ParseBoolean("yes", true))
}

func TestParseArray(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseArray("a, b", nil))
	assert.Equal(t, []string{"x"}, ParseArray("", []string{"x"}))
	assert.Equal(t, []string{"x"}, ParseArray(" , ", []string{"x"}))
}
