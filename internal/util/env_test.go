package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStringEnv(t *testing.T) {
	t.Setenv("COMPANYBOT_TEST_STR", "value")
	assert.Equal(t, "value", ParseStringEnv("COMPANYBOT_TEST_STR", "default"))
	assert.Equal(t, "default", ParseStringEnv("COMPANYBOT_TEST_STR_MISSING", "default"))
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("COMPANYBOT_TEST_BOOL", "yes")
	assert.True(t, ParseBoolEnv("COMPANYBOT_TEST_BOOL", false))

	t.Setenv("COMPANYBOT_TEST_BOOL", "off")
	assert.False(t, ParseBoolEnv("COMPANYBOT_TEST_BOOL", true))

	t.Setenv("COMPANYBOT_TEST_BOOL", "nonsense")
	assert.True(t, ParseBoolEnv("COMPANYBOT_TEST_BOOL", true))

	assert.False(t, ParseBoolEnv("COMPANYBOT_TEST_BOOL_MISSING", false))
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("COMPANYBOT_TEST_INT", "42")
	assert.Equal(t, 42, ParseIntEnv("COMPANYBOT_TEST_INT", 0))

	t.Setenv("COMPANYBOT_TEST_INT", "not a number")
	assert.Equal(t, 7, ParseIntEnv("COMPANYBOT_TEST_INT", 7))

	assert.Equal(t, 3, ParseIntEnv("COMPANYBOT_TEST_INT_MISSING", 3))
}
