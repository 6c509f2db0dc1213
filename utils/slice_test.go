package utils_test

import (
	"testing"

	"github.com/blutspende/logdash/utils"

	"github.com/stretchr/testify/assert"
)

type topic string

func TestSliceContains(t *testing.T) {
	topics := []topic{"auth", "database", "email", "payment", "server", "services"}

	assert.True(t, utils.SliceContains(topic("payment"), topics))
	assert.False(t, utils.SliceContains(topic("billing"), topics))
	assert.False(t, utils.SliceContains(topic("auth"), nil))
}

func TestJoinEnumsAsString(t *testing.T) {
	assert.Equal(t, "auth, database, email", utils.JoinEnumsAsString([]topic{"auth", "database", "email"}, ", "))
	assert.Equal(t, "", utils.JoinEnumsAsString([]topic{}, ", "))
}
