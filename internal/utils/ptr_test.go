package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil(" \t\n"))
	assert.Equal(t, "engine", *StringOrNil("  engine "))
}

func TestPtr(t *testing.T) {
	p := Ptr(7)
	assert.Equal(t, 7, *p)
}
