package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://not-redis")
	assert.ErrorContains(t, err, "parse Redis URL")
}
