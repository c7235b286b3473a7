package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBookingReference(t *testing.T) {
	orderID := uuid.MustParse("0d9a39c1-8f2e-4f1a-9a3b-6a0f0d8a4c21")

	ref := BookingReference(orderID)

	assert.Len(t, ref, 7)
	assert.Regexp(t, "^[0-9a-f]{7}$", ref)

	// Same order always yields the same reference.
	assert.Equal(t, ref, BookingReference(orderID))

	// Different orders yield different references.
	assert.NotEqual(t, ref, BookingReference(uuid.New()))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}
