package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

// BookingReference derives a short display code from an order ID: the first
// 7 hex characters of a SHA-256 digest. It is not a secret and must never be
// used for lookups without an owner check.
func BookingReference(orderID uuid.UUID) string {
	sum := sha256.Sum256([]byte(orderID.String()))
	return hex.EncodeToString(sum[:])[:7]
}

// ==================== PARSING ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
