package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== TICKET CODE ====================

// GenerateTicketCode derives a printable code from the ticket id.
// Format: PAS-YYYYMMDD-XXXXXXXX
func GenerateTicketCode(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("PAS-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(id.String()[:8]))
}

// GenerateParcelCode follows the ticket code layout with the ENC prefix.
func GenerateParcelCode(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("ENC-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(id.String()[:8]))
}

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}
