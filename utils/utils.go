package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCourseKey returns a URL-safe unique course key
func GenerateCourseKey() string {
	return uuid.NewString()
}

// GenerateCertificateNumber builds a certificate number like AI-20261015-1A2B3C4D
func GenerateCertificateNumber(issuedAt time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "AI-" + issuedAt.Format("20060102") + "-" + suffix
}
