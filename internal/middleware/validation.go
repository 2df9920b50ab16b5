package middleware

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema and provider constraints.
const (
	MaxQueryLen   = 200 // searches.query, also a sane provider bound
	MaxVideoIDLen = 16  // thumbnail_analyses.video_id
	MaxGroupLen   = 32  // channel-group selector
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// groupRe matches channel-group names: lowercase words.
	groupRe = regexp.MustCompile(`^[a-z]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateQuery checks that a search query is present and within limits.
func ValidateQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "q is required"
	}
	if len(q) > MaxQueryLen {
		return "", "q must be at most 200 characters"
	}
	return q, ""
}

// ValidateVideoID checks that a video ID is well-formed and within limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateGroup checks a channel-group selector. Empty is allowed and means
// all groups.
func ValidateGroup(group string) (string, string) {
	group = strings.TrimSpace(strings.ToLower(group))
	if group == "" {
		return "", ""
	}
	if len(group) > MaxGroupLen {
		return "", "group must be at most 32 characters"
	}
	if !groupRe.MatchString(group) {
		return "", "group contains invalid characters"
	}
	return group, ""
}

// ValidateThumbnailURL checks an optional thumbnail URL override.
// Empty is allowed; the handler derives the default URL from the video ID.
func ValidateThumbnailURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "thumbnailUrl must be an absolute http(s) URL"
	}
	return raw, ""
}
