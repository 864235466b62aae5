package models

import (
	"strings"
	"time"
)

// UsageRecord is the flat, anonymized snapshot written once per
// successful diagnosis. It carries derived measurements only; raw
// image bytes never reach the sink.
type UsageRecord struct {
	SessionID string    `json:"sessionId" bson:"sessionId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	Region string `json:"region" bson:"region"`
	Lang   string `json:"lang,omitempty" bson:"lang,omitempty"`
	Age    *int   `json:"age,omitempty" bson:"age,omitempty"`
	Gender string `json:"gender,omitempty" bson:"gender,omitempty"`

	Face *FaceAnalysis `json:"face,omitempty" bson:"face,omitempty"`
	Body *BodyAnalysis `json:"body,omitempty" bson:"body,omitempty"`

	// Headline outcomes, lifted out of the diagnosis for grouping.
	PersonalColor string `json:"personalColor,omitempty" bson:"personalColor,omitempty"`
	FaceShape     string `json:"faceShape,omitempty" bson:"faceShape,omitempty"`
	BodyType      string `json:"bodyType,omitempty" bson:"bodyType,omitempty"`

	Diagnosis map[string]any `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
}

// RegionFromTimezone reduces an IANA timezone name to its coarse
// region segment: "Asia/Seoul" -> "Asia". Empty or malformed input
// maps to "unknown".
func RegionFromTimezone(tz string) string {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return "unknown"
	}
	if i := strings.IndexByte(tz, '/'); i > 0 {
		return tz[:i]
	}
	return tz
}
