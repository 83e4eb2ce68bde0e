// Package api holds the HTTP contract described by openapi.yaml: the wire
// types, ServerInterface and its echo binding, and the parsed document.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Values of OfferStatus.
const (
	OfferStatusPENDING   OfferStatus = "PENDING"
	OfferStatusACCEPTED  OfferStatus = "ACCEPTED"
	OfferStatusREJECTED  OfferStatus = "REJECTED"
	OfferStatusEXPIRED   OfferStatus = "EXPIRED"
	OfferStatusCANCELLED OfferStatus = "CANCELLED"
)

// Values of RejectionRematch.
const (
	RejectionRematchSKIPPED   RejectionRematch = "SKIPPED"
	RejectionRematchREOFFERED RejectionRematch = "REOFFERED"
	RejectionRematchUNMATCHED RejectionRematch = "UNMATCHED"
)

// Acceptance is the Acceptance schema.
type Acceptance struct {
	CancelledOfferIds []openapi_types.UUID `json:"cancelledOfferIds"`
	Offer             Offer                `json:"offer"`
}

// Dispatch is the Dispatch schema.
type Dispatch struct {
	Match Match `json:"match"`
	Offer Offer `json:"offer"`
}

// Error is the Error schema.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Geofence is the Geofence schema.
type Geofence struct {
	AllowedRadiusMeters float64 `json:"allowedRadiusMeters"`
	DistanceMeters      float64 `json:"distanceMeters"`
	Valid               bool    `json:"valid"`
}

// GeofenceError is the GeofenceError schema.
type GeofenceError struct {
	AllowedRadiusMeters float64 `json:"allowedRadiusMeters"`
	Code                int     `json:"code"`
	DistanceMeters      float64 `json:"distanceMeters"`
	Message             string  `json:"message"`
}

// JobOffer is the JobOffer schema.
type JobOffer struct {
	AcceptedAt *time.Time         `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
	Id         openapi_types.UUID `json:"id"`
	MatchScore float64            `json:"matchScore"`
	Status     string             `json:"status"`
	WorkerId   openapi_types.UUID `json:"workerId"`
	WorkerName string             `json:"workerName"`
}

// Location is the Location schema.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Match is the Match schema.
type Match struct {
	DistanceKm float64            `json:"distanceKm"`
	Name       string             `json:"name"`
	Score      ScoreBreakdown     `json:"score"`
	WorkerId   openapi_types.UUID `json:"workerId"`
}

// NewOffer is the NewOffer schema.
type NewOffer struct {
	Score    float64            `json:"score"`
	WorkerId openapi_types.UUID `json:"workerId"`
}

// Offer is the Offer schema.
type Offer struct {
	AcceptedAt *time.Time         `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
	Id         openapi_types.UUID `json:"id"`
	JobId      openapi_types.UUID `json:"jobId"`
	MatchScore float64            `json:"matchScore"`
	Status     OfferStatus        `json:"status"`
	WorkerId   openapi_types.UUID `json:"workerId"`
}

// OfferStatus is the Offer.Status schema.
type OfferStatus string

// Rejection is the Rejection schema.
type Rejection struct {
	NextOffer *Offer           `json:"nextOffer,omitempty"`
	Offer     Offer            `json:"offer"`
	Rematch   RejectionRematch `json:"rematch"`
}

// RejectionRematch is the Rejection.Rematch schema.
type RejectionRematch string

// ScoreBreakdown is the ScoreBreakdown schema.
type ScoreBreakdown struct {
	Acceptance  float64 `json:"acceptance"`
	Distance    float64 `json:"distance"`
	Final       float64 `json:"final"`
	Punctuality float64 `json:"punctuality"`
	Rating      float64 `json:"rating"`
}

// SweepReport is the SweepReport schema.
type SweepReport struct {
	Cancelled int `json:"cancelled"`
	Expired   int `json:"expired"`
	Failed    int `json:"failed"`
	Reoffered int `json:"reoffered"`
	Scanned   int `json:"scanned"`
	Skipped   int `json:"skipped"`
	Unmatched int `json:"unmatched"`
}

// JobId is the JobId schema.
type JobId = openapi_types.UUID

// OfferId is the OfferId schema.
type OfferId = openapi_types.UUID

// WorkerId is the WorkerId schema.
type WorkerId = openapi_types.UUID

// GetJobMatchesParams defines parameters for GetJobMatches.
type GetJobMatchesParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// AcceptOfferParams defines parameters for AcceptOffer.
type AcceptOfferParams struct {
	XWorkerId WorkerId `json:"X-Worker-Id"`
}

// RejectOfferParams defines parameters for RejectOffer.
type RejectOfferParams struct {
	Rematch   *bool    `form:"rematch,omitempty" json:"rematch,omitempty"`
	XWorkerId WorkerId `json:"X-Worker-Id"`
}

// CheckInParams defines parameters for CheckIn.
type CheckInParams struct {
	XWorkerId WorkerId `json:"X-Worker-Id"`
}

// CompleteJobParams defines parameters for CompleteJob.
type CompleteJobParams struct {
	XWorkerId WorkerId `json:"X-Worker-Id"`
}

// ExtendOfferJSONRequestBody defines body for ExtendOffer for application/json ContentType.
type ExtendOfferJSONRequestBody = NewOffer

// CheckInJSONRequestBody defines body for CheckIn for application/json ContentType.
type CheckInJSONRequestBody = Location
