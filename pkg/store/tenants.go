package store

import (
	"context"
	"time"
)

// Team is a tenancy unit row.
type Team struct {
	ID             string
	Name           string
	RegionID       string
	OrganizationID string
	Timezone       string
	Active         bool
}

// Device is an enrolled field device row.
type Device struct {
	ID         string
	TeamID     string
	Name       string
	Active     bool
	LastSeenAt *time.Time
}

// TeamStore serves team and region lookups for boundary decisions.
type TeamStore interface {
	FetchTeam(ctx context.Context, id string) (*Team, error)

	// TeamIDsInRegion lists active teams belonging to a region.
	TeamIDsInRegion(ctx context.Context, regionID string) ([]string, error)

	// TeamInRegion verifies a team belongs to a region.
	TeamInRegion(ctx context.Context, teamID, regionID string) (bool, error)
}

// DeviceStore serves device lookups for policy issuance.
type DeviceStore interface {
	FetchDevice(ctx context.Context, id string) (*Device, error)

	// TouchLastSeen stamps the device's last-seen time.
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
}
