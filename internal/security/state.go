package security

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StateTTL bounds how long an OAuth state value stays redeemable
const StateTTL = 10 * time.Minute

// GenerateState builds the opaque state value for an OAuth round trip.
// It binds the user and platform to a timestamp, and the trailing UUID
// keeps the value unguessable.
func GenerateState(userID int64, platform string) string {
	return fmt.Sprintf("%d:%s:%d:%s", userID, platform, time.Now().UnixMilli(), uuid.New().String())
}
