package user

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the public face of a member account.
type Profile struct {
	ID        int64
	FullName  string
	Headline  string
	Company   string
	Location  string
	AvatarURL string
	CreatedAt time.Time
}

func (p Profile) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("user id must be positive")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("user full name is required")
	}

	return nil
}

// Principal is the authenticated caller resolved from a session credential.
type Principal struct {
	UserID int64
	Email  string
}

func (p Principal) Valid() bool {
	return p.UserID > 0
}
