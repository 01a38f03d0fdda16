package unlock

import (
	"fmt"
	"time"
)

// Unlock records that a member paid to see an investor's contact details.
type Unlock struct {
	ID         int64
	UserID     int64
	InvestorID int64
	CreatedAt  time.Time
}

func (u Unlock) Validate() error {
	if u.UserID <= 0 {
		return fmt.Errorf("unlock user id must be positive")
	}
	if u.InvestorID <= 0 {
		return fmt.Errorf("unlock investor id must be positive")
	}

	return nil
}
