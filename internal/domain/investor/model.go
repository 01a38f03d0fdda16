package investor

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StagePreSeed Stage = "pre_seed"
	StageSeed    Stage = "seed"
	StageSeriesA Stage = "series_a"
	StageGrowth  Stage = "growth"
)

func (s Stage) Valid() bool {
	switch s {
	case StagePreSeed, StageSeed, StageSeriesA, StageGrowth:
		return true
	default:
		return false
	}
}

// Contact is only disclosed to members who unlocked the investor.
type Contact struct {
	Email       string
	Phone       string
	LinkedInURL string
}

type Investor struct {
	ID        int64
	FirmName  string
	Focus     string
	TicketMin int64
	TicketMax int64
	Stage     Stage
	Contact   Contact
}

func (i Investor) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("investor id must be positive")
	}
	if strings.TrimSpace(i.FirmName) == "" {
		return fmt.Errorf("investor firm name is required")
	}
	if i.TicketMin < 0 || i.TicketMax < 0 {
		return fmt.Errorf("investor ticket size cannot be negative")
	}
	if i.TicketMax > 0 && i.TicketMin > i.TicketMax {
		return fmt.Errorf("investor ticket min %d exceeds max %d", i.TicketMin, i.TicketMax)
	}
	if i.Stage != "" && !i.Stage.Valid() {
		return fmt.Errorf("invalid investor stage %q", i.Stage)
	}

	return nil
}
