package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
)

type investorTableModel struct {
	ID           int64          `db:"id"`
	FirmName     string         `db:"firm_name"`
	Focus        string         `db:"focus"`
	TicketMin    int64          `db:"ticket_min"`
	TicketMax    int64          `db:"ticket_max"`
	Stage        string         `db:"stage"`
	ContactEmail sql.NullString `db:"contact_email"`
	ContactPhone sql.NullString `db:"contact_phone"`
	LinkedInURL  sql.NullString `db:"linkedin_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

var investorColumns = []string{
	"id",
	"firm_name",
	"focus",
	"ticket_min",
	"ticket_max",
	"stage",
	"contact_email",
	"contact_phone",
	"linkedin_url",
}

func investorFromRow(row investorTableModel) investor.Investor {
	return investor.Investor{
		ID:        row.ID,
		FirmName:  row.FirmName,
		Focus:     row.Focus,
		TicketMin: row.TicketMin,
		TicketMax: row.TicketMax,
		Stage:     investor.Stage(row.Stage),
		Contact: investor.Contact{
			Email:       nullStringValue(row.ContactEmail),
			Phone:       nullStringValue(row.ContactPhone),
			LinkedInURL: nullStringValue(row.LinkedInURL),
		},
	}
}
