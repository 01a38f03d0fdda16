package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/user"
)

type userTableModel struct {
	ID        int64          `db:"id"`
	Email     string         `db:"email"`
	FullName  string         `db:"full_name"`
	Headline  string         `db:"headline"`
	Company   string         `db:"company"`
	Location  string         `db:"location"`
	AvatarURL sql.NullString `db:"avatar_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

var userColumns = []string{"id", "full_name", "headline", "company", "location", "avatar_url", "created_at"}

func userFromRow(row userTableModel) user.Profile {
	return user.Profile{
		ID:        row.ID,
		FullName:  row.FullName,
		Headline:  row.Headline,
		Company:   row.Company,
		Location:  row.Location,
		AvatarURL: nullStringValue(row.AvatarURL),
		CreatedAt: utc(row.CreatedAt),
	}
}
