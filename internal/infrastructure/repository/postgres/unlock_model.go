package postgres

import (
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
)

type unlockTableModel struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	InvestorID int64     `db:"investor_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type unlockInsertModel struct {
	UserID     int64     `db:"user_id"`
	InvestorID int64     `db:"investor_id"`
	CreatedAt  time.Time `db:"created_at"`
}

func unlockFromRow(row unlockTableModel) unlock.Unlock {
	return unlock.Unlock{
		ID:         row.ID,
		UserID:     row.UserID,
		InvestorID: row.InvestorID,
		CreatedAt:  utc(row.CreatedAt),
	}
}
