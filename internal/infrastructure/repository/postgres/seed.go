package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo members and investors into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		query, args, err := sqlx.Named(`
INSERT INTO users (id, email, full_name, headline, company, location, avatar_url, created_at)
VALUES (:id, :email, :full_name, :headline, :company, :location, :avatar_url, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         u.ID,
			"email":      fmt.Sprintf("member%d@proconnect.example", u.ID),
			"full_name":  u.FullName,
			"headline":   u.Headline,
			"company":    u.Company,
			"location":   u.Location,
			"avatar_url": toNullString(u.AvatarURL),
			"created_at": u.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed user %d query: %w", u.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}

	for _, inv := range memory.SeedInvestors() {
		query, args, err := sqlx.Named(`
INSERT INTO investors (id, firm_name, focus, ticket_min, ticket_max, stage, contact_email, contact_phone, linkedin_url)
VALUES (:id, :firm_name, :focus, :ticket_min, :ticket_max, :stage, :contact_email, :contact_phone, :linkedin_url)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":            inv.ID,
			"firm_name":     inv.FirmName,
			"focus":         inv.Focus,
			"ticket_min":    inv.TicketMin,
			"ticket_max":    inv.TicketMax,
			"stage":         string(inv.Stage),
			"contact_email": toNullString(inv.Contact.Email),
			"contact_phone": toNullString(inv.Contact.Phone),
			"linkedin_url":  toNullString(inv.Contact.LinkedInURL),
		})
		if err != nil {
			return fmt.Errorf("bind seed investor %d query: %w", inv.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("seed investor %d: %w", inv.ID, err)
		}
	}

	for _, table := range []string{"users", "investors"} {
		stmt := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))`, table)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("advance %s id sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
