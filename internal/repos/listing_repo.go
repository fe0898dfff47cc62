package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"carmarket/internal/domain"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

// listingRow is the flattened table shape of a domain.Listing.
type listingRow struct {
	ID          int            `db:"id"`
	Position    int            `db:"position"`
	Make        string         `db:"make"`
	Model       string         `db:"model"`
	Year        int            `db:"year"`
	Km          int            `db:"km"`
	Fuel        string         `db:"fuel"`
	Gearbox     string         `db:"gearbox"`
	Price       float64        `db:"price"`
	Location    string         `db:"location"`
	ImagesJSON  sql.NullString `db:"images_json"`
	Description sql.NullString `db:"description"`
	GarageName  sql.NullString `db:"garage_name"`
	GaragePhone sql.NullString `db:"garage_phone"`
	GarageEmail sql.NullString `db:"garage_email"`
}

func toRow(pos int, l domain.Listing) (listingRow, error) {
	r := listingRow{
		ID: l.ID, Position: pos, Make: l.Make, Model: l.Model, Year: l.Year, Km: l.Km,
		Fuel: l.Fuel, Gearbox: l.Gearbox, Price: l.Price, Location: l.Location,
		Description: sql.NullString{String: l.Description, Valid: l.Description != ""},
	}
	if len(l.Images) > 0 {
		b, err := json.Marshal(l.Images)
		if err != nil {
			return r, err
		}
		r.ImagesJSON = sql.NullString{String: string(b), Valid: true}
	}
	if g := l.Garage; g != nil {
		r.GarageName = sql.NullString{String: g.Name, Valid: true}
		r.GaragePhone = sql.NullString{String: g.Phone, Valid: true}
		r.GarageEmail = sql.NullString{String: g.Email, Valid: true}
	}
	return r, nil
}

func (r listingRow) listing() (domain.Listing, error) {
	l := domain.Listing{
		ID: r.ID, Make: r.Make, Model: r.Model, Year: r.Year, Km: r.Km,
		Fuel: r.Fuel, Gearbox: r.Gearbox, Price: r.Price, Location: r.Location,
		Description: r.Description.String,
	}
	if r.ImagesJSON.Valid && r.ImagesJSON.String != "" {
		if err := json.Unmarshal([]byte(r.ImagesJSON.String), &l.Images); err != nil {
			return l, fmt.Errorf("listing %d images: %w", r.ID, err)
		}
	}
	if r.GarageName.Valid || r.GaragePhone.Valid || r.GarageEmail.Valid {
		l.Garage = &domain.Garage{Name: r.GarageName.String, Phone: r.GaragePhone.String, Email: r.GarageEmail.String}
	}
	return l, nil
}

// Load returns every listing in import order. It satisfies dataset.Source.
func (r *ListingRepo) Load(ctx context.Context) ([]domain.Listing, error) {
	var rows []listingRow
	err := r.db.SelectContext(ctx, &rows, `
  SELECT
    id, position, make, model, year, km, fuel, gearbox, price, location,
    images_json, description, garage_name, garage_phone, garage_email
  FROM listings
  ORDER BY position, id
`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		l, err := row.listing()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Count returns the number of stored listings.
func (r *ListingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM listings`)
	return n, err
}

// ReplaceAll swaps the stored dataset for listings in one transaction.
func (r *ListingRepo) ReplaceAll(ctx context.Context, listings []domain.Listing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return err
	}
	for i, l := range listings {
		row, err := toRow(i, l)
		if err != nil {
			return fmt.Errorf("listing %d: %w", l.ID, err)
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO listings(
				id, position, make, model, year, km, fuel, gearbox, price, location,
				images_json, description, garage_name, garage_phone, garage_email
			) VALUES (
				:id, :position, :make, :model, :year, :km, :fuel, :gearbox, :price, :location,
				:images_json, :description, :garage_name, :garage_phone, :garage_email
			)`, row); err != nil {
			return fmt.Errorf("insert listing %d: %w", l.ID, err)
		}
	}
	return tx.Commit()
}
