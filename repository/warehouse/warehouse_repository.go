package warehouse

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/rsetiawan/agrostock/constant"
	"github.com/rsetiawan/agrostock/model"
)

type WarehouseRepository interface {
	List(ctx context.Context) ([]model.Warehouse, error)
	GetByID(ctx context.Context, id uint64) (*model.Warehouse, error)
	Insert(ctx context.Context, data *model.Warehouse) (uint64, error)
	SetStatus(ctx context.Context, id uint64, status constant.WarehouseStatus) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewWarehouseRepository(conn *sqlx.DB) WarehouseRepository {
	return &SQL{conn: conn}
}

func (r *SQL) List(ctx context.Context) ([]model.Warehouse, error) {
	rows, err := r.conn.QueryxContext(ctx, "SELECT id, name, location, status, created_at FROM warehouse ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Warehouse, 0)
	for rows.Next() {
		var w model.Warehouse
		if err := rows.StructScan(&w); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Warehouse, error) {
	var w model.Warehouse
	err := r.conn.QueryRowxContext(ctx, "SELECT id, name, location, status, created_at FROM warehouse WHERE id = ?", id).StructScan(&w)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *SQL) Insert(ctx context.Context, data *model.Warehouse) (uint64, error) {
	res, err := r.conn.ExecContext(ctx, "INSERT INTO warehouse (name, location, status, created_at) VALUES (?, ?, ?, NOW())",
		data.Name, data.Location, constant.WarehouseStatusActive)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) SetStatus(ctx context.Context, id uint64, status constant.WarehouseStatus) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE warehouse SET status = ? WHERE id = ?", status, id)
	return err
}
