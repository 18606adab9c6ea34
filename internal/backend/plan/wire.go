package plan

import (
	"database/sql"

	"factoria/internal/backend/products"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	planner := NewPlanner(products.NewMySQLRepository(db))
	return NewController(planner, logger)
}
