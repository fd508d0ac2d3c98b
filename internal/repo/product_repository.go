package repo

import (
	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

// ProductRepository defines the read side of the product store. Products are
// only ever created and mutated through the ledger; there is no write path
// here.
type ProductRepository interface {
	GetAll(limit int) ([]models.Product, error)
	GetByName(name string) (models.Product, error)
}
