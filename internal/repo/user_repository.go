package repo

import (
	"github.com/rogerio-castellano/warehouse-api/internal/models"
)

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(user models.User) (models.User, error)
}
