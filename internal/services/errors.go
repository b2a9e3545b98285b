package services

import (
	"errors"

	"github.com/ministerio-jovem/app-frequencia/internal/models"
)

var domainErrors = []error{
	models.ErrMembroNotFound,
	models.ErrEmailInUse,
	models.ErrUsuarioNotFound,
	models.ErrInvalidCredentials,
	models.ErrForbidden,
	models.ErrInvalidID,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
