package services

import (
	"errors"

	"fitlog/status"
	"fitlog/store"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// failure converts a storage error into the uniform result taxonomy. Raw
// errors never cross the service boundary.
func failure(err error) status.Result {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, gorm.ErrRecordNotFound):
		return status.Error(status.NotFound, err.Error())
	case errors.Is(err, store.ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return status.Error(status.AlreadyExists, err.Error())
	case errors.Is(err, store.ErrStale):
		return status.Error(status.Failed, err.Error())
	default:
		return status.Error(status.Internal, err.Error())
	}
}
