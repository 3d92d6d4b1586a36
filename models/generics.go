package models

import (
	"context"

	"bitbucket.org/ztofreight/quotes_backend/utils"
)

// first find in redis, then in db, cache result
// (may return RecordNotFound error)
func GetResource[T any](ctx context.Context, id int, associations ...string) (*T, error) {

	// find in redis
	result, err := utils.RetrieveRedis[T](id)
	if err != nil {
		return nil, err
	}
	// if not found in redis
	if result == nil {
		// fetch from db
		result, err = utils.FetchModel[T](ctx, id, associations...)
		if err != nil {
			return nil, err
		}

		// store in redis
		if err := utils.StoreRedis[T](result, id); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// list all records, redis or db, cache result
func ListAllResource[T any](ctx context.Context, orders ...string) ([]*T, error) {

	// first try redis cache
	results, err := utils.RetrieveRedisList[T]()
	if err != nil {
		return nil, err
	}
	// if not exists in redis
	if results == nil {
		results, err = utils.FetchAllModels[T](ctx, orders...)
		if err != nil {
			return nil, err
		}

		// caching the result
		if err := utils.StoreRedisList[T](results); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// drop both the per-item and the list cache after a write
func clearResourceCache[T any](id int) {
	_ = utils.RemoveRedisItem[T](id)
	_ = utils.RemoveRedisList[T]()
}
