package utils

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var CountryCode = "CN"

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return &ValidationError{Field: "phone", Message: "phone number is invalid"}
	}

	if !libphonenumber.IsValidNumber(p) {
		return &ValidationError{Field: "phone", Message: "phone number is not valid for " + countryCode}
	}

	return nil // Phone number is valid for the specified country code
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func NilIfEmpty[T comparable](ptr T) *T {
	var defaultZero T
	if ptr == defaultZero {
		return nil
	}
	return &ptr
}

// ParseDate parses a YYYY-MM-DD string in the business timezone.
func ParseDate(value string) (time.Time, error) {
	location, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), location)
}

// Today returns the current date, midnight in the business timezone.
func Today() time.Time {
	date, err := ConvertToDate(time.Now(), "")
	if err != nil {
		return time.Now().Truncate(24 * time.Hour)
	}
	return date
}

func ConvertToDate(t time.Time, timezone string) (time.Time, error) {
	if timezone == "" {
		timezone = "Asia/Shanghai"
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return t, err
	}
	localTime := t.In(location)

	dateOnly := time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, location)
	return dateOnly, nil
}

// WithScopeLock runs fn while holding a redis lock for the given scope key.
// Scopes: "quote_number:<YYYYMMDD>" for allocation, "default:<scope>" for
// default-flag updates. Two calls for the same key never interleave; calls
// for different keys proceed in parallel.
func WithScopeLock(ctx context.Context, lockKey string, moduleName string, functionName string, fn func() error) error {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		// Avoid nil-pointer panics when Redis lock isn't initialized yet.
		config.LogError(logger, moduleName, functionName, "Redis lock not initialized", lockKey, errors.New("redis lock is nil"))
		return errors.New("service not ready (redis lock not initialized)")
	}
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock", lockKey, err)
		return errors.New("could not obtain lock for " + lockKey)
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock", lockKey, err)
		return err
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	return fn()
}
