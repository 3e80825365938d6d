package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("already_in_queue")

	assert.True(t, IsBusiness(err, "already_in_queue"))
	assert.False(t, IsBusiness(err, "shop_not_found"))
	assert.False(t, IsBusiness(errors.New("plain"), "already_in_queue"))
	assert.False(t, IsBusiness(nil, "already_in_queue"))

	// Wrapped errors still match.
	wrapped := fmt.Errorf("join: %w", err)
	assert.True(t, IsBusiness(wrapped, "already_in_queue"))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_one_waiting"}
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", unique)))

	notNull := &pgconn.PgError{Code: "23502"}
	assert.False(t, IsUniqueViolation(notNull))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
