package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/trimtime/trimtime-api/internal/db"
	domain "github.com/trimtime/trimtime-api/internal/domain/queue"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/httperr"
	infraRepo "github.com/trimtime/trimtime-api/internal/infra/repository"
	"github.com/trimtime/trimtime-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every goroutine on the same in-memory db.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newDispatcher(db *gorm.DB) *events.Dispatcher {
	return events.NewDispatcher(events.New(db), zerolog.Nop())
}

func seedShop(t *testing.T, db *gorm.DB, verified bool) *models.Shop {
	t.Helper()

	owner := models.User{
		Name:         "Owner",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         "barber",
	}
	require.NoError(t, db.Create(&owner).Error)

	shop := models.Shop{
		OwnerID:  owner.ID,
		Name:     "Fade Factory",
		Category: "barbershop",
		Area:     "Downtown",
		Verified: verified,
	}
	require.NoError(t, db.Create(&shop).Error)
	return &shop
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	u := models.User{
		Name:         "Customer",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         "customer",
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedWaiting(t *testing.T, db *gorm.DB, shopID, userID uint, joined time.Time) *models.Booking {
	t.Helper()

	b := models.Booking{
		Code:     uuid.NewString(),
		UserID:   userID,
		ShopID:   shopID,
		Service:  "Haircut",
		Status:   string(domain.StatusWaiting),
		JoinedAt: joined,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

// --------------------------------------------------
// Join
// --------------------------------------------------

func TestJoinQueue(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	uc := NewJoinQueue(repo, newDispatcher(db))
	ctx := context.Background()

	shop := seedShop(t, db, true)
	customer := seedCustomer(t, db)

	b, err := uc.Execute(ctx, JoinQueueInput{
		UserID:  customer.ID,
		ShopID:  shop.ID,
		Service: "Haircut",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusWaiting), b.Status)
	assert.NotEmpty(t, b.Code)
	assert.False(t, b.JoinedAt.IsZero())
}

func TestJoinQueue_ShopNotFound(t *testing.T) {
	db := setupTestDB(t)
	uc := NewJoinQueue(infraRepo.NewBookingGormRepository(db), newDispatcher(db))

	customer := seedCustomer(t, db)

	_, err := uc.Execute(context.Background(), JoinQueueInput{
		UserID:  customer.ID,
		ShopID:  999,
		Service: "Haircut",
	})
	assert.True(t, httperr.IsBusiness(err, "shop_not_found"))
}

func TestJoinQueue_UnverifiedShopRejected(t *testing.T) {
	db := setupTestDB(t)
	uc := NewJoinQueue(infraRepo.NewBookingGormRepository(db), newDispatcher(db))

	shop := seedShop(t, db, false)
	customer := seedCustomer(t, db)

	_, err := uc.Execute(context.Background(), JoinQueueInput{
		UserID:  customer.ID,
		ShopID:  shop.ID,
		Service: "Haircut",
	})
	assert.True(t, httperr.IsBusiness(err, "shop_not_verified"))
}

func TestJoinQueue_SecondWaitingBookingRejected(t *testing.T) {
	db := setupTestDB(t)
	uc := NewJoinQueue(infraRepo.NewBookingGormRepository(db), newDispatcher(db))
	ctx := context.Background()

	shop := seedShop(t, db, true)
	customer := seedCustomer(t, db)

	_, err := uc.Execute(ctx, JoinQueueInput{UserID: customer.ID, ShopID: shop.ID, Service: "Haircut"})
	require.NoError(t, err)

	// Partial unique index blocks a second waiting row.
	_, err = uc.Execute(ctx, JoinQueueInput{UserID: customer.ID, ShopID: shop.ID, Service: "Beard trim"})
	assert.Error(t, err)

	var count int64
	db.Model(&models.Booking{}).
		Where("user_id = ? AND shop_id = ? AND status = ?", customer.ID, shop.ID, string(domain.StatusWaiting)).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestJoinQueue_RejoinAfterCancelAllowed(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	dispatcher := newDispatcher(db)
	join := NewJoinQueue(repo, dispatcher)
	leave := NewLeaveQueue(repo, dispatcher)
	ctx := context.Background()

	shop := seedShop(t, db, true)
	customer := seedCustomer(t, db)

	b, err := join.Execute(ctx, JoinQueueInput{UserID: customer.ID, ShopID: shop.ID, Service: "Haircut"})
	require.NoError(t, err)

	_, err = leave.Execute(ctx, customer.ID, b.ID)
	require.NoError(t, err)

	_, err = join.Execute(ctx, JoinQueueInput{UserID: customer.ID, ShopID: shop.ID, Service: "Haircut"})
	assert.NoError(t, err)
}

// --------------------------------------------------
// Queue status
// --------------------------------------------------

func TestQueueStatus_SecondOfThree(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	uc := NewQueueStatus(repo, 30)
	ctx := context.Background()

	shop := seedShop(t, db, true)

	t1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	u1, u2, u3 := seedCustomer(t, db), seedCustomer(t, db), seedCustomer(t, db)

	seedWaiting(t, db, shop.ID, u1.ID, t1)
	target := seedWaiting(t, db, shop.ID, u2.ID, t1.Add(10*time.Minute))
	seedWaiting(t, db, shop.ID, u3.ID, t1.Add(20*time.Minute))

	snap, err := uc.Execute(ctx, u2.ID, target.ID)
	require.NoError(t, err)

	assert.True(t, snap.InQueue)
	assert.Equal(t, 2, snap.Position)
	assert.Equal(t, 30, snap.EstimatedWaitMinutes)
}

func TestQueueStatus_CancelledNeighbourExcluded(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	dispatcher := newDispatcher(db)
	status := NewQueueStatus(repo, 30)
	leave := NewLeaveQueue(repo, dispatcher)
	ctx := context.Background()

	shop := seedShop(t, db, true)

	t1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	u1, u2 := seedCustomer(t, db), seedCustomer(t, db)

	first := seedWaiting(t, db, shop.ID, u1.ID, t1)
	second := seedWaiting(t, db, shop.ID, u2.ID, t1.Add(5*time.Minute))

	snap, err := status.Execute(ctx, u2.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Position)

	// The head cancels; everyone behind moves up.
	_, err = leave.Execute(ctx, u1.ID, first.ID)
	require.NoError(t, err)

	snap, err = status.Execute(ctx, u2.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Position)
	assert.Equal(t, 0, snap.EstimatedWaitMinutes)
}

func TestQueueStatus_TerminalBookingNotInQueue(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	status := NewQueueStatus(repo, 30)
	serve := NewServeBooking(repo, newDispatcher(db))
	ctx := context.Background()

	shop := seedShop(t, db, true)
	customer := seedCustomer(t, db)

	b := seedWaiting(t, db, shop.ID, customer.ID, time.Now().UTC())

	_, err := serve.Execute(ctx, shop.ID, shop.OwnerID, b.ID)
	require.NoError(t, err)

	snap, err := status.Execute(ctx, customer.ID, b.ID)
	require.NoError(t, err)

	assert.False(t, snap.InQueue)
	assert.Equal(t, domain.NotInQueue, snap.Position)
	assert.Equal(t, 0, snap.EstimatedWaitMinutes)
}

func TestQueueStatus_ForeignBookingNotFound(t *testing.T) {
	db := setupTestDB(t)
	status := NewQueueStatus(infraRepo.NewBookingGormRepository(db), 30)

	shop := seedShop(t, db, true)
	owner := seedCustomer(t, db)
	other := seedCustomer(t, db)

	b := seedWaiting(t, db, shop.ID, owner.ID, time.Now().UTC())

	_, err := status.Execute(context.Background(), other.ID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

// --------------------------------------------------
// Shop-side actions
// --------------------------------------------------

func TestServeBooking(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	serve := NewServeBooking(repo, newDispatcher(db))
	ctx := context.Background()

	shop := seedShop(t, db, true)
	customer := seedCustomer(t, db)
	b := seedWaiting(t, db, shop.ID, customer.ID, time.Now().UTC())

	served, err := serve.Execute(ctx, shop.ID, shop.OwnerID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDone), served.Status)

	// Terminal now; a second serve is rejected.
	_, err = serve.Execute(ctx, shop.ID, shop.OwnerID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMarkNoShow(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	noShow := NewMarkNoShow(repo, newDispatcher(db))

	shop := seedShop(t, db, true)
	customer := seedCustomer(t, db)
	b := seedWaiting(t, db, shop.ID, customer.ID, time.Now().UTC())

	updated, err := noShow.Execute(context.Background(), shop.ID, shop.OwnerID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), updated.Status)
}

func TestCancelForShop_WrongShopNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	cancel := NewCancelForShop(repo, newDispatcher(db))

	shopA := seedShop(t, db, true)
	shopB := seedShop(t, db, true)
	customer := seedCustomer(t, db)
	b := seedWaiting(t, db, shopA.ID, customer.ID, time.Now().UTC())

	_, err := cancel.Execute(context.Background(), shopB.ID, shopB.OwnerID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

// --------------------------------------------------
// Shop-side queue view
// --------------------------------------------------

func TestListWaiting_PositionsAndEstimates(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewBookingGormRepository(db)
	list := NewListWaiting(repo, 30)
	ctx := context.Background()

	shop := seedShop(t, db, true)

	t1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	u1, u2, u3 := seedCustomer(t, db), seedCustomer(t, db), seedCustomer(t, db)

	// Inserted out of join order on purpose.
	seedWaiting(t, db, shop.ID, u3.ID, t1.Add(20*time.Minute))
	seedWaiting(t, db, shop.ID, u1.ID, t1)
	seedWaiting(t, db, shop.ID, u2.ID, t1.Add(10*time.Minute))

	entries, err := list.Execute(ctx, shop.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, u1.Name, entries[0].CustomerName)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, i*30, e.EstimatedWaitMinutes)
	}
	assert.True(t, entries[0].JoinedAt.Before(entries[1].JoinedAt))
}

func TestListWaiting_EmptyQueue(t *testing.T) {
	db := setupTestDB(t)
	list := NewListWaiting(infraRepo.NewBookingGormRepository(db), 30)

	shop := seedShop(t, db, true)

	entries, err := list.Execute(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
