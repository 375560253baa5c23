package commands

import (
	"context"
	"testing"
	"time"

	"hotelbook/builders"
	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services"
	"hotelbook/services/logger"
	"hotelbook/store"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	users    *services.UserService
	hotels   *services.HotelService
	bookings *services.BookingService
	queue    *services.SyncQueue
	registry *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewDefaultLogger(logger.SilentLevel)
	primary := store.New(store.Options{Logger: log})
	local := store.New(store.Options{Logger: log})

	users := services.NewUserService(services.UserServiceOptions{Store: primary, HashCost: bcrypt.MinCost, Logger: log})
	auth := services.NewAuthService(services.AuthServiceOptions{
		Users:  users,
		Tokens: services.NewTokenService("commands-secret", time.Hour),
		Logger: log,
	})
	hotels := services.NewHotelService(services.HotelServiceOptions{Store: primary, Users: users, Logger: log})
	queue := services.NewSyncQueue(local, log)
	bookings := services.NewBookingService(services.BookingServiceOptions{
		Store:  primary,
		Hotels: hotels,
		Auth:   auth,
		Queue:  queue,
		Logger: log,
	})
	require.NoError(t, services.SeedStore(context.Background(), primary, users))

	registry := NewRegistry(bookings, hotels, users)
	registry.Bind(queue)
	return &fixture{users: users, hotels: hotels, bookings: bookings, queue: queue, registry: registry}
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func (f *fixture) user(t *testing.T, id int64) *models.User {
	t.Helper()
	u, err := f.users.Get(context.Background(), id)
	require.NoError(t, err)
	return u
}

func TestBuildUnknownAction(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry.Build(f.user(t, 1), "hotel.explode", nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnknownAction))
}

func TestBuildInvalidPayload(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry.Build(f.user(t, 1), constants.ActionBookingCreate, json.RawMessage(`{"id":"abc"`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))
}

func TestRegistryCoversAllTypes(t *testing.T) {
	f := newFixture(t)
	for _, actionType := range f.registry.Types() {
		_, err := f.registry.Build(f.user(t, 1), actionType, json.RawMessage(`{}`))
		assert.NoError(t, err, actionType)
	}
}

func TestUserUpdatePayloadIsHashed(t *testing.T) {
	f := newFixture(t)
	cmd, err := f.registry.Build(f.user(t, 1), constants.ActionUserUpdate,
		json.RawMessage(`{"userId":3,"patch":{"password":"plain-secret"}}`))
	require.NoError(t, err)

	payload := cmd.Payload().(UserUpdatePayload)
	require.NotNil(t, payload.Patch.Password)
	assert.NotEqual(t, "plain-secret", *payload.Patch.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*payload.Patch.Password), []byte("plain-secret")))

	_, err = f.registry.Build(f.user(t, 1), constants.ActionUserUpdate,
		json.RawMessage(`{"userId":3,"patch":{"password":"123"}}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestQueuedActionsReplayThroughRegistry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, guest := f.user(t, 1), f.user(t, 3)

	booking := builders.NewBookingBuilder().
		WithID(9001).
		WithUser(3).
		WithRoom(2, 201).
		WithStay("2026-04-01", "2026-04-03").
		WithTotalPrice(300).
		Build()

	_, err := f.queue.Enqueue(ctx, guest, constants.ActionBookingCreate, booking)
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, guest, constants.ActionBookingCancel, services.BookingCancelPayload{BookingID: 9001})
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, admin, constants.ActionHotelUpdate, HotelUpdatePayload{
		HotelID: 3,
		Patch:   models.HotelPatch{Description: ptr("Renovated lodge")},
	})
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, admin, constants.ActionRoomUpdate, RoomUpdatePayload{
		HotelID: 3,
		RoomID:  302,
		Patch:   models.RoomPatch{Available: ptr(true)},
	})
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, admin, constants.ActionUserUpdate, UserUpdatePayload{
		UserID: 3,
		Patch:  models.UserPatch{Name: ptr("Returning Guest")},
	})
	require.NoError(t, err)

	report, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Processed)
	assert.Equal(t, 0, report.Failed)

	stored, err := f.bookings.Get(ctx, 9001)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCancelled, stored.Status)

	lodge, err := f.hotels.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Renovated lodge", lodge.Description)
	assert.True(t, lodge.Rooms[lodge.FindRoom(302)].Available)

	renamed, err := f.users.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Returning Guest", renamed.Name)
}

func TestReplayRejectsUnauthorizedActors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager, guest := f.user(t, 2), f.user(t, 3)

	adminBooking := builders.NewBookingBuilder().WithID(500).WithUser(1).WithRoom(1, 103).
		WithStay("2026-06-01", "2026-06-02").Build()
	_, err := f.bookings.Insert(ctx, adminBooking)
	require.NoError(t, err)

	forged := builders.NewBookingBuilder().WithID(501).WithUser(1).WithRoom(2, 201).
		WithStay("2026-06-01", "2026-06-02").Build()

	queued := []struct {
		actor      *models.User
		actionType string
		payload    interface{}
	}{
		{guest, constants.ActionBookingCreate, forged},
		{guest, constants.ActionBookingCancel, services.BookingCancelPayload{BookingID: 500}},
		{manager, constants.ActionHotelUpdate, HotelUpdatePayload{HotelID: 1, Patch: models.HotelPatch{Rating: ptr(1.0)}}},
		{manager, constants.ActionRoomUpdate, RoomUpdatePayload{HotelID: 2, RoomID: 201, Patch: models.RoomPatch{Price: ptr(1.0)}}},
		{guest, constants.ActionRoomUpdate, RoomUpdatePayload{HotelID: 1, RoomID: 101, Patch: models.RoomPatch{Price: ptr(1.0)}}},
		{guest, constants.ActionUserUpdate, UserUpdatePayload{UserID: 3, Patch: models.UserPatch{Role: ptr(constants.RoleAdmin)}}},
		{nil, constants.ActionHotelUpdate, HotelUpdatePayload{HotelID: 1, Patch: models.HotelPatch{Rating: ptr(1.0)}}},
	}
	for _, q := range queued {
		_, err := f.queue.Enqueue(ctx, q.actor, q.actionType, q.payload)
		require.NoError(t, err)
	}

	report, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, len(queued), report.Failed)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, len(queued))
	for _, action := range pending {
		assert.NotEmpty(t, action.LastError, action.Type)
	}

	stored, err := f.bookings.Get(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusConfirmed, stored.Status)
	_, err = f.bookings.Get(ctx, 501)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	plaza, err := f.hotels.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.5, plaza.Rating)
	assert.Equal(t, 200.0, plaza.Rooms[plaza.FindRoom(101)].Price)

	assert.Equal(t, constants.RoleGuest, f.user(t, 3).Role)
}

func TestReplayAllowsAssignedManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.queue.Enqueue(ctx, f.user(t, 2), constants.ActionRoomUpdate, RoomUpdatePayload{
		HotelID: 1, RoomID: 101, Patch: models.RoomPatch{Price: ptr(220.0)},
	})
	require.NoError(t, err)

	report, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	plaza, err := f.hotels.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 220.0, plaza.Rooms[plaza.FindRoom(101)].Price)
}

func TestReplayUsesCurrentRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, 1)
	_, err := f.queue.Enqueue(ctx, admin, constants.ActionHotelUpdate, HotelUpdatePayload{
		HotelID: 2, Patch: models.HotelPatch{Rating: ptr(3.0)},
	})
	require.NoError(t, err)

	_, err = f.users.Update(ctx, 1, models.UserPatch{Role: ptr(constants.RoleGuest)})
	require.NoError(t, err)

	report, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	seaside, err := f.hotels.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.2, seaside.Rating)
}

func TestCancelCommandIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	guest := f.user(t, 3)
	booking := builders.NewBookingBuilder().WithID(77).WithUser(3).WithRoom(1, 101).
		WithStay("2026-10-01", "2026-10-02").Build()
	_, err := f.bookings.Insert(ctx, booking)
	require.NoError(t, err)

	cmd := NewCancelBookingCommand(guest, 77, f.bookings)
	require.NoError(t, cmd.Execute(ctx))
	require.NoError(t, cmd.Execute(ctx))

	err = NewCancelBookingCommand(guest, 78, f.bookings).Execute(ctx)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestFailedReplayStaysQueued(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.queue.Enqueue(ctx, f.user(t, 1), constants.ActionRoomUpdate, RoomUpdatePayload{HotelID: 1, RoomID: 999, Patch: models.RoomPatch{Price: ptr(1.0)}})
	require.NoError(t, err)

	report, err := f.queue.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Remaining)
}

func ptr[T any](v T) *T { return &v }
