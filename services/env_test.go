package services

import (
	"context"
	"testing"
	"time"

	"hotelbook/services/logger"
	"hotelbook/store"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	primarySub *store.MemorySubstrate
	primary    *store.Store
	local      *store.Store
	users      *UserService
	auth       *AuthService
	hotels     *HotelService
	queue      *SyncQueue
	monitor    *ConnectivityMonitor
	bookings   *BookingService
	notifier   *recordingNotifier
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) SendMessage(message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func newTestEnv(t *testing.T, policy BookingPolicy) *testEnv {
	t.Helper()
	log := logger.NewDefaultLogger(logger.SilentLevel)
	sub := store.NewMemorySubstrate()
	primary := store.New(store.Options{Substrate: sub, Logger: log})
	local := store.New(store.Options{Logger: log})

	users := NewUserService(UserServiceOptions{Store: primary, HashCost: bcrypt.MinCost, Logger: log})
	auth := NewAuthService(AuthServiceOptions{
		Users:  users,
		Tokens: NewTokenService("test-secret", time.Hour),
		Logger: log,
	})
	hotels := NewHotelService(HotelServiceOptions{Store: primary, Users: users, Logger: log})
	queue := NewSyncQueue(local, log)
	monitor := NewConnectivityMonitor(primary.Ping, log)
	notifier := &recordingNotifier{}
	bookings := NewBookingService(BookingServiceOptions{
		Store:        primary,
		Hotels:       hotels,
		Auth:         auth,
		Queue:        queue,
		Connectivity: monitor,
		Notifier:     notifier,
		Policy:       policy,
		Logger:       log,
	})

	require.NoError(t, SeedStore(context.Background(), primary, users))
	return &testEnv{
		primarySub: sub,
		primary:    primary,
		local:      local,
		users:      users,
		auth:       auth,
		hotels:     hotels,
		queue:      queue,
		monitor:    monitor,
		bookings:   bookings,
		notifier:   notifier,
	}
}

func (e *testEnv) login(t *testing.T, email, password string) *StoreSession {
	t.Helper()
	sess := NewStoreSession(e.local, email)
	_, err := e.auth.Login(context.Background(), sess, email, password)
	require.NoError(t, err)
	return sess
}

func ptr[T any](v T) *T { return &v }
