package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pulse-backend/config"
	"pulse-backend/internal/model"
	"pulse-backend/internal/repository"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/password"
	"pulse-backend/pkg/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// newTestDB opens an in-memory sqlite database scoped to one test. The DSN
// embeds the test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Connection{},
		&model.Moment{},
		&model.MomentRecipient{},
		&model.Reply{},
		&model.ProfilePhoto{},
	))
	return db
}

// fakeNotifier records dispatched events so tests can assert on the
// notification contract without touching mail or FCM.
type fakeNotifier struct {
	welcomed     []uint            // user ids
	requested    [][2]uint         // requester id, receiver id
	momentsSent  []uint            // moment ids
	repliesTexts map[uint][]string // moment owner id -> reply texts
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{repliesTexts: make(map[uint][]string)}
}

func (f *fakeNotifier) Welcome(user *model.User) {
	f.welcomed = append(f.welcomed, user.ID)
}

func (f *fakeNotifier) ConnectionRequested(requester, receiver *model.User) {
	f.requested = append(f.requested, [2]uint{requester.ID, receiver.ID})
}

func (f *fakeNotifier) MomentSent(sender, receiver *model.User, momentID uint, text string) {
	f.momentsSent = append(f.momentsSent, momentID)
}

func (f *fakeNotifier) ReplyPosted(replier, momentOwner *model.User, momentID uint, text string) {
	f.repliesTexts[momentOwner.ID] = append(f.repliesTexts[momentOwner.ID], text)
}

// testEnv bundles the service graph over one test database.
type testEnv struct {
	db       *gorm.DB
	notifier *fakeNotifier
	users    *UserService
	conns    *ConnectionService
	moments  *MomentService
	photos   *PhotoService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	notifier := newFakeNotifier()
	jwtSvc := jwt.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "pulse-test",
	})

	// No bucket configured: presigned uploads stay disabled in tests.
	mediaStore, err := storage.New(context.Background(), config.StorageConfig{})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	momentRepo := repository.NewMomentRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	conns := NewConnectionService(connRepo, userRepo, notifier)
	return &testEnv{
		db:       db,
		notifier: notifier,
		users:    NewUserService(userRepo, jwtSvc, notifier),
		conns:    conns,
		moments:  NewMomentService(momentRepo, userRepo, conns, notifier),
		photos:   NewPhotoService(photoRepo, mediaStore),
	}
}

// createUser inserts an account directly, bypassing signup so tests don't
// depend on token issuance.
func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()

	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		AvatarEmoji:  "😊",
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

// connect establishes an ACCEPTED connection between two users via the
// normal request/respond flow.
func (e *testEnv) connect(t *testing.T, a, b *model.User) {
	t.Helper()

	conn, created, err := e.conns.Request(a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, created)

	_, err = e.conns.Respond(conn.ID, b.ID, model.StatusAccepted)
	require.NoError(t, err)
}
