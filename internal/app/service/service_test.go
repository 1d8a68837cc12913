package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"runboard/internal/common/security"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"
	"runboard/internal/platform/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type notification struct {
	Room    string
	Event   string
	Payload interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) Notify(_ context.Context, room, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{Room: room, Event: event, Payload: payload})
}

func (n *recordingNotifier) Events() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.events...)
}

type recordingAnnouncer struct {
	calls []string
}

func (a *recordingAnnouncer) RunApproved(username, challenge, videoURL string) {
	a.calls = append(a.calls, username+"|"+challenge+"|"+videoURL)
}

type memoryStorage struct {
	objects map[string]string
}

func (m *memoryStorage) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string]string{}
	}
	m.objects[name] = string(body)
	return "http://files.test/" + name, nil
}

type fixture struct {
	db          *gorm.DB
	users       repository.UserRepository
	challenges  repository.ChallengeRepository
	runs        repository.RunRepository
	discussions repository.DiscussionRepository
	tokens      *security.TokenIssuer
	notifier    *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	return &fixture{
		db:          db,
		users:       repository.NewUserRepository(db),
		challenges:  repository.NewChallengeRepository(db),
		runs:        repository.NewRunRepository(db),
		discussions: repository.NewDiscussionRepository(db),
		tokens:      security.NewTokenIssuer([]byte("test-secret"), time.Minute, time.Hour),
		notifier:    &recordingNotifier{},
	}
}

func (f *fixture) user(t *testing.T, username, role string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) challenge(t *testing.T, name string, difficulty int, league string) *model.Challenge {
	t.Helper()
	c := &model.Challenge{Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Difficulty: difficulty, League: league}
	require.NoError(t, f.challenges.Create(context.Background(), c))
	return c
}

func (f *fixture) run(t *testing.T, user *model.User, c *model.Challenge, status model.RunStatus) *model.Run {
	t.Helper()
	r := &model.Run{UserID: user.ID, ChallengeID: c.ID, VideoURL: "https://video.test/" + c.Slug, Status: status}
	require.NoError(t, f.runs.Create(context.Background(), r))
	return r
}

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
}

