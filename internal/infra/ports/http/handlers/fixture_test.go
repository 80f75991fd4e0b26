package handlers_test

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/elliottsj/botbot-web/internal/domain/models"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/memory"
	"github.com/elliottsj/botbot-web/internal/infra/adapters/postgres/repository"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/handlers"
	"github.com/elliottsj/botbot-web/internal/infra/ports/http/server"
	"github.com/elliottsj/botbot-web/internal/usecase"
)

// store is a shared in-memory stand-in for the relational store.
type store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*models.User
	channels    map[uuid.UUID]*models.Channel
	memberships []*models.Membership
	logs        []*models.Log
}

func newStore() *store {
	return &store{
		users:    make(map[uuid.UUID]*models.User),
		channels: make(map[uuid.UUID]*models.Channel),
	}
}

func (s *store) lastLogAt(channelID uuid.UUID) sql.NullTime {
	var last sql.NullTime
	for _, l := range s.logs {
		if l.ChannelID == channelID && (!last.Valid || l.Timestamp.After(last.Time)) {
			last = sql.NullTime{Time: l.Timestamp, Valid: true}
		}
	}
	return last
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[user.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.Nick = user.Nick
	stored.Timezone = user.Timezone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Password = hash
	return nil
}

func (r *fakeUserRepo) UpdateTimezone(_ context.Context, id uuid.UUID, timezone string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Timezone = timezone
	return nil
}

type fakeChannelRepo struct{ s *store }

func (r *fakeChannelRepo) Create(_ context.Context, channel *models.Channel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.channels[channel.ID] = channel
	return nil
}

func (r *fakeChannelRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Channel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	channel, ok := r.s.channels[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *channel
	cp.LastLogAt = r.s.lastLogAt(id)
	return &cp, nil
}

func (r *fakeChannelRepo) Update(_ context.Context, channel *models.Channel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.channels[channel.ID] = channel
	return nil
}

func (r *fakeChannelRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.channels, id)
	return nil
}

func (r *fakeChannelRepo) GetActivePublicChannels(_ context.Context) ([]*models.Channel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var channels []*models.Channel
	for _, c := range r.s.channels {
		if !c.IsPublic {
			continue
		}
		if last := r.s.lastLogAt(c.ID); last.Valid {
			cp := *c
			cp.LastLogAt = last
			channels = append(channels, &cp)
		}
	}
	return channels, nil
}

func (r *fakeChannelRepo) GetPrivateChannelsByUserID(_ context.Context, userID uuid.UUID) ([]*models.Channel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var channels []*models.Channel
	for _, m := range r.s.memberships {
		if m.UserID != userID {
			continue
		}
		if c, ok := r.s.channels[m.ChannelID]; ok && !c.IsPublic {
			cp := *c
			channels = append(channels, &cp)
		}
	}
	return channels, nil
}

func (r *fakeChannelRepo) GetAdminChannelsByUserID(_ context.Context, userID uuid.UUID) ([]*models.Channel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var channels []*models.Channel
	for _, m := range r.s.memberships {
		if m.UserID != userID || !m.CanManage() {
			continue
		}
		if c, ok := r.s.channels[m.ChannelID]; ok {
			cp := *c
			channels = append(channels, &cp)
		}
	}
	return channels, nil
}

type fakeMembershipRepo struct{ s *store }

func (r *fakeMembershipRepo) Create(_ context.Context, m *models.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.memberships = append(r.s.memberships, m)
	return nil
}

func (r *fakeMembershipRepo) GetByUserAndChannel(_ context.Context, userID, channelID uuid.UUID) (*models.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.memberships {
		if m.UserID == userID && m.ChannelID == channelID {
			return m, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeMembershipRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*models.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Membership
	for _, m := range r.s.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, userID, channelID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.memberships {
		if m.UserID == userID && m.ChannelID == channelID {
			r.s.memberships = append(r.s.memberships[:i], r.s.memberships[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeLogRepo struct{ s *store }

func (r *fakeLogRepo) Create(_ context.Context, log *models.Log) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.logs = append(r.s.logs, log)
	return nil
}

func (r *fakeLogRepo) LatestByChannelID(_ context.Context, channelID uuid.UUID, limit int) ([]*models.Log, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var logs []*models.Log
	for i := len(r.s.logs) - 1; i >= 0 && len(logs) < limit; i-- {
		if r.s.logs[i].ChannelID == channelID {
			logs = append(logs, r.s.logs[i])
		}
	}
	return logs, nil
}

var (
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ repository.ChannelRepository    = (*fakeChannelRepo)(nil)
	_ repository.MembershipRepository = (*fakeMembershipRepo)(nil)
	_ repository.LogRepository        = (*fakeLogRepo)(nil)
)

// recordingRenderer captures the template name and data of the last render
// while still producing real output.
type recordingRenderer struct {
	inner echo.Renderer

	mu       sync.Mutex
	lastName string
	lastData echo.Map
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	r.mu.Lock()
	r.lastName = name
	if m, ok := data.(echo.Map); ok {
		r.lastData = m
	} else {
		r.lastData = nil
	}
	r.mu.Unlock()

	return r.inner.Render(w, name, data, c)
}

func (r *recordingRenderer) last() (string, echo.Map) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastName, r.lastData
}

const botToken = "test-bot-token"

type testEnv struct {
	e        *echo.Echo
	renderer *recordingRenderer
	store    *store

	sessions usecase.SessionUsecase

	member         *models.User
	outsider       *models.User
	chatbot        *models.ChatBot
	publicChannel  *models.Channel
	privateChannel *models.Channel
}

// newTestEnv builds the full HTTP stack over in-memory repositories and
// seeds the account fixture: a staff member owning a private channel, an
// outsider with no memberships, and a public channel with logged activity.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := newStore()

	userRepo := &fakeUserRepo{s: s}
	channelRepo := &fakeChannelRepo{s: s}
	membershipRepo := &fakeMembershipRepo{s: s}
	logRepo := &fakeLogRepo{s: s}
	sessionRepo := memory.NewSessionRepository()
	streamRepo := memory.NewStreamRepository()

	accountUsecase := usecase.NewAccountUsecase(userRepo)
	channelUsecase := usecase.NewChannelUsecase(channelRepo, membershipRepo)
	logUsecase := usecase.NewLogUsecase(logRepo, channelRepo, streamRepo)
	sessionUsecase := usecase.NewSessionUsecase([]byte("test-secret"), sessionRepo)

	e, err := server.New(
		sessionUsecase,
		accountUsecase,
		handlers.NewDashboardHandler(channelUsecase),
		handlers.NewChannelHandler(channelUsecase),
		handlers.NewAccountHandler(accountUsecase),
		handlers.NewAuthHandler(accountUsecase, sessionUsecase),
		handlers.NewTimezoneHandler(accountUsecase, sessionUsecase),
		handlers.NewStreamHandler(channelUsecase, logUsecase, streamRepo),
		handlers.NewLogPushHandler(botToken, logUsecase),
	)
	require.NoError(t, err)

	renderer := &recordingRenderer{inner: e.Renderer}
	e.Renderer = renderer

	env := &testEnv{
		e:        e,
		renderer: renderer,
		store:    s,
		sessions: sessionUsecase,
	}

	ctx := context.Background()

	env.member = seedUser(t, userRepo, "dupont éîïè", "dupont@botbot.local", "secret")
	env.member.IsStaff = true
	env.member.IsSuperuser = true
	s.users[env.member.ID].IsStaff = true
	s.users[env.member.ID].IsSuperuser = true

	env.outsider = seedUser(t, userRepo, "Marie Thérèse", "m.therese@botbot.local", "secret")

	env.chatbot = models.NewChatBot("testserver", "botbot")

	env.publicChannel = models.NewChannel(env.chatbot.ID, "#Test", true)
	env.publicChannel.Slug = sql.NullString{String: "test", Valid: true}
	require.NoError(t, channelRepo.Create(ctx, env.publicChannel))

	require.NoError(t, logRepo.Create(ctx, models.NewLog(env.publicChannel.ID, "PRIVMSG", "botbot", "hello")))

	env.privateChannel = models.NewChannel(env.chatbot.ID, "#test-internal", false)
	require.NoError(t, channelRepo.Create(ctx, env.privateChannel))

	membership := models.NewMembership(env.member.ID, env.privateChannel.ID)
	membership.IsOwner = true
	membership.IsAdmin = true
	require.NoError(t, membershipRepo.Create(ctx, membership))

	return env
}

func seedUser(t *testing.T, repo repository.UserRepository, username, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.NewUser(username, email)
	user.Password = string(hash)
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func (env *testEnv) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	return rec
}

func (env *testEnv) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	return rec
}

// login signs the user in through the real login endpoint and returns the
// session cookies for follow-up requests.
func (env *testEnv) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()

	rec := env.postForm("/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)

	require.Equal(t, http.StatusFound, rec.Code, "login should redirect")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "login should set a session cookie")

	return cookies
}
