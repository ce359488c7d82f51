package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gala/internal/domain"
	"gala/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type fakeAuth struct{}

func (fakeAuth) Authenticate(_ context.Context, token string) (*models.Admin, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &models.Admin{ID: 7, Email: "admin@example.com"}, nil
}

func TestHubBroadcastAndClose(t *testing.T) {
	hub := NewHub()
	a, b := NewClient(1), NewClient(2)
	hub.Register(a)
	hub.Register(b)
	require.Equal(t, 2, hub.ClientCount())

	hub.PublishSection(domain.EventSectionUpdated, &models.Section{ID: 3, Section: "careers", Version: 4})
	for _, c := range []*Client{a, b} {
		var ev SectionEvent
		require.NoError(t, json.Unmarshal(<-c.Send, &ev))
		assert.Equal(t, SectionEvent{Type: "section.updated", ID: 3, Section: "careers", Version: 4}, ev)
	}

	a.Close()
	a.Close()
	assert.Equal(t, 1, hub.ClientCount())

	// publishing after close must not panic on the closed channel
	hub.PublishSection(domain.EventSectionDeleted, &models.Section{ID: 3})
	hub.CloseAll()
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := NewClient(1)
	hub.Register(c)
	for i := 0; i < cap(c.Send)+10; i++ {
		hub.BroadcastAll(map[string]int{"n": i})
	}
	assert.Len(t, c.Send, cap(c.Send))
	hub.CloseAll()
}

func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.GET("/ws/sections", UpgradeSectionsWS(fakeAuth{}, hub, zap.NewNop()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestUpgradeDeliversEvents(t *testing.T) {
	hub := NewHub()
	srv := newServer(t, hub)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sections?token=good"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	hub.PublishSection(domain.EventSectionCreated, &models.Section{ID: 1, Section: "faq", Version: 1})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev SectionEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "section.created", ev.Type)
	assert.Equal(t, "faq", ev.Section)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestUpgradeRejectsBadToken(t *testing.T) {
	srv := newServer(t, NewHub())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sections?token=bad"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
