package router_test

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"community-bot/database"
	"community-bot/gateway"
	"community-bot/models"
	"community-bot/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceChannel = "chan-source"

// fakeGateway is an in-memory ChannelGateway. Error fields make individual
// steps fail on demand.
type fakeGateway struct {
	mu      sync.Mutex
	threads map[string]*gateway.ThreadRef
	nextID  int

	createErr error
	postErr   error
	embedErr  error
	deleteErr error

	posts      map[string][]string // target -> posted contents
	embeds     []string            // channels that received a discovery embed
	deleted    []string            // deleted message IDs
	dms        map[string][]string // user -> direct messages
	unarchived []string            // threads that were un-archived
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		threads: make(map[string]*gateway.ThreadRef),
		posts:   make(map[string][]string),
		dms:     make(map[string][]string),
	}
}

func (f *fakeGateway) CreateThread(parentID, name string, autoArchiveMinutes int) (*gateway.ThreadRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	ref := &gateway.ThreadRef{ID: fmt.Sprintf("thread-%d", f.nextID), ParentID: parentID, Name: name}
	f.threads[ref.ID] = ref
	out := *ref
	return &out, nil
}

func (f *fakeGateway) FetchThread(id string) (*gateway.ThreadRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref, ok := f.threads[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	out := *ref
	return &out, nil
}

func (f *fakeGateway) SetArchived(threadID string, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ref, ok := f.threads[threadID]; ok {
		ref.Archived = archived
	}
	if !archived {
		f.unarchived = append(f.unarchived, threadID)
	}
	return nil
}

func (f *fakeGateway) PostMessage(channelID, content string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return "", f.postErr
	}
	f.posts[channelID] = append(f.posts[channelID], content)
	return "msg-posted", nil
}

func (f *fakeGateway) PostEmbed(channelID, title, description, targetURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.embedErr != nil {
		return "", f.embedErr
	}
	f.embeds = append(f.embeds, channelID)
	return "msg-embed", nil
}

func (f *fakeGateway) DeleteMessage(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeGateway) SendDirect(userID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms[userID] = append(f.dms[userID], content)
	return nil
}

func testSettings() *models.Settings {
	return &models.Settings{
		Bot: models.BotSettings{
			SourceChannelID:    sourceChannel,
			DiscoveryEmbed:     true,
			AutoArchiveMinutes: 1440,
		},
	}
}

func newTestRouter(t *testing.T) (*router.Router, *fakeGateway, *sql.DB) {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gw := newFakeGateway()
	return router.New(db, gw, testSettings()), gw, db
}

func route(r *router.Router, messageID, content string) (*models.RouteResult, error) {
	return r.RouteAuthorPost("g1", "author-1", "Alice", sourceChannel, messageID, content, nil)
}

func TestFirstPostCreatesThread(t *testing.T) {
	r, gw, db := newTestRouter(t)

	res, err := route(r, "m1", "look https://example.com/build")
	require.NoError(t, err)
	assert.True(t, res.Created)

	mapped, exists, err := database.GetThreadMapping(db, "g1", "author-1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, res.ThreadID, mapped)

	// Content was reposted into the thread, tagging the author.
	require.Len(t, gw.posts[res.ThreadID], 1)
	assert.Contains(t, gw.posts[res.ThreadID][0], "<@author-1>")
	assert.Contains(t, gw.posts[res.ThreadID][0], "https://example.com/build")

	// Discovery embed and original deletion both happened.
	assert.Equal(t, []string{sourceChannel}, gw.embeds)
	assert.Equal(t, []string{"m1"}, gw.deleted)

	// Thread name carries the author and the link host.
	assert.Contains(t, gw.threads[res.ThreadID].Name, "Alice")
	assert.Contains(t, gw.threads[res.ThreadID].Name, "example.com")
}

func TestLongThreadNameIsTruncated(t *testing.T) {
	r, gw, _ := newTestRouter(t)

	// A display name well past the cap; Discord rejects names over 100.
	longName := strings.Repeat("ü", 120)
	res, err := r.RouteAuthorPost("g1", "author-1", longName, sourceChannel, "m1", "https://example.com/x", nil)
	require.NoError(t, err)

	name := gw.threads[res.ThreadID].Name
	assert.True(t, strings.HasSuffix(name, "…"))
	assert.LessOrEqual(t, len([]rune(name)), 97)
}

func TestSecondPostReusesThread(t *testing.T) {
	r, gw, _ := newTestRouter(t)

	first, err := route(r, "m1", "https://example.com/1")
	require.NoError(t, err)
	second, err := route(r, "m2", "https://example.com/2")
	require.NoError(t, err)

	assert.Equal(t, first.ThreadID, second.ThreadID)
	assert.False(t, second.Created)
	assert.Len(t, gw.threads, 1)
	assert.Len(t, gw.posts[first.ThreadID], 2)
}

func TestDeletedThreadIsReplaced(t *testing.T) {
	r, gw, db := newTestRouter(t)

	first, err := route(r, "m1", "https://example.com/1")
	require.NoError(t, err)

	// Simulate external deletion.
	gw.mu.Lock()
	delete(gw.threads, first.ThreadID)
	gw.mu.Unlock()

	second, err := route(r, "m2", "https://example.com/2")
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.ThreadID, second.ThreadID)

	// The mapping now points only at the new thread.
	mapped, exists, err := database.GetThreadMapping(db, "g1", "author-1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, second.ThreadID, mapped)
}

func TestLockedThreadIsReplaced(t *testing.T) {
	r, gw, db := newTestRouter(t)

	first, err := route(r, "m1", "https://example.com/1")
	require.NoError(t, err)

	gw.mu.Lock()
	gw.threads[first.ThreadID].Locked = true
	gw.mu.Unlock()

	second, err := route(r, "m2", "https://example.com/2")
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.ThreadID, second.ThreadID)

	mapped, _, err := database.GetThreadMapping(db, "g1", "author-1")
	require.NoError(t, err)
	assert.Equal(t, second.ThreadID, mapped)
}

func TestArchivedThreadIsRevived(t *testing.T) {
	r, gw, _ := newTestRouter(t)

	first, err := route(r, "m1", "https://example.com/1")
	require.NoError(t, err)

	gw.mu.Lock()
	gw.threads[first.ThreadID].Archived = true
	gw.mu.Unlock()

	second, err := route(r, "m2", "https://example.com/2")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ThreadID, second.ThreadID)
	assert.Equal(t, []string{first.ThreadID}, gw.unarchived)
	assert.False(t, gw.threads[first.ThreadID].Archived)
}

func TestCreateFailureSurfacesRoutingFailed(t *testing.T) {
	r, gw, db := newTestRouter(t)
	gw.createErr = errors.New("quota exceeded")

	_, err := route(r, "m1", "https://example.com/1")
	require.Error(t, err)
	assert.ErrorIs(t, err, router.ErrRoutingFailed)

	// Nothing was persisted and nothing was deleted.
	_, exists, err := database.GetThreadMapping(db, "g1", "author-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, gw.deleted)
}

func TestCosmeticFailuresDoNotFailRouting(t *testing.T) {
	r, gw, _ := newTestRouter(t)
	gw.embedErr = errors.New("permission denied")
	gw.deleteErr = errors.New("permission denied")

	res, err := route(r, "m1", "https://example.com/1")
	require.NoError(t, err)
	assert.Len(t, gw.posts[res.ThreadID], 1, "content must be preserved in the thread")
}

func TestConcurrentSameAuthorCreatesOneThread(t *testing.T) {
	r, gw, _ := newTestRouter(t)

	const posts = 4
	results := make(chan *models.RouteResult, posts)
	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			res, err := route(r, fmt.Sprintf("m%d", n), "https://example.com/x")
			assert.NoError(t, err)
			results <- res
		}(i)
	}
	wg.Wait()
	close(results)

	threadIDs := make(map[string]bool)
	for res := range results {
		threadIDs[res.ThreadID] = true
	}
	assert.Len(t, threadIDs, 1, "all posts must land in the same thread")
	assert.Len(t, gw.threads, 1)
}

func TestHandleLinkViolation(t *testing.T) {
	r, gw, db := newTestRouter(t)

	r.HandleLinkViolation(sourceChannel, "m1", "author-1", "no link here, sorry")

	assert.Equal(t, []string{"m1"}, gw.deleted)
	require.Len(t, gw.dms["author-1"], 1)
	assert.Contains(t, gw.dms["author-1"][0], "no link here, sorry")

	_, exists, err := database.GetThreadMapping(db, "g1", "author-1")
	require.NoError(t, err)
	assert.False(t, exists, "link violations never create mappings")
}
