package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"livevip/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type sessionHarness struct {
	session  *ViewingSession
	catalog  *fakeCatalogSource
	accounts *fakeEntitlementSource
	store    *fakeSessionStore
	surface  *fakeSurface
	sched    *fakeScheduler

	gates []domain.GateReason
}

func newSessionHarness(t *testing.T) *sessionHarness {
	h := &sessionHarness{
		catalog:  &fakeCatalogSource{},
		accounts: &fakeEntitlementSource{premium: map[string]bool{}},
		store:    &fakeSessionStore{},
		surface:  &fakeSurface{},
		sched:    newFakeScheduler(),
	}
	h.catalog.set(testStreams(), nil)

	logger := zaptest.NewLogger(t)
	adapter := NewCatalogAdapter(h.catalog, h.sched, 30*time.Second, logger)
	resolver := NewEntitlementResolver(h.accounts, h.store, logger)

	h.session = NewViewingSession(
		ViewingSessionConfig{
			WatchBudgetSeconds: 300,
			TickInterval:       time.Second,
			NavDebounce:        300 * time.Millisecond,
			ResumeDelay:        100 * time.Millisecond,
			ControlsHideDelay:  4 * time.Second,
		},
		adapter,
		resolver,
		h.surface,
		h.sched,
		newFakeClock(),
		rand.New(rand.NewSource(1)),
		logger,
	)
	h.session.OnGate(func(reason domain.GateReason) {
		h.gates = append(h.gates, reason)
	})
	h.session.Start(context.Background())
	return h
}

// watch fires the session tick n times.
func (h *sessionHarness) watch(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		h.session.Tick()
	}
}

func TestViewingSession_AnonymousBrowsing(t *testing.T) {
	h := newSessionHarness(t)

	// VIP streams are hidden from anonymous viewers.
	visible := h.session.VisibleStreams()
	require.Len(t, visible, 2)
	for _, s := range visible {
		assert.False(t, s.VIPOnly)
	}
	assert.Equal(t, 1, h.session.HiddenVIPCount())
	assert.Equal(t, domain.PhaseIdle, h.session.State().Phase)
	assert.Equal(t, "5:00", h.session.RemainingClock())
}

func TestViewingSession_SelectStartsViewing(t *testing.T) {
	h := newSessionHarness(t)
	visible := h.session.VisibleStreams()

	require.NoError(t, h.session.Select(visible[0]))

	state := h.session.State()
	assert.Equal(t, domain.PhaseViewing, state.Phase)
	require.NotNil(t, state.Current)
	assert.Equal(t, visible[0].ID, state.Current.ID)
	assert.Equal(t, 0, state.WatchSeconds)
	assert.Equal(t, visible[0].VideoURL, h.surface.loadedURL)
	assert.NotNil(t, h.session.Feed())
}

func TestViewingSession_GateFiresExactlyOnce(t *testing.T) {
	h := newSessionHarness(t)
	require.NoError(t, h.session.Select(h.session.VisibleStreams()[0]))

	h.watch(t, 299)
	assert.Equal(t, domain.PhaseViewing, h.session.State().Phase)
	assert.Equal(t, 1, h.session.Remaining())
	assert.Empty(t, h.gates)

	h.watch(t, 1)
	assert.Equal(t, domain.PhaseGated, h.session.State().Phase)
	assert.Equal(t, domain.GateTimeExpired, h.session.State().Reason)
	assert.Equal(t, "0:00", h.session.RemainingClock())
	require.Len(t, h.gates, 1)

	// Further ticks are no-ops: the clock holds and the gate does not
	// re-fire.
	h.watch(t, 5)
	assert.Equal(t, 300, h.session.State().WatchSeconds)
	assert.Len(t, h.gates, 1)
}

func TestViewingSession_PremiumNeverGates(t *testing.T) {
	h := newSessionHarness(t)
	h.accounts.premium["vip@example.com"] = true
	ent := h.session.Login(context.Background(), "vip@example.com")
	require.True(t, ent.Premium)

	require.NoError(t, h.session.Select(h.session.VisibleStreams()[0]))
	h.watch(t, 500)

	assert.Equal(t, domain.PhaseViewing, h.session.State().Phase)
	assert.Equal(t, 0, h.session.State().WatchSeconds)
	assert.Empty(t, h.gates)
}

func TestViewingSession_VIPSelectionRejected(t *testing.T) {
	h := newSessionHarness(t)
	streams := testStreams()
	free, vip := streams[0], streams[2]
	require.True(t, vip.VIPOnly)

	require.NoError(t, h.session.Select(free))

	err := h.session.Select(vip)
	assert.ErrorIs(t, err, domain.ErrPremiumRequired)

	state := h.session.State()
	assert.Equal(t, domain.PhaseGated, state.Phase)
	assert.Equal(t, domain.GateVIPOnly, state.Reason)
	require.NotNil(t, state.Attempted)
	assert.Equal(t, vip.ID, state.Attempted.ID)

	// The prior selection is untouched.
	require.NotNil(t, state.Current)
	assert.Equal(t, free.ID, state.Current.ID)
	require.Len(t, h.gates, 1)
	assert.Equal(t, domain.GateVIPOnly, h.gates[0])
}

func TestViewingSession_UpgradeAfterVIPRejection(t *testing.T) {
	h := newSessionHarness(t)
	vip := testStreams()[2]

	err := h.session.Select(vip)
	require.ErrorIs(t, err, domain.ErrPremiumRequired)

	h.session.Upgrade(context.Background())

	state := h.session.State()
	assert.Equal(t, domain.PhaseViewing, state.Phase)
	require.NotNil(t, state.Current)
	assert.Equal(t, vip.ID, state.Current.ID)
	assert.Nil(t, state.Attempted)
	assert.Equal(t, domain.GateNone, state.Reason)

	// The full catalog, VIP included, is now visible.
	assert.Len(t, h.session.VisibleStreams(), 3)
	assert.Equal(t, 0, h.session.HiddenVIPCount())
}

func TestViewingSession_UpgradeAfterTimeExpiry(t *testing.T) {
	h := newSessionHarness(t)
	require.NoError(t, h.session.Select(h.session.VisibleStreams()[0]))
	h.watch(t, 300)
	require.Equal(t, domain.PhaseGated, h.session.State().Phase)

	h.session.Upgrade(context.Background())

	state := h.session.State()
	assert.Equal(t, domain.PhaseViewing, state.Phase)
	assert.Equal(t, 0, state.WatchSeconds)
	assert.Equal(t, "5:00", h.session.RemainingClock())

	// Premium now holds, so the clock stays still.
	h.watch(t, 50)
	assert.Equal(t, 0, h.session.State().WatchSeconds)
}

func TestViewingSession_SwitchingStreamsResetsFeedNotClock(t *testing.T) {
	h := newSessionHarness(t)
	visible := h.session.VisibleStreams()

	require.NoError(t, h.session.Select(visible[0]))
	first := h.session.Feed()
	require.True(t, h.session.Like())

	h.watch(t, 40)
	require.NoError(t, h.session.Select(visible[1]))

	// Fresh feed, fresh like, and the watch count restarts with the new
	// selection.
	second := h.session.Feed()
	assert.NotSame(t, first, second)
	assert.True(t, h.session.Like())
	assert.Equal(t, 0, h.session.State().WatchSeconds)
}

func TestViewingSession_CommentsGatedByPremium(t *testing.T) {
	h := newSessionHarness(t)
	require.NoError(t, h.session.Select(h.session.VisibleStreams()[0]))

	_, err := h.session.PostComment("olá!")
	assert.ErrorIs(t, err, domain.ErrPremiumRequired)

	h.accounts.premium["ana@example.com"] = true
	h.session.Login(context.Background(), "ana@example.com")

	c, err := h.session.PostComment("olá!")
	require.NoError(t, err)
	assert.Equal(t, "ana", c.Author)
}

func TestViewingSession_NavigationAcrossEligible(t *testing.T) {
	h := newSessionHarness(t)
	visible := h.session.VisibleStreams()
	require.NoError(t, h.session.Select(visible[0]))

	assert.True(t, h.session.Next())
	h.sched.fireOneShots()

	state := h.session.State()
	require.NotNil(t, state.Current)
	assert.Equal(t, visible[1].ID, state.Current.ID)

	// Swipe down goes back.
	assert.True(t, h.session.Swipe(100, 300, 100, 400))
	h.sched.fireOneShots()
	assert.Equal(t, visible[0].ID, h.session.State().Current.ID)
}

func TestViewingSession_CloseTearsDown(t *testing.T) {
	h := newSessionHarness(t)
	require.NoError(t, h.session.Select(h.session.VisibleStreams()[0]))
	feed := h.session.Feed()
	require.NotNil(t, feed)

	h.session.Close()

	state := h.session.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Nil(t, state.Current)
	assert.Nil(t, h.session.Feed())

	// The old feed's generator is dead.
	h.sched.fireOneShots()
	assert.Empty(t, feed.Comments())

	// Ticks after close do nothing.
	h.watch(t, 10)
	assert.Equal(t, 0, h.session.State().WatchSeconds)
}

func TestViewingSession_PersistedPremiumRestored(t *testing.T) {
	h := newSessionHarness(t)
	h.accounts.premium["ana@example.com"] = true
	h.session.Login(context.Background(), "ana@example.com")
	require.NotNil(t, h.store.session)

	// A second session against the same store starts premium.
	logger := zaptest.NewLogger(t)
	adapter := NewCatalogAdapter(h.catalog, h.sched, 30*time.Second, logger)
	resolver := NewEntitlementResolver(h.accounts, h.store, logger)
	restored := NewViewingSession(
		ViewingSessionConfig{WatchBudgetSeconds: 300},
		adapter, resolver, &fakeSurface{}, h.sched, newFakeClock(),
		rand.New(rand.NewSource(2)), logger,
	)
	restored.Start(context.Background())

	assert.True(t, restored.Entitlement().Premium)
	assert.Len(t, restored.VisibleStreams(), 3)
}
