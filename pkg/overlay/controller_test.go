package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func states(c *Controller) (*[]State, ListenerID) {
	var seen []State
	id, _ := c.AddListener(func(s State) { seen = append(seen, s) })
	return &seen, id
}

func TestController_OpenCloseWithoutTransitions(t *testing.T) {
	c := NewController(Config{})
	seen, _ := states(c)

	require.NoError(t, c.Open())
	st, err := c.State()
	require.NoError(t, err)
	assert.Equal(t, Open, st)
	// Transient Opening collapses immediately but is still observed,
	// exactly once each, before Open() returned.
	assert.Equal(t, []State{Opening, Open}, *seen)

	require.NoError(t, c.Close())
	assert.Equal(t, []State{Opening, Open, Closing, Closed}, *seen)
}

func TestController_RedundantCallsDoNotNotify(t *testing.T) {
	c := NewController(Config{})
	seen, _ := states(c)

	require.NoError(t, c.Open())
	require.NoError(t, c.Open())
	assert.Equal(t, []State{Opening, Open}, *seen)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, []State{Opening, Open, Closing, Closed}, *seen)
}

func TestController_Toggle(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.Toggle())
	open, err := c.IsOpen()
	require.NoError(t, err)
	assert.True(t, open)

	require.NoError(t, c.Toggle())
	open, err = c.IsOpen()
	require.NoError(t, err)
	assert.False(t, open)
}

func TestController_EnterTransitionHoldsOpening(t *testing.T) {
	var commit func()
	c := NewController(Config{
		Enter: func(done func()) { commit = done },
	})
	seen, _ := states(c)

	require.NoError(t, c.Open())
	st, _ := c.State()
	assert.Equal(t, Opening, st)
	assert.Equal(t, []State{Opening}, *seen)

	open, _ := c.IsOpen()
	assert.True(t, open, "opening already counts as open")

	commit()
	st, _ = c.State()
	assert.Equal(t, Open, st)
	assert.Equal(t, []State{Opening, Open}, *seen)
}

func TestController_CloseDuringOpeningInvalidatesEnterCompletion(t *testing.T) {
	var commit func()
	c := NewController(Config{
		Enter: func(done func()) { commit = done },
	})

	require.NoError(t, c.Open())
	require.NoError(t, c.Close())
	st, _ := c.State()
	require.Equal(t, Closed, st)

	// The enter animation finishing late must not reopen the surface.
	commit()
	st, _ = c.State()
	assert.Equal(t, Closed, st)
}

func TestController_ExitTransitionHoldsClosing(t *testing.T) {
	var commit func()
	c := NewController(Config{
		Exit: func(done func()) { commit = done },
	})

	require.NoError(t, c.Open())
	require.NoError(t, c.Close())
	st, _ := c.State()
	assert.Equal(t, Closing, st)

	commit()
	st, _ = c.State()
	assert.Equal(t, Closed, st)
}

func TestController_RemoveListener(t *testing.T) {
	c := NewController(Config{})
	seen, id := states(c)

	require.NoError(t, c.RemoveListener(id))
	require.NoError(t, c.Open())
	assert.Empty(t, *seen)
}

func TestController_OwnedFlagFixedAtConstruction(t *testing.T) {
	assert.True(t, NewController(Config{Owned: true}).Owned())
	assert.False(t, NewController(Config{Owned: false}).Owned())
}

func TestController_BorrowedSurvivesComponentTeardown(t *testing.T) {
	// A borrowed controller: the component tearing down must not dispose
	// it, so everything keeps working afterwards.
	c := NewController(Config{Owned: false})

	// Component teardown path: dispose only if owned.
	if c.Owned() {
		require.NoError(t, c.Dispose())
	}

	open, err := c.IsOpen()
	require.NoError(t, err)
	assert.False(t, open)
	assert.NoError(t, c.Open())
}

func TestController_DisposedFailsEverything(t *testing.T) {
	c := NewController(Config{Owned: true})
	require.NoError(t, c.Dispose())

	assert.ErrorIs(t, c.Open(), ErrDisposed)
	assert.ErrorIs(t, c.Close(), ErrDisposed)
	assert.ErrorIs(t, c.Toggle(), ErrDisposed)
	_, err := c.IsOpen()
	assert.ErrorIs(t, err, ErrDisposed)
	_, err = c.State()
	assert.ErrorIs(t, err, ErrDisposed)
	_, err = c.AddListener(func(State) {})
	assert.ErrorIs(t, err, ErrDisposed)
	assert.ErrorIs(t, c.RemoveListener(1), ErrDisposed)
	assert.ErrorIs(t, c.Dispose(), ErrDisposed)
}

func TestController_IDsAreUnique(t *testing.T) {
	a := NewController(Config{})
	b := NewController(Config{})
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEmpty(t, a.ID())
}
