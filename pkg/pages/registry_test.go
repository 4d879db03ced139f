package pages_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reek/pkg/pages"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("registers and gets views", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		require.NoError(t, reg.Register(plainView))

		v, err := reg.Get("page")
		require.NoError(t, err)
		require.Equal(t, plainView, v)
		require.Equal(t, 1, reg.Len())
	})

	t.Run("rejects duplicate labels", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		require.NoError(t, reg.Register(plainView))
		require.ErrorIs(t, reg.Register(testView{label: "page", name: "Other"}), pages.ErrAlreadyRegistered)

		v, err := reg.Get("page")
		require.NoError(t, err)
		require.Equal(t, "Simple page", v.Name())
	})

	t.Run("unknown labels are not registered", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		_, err := reg.Get("missing")
		require.ErrorIs(t, err, pages.ErrNotRegistered)
		require.ErrorIs(t, reg.Unregister("missing"), pages.ErrNotRegistered)
	})

	t.Run("unregisters views", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		reg.MustRegister(plainView)
		require.NoError(t, reg.Unregister("page"))

		_, err := reg.Get("page")
		require.ErrorIs(t, err, pages.ErrNotRegistered)
	})

	t.Run("lists views by name then label", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		reg.MustRegister(
			testView{label: "z", name: "Alpha"},
			testView{label: "b", name: "Beta"},
			testView{label: "a", name: "Alpha"},
		)

		views := reg.Views()
		require.Len(t, views, 3)
		require.Equal(t, []pages.Choice{
			{Label: "a", Name: "Alpha"},
			{Label: "z", Name: "Alpha"},
			{Label: "b", Name: "Beta"},
		}, reg.Choices())

		// Every call returns a fresh listing.
		views[0] = nil
		require.NotNil(t, reg.Views()[0])
	})

	t.Run("must register panics on duplicates", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		require.Panics(t, func() { reg.MustRegister(plainView, plainView) })
	})

	t.Run("version tracks changes", func(t *testing.T) {
		t.Parallel()

		reg := pages.NewRegistry()
		v0 := reg.Version()
		reg.MustRegister(plainView)
		v1 := reg.Version()
		require.Greater(t, v1, v0)

		require.Error(t, reg.Register(plainView))
		require.Equal(t, v1, reg.Version())

		require.NoError(t, reg.Unregister("page"))
		require.Greater(t, reg.Version(), v1)
	})
}
