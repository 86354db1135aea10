package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ez-sync/internal/profile"
	"ez-sync/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `a:
  local: /home/me/a
  remote: /srv/a
b:
  c1:
    local: /home/me/c1
    remote: /srv/c1
  c2:
    local: /home/me/c2
    remote: /srv/c2
editor: vim
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func parse(t *testing.T, content string) *store.Store {
	t.Helper()
	s, err := store.Parse([]byte(content))
	require.NoError(t, err)
	return s
}

func root(n string) profile.Name { return profile.Root{Name: n} }
func child(parent, n string) profile.Name { return profile.Child{Parent: parent, Name: n} }

func TestLoadSaveRoundTrip(t *testing.T) {
	path := writeFile(t, sample)

	s, err := store.Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
}

func TestRoundTripKeepsUnrelatedContent(t *testing.T) {
	input := `# synced folders
settings:
  verbose: true
a:
  local: /x
  remote: /y
  note: keep me
`
	s := parse(t, input)
	require.NoError(t, s.AddProfile(root("z"), profile.Table("/1", "/2")))

	data, err := s.Bytes()
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# synced folders")
	assert.Contains(t, out, "settings:\n  verbose: true\n")
	assert.Contains(t, out, "  note: keep me\n")
	assert.Contains(t, out, "z:\n  local: /1\n  remote: /2\n")
}

func TestLoad(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		s, err := store.Load(writeFile(t, ""))
		require.NoError(t, err)
		assert.Empty(t, s.LeafProfiles())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, profile.ErrStoreIO)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "a: [unclosed\n"))
		assert.ErrorIs(t, err, profile.ErrStoreParse)
	})

	t.Run("top level list", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "- a\n- b\n"))
		assert.ErrorIs(t, err, profile.ErrStoreParse)
	})

	t.Run("half leaf at root", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "a:\n  local: /x\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "a must define both local and remote")
	})

	t.Run("half leaf in group", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "g:\n  c:\n    remote: /x\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "g.c")
	})

	t.Run("third level", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "g:\n  c:\n    d:\n      local: /x\n      remote: /y\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "g.c is not a profile")
	})

	t.Run("non string path", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "a:\n  local: /x\n  remote: 3\n"))
		assert.ErrorIs(t, err, profile.ErrStoreParse)
	})

	t.Run("duplicate root key", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "a:\n  local: /1\n  remote: /2\na:\n  local: /3\n  remote: /4\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "a is defined more than once")
	})

	t.Run("duplicate child key", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "g:\n  c:\n    local: /1\n    remote: /2\n  c:\n    local: /3\n    remote: /4\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "g.c is defined more than once")
	})

	t.Run("duplicate path key", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "a:\n  local: /1\n  local: /2\n  remote: /3\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "a.local is defined more than once")
	})

	t.Run("alias", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "x: &p\n  local: /1\n  remote: /2\ny: *p\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "y is an alias")
	})

	t.Run("alias in group", func(t *testing.T) {
		_, err := store.Load(writeFile(t, "x: &p\n  local: /1\n  remote: /2\ng:\n  c: *p\n"))
		require.ErrorIs(t, err, profile.ErrStoreParse)
		assert.Contains(t, err.Error(), "g.c is an alias")
	})
}

func TestCommentOnlyDocument(t *testing.T) {
	s := parse(t, "# my profiles\n")
	assert.Empty(t, s.LeafProfiles())

	data, err := s.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "# my profiles\n", string(data))

	require.NoError(t, s.AddProfile(root("x"), profile.Table("/a", "/b")))
	data, err = s.Bytes()
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# my profiles\n"), out)
	assert.Contains(t, out, "x:\n  local: /a\n  remote: /b\n")
}

func TestEmptyStoreSavesEmptyFile(t *testing.T) {
	path := writeFile(t, "a:\n  local: /1\n  remote: /2\n")
	s, err := store.Load(path)
	require.NoError(t, err)

	_, err = s.RemoveProfile(root("a"))
	require.NoError(t, err)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	// The empty file loads back as an empty store.
	s, err = store.Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.LeafProfiles())
}

func TestSaveUnwritable(t *testing.T) {
	s := store.New()
	err := s.Save(filepath.Join(t.TempDir(), "missing-dir", "profiles.yaml"))
	assert.ErrorIs(t, err, profile.ErrStoreIO)
}

func TestGetProfiles(t *testing.T) {
	s := parse(t, sample)

	t.Run("root leaf", func(t *testing.T) {
		got, err := s.GetProfiles(root("a"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{{Name: root("a"), Local: "/home/me/a", Remote: "/srv/a"}}, got)
	})

	t.Run("root group", func(t *testing.T) {
		got, err := s.GetProfiles(root("b"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{
			{Name: child("b", "c1"), Local: "/home/me/c1", Remote: "/srv/c1"},
			{Name: child("b", "c2"), Local: "/home/me/c2", Remote: "/srv/c2"},
		}, got)
	})

	t.Run("child", func(t *testing.T) {
		got, err := s.GetProfiles(child("b", "c2"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{{Name: child("b", "c2"), Local: "/home/me/c2", Remote: "/srv/c2"}}, got)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := s.GetProfiles(root("nope"))
		require.ErrorIs(t, err, profile.ErrNotFound)
		assert.Contains(t, err.Error(), `"nope"`)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := s.GetProfiles(child("nope", "c1"))
		require.ErrorIs(t, err, profile.ErrNotFound)
		assert.Contains(t, err.Error(), `"nope"`)
	})

	t.Run("missing child", func(t *testing.T) {
		_, err := s.GetProfiles(child("b", "c9"))
		require.ErrorIs(t, err, profile.ErrNotFound)
		assert.Contains(t, err.Error(), `"c9"`)
	})

	t.Run("scalar root", func(t *testing.T) {
		_, err := s.GetProfiles(root("editor"))
		assert.ErrorIs(t, err, profile.ErrTypeMismatch)
	})

	t.Run("child of leaf", func(t *testing.T) {
		_, err := s.GetProfiles(child("a", "local"))
		assert.ErrorIs(t, err, profile.ErrTypeMismatch)
	})

	t.Run("group skips non tables", func(t *testing.T) {
		s := parse(t, "g:\n  description: work folders\n  c:\n    local: /l\n    remote: /r\n")
		got, err := s.GetProfiles(root("g"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, child("g", "c"), got[0].Name)
	})
}

func TestLeafProfiles(t *testing.T) {
	s := parse(t, sample)

	got := s.LeafProfiles()
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name.String())
	}
	assert.Equal(t, []string{"a", "b.c1", "b.c2"}, names)

	// Root leaves come first regardless of where groups sit in the document.
	s = parse(t, "g:\n  c:\n    local: /1\n    remote: /2\nz:\n  local: /3\n  remote: /4\n")
	got = s.LeafProfiles()
	require.Len(t, got, 2)
	assert.Equal(t, root("z"), got[0].Name)
	assert.Equal(t, child("g", "c"), got[1].Name)
}

func TestLeafProfilesExpandsEnv(t *testing.T) {
	t.Setenv("EZ_SYNC_ROOT", "/mnt/data")
	s := parse(t, "a:\n  local: $EZ_SYNC_ROOT/a/\n  remote: /srv/a\n")

	got := s.LeafProfiles()
	require.Len(t, got, 1)
	assert.Equal(t, "/mnt/data/a/", got[0].Local)

	// The stored text stays unexpanded.
	data, err := s.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(data), "$EZ_SYNC_ROOT/a/")
}

func TestAddProfile(t *testing.T) {
	t.Run("root leaf", func(t *testing.T) {
		s := store.New()
		require.NoError(t, s.AddProfile(root("x"), profile.Table("/l", "/r")))

		got, err := s.GetProfiles(root("x"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{{Name: root("x"), Local: "/l", Remote: "/r"}}, got)
	})

	t.Run("child creates group", func(t *testing.T) {
		s := store.New()
		require.NoError(t, s.AddProfile(child("g", "c"), profile.Table("/l", "/r")))

		got, err := s.GetProfiles(child("g", "c"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{{Name: child("g", "c"), Local: "/l", Remote: "/r"}}, got)

		data, err := s.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "g:\n  c:\n    local: /l\n    remote: /r\n", string(data))
	})

	t.Run("child under leaf", func(t *testing.T) {
		s := store.New()
		require.NoError(t, s.AddProfile(root("g"), profile.Table("/l", "/r")))

		err := s.AddProfile(child("g", "c2"), profile.Table("/l2", "/r2"))
		require.ErrorIs(t, err, profile.ErrLeafConflict)
		assert.Contains(t, err.Error(), "profile is leaf")
	})

	t.Run("child under scalar", func(t *testing.T) {
		s := parse(t, "editor: vim\n")
		err := s.AddProfile(child("editor", "c"), profile.Table("/l", "/r"))
		assert.ErrorIs(t, err, profile.ErrTypeMismatch)
	})

	t.Run("child named after reserved key", func(t *testing.T) {
		s := store.New()
		err := s.AddProfile(child("g", "local"), profile.Table("/l", "/r"))
		assert.ErrorIs(t, err, profile.ErrValidation)
	})

	t.Run("root replaces group", func(t *testing.T) {
		s := parse(t, sample)
		require.NoError(t, s.AddProfile(root("b"), profile.Table("/l", "/r")))

		got, err := s.GetProfiles(root("b"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{{Name: root("b"), Local: "/l", Remote: "/r"}}, got)
		assert.Len(t, s.LeafProfiles(), 2)
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		s := parse(t, sample)
		require.NoError(t, s.AddProfile(child("b", "c1"), profile.Table("/new", "/newer")))

		got, err := s.GetProfiles(root("b"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "/new", got[0].Local)
		assert.Equal(t, child("b", "c1"), got[0].Name)
	})
}

func TestRemoveProfile(t *testing.T) {
	t.Run("group", func(t *testing.T) {
		s := parse(t, sample)
		removed, err := s.RemoveProfile(root("b"))
		require.NoError(t, err)
		assert.Len(t, removed, 2)
		assert.Equal(t, child("b", "c1"), removed[0].Name)
		assert.Equal(t, child("b", "c2"), removed[1].Name)

		_, err = s.GetProfiles(root("b"))
		assert.ErrorIs(t, err, profile.ErrNotFound)
	})

	t.Run("root leaf", func(t *testing.T) {
		s := parse(t, sample)
		removed, err := s.RemoveProfile(root("a"))
		require.NoError(t, err)
		assert.Equal(t, []profile.Profile{{Name: root("a"), Local: "/home/me/a", Remote: "/srv/a"}}, removed)

		data, err := s.Bytes()
		require.NoError(t, err)
		assert.NotContains(t, string(data), "/home/me/a")
		assert.Contains(t, string(data), "editor: vim")
	})

	t.Run("child", func(t *testing.T) {
		s := parse(t, sample)
		removed, err := s.RemoveProfile(child("b", "c1"))
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Equal(t, child("b", "c1"), removed[0].Name)

		got, err := s.GetProfiles(root("b"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, child("b", "c2"), got[0].Name)
	})

	t.Run("missing root", func(t *testing.T) {
		s := parse(t, sample)
		_, err := s.RemoveProfile(root("zzz"))
		assert.ErrorIs(t, err, profile.ErrNotFound)
	})

	t.Run("missing parent", func(t *testing.T) {
		s := parse(t, sample)
		_, err := s.RemoveProfile(child("zzz", "c1"))
		assert.ErrorIs(t, err, profile.ErrNotFound)
	})

	t.Run("missing child", func(t *testing.T) {
		s := parse(t, sample)
		_, err := s.RemoveProfile(child("b", "c9"))
		require.ErrorIs(t, err, profile.ErrNotFound)
		assert.Contains(t, err.Error(), `"c9"`)
	})

	t.Run("child of leaf", func(t *testing.T) {
		s := parse(t, sample)
		_, err := s.RemoveProfile(child("a", "local"))
		require.ErrorIs(t, err, profile.ErrLeafConflict)

		// Nothing was touched.
		got, err := s.GetProfiles(root("a"))
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
