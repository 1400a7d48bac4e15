package core

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStorage(t *testing.T, files map[string]string) (*FileStorage, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return NewFileStorage(fs), fs
}

func documentOf(lines ...string) *Document {
	d := NewDocument(nil)
	for _, line := range lines {
		d.lines = append(d.lines, NewLine(line))
	}
	return d
}

func TestFileStorage_Load(t *testing.T) {
	storage, _ := newMemStorage(t, map[string]string{
		"/crlf.txt":      "a\r\nb\r\n",
		"/no-eol.txt":    "a\nb",
		"/blank-end.txt": "a\n\n",
		"/empty.txt":     "",
	})

	tests := []struct {
		path string
		want []string
	}{
		{path: "/crlf.txt", want: []string{"a", "b"}},
		{path: "/no-eol.txt", want: []string{"a", "b"}},
		{path: "/blank-end.txt", want: []string{"a", ""}},
		{path: "/empty.txt", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lines, err := storage.Load(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}

	_, err := storage.Load("/missing.txt")
	require.ErrorIs(t, err, ErrFileLoad)
}

func TestFileStorage_SaveNormalizesLineEndings(t *testing.T) {
	storage, fs := newMemStorage(t, map[string]string{"/f.txt": "x\r\ny\r\n"})

	lines, err := storage.Load("/f.txt")
	require.NoError(t, err)
	require.NoError(t, storage.Save("/f.txt", lines))

	content, err := afero.ReadFile(fs, "/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", string(content))
}

func TestFileStorage_SaveFailure(t *testing.T) {
	storage := NewFileStorage(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := storage.Save("/f.txt", []string{"x"})
	require.ErrorIs(t, err, ErrFileSave)
}

func TestLoadDocument(t *testing.T) {
	storage, _ := newMemStorage(t, map[string]string{"/src/main.rs": "fn main() {}\n"})

	d, err := LoadDocument(storage, "/src/main.rs")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Height())
	assert.Equal(t, FileTypeRust, d.FileInfo().FileType())
	assert.Equal(t, "main.rs", d.FileInfo().String())
	assert.False(t, d.IsDirty())

	d, err = LoadDocument(storage, "/src/new.txt")
	require.ErrorIs(t, err, ErrFileLoad)
	assert.True(t, d.IsFileLoaded(), "the path is kept so a save creates the file")
	assert.True(t, d.IsEmpty())
}

func TestDocument_Edits(t *testing.T) {
	d := NewDocument(nil)
	assert.Nil(t, d.Line(0))

	d.InsertChar('a', Location{LineIdx: 0})
	assert.True(t, d.IsDirty())
	assert.Equal(t, []string{"a"}, d.Lines())

	d.InsertChar('b', Location{LineIdx: 0, GraphemeIdx: 1})
	d.InsertNewline(Location{LineIdx: 0, GraphemeIdx: 1})
	assert.Equal(t, []string{"a", "b"}, d.Lines())

	d.InsertNewline(Location{LineIdx: 2})
	assert.Equal(t, []string{"a", "b", ""}, d.Lines())

	d.Delete(Location{LineIdx: 0, GraphemeIdx: 1})
	assert.Equal(t, []string{"ab", ""}, d.Lines(), "deleting at the end of a line joins the next one")

	d.Delete(Location{LineIdx: 1, GraphemeIdx: 0})
	assert.Equal(t, []string{"ab", ""}, d.Lines(), "nothing to join after the last line")

	d.Delete(Location{LineIdx: 0, GraphemeIdx: 0})
	assert.Equal(t, []string{"b", ""}, d.Lines())

	d.InsertChar('x', Location{LineIdx: 7})
	d.Delete(Location{LineIdx: 7})
	assert.Equal(t, []string{"b", ""}, d.Lines())
}

func TestDocument_InsertNewlineInMiddle(t *testing.T) {
	d := documentOf("one", "two", "three")
	d.InsertNewline(Location{LineIdx: 1, GraphemeIdx: 1})
	assert.Equal(t, []string{"one", "t", "wo", "three"}, d.Lines())
}

func TestDocument_Save(t *testing.T) {
	storage, fs := newMemStorage(t, map[string]string{"/a.txt": "hi\n"})

	unnamed := NewDocument(storage)
	unnamed.InsertChar('x', Location{})
	require.ErrorIs(t, unnamed.Save(), ErrNoFileName)
	assert.True(t, unnamed.IsDirty())

	require.NoError(t, unnamed.SaveAs("/b.rs"))
	assert.False(t, unnamed.IsDirty())
	assert.Equal(t, "/b.rs", unnamed.FileInfo().Path())
	assert.Equal(t, FileTypeRust, unnamed.FileInfo().FileType())

	d, err := LoadDocument(storage, "/a.txt")
	require.NoError(t, err)
	d.InsertChar('!', Location{LineIdx: 0, GraphemeIdx: 2})
	require.NoError(t, d.Save())

	content, err := afero.ReadFile(fs, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi!\n", string(content))
}

func TestDocument_SaveFailureKeepsState(t *testing.T) {
	d := NewDocument(NewFileStorage(afero.NewReadOnlyFs(afero.NewMemMapFs())))
	d.InsertChar('x', Location{})

	err := d.SaveAs("/x.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileSave))
	assert.True(t, d.IsDirty())
	assert.False(t, d.IsFileLoaded())
}

func TestDocument_SaveErrorsNameThePath(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/a.txt", []byte("hi\n"), 0o644))
	storage := NewFileStorage(afero.NewReadOnlyFs(base))

	d, err := LoadDocument(storage, "/a.txt")
	require.NoError(t, err)
	d.InsertChar('!', Location{LineIdx: 0, GraphemeIdx: 2})

	err = d.Save()
	require.ErrorIs(t, err, ErrFileSave)
	assert.Contains(t, err.Error(), "save /a.txt: ")
	assert.True(t, d.IsDirty())

	err = d.SaveAs("/b.txt")
	require.ErrorIs(t, err, ErrFileSave)
	assert.Contains(t, err.Error(), "save as /b.txt: ")
}

func TestDocument_SearchForwardWraps(t *testing.T) {
	d := documentOf("foo", "bar", "foo bar")

	tests := []struct {
		name  string
		query string
		from  Location
		want  Location
	}{
		{name: "later line", query: "foo", from: Location{0, 1}, want: Location{2, 0}},
		{name: "wraps to start", query: "foo", from: Location{2, 1}, want: Location{0, 0}},
		{name: "at the location", query: "bar", from: Location{2, 4}, want: Location{2, 4}},
		{name: "past the location", query: "bar", from: Location{2, 5}, want: Location{1, 0}},
		{name: "one past the last line", query: "foo", from: Location{3, 0}, want: Location{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.SearchForward(tt.query, tt.from)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := d.SearchForward("baz", Location{})
	assert.False(t, ok)
	_, ok = d.SearchForward("", Location{})
	assert.False(t, ok)
	_, ok = NewDocument(nil).SearchForward("foo", Location{})
	assert.False(t, ok)
}

func TestDocument_SearchRevisitsStartLine(t *testing.T) {
	d := documentOf("foo x foo")

	got, ok := d.SearchForward("foo", Location{0, 7})
	require.True(t, ok)
	assert.Equal(t, Location{0, 0}, got)

	got, ok = d.SearchBackward("foo", Location{0, 0})
	require.True(t, ok)
	assert.Equal(t, Location{0, 6}, got)
}

func TestDocument_SearchBackwardWraps(t *testing.T) {
	d := documentOf("foo", "bar", "foo bar")

	got, ok := d.SearchBackward("foo", Location{2, 0})
	require.True(t, ok)
	assert.Equal(t, Location{0, 0}, got)

	got, ok = d.SearchBackward("foo", Location{0, 0})
	require.True(t, ok)
	assert.Equal(t, Location{2, 0}, got)

	got, ok = d.SearchBackward("bar", Location{5, 0})
	require.True(t, ok)
	assert.Equal(t, Location{2, 4}, got, "a location past the end starts at the last line")

	_, ok = d.SearchBackward("baz", Location{1, 0})
	assert.False(t, ok)
}
