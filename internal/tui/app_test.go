package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/core/logger"
	"github.com/f9-o/hotkeys/internal/core/state"
	"github.com/f9-o/hotkeys/internal/hotkeys"
	"github.com/f9-o/hotkeys/internal/overrides"
)

func newTestModel(t *testing.T) (*Model, *hotkeys.Manager, *[]string) {
	t.Helper()
	ctx := context.Background()
	mgr := hotkeys.NewManager(hotkeys.Options{
		Store: overrides.NewStore(state.NewMemory(), "", logger.Discard()),
		Log:   logger.Discard(),
	})
	mgr.Start(ctx)
	mgr.SetCommands(ctx, []v1.Command{
		{ID: "save", DisplayName: "Save"},
		{ID: "build", DisplayName: "Build", Synonyms: []string{"compile"}},
		{ID: "copy", DisplayName: "Copy"},
	})

	var fired []string
	m := New(Config{
		Manager:    mgr,
		Log:        logger.Discard(),
		Source:     "commands.yaml",
		OnDispatch: func(id string) { fired = append(fired, id) },
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, mgr, &fired
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelDispatchesShortcut(t *testing.T) {
	m, _, fired := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS, Alt: true})
	assert.Equal(t, []string{"save"}, *fired)
	assert.Contains(t, m.footer.Status(), "Save")
}

func TestModelAltCtrlCIsAShortcut(t *testing.T) {
	m, mgr, fired := newTestModel(t)
	b, ok := mgr.Binding("copy")
	require.True(t, ok)
	require.Equal(t, "alt+ctrl+KeyC", binding.Key(b))

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC, Alt: true})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"copy"}, *fired)
}

func TestModelAltCtrlCDuringRecording(t *testing.T) {
	m, _, fired := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "save", m.session.Target())

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC, Alt: true})
	assert.Nil(t, cmd)
	assert.Empty(t, *fired)
	assert.True(t, m.session.Capturing(), "taken shortcut is rejected, recording continues")
	require.Error(t, m.footer.Err())
	assert.Contains(t, m.footer.Err().Error(), "Copy")
}

func TestModelFilterSuppressesShortcuts(t *testing.T) {
	m, _, fired := newTestModel(t)

	press(m, runes("/"))
	require.True(t, m.filtering)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS, Alt: true})
	assert.Empty(t, *fired)

	press(m, runes("c"))
	press(m, runes("o"))
	press(m, runes("m"))
	require.Len(t, m.rows, 1, "synonym match")
	assert.Equal(t, "build", m.rows[0].ID)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.filtering)
	assert.Len(t, m.rows, 3)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS, Alt: true})
	assert.Equal(t, []string{"save"}, *fired)
}

func TestModelRecordsShortcut(t *testing.T) {
	m, mgr, fired := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "build", m.session.Target())

	// Recording pauses the matcher: the save shortcut is not dispatched.
	press(m, tea.KeyMsg{Type: tea.KeyCtrlK, Alt: true})
	assert.Empty(t, *fired)
	assert.False(t, m.session.Capturing())

	b, ok := mgr.Binding("build")
	require.True(t, ok)
	assert.Equal(t, "alt+ctrl+KeyK", binding.Key(b))
	assert.True(t, mgr.IsCustom("build"))
	assert.True(t, m.rows[1].Custom)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlK, Alt: true})
	assert.Equal(t, []string{"build"}, *fired)
}

func TestModelRecordingConflict(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS, Alt: true})

	require.Error(t, m.footer.Err())
	assert.Contains(t, m.footer.Err().Error(), "Save")
	assert.True(t, m.session.Capturing(), "a rejected key keeps recording")
	assert.False(t, mgr.IsCustom("build"))

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.session.Capturing())
	assert.Equal(t, "recording cancelled", m.footer.Status())
}

func TestModelReset(t *testing.T) {
	m, mgr, _ := newTestModel(t)
	require.NoError(t, mgr.SetBinding(context.Background(), "save", binding.MustParse("ctrl+alt+j")))
	m.refresh()

	press(m, runes("r"))
	assert.False(t, mgr.IsCustom("save"))
	assert.Contains(t, m.footer.Status(), "restored")

	press(m, runes("R"))
	assert.Equal(t, "nothing to reset", m.footer.Status())
}

func TestModelCommandsReload(t *testing.T) {
	m, _, _ := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "save", m.session.Target())

	m.Update(CommandsMsg{{ID: "build", DisplayName: "Build"}})
	assert.False(t, m.session.Capturing(), "recording target vanished")
	assert.Len(t, m.rows, 1)
	assert.Equal(t, 0, m.selected)
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelView(t *testing.T) {
	m, _, _ := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Save")
	assert.Contains(t, out, "commands.yaml")
}
