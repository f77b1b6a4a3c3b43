package allocator

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
)

func cmd(id, name string, synonyms ...string) v1.Command {
	return v1.Command{ID: id, DisplayName: name, Synonyms: synonyms}
}

func pinned(id, name string) v1.Command {
	return v1.Command{ID: id, DisplayName: name, Pinned: true}
}

func assertUnique(t *testing.T, table v1.BindingTable) {
	t.Helper()
	owner := make(map[string]string, len(table))
	for id, b := range table {
		k := binding.Key(b)
		if prev, dup := owner[k]; dup {
			t.Fatalf("%s and %s share %s", prev, id, k)
		}
		owner[k] = id
	}
}

func TestPinnedAllocation(t *testing.T) {
	commands := []v1.Command{
		pinned("merge", "Merge"),
		cmd("compress", "Compress"),
		pinned("split", "Split"),
		pinned("rotate", "Rotate"),
	}

	table := Allocate(commands, false)

	assert.Equal(t, v1.Binding{Code: "Digit1", Alt: true, Ctrl: true}, table["merge"])
	assert.Equal(t, v1.Binding{Code: "Digit2", Alt: true, Ctrl: true}, table["split"])
	assert.Equal(t, v1.Binding{Code: "Digit3", Alt: true, Ctrl: true}, table["rotate"])
	assert.Equal(t, v1.Binding{Code: "KeyC", Alt: true, Ctrl: true}, table["compress"])
}

func TestPinnedAllocationMac(t *testing.T) {
	table := Allocate([]v1.Command{pinned("merge", "Merge")}, true)
	assert.Equal(t, v1.Binding{Code: "Digit1", Alt: true, Meta: true}, table["merge"])
}

func TestPinnedCappedAtNine(t *testing.T) {
	var commands []v1.Command
	for i := 0; i < 11; i++ {
		commands = append(commands, pinned(fmt.Sprintf("p%02d", i), fmt.Sprintf("Pinned %02d", i)))
	}

	table := Allocate(commands, false)

	require.Len(t, table, 11)
	for i := 0; i < MaxPinned; i++ {
		assert.Equal(t, fmt.Sprintf("Digit%d", i+1), table[fmt.Sprintf("p%02d", i)].Code)
	}
	// The overflow commands are allocated like general ones.
	assert.Equal(t, "KeyP", table["p09"].Code)
	assertUnique(t, table)
}

func TestMnemonicsAndFallback(t *testing.T) {
	commands := []v1.Command{
		cmd("search", "Search"),
		cmd("save", "Save"),
		cmd("openFile", "Open File"),
		cmd("fileOpen", "Open"),
	}

	table := Allocate(commands, false)

	// Sorted by name: Open, Open File, Save, Search.
	assert.Equal(t, "KeyO", table["fileOpen"].Code)
	assert.Equal(t, "KeyF", table["openFile"].Code, "second word of the name")
	assert.Equal(t, "KeyS", table["save"].Code)
	assert.Equal(t, "KeyA", table["search"].Code, "falls through to the pool")
	assertUnique(t, table)
}

func TestSynonymsAreCandidates(t *testing.T) {
	commands := []v1.Command{
		cmd("a", "Alpha"),
		cmd("b", "Another", "zip"),
	}
	table := Allocate(commands, false)

	assert.Equal(t, "KeyA", table["a"].Code)
	// "Another" -> A (taken), id "b" -> B.
	assert.Equal(t, "KeyB", table["b"].Code)

	commands = []v1.Command{
		cmd("a", "Alpha"),
		cmd("aa", "Another", "zip"),
	}
	table = Allocate(commands, false)
	assert.Equal(t, "KeyZ", table["aa"].Code)
}

func TestShiftFallback(t *testing.T) {
	var commands []v1.Command
	for i := 0; i < len(fallbackPool)+3; i++ {
		commands = append(commands, cmd(fmt.Sprintf("c%03d", i), fmt.Sprintf("Cmd %03d", i)))
	}

	table, report := AllocateWithReport(commands, false)

	require.Len(t, table, len(commands))
	assert.Len(t, report.ShiftFallback, 3)
	for _, id := range report.ShiftFallback {
		assert.True(t, table[id].Shift)
	}
	assertUnique(t, table)
}

func TestDeterminism(t *testing.T) {
	var commands []v1.Command
	for i := 0; i < 120; i++ {
		commands = append(commands, cmd(fmt.Sprintf("tool_%d", i), fmt.Sprintf("Tool %d", i), "convert", "pdf"))
	}
	commands = append(commands, pinned("p1", "Pinned One"), pinned("p2", "Pinned Two"))

	first := Allocate(commands, false)
	second := Allocate(commands, false)
	assert.Equal(t, first, second)

	// General commands are sorted, so registry order does not matter for them.
	shuffled := append([]v1.Command(nil), commands[:120]...)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	shuffled = append(shuffled, commands[120:]...)
	assert.Equal(t, first, Allocate(shuffled, false))

	assert.NotEqual(t, first, Allocate(commands, true))
}

func TestTermination(t *testing.T) {
	var commands []v1.Command
	for i := 0; i < 500; i++ {
		commands = append(commands, cmd(fmt.Sprintf("synthetic-%03d", i), fmt.Sprintf("Synthetic %03d", i)))
	}

	table, report := AllocateWithReport(commands, false)

	require.Len(t, table, 500)
	assert.Empty(t, report.Exhausted)
	assert.Len(t, report.Synthetic, 500-2*len(fallbackPool))
	for i, id := range report.Synthetic {
		b := table[id]
		assert.True(t, b.Shift)
		assert.True(t, binding.Valid(b))
		assert.Equal(t, fmt.Sprintf("F%d", FirstSyntheticF+i), b.Code, "one synthetic step per command")
	}
	assertUnique(t, table)
}

func TestDuplicateIDsIgnored(t *testing.T) {
	table := Allocate([]v1.Command{cmd("x", "Export"), cmd("x", "Exit"), cmd("", "Empty")}, false)
	require.Len(t, table, 1)
	assert.Equal(t, "KeyE", table["x"].Code)
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Allocate(nil, true))
}
