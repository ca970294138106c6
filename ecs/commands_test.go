package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Marker struct{ N int }

func TestCommandsFlushOrder(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[Marker](registry)
	storage := NewStorage(registry)

	doomed := storage.Spawn(Marker{N: 1})

	var seen []int
	commands := newCommands()
	commands.Defer(func() {
		for m := range NewView[struct{ *Marker }](storage).Values() {
			seen = append(seen, m.N)
		}
	})
	commands.Spawn(Marker{N: 2})
	commands.Delete(doomed)

	assert.True(t, storage.Alive(doomed), "nothing applies before Flush")

	commands.Flush(storage)
	assert.Equal(t, 2, ReadComponent[Marker](storage, doomed).N, "the freed slot is reused")
	assert.Equal(t, []int{2}, seen, "deferred functions see deletes and spawns")

	require.Empty(t, commands.spawns)
	require.Empty(t, commands.deletes)
	require.Empty(t, commands.defers)

	commands.Flush(storage)
	assert.Equal(t, []int{2}, seen, "a second flush is a no-op")
}
