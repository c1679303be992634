package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateGetRemove(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.March, 2, 7, 0, 0, 0, wib)}
	reg := NewRegistry(Deps{Now: clock.Now}, time.Minute, 10)

	id, m, err := reg.Create()
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, StateAwaitingPermissions, m.State())

	got, err := reg.Get(id)
	require.NoError(t, err)
	assert.Same(t, m, got)

	id2, m2, err := reg.Create()
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)
	assert.NotSame(t, m, m2)
	assert.Equal(t, 2, reg.Len())

	reg.Remove(id)
	_, err = reg.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.March, 2, 7, 0, 0, 0, wib)}
	reg := NewRegistry(Deps{Now: clock.Now}, time.Minute, 10)

	id, _, err := reg.Create()
	require.NoError(t, err)
	_, _, err = reg.Create()
	require.NoError(t, err)

	clock.Set(clock.Now().Add(2 * time.Minute))

	_, err = reg.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_SessionLimit(t *testing.T) {
	// Подготовка
	clock := &fakeClock{t: time.Date(2026, time.March, 2, 7, 0, 0, 0, wib)}
	reg := NewRegistry(Deps{Now: clock.Now}, time.Minute, 2)

	_, _, err := reg.Create()
	require.NoError(t, err)
	second, _, err := reg.Create()
	require.NoError(t, err)

	// Действие
	_, m, err := reg.Create()

	// Проверки
	assert.ErrorIs(t, err, ErrTooManySessions)
	assert.Nil(t, m)
	assert.Equal(t, 2, reg.Len())

	// Завершенная сессия освобождает место
	reg.Remove(second)
	_, _, err = reg.Create()
	require.NoError(t, err)

	// Простаивающие сессии удаляются перед проверкой предела
	clock.Set(clock.Now().Add(2 * time.Minute))
	_, _, err = reg.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}
