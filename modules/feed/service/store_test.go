package service

import (
	"testing"
	"time"

	"event-registry/core/constants"

	"github.com/stretchr/testify/require"
)

func TestStoreReplaceIsWholesale(t *testing.T) {
	store := NewStore()

	store.Replace(constants.CollectionGroups, []string{"alpha", "beta"})
	store.Replace(constants.CollectionGroups, []string{"gamma"})

	snap, ok := store.Get(constants.CollectionGroups)
	require.True(t, ok)
	require.Equal(t, int64(2), snap.Version)
	require.Equal(t, []string{"gamma"}, snap.Items)
}

func TestStoreGetUnknownCollection(t *testing.T) {
	store := NewStore()

	_, ok := store.Get(constants.CollectionRooms)
	require.False(t, ok)
	require.Empty(t, store.All())
}

func TestSubscribeDeliversCurrentSnapshotImmediately(t *testing.T) {
	store := NewStore()
	store.Replace(constants.CollectionRooms, []string{"101"})

	ch, cancel := store.Subscribe(constants.CollectionRooms)
	defer cancel()

	select {
	case snap := <-ch:
		require.Equal(t, []string{"101"}, snap.Items)
	default:
		t.Fatal("expected the current snapshot without waiting for a change")
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	store := NewStore()
	ch, cancel := store.Subscribe(constants.CollectionParticipants)
	defer cancel()

	store.Replace(constants.CollectionParticipants, []string{"ana"})

	snap := <-ch
	require.Equal(t, int64(1), snap.Version)
	require.Equal(t, []string{"ana"}, snap.Items)
}

func TestSlowSubscriberGetsLatestSnapshotOnly(t *testing.T) {
	store := NewStore()
	ch, cancel := store.Subscribe(constants.CollectionParticipants)
	defer cancel()

	store.Replace(constants.CollectionParticipants, []string{"v1"})
	store.Replace(constants.CollectionParticipants, []string{"v2"})
	store.Replace(constants.CollectionParticipants, []string{"v3"})

	snap := <-ch
	require.Equal(t, int64(3), snap.Version)
	require.Equal(t, []string{"v3"}, snap.Items)

	select {
	case stale := <-ch:
		t.Fatalf("unexpected queued snapshot version %d", stale.Version)
	default:
	}
}

func TestSubscribeNeverBlocksOnConcurrentReplace(t *testing.T) {
	store := NewStore()
	store.Replace(constants.CollectionParticipants, []string{"seed"})

	// A Replace landing between subscriber registration and the initial
	// delivery fills the one-slot buffer first; Subscribe must still return
	// and the subscriber must still hold a current snapshot.
	for i := 0; i < 10000; i++ {
		replaced := make(chan struct{})
		go func() {
			store.Replace(constants.CollectionParticipants, []string{"concurrent"})
			close(replaced)
		}()

		done := make(chan struct{})
		var ch <-chan Snapshot
		var cancel func()
		go func() {
			ch, cancel = store.Subscribe(constants.CollectionParticipants)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Subscribe blocked on its initial snapshot delivery")
		}
		<-replaced

		select {
		case snap := <-ch:
			require.NotEmpty(t, snap.Items)
		default:
			t.Fatal("subscriber has no snapshot after Subscribe returned")
		}
		cancel()
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	store := NewStore()
	ch, cancel := store.Subscribe(constants.CollectionGroups)
	cancel()

	store.Replace(constants.CollectionGroups, []string{"alpha"})

	select {
	case <-ch:
		t.Fatal("unsubscribed channel should not receive snapshots")
	default:
	}
}
