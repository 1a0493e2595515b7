package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	bookingserrors "utsav/internal/bookings/errors"
	"utsav/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id, hall, date, slot string) *model.Booking {
	return &model.Booking{ID: id, HallID: hall, BookingDate: date, TimeSlot: slot, PaymentStatus: model.PaymentPending}
}

func TestMemory_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()

	require.NoError(t, repo.Create(ctx, booking("b1", "m1", "2030-01-15", model.TimeSlots[0])))
	require.NoError(t, repo.Create(ctx, booking("b2", "m1", "2030-01-15", model.TimeSlots[1])))
	require.NoError(t, repo.Create(ctx, booking("b3", "m2", "2030-01-15", model.TimeSlots[0])))

	got, err := repo.FindByID(ctx, "b2")
	require.NoError(t, err)
	assert.Equal(t, model.TimeSlots[1], got.TimeSlot)

	got, err = repo.FindByTriple(ctx, "m2", "2030-01-15", model.TimeSlots[0])
	require.NoError(t, err)
	assert.Equal(t, "b3", got.ID)

	sameDay, err := repo.FindByHallAndDate(ctx, "m1", "2030-01-15")
	require.NoError(t, err)
	assert.Len(t, sameDay, 2)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
	_, err = repo.FindByTriple(ctx, "m1", "2030-01-16", model.TimeSlots[0])
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}

func TestMemory_CreateRejectsTakenTriple(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()

	require.NoError(t, repo.Create(ctx, booking("b1", "m1", "2030-01-15", model.TimeSlots[0])))
	err := repo.Create(ctx, booking("b2", "m1", "2030-01-15", model.TimeSlots[0]))

	assert.ErrorIs(t, err, bookingserrors.ErrSlotTaken)
	assert.Equal(t, 1, repo.Len())
}

func TestMemory_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()
	require.NoError(t, repo.Create(ctx, booking("b1", "m1", "2030-01-15", model.TimeSlots[0])))

	got, err := repo.FindByID(ctx, "b1")
	require.NoError(t, err)
	got.HallID = "changed"

	again, err := repo.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "m1", again.HallID)
}

func TestMemory_ConcurrentCreateSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository()

	const workers = 32
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Create(ctx, booking(fmt.Sprintf("b%d", i), "m1", "2030-01-15", model.TimeSlots[2]))
			switch err {
			case nil:
				wins.Add(1)
			case bookingserrors.ErrSlotTaken:
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
	assert.Equal(t, 1, repo.Len())
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryBookingRepository()
	assert.ErrorIs(t, repo.Create(ctx, booking("b1", "m1", "2030-01-15", model.TimeSlots[0])), context.Canceled)
	assert.Equal(t, 0, repo.Len())
}
