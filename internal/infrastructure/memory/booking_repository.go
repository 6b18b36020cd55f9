package memory

import (
	"context"

	"github.com/kabidey/privity-sub000/internal/domain"
	"github.com/kabidey/privity-sub000/internal/domain/entity"
)

// BookingRepository implementación en memoria de bookings.
type BookingRepository struct {
	store *Store
}

// NewBookingRepository construye el repositorio.
func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

func (r *BookingRepository) Create(_ context.Context, b *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings[b.ID] = copyBooking(b)
	r.store.bookingOrder = append(r.store.bookingOrder, b.ID)
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return copyBooking(r.store.bookings[id]), nil
}

// GetForUpdate en memoria equivale a GetByID: la serialización la da el TxRunner.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id string) (*entity.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) Update(_ context.Context, b *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.bookings, id)
	for i, bid := range r.store.bookingOrder {
		if bid == id {
			r.store.bookingOrder = append(r.store.bookingOrder[:i], r.store.bookingOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *BookingRepository) List(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	all := make([]*entity.Booking, 0, len(r.store.bookingOrder))
	for _, id := range r.store.bookingOrder {
		all = append(all, copyBooking(r.store.bookings[id]))
	}
	start, end := paginate(len(all), limit, offset)
	return all[start:end], nil
}

func (r *BookingRepository) ListBySecurity(_ context.Context, securityID string, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.Booking
	for _, id := range r.store.bookingOrder {
		b := r.store.bookings[id]
		if b.SecurityID == securityID {
			all = append(all, copyBooking(b))
		}
	}
	start, end := paginate(len(all), limit, offset)
	return all[start:end], nil
}

func (r *BookingRepository) BlockedQuantity(_ context.Context, securityID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int64
	for _, b := range r.store.bookings {
		if b.SecurityID == securityID && b.Blocking() {
			total += b.Quantity
		}
	}
	return total, nil
}

func (r *BookingRepository) TransferredQuantity(_ context.Context, securityID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int64
	for _, b := range r.store.bookings {
		if b.SecurityID == securityID && b.Transferred {
			total += b.Quantity
		}
	}
	return total, nil
}
