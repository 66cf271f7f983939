package repository

import (
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Service     ServiceRepository
	Booking     BookingRepository
	BlockedDate BlockedDateRepository
	Post        PostRepository
	Lead        LeadRepository
	Setting     SettingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Service:     NewServiceRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BlockedDate: NewBlockedDateRepository(db, log),
		Post:        NewPostRepository(db, log),
		Lead:        NewLeadRepository(db, log),
		Setting:     NewSettingRepository(db, log),
	}
}
