package service_test

import (
	"testing"
	"time"

	"artist-booking/internal/model"
	queueMocks "artist-booking/internal/queue/mocks"
	repoMocks "artist-booking/internal/repository/mocks"
)

type repoSet struct {
	t            *testing.T
	tx           *repoMocks.Transactor
	disciplines  *repoMocks.MockDisciplineRepository
	artists      *repoMocks.MockArtistRepository
	availability *repoMocks.MockAvailabilityRepository
	requests     *repoMocks.MockBookingRequestRepository
	offers       *repoMocks.MockOfferRepository
	adminOffers  *repoMocks.MockAdminOfferRepository
	queue        *queueMocks.MockNotificationQueue
}

func setupMocks(t *testing.T) *repoSet {
	return &repoSet{
		t:            t,
		tx:           repoMocks.NewTransactor(),
		disciplines:  repoMocks.NewMockDisciplineRepository(t),
		artists:      repoMocks.NewMockArtistRepository(t),
		availability: repoMocks.NewMockAvailabilityRepository(t),
		requests:     repoMocks.NewMockBookingRequestRepository(t),
		offers:       repoMocks.NewMockOfferRepository(t),
		adminOffers:  repoMocks.NewMockAdminOfferRepository(t),
		queue:        queueMocks.NewMockNotificationQueue(t),
	}
}

func day(raw string) time.Time {
	d, err := model.ParseDay(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
