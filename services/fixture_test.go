package services

import (
	"context"
	"sync"
	"testing"

	"undangan.link/database/seeders"
	"undangan.link/models"
	"undangan.link/pkg/testdb"
	"undangan.link/pkg/validation"
	"undangan.link/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingCleaner Enqueue çağrılarını sırasıyla kaydeder.
type recordingCleaner struct {
	mu   sync.Mutex
	refs []string
}

func (r *recordingCleaner) Enqueue(refs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs = append(r.refs, refs...)
}

func (r *recordingCleaner) Refs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.refs...)
}

func (r *recordingCleaner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs = nil
}

type fixture struct {
	db          *gorm.DB
	users       repositories.IUserRepository
	personalize repositories.IPersonalizeRepository
	guests      repositories.IGuestRepository
	rsvp        repositories.IRSVPRepository
	wishes      repositories.IWellWishRepository
	validator   *validation.Validator
	cleaner     *recordingCleaner

	demo      *models.Personalize
	demoGuest *models.Guest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Seeded(t)

	f := &fixture{
		db:          db,
		users:       repositories.NewUserRepository(db),
		personalize: repositories.NewPersonalizeRepository(db),
		guests:      repositories.NewGuestRepository(db),
		rsvp:        repositories.NewRSVPRepository(db),
		wishes:      repositories.NewWellWishRepository(db),
		validator:   validation.New(),
		cleaner:     &recordingCleaner{},
	}

	ctx := context.Background()
	demo, err := f.personalize.FindBySlug(ctx, seeders.DemoSlug)
	require.NoError(t, err)
	f.demo = demo

	guest, err := f.guests.FindByCodeAndSlug(ctx, seeders.DemoInviteCode, seeders.DemoSlug)
	require.NoError(t, err)
	f.demoGuest = guest
	return f
}

// rsvpCount davetlinin RSVP satır sayısını döner.
func (f *fixture) rsvpCount(t *testing.T, guestID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.RSVP{}).Where("guest_id = ?", guestID).Count(&n).Error)
	return n
}

// createTenant boş bir kişiselleştirme kaydıyla yeni bir kullanıcı ekler.
func (f *fixture) createTenant(t *testing.T, email, slug string) *models.Personalize {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, f.users.Create(ctx, user))

	p := &models.Personalize{UserID: user.ID}
	if slug != "" {
		p.CustomURL = &slug
	}
	require.NoError(t, f.personalize.Create(ctx, p))
	return p
}
