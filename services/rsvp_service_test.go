package services

import (
	"context"
	"testing"

	"undangan.link/database/seeders"
	"undangan.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeHeadcount(t *testing.T) {
	tests := []struct {
		name   string
		status models.RSVPStatus
		count  *int
		want   int
	}{
		{"hadir, sayı yok", models.RSVPStatusAttending, nil, 1},
		{"hadir, sıfır", models.RSVPStatusAttending, intPtr(0), 1},
		{"hadir, negatif", models.RSVPStatusAttending, intPtr(-4), 1},
		{"hadir, üç", models.RSVPStatusAttending, intPtr(3), 3},
		{"tidak hadir, beş", models.RSVPStatusNotAttending, intPtr(5), 0},
		{"tidak hadir, sayı yok", models.RSVPStatusNotAttending, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeadcount(tt.status, tt.count))
		})
	}
}

func TestSubmitRSVP_UpsertKeepsSingleRow(t *testing.T) {
	f := newFixture(t)
	svc := NewRSVPService(f.guests, f.rsvp)
	ctx := context.Background()

	input := RSVPInput{
		CustomURLSlug: seeders.DemoSlug,
		InviteCode:    seeders.DemoInviteCode,
		Status:        "hadir",
		PeopleCount:   intPtr(3),
	}
	for i := 0; i < 4; i++ {
		rsvp, err := svc.SubmitRSVP(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 3, rsvp.PeopleCount)
	}

	assert.Equal(t, int64(1), f.rsvpCount(t, f.demoGuest.ID))

	// son yazan kazanır
	input.Status = "tidak hadir"
	input.PeopleCount = intPtr(5)
	rsvp, err := svc.SubmitRSVP(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, models.RSVPStatusNotAttending, rsvp.Status)
	assert.Equal(t, 0, rsvp.PeopleCount)

	var stored models.RSVP
	require.NoError(t, f.db.Where("guest_id = ?", f.demoGuest.ID).Take(&stored).Error)
	assert.Equal(t, 0, stored.PeopleCount)
	assert.Equal(t, int64(1), f.rsvpCount(t, f.demoGuest.ID))
}

func TestSubmitRSVP_AttendingDefaultsToOne(t *testing.T) {
	f := newFixture(t)
	svc := NewRSVPService(f.guests, f.rsvp)

	rsvp, err := svc.SubmitRSVP(context.Background(), RSVPInput{
		CustomURLSlug: "Dilan-Milea",
		InviteCode:    seeders.DemoInviteCode,
		Status:        "hadir",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RSVPStatusAttending, rsvp.Status)
	assert.Equal(t, 1, rsvp.PeopleCount)
}

func TestSubmitRSVP_Errors(t *testing.T) {
	f := newFixture(t)
	svc := NewRSVPService(f.guests, f.rsvp)
	ctx := context.Background()
	other := f.createTenant(t, "lain@example.com", "rangga-cinta")

	tests := []struct {
		name  string
		input RSVPInput
		want  error
	}{
		{"eksik alan", RSVPInput{CustomURLSlug: seeders.DemoSlug, Status: "hadir"}, ErrRSVPIncomplete},
		{"geçersiz durum", RSVPInput{CustomURLSlug: seeders.DemoSlug, InviteCode: seeders.DemoInviteCode, Status: "mungkin"}, ErrInvalidRSVPStatus},
		{"büyük harf durum", RSVPInput{CustomURLSlug: seeders.DemoSlug, InviteCode: seeders.DemoInviteCode, Status: "HADIR"}, ErrInvalidRSVPStatus},
		{"boşluklu durum", RSVPInput{CustomURLSlug: seeders.DemoSlug, InviteCode: seeders.DemoInviteCode, Status: " tidak hadir"}, ErrInvalidRSVPStatus},
		{"bozuk kod", RSVPInput{CustomURLSlug: seeders.DemoSlug, InviteCode: "inv-ab12cd34", Status: "hadir"}, ErrInvitationNotFound},
		{"bilinmeyen kod", RSVPInput{CustomURLSlug: seeders.DemoSlug, InviteCode: "INV-00000000", Status: "hadir"}, ErrInvitationNotFound},
		{"kod başka tenant'ta", RSVPInput{CustomURLSlug: other.Slug(), InviteCode: seeders.DemoInviteCode, Status: "hadir"}, ErrInvitationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitRSVP(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, f.rsvpCount(t, f.demoGuest.ID))
}
