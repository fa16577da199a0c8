package services

import (
	"context"
	"errors"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/invitecode"
	"undangan.link/pkg/whatsapp"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	phone   string
	message string
}

// fakeSender gönderilen mesajları kaydeder; err doluysa onu döner.
type fakeSender struct {
	sent []sentMessage
	err  error
}

func (s *fakeSender) SendText(_ context.Context, phone, message string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMessage{phone: phone, message: message})
	return nil
}

const testTemplate = "Halo %s, undangan: %s"

func newGuestService(f *fixture, sender IInvitationSender) IGuestService {
	return NewGuestService(f.guests, f.personalize, f.validator, sender, "https://undangan.link/", testTemplate)
}

func strPtr(s string) *string { return &s }

func TestGuestService_CRUD(t *testing.T) {
	f := newFixture(t)
	svc := newGuestService(f, nil)
	ctx := context.Background()
	tenant := f.demo.ID

	guest, err := svc.CreateGuest(ctx, tenant, CreateGuestInput{
		PersonalizeID: tenant.String(),
		Name:          "  Siti  ",
		Phone:         "0812 0000 1111",
	})
	require.NoError(t, err)
	assert.Equal(t, "Siti", guest.Name)
	assert.Equal(t, models.InvitationTypePersonal, guest.InvitationType)
	assert.True(t, invitecode.Valid(guest.Code))
	assert.False(t, guest.IsSent)

	list, err := svc.ListGuests(ctx, tenant, tenant.String())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Siti", list[0].Name) // en yeni önce
	assert.Equal(t, string(models.RSVPStatusNone), list[0].Status)
	assert.Zero(t, list[0].PeopleCount)

	updated, err := svc.UpdateGuest(ctx, tenant, UpdateGuestInput{
		ID:             guest.ID.String(),
		PersonalizeID:  tenant.String(),
		InvitationType: strPtr("group"),
		Address:        strPtr("Jl. Braga 1"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvitationTypeGroup, updated.InvitationType)
	assert.Equal(t, "Jl. Braga 1", updated.Address)
	assert.Equal(t, "Siti", updated.Name, "gönderilmeyen alan değişmemeli")

	require.NoError(t, svc.DeleteGuest(ctx, tenant, GuestRefInput{ID: guest.ID.String(), PersonalizeID: tenant.String()}))
	err = svc.DeleteGuest(ctx, tenant, GuestRefInput{ID: guest.ID.String(), PersonalizeID: tenant.String()})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestGuestService_DeleteRemovesRSVP(t *testing.T) {
	f := newFixture(t)
	svc := newGuestService(f, nil)
	ctx := context.Background()

	_, err := NewRSVPService(f.guests, f.rsvp).SubmitRSVP(ctx, RSVPInput{
		CustomURLSlug: f.demo.Slug(),
		InviteCode:    f.demoGuest.Code,
		Status:        "hadir",
		PeopleCount:   intPtr(2),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGuest(ctx, f.demo.ID, GuestRefInput{ID: f.demoGuest.ID.String(), PersonalizeID: f.demo.ID.String()}))

	assert.Zero(t, f.rsvpCount(t, f.demoGuest.ID))
}

func TestGuestService_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	svc := newGuestService(f, nil)
	ctx := context.Background()
	other := f.createTenant(t, "lain@example.com", "")

	_, err := svc.ListGuests(ctx, other.ID, f.demo.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ListGuests(ctx, other.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// kendi tenant'ı adına ama başka tenant'ın davetlisini hedefleyen istek
	_, err = svc.UpdateGuest(ctx, other.ID, UpdateGuestInput{
		ID:            f.demoGuest.ID.String(),
		PersonalizeID: other.ID.String(),
		Name:          strPtr("Diretas"),
	})
	assert.ErrorIs(t, err, ErrGuestNotFound)

	err = svc.DeleteGuest(ctx, other.ID, GuestRefInput{ID: f.demoGuest.ID.String(), PersonalizeID: other.ID.String()})
	assert.ErrorIs(t, err, ErrGuestNotFound)

	stored, err := f.guests.FindByID(ctx, f.demoGuest.ID, f.demo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", stored.Name)
}

func TestGuestService_Validation(t *testing.T) {
	f := newFixture(t)
	svc := newGuestService(f, nil)
	ctx := context.Background()
	tenant := f.demo.ID

	_, err := svc.CreateGuest(ctx, tenant, CreateGuestInput{PersonalizeID: tenant.String(), Name: "   "})
	assert.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.CreateGuest(ctx, tenant, CreateGuestInput{PersonalizeID: tenant.String(), Name: "Ani", InvitationType: "vip"})
	assert.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.UpdateGuest(ctx, tenant, UpdateGuestInput{ID: f.demoGuest.ID.String(), PersonalizeID: tenant.String()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateGuest(ctx, tenant, UpdateGuestInput{ID: "xyz", PersonalizeID: tenant.String(), Name: strPtr("A")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateGuest(ctx, tenant, UpdateGuestInput{ID: uuid.NewString(), PersonalizeID: tenant.String(), Name: strPtr("A")})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestGuestService_SendInvitation(t *testing.T) {
	f := newFixture(t)
	sender := &fakeSender{}
	svc := newGuestService(f, sender)
	ctx := context.Background()
	ref := GuestRefInput{ID: f.demoGuest.ID.String(), PersonalizeID: f.demo.ID.String()}

	guest, err := svc.SendInvitation(ctx, f.demo.ID, ref)
	require.NoError(t, err)
	assert.True(t, guest.IsSent)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "081234567890", sender.sent[0].phone)
	assert.Equal(t, "Halo Budi, undangan: https://undangan.link/dilan-milea/INV-AB12CD34", sender.sent[0].message)

	stored, err := f.guests.FindByID(ctx, f.demoGuest.ID, f.demo.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSent)
}

func TestGuestService_SendInvitationErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ref := GuestRefInput{ID: f.demoGuest.ID.String(), PersonalizeID: f.demo.ID.String()}

	_, err := newGuestService(f, nil).SendInvitation(ctx, f.demo.ID, ref)
	assert.ErrorIs(t, err, ErrSenderUnavailable)

	_, err = newGuestService(f, &fakeSender{err: whatsapp.ErrNotOnWhatsApp}).SendInvitation(ctx, f.demo.ID, ref)
	assert.Equal(t, KindBadRequest, KindOf(err))

	_, err = newGuestService(f, &fakeSender{err: whatsapp.ErrNotConnected}).SendInvitation(ctx, f.demo.ID, ref)
	assert.ErrorIs(t, err, ErrSenderUnavailable)

	boom := errors.New("boom")
	_, err = newGuestService(f, &fakeSender{err: boom}).SendInvitation(ctx, f.demo.ID, ref)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, KindInternal, KindOf(err))

	stored, err := f.guests.FindByID(ctx, f.demoGuest.ID, f.demo.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsSent)
}
