package store

import (
	"context"
	"errors"
	"testing"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
)

func TestShareGroupLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"alice01", "bob0001", "carol01"} {
		mustUser(t, s, id)
	}

	if _, err := s.CreateShareGroup(ctx, "alice01", " "); err == nil {
		t.Error("expected error for an empty name")
	}
	g, err := s.CreateShareGroup(ctx, "alice01", "family")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Members) != 1 || g.Members[0].Status != models.MemberAccepted {
		t.Fatalf("members = %+v", g.Members)
	}

	m, err := s.InviteMember(ctx, "alice01", g.ID, "bob0001")
	if err != nil {
		t.Fatal(err)
	}
	if m.Status != models.MemberPending {
		t.Errorf("status = %s", m.Status)
	}

	var cerr *util.ConflictError
	if _, err := s.InviteMember(ctx, "alice01", g.ID, "bob0001"); !errors.As(err, &cerr) {
		t.Errorf("duplicate invite: err = %v", err)
	}
	// pending members cannot invite
	if _, err := s.InviteMember(ctx, "bob0001", g.ID, "carol01"); !errors.Is(err, util.ErrForbidden) {
		t.Errorf("pending inviter: err = %v", err)
	}
	if _, err := s.InviteMember(ctx, "carol01", g.ID, "bob0001"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("outsider inviter: err = %v", err)
	}
	if _, err := s.InviteMember(ctx, "alice01", g.ID, "ghost99"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("unknown invitee: err = %v", err)
	}

	if _, err := s.RespondInvitation(ctx, "bob0001", g.ID, "MAYBE"); err == nil {
		t.Error("expected error for an unknown status")
	}
	m, err = s.RespondInvitation(ctx, "bob0001", g.ID, "accepted")
	if err != nil {
		t.Fatal(err)
	}
	if m.Status != models.MemberAccepted || m.RespondedAt == nil {
		t.Errorf("member = %+v", m)
	}
	if _, err := s.RespondInvitation(ctx, "bob0001", g.ID, models.MemberRejected); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("second response: err = %v", err)
	}

	groups, err := s.ListShareGroups(ctx, "bob0001")
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 1 || len(groups[0].Members) != 2 {
		t.Errorf("bob's groups = %+v", groups)
	}
	if groups, _ := s.ListShareGroups(ctx, "carol01"); len(groups) != 0 {
		t.Errorf("carol's groups = %+v", groups)
	}
}

func TestRejectedInvitationCanBeReissued(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	mustUser(t, s, "bob0001")

	g, err := s.CreateShareGroup(ctx, "alice01", "trip")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.InviteMember(ctx, "alice01", g.ID, "bob0001"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RespondInvitation(ctx, "bob0001", g.ID, models.MemberRejected); err != nil {
		t.Fatal(err)
	}
	m, err := s.InviteMember(ctx, "alice01", g.ID, "bob0001")
	if err != nil {
		t.Fatalf("re-invite: %v", err)
	}
	if m.Status != models.MemberPending || m.RespondedAt != nil {
		t.Errorf("member = %+v", m)
	}
}
