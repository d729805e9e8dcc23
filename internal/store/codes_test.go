package store

import (
	"context"
	"testing"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
)

func TestListCommonCodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.db.Model(&models.CommonCode{}).
		Where("grp_cd = ? AND cd = ?", models.GroupBank, "TOSS").
		Update("use_yn", models.No).Error; err != nil {
		t.Fatal(err)
	}

	banks, err := s.ListCommonCodes(ctx, models.GroupBank, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(banks) != 8 || banks[0].Code != "KB" {
		t.Errorf("banks = %+v", banks)
	}
	active, err := s.ListCommonCodes(ctx, models.GroupBank, models.Yes)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 7 {
		t.Errorf("active banks = %d, want 7", len(active))
	}

	all, err := s.ListCommonCodes(ctx, "", "")
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.GroupCode > cur.GroupCode || (prev.GroupCode == cur.GroupCode && prev.SortOrder > cur.SortOrder) {
			t.Fatalf("out of order at %d: %+v then %+v", i, prev, cur)
		}
	}
}
