package phone

import (
	"context"
	"errors"
	"testing"

	"servicios_locales/internal/domain/entities"
	mock_interfaces "servicios_locales/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter("us")

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"national number in default region", "2025550123", "+1 202-555-0123"},
		{"already international", "+1 (202) 555 0123", "+1 202-555-0123"},
		{"not a number", "llamar por whatsapp", "llamar por whatsapp"},
		{"blank", "  ", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.Format(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDirectory_GetByIDs(t *testing.T) {
	t.Run("formats phones", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		next := mock_interfaces.NewMockIUserDirectory(ctrl)
		raw := "2025550123"
		next.EXPECT().GetByIDs(gomock.Any(), []int64{1, 2}).Return(map[int64]entities.UserProfile{
			1: {ID: 1, FirstName: "Ana", Phone: &raw},
			2: {ID: 2, FirstName: "Luis"},
		}, nil)

		got, err := NewDirectory(next, NewFormatter("US")).GetByIDs(context.Background(), []int64{1, 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *got[1].Phone != "+1 202-555-0123" || got[2].Phone != nil {
			t.Fatalf("unexpected profiles: %+v", got)
		}
		if raw != "2025550123" {
			t.Fatalf("expected source string untouched")
		}
	})

	t.Run("propagates errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		next := mock_interfaces.NewMockIUserDirectory(ctrl)
		next.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("db"))

		if _, err := NewDirectory(next, NewFormatter("US")).GetByIDs(context.Background(), []int64{1}); err == nil {
			t.Fatalf("expected error")
		}
	})
}
