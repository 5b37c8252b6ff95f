package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/logixshuvo/parcelhub/internal/domain/parcel"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
	"github.com/logixshuvo/parcelhub/internal/http/handlers"
)

func TestBookingStatsHandler(t *testing.T) {
	tests := []struct {
		name           string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
		wantDates      []string
	}{
		{
			name: "success_sorted_oldest_first",
			ledgerSetup: func(f *fakeLedger) {
				f.bookingStatsFn = func(ctx context.Context) ([]parcel.DateStat, error) {
					return []parcel.DateStat{
						{Date: "2026-08-01", Booked: 3, Delivered: 1},
						{Date: "2026-08-02", Booked: 5, Delivered: 5},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantDates:      []string{"2026-08-01", "2026-08-02"},
		},
		{
			name: "empty_ledger",
			ledgerSetup: func(f *fakeLedger) {
				f.bookingStatsFn = func(ctx context.Context) ([]parcel.DateStat, error) {
					return []parcel.DateStat{}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantDates:      []string{},
		},
		{
			name: "repo_error",
			ledgerSetup: func(f *fakeLedger) {
				f.bookingStatsFn = func(ctx context.Context) ([]parcel.DateStat, error) {
					return nil, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}

			if tt.ledgerSetup != nil {
				tt.ledgerSetup(ledger)
			}

			h := handlers.NewStatsHandler(&fakeDirectory{}, ledger, &fakePaymentBook{})
			r := setupRouter(http.MethodGet, "/bookingStats", h.BookingStats)

			req := httptest.NewRequest(http.MethodGet, "/bookingStats", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp struct {
				BookingsByDate []parcel.DateStat `json:"bookingsByDate"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}

			if len(resp.BookingsByDate) != len(tt.wantDates) {
				t.Fatalf("got %d buckets, want %d", len(resp.BookingsByDate), len(tt.wantDates))
			}

			for i, want := range tt.wantDates {
				if resp.BookingsByDate[i].Date != want {
					t.Fatalf("bucket %d: got date %q, want %q", i, resp.BookingsByDate[i].Date, want)
				}
			}
		})
	}
}

func TestAdminStatsHandler(t *testing.T) {
	dir := &fakeDirectory{
		countAllFn: func(ctx context.Context) (int, error) {
			return 42, nil
		},
		countByRoleFn: func(ctx context.Context, role string) (int, error) {
			if role != user.RoleDeliveryman {
				return 0, errors.New("unexpected role counted")
			}
			return 5, nil
		},
	}

	ledger := &fakeLedger{
		bookingStatsFn: func(ctx context.Context) ([]parcel.DateStat, error) {
			return []parcel.DateStat{
				{Date: "2026-08-01", Booked: 3, Delivered: 1},
				{Date: "2026-08-02", Booked: 4, Delivered: 2},
			}, nil
		},
	}

	book := &fakePaymentBook{
		revenueFn: func(ctx context.Context) (float64, error) {
			return 999.5, nil
		},
	}

	h := handlers.NewStatsHandler(dir, ledger, book)
	r := setupRouter(http.MethodGet, "/admin/stats", h.AdminStats)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Users            int     `json:"users"`
		Deliverymen      int     `json:"deliverymen"`
		Parcels          int     `json:"parcels"`
		ParcelsDelivered int     `json:"parcelsDelivered"`
		TotalRevenue     float64 `json:"totalRevenue"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Users != 42 || resp.Deliverymen != 5 {
		t.Fatalf("got users=%d deliverymen=%d, want 42/5", resp.Users, resp.Deliverymen)
	}
	if resp.Parcels != 7 || resp.ParcelsDelivered != 3 {
		t.Fatalf("got parcels=%d delivered=%d, want 7/3", resp.Parcels, resp.ParcelsDelivered)
	}
	if resp.TotalRevenue != 999.5 {
		t.Fatalf("got totalRevenue=%v, want 999.5", resp.TotalRevenue)
	}
}

func TestAdminStatsHandler_DirectoryError(t *testing.T) {
	dir := &fakeDirectory{
		countAllFn: func(ctx context.Context) (int, error) {
			return 0, errors.New("db error")
		},
	}

	h := handlers.NewStatsHandler(dir, &fakeLedger{}, &fakePaymentBook{})
	r := setupRouter(http.MethodGet, "/admin/stats", h.AdminStats)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}
}
