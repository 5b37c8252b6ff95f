package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/logixshuvo/parcelhub/internal/domain/parcel"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
	"github.com/logixshuvo/parcelhub/internal/http/handlers"
)

// Fake ledger implementing the handlers.Ledger interface

type fakeLedger struct {
	createFn         func(ctx context.Context, req parcel.BookRequest) (parcel.Parcel, error)
	listAllFn        func(ctx context.Context) ([]parcel.Parcel, error)
	listByOwnerFn    func(ctx context.Context, email string) ([]parcel.Parcel, error)
	listAssignedFn   func(ctx context.Context, deliveryManID string) ([]parcel.Parcel, error)
	updateStatusFn   func(ctx context.Context, id, status string) (bool, error)
	updatePaymentFn  func(ctx context.Context, id, status string) (bool, error)
	adminUpdateFn    func(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error)
	replaceFn        func(ctx context.Context, id string, req parcel.ReplaceRequest) (bool, error)
	deleteFn         func(ctx context.Context, id string) error
	countDeliveredFn func(ctx context.Context, deliveryManID string) (int, error)
	bookingStatsFn   func(ctx context.Context) ([]parcel.DateStat, error)
}

func (f *fakeLedger) Create(ctx context.Context, req parcel.BookRequest) (parcel.Parcel, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return parcel.Parcel{}, nil
}

func (f *fakeLedger) ListAll(ctx context.Context) ([]parcel.Parcel, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return []parcel.Parcel{}, nil
}

func (f *fakeLedger) ListByOwnerEmail(ctx context.Context, email string) ([]parcel.Parcel, error) {
	if f.listByOwnerFn != nil {
		return f.listByOwnerFn(ctx, email)
	}
	return []parcel.Parcel{}, nil
}

func (f *fakeLedger) ListAssignedTo(ctx context.Context, deliveryManID string) ([]parcel.Parcel, error) {
	if f.listAssignedFn != nil {
		return f.listAssignedFn(ctx, deliveryManID)
	}
	return []parcel.Parcel{}, nil
}

func (f *fakeLedger) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return false, nil
}

func (f *fakeLedger) UpdatePaymentStatus(ctx context.Context, id, status string) (bool, error) {
	if f.updatePaymentFn != nil {
		return f.updatePaymentFn(ctx, id, status)
	}
	return false, nil
}

func (f *fakeLedger) AdminUpdate(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error) {
	if f.adminUpdateFn != nil {
		return f.adminUpdateFn(ctx, id, req)
	}
	return parcel.Parcel{}, nil
}

func (f *fakeLedger) Replace(ctx context.Context, id string, req parcel.ReplaceRequest) (bool, error) {
	if f.replaceFn != nil {
		return f.replaceFn(ctx, id, req)
	}
	return false, nil
}

func (f *fakeLedger) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLedger) CountDeliveredBy(ctx context.Context, deliveryManID string) (int, error) {
	if f.countDeliveredFn != nil {
		return f.countDeliveredFn(ctx, deliveryManID)
	}
	return 0, nil
}

func (f *fakeLedger) BookingStatsByDate(ctx context.Context) ([]parcel.DateStat, error) {
	if f.bookingStatsFn != nil {
		return f.bookingStatsFn(ctx)
	}
	return []parcel.DateStat{}, nil
}

func TestBookParcelHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"ownerEmail": "jane@example.com", "parcelType": "documents", "weightKg": 1.2}`,
			ledgerSetup: func(f *fakeLedger) {
				f.createFn = func(ctx context.Context, req parcel.BookRequest) (parcel.Parcel, error) {
					return parcel.Parcel{
						ID:             newUUID(),
						OwnerEmail:     req.OwnerEmail,
						DeliveryStatus: parcel.StatusPending,
						PaymentStatus:  parcel.PaymentUnpaid,
						BookingDate:    time.Now().UTC(),
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "validation_error_missing_owner",
			body: `{"parcelType": "documents"}`,
			ledgerSetup: func(f *fakeLedger) {
				// the ledger should not be reached with an invalid payload
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{"ownerEmail": "jane@example.com"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.createFn = func(ctx context.Context, req parcel.BookRequest) (parcel.Parcel, error) {
					return parcel.Parcel{}, errors.New("db error")
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

			h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
			r := setupRouter(http.MethodPost, "/bookedParcels", h.Book)

			req := httptest.NewRequest(http.MethodPost, "/bookedParcels", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestListBookedParcelsHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
		wantCount      int
	}{
		{
			name: "success",
			url:  "/parcels?email=jane@example.com",
			ledgerSetup: func(f *fakeLedger) {
				f.listByOwnerFn = func(ctx context.Context, email string) ([]parcel.Parcel, error) {
					if email != "jane@example.com" {
						return nil, errors.New("wrong email passed")
					}
					return []parcel.Parcel{
						{ID: newUUID(), OwnerEmail: email, DeliveryStatus: parcel.StatusPending},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:           "missing_email",
			url:            "/parcels",
			ledgerSetup:    nil,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			url:  "/parcels?email=jane@example.com",
			ledgerSetup: func(f *fakeLedger) {
				f.listByOwnerFn = func(ctx context.Context, email string) ([]parcel.Parcel, error) {
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

			h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
			r := setupRouter(http.MethodGet, "/parcels", h.ListByOwner)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp []parcel.Parcel
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if len(resp) != tt.wantCount {
				t.Fatalf("got %d parcels, want %d", len(resp), tt.wantCount)
			}
		})
	}
}

func TestMyAssignedParcelsHandler(t *testing.T) {
	riderID := newUUID()

	tests := []struct {
		name           string
		url            string
		dirSetup       func(*fakeDirectory)
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
	}{
		{
			name: "success",
			url:  "/myassignedparcels?email=rider@example.com",
			dirSetup: func(f *fakeDirectory) {
				f.getFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{ID: riderID, Email: email, Role: user.RoleDeliveryman}, nil
				}
			},
			ledgerSetup: func(f *fakeLedger) {
				f.listAssignedFn = func(ctx context.Context, deliveryManID string) ([]parcel.Parcel, error) {
					if deliveryManID != riderID {
						return nil, errors.New("wrong deliveryman id passed")
					}
					return []parcel.Parcel{
						{ID: newUUID(), DeliveryStatus: parcel.StatusAssigned, DeliveryManID: &deliveryManID},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing_email",
			url:            "/myassignedparcels",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "email_is_not_a_deliveryman",
			url:  "/myassignedparcels?email=jane@example.com",
			dirSetup: func(f *fakeDirectory) {
				f.getFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{ID: newUUID(), Email: email, Role: user.RoleCustomer}, nil
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "unknown_email",
			url:  "/myassignedparcels?email=ghost@example.com",
			dirSetup: func(f *fakeDirectory) {
				f.getFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{}, user.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "ledger_error",
			url:  "/myassignedparcels?email=rider@example.com",
			dirSetup: func(f *fakeDirectory) {
				f.getFn = func(ctx context.Context, email string) (user.User, error) {
					return user.User{ID: riderID, Email: email, Role: user.RoleDeliveryman}, nil
				}
			},
			ledgerSetup: func(f *fakeLedger) {
				f.listAssignedFn = func(ctx context.Context, deliveryManID string) ([]parcel.Parcel, error) {
					return nil, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{}
			ledger := &fakeLedger{}

			if tt.dirSetup != nil {
				tt.dirSetup(dir)
			}
			if tt.ledgerSetup != nil {
				tt.ledgerSetup(ledger)
			}

			h := handlers.NewParcelsHandler(ledger, dir)
			r := setupRouter(http.MethodGet, "/myassignedparcels", h.MyAssigned)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	validID := newUUID()

	tests := []struct {
		name           string
		body           string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
		wantModified   int
	}{
		{
			name: "success",
			body: `{"deliveryStatus": "delivered"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.updateStatusFn = func(ctx context.Context, id, status string) (bool, error) {
					if status != parcel.StatusDelivered {
						return false, errors.New("wrong status passed")
					}
					return true, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantModified:   1,
		},
		{
			name: "same_status_is_not_modified",
			body: `{"deliveryStatus": "delivered"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.updateStatusFn = func(ctx context.Context, id, status string) (bool, error) {
					return false, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantModified:   0,
		},
		{
			name:           "validation_error_unknown_status",
			body:           `{"deliveryStatus": "teleported"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{"deliveryStatus": "in-transit"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.updateStatusFn = func(ctx context.Context, id, status string) (bool, error) {
					return false, errors.New("db error")
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

			h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
			r := setupRouter(http.MethodPatch, "/updateStatus/:id", h.UpdateStatus)

			req := httptest.NewRequest(http.MethodPatch, "/updateStatus/"+validID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var resp struct {
				ModifiedCount int `json:"modifiedCount"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.ModifiedCount != tt.wantModified {
				t.Fatalf("got modifiedCount=%d, want %d", resp.ModifiedCount, tt.wantModified)
			}
		})
	}
}

func TestAdminUpdateParcelHandler(t *testing.T) {
	validID := newUUID()
	riderID := newUUID()

	tests := []struct {
		name           string
		body           string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
	}{
		{
			name: "assign_deliveryman",
			body: `{"deliveryStatus": "assigned", "deliveryManId": "` + riderID + `"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.adminUpdateFn = func(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error) {
					if req.DeliveryManID == nil || *req.DeliveryManID != riderID {
						return parcel.Parcel{}, errors.New("deliveryManId not passed through")
					}
					return parcel.Parcel{ID: id, DeliveryStatus: req.DeliveryStatus, DeliveryManID: req.DeliveryManID}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			body: `{"deliveryStatus": "assigned"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.adminUpdateFn = func(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error) {
					return parcel.Parcel{}, parcel.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "validation_error_unknown_status",
			body:           `{"deliveryStatus": "lost"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{"deliveryStatus": "assigned"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.adminUpdateFn = func(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error) {
					return parcel.Parcel{}, errors.New("db error")
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

			h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
			r := setupRouter(http.MethodPatch, "/bookedParcels/:id", h.AdminUpdate)

			req := httptest.NewRequest(http.MethodPatch, "/bookedParcels/"+validID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestReplaceParcelHandler(t *testing.T) {
	validID := newUUID()

	// a client-supplied id in the body is simply not part of the bound
	// request, so it can never overwrite the path id
	t.Run("body_id_is_discarded", func(t *testing.T) {
		ledger := &fakeLedger{
			replaceFn: func(ctx context.Context, id string, req parcel.ReplaceRequest) (bool, error) {
				if id != validID {
					return false, errors.New("path id not used")
				}
				return true, nil
			},
		}

		h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
		r := setupRouter(http.MethodPut, "/parcels/:id", h.Replace)

		body := `{"id": "evil-id", "_id": "evil-id", "ownerEmail": "jane@example.com"}`
		req := httptest.NewRequest(http.MethodPut, "/parcels/"+validID, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			ModifiedCount int `json:"modifiedCount"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.ModifiedCount != 1 {
			t.Fatalf("got modifiedCount=%d, want 1", resp.ModifiedCount)
		}
	})

	t.Run("validation_error", func(t *testing.T) {
		h := handlers.NewParcelsHandler(&fakeLedger{}, &fakeDirectory{})
		r := setupRouter(http.MethodPut, "/parcels/:id", h.Replace)

		req := httptest.NewRequest(http.MethodPut, "/parcels/"+validID, bytes.NewBufferString(`{"ownerEmail": "not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}
	})
}

func TestCancelParcelHandler(t *testing.T) {
	validID := newUUID()

	tests := []struct {
		name           string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
	}{
		{
			name: "success",
			ledgerSetup: func(f *fakeLedger) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			ledgerSetup: func(f *fakeLedger) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return parcel.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "repo_error",
			ledgerSetup: func(f *fakeLedger) {
				f.deleteFn = func(ctx context.Context, id string) error {
					return errors.New("db error")
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

			h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
			r := setupRouter(http.MethodDelete, "/parcels/:id", h.Cancel)

			req := httptest.NewRequest(http.MethodDelete, "/parcels/"+validID, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeliveredCountHandler(t *testing.T) {
	riderID := newUUID()

	ledger := &fakeLedger{
		countDeliveredFn: func(ctx context.Context, deliveryManID string) (int, error) {
			if deliveryManID != riderID {
				return 0, errors.New("wrong deliveryman id passed")
			}
			return 7, nil
		},
	}

	h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
	r := setupRouter(http.MethodGet, "/parcelsDelivered/:deliveryManId", h.DeliveredCount)

	req := httptest.NewRequest(http.MethodGet, "/parcelsDelivered/"+riderID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if !resp.Success || resp.Count != 7 {
		t.Fatalf("got success=%v count=%d, want success=true count=7", resp.Success, resp.Count)
	}
}

func TestListAllParcelsHandler_ETagNotModified(t *testing.T) {
	ledger := &fakeLedger{
		listAllFn: func(ctx context.Context) ([]parcel.Parcel, error) {
			return []parcel.Parcel{
				{ID: "p-1", OwnerEmail: "jane@example.com", DeliveryStatus: parcel.StatusPending},
			}, nil
		},
	}

	h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
	r := setupRouter(http.MethodGet, "/bookedParcels", h.ListAll)

	w1 := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodGet, "/bookedParcels", nil)
	r.ServeHTTP(w1, req1)

	if w1.Code != http.StatusOK {
		t.Fatalf("first call got %d body=%s", w1.Code, w1.Body.String())
	}

	etag := w1.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header in first response")
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/bookedParcels", nil)
	req2.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusNotModified {
		t.Fatalf("second call got %d, want %d, body=%s", w2.Code, http.StatusNotModified, w2.Body.String())
	}

	if w2.Body.Len() != 0 {
		t.Fatalf("expected empty body for 304, got %q", w2.Body.String())
	}
}

func TestUpdatePaymentStatusHandler(t *testing.T) {
	validID := newUUID()

	tests := []struct {
		name           string
		body           string
		ledgerSetup    func(*fakeLedger)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"paymentStatus": "paid"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.updatePaymentFn = func(ctx context.Context, id, status string) (bool, error) {
					if status != parcel.PaymentPaid {
						return false, errors.New("wrong status passed")
					}
					return true, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "validation_error_unknown_status",
			body:           `{"paymentStatus": "refunded"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{"paymentStatus": "paid"}`,
			ledgerSetup: func(f *fakeLedger) {
				f.updatePaymentFn = func(ctx context.Context, id, status string) (bool, error) {
					return false, errors.New("db error")
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

			h := handlers.NewParcelsHandler(ledger, &fakeDirectory{})
			r := setupRouter(http.MethodPatch, "/updatePaymentStatus/:id", h.UpdatePaymentStatus)

			req := httptest.NewRequest(http.MethodPatch, "/updatePaymentStatus/"+validID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
