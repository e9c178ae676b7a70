package handler_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelxplore/site/internal/domain"
)

func travelerFixture(owner int64) domain.Traveler {
	return domain.Traveler{
		ID:          3,
		UserID:      owner,
		Name:        "Carol",
		Email:       "carol@example.com",
		Phone:       "555-0101",
		Destination: "Lisbon",
		CreatedAt:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func travelerForm() url.Values {
	return url.Values{
		"name":        {"Carol"},
		"email":       {"carol@example.com"},
		"phone":       {"555-0101"},
		"destination": {"Lisbon"},
	}
}

// ---- GET /travelers/ -------------------------------------------------------

func TestTravelerList_OwnerScoped(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.list = func(_ context.Context, ownerID int64) ([]domain.Traveler, error) {
		assert.Equal(t, alice.ID, ownerID)
		return []domain.Traveler{travelerFixture(alice.ID)}, nil
	}

	rec := h.do(http.MethodGet, "/travelers/", nil, cookies)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Carol")
	assert.Contains(t, rec.Body.String(), "/travelers/edit/3/")
}

// ---- POST /travelers/add/ --------------------------------------------------

func TestTravelerCreate_OwnerIsSessionUser(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	var gotOwner int64
	h.travelers.create = func(_ context.Context, ownerID int64, tr domain.Traveler) (domain.Traveler, error) {
		gotOwner = ownerID
		return tr, nil
	}

	form := travelerForm()
	form.Set("user", "8")
	form.Set("user_id", "8")
	rec := h.do(http.MethodPost, "/travelers/add/", form, cookies)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/travelers/", rec.Header().Get("Location"))
	assert.Equal(t, alice.ID, gotOwner)
}

func TestTravelerCreate_InvalidReRenders(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)

	form := travelerForm()
	form.Set("email", "not-an-email")
	rec := h.do(http.MethodPost, "/travelers/add/", form, cookies)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a valid email address.")
	assert.Contains(t, rec.Body.String(), `value="Carol"`, "submitted values are kept")
}

// ---- /travelers/edit/{id}/ and /travelers/delete/{id}/ ---------------------

func TestTravelerUpdate_NonOwnerGets404(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, bob)
	h.travelers.get = func(_ context.Context, ownerID, _ int64) (domain.Traveler, error) {
		if ownerID != alice.ID {
			return domain.Traveler{}, domain.ErrNotFound
		}
		return travelerFixture(alice.ID), nil
	}
	// update and delete left nil: a non-owner must never reach them.

	for _, target := range []string{"/travelers/edit/3/", "/travelers/delete/3/"} {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			var form url.Values
			if method == http.MethodPost {
				form = travelerForm()
			}
			rec := h.do(method, target, form, cookies)
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", method, target)
		}
	}
}

func TestTravelerUpdate_OwnerSaves(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.get = func(context.Context, int64, int64) (domain.Traveler, error) {
		return travelerFixture(alice.ID), nil
	}
	var got domain.Traveler
	h.travelers.update = func(_ context.Context, ownerID int64, tr domain.Traveler) (domain.Traveler, error) {
		assert.Equal(t, alice.ID, ownerID)
		got = tr
		return tr, nil
	}

	form := travelerForm()
	form.Set("destination", "Porto")
	rec := h.do(http.MethodPost, "/travelers/edit/3/", form, cookies)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "Porto", got.Destination)
}

func TestTravelerEdit_GetPrefills(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.get = func(context.Context, int64, int64) (domain.Traveler, error) {
		return travelerFixture(alice.ID), nil
	}

	rec := h.do(http.MethodGet, "/travelers/edit/3/", nil, cookies)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="carol@example.com"`)
}

func TestTravelerDelete_ConfirmThenDelete(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.get = func(context.Context, int64, int64) (domain.Traveler, error) {
		return travelerFixture(alice.ID), nil
	}
	deleted := 0
	h.travelers.delete = func(_ context.Context, ownerID, id int64) error {
		assert.Equal(t, alice.ID, ownerID)
		assert.Equal(t, int64(3), id)
		deleted++
		return nil
	}

	confirm := h.do(http.MethodGet, "/travelers/delete/3/", nil, cookies)
	require.Equal(t, http.StatusOK, confirm.Code)
	assert.Contains(t, confirm.Body.String(), "Are you sure")
	assert.Zero(t, deleted, "GET never deletes")

	rec := h.do(http.MethodPost, "/travelers/delete/3/", url.Values{}, cookies)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, 1, deleted)
}

func TestTraveler_NonIntegerID404(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)

	for _, target := range []string{"/travelers/edit/abc/", "/travelers/edit/0/", "/travelers/edit/-4/"} {
		rec := h.do(http.MethodGet, target, nil, cookies)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestTravelerList_ServiceError500(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.list = func(context.Context, int64) ([]domain.Traveler, error) {
		return nil, errors.New("db down")
	}

	rec := h.do(http.MethodGet, "/travelers/", nil, cookies)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

// ---- GET /travelers/export/ ------------------------------------------------

func TestTravelerExport_CSV(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.export = func(_ context.Context, ownerID int64) ([]domain.TravelerExportRow, error) {
		assert.Equal(t, alice.ID, ownerID)
		return []domain.TravelerExportRow{
			{Name: "Carol, Jr.", Email: "carol@example.com", Phone: "1", Destination: "Lisbon", AddedOn: "2026-01-02"},
		}, nil
	}

	rec := h.do(http.MethodGet, "/travelers/export/", nil, cookies)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "travelers.csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"name", "email", "phone", "destination", "added_on"}, records[0])
	assert.Equal(t, "Carol, Jr.", records[1][0], "commas are quoted")
}

func TestTravelerExport_EmptyHasHeaderOnly(t *testing.T) {
	h := newHarness(t)
	cookies := h.loginAs(t, alice)
	h.travelers.export = func(context.Context, int64) ([]domain.TravelerExportRow, error) {
		return []domain.TravelerExportRow{}, nil
	}

	rec := h.do(http.MethodGet, "/travelers/export/", nil, cookies)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "name,email,phone,destination,added_on\n", rec.Body.String())
}
