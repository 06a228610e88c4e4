package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vastra-backend/models"

	"github.com/google/uuid"
)

func countDefaults(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	testDB.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&count)
	return count
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-first@test.com", "customer")
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/addresses", map[string]interface{}{
		"name":      "Asha Rao",
		"line1":     "4 MG Road",
		"city":      "Bengaluru",
		"post_code": "560001",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["is_default"] != true {
		t.Errorf("expected first address to be default, got %v", resp["is_default"])
	}
	if countDefaults(t, user.ID) != 1 {
		t.Errorf("expected exactly one default")
	}
}

func TestSecondAddressNotDefault(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-second@test.com", "customer")
	seedAddress(db, user.ID, true)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/addresses", map[string]interface{}{
		"name":      "Asha Rao",
		"line1":     "8 Brigade Road",
		"city":      "Bengaluru",
		"post_code": "560025",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["is_default"] != false {
		t.Errorf("expected non-default second address, got %v", resp["is_default"])
	}
	if countDefaults(t, user.ID) != 1 {
		t.Errorf("expected exactly one default")
	}
}

func TestSetDefaultAddressExclusive(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-default@test.com", "customer")
	a1 := seedAddress(db, user.ID, true)
	a2 := seedAddress(db, user.ID, false)
	a3 := seedAddress(db, user.ID, false)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/addresses/"+a2.ID.String()+"/default", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if countDefaults(t, user.ID) != 1 {
		t.Fatalf("expected exactly one default after switch")
	}
	var reloaded models.Address
	db.First(&reloaded, "id = ?", a2.ID)
	if !reloaded.IsDefault {
		t.Errorf("expected a2 to be the default")
	}
	var reloaded1 models.Address
	db.First(&reloaded1, "id = ?", a1.ID)
	if reloaded1.IsDefault {
		t.Errorf("expected a1 default cleared")
	}

	// Switching again keeps the invariant
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/addresses/"+a3.ID.String()+"/default", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if countDefaults(t, user.ID) != 1 {
		t.Fatalf("expected exactly one default after second switch")
	}
}

func TestCreateAddressWithDefaultFlagClearsOthers(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-flag@test.com", "customer")
	existing := seedAddress(db, user.ID, true)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/addresses", map[string]interface{}{
		"name":       "New Default",
		"line1":      "1 Park Street",
		"city":       "Kolkata",
		"post_code":  "700016",
		"is_default": true,
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if countDefaults(t, user.ID) != 1 {
		t.Fatalf("expected exactly one default")
	}
	var reloaded models.Address
	db.First(&reloaded, "id = ?", existing.ID)
	if reloaded.IsDefault {
		t.Errorf("expected previous default cleared")
	}
}

func TestSetDefaultForeignAddress(t *testing.T) {
	db := freshDB()
	owner, _ := seedTestUser(db, "addr-owner@test.com", "customer")
	_, otherToken := seedTestUser(db, "addr-other@test.com", "customer")
	addr := seedAddress(db, owner.ID, true)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PATCH", "/api/addresses/"+addr.ID.String()+"/default", nil, otherToken))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign address, got %d", w.Code)
	}
}

func TestUpdateAddress(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-upd@test.com", "customer")
	addr := seedAddress(db, user.ID, true)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/addresses/"+addr.ID.String(), map[string]interface{}{
		"name":      "Updated Name",
		"line1":     "New Line 1",
		"city":      "Pune",
		"post_code": "411001",
	}, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["name"] != "Updated Name" || resp["city"] != "Pune" {
		t.Errorf("expected updated fields, got %v", resp)
	}
	// Updating without the default flag must not clear the existing default
	if countDefaults(t, user.ID) != 1 {
		t.Errorf("expected default preserved")
	}
}

func TestCreateAddressValidation(t *testing.T) {
	db := freshDB()
	_, token := seedTestUser(db, "addr-val@test.com", "customer")
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/addresses", map[string]interface{}{
		"line1": "Missing name",
	}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteAddress(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-del@test.com", "customer")
	addr := seedAddress(db, user.ID, true)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/addresses/"+addr.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected address removed, got %d", count)
	}
}

func TestGetAddressesScopedToUser(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "addr-list@test.com", "customer")
	other, _ := seedTestUser(db, "addr-list-other@test.com", "customer")
	seedAddress(db, user.ID, true)
	seedAddress(db, other.ID, true)
	router := setupAddressRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/addresses", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	addresses := parseResponseArray(w)
	if len(addresses) != 1 {
		t.Fatalf("expected 1 address, got %d", len(addresses))
	}
}
