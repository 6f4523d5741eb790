package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestProfilePageShowsReadOnlyEmail(t *testing.T) {
	shop := newFakeShop(t)
	app, store := newTestApp(t, shop.server.URL)

	rec := doRequest(app, http.MethodGet, "/profile", "", loginCookies(t, store))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "test@example.com") {
		t.Error("profile page missing the email")
	}
	if !strings.Contains(body, "Email cannot be changed") {
		t.Error("profile page missing the immutability note")
	}
}

func TestProfileUpdateNeverSubmitsEmail(t *testing.T) {
	shop := newFakeShop(t)
	app, store := newTestApp(t, shop.server.URL)

	form := "name=Renamed+User&phone=555-0100&street=2+Oak+St&city=Shelbyville&zipCode=99999" +
		"&email=sneaky@example.com" // posted anyway; the controller must drop it
	rec := doRequest(app, http.MethodPost, "/profile", form, loginCookies(t, store))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if shop.hitCount("update-profile") != 1 {
		t.Fatalf("update-profile hits = %d, want 1", shop.hitCount("update-profile"))
	}

	shop.mu.Lock()
	_, emailSent := shop.lastProfileUpdate["email"]
	name := shop.lastProfileUpdate["name"]
	shop.mu.Unlock()
	if emailSent {
		t.Error("update payload carried an email field; email is immutable")
	}
	if name != "Renamed User" {
		t.Errorf("name = %v, want Renamed User", name)
	}

	if !strings.Contains(rec.Body.String(), "Profile updated successfully") {
		t.Error("success message missing after update")
	}
	// The header greets with the refreshed snapshot straight away.
	if !strings.Contains(rec.Body.String(), "Renamed User") {
		t.Error("refreshed name not rendered")
	}
}

func TestProfileUpdateRequiresName(t *testing.T) {
	shop := newFakeShop(t)
	app, store := newTestApp(t, shop.server.URL)

	rec := doRequest(app, http.MethodPost, "/profile", "phone=555-0100", loginCookies(t, store))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if shop.hitCount("update-profile") != 0 {
		t.Errorf("update submitted without a name")
	}
	if !strings.Contains(rec.Body.String(), "name is required") {
		t.Error("inline field message missing")
	}
}
