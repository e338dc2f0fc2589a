package http

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestInsightsPartialDecemberFilter(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := get(s, "/ui/insights?range=year&prev_range=year&month=12&year=2025", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "₹83,600") {
		t.Fatalf("filtered total spent missing; body: %s", body)
	}
	if !strings.Contains(body, "₹45,000") {
		t.Fatal("filtered total income missing")
	}
}

func TestInsightsPartialRangeSwitchResetsFilters(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	// prev_range differs from the submitted range, so month and year are
	// dropped and the full-year totals come back.
	rec := get(s, "/ui/insights?range=year&prev_range=month&month=12&year=2025", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "₹3,25,640") {
		t.Fatal("unfiltered year total missing after range switch")
	}
}

func TestInsightsPageDefaultsToMonthRange(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := get(s, "/insights", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "₹28,450") {
		t.Fatal("month total spent missing")
	}
	if !strings.Contains(body, "Spending Trend") {
		t.Fatal("trend section missing")
	}
}

func TestSettingsProfileUpdate(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := postForm(s, "/settings/profile", url.Values{
		"fullName": {"Renamed Admin"},
		"email":    {"renamed@tddbank.com"},
		"mobile":   {"+91 90000 00000"},
		"address":  {"New Address"},
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "profile:updated") {
		t.Fatalf("HX-Trigger = %q, want profile:updated", trigger)
	}
	if !strings.Contains(rec.Body.String(), "Renamed Admin") {
		t.Fatal("updated profile fragment missing new name")
	}

	// The settings page reflects the saved profile.
	page := get(s, "/settings", cookies)
	if !strings.Contains(page.Body.String(), "renamed@tddbank.com") {
		t.Fatal("settings page missing saved email")
	}
}

func TestSettingsProfileRejectsInvalidEmail(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := postForm(s, "/settings/profile", url.Values{
		"fullName": {"Admin User"},
		"email":    {"broken"},
		"mobile":   {"+91 90000 00000"},
		"address":  {"Somewhere"},
	}, cookies)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestSettings2FAToggle(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	// Sign-in seeds the profile with 2FA on; the first toggle turns it off.
	rec := postForm(s, "/settings/2fa", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "twofa:toggled") {
		t.Fatalf("HX-Trigger = %q, want twofa:toggled", trigger)
	}
	if !strings.Contains(trigger, `"enabled":false`) {
		t.Fatalf("HX-Trigger = %q, want enabled false after first toggle", trigger)
	}
}

func TestSecurityPrivacyToggle(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := postForm(s, "/security/privacy", url.Values{
		"setting": {"marketingEmails"},
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "privacy:toggled") {
		t.Fatalf("HX-Trigger = %q, want privacy:toggled", trigger)
	}

	rec = postForm(s, "/security/privacy", url.Values{
		"setting": {"nonsense"},
	}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown setting status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSecurityDeactivateWipesAndSignsOut(t *testing.T) {
	s, kv := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	req := newRequestWithCookies(http.MethodPost, "/security/deactivate", cookies)
	req.Header.Set("HX-Request", "true")
	rec := serve(s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("HX-Redirect"); loc != "/sign-in" {
		t.Fatalf("HX-Redirect = %q, want /sign-in", loc)
	}

	name, err := kv.ReadUserName(req.Context())
	if err != nil {
		t.Fatalf("ReadUserName: %v", err)
	}
	if name != "" {
		t.Fatalf("stored user name = %q, want empty after wipe", name)
	}

	// The session is gone too.
	after := get(s, "/", rec.Result().Cookies())
	if after.Code != http.StatusSeeOther {
		t.Fatalf("post-deactivation status = %d, want redirect", after.Code)
	}
}

func TestSupportPageListsFixtures(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := get(s, "/support", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"Frequently Asked Questions",
		"Kolkata Main Branch",
		"21 Rajani Sen Road",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("support page missing %q", want)
		}
	}
}

func TestFAQSearchPartial(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := get(s, "/ui/faq-search?q=kyc", cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Count(body, "<summary>") != 1 {
		t.Fatalf("want exactly one FAQ for kyc, body: %s", body)
	}

	rec = get(s, "/ui/faq-search?q=zzz-no-match", cookies)
	if !strings.Contains(rec.Body.String(), "No questions match") {
		t.Fatal("empty state missing for unmatched query")
	}
}

func TestDashboardHidesBalanceWhenPrivacySet(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	// Default privacy shows the balance.
	rec := get(s, "/", cookies)
	if !strings.Contains(rec.Body.String(), "Net Savings This Month") {
		t.Fatal("balance card missing")
	}
	if strings.Contains(rec.Body.String(), "Hidden by your privacy settings") {
		t.Fatal("balance hidden while privacy allows it")
	}

	postForm(s, "/security/privacy", url.Values{"setting": {"showBalanceOnHome"}}, cookies)

	rec = get(s, "/", cookies)
	if !strings.Contains(rec.Body.String(), "Hidden by your privacy settings") {
		t.Fatal("balance still visible after turning the toggle off")
	}
}

func TestUnknownPathIs404ForSignedInUser(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signIn(t, s, "admin@tddbank.com", "123456")

	rec := get(s, "/no-such-page", cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
