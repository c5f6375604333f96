package integration

import (
	"net/http"
	"testing"
)

func TestActivityFlow(t *testing.T) {
	app := setupApp(t)

	// A finished and an upcoming activity
	rec := app.request("POST", "/activites",
		`{"title":"Past open day","start":"2020-01-01T09:00:00Z","end":"2020-01-01T17:00:00Z"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	past := parseJSON(t, rec)
	if past["status"] != "finished" {
		t.Errorf("expected finished status, got %v", past["status"])
	}

	rec = app.request("POST", "/activites",
		`{"title":"Future drive","start":"2035-01-01T09:00:00Z","end":"2035-01-01T17:00:00Z"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	future := parseJSON(t, rec)
	if future["status"] != "upcoming" {
		t.Errorf("expected upcoming status, got %v", future["status"])
	}

	// Status filter
	rec = app.request("GET", "/activites?status=finished", "", "")
	if len(parseJSONArray(t, rec)) != 1 {
		t.Error("expected one finished activity")
	}
	rec = app.request("GET", "/activites?status=upcoming", "", "")
	if len(parseJSONArray(t, rec)) != 1 {
		t.Error("expected one upcoming activity")
	}
	rec = app.request("GET", "/activites", "", "")
	if len(parseJSONArray(t, rec)) != 2 {
		t.Error("expected both activities without a filter")
	}

	// Month filter on start
	rec = app.request("GET", "/activites?year=2020&month=1", "", "")
	if len(parseJSONArray(t, rec)) != 1 {
		t.Error("expected one activity in 2020-01")
	}

	// Backwards period rejected
	rec = app.request("POST", "/activites",
		`{"title":"Backwards","start":"2030-01-02T09:00:00Z","end":"2030-01-01T09:00:00Z"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for backwards period, got %d", rec.Code)
	}

	// Update and delete
	rec = app.request("PUT", "/activites/2",
		`{"title":"Renamed drive","start":"2035-01-01T09:00:00Z","end":"2035-01-01T17:00:00Z"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["title"] != "Renamed drive" {
		t.Error("expected the title to change")
	}

	rec = app.request("DELETE", "/activites/2", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	rec = app.request("GET", "/activites/2", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", rec.Code)
	}
}
