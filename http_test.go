package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doRequest(t *testing.T, h http.Handler, method, path string) (int, Report) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var r Report
	if rec.Code == http.StatusOK {
		err := json.NewDecoder(rec.Body).Decode(&r)
		if err != nil {
			t.Fatalf("%s %s: couldn't decode response: %v", method, path, err)
		}
	}
	return rec.Code, r
}

func TestHTTPStatus(t *testing.T) {
	ctl := newTestController(t, nil)
	runController(t, ctl)
	h := newRouter(ctl)

	code, r := doRequest(t, h, http.MethodGet, "/status")
	if code != http.StatusOK {
		t.Fatalf("GET /status: got: %d", code)
	}
	if r.Mode != "WORDCLOCK" || r.Status != "initializing" || r.Brightness != 255 {
		t.Errorf("GET /status: got: %+v", r)
	}
	if len(r.Palettes) == 0 {
		t.Errorf("No palettes listed")
	}
}

func TestHTTPChanges(t *testing.T) {
	ctl := newTestController(t, nil)
	runController(t, ctl)
	h := newRouter(ctl)

	tests := []struct {
		path  string
		code  int
		check func(r Report) bool
	}{
		{"/mode/rain", http.StatusOK, func(r Report) bool { return r.Mode == "RAIN" }},
		{"/mode/disco", http.StatusBadRequest, nil},
		{"/palette/Lava", http.StatusOK, func(r Report) bool { return r.Palette == "lava" }},
		{"/palette/plaid", http.StatusBadRequest, nil},
		{"/status/broker-disconnected", http.StatusOK, func(r Report) bool { return r.Status == "broker-disconnected" }},
		{"/status/online", http.StatusBadRequest, nil},
		{"/brightness/64", http.StatusOK, func(r Report) bool { return r.Brightness == 64 }},
		{"/brightness/-1", http.StatusBadRequest, nil},
		{"/brightness/dim", http.StatusBadRequest, nil},
		{"/color/0000FF", http.StatusOK, func(r Report) bool { return r.Mode == "MOODLIGHT" && r.Color == "0000FF" }},
		{"/color/blue", http.StatusBadRequest, nil},
	}
	for _, test := range tests {
		code, r := doRequest(t, h, http.MethodPut, test.path)
		if code != test.code {
			t.Errorf("PUT %s: got: %d, want: %d", test.path, code, test.code)
			continue
		}
		if test.check != nil && !test.check(r) {
			t.Errorf("PUT %s: unexpected state %+v", test.path, r)
		}
	}

	code, _ := doRequest(t, h, http.MethodGet, "/mode/rain")
	if code != http.StatusMethodNotAllowed {
		t.Errorf("GET /mode/rain: got: %d, want: %d", code, http.StatusMethodNotAllowed)
	}
}
