package catalog

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"burgerbot/internal/model"
)

func TestLookup(t *testing.T) {
	cat := New()

	tests := []struct {
		name     string
		id       int64
		wantName string
		wantOK   bool
	}{
		{name: "known service", id: 120686, wantName: "Anmeldung", wantOK: true},
		{name: "unknown service", id: 999999, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cat.Lookup(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok != cat.Contains(tt.id) {
				t.Error("Contains disagrees with Lookup")
			}
			if !tt.wantOK {
				return
			}
			if diff := cmp.Diff(tt.wantName, got.Name); diff != "" {
				t.Errorf("name mismatch (-want +got):\n%s", diff)
			}
			wantURL := "https://service.berlin.de/dienstleistung/120686/"
			if diff := cmp.Diff(wantURL, got.URL); diff != "" {
				t.Errorf("url mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllSortedByID(t *testing.T) {
	cat := New()
	all := cat.All()

	if len(all) != len(serviceNames) {
		t.Fatalf("expected %d services, got %d", len(serviceNames), len(all))
	}
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].ID < all[j].ID }) {
		t.Error("expected services sorted by id")
	}
	for _, s := range all {
		if s.Name == "" {
			t.Errorf("service %d has no name", s.ID)
		}
		if !strings.HasPrefix(s.URL, "https://service.berlin.de/") {
			t.Errorf("service %d has unexpected url %q", s.ID, s.URL)
		}
	}
}

func TestFromServices(t *testing.T) {
	cat := FromServices([]model.Service{{ID: 7, Name: "Test", URL: "https://example.com/7"}})

	if !cat.Contains(7) {
		t.Error("expected custom service present")
	}
	if cat.Contains(120686) {
		t.Error("custom catalog must not contain default services")
	}
}
