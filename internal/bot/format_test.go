package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"burgerbot/internal/catalog"
	"burgerbot/internal/model"
)

var testCatalog = catalog.FromServices([]model.Service{
	{ID: 1, Name: "Anmeldung", URL: "https://service.berlin.de/dienstleistung/1/"},
	{ID: 2, Name: "Reisepass beantragen", URL: "https://service.berlin.de/dienstleistung/2/"},
})

func TestFormatNotification(t *testing.T) {
	service := model.Service{
		ID:   1,
		Name: "Anmeldung",
		URL:  "https://service.berlin.de/dienstleistung/1/",
	}
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	got := FormatNotification(service, date)
	want := "There are slots on 05 March available for booking for Anmeldung, click [here](https://service.berlin.de/dienstleistung/1/) to check it out"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notification mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCatalog(t *testing.T) {
	got := FormatCatalog(testCatalog)

	if !strings.HasPrefix(got, "Available services:\n") {
		t.Errorf("missing heading in %q", got)
	}
	for _, line := range []string{"1 - Anmeldung", "2 - Reisepass beantragen"} {
		if !strings.Contains(got, line) {
			t.Errorf("expected %q in %q", line, got)
		}
	}
	// Sorted by id.
	if strings.Index(got, "1 - Anmeldung") > strings.Index(got, "2 - Reisepass") {
		t.Error("expected catalog sorted by service id")
	}
}

func TestFormatMyServices(t *testing.T) {
	tests := []struct {
		name     string
		services []int64
		want     string
	}{
		{
			name:     "empty list",
			services: nil,
			want:     "The following services are on your list:\n - (none)",
		},
		{
			name:     "known services",
			services: []int64{1, 2},
			want:     "The following services are on your list:\n - 1 Anmeldung\n - 2 Reisepass beantragen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMyServices(testCatalog, tt.services)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseServiceID(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    int64
		wantErr bool
	}{
		{name: "plain id", args: "120686", want: 120686},
		{name: "surrounding spaces", args: "  120686  ", want: 120686},
		{name: "trailing words ignored", args: "120686 please", want: 120686},
		{name: "empty", args: "", wantErr: true},
		{name: "not a number", args: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServiceID(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("id mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
