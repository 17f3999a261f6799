package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/historical-temps/internal/config"
)

func testApp(t *testing.T) *app {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/us/98101", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"places":[{"place name":"Seattle","state abbreviation":"WA","latitude":"47.6114","longitude":"-122.3344"}]}`)
	})
	mux.HandleFunc("/archive", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start_date") != "2020-01-01" || r.URL.Query().Get("end_date") != "2020-01-03" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":true,"reason":"unexpected range"}`)
			return
		}
		io.WriteString(w, `{"daily":{"time":["2020-01-01","2020-01-02","2020-01-03"],"temperature_2m_max":[10.0,20.0,30.0]}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return newApp(&config.AppConfig{
		ArchiveURL:      srv.URL + "/archive",
		ArchiveTimezone: "America/Los_Angeles",
		Geocoder:        config.GeocoderZippopotam,
		GeocoderURL:     srv.URL,
		GeocoderCountry: "us",
		HTTPTimeout:     5 * time.Second,
		HTTPMaxRetries:  0,
		LogLevel:        "error",
	})
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--start", "2020-01-01", "--end", "2020-01-03"))
	err := cmd.Execute()
	return out.String(), err
}

func TestAverageCommand(t *testing.T) {
	out, err := execute(t, averageCmd(testApp(t)), "98101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "The average maximum temperature for Seattle, WA was 20.00 degrees Celsius") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestAboveCommand(t *testing.T) {
	out, err := execute(t, aboveCmd(testApp(t)), "98101", "-t", "15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "There are 2 days above 15 degrees in Seattle, WA\n2020-01-02: 20.0\n2020-01-03: 30.0\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestTopCommand(t *testing.T) {
	out, err := execute(t, topCmd(testApp(t)), "98101", "-n", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hottest days in Seattle, WA from 2020-01-01 to 2020-01-03\n2020-01-03: 30.0\n2020-01-02: 20.0\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestCommandUnknownZip(t *testing.T) {
	if _, err := execute(t, averageCmd(testApp(t)), "00000"); err == nil {
		t.Fatal("expected error for unknown zip code")
	}
}

func TestRootHelpWithInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	for _, args := range [][]string{{"--help"}, {"average", "--help"}} {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(args)

		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: expected help without error, got %v", args, err)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Fatalf("%v: expected usage text, got:\n%s", args, out.String())
		}
	}
}

func TestCommandReportsInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"average", "98101"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}
