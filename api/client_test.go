package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amonks/contestsim/session"
)

func TestCheckStatusDecodesBareTimestamps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"two-sum": 1772366700, "lru-cache": {"solved_at": 1772367000, "fails": 2}}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, time.Second)

	resp, err := client.CheckStatus(context.Background(), session.StatusRequest{Username: "tourist"})
	if err != nil {
		t.Fatalf("check status: %v", err)
	}
	if got := resp["two-sum"]; !got.At.Equal(time.Unix(1772366700, 0)) || got.Fails != 0 {
		t.Fatalf("unexpected bare entry %+v", got)
	}
	if got := resp["lru-cache"]; !got.At.Equal(time.Unix(1772367000, 0)) || got.Fails != 2 {
		t.Fatalf("unexpected object entry %+v", got)
	}
}

func TestClientErrorDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "error key", body: `{"error":"bad cookie"}`, want: "bad cookie"},
		{name: "detail key", body: `{"detail":"Failed to fetch problems"}`, want: "Failed to fetch problems"},
		{name: "no body", body: ``, want: "500 Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)
			client := NewClient(server.URL, time.Second)

			_, err := client.CreateContest(context.Background(), session.CreateRequest{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateContestSendsWireFields(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-contest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		_, _ = w.Write([]byte(`{"contest":[],"server_time":0}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL+"/", time.Second)

	resp, err := client.CreateContest(context.Background(), session.CreateRequest{Credential: "c", Mode: "solved"})
	if err != nil {
		t.Fatalf("create contest: %v", err)
	}
	if !resp.ServerTime.IsZero() {
		t.Fatalf("expected zero server time, got %s", resp.ServerTime)
	}
	for _, want := range []string{`"session_cookie":"c"`, `"selected_tags":[]`, `"mode":"solved"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestNewClientAddsScheme(t *testing.T) {
	client := NewClient("127.0.0.1:8089/", time.Second)

	if client.BaseURL() != "http://127.0.0.1:8089" {
		t.Fatalf("unexpected base URL %q", client.BaseURL())
	}
}

func TestResolveAddr(t *testing.T) {
	cases := []struct {
		addr     string
		fallback string
		want     string
		wantErr  bool
	}{
		{addr: "", fallback: "", want: "127.0.0.1:8089"},
		{addr: "", fallback: "0.0.0.0:9000", want: "0.0.0.0:9000"},
		{addr: "9001", want: "127.0.0.1:9001"},
		{addr: " localhost:7000 ", want: "localhost:7000"},
		{addr: "abc", wantErr: true},
		{addr: "70000", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ResolveAddr(tc.addr, tc.fallback)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ResolveAddr(%q): expected error", tc.addr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ResolveAddr(%q): %v", tc.addr, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveAddr(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
