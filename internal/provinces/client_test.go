package provinces

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/p/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/p/":
			io.WriteString(w, `[{"name":"Thành phố Hà Nội","code":1},{"name":"Thành phố Hồ Chí Minh","code":79}]`)
		case "/api/p/79":
			if r.URL.Query().Get("depth") != "2" {
				t.Errorf("Expected depth=2, got %q", r.URL.RawQuery)
			}
			io.WriteString(w, `{"name":"Thành phố Hồ Chí Minh","code":79,"districts":[{"name":"Quận 1","code":760},{"name":"Quận 3","code":770}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/d/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"Quận 1","code":"760","wards":[{"name":"Phường Bến Nghé","code":26740}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", 5*time.Second, nil)
}

func TestCascade(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	provinces, err := c.Provinces(ctx)
	if err != nil {
		t.Fatalf("Provinces: %v", err)
	}
	if len(provinces) != 2 || provinces[1].Code != "79" {
		t.Fatalf("Unexpected provinces: %+v", provinces)
	}

	districts, err := c.Districts(ctx, provinces[1].Code)
	if err != nil {
		t.Fatalf("Districts: %v", err)
	}
	if len(districts) != 2 || districts[0].Name != "Quận 1" {
		t.Fatalf("Unexpected districts: %+v", districts)
	}

	wards, err := c.Wards(ctx, districts[0].Code)
	if err != nil {
		t.Fatalf("Wards: %v", err)
	}
	if len(wards) != 1 || wards[0].Code != "26740" {
		t.Fatalf("Unexpected wards: %+v", wards)
	}
}

func TestErrorStatus(t *testing.T) {
	c := newTestServer(t)
	if _, err := c.Districts(context.Background(), "999"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable for unknown province, got %v", err)
	}
}

func TestMatch(t *testing.T) {
	districts := []District{{Name: "Quận 1"}, {Name: "Quận 3"}, {Name: "Huyện Nhà Bè"}}

	if got := Match(districts, "quận"); len(got) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(got))
	}
	if got := Match(districts, ""); len(got) != 3 {
		t.Errorf("Expected all items for empty query, got %d", len(got))
	}
}
