package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"solvo/models"

	"go.uber.org/zap"
)

func sampleSafaris() []models.Safari {
	return []models.Safari{
		{ID: 1, Title: "Great Migration Safari", Description: "Mara river crossings", Destination: 1, Duration: 7, Price: 2400, Included: "Game Drives, Photography, Balloon Safari"},
		{ID: 2, Title: "Amboseli Elephants", Description: "Elephants and Kilimanjaro views", Destination: 2, Duration: 4, Price: 1200, Included: "Game Drives, Bird Watching"},
		{ID: 3, Title: "Sandy White Beach Experience", Description: "Coast relaxation", Destination: 3, Duration: 5, Price: 900, Included: "Cultural Visits"},
	}
}

func ids(safaris []models.Safari) []int {
	out := make([]int, len(safaris))
	for i, s := range safaris {
		out[i] = s.ID
	}
	return out
}

func TestFilterSafarisBySearch(t *testing.T) {
	got := FilterSafaris(sampleSafaris(), Filter{Search: "elephants"}, nil)
	if !reflect.DeepEqual(ids(got), []int{2}) {
		t.Errorf("search hits = %v", ids(got))
	}
	// Description text matches too.
	got = FilterSafaris(sampleSafaris(), Filter{Search: "mara"}, nil)
	if !reflect.DeepEqual(ids(got), []int{1}) {
		t.Errorf("description search hits = %v", ids(got))
	}
}

func TestFilterSafarisByRanges(t *testing.T) {
	f := Filter{MinDuration: 4, MaxDuration: 6, MinPrice: 1000, MaxPrice: 3000}
	got := FilterSafaris(sampleSafaris(), f, nil)
	if !reflect.DeepEqual(ids(got), []int{2}) {
		t.Errorf("range hits = %v", ids(got))
	}
}

func TestFilterSafarisByActivities(t *testing.T) {
	got := FilterSafaris(sampleSafaris(), Filter{Activities: []string{"Game Drives", "Photography"}}, nil)
	if !reflect.DeepEqual(ids(got), []int{1}) {
		t.Errorf("activity hits = %v", ids(got))
	}
	// No activities selected means no constraint.
	got = FilterSafaris(sampleSafaris(), Filter{}, nil)
	if len(got) != 3 {
		t.Errorf("unfiltered = %v", ids(got))
	}
}

func TestFilterSafarisByLocation(t *testing.T) {
	locations := map[int]string{1: "Maasai Mara", 2: "Amboseli", 3: "Diani"}
	got := FilterSafaris(sampleSafaris(), Filter{Location: "Amboseli"}, locations)
	if !reflect.DeepEqual(ids(got), []int{2}) {
		t.Errorf("location hits = %v", ids(got))
	}
}

func TestSortSafaris(t *testing.T) {
	cases := []struct {
		sortBy string
		want   []int
	}{
		{SortPriceAsc, []int{3, 2, 1}},
		{SortPriceDesc, []int{1, 2, 3}},
		{SortDurationAsc, []int{2, 3, 1}},
		{SortDurationDesc, []int{1, 3, 2}},
		{"bogus", []int{1, 2, 3}},
	}
	for _, c := range cases {
		safaris := sampleSafaris()
		SortSafaris(safaris, c.sortBy)
		if !reflect.DeepEqual(ids(safaris), c.want) {
			t.Errorf("sort %q = %v, want %v", c.sortBy, ids(safaris), c.want)
		}
	}
}

func TestConverterSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/symbols" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"symbols":{"USD":{},"KES":{},"EUR":{}}}`))
	}))
	defer srv.Close()

	c := NewConverter(srv.URL, time.Second, zap.NewNop())
	got := c.Symbols(context.Background())
	if !reflect.DeepEqual(got, []string{"EUR", "KES", "USD"}) {
		t.Errorf("symbols = %v", got)
	}
}

func TestConverterSymbolsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewConverter(srv.URL, time.Second, zap.NewNop())
	got := c.Symbols(context.Background())
	if !reflect.DeepEqual(got, fallbackCurrencies) {
		t.Errorf("fallback symbols = %v", got)
	}
}

func TestConverterConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from") != "USD" || q.Get("to") != "KES" || q.Get("amount") != "100" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"result": 12950.5}`))
	}))
	defer srv.Close()

	c := NewConverter(srv.URL, time.Second, zap.NewNop())
	got, err := c.Convert(context.Background(), "USD", "KES", 100)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 12950.5 {
		t.Errorf("result = %v", got)
	}
}

func TestConverterConvertMissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	c := NewConverter(srv.URL, time.Second, zap.NewNop())
	if _, err := c.Convert(context.Background(), "USD", "XXX", 1); err == nil {
		t.Errorf("expected error for missing result")
	}
}
