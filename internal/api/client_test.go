package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finboard/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestTransactionsRequestAndDecode(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/daterange" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body: %v", err)
		}
		_, _ = w.Write([]byte(`[
			{"Classification":"Grocery","Amount":"1,250.00","Receiver":"Shop","Date":"2025-06-12 18:30:00"},
			{"Classification":"Fuel","Amount":"500","Receiver":"Station","Date":"2025-06-13 09:00:00"}
		]`))
	})

	txs, err := c.Transactions(context.Background(), core.NewDay(2025, time.June, 1), core.NewDay(2025, time.June, 30))
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if gotBody["startDate"] != "2025-06-01" || gotBody["endDate"] != "2025-06-30" {
		t.Fatalf("request body = %v", gotBody)
	}
	if len(txs) != 2 || txs[0].Classification != "Grocery" {
		t.Fatalf("decoded = %+v", txs)
	}
	if txs[0].Date.Format("2006-01-02 15:04:05") != "2025-06-12 18:30:00" {
		t.Fatalf("date decoded as %v", txs[0].Date)
	}
}

func TestNonSuccessSurfacesBodyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("duplicate transaction"))
	})

	err := c.AddTransaction(context.Background(), core.Transaction{
		Amount:   "100",
		Receiver: "Shop",
		Date:     core.NewTimestamp(time.Now()),
	})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Body != "duplicate transaction" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestAddTransactionStripsGroupingSeparators(t *testing.T) {
	var got addTransactionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = w.Write([]byte(`{}`))
	})

	tx := core.Transaction{
		Classification: "Grocery",
		Amount:         "1,250.00",
		Receiver:       "  Shop  ",
		Date:           core.NewTimestamp(time.Date(2025, 6, 12, 18, 30, 0, 0, time.UTC)),
	}
	if err := c.AddTransaction(context.Background(), tx); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if got.Amount != "1250.00" || got.Receiver != "Shop" || got.Date != "2025-06-12 18:30:00" {
		t.Fatalf("request = %+v", got)
	}
}

func TestNormalizePayloadNulls(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &raw)
		_, _ = w.Write([]byte(`{"updated_transaction":{"Classification":"Grocery","Amount":"70","Receiver":"Shop","Date":"2025-06-12 18:30:00","OriginalAmount":"100","PaidToMe":"30"}}`))
	})

	tx := core.Transaction{
		Classification: "Grocery",
		Amount:         "100",
		Receiver:       "Shop",
		Date:           core.NewTimestamp(time.Date(2025, 6, 12, 18, 30, 0, 0, time.UTC)),
	}

	// With a payer: paidToMe and payers are populated.
	n := core.BuildNormalization(tx, []core.Payer{{Name: "A", Amount: "30"}})
	updated, err := c.Normalize(context.Background(), n)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(raw["paidToMe"]) != `"30"` {
		t.Fatalf("paidToMe = %s", raw["paidToMe"])
	}
	if string(raw["payers"]) == "null" {
		t.Fatalf("payers should not be null: %s", raw["payers"])
	}
	if updated == nil || updated.Amount != "70" {
		t.Fatalf("updated = %+v", updated)
	}

	// Without payers: both fields travel as null.
	n = core.BuildNormalization(tx, nil)
	if _, err := c.Normalize(context.Background(), n); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(raw["paidToMe"]) != "null" || string(raw["payers"]) != "null" {
		t.Fatalf("want nulls, got paidToMe=%s payers=%s", raw["paidToMe"], raw["payers"])
	}
}

func TestTokenStatusesSingleAndArray(t *testing.T) {
	record := `{"user_id":"u1","authenticated":true,"auth_timestamp":"2025-06-12T10:00:00","expires_at":"2025-06-13T10:00:00","hours_remaining":3.5,"needs_reauth":true,"message":"expiring"}`

	single := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(record))
	})
	got, err := single.TokenStatuses(context.Background())
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "u1" || !got[0].NeedsReauth {
		t.Fatalf("single decoded = %+v", got)
	}

	array := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[" + record + "," + record + "]"))
	})
	got, err = array.TokenStatuses(context.Background())
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("array decoded %d records", len(got))
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
