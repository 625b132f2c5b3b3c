// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/knowledge-engine/internal/httputil"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testFetcher() *Fetcher {
	return NewFetcher(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "knowledge-engine-test/0.1",
		},
		MaxRetries: 2,
		RateLimit:  1000,
	})
}

func TestFetchPageAppendsFullView(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`<html><head><meta name="DC.title" content="T"></head></html>`))
	}))
	defer ts.Close()

	doc, err := testFetcher().FetchPage(context.Background(), ts.URL+"/handle/net/1")
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "show=full" {
		t.Errorf("query = %q, want show=full", gotQuery)
	}
	if title, _ := doc.Find("meta").Attr("content"); title != "T" {
		t.Errorf("parsed title = %q", title)
	}
}

func TestFetchPageNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := testFetcher().FetchPage(context.Background(), ts.URL+"/handle/net/1")
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}

func TestDownloadFile(t *testing.T) {
	payload := []byte("%PDF-1.4 test payload")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/octet-stream" {
			t.Errorf("Accept = %q", got)
		}
		w.Write(payload)
	}))
	defer ts.Close()

	data, err := testFetcher().DownloadFile(context.Background(), ts.URL+"/bitstream/handle/net/1/f.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("payload = %q, want %q", data, payload)
	}
}

func TestDownloadFileFailureIsHard(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := testFetcher().DownloadFile(context.Background(), ts.URL+"/bitstream/x")
	if err == nil {
		t.Fatal("expected error for non-success download status")
	}
}

func TestDownloadFileRetriesTransient(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	data, err := testFetcher().DownloadFile(context.Background(), ts.URL+"/bitstream/x")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ok" {
		t.Errorf("payload = %q", data)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFetcherDefaults(t *testing.T) {
	f := NewFetcher(types.FetchConfig{})
	if f.client.Timeout == 0 {
		t.Error("expected a default timeout")
	}
	if f.limiter == nil {
		t.Error("expected a rate limiter")
	}
}
