// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"strings"
	"testing"
)

func TestSearchMatchesAllTerms(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s,
		sample("both", "Neural Networks in Practice", 2020, "Ivanov, A."),
		sample("only-networks", "Computer Networks", 2019, "Petrov, B."),
		sample("neither", "Organic Chemistry", 2018, "Sidorov, C."),
	)

	got, err := s.Search(context.Background(), "neural networks", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "both" {
		t.Errorf("results = %v, want only the record matching every term", ids(got))
	}
}

func TestSearchPrefixMatch(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, sample("k1", "Neural Networks in Practice", 2020, "Ivanov, A."))

	got, err := s.Search(context.Background(), "neur", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "k1" {
		t.Errorf("results = %v, want the prefix to match", ids(got))
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, sample("k1", "NEURAL NETWORKS", 2020, "Ivanov, A."))

	got, err := s.Search(context.Background(), "Neural", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("results = %v, want case-folded match", ids(got))
	}
}

func TestSearchFuzzyWithinDistanceOne(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, sample("k1", "Network Theory", 2020, "Ivanov, A."))

	// "networks" is not a prefix of anything indexed, but "network" is
	// one edit away.
	got, err := s.Search(context.Background(), "networks", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "k1" {
		t.Errorf("results = %v, want the distance-1 variant to match", ids(got))
	}
}

func TestSearchNoFuzzyBeyondDistanceOne(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, sample("k1", "Network Theory", 2020, "Ivanov, A."))

	got, err := s.Search(context.Background(), "networking", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("results = %v, want no match two or more edits away", ids(got))
	}
}

func TestSearchCoversAuthorNames(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s,
		sample("k1", "On Things", 2020, "Ivanov, A."),
		sample("k2", "Other Work", 2019, "Petrov, B."),
	)

	got, err := s.Search(context.Background(), "ivanov", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "k1" {
		t.Errorf("results = %v, want author names searchable", ids(got))
	}
}

func TestSearchCoversSummary(t *testing.T) {
	s := testStore(t)
	k := sample("k1", "On Things", 2020, "Ivanov, A.")
	k.Summary = "An exploration of quantum entanglement."
	mustUpsert(t, s, k)

	got, err := s.Search(context.Background(), "entanglement", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("results = %v, want summaries searchable", ids(got))
	}
}

func TestSearchVerbatimOutranksFuzzy(t *testing.T) {
	s := testStore(t)
	verbatim := sample("verbatim", "Neural Networks in Practice", 2020, "Ivanov, A.")
	fuzzy := sample("fuzzy", "Network Theory", 2019, "Petrov, B.")
	fuzzy.Summary = strings.Repeat("a lengthy discussion of neural models and graphs ", 20)
	mustUpsert(t, s, verbatim, fuzzy)

	got, err := s.Search(context.Background(), "neural networks", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 || got[0].ID != "verbatim" {
		t.Errorf("ranking = %v, want the verbatim match first", ids(got))
	}
}

func TestSearchEmptyQueryFallsBackToListing(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s,
		sample("a", "Newest", 2021, "Ivanov, A."),
		sample("b", "Oldest", 2015, "Petrov, B."),
	)

	for _, query := range []string{"", "   "} {
		got, err := s.Search(context.Background(), query, 0, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].ID != "a" {
			t.Errorf("query %q: results = %v, want the year-ordered listing", query, ids(got))
		}
	}
}

func TestSearchPagination(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s,
		sample("a", "Graph Theory One", 2021),
		sample("b", "Graph Theory Two", 2020),
		sample("c", "Graph Theory Three", 2019),
	)

	page0, err := s.Search(context.Background(), "graph", 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	page1, err := s.Search(context.Background(), "graph", 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(page0) != 2 || len(page1) != 1 {
		t.Fatalf("page sizes = %d, %d, want 2, 1", len(page0), len(page1))
	}
	for _, first := range page0 {
		if first.ID == page1[0].ID {
			t.Errorf("id %s appears on both pages", first.ID)
		}
	}
}

func TestSearchIndexFollowsUpdates(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, sample("k1", "Original Topic", 2020, "Ivanov, A."))
	mustUpsert(t, s, sample("k1", "Revised Subject", 2020, "Ivanov, A."))

	stale, err := s.Search(context.Background(), "original", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Errorf("stale results = %v, want the old text unindexed", ids(stale))
	}

	fresh, err := s.Search(context.Background(), "revised", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 1 {
		t.Errorf("fresh results = %v, want the new text indexed", ids(fresh))
	}
}

func TestBuildMatchExpression(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, sample("k1", "Network Theory", 2020))

	match, err := s.buildMatch(context.Background(), []string{"Networks", "theory"})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(match, `"networks" *`) {
		t.Errorf("match = %q, want a folded prefix alternative", match)
	}
	if !strings.Contains(match, `"network"`) {
		t.Errorf("match = %q, want the distance-1 vocabulary variant", match)
	}
	if !strings.Contains(match, ") AND (") {
		t.Errorf("match = %q, want term clauses joined with AND", match)
	}
}
