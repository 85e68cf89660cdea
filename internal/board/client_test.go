package board

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karaage0703/pm-bot/internal/config"
)

const pageOne = `{"data":{"user":{"projectV2":{"title":"Tasks","items":{
"pageInfo":{"hasNextPage":true,"endCursor":"CUR1"},
"nodes":[
{"content":{"title":"[開発] ログイン機能実装","number":42,"state":"OPEN",
"body":"## 期限\n2023-12-01","url":"https://github.com/karaage0703/pm-bot/issues/42",
"labels":{"nodes":[{"name":"bug"}]},
"assignees":{"nodes":[{"login":"karaage0703","name":"Karaage"}]},
"repository":{"name":"pm-bot","owner":{"login":"karaage0703"}}},
"fieldValues":{"nodes":[
{"field":{"name":"終了日"},"date":"2024-01-15"},
{"field":{"name":"Status"},"name":"In Progress"},
{}
]}},
{"content":{},"fieldValues":{"nodes":[]}}
]}}}}}`

const pageTwo = `{"data":{"user":{"projectV2":{"title":"Tasks","items":{
"pageInfo":{"hasNextPage":false,"endCursor":""},
"nodes":[
{"content":{"title":"ドキュメント整備","number":7,"state":"CLOSED",
"body":"","url":"https://github.com/karaage0703/pm-bot/issues/7",
"labels":{"nodes":[]},
"assignees":{"nodes":[]},
"repository":{"name":"pm-bot","owner":{"login":"karaage0703"}}},
"fieldValues":{"nodes":[]}}
]}}}}}`

type recordedRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func newGraphQLServer(t *testing.T, pages []string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recordedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		requests = append(requests, req)
		if len(requests) > len(pages) {
			t.Errorf("Expected at most %d requests, got %d", len(pages), len(requests))
			http.Error(w, "too many requests", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, pages[len(requests)-1])
	}))
	return srv, &requests
}

func TestFetchItemsPaginates(t *testing.T) {
	srv, requests := newGraphQLServer(t, []string{pageOne, pageTwo})
	defer srv.Close()

	c := newTestClient(srv.URL, srv.Client(), "karaage0703", config.OwnerTypeUser, 3)
	items, err := c.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("FetchItems returned error: %v", err)
	}

	if len(*requests) != 2 {
		t.Fatalf("Expected 2 page requests, got %d", len(*requests))
	}
	if (*requests)[0].Variables["cursor"] != nil {
		t.Errorf("Expected nil cursor on first page, got %v", (*requests)[0].Variables["cursor"])
	}
	if got := (*requests)[1].Variables["cursor"]; got != "CUR1" {
		t.Errorf("Expected cursor CUR1 on second page, got %v", got)
	}
	if !strings.Contains((*requests)[0].Query, "user(login: $owner)") {
		t.Errorf("Expected user query, got %s", (*requests)[0].Query)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items across pages, got %d", len(items))
	}

	first := items[0]
	if first.Issue == nil {
		t.Fatal("Expected issue content on first item")
	}
	if first.Issue.Number != 42 {
		t.Errorf("Expected issue number 42, got %d", first.Issue.Number)
	}
	if first.Issue.Repository != "karaage0703/pm-bot" {
		t.Errorf("Expected repository karaage0703/pm-bot, got %q", first.Issue.Repository)
	}
	if len(first.Issue.Labels) != 1 || first.Issue.Labels[0] != "bug" {
		t.Errorf("Expected label bug, got %v", first.Issue.Labels)
	}
	if len(first.Issue.Assignees) != 1 || first.Issue.Assignees[0].Login != "karaage0703" {
		t.Errorf("Expected assignee karaage0703, got %v", first.Issue.Assignees)
	}

	if len(first.Fields) != 2 {
		t.Fatalf("Expected 2 decoded field values, got %v", first.Fields)
	}
	if first.Fields[0].Kind != FieldDate || first.Fields[0].Name != "終了日" || first.Fields[0].Date != "2024-01-15" {
		t.Errorf("Expected 終了日 date field, got %+v", first.Fields[0])
	}
	if first.Fields[1].Kind != FieldSingleSelect || first.Fields[1].Name != "Status" || first.Fields[1].Option != "In Progress" {
		t.Errorf("Expected Status single-select field, got %+v", first.Fields[1])
	}

	if items[1].Issue != nil {
		t.Error("Expected nil issue for item without issue content")
	}

	if items[2].Issue == nil || items[2].Issue.Number != 7 {
		t.Errorf("Expected issue 7 from second page, got %+v", items[2].Issue)
	}
	if items[2].Issue != nil && items[2].Issue.State != "CLOSED" {
		t.Errorf("Expected CLOSED state, got %q", items[2].Issue.State)
	}
}

func TestFetchItemsOrganizationQuery(t *testing.T) {
	page := strings.Replace(pageTwo, `"user"`, `"organization"`, 1)
	srv, requests := newGraphQLServer(t, []string{page})
	defer srv.Close()

	c := newTestClient(srv.URL, srv.Client(), "acme", config.OwnerTypeOrganization, 1)
	items, err := c.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("FetchItems returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if !strings.Contains((*requests)[0].Query, "organization(login: $owner)") {
		t.Errorf("Expected organization query, got %s", (*requests)[0].Query)
	}
}

func TestFetchItemsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, srv.Client(), "karaage0703", config.OwnerTypeUser, 3)
	if _, err := c.FetchItems(context.Background()); err == nil {
		t.Error("Expected error on server failure, got none")
	}
}

func TestResolveTokenPrefersConfigured(t *testing.T) {
	token, err := ResolveToken("ghp_configured")
	if err != nil {
		t.Fatalf("ResolveToken returned error: %v", err)
	}
	if token != "ghp_configured" {
		t.Errorf("Expected configured token, got %q", token)
	}
}
