// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestRegister(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewVoterHandler(st, testutil.GetTestConfig())

	testutil.CreateTestVoter(t, st, "existing")

	tests := []struct {
		name            string
		body            string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "new voter",
			body:            `{"id": "v1", "name": "Ada", "age": 36}`,
			expectedStatus:  http.StatusOK,
			expectedMessage: models.MsgVoterCreated,
		},
		{
			name:            "existing voter",
			body:            `{"id": "existing", "name": "Someone else"}`,
			expectedStatus:  http.StatusForbidden,
			expectedMessage: models.MsgVoterExists,
		},
		{
			name:            "empty body",
			body:            ``,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: models.MsgNoVoterInfo,
		},
		{
			name:            "empty object",
			body:            `{}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: models.MsgNoVoterInfo,
		},
		{
			name:            "invalid JSON",
			body:            `{"id": `,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: models.MsgNoVoterInfo,
		},
		{
			name:           "missing id",
			body:           `{"name": "Ada"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-string id",
			body:           `{"id": 42}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedMessage == "" {
				return
			}

			if tt.expectedStatus == http.StatusOK {
				var resp models.MessageResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tt.expectedMessage {
					t.Errorf("Expected message %q, got %q", tt.expectedMessage, resp.Message)
				}
				return
			}

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tt.expectedMessage {
				t.Errorf("Expected message %q, got %q", tt.expectedMessage, resp.Message)
			}
		})
	}
}

func TestRegister_StoresWholeDocument(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewVoterHandler(st, testutil.GetTestConfig())

	body := `{"id": "v1", "name": "Ada", "address": {"city": "Accra"}}`
	w := httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))
	testutil.AssertStatus(t, w, http.StatusOK)

	doc, err := st.Get(context.Background(), store.Voters, "v1")
	if err != nil {
		t.Fatalf("Failed to read voter: %v", err)
	}
	if doc["name"] != "Ada" {
		t.Errorf("Expected name Ada, got %v", doc["name"])
	}
	address, ok := doc["address"].(map[string]any)
	if !ok || address["city"] != "Accra" {
		t.Errorf("Expected nested address to be stored, got %v", doc["address"])
	}
}

func TestRegister_Twice(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewVoterHandler(st, testutil.GetTestConfig())

	body := []byte(`{"id": "v1", "name": "Ada"}`)

	w := httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body)))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.Register(w, httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body)))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestDeregister(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewVoterHandler(st, testutil.GetTestConfig())

	testutil.CreateTestVoter(t, st, "v1")

	deregister := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/deregister/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Deregister(w, req)
		return w
	}

	w := deregister("v1")
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.MessageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != models.MsgVoterDeleted {
		t.Errorf("Expected message %q, got %q", models.MsgVoterDeleted, resp.Message)
	}

	w = deregister("v1")
	testutil.AssertStatus(t, w, http.StatusNotFound)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Message != models.MsgVoterMissing {
		t.Errorf("Expected message %q, got %q", models.MsgVoterMissing, errResp.Message)
	}

	// Retrieve after deregister
	req := httptest.NewRequest(http.MethodGet, "/retrieve/v1", nil)
	req.SetPathValue("id", "v1")
	w = httptest.NewRecorder()
	handler.Retrieve(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdate(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewVoterHandler(st, testutil.GetTestConfig())

	testutil.CreateTestVoter(t, st, "v1")

	tests := []struct {
		name            string
		voterID         string
		body            string
		expectedStatus  int
		expectedMessage string
		expectedData    map[string]any
	}{
		{
			name:           "merge fields",
			voterID:        "v1",
			body:           `{"name": "Grace", "email": "g@example.com"}`,
			expectedStatus: http.StatusOK,
			expectedData:   map[string]any{"name": "Grace", "email": "g@example.com"},
		},
		{
			name:           "empty object",
			voterID:        "v1",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			expectedData:   map[string]any{},
		},
		{
			name:            "unknown voter",
			voterID:         "ghost",
			body:            `{"name": "Nobody"}`,
			expectedStatus:  http.StatusOK,
			expectedMessage: models.MsgUserMissing,
		},
		{
			name:           "invalid JSON",
			voterID:        "v1",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/update/"+tt.voterID, strings.NewReader(tt.body))
			req.SetPathValue("id", tt.voterID)
			w := httptest.NewRecorder()

			handler.Update(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp struct {
				Message string         `json:"message"`
				Data    map[string]any `json:"data"`
			}
			testutil.AssertJSON(t, w, &resp)

			if resp.Message != tt.expectedMessage {
				t.Errorf("Expected message %q, got %q", tt.expectedMessage, resp.Message)
			}
			if tt.expectedData == nil {
				return
			}
			if len(resp.Data) != len(tt.expectedData) {
				t.Errorf("Expected data %v, got %v", tt.expectedData, resp.Data)
			}
			for k, v := range tt.expectedData {
				if resp.Data[k] != v {
					t.Errorf("Expected data[%s] = %v, got %v", k, v, resp.Data[k])
				}
			}
		})
	}

	// Stored document keeps untouched fields
	doc, err := st.Get(context.Background(), store.Voters, "v1")
	if err != nil {
		t.Fatalf("Failed to read voter: %v", err)
	}
	if doc["id"] != "v1" || doc["name"] != "Grace" || doc["email"] != "g@example.com" {
		t.Errorf("Unexpected stored voter: %v", doc)
	}

	if _, err := st.Get(context.Background(), store.Voters, "ghost"); err != store.ErrNotFound {
		t.Errorf("Update must not create a voter, got err %v", err)
	}
}

func TestRetrieve(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewVoterHandler(st, testutil.GetTestConfig())

	testutil.CreateTestVoter(t, st, "v1")

	tests := []struct {
		name           string
		voterID        string
		expectedStatus int
	}{
		{"existing voter", "v1", http.StatusOK},
		{"unknown voter", "ghost", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/retrieve/"+tt.voterID, nil)
			req.SetPathValue("id", tt.voterID)
			w := httptest.NewRecorder()

			handler.Retrieve(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusNotFound {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != models.MsgUserMissing {
					t.Errorf("Expected message %q, got %q", models.MsgUserMissing, resp.Message)
				}
				return
			}

			var resp struct {
				Data map[string]any `json:"data"`
			}
			testutil.AssertJSON(t, w, &resp)
			if resp.Data["id"] != tt.voterID {
				t.Errorf("Expected voter %s, got %v", tt.voterID, resp.Data)
			}
			if resp.Data["name"] != "Voter "+tt.voterID {
				t.Errorf("Expected stored name, got %v", resp.Data["name"])
			}
		})
	}
}
