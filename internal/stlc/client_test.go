package stlc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate_SendsRequest(t *testing.T) {
	var gotBody map[string]interface{}
	var gotMethod, gotPath, gotContentType, gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get(RequestIDHeader)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"test_case_generation":{"test_cases":"TC1"}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	bundle, err := client.Generate(context.Background(), NewSubmissionRequest(InputForm{
		Requirements: "Login",
		UserStories:  "As a user",
	}))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, ChatPath, gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)

	assert.Equal(t, "Login", gotBody["requirements"])
	assert.Equal(t, "As a user", gotBody["user_stories"])
	for _, key := range []string{"code_diffs", "previous_test_results"} {
		value, present := gotBody[key]
		assert.True(t, present, "%s must be sent explicitly", key)
		assert.Nil(t, value, "%s must be null", key)
	}

	sections := DeriveSections(bundle)
	require.Len(t, sections, 1)
	assert.Equal(t, "TC1", sections[0].Content)
}

func TestSubmissionRequest_EmptyOptionalEncodesNull(t *testing.T) {
	body, err := json.Marshal(NewSubmissionRequest(InputForm{Requirements: "R", PreviousTestResults: ""}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"requirements":"R","user_stories":null,"code_diffs":null,"previous_test_results":null}`, string(body))
}

func TestClient_Generate_Responses(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantErr      bool
		wantReason   string
		wantSections int
	}{
		{name: "detail from service", status: http.StatusInternalServerError, body: `{"detail": "model timeout"}`, wantErr: true, wantReason: "model timeout"},
		{name: "unparsable error body", status: http.StatusInternalServerError, body: `<html>oops</html>`, wantErr: true, wantReason: DefaultFailureReason},
		{name: "error without detail", status: http.StatusBadGateway, body: `{"error": "x"}`, wantErr: true, wantReason: DefaultFailureReason},
		{name: "empty detail", status: http.StatusBadRequest, body: `{"detail": ""}`, wantErr: true, wantReason: DefaultFailureReason},
		{name: "validation detail list", status: http.StatusUnprocessableEntity, body: `{"detail": [{"msg": "field required"}]}`, wantErr: true, wantReason: DefaultFailureReason},
		{name: "missing response", status: http.StatusOK, body: `{"other": 1}`, wantSections: 0},
		{name: "null response", status: http.StatusOK, body: `{"response": null}`, wantSections: 0},
		{name: "two sections", status: http.StatusOK, body: `{"response": {"test_case_generation": {"test_cases": "A"}, "test_data_generation": {"test_data": "B"}}}`, wantSections: 2},
		{name: "non JSON success body", status: http.StatusOK, body: `not json`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			bundle, err := NewClient(srv.URL).Generate(context.Background(), SubmissionRequest{Requirements: "R"})
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantReason != "" {
					var rejected *ServiceRejectedError
					require.ErrorAs(t, err, &rejected)
					assert.Equal(t, tt.status, rejected.StatusCode)
					assert.Equal(t, tt.wantReason, ReasonOf(err))
				} else {
					var malformed *MalformedResponseError
					assert.ErrorAs(t, err, &malformed)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, DeriveSections(bundle), tt.wantSections)
		})
	}
}

func TestClient_Generate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Generate(context.Background(), SubmissionRequest{Requirements: "R"})
	require.Error(t, err)

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, err.Error(), ReasonOf(err))
	assert.NotEmpty(t, ReasonOf(err))
}

func TestClient_Generate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).Generate(context.Background(), SubmissionRequest{Requirements: "R"})

	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}
