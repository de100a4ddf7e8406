package extraction_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-leadform/pkg/extraction"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

func TestPayloadFromFormKeys(t *testing.T) {
	raw, err := json.Marshal(extraction.PayloadFromForm(testsupport.ValidForm()))
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, map[string]string{
		"empresa":           "Acme",
		"nome":              "Ada Lovelace",
		"email":             "ada@acme.test",
		"telefone":          "+55 11 99999-9999",
		"cargo":             "CTO",
		"setor":             "Tecnologia",
		"descricao_empresa": "Fabricante de peças industriais.",
		"dores":             "Reduzir custos",
		"areas":             "Vendas",
	}, decoded)
}

func TestExtractSuccess(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "leadform-test", r.Header.Get("User-Agent"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"**hi**","extra":1}`))
	}))
	defer server.Close()

	client := extraction.NewClient(
		extraction.WithEndpoint(server.URL),
		extraction.WithUserAgent("leadform-test"),
	)

	content, err := client.Extract(context.Background(), extraction.PayloadFromForm(testsupport.ValidForm()))
	require.NoError(t, err)
	assert.Equal(t, "**hi**", content)
	assert.Equal(t, "Acme", got["empresa"])
	assert.Len(t, got, 9)
}

func TestExtractStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := extraction.NewClient(extraction.WithEndpoint(server.URL))
	_, err := client.Extract(context.Background(), extraction.Payload{})
	require.Error(t, err)

	var statusErr *extraction.StatusError
	require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "boom")
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryExternal))
}

func TestExtractMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>oops</html>`,
		"missing":        `{"message":"ok"}`,
		"wrong type":     `{"content":5}`,
		"null content":   `{"content":null}`,
		"array response": `["content"]`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			client := extraction.NewClient(extraction.WithEndpoint(server.URL))
			_, err := client.Extract(context.Background(), extraction.Payload{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, extraction.ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestExtractTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := extraction.NewClient(extraction.WithEndpoint(endpoint))
	_, err := client.Extract(context.Background(), extraction.Payload{})
	require.Error(t, err)

	var statusErr *extraction.StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.False(t, errors.Is(err, extraction.ErrMalformedResponse))
}

func TestExtractSendsExactlyOneRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := extraction.NewClient(extraction.WithEndpoint(server.URL))
	_, err := client.Extract(context.Background(), extraction.Payload{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExtractContractRejectsIncompleteRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"content":"x"}`))
	}))
	defer server.Close()

	contract, err := extraction.DefaultContract(context.Background())
	require.NoError(t, err)

	client := extraction.NewClient(
		extraction.WithEndpoint(server.URL),
		extraction.WithContract(contract),
	)

	_, err = client.Extract(context.Background(), extraction.Payload{})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.Equal(t, int32(0), calls.Load())

	content, err := client.Extract(context.Background(), extraction.PayloadFromForm(testsupport.ValidForm()))
	require.NoError(t, err)
	assert.Equal(t, "x", content)
}

func TestExtractRecordsOutcome(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(`{"content":"ok"}`))
	}))
	defer server.Close()

	recorder := &recordingObserver{}
	client := extraction.NewClient(
		extraction.WithEndpoint(server.URL),
		extraction.WithRecorder(recorder),
	)

	_, _ = client.Extract(context.Background(), extraction.Payload{})
	status.Store(http.StatusServiceUnavailable)
	_, _ = client.Extract(context.Background(), extraction.Payload{})

	assert.Equal(t, []string{extraction.OutcomeSuccess, extraction.OutcomeStatus}, recorder.outcomes)
}

func TestNewClientDefaults(t *testing.T) {
	client := extraction.NewClient(extraction.WithEndpoint("  "))
	assert.Equal(t, extraction.DefaultEndpoint, client.Endpoint())
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveExtraction(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}
