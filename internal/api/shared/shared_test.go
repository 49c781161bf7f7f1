package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/vizgen/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTraceID(t *testing.T) {
	t.Parallel()

	ctx := shared.SetTraceID(context.Background(), "")
	generated := shared.GetTraceID(ctx)
	assert.Len(t, generated, shared.TraceIDLength*2)

	ctx = shared.SetTraceID(context.Background(), "req-1")
	assert.Equal(t, "req-1", shared.GetTraceID(ctx))

	assert.Empty(t, shared.GetTraceID(context.Background()))
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "valid", body: `{"name": "go"}`, want: "go"},
		{name: "unknown fields ignored", body: `{"name": "go", "extra": 1}`, want: "go"},
		{name: "empty", body: ``, wantErr: shared.ErrEmptyBody},
		{name: "trailing data", body: `{"name": "go"} {"name": "again"}`},
		{name: "syntax error", body: `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got payload
			err := shared.DecodeJSON(req, &got)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.want == "":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Name)
			}
		})
	}
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/visualize/x", nil)
	req = req.WithContext(shared.SetTraceID(req.Context(), "trace-abc"))
	rec := httptest.NewRecorder()

	shared.RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"Something went wrong", errors.New("password=hunter2 at /etc/secret"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, shared.ErrorResponse{Error: "Something went wrong", TraceID: "trace-abc"}, body)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}
