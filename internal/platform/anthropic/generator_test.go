package anthropic

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/pagination"
	"github.com/phrazzld/vizgen/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessages struct {
	msg    *anthropicsdk.Message
	err    error
	params anthropicsdk.MessageNewParams
}

func (f *fakeMessages) New(
	_ context.Context,
	body anthropicsdk.MessageNewParams,
	_ ...option.RequestOption,
) (*anthropicsdk.Message, error) {
	f.params = body
	return f.msg, f.err
}

type fakeModelList struct {
	pages    map[string]*pagination.Page[anthropicsdk.ModelInfo]
	err      error
	afterIDs []string
}

func (f *fakeModelList) List(
	_ context.Context,
	query anthropicsdk.ModelListParams,
	_ ...option.RequestOption,
) (*pagination.Page[anthropicsdk.ModelInfo], error) {
	f.afterIDs = append(f.afterIDs, query.AfterID.Value)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[query.AfterID.Value], nil
}

func messageFromJSON(t *testing.T, raw string) *anthropicsdk.Message {
	t.Helper()
	var m anthropicsdk.Message
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return &m
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("joins text blocks", func(t *testing.T) {
		t.Parallel()
		fake := &fakeMessages{msg: messageFromJSON(t,
			`{"id":"msg_1","type":"message","role":"assistant","stop_reason":"end_turn",
			  "content":[{"type":"text","text":"# Root\n"},{"type":"text","text":"## Leaf"}]}`)}
		g := newGenerator(slog.Default(), fake)

		text, err := g.Generate(context.Background(), "claude-test", "prompt", generation.Config{Temperature: 0.7})

		require.NoError(t, err)
		assert.Equal(t, "# Root\n## Leaf", text)
		assert.Equal(t, int64(defaultMaxTokens), fake.params.MaxTokens)
		assert.Equal(t, anthropicsdk.Model("claude-test"), fake.params.Model)
	})

	t.Run("explicit token limit", func(t *testing.T) {
		t.Parallel()
		fake := &fakeMessages{msg: messageFromJSON(t,
			`{"content":[{"type":"text","text":"ok"}],"stop_reason":"end_turn"}`)}
		g := newGenerator(slog.Default(), fake)

		_, err := g.Generate(context.Background(), "m", "p", generation.Config{MaxOutputTokens: 100})

		require.NoError(t, err)
		assert.Equal(t, int64(100), fake.params.MaxTokens)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		g := newGenerator(slog.Default(), &fakeMessages{msg: messageFromJSON(t, `{"content":[]}`)})

		_, err := g.Generate(context.Background(), "m", "p", generation.Config{})

		assert.ErrorIs(t, err, generation.ErrEmptyResponse)
	})

	t.Run("overloaded is transient", func(t *testing.T) {
		t.Parallel()
		apiErr := &anthropicsdk.Error{
			StatusCode: 529,
			Request:    httptest.NewRequest(http.MethodPost, "https://api.test/v1/messages", nil),
			Response:   &http.Response{StatusCode: 529},
		}
		g := newGenerator(slog.Default(), &fakeMessages{err: apiErr})

		_, err := g.Generate(context.Background(), "m", "p", generation.Config{})

		assert.ErrorIs(t, err, generation.ErrOverloaded)
		assert.True(t, generation.IsTransient(err))
	})
}

func TestGenerator_ListModels(t *testing.T) {
	t.Parallel()

	t.Run("follows pages", func(t *testing.T) {
		t.Parallel()
		models := &fakeModelList{pages: map[string]*pagination.Page[anthropicsdk.ModelInfo]{
			"": {
				Data:    []anthropicsdk.ModelInfo{{ID: "claude-sonnet-4-5"}},
				HasMore: true,
				LastID:  "claude-sonnet-4-5",
			},
			"claude-sonnet-4-5": {
				Data: []anthropicsdk.ModelInfo{{ID: "claude-3-5-haiku-latest"}},
			},
		}}
		g := newGenerator(slog.Default(), &fakeMessages{})
		g.models = models

		ids, err := g.ListModels(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"claude-sonnet-4-5", "claude-3-5-haiku-latest"}, ids)
		assert.Equal(t, []string{"", "claude-sonnet-4-5"}, models.afterIDs)
	})

	t.Run("api error is classified", func(t *testing.T) {
		t.Parallel()
		g := newGenerator(slog.Default(), &fakeMessages{})
		g.models = &fakeModelList{err: &anthropicsdk.Error{
			StatusCode: http.StatusTooManyRequests,
			Request:    httptest.NewRequest(http.MethodGet, "https://api.test/v1/models", nil),
			Response:   &http.Response{StatusCode: http.StatusTooManyRequests},
		}}

		_, err := g.ListModels(context.Background())

		assert.ErrorIs(t, err, generation.ErrRateLimited)
	})
}
