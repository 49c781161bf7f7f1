package visualization

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/vizgen/internal/prompt"
	"github.com/stretchr/testify/require"
)

const oauthFlowchartReply = "Here is the flow:\n```json\n" + `{
  "direction": "LR",
  "nodes": [
    {"id": "client", "label": "Client app requests authorization", "type": "start"},
    {"id": "consent", "label": "User grants consent?", "type": "decision"},
    {"id": "code", "label": "Authorization server issues code", "type": "process"},
    {"id": "exchange", "label": "Exchange code for access token", "type": "process"},
    {"id": "denied", "label": "Access denied", "type": "end"},
    {"id": "api", "label": "Call API with token", "shape": "end"}
  ],
  "edges": [
    {"from": "client", "to": "consent"},
    {"from": "consent", "to": "code", "label": "yes"},
    {"from": "consent", "to": "denied", "label": "no"},
    {"from": "code", "to": "exchange"},
    {"from": "exchange", "to": "api"}
  ]
}` + "\n```"

// deepMindmapReply has four levels below and including the root.
const deepMindmapReply = "```json\n" + `{
  "title": "Photosynthesis",
  "children": [
    {"title": "Light reactions", "children": [
      {"title": "Photosystem II", "children": [
        {"title": "Water splitting", "children": []}
      ]}
    ]},
    {"title": "Calvin cycle", "children": [
      {"title": "Carbon fixation", "children": []}
    ]}
  ]
}` + "\n```"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testComposer(t *testing.T) *prompt.Composer {
	t.Helper()
	composer, err := prompt.NewComposer(nil)
	require.NoError(t, err)
	return composer
}
