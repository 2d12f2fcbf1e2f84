package annotate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_StrictShape(t *testing.T) {
	schema := GenerateSchema[openAIReading]()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	sort.Strings(required)
	assert.Equal(t, []string{"confidence", "emotions", "sentiment", "stress"}, required)

	props := schema["properties"].(map[string]interface{})
	emotions := props["emotions"].(map[string]interface{})
	items := emotions["items"].(map[string]interface{})
	assert.Equal(t, false, items["additionalProperties"])
}

func TestOpenAI_Annotate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		format := body["text"].(map[string]any)["format"].(map[string]any)
		assert.Equal(t, "json_schema", format["type"])
		assert.Equal(t, true, format["strict"])

		reading := `{"sentiment":-0.4,"stress":0.65,"emotions":[{"name":"Anger","score":0.3}],"confidence":0.8}`
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "resp_1",
			"object":     "response",
			"created_at": 0,
			"status":     "completed",
			"model":      "gpt-4o-mini",
			"output": []map[string]any{{
				"type":   "message",
				"id":     "msg_1",
				"status": "completed",
				"role":   "assistant",
				"content": []map[string]any{{
					"type":        "output_text",
					"text":        reading,
					"annotations": []any{},
				}},
			}},
		})
	}))
	defer srv.Close()

	client := openai.NewClient(
		option.WithAPIKey("test"),
		option.WithBaseURL(srv.URL+"/v1/"),
		option.WithMaxRetries(0),
	)
	a, err := NewOpenAI(&client, "").Annotate(context.Background(), "Frustrated, this is urgent")
	require.NoError(t, err)
	assert.InDelta(t, -0.4, a.Sentiment, 1e-9)
	assert.InDelta(t, 0.65, a.Stress, 1e-9)
	assert.Equal(t, 0.3, a.Emotions["anger"])
	assert.ElementsMatch(t, []string{"urgent", "frustrated"}, a.Indicators.Keywords)
}

func TestOpenAI_ServerErrorReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := openai.NewClient(
		option.WithAPIKey("test"),
		option.WithBaseURL(srv.URL+"/v1/"),
		option.WithMaxRetries(0),
	)
	_, err := NewOpenAI(&client, "gpt-4o-mini").Annotate(context.Background(), "hello")
	assert.Error(t, err)
}
