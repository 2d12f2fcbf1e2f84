package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/alexanderramin/cinder/internal/llm"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

const openAIInstructions = `You rate the emotional tone of workplace text such as emails and
journal entries. Report overall sentiment, perceived stress, the strength of
each emotion you detect, and how confident you are.`

// openAIReading is the strict structured-output shape. Emotions are a list
// because strict schemas cannot describe free-form maps.
type openAIReading struct {
	Sentiment  float64        `json:"sentiment" jsonschema_description:"Overall tone from -1 (very negative) to 1 (very positive)"`
	Stress     float64        `json:"stress" jsonschema_description:"Perceived stress from 0 (relaxed) to 1 (extreme)"`
	Emotions   []emotionScore `json:"emotions" jsonschema_description:"Detected emotions such as joy, sadness, anger or fear"`
	Confidence float64        `json:"confidence" jsonschema_description:"Confidence in this reading from 0 to 1"`
}

type emotionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score" jsonschema_description:"Strength from 0 to 1"`
}

var readingSchema = GenerateSchema[openAIReading]()

// OpenAI annotates text with the Responses API using a strict JSON schema.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(client *openai.Client, model string) *OpenAI {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAI{client: client, model: model}
}

func (o *OpenAI) Annotate(ctx context.Context, text string) (domain.Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return domain.NeutralAnnotation(text), nil
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(400),
		Instructions:    openai.String(openAIInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "TextAnnotation",
					Schema:      readingSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Sentiment and stress reading"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("openai annotate: %w", err)
	}

	reading, err := llm.DecodeJSON[openAIReading](resp.OutputText(), nil)
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("openai annotate: %w", err)
	}

	emotions := make(map[string]float64, len(reading.Emotions))
	for _, e := range reading.Emotions {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name != "" {
			emotions[name] = e.Score
		}
	}
	return domain.Annotation{
		Sentiment:  reading.Sentiment,
		Stress:     reading.Stress,
		Indicators: ScanStressKeywords(text),
		Emotions:   emotions,
		Confidence: reading.Confidence,
	}.Clamp(), nil
}

// GenerateSchema reflects T into a JSON schema accepted by strict mode.
func GenerateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	schemaObj, err := schemaToMap(schema)
	if err != nil {
		panic(err)
	}
	ensureStrictCompliance(schemaObj)
	return schemaObj
}

func schemaToMap(schema *jsonschema.Schema) (map[string]interface{}, error) {
	b, err := schema.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// ensureStrictCompliance marks every object closed and every property required.
func ensureStrictCompliance(schema map[string]interface{}) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false

		if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
			var requiredFields []string
			for propName := range properties {
				requiredFields = append(requiredFields, propName)
			}
			if len(requiredFields) > 0 {
				schema[requiredKey] = requiredFields
			}
		}
	}

	if properties, ok := schema[propertiesKey].(map[string]interface{}); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]interface{}); ok {
				ensureStrictCompliance(propMap)
			}
		}
	}

	if items, ok := schema[itemsKey].(map[string]interface{}); ok {
		ensureStrictCompliance(items)
	}
}
