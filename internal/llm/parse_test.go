package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradevisor/internal/models"
)

func TestDecodeReplyPlainJSON(t *testing.T) {
	var res models.SentimentResult
	err := decodeReply(`{"sentiment":"positive","confidence":0.85,"rationale":"strong momentum"}`, &res)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, res.Label)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)
}

func TestDecodeReplyFencedJSON(t *testing.T) {
	reply := "Here is the analysis:\n```json\n{\"sentiment\":\"negative\",\"confidence\":0.6,\"rationale\":\"sell-off\"}\n```\n"

	var res models.SentimentResult
	err := decodeReply(reply, &res)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, res.Label)
}

func TestDecodeReplyEmpty(t *testing.T) {
	var res models.SentimentResult
	assert.ErrorIs(t, decodeReply("", &res), ErrEmptyReply)
	assert.ErrorIs(t, decodeReply("   \n", &res), ErrEmptyReply)
}

func TestDecodeReplyNoJSON(t *testing.T) {
	var res models.SentimentResult
	assert.ErrorIs(t, decodeReply("I cannot answer that.", &res), ErrMalformedReply)
}

func TestDecodeReplyInvalidJSON(t *testing.T) {
	var res models.SentimentResult
	assert.ErrorIs(t, decodeReply(`{"sentiment": "positive",`+"\n", &res), ErrMalformedReply)
}

func TestDecodeReplyFailsValidation(t *testing.T) {
	var res models.SentimentResult
	err := decodeReply(`{"sentiment":"positive","confidence":1.5,"rationale":"x"}`, &res)
	assert.ErrorIs(t, err, ErrMalformedReply)

	err = decodeReply(`{"sentiment":"euphoric","confidence":0.5,"rationale":"x"}`, &res)
	assert.ErrorIs(t, err, ErrMalformedReply)
}

func TestDecodeReplyRecommendation(t *testing.T) {
	reply := `{
  "decision": "buy",
  "confidence": 0.72,
  "rationale": "breakout above resistance",
  "pattern": "ascending triangle",
  "position": "open a long position",
  "support_and_resistance": {"support": 180.5, "resistance": 195.0, "ratio": 0.93},
  "entry": {"price": 196.0, "time": "on the next open"},
  "exit": {"price": 210.0, "time": "within two weeks"}
}`

	var res models.RecommendationResult
	err := decodeReply(reply, &res)
	require.NoError(t, err)
	assert.Equal(t, models.DecisionBuy, res.Decision)
	assert.InDelta(t, 180.5, res.SupportAndResistance.Support, 1e-9)
	assert.Equal(t, "on the next open", res.Entry.Time)
}
