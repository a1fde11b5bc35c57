package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-practice/internal/models"
)

func TestEvaluationCodec(t *testing.T) {
	t.Run(`clamps scores into range`, func(t *testing.T) {
		eval := decodeEvaluation(parseEvaluationReply(`{"score": 15}`), "q1")
		require.Equal(t, 10.0, eval.Score)

		eval = decodeEvaluation(parseEvaluationReply(`{"score": -3}`), "q1")
		require.Equal(t, 1.0, eval.Score)
	})

	t.Run(`round trips a serialized evaluation`, func(t *testing.T) {
		want := models.Evaluation{
			QuestionID:          "q_hr_1",
			Score:               7.5,
			Strengths:           []string{"Clear structure"},
			AreasForImprovement: []string{},
			Feedback:            "",
			OverallAssessment:   "Solid answer",
		}
		data, err := json.Marshal(want)
		require.NoError(t, err)

		reply := parseEvaluationReply(string(data))
		require.True(t, reply.WellFormed)
		require.Equal(t, want, decodeEvaluation(reply, "q_hr_1"))
	})

	t.Run(`fills missing JSON fields`, func(t *testing.T) {
		eval := decodeEvaluation(parseEvaluationReply("Sure!\n```json\n{\"score\": null}\n```"), "q2")
		require.Equal(t, models.Evaluation{
			QuestionID:          "q2",
			Score:               defaultScore,
			Strengths:           []string{},
			AreasForImprovement: []string{},
			Feedback:            noFeedback,
			OverallAssessment:   noAssessment,
		}, eval)
	})

	t.Run(`accepts loose JSON shapes`, func(t *testing.T) {
		eval := decodeEvaluation(parseEvaluationReply(`{
			"score": "8",
			"strengths": "clear, concise",
			"areas_for_improvement": ["more depth"],
			"overall_assessment": "Good"
		}`), "q3")
		require.Equal(t, 8.0, eval.Score)
		require.Equal(t, []string{"clear", "concise"}, eval.Strengths)
		require.Equal(t, []string{"more depth"}, eval.AreasForImprovement)
		require.Equal(t, "Good", eval.OverallAssessment)
	})

	t.Run(`non numeric score defaults`, func(t *testing.T) {
		eval := decodeEvaluation(parseEvaluationReply(`{"score": "great"}`), "q4")
		require.Equal(t, defaultScore, eval.Score)
	})

	t.Run(`falls back to labelled lines`, func(t *testing.T) {
		raw := "Score: 7/10\nStrengths: clear structure, good examples\nFeedback: Nice answer"

		reply := parseEvaluationReply(raw)
		require.False(t, reply.WellFormed)
		require.Equal(t, models.Evaluation{
			QuestionID:          "q5",
			Score:               7,
			Strengths:           []string{"clear structure", "good examples"},
			AreasForImprovement: []string{"Could be more detailed"},
			Feedback:            "Nice answer",
			OverallAssessment:   noAssessment,
		}, decodeEvaluation(reply, "q5"))
	})

	t.Run(`earliest label on a line wins`, func(t *testing.T) {
		eval := decodeEvaluation(parseEvaluationReply("feedback: strengths: were fine\nSCORE: 42"), "q6")
		require.Equal(t, "strengths: were fine", eval.Feedback)
		require.Equal(t, []string{"Answer provided"}, eval.Strengths)
		require.Equal(t, maxScore, eval.Score)
	})

	t.Run(`unlabelled text gets placeholders`, func(t *testing.T) {
		eval := decodeEvaluation(parseEvaluationReply("I cannot grade this."), "q7")
		require.Equal(t, defaultScore, eval.Score)
		require.Equal(t, []string{"Answer provided"}, eval.Strengths)
		require.Equal(t, []string{"Could be more detailed"}, eval.AreasForImprovement)
		require.Equal(t, noFeedback, eval.Feedback)
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run(`strips fences and surrounding prose`, func(t *testing.T) {
		payload, ok := extractJSON("Here:\n```json\n{\"a\": {\"b\": 1}}\n```\nDone", '{', '}')
		require.True(t, ok)
		require.Equal(t, `{"a": {"b": 1}}`, payload)
	})

	t.Run(`missing delimiters`, func(t *testing.T) {
		_, ok := extractJSON("no json here", '[', ']')
		require.False(t, ok)

		_, ok = extractJSON("} backwards {", '{', '}')
		require.False(t, ok)
	})

	t.Run(`decode errors are malformed replies`, func(t *testing.T) {
		_, err := decodeReply[map[string]any]("{not json}", '{', '}')
		var malformedErr *MalformedReplyError
		require.ErrorAs(t, err, &malformedErr)
		require.Equal(t, "{not json}", malformedErr.Raw)
	})
}
