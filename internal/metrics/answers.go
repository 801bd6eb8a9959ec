package metrics

import "github.com/prometheus/client_golang/prometheus"

// Answer Prometheus metrics.
var (
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "virtualta",
			Name:      "answers_total",
			Help:      "Answers served, by match outcome and knowledge entry",
		},
		[]string{"outcome", "entry"}, // entry is "none" for the default answer
	)

	ResponseDelay = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "virtualta",
			Name:      "response_delay_seconds",
			Help:      "Artificial delay applied before answering",
			Buckets:   []float64{0.25, 0.5, 0.75, 1, 1.5, 2, 2.5, 3},
		},
	)

	QuestionLogAppendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "virtualta",
			Name:      "question_log_appends_total",
			Help:      "Question log writes",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var answerMetricsRegistered bool

// RegisterAnswerMetrics registers the answer metrics. Must be called once from main.
func RegisterAnswerMetrics() {
	if answerMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnswersTotal)
	prometheus.MustRegister(ResponseDelay)
	prometheus.MustRegister(QuestionLogAppendsTotal)
	answerMetricsRegistered = true
}
