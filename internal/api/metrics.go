package api

import (
	"log/slog"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/neolatino/neolatino-api/internal/dict"
	"github.com/neolatino/neolatino-api/internal/store"
)

// Metrics returns the handler for GET /metrics. It renders the dictionary's
// state as Prometheus text exposition, built directly from metric-family
// protos on each scrape.
func Metrics(st *store.Dictionary) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		format := expfmt.NewFormat(expfmt.TypeTextPlain)
		w.Header().Set("Content-Type", string(format))

		enc := expfmt.NewEncoder(w, format)
		for _, mf := range metricFamilies(st.Status()) {
			if err := enc.Encode(mf); err != nil {
				slog.Error("metrics: encode failed", "family", mf.GetName(), "err", err)
				return
			}
		}
	})
}

// metricFamilies builds the exported metric families from a store status.
func metricFamilies(s store.Status) []*dto.MetricFamily {
	families := []*dto.MetricFamily{
		gauge("neolatino_dictionary_entries",
			"Number of entries currently held in the dictionary.",
			float64(s.Entries)),
		counter("neolatino_dictionary_refreshes_total",
			"Successful feed refreshes since process start.",
			float64(s.Refreshes)),
		counter("neolatino_dictionary_refresh_failures_total",
			"Failed feed refreshes since process start.",
			float64(s.Failures)),
		gauge("neolatino_dictionary_last_refresh_timestamp_seconds",
			"Unix time of the last successful refresh.",
			float64(s.LastUpdate.Unix())),
		gauge("neolatino_feed_total_count",
			"Total record count published by the feed's counter row.",
			float64(s.Counters.Total)),
		gauge("neolatino_feed_sem_count",
			"Semantic cluster count published by the feed's counter row.",
			float64(s.Counters.Sem)),
	}

	// One labelled series per language, all from the feed's counter row.
	perLang := &dto.MetricFamily{
		Name: proto.String("neolatino_feed_language_count"),
		Help: proto.String("Per-language record count published by the feed's counter row."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, lang := range dict.Languages() {
		perLang.Metric = append(perLang.Metric, &dto.Metric{
			Label: []*dto.LabelPair{{
				Name:  proto.String("language"),
				Value: proto.String(string(lang)),
			}},
			Gauge: &dto.Gauge{Value: proto.Float64(float64(s.Counters.ByLanguage(lang)))},
		})
	}
	return append(families, perLang)
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(value)}}},
	}
}

func counter(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: proto.Float64(value)}}},
	}
}
