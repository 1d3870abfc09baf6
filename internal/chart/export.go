package chart

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/libinsight-cli/internal/analysis"
	"github.com/KaramelBytes/libinsight-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Kind names a chart's data set in exports.
type Kind string

const (
	KindTopBooks Kind = "top_books"
	KindTrend    Kind = "monthly_trend"
	KindGenres   Kind = "genre_distribution"
	KindHeatmap  Kind = "weekday_month_activity"
	KindSummary  Kind = "summary"
)

// Document is the serialized form of one chart's data.
type Document struct {
	DatasetID   string    `json:"dataset_id" yaml:"dataset_id"`
	Chart       Kind      `json:"chart" yaml:"chart"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Data        any       `json:"data" yaml:"data"`
}

type monthRow struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

type pivotData struct {
	Days   []string `json:"days" yaml:"days"`
	Months []string `json:"months" yaml:"months"`
	Counts [][]int  `json:"counts" yaml:"counts"`
}

type summaryData struct {
	analysis.Summary `yaml:",inline"`
	BusiestDay       string `json:"busiest_day" yaml:"busiest_day"`
}

// SummaryDocument wraps the report statistics for export.
func SummaryDocument(datasetID string, s analysis.Summary) Document {
	return newDocument(datasetID, KindSummary, summaryData{Summary: s, BusiestDay: s.BusiestDay.String()})
}

// TopBooksDocument wraps top-books data for export.
func TopBooksDocument(datasetID string, items []analysis.TitleCount) Document {
	return newDocument(datasetID, KindTopBooks, items)
}

// TrendDocument wraps the monthly series for export, months as YYYY-MM.
func TrendDocument(datasetID string, items []analysis.MonthCount) Document {
	rows := make([]monthRow, len(items))
	for i, it := range items {
		rows[i] = monthRow{Month: it.Month.Format("2006-01"), Count: it.Count}
	}
	return newDocument(datasetID, KindTrend, rows)
}

// GenresDocument wraps the genre counts for export.
func GenresDocument(datasetID string, items []analysis.GenreCount) Document {
	return newDocument(datasetID, KindGenres, items)
}

// HeatmapDocument wraps the pivot for export with day and month names.
func HeatmapDocument(datasetID string, p analysis.ActivityPivot) Document {
	d := pivotData{Counts: p.Counts}
	for _, day := range p.Days {
		d.Days = append(d.Days, day.String())
	}
	for _, m := range p.Months {
		d.Months = append(d.Months, m.String())
	}
	if d.Months == nil {
		d.Months = []string{}
	}
	return newDocument(datasetID, KindHeatmap, d)
}

func newDocument(datasetID string, kind Kind, data any) Document {
	return Document{DatasetID: datasetID, Chart: kind, GeneratedAt: time.Now().UTC(), Data: data}
}

// Export writes a chart document atomically. format is "json" or "yaml"; when
// empty it is taken from the file extension, defaulting to json.
func Export(path, format string, doc Document) error {
	path, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			f = "yaml"
		default:
			f = "json"
		}
	}
	var b []byte
	switch f {
	case "json":
		b, err = utils.PrettyJSON(doc)
	case "yaml", "yml":
		b, err = yaml.Marshal(doc)
		if err != nil {
			err = fmt.Errorf("marshal yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %s (use json or yaml)", format)
	}
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}
