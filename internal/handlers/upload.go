package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mergington/activityhub/internal/ingest"
)

// batchView is one table's load result shaped for the wire.
type batchView struct {
	Loaded  int    `json:"loaded"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

type uploadVM struct {
	Message  string               `json:"message"`
	IngestID string               `json:"ingest_id"`
	Results  map[string]batchView `json:"results"`
}

func viewBatch(b ingest.BatchResult) batchView {
	v := batchView{Loaded: b.Loaded, Skipped: b.Skipped}
	if b.Err != nil {
		v.Error = b.Err.Error()
	}
	return v
}

// LoadExcel ingests an uploaded workbook. Batch failures are reported in
// the results, not as an HTTP error: a half-good workbook still loads its
// good half.
func (a *App) LoadExcel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			a.detail(w, http.StatusBadRequest, "File is required")
			return
		}
		defer file.Close()

		name := strings.ToLower(header.Filename)
		if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
			a.detail(w, http.StatusBadRequest, "File must be an Excel file (.xlsx or .xls)")
			return
		}

		a.mu.Lock()
		rep := a.loader.LoadWorkbookReader(file)
		a.mu.Unlock()

		a.log.WithFields(logrus.Fields{
			"ingest_id":  rep.ID,
			"file":       header.Filename,
			"students":   rep.Students.Loaded,
			"activities": rep.Activities.Loaded,
			"signups":    rep.Signups.Loaded,
		}).Info("workbook ingested")

		a.respond(w, http.StatusOK, uploadVM{
			Message:  "Data loaded successfully",
			IngestID: rep.ID,
			Results: map[string]batchView{
				"students":   viewBatch(rep.Students),
				"activities": viewBatch(rep.Activities),
				"signups":    viewBatch(rep.Signups),
			},
		})
	}
}
