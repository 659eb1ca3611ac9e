package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"

	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
)

type WebServerResponse uint32

const (
	Okay WebServerResponse = iota + 1
	Error
)

func (w WebServerResponse) MarshalJSON() ([]byte, error) {
	var retval string
	switch w {
	case Okay:
		retval = "ok"
	case Error:
		retval = "error"
	default:
		err := fmt.Errorf("unhandled WebServerResponse value in MarshalJSON() conversion")
		return nil, err
	}
	return json.Marshal(retval)
}

func (w *WebServerResponse) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "ok":
		*w = Okay
	case "error":
		*w = Error
	default:
		return fmt.Errorf("unhandled WebServerResponse value %q in UnmarshalJSON() conversion", s)
	}
	return nil
}

type ResponseSimple struct {
	ServerStatus WebServerResponse `json:"status"`
}

type ResponseHealth struct {
	ServerStatus WebServerResponse `json:"status"`
	ServerTime   string            `json:"serverTime"`
}

type ResponseChecks struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
	End     string            `json:"end"`
	Results []CheckResultItem `json:"checks"`
}

type CheckResultItem struct {
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Passed bool   `json:"passed"`
}

type ResponseLag struct {
	Status  WebServerResponse `json:"status"`
	Message string            `json:"message"`
	Tables  []LagItem         `json:"tables"`
}

type LagItem struct {
	Table      string `json:"table"`
	SourceRows int    `json:"sourceRows"`
	TargetRows int    `json:"targetRows"`
	Difference int    `json:"difference"`
	InSync     bool   `json:"inSync"`
}

type ResponseReportList struct {
	Status  WebServerResponse `json:"status"`
	Reports []ReportListItem  `json:"reports"`
}

type ReportListItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func GetHandlerHealth(log logger.Logger) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		respond(log, w, r, ResponseHealth{
			ServerStatus: Okay,
			ServerTime:   time.Now().Format(constants.TimeFormatYearSeconds),
		})
	}
}

func GetHandlerStopServer(log logger.Logger, chanStop chan string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		chanStop <- "stop"
		log.Info("Stop signal sent")
		respond(log, w, r, ResponseSimple{ServerStatus: Okay})
	}
}

// GetHandlerChecks runs the data quality checks against the end named in the
// URL, either source or target.
func GetHandlerChecks(log logger.Logger, web *WebServerConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		end := vars["end"]
		var results []CheckResult
		var err error
		switch end {
		case "source":
			results, err = web.runEndChecks(log, false)
		case "target":
			results, err = web.runEndChecks(log, true)
		default:
			w.WriteHeader(http.StatusBadRequest)
			respond(log, w, r, ResponseChecks{Status: Error, Message: fmt.Sprintf("unknown end %q, expected source or target", end), End: end})
			return
		}
		if err != nil {
			log.Error(err)
			w.WriteHeader(http.StatusInternalServerError)
			respond(log, w, r, ResponseChecks{Status: Error, Message: err.Error(), End: end})
			return
		}
		items := make([]CheckResultItem, 0, len(results))
		failed := 0
		for _, res := range results {
			if !res.Passed {
				failed++
			}
			items = append(items, CheckResultItem{Name: res.Name, Value: res.Value, Passed: res.Passed})
		}
		msg := "all checks passed"
		status := Okay
		if failed > 0 {
			msg = fmt.Sprintf("%v of %v checks failed", failed, len(results))
			status = Error
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, r, ResponseChecks{Status: status, Message: msg, End: end, Results: items})
	}
}

// GetHandlerLag compares live row counts per table between the two ends.
func GetHandlerLag(log logger.Logger, web *WebServerConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := web.tableLag(log)
		if err != nil {
			log.Error(err)
			w.WriteHeader(http.StatusInternalServerError)
			respond(log, w, r, ResponseLag{Status: Error, Message: err.Error()})
			return
		}
		lagging := 0
		for _, i := range items {
			if !i.InSync {
				lagging++
			}
		}
		msg := "all tables within tolerance"
		status := Okay
		if lagging > 0 {
			msg = fmt.Sprintf("%v of %v tables lagging", lagging, len(items))
			status = Error
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, r, ResponseLag{Status: status, Message: msg, Tables: items})
	}
}

// GetHandlerReportList returns the analytics catalogue.
func GetHandlerReportList(log logger.Logger, web *WebServerConfig) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		items := make([]ReportListItem, 0, 8)
		for _, rep := range clinic.Reports(web.SourceSchema, "") {
			items = append(items, ReportListItem{Name: rep.Name, Description: rep.Description})
		}
		w.WriteHeader(http.StatusOK)
		respond(log, w, r, ResponseReportList{Status: Okay, Reports: items})
	}
}

// respond will marshal i to a string and write it to w. JSON is the default;
// request query param format=yaml switches the body to YAML.
func respond(log logger.Logger, w http.ResponseWriter, r *http.Request, i interface{}) {
	var j []byte
	var err error
	if r.URL.Query().Get("format") == "yaml" {
		j, err = yaml.Marshal(i)
	} else {
		j, err = json.MarshalIndent(i, "", "  ")
	}
	if err != nil {
		log.Panic(err)
	}
	_, err = fmt.Fprint(w, string(j))
	if err != nil {
		log.Panic(err)
	}
}
