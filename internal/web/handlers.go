package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/KaramelBytes/surveylens/internal/analysis"
	"github.com/KaramelBytes/surveylens/internal/chart"
	"github.com/KaramelBytes/surveylens/internal/dataset"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/telemetry"
	"github.com/KaramelBytes/surveylens/internal/web/templates"
)

// multipart parts beyond this size spill to temporary files.
const maxMemory = 32 << 20

// errUploadTooLarge maps to 413.
var errUploadTooLarge = errors.New("upload exceeds the size limit")

// requestError is a failure caused by the request itself; it maps to 400.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return &requestError{err: err} }

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page := templates.Page{Lang: s.resolveLang(r), Theme: string(s.resolveTheme(r))}
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	parseErr := s.parseUpload(w, r)
	defer cleanupUpload(r)
	lang := s.resolveLang(r)
	theme := s.resolveTheme(r)
	page := templates.Page{Lang: lang, Theme: string(theme)}

	res, format, err := s.runAnalysis(r, lang, parseErr)
	s.record(r, "web", format, lang, res, err)
	if err != nil {
		page.Error = err.Error()
		s.render(w, r, statusFor(err), page)
		return
	}
	page.Result = res

	pk := lang.Pack()
	svg, err := chart.Scatter(res.XValues, res.YValues, chart.Options{
		XLabel: pk.XTitle,
		YLabel: pk.YTitle,
		Theme:  theme,
	})
	if err != nil {
		s.logger.Error("render scatter", slog.String("request_id", GetRequestID(r)), slog.Any("error", err))
	} else {
		page.Scatter = svg
	}
	s.render(w, r, http.StatusOK, page)
}

func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	parseErr := s.parseUpload(w, r)
	defer cleanupUpload(r)
	lang := s.resolveLang(r)
	res, format, err := s.runAnalysis(r, lang, parseErr)
	s.record(r, "api", format, lang, res, err)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// parseUpload reads the multipart body under the configured size limit.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.settings.MaxUploadBytes)
	if r.ContentLength > s.settings.MaxUploadBytes {
		// keep later FormValue lookups off the body
		r.Form = r.URL.Query()
		return errUploadTooLarge
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errUploadTooLarge
		}
		return badRequest(fmt.Errorf("read upload: %w", err))
	}
	return nil
}

func cleanupUpload(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// runAnalysis runs the full pipeline over the "dataset" upload. The table is
// discarded once the response is written.
func (s *Server) runAnalysis(r *http.Request, lang locale.Lang, parseErr error) (*analysis.Result, string, error) {
	if parseErr != nil {
		return nil, "", parseErr
	}
	file, hdr, err := r.FormFile("dataset")
	if err != nil {
		return nil, "", badRequest(fmt.Errorf("missing dataset file: %w", err))
	}
	defer file.Close()

	format := "csv"
	if dataset.IsWorkbook(hdr.Filename) {
		format = "xlsx"
	}
	ds, err := dataset.Load(hdr.Filename, file, dataset.Options{})
	if err != nil {
		return nil, format, badRequest(err)
	}
	res, err := analysis.Analyze(ds, analysis.Options{
		XColumn:     s.settings.XColumn,
		YColumn:     s.settings.YColumn,
		Lang:        lang,
		PreviewRows: s.settings.PreviewRows,
	})
	if err != nil {
		return nil, format, badRequest(err)
	}
	return res, format, nil
}

func (s *Server) record(r *http.Request, surface, format string, lang locale.Lang, res *analysis.Result, err error) {
	a := telemetry.Analysis{Format: format, Lang: string(lang), Surface: surface, Err: err}
	if res != nil {
		a.Rows = res.Rows
		a.AbsR = math.Abs(res.Corr.R)
	}
	s.recorder.RecordAnalysis(r.Context(), a)
	if err != nil {
		s.logger.Warn("analysis failed",
			slog.String("request_id", GetRequestID(r)),
			slog.String("surface", surface),
			slog.Any("error", err),
		)
	}
}

// resolveLang prefers an explicit lang value, then Accept-Language, then the
// configured default.
func (s *Server) resolveLang(r *http.Request) locale.Lang {
	if v := r.FormValue("lang"); v != "" {
		if l, err := locale.Parse(v); err == nil {
			return l
		}
	}
	return locale.Negotiate(r.Header.Get("Accept-Language"), s.settings.DefaultLang)
}

func (s *Server) resolveTheme(r *http.Request) chart.Theme {
	if v := r.FormValue("theme"); v != "" {
		if t, err := chart.ParseTheme(v); err == nil {
			return t
		}
	}
	return s.settings.DefaultTheme
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page templates.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Dashboard(page).Render(r.Context(), w); err != nil {
		s.logger.Error("render page", slog.String("request_id", GetRequestID(r)), slog.Any("error", err))
	}
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
