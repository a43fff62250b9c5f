package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mmuldo/seasonmatch/extract"
	"github.com/mmuldo/seasonmatch/palette"
	"github.com/mmuldo/seasonmatch/report"
	"github.com/mmuldo/seasonmatch/season"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 20 << 20

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the scoring API and upload page",
	Long: `Serves an HTTP API for scoring garment images against the season
palettes, plus a small upload page for trying it out in a browser.

  POST /api/rank      multipart image upload, responds with the ranking
  GET  /api/palettes  the season palettes in order
  GET  /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaults()

		pal, e := palette.LoadOrDefault(palettesFile)
		if e != nil {
			return fmt.Errorf("loading palettes: %w", e)
		}

		srv := &server{pal: pal, log: slog.Default()}
		addr := stringDefault(cmd, "addr", serveAddr)

		httpSrv := &http.Server{
			Addr:         addr,
			Handler:      srv.routes(),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		srv.log.Info("listening", "addr", addr)
		return httpSrv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

type server struct {
	pal palette.Palette
	log *slog.Logger
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logging)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rank", s.handleRank).Methods(http.MethodPost)
	api.HandleFunc("/palettes", s.handlePalettes).Methods(http.MethodGet)

	return r
}

func (s *server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

// scoreUpload pulls the image and options out of a multipart form and runs
// the scoring pipeline. The status tells callers how to blame failures.
func (s *server) scoreUpload(w http.ResponseWriter, r *http.Request) (rankOutput, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if e := r.ParseMultipartForm(maxUploadBytes); e != nil {
		return rankOutput{}, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", e)
	}

	file, _, e := r.FormFile("image")
	if e != nil {
		return rankOutput{}, http.StatusBadRequest, fmt.Errorf("missing image upload: %w", e)
	}
	defer file.Close()

	img, e := extract.Decode(file)
	if e != nil {
		return rankOutput{}, http.StatusBadRequest, e
	}

	opts := extract.Options{}
	if v := r.FormValue("colors"); v != "" {
		n, ce := strconv.Atoi(v)
		if ce != nil || n < 1 {
			return rankOutput{}, http.StatusBadRequest, fmt.Errorf("colors must be a positive integer, got %q", v)
		}
		opts.Colors = n
	}
	if v := r.FormValue("crop"); v != "" {
		rect, ce := parseCrop(v)
		if ce != nil {
			return rankOutput{}, http.StatusBadRequest, ce
		}
		opts.Crop = &rect
	}

	hexes, e := extract.DominantHexes(img, opts)
	if e != nil {
		return rankOutput{}, http.StatusUnprocessableEntity, e
	}

	ranked, e := season.Rank(hexes, s.pal)
	if e != nil {
		return rankOutput{}, http.StatusUnprocessableEntity, e
	}
	if len(ranked) == 0 {
		return rankOutput{}, http.StatusUnprocessableEntity, fmt.Errorf("no seasons to rank")
	}

	topN := 3
	if v := r.FormValue("top"); v != "" {
		if n, ce := strconv.Atoi(v); ce == nil && n > 0 {
			topN = n
		}
	}

	return newRankOutput(hexes, ranked, topN), http.StatusOK, nil
}

func (s *server) handleRank(w http.ResponseWriter, r *http.Request) {
	out, status, e := s.scoreUpload(w, r)
	if e != nil {
		s.log.Warn("rank request failed", "error", e)
		writeJSON(w, status, map[string]string{"error": e.Error()})
		return
	}

	writeJSON(w, status, out)
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	out, _, e := s.scoreUpload(w, r)
	if e != nil {
		s.log.Warn("upload failed", "error", e)
		s.renderIndex(w, nil, e.Error())
		return
	}

	s.renderIndex(w, &report.UploadResult{
		Hexes:   out.Colors,
		Best:    out.Best,
		Also:    out.AlsoWorksFor,
		Ranking: out.Ranking,
	}, "")
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, nil, "")
}

func (s *server) renderIndex(w http.ResponseWriter, res *report.UploadResult, errMsg string) {
	html, e := report.IndexPage(res, errMsg)
	if e != nil {
		s.log.Error("rendering index", "error", e)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func (s *server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pal)
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if e := json.NewEncoder(w).Encode(v); e != nil {
		slog.Error("encoding response", "error", e)
	}
}
