package cli

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/errors"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/overlay"
	"github.com/matzehuels/framer/pkg/render"
	"github.com/matzehuels/framer/pkg/render/sink"
	"github.com/matzehuels/framer/pkg/scene"
	"github.com/matzehuels/framer/pkg/window"
)

const (
	defaultAddr     = "127.0.0.1:8000"
	maxRequestBody  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Buttons registered on every served overlay.
const (
	buttonReload = "reload"
	buttonClear  = "clear"
	buttonToggle = "toggle"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve <scene>",
		Short: "Serve a live HTTP preview of a scene's overlay",
		Long: `Serve loads a scene into an overlay and exposes it over HTTP:

  GET    /image.{png,pdf,svg}   current rendering
  GET    /state                 blueprints, buttons and annotation collisions
  PUT    /blueprints/{id}       draw or redraw a blueprint (JSON body)
  DELETE /blueprints/{id}       erase one blueprint
  DELETE /blueprints            erase all blueprints
  POST   /show, /hide           toggle the whole overlay
  POST   /buttons/{title}       press a button (reload, clear, toggle)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyString(cmd, "addr", &addr, c.config.Addr)
			return c.runServe(cmd.Context(), args[0], addr, watch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scene whenever the file changes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string, watch bool) error {
	s, err := newServer(path, c.Logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Serving %s", path)
	printDetail("%s", StyleLink.Render("http://"+addr+"/image.png"))

	if watch {
		go func() {
			if err := c.watchScene(ctx, path, s.reload); err != nil {
				c.Logger.Error("watch stopped", "err", err)
			}
		}()
	}

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	printInfo("Stopped")
	return nil
}

// =============================================================================
// Server
// =============================================================================

// server exposes one overlay over HTTP.
type server struct {
	path     string
	overlay  *overlay.Overlay
	renderer *render.Renderer
	logger   *log.Logger
}

// newServer loads the scene at path into a fresh overlay and registers the
// built-in buttons.
func newServer(path string, logger *log.Logger) (*server, error) {
	sc, err := scene.ReadFile(path)
	if err != nil {
		return nil, err
	}

	renderer := render.New(render.WithLogger(logger))
	s := &server{
		path: path,
		overlay: overlay.New(
			overlay.WithCanvas(sc.Canvas),
			overlay.WithRenderer(renderer),
			overlay.WithLogger(logger),
		),
		renderer: renderer,
		logger:   logger,
	}
	s.overlay.DispatchAll(sc.Actions()...)

	s.overlay.AddButton(buttonReload, s.reload)
	s.overlay.AddButton(buttonClear, s.overlay.EraseAll)
	s.overlay.AddButton(buttonToggle, func() {
		if s.overlay.State().IsShowingBlueprints {
			s.overlay.Hide()
		} else {
			s.overlay.Show()
		}
	})
	return s, nil
}

// reload replaces the overlay's blueprints with the scene file's. Buttons
// and the show/hide toggle are kept.
func (s *server) reload() {
	sc, err := scene.ReadFile(s.path)
	if err != nil {
		s.logger.Error("reload failed", "path", s.path, "err", errors.UserMessage(err))
		return
	}
	actions := append([]window.Action{window.EraseAll{}}, sc.Actions()...)
	s.overlay.Load(sc.Canvas, actions...)
	s.logger.Info("scene reloaded", "path", s.path, "blueprints", len(sc.Blueprints))
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/image.{format}", s.handleImage)
	r.Get("/state", s.handleState)
	r.Put("/blueprints/{id}", s.handleDraw)
	r.Delete("/blueprints/{id}", s.handleErase)
	r.Delete("/blueprints", s.handleEraseAll)
	r.Post("/show", s.handleShow)
	r.Post("/hide", s.handleHide)
	r.Post("/buttons/{title}", s.handlePress)

	return r
}

// logRequests attaches the logger to the request context and logs each
// request at debug level.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), s.logger)))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
		)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")

	if format == sink.FormatPNG {
		if err := png.Encode(w, s.overlay.CurrentImage()); err != nil {
			loggerFromContext(r.Context()).Warn("write image", "err", err)
		}
		return
	}
	state := s.overlay.State()
	if _, err := sink.Write(w, format, s.renderer, s.overlay.Canvas(), state.Visible()); err != nil {
		loggerFromContext(r.Context()).Warn("write image", "format", format, "err", err)
	}
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(s.overlay))
}

func (s *server) handleDraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateBlueprintID(id); err != nil {
		writeError(w, r, err)
		return
	}

	var spec scene.BlueprintSpec
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "decode blueprint"))
		return
	}
	spec.ID = id

	b, err := spec.Blueprint(scene.DirLoader(filepath.Dir(s.path)))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.overlay.Draw(b)
	writeJSON(w, http.StatusOK, newStateResponse(s.overlay))
}

func (s *server) handleErase(w http.ResponseWriter, r *http.Request) {
	id := blueprint.ID(chi.URLParam(r, "id"))
	if s.overlay.State().Index(id) < 0 {
		writeError(w, r, errors.New(errors.ErrCodeBlueprintNotFound, "no blueprint %q", id))
		return
	}
	s.overlay.Erase(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleEraseAll(w http.ResponseWriter, r *http.Request) {
	s.overlay.EraseAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleShow(w http.ResponseWriter, r *http.Request) {
	s.overlay.Show()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleHide(w http.ResponseWriter, r *http.Request) {
	s.overlay.Hide()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePress(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if !s.overlay.PressButton(title) {
		writeError(w, r, errors.New(errors.ErrCodeButtonNotFound, "no button %q", title))
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s.overlay))
}

// =============================================================================
// Responses
// =============================================================================

type stateResponse struct {
	Version           uint64               `json:"version"`
	ShowingBlueprints bool                 `json:"showing_blueprints"`
	Canvas            canvasResponse       `json:"canvas"`
	Blueprints        []entryResponse      `json:"blueprints"`
	Buttons           []string             `json:"buttons"`
	Annotations       []annotationResponse `json:"annotations"`
	Collisions        int                  `json:"collisions"`
}

type canvasResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

type entryResponse struct {
	ID       string              `json:"id"`
	Visible  bool                `json:"visible"`
	Contents []scene.ContentSpec `json:"contents"`
}

type annotationResponse struct {
	Blueprint string        `json:"blueprint"`
	Text      string        `json:"text"`
	Rect      geometry.Rect `json:"rect"`
	Collides  bool          `json:"collides"`
}

func newStateResponse(o *overlay.Overlay) stateResponse {
	state := o.State()
	canvas := o.Canvas()
	pass := o.CurrentPass()

	resp := stateResponse{
		Version:           o.Version(),
		ShowingBlueprints: state.IsShowingBlueprints,
		Canvas:            canvasResponse{Width: canvas.Size.Width, Height: canvas.Size.Height, Scale: canvas.Scale},
		Blueprints:        make([]entryResponse, len(state.Blueprints)),
		Buttons:           make([]string, len(state.Buttons)),
		Annotations:       make([]annotationResponse, len(pass.Annotations)),
		Collisions:        pass.Collisions(),
	}
	for i, e := range state.Blueprints {
		resp.Blueprints[i] = entryResponse{
			ID:       string(e.Blueprint.ID),
			Visible:  e.IsVisible,
			Contents: scene.SpecOf(e.Blueprint).Contents,
		}
	}
	for i, b := range state.Buttons {
		resp.Buttons[i] = b.Title
	}
	for i, a := range pass.Annotations {
		resp.Annotations[i] = annotationResponse{
			Blueprint: string(a.Blueprint),
			Text:      a.Text,
			Rect:      a.Rect,
			Collides:  a.Collides,
		}
	}
	return resp
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps coded errors to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:  string(errors.GetCode(err)),
		Error: errors.UserMessage(err),
	})
}
