package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/framer/pkg/cache"
	"github.com/matzehuels/framer/pkg/errors"
	"github.com/matzehuels/framer/pkg/observability"
	"github.com/matzehuels/framer/pkg/render"
	"github.com/matzehuels/framer/pkg/render/sink"
	"github.com/matzehuels/framer/pkg/scene"
)

const (
	artifactTTL   = 7 * 24 * time.Hour
	watchDebounce = 100 * time.Millisecond
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file; defaults to the scene path with the format's extension
	format  string  // png, pdf or svg; inferred from output when empty
	width   float64 // canvas width override
	height  float64 // canvas height override
	scale   float64 // raster scale override
	noCache bool
	watch   bool
}

// renderResult describes one completed render.
type renderResult struct {
	output     string
	blueprints int
	pass       render.Pass
	cached     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene>",
		Short: "Render a scene file to PNG, PDF or SVG",
		Long: `Render loads a scene (JSON, YAML or TOML), draws every blueprint in order and
writes the result. Annotations are drawn last and outlined in red when they
overlap another annotation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyString(cmd, "format", &opts.format, c.config.Format)
			applyFloat(cmd, "width", &opts.width, c.config.Width)
			applyFloat(cmd, "height", &opts.height, c.config.Height)
			applyFloat(cmd, "scale", &opts.scale, c.config.Scale)
			applyBool(cmd, "no-cache", &opts.noCache, c.config.NoCache)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: scene path with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), pdf, svg")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default: from scene)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default: from scene)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "device pixels per canvas unit for PNG (default: from scene)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always render, bypassing the artifact cache")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever the scene file changes")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	format, output, err := resolveOutput(path, opts)
	if err != nil {
		return err
	}
	opts.output = output

	store, err := newCache(opts.noCache)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open cache")
	}
	defer store.Close()

	r := &sceneRenderer{
		renderer: render.New(render.WithLogger(c.Logger)),
		cache:    store,
		keyer:    newKeyer(),
	}

	prog := newProgress(c.Logger)
	res, err := r.renderFile(ctx, path, format, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + res.output)
	printRenderResult(res)

	if !opts.watch {
		return nil
	}
	return c.watchScene(ctx, path, func() {
		prog := newProgress(c.Logger)
		res, err := r.renderFile(ctx, path, format, opts)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		prog.done("Re-rendered " + res.output)
		printRenderResult(res)
	})
}

// resolveOutput picks the output format and file. An explicit format wins,
// then the output file's extension, then PNG.
func resolveOutput(path string, opts renderOpts) (sink.Format, string, error) {
	format := sink.FormatPNG
	switch {
	case opts.format != "":
		f, err := sink.ParseFormat(opts.format)
		if err != nil {
			return "", "", err
		}
		format = f
	case opts.output != "":
		if f, err := sink.ParseFormat(filepath.Ext(opts.output)); err == nil {
			format = f
		}
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(format)
	}
	return format, output, nil
}

// sceneRenderer renders scene files through the artifact cache.
type sceneRenderer struct {
	renderer *render.Renderer
	cache    cache.Cache
	keyer    cache.Keyer
}

// renderFile renders the scene at path into opts.output. A cache hit
// writes the stored artifact without drawing.
func (r *sceneRenderer) renderFile(ctx context.Context, path string, format sink.Format, opts renderOpts) (renderResult, error) {
	data, err := scene.ReadBytes(path)
	if err != nil {
		return renderResult{}, err
	}
	sc, err := scene.Parse(data, path)
	if err != nil {
		return renderResult{}, err
	}
	canvas, err := overrideCanvas(sc.Canvas, opts)
	if err != nil {
		return renderResult{}, err
	}

	res := renderResult{output: opts.output, blueprints: len(sc.Blueprints)}
	key := r.keyer.ArtifactKey(sceneDigest(path, data), cache.ArtifactKeyOpts{
		Format: string(format),
		Width:  canvas.Size.Width,
		Height: canvas.Size.Height,
		Scale:  canvas.Scale,
	})

	artifact, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		res.cached = true
	} else {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		var buf bytes.Buffer
		res.pass, err = sink.Write(&buf, format, r.renderer, canvas, sc.State().Visible())
		if err != nil {
			return renderResult{}, err
		}
		artifact = buf.Bytes()
		if err := r.cache.Set(ctx, key, artifact, artifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
		}
	}

	if err := os.WriteFile(opts.output, artifact, 0o644); err != nil {
		return renderResult{}, errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	return res, nil
}

// overrideCanvas applies size and scale flags to the scene's canvas.
func overrideCanvas(c sink.Canvas, opts renderOpts) (sink.Canvas, error) {
	if opts.width > 0 {
		c.Size.Width = opts.width
	}
	if opts.height > 0 {
		c.Size.Height = opts.height
	}
	if opts.scale > 0 {
		c.Scale = opts.scale
	}
	if err := errors.ValidateCanvas(c.Size.Width, c.Size.Height, c.Scale); err != nil {
		return sink.Canvas{}, err
	}
	return c, nil
}

// sceneDigest hashes the scene bytes together with every image file it
// references, so editing an image invalidates cached artifacts.
func sceneDigest(path string, data []byte) string {
	digest := bytes.NewBuffer(append([]byte(nil), data...))

	f, err := scene.FormatFromPath(path)
	if err != nil {
		return cache.Hash(digest.Bytes())
	}
	doc, err := scene.Decode(bytes.NewReader(data), f)
	if err != nil {
		return cache.Hash(digest.Bytes())
	}
	for _, p := range doc.ImagePaths() {
		raw, err := os.ReadFile(filepath.Join(filepath.Dir(path), p))
		if err != nil {
			continue
		}
		digest.WriteString("\x00" + p + "\x00" + cache.Hash(raw))
	}
	return cache.Hash(digest.Bytes())
}

// watchScene calls rerender after the scene file changes until ctx is done.
func (c *CLI) watchScene(ctx context.Context, path string, rerender func()) error {
	w, err := c.newSceneWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("Watching %s (Ctrl-C to stop)", path)
	return w.run(ctx, rerender)
}

// sceneWatcher reports changes to one scene file. The directory is watched
// rather than the file because editors often replace files on save.
type sceneWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
}

// newSceneWatcher starts watching path. Changes made after it returns are
// reported by run.
func (c *CLI) newSceneWatcher(path string) (*sceneWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
	}
	return &sceneWatcher{path: abs, watcher: watcher, debounce: watchDebounce, logger: c.Logger}, nil
}

func (w *sceneWatcher) Close() error { return w.watcher.Close() }

// run calls rerender once per burst of changes, at most one debounce
// interval after the burst's first event, so a steady stream of writes
// still renders periodically.
func (w *sceneWatcher) run(ctx context.Context, rerender func()) error {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if name != w.path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			w.logger.Debug("scene changed", "event", event.Op.String())
			if pending == nil {
				pending = time.After(w.debounce)
			}
		case <-pending:
			pending = nil
			rerender()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

func printRenderResult(res renderResult) {
	printFile(res.output)
	printStats(res.blueprints, len(res.pass.Annotations), res.pass.Collisions(), res.cached)
}
