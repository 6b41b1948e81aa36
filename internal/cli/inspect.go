package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/overlay"
	"github.com/matzehuels/framer/pkg/render"
	"github.com/matzehuels/framer/pkg/scene"
	"github.com/matzehuels/framer/pkg/window"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scene>",
		Short: "List a scene's blueprints, annotations and collisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
}

func (c *CLI) runInspect(path string) error {
	sc, err := scene.ReadFile(path)
	if err != nil {
		return err
	}

	o := overlay.New(
		overlay.WithCanvas(sc.Canvas),
		overlay.WithState(sc.State()),
		overlay.WithLogger(c.Logger),
	)
	printInspection(path, o.State(), sc, o.CurrentPass())

	if len(sc.Blueprints) > 0 {
		printNextStep("Preview it", "framer serve "+path)
	}
	return nil
}

func printInspection(path string, state window.State, sc scene.Scene, pass render.Pass) {
	fmt.Fprintln(out, StyleTitle.Render(path))
	printKeyValue("canvas", fmt.Sprintf("%g × %g", sc.Canvas.Size.Width, sc.Canvas.Size.Height))
	printKeyValue("scale", fmt.Sprintf("%g", sc.Canvas.Scale))
	if sc.Canvas.Background.A > 0 {
		printKeyValue("background", sc.Canvas.Background.Hex())
	}
	fmt.Fprintln(out)

	if len(state.Blueprints) == 0 {
		printWarning("No blueprints")
		return
	}

	fmt.Fprintln(out, StyleTitle.Render("Blueprints"))
	for _, e := range state.Blueprints {
		icon, id := iconVisible, StyleValue.Render(string(e.Blueprint.ID))
		if !e.IsVisible {
			icon, id = iconHidden, styleHidden.Render(string(e.Blueprint.ID))
		}
		frames, lines := countContents(e.Blueprint)
		fmt.Fprintf(out, "  %s %s %s\n", icon, id,
			StyleDim.Render(fmt.Sprintf("(%s, %s)", plural(frames, "frame"), plural(lines, "line"))))
	}

	if len(pass.Annotations) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, StyleTitle.Render("Annotations"))
		for _, a := range pass.Annotations {
			rect := fmt.Sprintf("[%g,%g %g×%g]", a.Rect.X, a.Rect.Y, a.Rect.Width, a.Rect.Height)
			line := fmt.Sprintf("  %s %q %s", StyleNumber.Render(string(a.Blueprint)), a.Text, StyleDim.Render(rect))
			if a.Collides {
				line += " " + StyleCollision.Render("collides")
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintln(out)
	printStats(len(state.Blueprints), len(pass.Annotations), pass.Collisions(), false)
}

func countContents(b blueprint.Blueprint) (frames, lines int) {
	for _, content := range b.Contents {
		switch content.(type) {
		case blueprint.Frame:
			frames++
		case blueprint.Line:
			lines++
		}
	}
	return frames, lines
}
