// Command dctrace replays a JSON scene through the overlay processor and
// prints the promotion decision and damage of every frame.
//
// Usage:
//
//	dctrace -scene video.json [-db stats.db] [-v]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/dclayer"
	"github.com/gogpu/dclayer/telemetry"
	"github.com/gogpu/dclayer/telemetry/sqlitestore"
)

func main() {
	var (
		scenePath    = flag.String("scene", "", "JSON scene file (required)")
		dbPath       = flag.String("db", "", "SQLite database accumulating the result histogram")
		verbose      = flag.Bool("v", false, "log every promotion decision to stderr")
		allowComplex = flag.Bool("complex", false, "allow rotated, skewed and perspective overlays")
		underlays    = flag.Bool("underlays", true, "allow underlay promotion")
		transparent  = flag.Bool("transparent-underlays", false, "allow non-opaque underlays")
	)
	flag.Parse()

	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		dclayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	f, err := os.Open(*scenePath)
	if err != nil {
		log.Fatalf("Failed to open scene: %v", err)
	}
	sc, err := decodeScene(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *scenePath, err)
	}

	hist := telemetry.NewHistogram()
	p := dclayer.NewProcessor(sc.textures,
		dclayer.WithComplexTransforms(*allowComplex),
		dclayer.WithUnderlays(*underlays),
		dclayer.WithTransparentUnderlays(*transparent),
		dclayer.WithRecorder(hist),
	)
	if err := replay(os.Stdout, p, sc); err != nil {
		log.Fatalf("Failed to write trace: %v", err)
	}

	snap := hist.Snapshot()
	fmt.Println()
	if err := snap.WriteReport(os.Stdout); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	if *dbPath != "" {
		run, err := persist(context.Background(), *dbPath, snap)
		if err != nil {
			log.Fatalf("Failed to save histogram: %v", err)
		}
		log.Printf("Histogram saved to %s (run %s)", *dbPath, run)
	}
}

// replay processes every frame of sc and writes one block per frame.
func replay(w io.Writer, p *dclayer.Processor, sc *scene) error {
	for i, fr := range sc.frames {
		if fr.clear {
			p.ClearOverlayState()
		}
		frame := p.Process(fr.passes, fr.display)
		if err := writeFrame(w, i, &frame); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(w io.Writer, index int, frame *dclayer.Frame) error {
	if _, err := fmt.Fprintf(w, "frame %d: damage=%s overlay_damage=%s\n",
		index, formatRect(frame.Damage), formatRect(frame.OverlayDamage)); err != nil {
		return err
	}
	for _, d := range frame.Passes {
		if _, err := fmt.Fprintf(w, "  pass %d root=%t state=%s\n", d.PassID, d.IsRoot, d.State); err != nil {
			return err
		}
	}
	for i, o := range frame.Overlays.Overlays {
		st := frame.Overlays.SharedState(i)
		if _, err := fmt.Fprintf(w, "  %s pass=%d quad=%d material=%s z=%d bounds=%s content=%s",
			o.Plane, o.PassID, o.QuadIndex, o.Material, st.ZOrder,
			formatRect(o.BoundsRect), formatRect(o.ContentRect)); err != nil {
			return err
		}
		if o.Plane == dclayer.PlaneUnderlay {
			if _, err := fmt.Fprintf(w, " hole=%s", formatRect(o.HoleRect)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " transform=%v\n", st.Transform.Mat3()); err != nil {
			return err
		}
	}
	return nil
}

func formatRect(r dclayer.Rect) string {
	if r.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}

func persist(ctx context.Context, path string, snap telemetry.Snapshot) (string, error) {
	store, err := sqlitestore.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()
	return store.Add(ctx, snap)
}
