// Command missioncard renders a mission card from its YAML description,
// as SVG, compressed SVG or PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/missioncard/config"
	"github.com/benoitkugler/missioncard/logging"
	"github.com/benoitkugler/missioncard/mission"
	"github.com/benoitkugler/missioncard/svgcard"
	"github.com/benoitkugler/missioncard/svgdoc"
	"github.com/benoitkugler/missioncard/svgraster"
	"github.com/joho/godotenv"
)

// errFindings is returned by -check when the layout has problems
var errFindings = errors.New("mission layout has problems")

type job struct {
	missionPath string
	outPath     string // optional
	format      string // svg, svgz or png
	checkOnly   bool
}

func main() {
	var (
		configDir   = flag.String("config", ".", "directory containing "+config.FileName)
		missionPath = flag.String("mission", "", "mission YAML file")
		outPath     = flag.String("out", "", "output file (default: <output.dir>/<mission>.<format>)")
		format      = flag.String("format", "svg", "output format: svg, svgz or png")
		checkOnly   = flag.Bool("check", false, "only report layout problems")
	)
	flag.Parse()

	if *missionPath == "" {
		fmt.Fprintln(os.Stderr, "missing -mission")
		os.Exit(2)
	}

	// .env is optional
	envErr := godotenv.Load()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	settings, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, closeLog, err := setupLogger(settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer closeLog()
	if envErr != nil {
		log.Debug("No .env file loaded", "err", envErr)
	}

	j := job{missionPath: *missionPath, outPath: *outPath, format: *format, checkOnly: *checkOnly}
	if err := run(j, settings, os.Stdout, log); err != nil {
		log.Error("Rendering failed", "mission", *missionPath, "err", err)
		closeLog()
		os.Exit(1)
	}
}

// setupLogger writes to stdout, or to the log file with
// warnings and errors echoed on stderr.
func setupLogger(s config.Settings) (*slog.Logger, func(), error) {
	if s.LogsDir == "" {
		return logging.Setup(nil, s.LogLevel), func() {}, nil
	}
	f, err := logging.OpenLogFile(s.LogsDir)
	if err != nil {
		return nil, nil, err
	}
	console := slog.NewTextHandler(os.Stderr, logging.HandlerOptions(slog.LevelWarn))
	return logging.Setup(f, s.LogLevel, console), func() { f.Close() }, nil
}

func run(j job, s config.Settings, stdout io.Writer, log *slog.Logger) error {
	cfg, err := mission.Load(j.missionPath, s.Mission.ValidateSchema)
	if err != nil {
		return err
	}

	// Check and Compose both place the buildings:
	// only one of them runs, so each warning is logged once
	if j.checkOnly {
		findings := mission.Check(cfg, log)
		for _, f := range findings {
			log.Warn("Layout problem", "kind", f.Kind.String(), "detail", f.Message)
			fmt.Fprintln(stdout, f)
		}
		if len(findings) > 0 {
			return fmt.Errorf("%w: %d finding(s)", errFindings, len(findings))
		}
		return nil
	}

	format := strings.ToLower(j.format)
	if format == "svg" && s.Output.Compress {
		format = "svgz"
	}
	if format != "svg" && format != "svgz" && format != "png" {
		return fmt.Errorf("unsupported format %q", j.format)
	}

	out := j.outPath
	if out == "" {
		name := strings.TrimSuffix(filepath.Base(j.missionPath), filepath.Ext(j.missionPath))
		out = filepath.Join(s.Output.Dir, name+"."+format)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}

	opts := svgcard.Options{WidthPx: s.Render.WidthPx, HeightPx: s.Render.HeightPx}
	root := svgcard.Compose(svgdoc.Document{}, cfg, opts, log).(*svgdoc.Node)

	switch format {
	case "svg", "svgz":
		err = svgdoc.WriteFile(out, root, format == "svgz")
	case "png":
		err = writePNG(out, root, cfg, s, log)
	}
	if err != nil {
		return err
	}
	log.Info("Card written", "path", out, "format", format)
	return nil
}

// pngSize uses the pixel density if set, the configured size otherwise
func pngSize(cfg *mission.Config, s config.Settings) (int, int) {
	if ppi := s.Render.PixelsPerInch; ppi > 0 && cfg.Base.Size.Width > 0 && cfg.Base.Size.Height > 0 {
		return int(math.Ceil(cfg.Base.Size.Width * float64(ppi))), int(math.Ceil(cfg.Base.Size.Height * float64(ppi)))
	}
	return s.Render.WidthPx, s.Render.HeightPx
}

func writePNG(out string, root *svgdoc.Node, cfg *mission.Config, s config.Settings, log *slog.Logger) error {
	mode, err := svgraster.ParseErrorMode(s.Render.ErrorMode)
	if err != nil {
		return err
	}
	w, h := pngSize(cfg, s)
	img, err := svgraster.Rasterize(root, w, h, mode, log)
	if err != nil {
		return err
	}
	return svgraster.WritePNG(out, img)
}
