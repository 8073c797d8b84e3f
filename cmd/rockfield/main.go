// rockfield - asteroid field flight in the terminal
// Fly a ship through a drifting field of asteroids and shoot them apart.
//
// Controls:
//
//	E/Up      - Thrust forward
//	Q/Down    - Thrust backward
//	A/D       - Yaw left/right (also Left/Right)
//	W/S       - Pitch up/down
//	T/Space   - Fire
//	X         - Toggle wireframe
//	P         - Save a screenshot (PNG)
//	Esc       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/taigrr/rockfield/pkg/config"
	"github.com/taigrr/rockfield/pkg/models"
	"github.com/taigrr/rockfield/pkg/render"
	"github.com/taigrr/rockfield/pkg/sim"
)

var (
	configPath     = flag.String("config", "rockfield.toml", "Path to the TOML config file")
	seedFlag       = flag.Uint64("seed", 0, "World seed (0 = from config, then clock)")
	targetFPS      = flag.Int("fps", 0, "Target FPS (0 = from config)")
	debug          = flag.Bool("debug", false, "Log at debug level in development format")
	exportAsteroid = flag.String("export-asteroid", "", "Write a generated asteroid to this .glb file and exit")
)

// keyHold is how long a key counts as held after its last press or repeat.
const keyHold = 600 * time.Millisecond

// maxFrameTime caps dt so a stalled terminal does not tunnel bullets.
const maxFrameTime = 0.1

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rockfield - asteroid field flight in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rockfield [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  E/Up, Q/Down  - Thrust forward/backward\n")
		fmt.Fprintf(os.Stderr, "  A/D           - Yaw left/right\n")
		fmt.Fprintf(os.Stderr, "  W/S           - Pitch up/down\n")
		fmt.Fprintf(os.Stderr, "  T/Space       - Fire\n")
		fmt.Fprintf(os.Stderr, "  X             - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  P             - Screenshot\n")
		fmt.Fprintf(os.Stderr, "  Esc           - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(&cfg)

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.With(zap.String("session", uuid.NewString()))

	seed := cfg.World.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))

	if *exportAsteroid != "" {
		mesh := models.GenerateAsteroid(rng, cfg.World.AsteroidRadius, cfg.World.AsteroidVariation)
		if err := models.SaveGLB(*exportAsteroid, mesh); err != nil {
			return fmt.Errorf("export asteroid: %w", err)
		}
		logger.Info("asteroid exported", zap.String("path", *exportAsteroid), zap.Uint64("seed", seed))
		fmt.Printf("Wrote %s (%d triangles, seed %d)\n", *exportAsteroid, mesh.TriangleCount(), seed)
		return nil
	}

	world := sim.New(cfg.WorldParams(), rng, logger.Named("sim"))
	if cfg.Render.ShipModel != "" {
		mesh, err := models.LoadGLB(cfg.Render.ShipModel)
		if err != nil {
			return fmt.Errorf("load ship model: %w", err)
		}
		world.SetShipMesh(mesh.Scaled(models.ShipLength))
	}

	opts, err := sceneOptions(cfg.Render)
	if err != nil {
		return err
	}

	logger.Info("starting",
		zap.Uint64("seed", seed),
		zap.String("config", *configPath),
		zap.Int("fps", cfg.Render.FPS),
	)
	return play(world, opts, cfg, logger)
}

// applyFlags lets command-line flags override the config file.
func applyFlags(cfg *config.Config) {
	if *seedFlag != 0 {
		cfg.World.Seed = *seedFlag
	}
	if *targetFPS > 0 {
		cfg.Render.FPS = *targetFPS
	}
	if *debug {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
}

// sceneOptions converts the render config into scene options.
func sceneOptions(rc config.RenderConfig) (render.Options, error) {
	bg, err := rc.BackgroundColor()
	if err != nil {
		return render.Options{}, fmt.Errorf("parse background: %w", err)
	}

	opts := render.DefaultOptions()
	opts.FPS = rc.FPS
	opts.FOV = rc.FOVDegrees * math.Pi / 180
	opts.Palette.Background = bg
	opts.ChaseDistance = rc.ChaseDistance
	opts.ChaseHeight = rc.ChaseHeight
	opts.ChaseFrequency = rc.ChaseFrequency
	opts.ChaseDamping = rc.ChaseDamping
	return opts, nil
}

// command is a key request handled on the frame loop.
type command int

const (
	cmdWireframe command = iota
	cmdScreenshot
)

func play(world *sim.World, opts render.Options, cfg config.Config, logger *zap.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	scene := render.NewScene(width, height, opts)
	hud := render.NewHUD(opts.Palette, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	keys := newControls(keyHold)
	resizes := make(chan [2]int, 1)
	commands := make(chan command, 8)

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-resizes:
				default:
				}
				resizes <- [2]int{ev.Width, ev.Height}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("x"):
					if !ev.IsRepeat {
						commands <- cmdWireframe
					}
				case ev.MatchString("p"):
					if !ev.IsRepeat {
						commands <- cmdScreenshot
					}
				default:
					if a, ok := lookup(ev.MatchString); ok {
						keys.press(a, time.Now(), ev.IsRepeat)
					}
				}

			case uv.KeyReleaseEvent:
				if a, ok := lookup(ev.MatchString); ok {
					keys.release(a)
				}
			}
		}
	}()

	fps := max(cfg.Render.FPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	stats := rate.Sometimes{Interval: cfg.Log.StatsInterval.Duration}
	var snap sim.Snapshot
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			logger.Info("quit",
				zap.Int("score", world.Score()),
				zap.Uint64("frames", world.Frame()),
				zap.Stringer("state", world.State()),
			)
			return nil

		case size := <-resizes:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			scene.Resize(width, height)

		case cmd := <-commands:
			switch cmd {
			case cmdWireframe:
				scene.Wireframe = !scene.Wireframe
			case cmdScreenshot:
				path := fmt.Sprintf("rockfield-%06d.png", world.Frame())
				if err := scene.Screenshot(path); err != nil {
					logger.Warn("screenshot failed", zap.Error(err))
				} else {
					logger.Info("screenshot saved", zap.String("path", path))
				}
			}

		case now := <-ticker.C:
			dt := min(now.Sub(lastFrame).Seconds(), maxFrameTime)
			lastFrame = now

			world.Step(dt, keys.intents(now))
			world.Snapshot(&snap)

			scene.Render(&snap)
			hud.Update(&snap)
			hud.Tick(now)

			area := term.Bounds()
			scene.Draw(term, area)
			hud.Draw(term, area)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}

			stats.Do(func() {
				s := scene.Stats()
				logger.Debug("frame stats",
					zap.Uint64("frame", snap.Frame),
					zap.Float64("fps", hud.FPS()),
					zap.Int("asteroids", len(snap.Asteroids)),
					zap.Int("bullets", len(snap.Bullets)),
					zap.Int("triangles", s.TrianglesDrawn),
					zap.Int("culled", s.MeshesCulled),
				)
			})
		}
	}
}
