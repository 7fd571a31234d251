// Package config turns command line flags and an optional dotenv file into a
// validated render configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete configuration of one render run
type Config struct {
	Output       string // Path of the P6 image
	Width        int
	Height       int
	Scene        string
	MaxDepth     int
	Workers      int // 0 = use CPU count
	TileSize     int
	Capacity     int // Maximum number of shapes in the scene
	PreviewPath  string
	PreviewWidth int

	// Camera holds only the camera fields set explicitly, so each scene keeps
	// its own camera otherwise
	Camera scene.CameraOverrides

	S3 output.S3Config
}

// Default returns the configuration used when no flags or file are given
func Default() Config {
	render := renderer.DefaultRenderConfig()
	return Config{
		Output:       "image.ppm",
		Width:        render.Width,
		Height:       render.Height,
		Scene:        "default",
		MaxDepth:     render.MaxDepth,
		Workers:      render.NumWorkers,
		TileSize:     render.TileSize,
		Capacity:     scene.DefaultCapacity,
		PreviewWidth: 360,
	}
}

// RenderConfig returns the renderer settings of c
func (c Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		Width:      c.Width,
		Height:     c.Height,
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
		MaxDepth:   c.MaxDepth,
	}
}

// UploadEnabled reports whether rendered files should be sent to S3
func (c Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}

// Validate checks ranges that the flag parsers cannot
func (c Config) Validate() error {
	switch {
	case c.Output == "":
		return fmt.Errorf("%w: empty output path", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: negative depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d must be positive", ErrInvalidConfig, c.TileSize)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d must be positive", ErrInvalidConfig, c.Capacity)
	case c.PreviewWidth < 0:
		return fmt.Errorf("%w: negative preview width %d", ErrInvalidConfig, c.PreviewWidth)
	}

	if f := c.Camera.FocalLength; f != nil && (!(*f > 0) || math.IsInf(*f, 1)) {
		return fmt.Errorf("%w: focal length %v must be positive", ErrInvalidConfig, *f)
	}
	if l := c.Camera.Location; l != nil && !l.IsFinite() {
		return fmt.Errorf("%w: camera location %v must be finite", ErrInvalidConfig, *l)
	}
	return nil
}

// ParseVec3 parses a comma separated "x,y,z" triple
func ParseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var xyz [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// vec3Value is a flag.Value for "x,y,z" triples
type vec3Value struct {
	target **core.Vec3
}

func (v vec3Value) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	l := *v.target
	return fmt.Sprintf("%g,%g,%g", l.X, l.Y, l.Z)
}

func (v vec3Value) Set(s string) error {
	parsed, err := ParseVec3(s)
	if err != nil {
		return err
	}
	*v.target = &parsed
	return nil
}

// floatPtrValue is a flag.Value that stays nil until set
type floatPtrValue struct {
	target **float64
}

func (v floatPtrValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return strconv.FormatFloat(**v.target, 'g', -1, 64)
}

func (v floatPtrValue) Set(s string) error {
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v.target = &parsed
	return nil
}

// fileKeys maps dotenv keys to the flag each one provides a default for
var fileKeys = []struct {
	key  string
	flag string
}{
	{"RT_OUT", "out"},
	{"RT_WIDTH", "width"},
	{"RT_HEIGHT", "height"},
	{"RT_FOCAL", "focal"},
	{"RT_CAMERA", "camera"},
	{"RT_DEPTH", "depth"},
	{"RT_SCENE", "scene"},
	{"RT_WORKERS", "workers"},
	{"RT_TILE", "tile"},
	{"RT_CAPACITY", "capacity"},
	{"RT_PREVIEW", "preview"},
	{"RT_PREVIEW_WIDTH", "preview-width"},
	{"S3_BUCKET", "s3-bucket"},
	{"S3_REGION", "s3-region"},
	{"S3_ENDPOINT", "s3-endpoint"},
	{"S3_PREFIX", "s3-prefix"},
}

// NewFlagSet registers every option on a new flag set writing into cfg
func NewFlagSet(name string, cfg *Config) (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&cfg.Output, "out", cfg.Output, "Output P6 image path")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.Var(floatPtrValue{&cfg.Camera.FocalLength}, "focal", "Camera focal length (default: scene camera, 3 for the default scene)")
	fs.Var(vec3Value{&cfg.Camera.Location}, "camera", "Camera location x,y,z (default: scene camera, 0,2,15 for the default scene)")
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum reflection depth")
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Built-in scene name")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = use CPU count)")
	fs.IntVar(&cfg.TileSize, "tile", cfg.TileSize, "Tile size in pixels")
	fs.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Maximum number of shapes in the scene")
	fs.StringVar(&cfg.PreviewPath, "preview", cfg.PreviewPath, "Also write a PNG preview to this path")
	fs.IntVar(&cfg.PreviewWidth, "preview-width", cfg.PreviewWidth, "Maximum preview width in pixels")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "Upload results to this S3 bucket")
	fs.StringVar(&cfg.S3.Region, "s3-region", cfg.S3.Region, "S3 region")
	fs.StringVar(&cfg.S3.Endpoint, "s3-endpoint", cfg.S3.Endpoint, "S3-compatible endpoint URL")
	fs.StringVar(&cfg.S3.Prefix, "s3-prefix", cfg.S3.Prefix, "Key prefix for uploaded objects")
	configFile := fs.String("config", "", "Dotenv file with default values (RT_*, S3_* keys)")
	help := fs.Bool("help", false, "Show help information")

	return fs, configFile, help
}

// Load parses args (without the program name). Values from the -config
// file apply only to flags not given on the command line. flag.ErrHelp is
// returned after printing usage when -help is given.
func Load(args []string, out io.Writer) (Config, error) {
	cfg := Default()
	fs, configFile, help := NewFlagSet("raytracer", &cfg)
	fs.SetOutput(out)
	fs.Usage = func() { PrintUsage(out, fs) }

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if *help {
		fs.Usage()
		return cfg, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidConfig, fs.Args())
	}

	if *configFile != "" {
		if err := applyFile(fs, &cfg, *configFile); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFile reads a dotenv file without touching the process environment
func applyFile(fs *flag.FlagSet, cfg *Config, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for _, k := range fileKeys {
		value, ok := values[k.key]
		if !ok || explicit[k.flag] {
			continue
		}
		if err := fs.Set(k.flag, value); err != nil {
			return fmt.Errorf("%w: %s=%q in %s: %v", ErrInvalidConfig, k.key, value, path, err)
		}
	}

	// Credentials have no flags
	cfg.S3.AccessKey = values["S3_ACCESS_KEY"]
	cfg.S3.SecretKey = values["S3_SECRET_KEY"]
	return nil
}

// PrintUsage writes the help text
func PrintUsage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Whitted Raytracer")
	fmt.Fprintln(out, "Usage: raytracer [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(out, "  %-9s - %s\n", info.ID, info.Description)
	}
}
