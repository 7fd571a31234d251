package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Exit codes
const (
	exitOK          = 0
	exitRuntimeErr  = 1 // output or render failure
	exitInvalidArgs = 2 // bad configuration or unknown scene
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// writerLogger implements core.Logger on top of an io.Writer
type writerLogger struct {
	w io.Writer
}

func (l writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

// run executes one render and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	errLog := log.New(stderr, "", log.LstdFlags)
	logger := writerLogger{w: stdout}

	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		errLog.Printf("Configuration error: %v", err)
		return exitInvalidArgs
	}

	selectedScene, err := createScene(cfg)
	if err != nil {
		errLog.Printf("Scene error: %v", err)
		return exitInvalidArgs
	}
	logger.Printf("Using %s scene (%d shapes)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	// Open the output before rendering so a bad path fails fast
	file, err := os.Create(cfg.Output)
	if err != nil {
		errLog.Printf("Error creating output file: %v", err)
		return exitRuntimeErr
	}

	r, err := renderer.NewRenderer(selectedScene, cfg.RenderConfig(), logger)
	if err != nil {
		file.Close()
		errLog.Printf("Renderer error: %v", err)
		return exitInvalidArgs
	}

	frame, _, err := r.Render(ctx)
	if err != nil {
		file.Close()
		errLog.Printf("Render failed: %v", err)
		return exitRuntimeErr
	}

	if err := output.WritePPM(file, frame); err != nil {
		errLog.Printf("Error saving PPM: %v", err)
		return exitRuntimeErr
	}
	logger.Printf("Render saved as %s\n", cfg.Output)

	if err := publish(ctx, cfg, frame, logger); err != nil {
		errLog.Printf("%v", err)
		return exitRuntimeErr
	}
	return exitOK
}

// createScene builds the configured built-in scene with any camera overrides
func createScene(cfg config.Config) (*scene.Scene, error) {
	return scene.Create(cfg.Scene, cfg.Capacity, cfg.Camera)
}

// publish writes the optional preview and uploads results when configured
func publish(ctx context.Context, cfg config.Config, frame *renderer.Frame, logger core.Logger) error {
	var preview bytes.Buffer
	if cfg.PreviewPath != "" {
		if err := output.EncodePreview(&preview, frame, cfg.PreviewWidth); err != nil {
			return err
		}
		if err := os.WriteFile(cfg.PreviewPath, preview.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		logger.Printf("Preview saved as %s\n", cfg.PreviewPath)
	}

	if !cfg.UploadEnabled() {
		return nil
	}

	uploader, err := output.NewS3Uploader(cfg.S3, logger)
	if err != nil {
		return err
	}
	return upload(ctx, uploader, cfg, preview.Bytes())
}

// upload sends the image and, if rendered, the preview
func upload(ctx context.Context, uploader *output.S3Uploader, cfg config.Config, preview []byte) error {
	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		return fmt.Errorf("reading %s for upload: %w", cfg.Output, err)
	}
	if err := uploader.Upload(ctx, filepath.Base(cfg.Output), output.PPMContentType, data); err != nil {
		return err
	}

	if len(preview) > 0 {
		return uploader.Upload(ctx, filepath.Base(cfg.PreviewPath), output.PNGContentType, preview)
	}
	return nil
}
