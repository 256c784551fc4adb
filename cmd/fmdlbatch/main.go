package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fmdl-tool/internal/batch"
	"fmdl-tool/internal/config"
	"fmdl-tool/internal/logging"
	"fmdl-tool/internal/mathutil"
	"fmdl-tool/internal/preview"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to fmdltool.json")
	dir := flag.String("dir", ".", "Directory scanned for *.fmdl files")
	outputDir := flag.String("output", "", "Output directory for manifest and previews (default: -dir)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	withPreview := flag.Bool("preview", false, "Write a point-cloud preview per file")
	format := flag.String("format", "", "Preview format: webp or tga (default: webp)")
	camera := flag.String("camera", "", "Preview camera: front, top, side (default: three-quarter)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:     *outputDir,
		Workers:       *workers,
		PreviewFormat: *format,
	})
	if cfg.OutputDir == "" {
		cfg.OutputDir = *dir
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := batch.Find(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No .fmdl files found.")
		os.Exit(0)
	}

	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	render := preview.DefaultOptions()
	render.Size = cfg.PreviewSize
	render.Supersample = cfg.Supersample
	render.Camera = mathutil.CameraByName(*camera)

	results := batch.Run(batch.Config{
		InputDir:      *dir,
		OutputDir:     cfg.OutputDir,
		Decode:        opts,
		Preview:       *withPreview,
		Render:        render,
		Format:        cfg.PreviewFormat,
		Workers:       cfg.Workers,
		Logger:        log,
		ProgressEvery: 2 * time.Second,
	}, files)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	manifest := batch.NewManifest(results)
	fmt.Printf("Decoded: %d/%d\n", manifest.Succeeded, manifest.Total)

	if manifest.Failed > 0 {
		fmt.Printf("\nFailed (%d):\n", manifest.Failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			if shown == 20 {
				break
			}
			fmt.Printf("  %s: %s\n", r.File, r.Error)
			shown++
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if manifest.Failed > 0 {
		os.Exit(1)
	}
}
