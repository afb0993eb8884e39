package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/awsl-project/pake/internal/config"
	"github.com/awsl-project/pake/internal/desktop"
	"github.com/awsl-project/pake/internal/version"
)

// getDefaultDataDir returns the default data directory path (~/.config/pake)
func getDefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to current directory if the config dir is unavailable
		return "."
	}
	return filepath.Join(dir, "pake")
}

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to pake.json or pake.yaml (default: embedded config)")
	dataDir := flag.String("data", "", "Data directory for window state and logs (default: ~/.config/pake)")
	showVersion := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("pake", version.Full())
		os.Exit(0)
	}

	// Determine data directory: CLI flag > env var > default
	var dataDirPath string
	if *dataDir != "" {
		dataDirPath = *dataDir
	} else if envDataDir := os.Getenv("PAKE_DATA_DIR"); envDataDir != "" {
		dataDirPath = envDataDir
	} else {
		dataDirPath = getDefaultDataDir()
	}
	if err := os.MkdirAll(dataDirPath, 0755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", dataDirPath, err)
	}

	logPath := filepath.Join(dataDirPath, "pake.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Warning: Failed to open log file %s: %v", logPath, err)
	} else {
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	}

	desktop.PrepareEnvironment(runtime.GOOS)

	// Config: CLI flag > env var > embedded default
	path := *configPath
	if path == "" {
		path = os.Getenv("PAKE_CONFIG")
	}
	var cfg *config.LaunchConfig
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting %s %s", cfg.Name, version.Info())
	log.Printf("Data directory: %s", dataDirPath)
	log.Printf("  Log file: %s", logPath)
	log.Printf("  URL: %s", cfg.URL)

	launcher, err := desktop.NewLauncher(desktop.Options{
		Config:   cfg,
		DataDir:  dataDirPath,
		StateDSN: os.Getenv("PAKE_STATE_DSN"),
		Args:     append([]string{os.Args[0]}, flag.Args()...),
	})
	if err != nil {
		log.Fatalf("Failed to initialize desktop app: %v", err)
	}

	if err := launcher.Run(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if launcher.RestartRequested() {
		relaunch()
	}
}

// relaunch starts a fresh copy of this executable with the same arguments
func relaunch() {
	exe, err := os.Executable()
	if err != nil {
		log.Printf("Failed to locate executable for restart: %v", err)
		return
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to restart: %v", err)
		return
	}
	log.Printf("Restarted as pid %d", cmd.Process.Pid)
}
