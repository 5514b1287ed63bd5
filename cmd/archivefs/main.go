package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/tomlin-labs/archivefs/internal/archive"
	"github.com/tomlin-labs/archivefs/internal/config"
	"github.com/tomlin-labs/archivefs/internal/fusebridge"
	"github.com/tomlin-labs/archivefs/internal/version"
)

func main() {
	var configPath string
	var showVersion bool
	var logFile string

	flag.StringVar(&configPath, "config", filepath.Join("config", "config.yaml"), "Path to config yaml file")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.StringVar(&logFile, "log-file", "", "Optional log file path")
	flag.Parse()

	if showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if logFile != "" {
		if err := setupLogFile(logFile); err != nil {
			log.Printf("WARN: could not open log file %q: %v", logFile, err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("FATAL: load config %q: %v", configPath, err)
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("FATAL: invalid config %q: %v", configPath, err)
		fmt.Fprintln(os.Stderr, "Invalid config:", err)
		os.Exit(1)
	}

	log.Printf("archivefs %s", version.Get().String())
	log.Printf("Archive: %s", cfg.ArchivePath)
	log.Printf("Mount point: %s", cfg.MountPoint)

	arc, err := archive.Load(cfg.ArchivePath)
	if err != nil {
		log.Printf("FATAL: load archive %q: %v", cfg.ArchivePath, err)
		fmt.Fprintln(os.Stderr, "Failed to load archive:", err)
		os.Exit(1)
	}
	defer arc.Close()

	root := fusebridge.Root(arc)
	server, err := gofs.Mount(cfg.MountPoint, root, &gofs.Options{
		MountOptions: fuse.MountOptions{
			FsName:     "archivefs",
			Name:       "archivefs",
			ReadOnly:   cfg.ReadOnly,
			AllowOther: false,
		},
	})
	if err != nil {
		log.Printf("FATAL: mount %q: %v", cfg.MountPoint, err)
		fmt.Fprintln(os.Stderr, "Failed to mount:", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("signal received, unmounting %s", cfg.MountPoint)
		_ = server.Unmount()
	}()

	log.Printf("Mounted. Serving until unmounted.")
	server.Wait()
}

func setupLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}
