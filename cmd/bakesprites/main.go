// Command bakesprites renders GLB models into pre-baked isometric
// sprites plus the models-metadata.json index the game client loads.
// Fresh sprites are skipped unless -force; -serve keeps a live preview
// server up after the bake so a browser can watch results land.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wrenware/isoworld/engine/bake"
	"github.com/wrenware/isoworld/engine/preview"
)

func main() {
	var (
		outDir    = flag.String("out", "assets/models", "sprite output directory")
		force     = flag.Bool("force", false, "rebake models whose sprites are still fresh")
		serveAddr = flag.String("serve", "", "serve a live preview on this address (e.g. :8080)")
	)
	flag.Parse()

	paths, err := collectModels(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatal("no .glb models given (pass files or directories)")
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	var notify bake.Notifier
	var srv *preview.Server
	if *serveAddr != "" {
		srv = preview.NewServer(*outDir, logger)
		if err := srv.Start(*serveAddr); err != nil {
			log.Fatal(err)
		}
		notify = srv
	}

	p := bake.New(notify, logger)
	defer p.Close()

	work := paths
	if !*force {
		stamp := binaryStamp()
		work = nil
		for _, path := range paths {
			if bake.NeedsRebuild(path, *outDir, stamp) {
				work = append(work, path)
			}
		}
	}
	skipped := len(paths) - len(work)

	res, err := p.RunBatch(work, *outDir)
	if err != nil {
		log.Fatal(err)
	}

	for _, mr := range res.Models {
		switch {
		case mr.Err != nil:
			logger.Printf("FAILED %s: %v", mr.Name, mr.Err)
		case !mr.Baked():
			logger.Printf("FAILED %s: no sprites written", mr.Name)
		default:
			logger.Printf("baked %s: %d angle(s), footprint %dx%d",
				mr.Name, len(mr.Meta.Angles), mr.Meta.BaseFootprint.X, mr.Meta.BaseFootprint.Y)
		}
	}
	fmt.Printf("%d baked, %d fresh, %d failed -> %s\n",
		len(res.Models)-res.Failed, skipped, res.Failed, *outDir)

	if srv != nil {
		fmt.Printf("preview at http://%s (ctrl-c to stop)\n", srv.Addr())
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
	}
}

// collectModels expands the argument list into .glb file paths.
// Directory arguments contribute every .glb directly inside them.
func collectModels(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".glb") {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// binaryStamp returns the bake binary's own modification time, so
// sprites older than the tool that baked them get redone.
func binaryStamp() time.Time {
	exe, err := os.Executable()
	if err != nil {
		return time.Time{}
	}
	info, err := os.Stat(exe)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
