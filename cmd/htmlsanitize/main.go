package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/njchilds90/htmlsanitizer/v2"
	"github.com/njchilds90/htmlsanitizer/v2/cssfilter"
	"github.com/njchilds90/htmlsanitizer/v2/internal/httpx"
)

var (
	configFile  = kingpin.Flag("config", "HCL policy file").Short('c').ExistingFile()
	audit       = kingpin.Flag("audit", "Log every element and attribute the sanitizer changes").Bool()
	allowStyles = kingpin.Flag("allow-styles", "Keep whitelisted style declarations").Bool()
	linkify     = kingpin.Flag("linkify", "Turn plain-text URLs into links").Bool()
	maxDepth    = kingpin.Flag("max-depth", "Maximum element nesting, 0 for unlimited").Default("0").Int()
	strict      = kingpin.Flag("strict", "Use the strict policy (basic formatting only)").Bool()

	cleanCmd   = kingpin.Command("clean", "Sanitize markup from files or stdin").Default()
	cleanFiles = cleanCmd.Arg("files", "Files to sanitize, stdin when empty").ExistingFiles()

	stripCmd   = kingpin.Command("strip", "Print the plain text of files or stdin")
	stripFiles = stripCmd.Arg("files", "Files to strip, stdin when empty").ExistingFiles()

	serveCmd     = kingpin.Command("serve", "Serve the sanitizer over HTTP")
	serveAddr    = serveCmd.Flag("addr", "Listen address").Default(":8080").String()
	serveMaxBody = serveCmd.Flag("max-body", "Maximum request body in bytes").Default("1048576").Int64()
)

func main() {
	command := kingpin.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "htmlsanitize",
		Output: os.Stderr,
		Level:  hclog.Info,
	})
	if *audit {
		logger.SetLevel(hclog.Debug)
	}

	p, err := buildPolicy(logger)
	if err != nil {
		kingpin.Fatalf("load policy: %s", err)
	}

	switch command {
	case cleanCmd.FullCommand():
		err = eachInput(*cleanFiles, func(in io.Reader) error {
			out, err := htmlsanitizer.SanitizeReader(in, p)
			if err != nil {
				return err
			}
			_, err = io.WriteString(os.Stdout, out)
			return err
		})
	case stripCmd.FullCommand():
		err = eachInput(*stripFiles, func(in io.Reader) error {
			b, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			out, err := htmlsanitizer.StripTags(string(b))
			if err != nil {
				return err
			}
			_, err = io.WriteString(os.Stdout, out)
			return err
		})
	case serveCmd.FullCommand():
		err = serve(p, logger)
	}
	if err != nil {
		kingpin.Fatalf("%s: %s", command, err)
	}
}

func buildPolicy(logger hclog.Logger) (*htmlsanitizer.Policy, error) {
	var p *htmlsanitizer.Policy
	switch {
	case *configFile != "":
		c, err := htmlsanitizer.LoadConfigFile(*configFile)
		if err != nil {
			return nil, err
		}
		p = c.Policy()
	case *strict:
		p = htmlsanitizer.StrictPolicy()
	default:
		p = htmlsanitizer.DefaultPolicy()
	}
	if *allowStyles {
		p.CSSSanitizer = cssfilter.New()
	}
	if *linkify {
		p.Linkify = true
	}
	if *maxDepth > 0 {
		p.MaxDepth = *maxDepth
	}
	if *audit {
		p.Logger = htmlsanitizer.NewHCLogChangeLogger(logger.Named("audit"))
	}
	return p, nil
}

func eachInput(files []string, fn func(io.Reader) error) error {
	if len(files) == 0 {
		return fn(os.Stdin)
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = fn(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
	}
	return nil
}

func serve(p *htmlsanitizer.Policy, logger hclog.Logger) error {
	srv := &http.Server{
		Addr: *serveAddr,
		Handler: httpx.NewRouter(httpx.Options{
			Policy:       p,
			Logger:       logger.Named("http"),
			MaxBodyBytes: *serveMaxBody,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *serveAddr)
		errCh <- srv.ListenAndServe()
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-ch:
		logger.Info("shutting down", "signal", sig.String())
		return srv.Close()
	}
}
