package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Options is the command set of the console.
type Options struct {
	Server   ServerCmd   `command:"server" description:"run the web console"`
	Theme    ThemeCmd    `command:"theme" description:"show and change the theme mode"`
	Settings SettingsCmd `command:"settings" description:"manage gpt-load system settings"`
}

var revision = "unknown"

func main() {
	fmt.Printf("gpt-load-console %s\n", revision)

	if err := loadEnvFile(os.Getenv("CONSOLE_ENV_FILE")); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	var opts Options
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

// loadEnvFile adds variables from the dotenv file to the environment, set variables win.
// Empty path means ".env", which may be absent.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func setupLogs(debug bool) {
	log.Setup(log.Msec)
	if debug {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
}

// contextWithSignals returns a context canceled on SIGTERM or SIGINT.
func contextWithSignals() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel)
	return ctx
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			switch sig {
			case syscall.SIGQUIT:
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
			case syscall.SIGTERM, syscall.SIGINT:
				cancel()
			}
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
