package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/gpt-load-console/app/client"
	"github.com/umputun/gpt-load-console/app/detect"
	"github.com/umputun/gpt-load-console/app/enum"
	"github.com/umputun/gpt-load-console/app/format"
	"github.com/umputun/gpt-load-console/app/server"
	"github.com/umputun/gpt-load-console/app/store"
	"github.com/umputun/gpt-load-console/app/theme"
)

// BackendOptions locate the gpt-load api.
type BackendOptions struct {
	URL     string        `long:"url" env:"URL" default:"http://localhost:3001/api" description:"gpt-load api root"`
	Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"backend request timeout"`
}

func (b BackendOptions) client() *client.Client {
	return client.New(client.Config{BaseURL: b.URL, Timeout: b.Timeout})
}

// ServerCmd implements the server subcommand
type ServerCmd struct {
	DB string `short:"d" long:"db" env:"CONSOLE_DB" default:"console.db" description:"database URL (sqlite file or postgres://...)"`

	Backend BackendOptions `group:"backend" namespace:"backend" env-namespace:"CONSOLE_BACKEND"`

	Server struct {
		Address         string        `long:"address" env:"ADDRESS" default:":8080" description:"server listen address"`
		ReadTimeout     time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read timeout"`
		WriteTimeout    time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30s" description:"write timeout"`
		IdleTimeout     time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"60s" description:"idle timeout"`
		ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"10s" description:"graceful shutdown timeout"`
		BaseURL         string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /console)"`
		BodySizeLimit   int64         `long:"body-limit" env:"BODY_LIMIT" default:"1048576" description:"max request body size in bytes"`
		RequestsPerSec  int64         `long:"rps" env:"RPS" default:"1000" description:"max requests per second"`
	} `group:"server" namespace:"server" env-namespace:"CONSOLE_SERVER"`

	Theme struct {
		Key string `long:"key" env:"KEY" default:"gpt-load-theme-mode" description:"storage key of the theme mode"`
	} `group:"theme" namespace:"theme" env-namespace:"CONSOLE_THEME"`

	Cache struct {
		Size int `long:"size" env:"SIZE" default:"1000" description:"max cached preference keys"`
	} `group:"cache" namespace:"cache" env-namespace:"CONSOLE_CACHE"`

	Debug bool `long:"dbg" env:"CONSOLE_DEBUG" description:"debug mode"`

	ctx context.Context
}

// Execute runs the server command
func (s *ServerCmd) Execute(_ []string) error {
	setupLogs(s.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if s.ctx == nil {
		s.ctx = contextWithSignals()
	}
	return s.run(s.ctx)
}

func (s *ServerCmd) run(ctx context.Context) error {
	baseURL, err := validateBaseURL(s.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	backend := s.Backend.client()
	log.Printf("[INFO] starting gpt-load console on %s, backend %s", s.Server.Address, backend.BaseURL())
	if baseURL != "" {
		log.Printf("[INFO] base URL: %s", baseURL)
	}

	db, err := store.New(s.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	kv, err := store.NewCached(db, s.Cache.Size)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer kv.Close()

	srv, err := server.New(kv, backend, server.Config{
		Address:         s.Server.Address,
		ReadTimeout:     s.Server.ReadTimeout,
		WriteTimeout:    s.Server.WriteTimeout,
		IdleTimeout:     s.Server.IdleTimeout,
		ShutdownTimeout: s.Server.ShutdownTimeout,
		Version:         revision,
		BaseURL:         baseURL,
		ThemeKey:        s.Theme.Key,
		BodySizeLimit:   s.Server.BodySizeLimit,
		RequestsPerSec:  s.Server.RequestsPerSec,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Printf("[DEBUG] preference cache %+v", kv.Stats())
	return nil
}

// validateBaseURL normalizes the base URL, it must start with a slash and has no trailing slash.
func validateBaseURL(u string) (string, error) {
	if u == "" {
		return "", nil
	}
	if !strings.HasPrefix(u, "/") {
		return "", fmt.Errorf("base URL %q must start with /", u)
	}
	return strings.TrimRight(u, "/"), nil
}

// ThemeOptions are shared by theme subcommands.
type ThemeOptions struct {
	DB     string `short:"d" long:"db" env:"CONSOLE_DB" default:"console.db" description:"database URL (sqlite file or postgres://...)"`
	Key    string `long:"key" env:"CONSOLE_THEME_KEY" default:"gpt-load-theme-mode" description:"storage key of the theme mode"`
	Device string `long:"device" env:"CONSOLE_THEME_DEVICE" description:"browser device id, the CLI's own mode if empty"`
	EnvVar string `long:"env-var" default:"GPT_LOAD_COLOR_SCHEME" description:"env variable overriding the detected color scheme"`
	Debug  bool   `long:"dbg" env:"CONSOLE_DEBUG" description:"debug mode"`

	out    io.Writer
	signal theme.SystemSignal // detector chain if nil
}

// ThemeCmd groups theme subcommands
type ThemeCmd struct {
	Get     ThemeGetCmd     `command:"get" description:"print mode, system and effective theme"`
	Set     ThemeSetCmd     `command:"set" description:"set the theme mode"`
	Cycle   ThemeCycleCmd   `command:"cycle" description:"advance the mode auto -> light -> dark -> auto"`
	Watch   ThemeWatchCmd   `command:"watch" description:"print the effective theme on every change"`
	Reset   ThemeResetCmd   `command:"reset" description:"forget the stored mode, back to auto"`
	Devices ThemeDevicesCmd `command:"devices" description:"list browser devices with a stored mode"`
}

// scope returns the key prefix of the addressed preferences, a browser device or the cli.
func (o *ThemeOptions) scope() (string, error) {
	if o.Device == "" {
		return "cli", nil
	}
	id, err := uuid.Parse(o.Device)
	if err != nil {
		return "", fmt.Errorf("invalid device id %q: %w", o.Device, err)
	}
	return store.DevicesPrefix + id.String(), nil
}

// open makes an initialized theme store over the database, close releases both.
func (o *ThemeOptions) open(ctx context.Context, signal theme.SystemSignal) (st *theme.Store, closeFn func(), err error) {
	scope, err := o.scope()
	if err != nil {
		return nil, nil, err
	}

	db, err := store.New(o.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	st = theme.New(store.NewScoped(db, scope), signal, theme.Options{Key: o.Key})
	st.Initialize(ctx)
	return st, func() {
		st.Dispose()
		if err := db.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}, nil
}

func (o *ThemeOptions) systemSignal() theme.SystemSignal {
	if o.signal != nil {
		return o.signal
	}
	return detect.Default(o.EnvVar)
}

func (o *ThemeOptions) writer() io.Writer {
	if o.out != nil {
		return o.out
	}
	return os.Stdout
}

// printState writes the theme state, the effective theme highlighted on terminals.
func (o *ThemeOptions) printState(st *theme.Store) {
	w := o.writer()
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	fmt.Fprintf(w, "mode:      %s\n", st.Mode())
	fmt.Fprintf(w, "system:    %s\n", st.SystemTheme())
	fmt.Fprintf(w, "effective: %s\n", style.Render(st.EffectiveTheme().String()))
}

// ThemeGetCmd implements theme get
type ThemeGetCmd struct {
	ThemeOptions
}

// Execute prints the theme state
func (c *ThemeGetCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	st, closeFn, err := c.open(context.Background(), c.systemSignal())
	if err != nil {
		return err
	}
	defer closeFn()
	c.printState(st)
	return nil
}

// ThemeSetCmd implements theme set
type ThemeSetCmd struct {
	ThemeOptions

	Args struct {
		Mode string `positional-arg-name:"mode" description:"auto, light or dark"`
	} `positional-args:"yes" required:"yes"`
}

// Execute sets the mode
func (c *ThemeSetCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	mode, ok := enum.ThemeModeExact(c.Args.Mode)
	if !ok {
		return fmt.Errorf("invalid theme mode %q, expected one of %s", c.Args.Mode, strings.Join(enum.ThemeModeNames, ", "))
	}
	st, closeFn, err := c.open(context.Background(), c.systemSignal())
	if err != nil {
		return err
	}
	defer closeFn()
	st.SetMode(context.Background(), mode)
	log.Printf("[INFO] theme mode set to %s", mode)
	c.printState(st)
	return nil
}

// ThemeCycleCmd implements theme cycle
type ThemeCycleCmd struct {
	ThemeOptions
}

// Execute advances the mode
func (c *ThemeCycleCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	st, closeFn, err := c.open(context.Background(), c.systemSignal())
	if err != nil {
		return err
	}
	defer closeFn()
	st.CycleMode(context.Background())
	log.Printf("[INFO] theme mode cycled to %s", st.Mode())
	c.printState(st)
	return nil
}

// ThemeWatchCmd implements theme watch
type ThemeWatchCmd struct {
	ThemeOptions

	Interval time.Duration `long:"interval" default:"2s" description:"system preference poll interval"`

	ctx context.Context
}

// Execute prints the effective theme now and on every change, until interrupted
func (c *ThemeWatchCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	if c.ctx == nil {
		c.ctx = contextWithSignals()
	}

	st, closeFn, err := c.open(c.ctx, detect.NewWatcher(c.systemSignal(), c.Interval))
	if err != nil {
		return err
	}
	defer closeFn()

	w := c.writer()
	unsubscribe := st.Watch(func(t enum.ActualTheme) {
		fmt.Fprintf(w, "%s %s\n", time.Now().Format(time.TimeOnly), t)
	})
	defer unsubscribe()

	<-c.ctx.Done()
	return nil
}

// ThemeResetCmd implements theme reset
type ThemeResetCmd struct {
	ThemeOptions
}

// Execute deletes the stored mode of the scope
func (c *ThemeResetCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	scope, err := c.scope()
	if err != nil {
		return err
	}
	db, err := store.New(c.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	key := store.NewScoped(db, scope).Key(c.Key)
	if err := db.Delete(context.Background(), key); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to reset theme mode: %w", err)
	}
	log.Printf("[INFO] theme mode of %s reset", scope)
	fmt.Fprintf(c.writer(), "theme mode reset to %s\n", enum.ThemeModeAuto)
	return nil
}

// ThemeDevicesCmd implements theme devices
type ThemeDevicesCmd struct {
	ThemeOptions
}

// Execute prints device id, stored mode and update time of every browser device
func (c *ThemeDevicesCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	db, err := store.New(c.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	entries, err := db.List(ctx, store.DevicesPrefix)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}
	tw := tabwriter.NewWriter(c.writer(), 0, 4, 2, ' ', 0)
	for _, e := range entries {
		device, ok := strings.CutSuffix(strings.TrimPrefix(e.Key, store.DevicesPrefix), "/"+c.Key)
		if !ok {
			continue
		}
		val, err := db.Get(ctx, e.Key)
		if err != nil {
			log.Printf("[WARN] can't read %s: %v", e.Key, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", device, val, e.UpdatedAt.Format(time.DateTime))
	}
	return tw.Flush() //nolint:wrapcheck // flush only
}

// SettingsOptions are shared by settings subcommands.
type SettingsOptions struct {
	Backend BackendOptions `group:"backend" namespace:"backend" env-namespace:"CONSOLE_BACKEND"`
	Debug   bool           `long:"dbg" env:"CONSOLE_DEBUG" description:"debug mode"`

	out io.Writer
}

func (o *SettingsOptions) client() *client.Client {
	res := o.Backend.client()
	log.Printf("[DEBUG] backend %s", res.BaseURL())
	return res
}

func (o *SettingsOptions) writer() io.Writer {
	if o.out != nil {
		return o.out
	}
	return os.Stdout
}

// SettingsCmd groups settings subcommands
type SettingsCmd struct {
	List         SettingsListCmd         `command:"list" description:"print system settings"`
	ChannelTypes SettingsChannelTypesCmd `command:"channel-types" description:"print supported channel types"`
	Apply        SettingsApplyCmd        `command:"apply" description:"update settings from a yaml, json, toml or ini file"`
}

// SettingsListCmd implements settings list
type SettingsListCmd struct {
	SettingsOptions

	Format string `long:"format" short:"f" default:"text" description:"output format: text, yaml, json, toml or ini"`
}

// Execute prints settings in the requested format
func (c *SettingsListCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	if err := checkFormat(c.Format); err != nil {
		return err
	}
	categories, err := c.client().GetSettings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return writeSettings(c.writer(), categories, c.Format)
}

// writeSettings renders settings. json keeps categories with metadata, other data formats
// write a flat key to value map usable by settings apply.
func writeSettings(w io.Writer, categories []client.SettingCategory, outFormat string) error {
	switch outFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(categories); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		return nil
	case "text", "":
		header := lipgloss.NewRenderer(w).NewStyle().Bold(true)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for i, cat := range categories {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintln(tw, header.Render(cat.CategoryName))
			for _, s := range cat.Settings {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.Key, s.ValueString(), s.Name)
			}
		}
		return tw.Flush() //nolint:wrapcheck // flush only
	}

	if err := checkFormat(outFormat); err != nil {
		return err
	}
	values := map[string]any{}
	for _, cat := range categories {
		for _, s := range cat.Settings {
			values[s.Key] = s.Value
		}
	}
	if err := format.NewService().Encode(w, outFormat, values); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}

// checkFormat accepts text and the data formats of settings files.
func checkFormat(outFormat string) error {
	svc := format.NewService()
	if outFormat == "text" || outFormat == "" || svc.IsValidFormat(outFormat) {
		return nil
	}
	return fmt.Errorf("unknown format %q, expected text or one of %s", outFormat, strings.Join(svc.SupportedFormats(), ", "))
}

// SettingsChannelTypesCmd implements settings channel-types
type SettingsChannelTypesCmd struct {
	SettingsOptions
}

// Execute prints channel types, one per line
func (c *SettingsChannelTypesCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	types, err := c.client().GetChannelTypes(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get channel types: %w", err)
	}
	for _, t := range types {
		fmt.Fprintln(c.writer(), t)
	}
	return nil
}

// SettingsApplyCmd implements settings apply
type SettingsApplyCmd struct {
	SettingsOptions

	File   string `long:"file" short:"f" required:"true" description:"settings file, format by extension (.yml, .json, .toml, .ini)"`
	DryRun bool   `long:"dry-run" description:"print the update without sending it"`
}

// Execute validates the file against current settings and sends the update
func (c *SettingsApplyCmd) Execute(_ []string) error {
	setupLogs(c.Debug)

	formats := format.NewService()
	fileFormat, err := formats.FormatOf(c.File)
	if err != nil {
		return fmt.Errorf("settings file: %w", err)
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	values, err := formats.Decode(fileFormat, data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}
	if len(values) == 0 {
		return errors.New("no settings to apply")
	}

	cl := c.client()
	categories, err := cl.GetSettings(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	payload, err := settingsPayload(categories, values)
	if err != nil {
		return err
	}

	if c.DryRun {
		return writeSettings(c.writer(), []client.SettingCategory{payloadCategory(categories, payload)}, "text")
	}
	if err := cl.UpdateSettings(context.Background(), payload); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	log.Printf("[INFO] applied %d settings from %s", len(payload), c.File)
	fmt.Fprintf(c.writer(), "applied %d settings\n", len(payload))
	return nil
}

// settingsPayload converts file values to the types of known settings, unknown keys are rejected.
func settingsPayload(categories []client.SettingCategory, values map[string]any) (client.SettingsUpdatePayload, error) {
	res := client.SettingsUpdatePayload{}
	var unknown []string
	for key, v := range values {
		s, ok := client.Find(categories, key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		parsed, err := client.ParseValue(s.Type, fmt.Sprint(v))
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
		res[key] = parsed
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown settings: %s", strings.Join(unknown, ", "))
	}
	return res, nil
}

// payloadCategory makes a pseudo category of the pending changes for display.
func payloadCategory(categories []client.SettingCategory, payload client.SettingsUpdatePayload) client.SettingCategory {
	res := client.SettingCategory{CategoryName: "pending changes"}
	for _, cat := range categories {
		for _, s := range cat.Settings {
			if v, ok := payload[s.Key]; ok {
				s.Value = v
				res.Settings = append(res.Settings, s)
			}
		}
	}
	return res
}
