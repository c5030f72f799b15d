package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/Jon-Bright/wordclock/clock"
	effects "github.com/Jon-Bright/wordclock/effects"
	pixarray "github.com/Jon-Bright/wordclock/pixarray"
	"github.com/peterbourgon/ff/v3"
	log "github.com/sirupsen/logrus"
	"periph.io/x/host/v3"
)

type config struct {
	width        int
	height       int
	layout       string
	minuteLEDs   int
	secondLEDs   int
	secondOffset int
	dialect      string

	ledChip    string
	spiDev     string
	spiSpeed   uint
	pixelOrder string
	mmapFile   string
	brightness int
	tick       time.Duration

	tz          string
	ntpServer   string
	ntpInterval time.Duration

	port     int
	httpPort int

	gpioChip        string
	powerCtrlPin    int
	powerStatusPin  int
	powerStatusWait time.Duration

	mode          string
	status        string
	palette       string
	hourlyPalette bool
	perWordColor  bool
	auroraPreset  string
	seed          int64
	color         string
	fadeTime      time.Duration

	logLevel string
	logJSON  bool
	logFile  string
}

func parseFlags(args []string) (*config, error) {
	var c config
	fs := flag.NewFlagSet("wordclock", flag.ContinueOnError)
	fs.IntVar(&c.width, "width", 11, "Width of the LED matrix")
	fs.IntVar(&c.height, "height", 10, "Height of the LED matrix")
	fs.StringVar(&c.layout, "layout", "serpentine", "How the matrix is wired: one of "+keys(pixarray.StringLayouts))
	fs.IntVar(&c.minuteLEDs, "minuteleds", 4, "The number of minute LEDs after the matrix, 0 for none")
	fs.IntVar(&c.secondLEDs, "secondleds", 0, "The number of second LEDs after the minute LEDs, 0 for none")
	fs.IntVar(&c.secondOffset, "secondoffset", 0, "The second LED showing second zero")
	fs.StringVar(&c.dialect, "dialect", "quarter-past", "How quarters are phrased: one of "+keys(effects.StringDialects))

	fs.StringVar(&c.ledChip, "ledchip", "ws281x", "The type of LED strip to drive: one of ws281x, lpd8806, mmap, terminal, none")
	fs.StringVar(&c.spiDev, "spidev", "", "The SPI port (ws281x, empty for the first) or device (lpd8806, default /dev/spidev0.0)")
	fs.UintVar(&c.spiSpeed, "spispeed", 1000000, "The speed to send data via SPI to LPD8806s, in Hz")
	fs.StringVar(&c.pixelOrder, "order", "GRB", "The color ordering of the pixels")
	fs.StringVar(&c.mmapFile, "mmapfile", "/dev/shm/wordclock", "The file frames are mapped into for -ledchip mmap")
	fs.IntVar(&c.brightness, "brightness", 255, "Global brightness, 0-255")
	fs.DurationVar(&c.tick, "tick", 10*time.Millisecond, "How often the render loop asks the active effect to paint")

	fs.StringVar(&c.tz, "tz", clock.DefaultZone, "The time zone shown")
	fs.StringVar(&c.ntpServer, "ntpserver", "", "An NTP server to take the time from; empty uses the system clock")
	fs.DurationVar(&c.ntpInterval, "ntpinterval", time.Hour, "How often to resync with the NTP server")

	fs.IntVar(&c.port, "port", 24601, "The port the line protocol listens on, 0 to disable")
	fs.IntVar(&c.httpPort, "httpport", 0, "The port the HTTP API listens on, 0 to disable")

	fs.StringVar(&c.gpioChip, "gpiochip", "gpiochip0", "The GPIO chip carrying the power pins")
	fs.IntVar(&c.powerCtrlPin, "powerCtrlPin", -1, "A GPIO pin which, when set high, turns on power for the LEDs. -1 means no such pin exists.")
	fs.IntVar(&c.powerStatusPin, "powerStatusPin", -1, "A GPIO pin which indicates healthy power to the LEDs. -1 means no such pin exists. Only relevant if powerCtrlPin is specified.")
	fs.DurationVar(&c.powerStatusWait, "powerStatusWait", 2*time.Second, "How long to wait for a healthy power signal. Only relevant if powerStatusPin is specified and relevant.")

	fs.StringVar(&c.mode, "mode", "wordclock", "The initial mode")
	fs.StringVar(&c.status, "status", "broker-connected", "The initial connection state shown on the minute LEDs: one of "+keys(effects.StringStates))
	fs.StringVar(&c.palette, "palette", "rainbow", "The initial palette: one of "+strings.Join(effects.PaletteNames(), ", "))
	fs.BoolVar(&c.hourlyPalette, "hourlypalette", false, "Generate a new random palette at the top of every hour")
	fs.BoolVar(&c.perWordColor, "perwordcolor", false, "Give every word its own colour")
	fs.StringVar(&c.auroraPreset, "aurorapreset", "equal", "Aurora colour weighting: one of "+keys(effects.StringWeightPresets))
	fs.Int64Var(&c.seed, "seed", effects.DefaultBorealisSeed, "Seed for the random effects")
	fs.StringVar(&c.color, "color", "FFA050", "The initial mood light colour, RRGGBB")
	fs.DurationVar(&c.fadeTime, "fadetime", 2*time.Second, "How long the mood light takes to fade to a new colour")

	fs.StringVar(&c.logLevel, "loglevel", "info", "Log level: one of trace, debug, info, warn, error")
	fs.BoolVar(&c.logJSON, "logjson", false, "Log as JSON")
	fs.StringVar(&c.logFile, "logfile", "", "Log to this file instead of stderr")
	fs.String("config", "", "A config file with one 'flag value' per line")

	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("WORDCLOCK"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// newController builds every mode on pa and a controller driving them,
// set up as c asks.
func newController(c *config, pa *pixarray.PixArray, src clock.Source, power powerSwitch) (*Controller, error) {
	dialect, err := effects.ParseDialect(c.dialect)
	if err != nil {
		return nil, fmt.Errorf("failed parsing dialect: %w", err)
	}
	preset, err := effects.ParseWeightPreset(c.auroraPreset)
	if err != nil {
		return nil, fmt.Errorf("failed parsing aurora preset: %w", err)
	}
	moodColor, err := parseColor(c.color)
	if err != nil {
		return nil, fmt.Errorf("failed parsing color: %w", err)
	}

	wc := effects.NewWordClock(pa, src, effects.ClockConfig{Dialect: dialect, SecondOffset: c.secondOffset}, c.seed)
	wc.RandomPaletteHourly = c.hourlyPalette
	wc.PerWordColor = c.perWordColor
	mood := effects.NewMoodLight(pa, moodColor, c.fadeTime)
	d := effects.NewDispatcher(pa, effects.NewStatus(pa),
		wc,
		effects.NewBorealis(pa, preset, c.seed),
		effects.NewRainbow(pa, 5*time.Second),
		effects.NewRain(pa, c.seed),
		effects.NewScanBar(pa, 4, 8, 96),
		mood,
	)
	ctl := NewController(pa, d, mood, power, c.seed)
	// The overlay owns the minute ring until the state is broker-connected
	err = ctl.setStatus(c.status)
	if err != nil {
		return nil, fmt.Errorf("failed setting initial status: %w", err)
	}
	err = d.SetMode(c.mode)
	if err != nil {
		return nil, fmt.Errorf("failed setting initial mode: %w", err)
	}
	err = ctl.setPalette(c.palette)
	if err != nil {
		return nil, fmt.Errorf("failed setting initial palette: %w", err)
	}
	return ctl, nil
}

func keys[V any](m map[string]V) string {
	k := make([]string, 0, len(m))
	for s := range m {
		k = append(k, s)
	}
	sort.Strings(k)
	return strings.Join(k, ", ")
}

func setupLogging(c *config) (io.Closer, error) {
	lvl, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	if c.logJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("couldn't open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	}
	if c.ledChip == "terminal" {
		// The screen is ours
		log.SetOutput(io.Discard)
	}
	return nil, nil
}

func openLEDs(c *config, m *pixarray.Matrix, numPixels int) (pixarray.LEDStrip, error) {
	order, ok := pixarray.StringOrders[strings.ToUpper(c.pixelOrder)]
	if !ok {
		return nil, fmt.Errorf("unknown pixel order %q", c.pixelOrder)
	}
	switch c.ledChip {
	case "ws281x":
		_, err := host.Init()
		if err != nil {
			return nil, fmt.Errorf("couldn't initialise periph: %w", err)
		}
		return pixarray.NewWS281x(c.spiDev, numPixels, order)
	case "lpd8806":
		dev := c.spiDev
		if dev == "" {
			dev = "/dev/spidev0.0"
		}
		return pixarray.OpenLPD8806(dev, numPixels, uint32(c.spiSpeed), order)
	case "mmap":
		return pixarray.NewMMapStrip(c.mmapFile, numPixels, order)
	case "terminal":
		return pixarray.NewTerminal(m, c.minuteLEDs, c.secondLEDs)
	case "none":
		return pixarray.NullStrip{}, nil
	}
	return nil, fmt.Errorf("unrecognized LED type %q", c.ledChip)
}

func openClock(ctx context.Context, c *config) (clock.Source, error) {
	sys, err := clock.NewSystem(c.tz)
	if err != nil {
		return nil, err
	}
	if c.ntpServer == "" {
		return sys, nil
	}
	n := clock.NewNTP(c.ntpServer, c.ntpInterval, sys.Location())
	go n.Run(ctx)
	return n, nil
}

func main() {
	c, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Failed parsing flags: %v", err)
	}
	lf, err := setupLogging(c)
	if err != nil {
		log.Fatalf("Failed setting up logging: %v", err)
	}
	if lf != nil {
		defer lf.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	layout, err := pixarray.ParseLayout(c.layout)
	if err != nil {
		log.Fatalf("Failed parsing layout: %v", err)
	}

	m := pixarray.NewMatrix(c.width, c.height, layout)
	leds, err := openLEDs(c, m, m.Count()+c.minuteLEDs+c.secondLEDs)
	if err != nil {
		log.Fatalf("Failed creating %s LEDs: %v", c.ledChip, err)
	}
	defer leds.Close()
	pa := pixarray.NewPixArray(m, c.minuteLEDs, c.secondLEDs, leds)
	pa.SetBrightness(c.brightness)

	src, err := openClock(ctx, c)
	if err != nil {
		log.Fatalf("Failed creating clock: %v", err)
	}

	var power powerSwitch
	pc, err := openPower(c.gpioChip, c.powerCtrlPin, c.powerStatusPin, c.powerStatusWait)
	if err != nil {
		log.Fatalf("Failed initializing power control: %v", err)
	}
	if pc != nil {
		defer pc.Close()
		power = pc
	}

	ctl, err := newController(c, pa, src, power)
	if err != nil {
		log.Fatalf("Failed setting up effects: %v", err)
	}

	if c.port != 0 {
		s, err := NewServer(c.port, ctl)
		if err != nil {
			log.Fatalf("Failed creating server: %v", err)
		}
		go s.Serve(ctx)
	}
	if c.httpPort != 0 {
		hs := newHTTPServer(fmt.Sprintf(":%d", c.httpPort), ctl)
		go func() {
			log.Infof("HTTP API on %s", hs.Addr)
			err := hs.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("HTTP server failed: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			hs.Shutdown(sctx) // Ignore error
		}()
	}

	ctl.Run(ctx, c.tick)
	log.Info("Shutting down")
	pa.Clear()
	err = pa.Write()
	if err != nil {
		log.Warnf("Couldn't blank LEDs: %v", err)
	}
}
