package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	s1isp "github.com/sentinel1/go-s1isp"
)

// logLevel mirrors Python's DEBUG/INFO/WARNING/ERROR/CRITICAL ordering
// so --loglevel/-q/-v/-d behave the way the original tool's flags did.
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarning
	levelError
	levelCritical
)

var currentLogLevel = levelInfo

func parseLogLevel(v string) (logLevel, error) {
	switch strings.ToUpper(v) {
	case "", "INFO":
		return levelInfo, nil
	case "DEBUG":
		return levelDebug, nil
	case "WARNING":
		return levelWarning, nil
	case "ERROR":
		return levelError, nil
	case "CRITICAL":
		return levelCritical, nil
	default:
		return levelInfo, fmt.Errorf("unknown loglevel %q, want DEBUG, INFO, WARNING, ERROR or CRITICAL", v)
	}
}

// logAt writes a line through the stdlib logger iff level meets the
// threshold set by --loglevel/-q/-v/-d.
func logAt(level logLevel, format string, args ...any) {
	if level < currentLogLevel {
		return
	}
	log.Printf(format, args...)
}

// logLevelFromFlags resolves the effective verbosity threshold:
// --loglevel sets it explicitly; -d/-v lower it to DEBUG, -q raises it
// to ERROR. When -q is given together with -v/-d, -q wins.
func logLevelFromFlags(c *cli.Context) (logLevel, error) {
	level, err := parseLogLevel(c.String("loglevel"))
	if err != nil {
		return levelInfo, err
	}
	if c.Bool("quiet") {
		return levelError, nil
	}
	if c.Bool("verbose") || c.Bool("debug") {
		return levelDebug, nil
	}
	return level, nil
}

// udfModeFlag maps the --udf-mode flag value to a driver.UDFMode.
func udfModeFlag(v string) (s1isp.UDFMode, error) {
	switch v {
	case "", "none":
		return s1isp.UDFModeNone, nil
	case "extract":
		return s1isp.UDFModeExtract, nil
	case "decode":
		return s1isp.UDFModeDecode, nil
	default:
		return s1isp.UDFModeNone, fmt.Errorf("unknown udf-mode %q, want none, extract or decode", v)
	}
}

// outputFormatFlag maps the --output-format flag value to an
// s1isp.OutputFormat. xlsx/h5/pkl are explicitly out of scope.
func outputFormatFlag(v string) (s1isp.OutputFormat, error) {
	switch v {
	case "", "json":
		return s1isp.OutputFormatJSON, nil
	case "csv":
		return s1isp.OutputFormatCSV, nil
	default:
		return s1isp.OutputFormatJSON, fmt.Errorf("unknown output-format %q, want json or csv", v)
	}
}

// decodeOneFile dispatches to the generic decoder instantiated for the
// requested platform dialect.
func decodeOneFile(platform, uri, configUri, outdirUri, archiveUri string, format s1isp.OutputFormat, inMemory bool, opts s1isp.DriverOptions) error {
	switch platform {
	case "s1ab":
		return s1isp.DecodeOneFile[s1isp.ECalTypeS1AB](uri, configUri, outdirUri, archiveUri, format, inMemory, opts)
	case "s1cd":
		return s1isp.DecodeOneFile[s1isp.ECalTypeS1CD](uri, configUri, outdirUri, archiveUri, format, inMemory, opts)
	default:
		return fmt.Errorf("unknown platform %q, want s1ab or s1cd", platform)
	}
}

// decodeBatch dispatches to the generic batch decoder instantiated for
// the requested platform dialect.
func decodeBatch(platform, globUri, configUri, outdirUri, archiveUri string, format s1isp.OutputFormat, inMemory bool, opts s1isp.DriverOptions) ([]s1isp.BatchResult, error) {
	switch platform {
	case "s1ab":
		return s1isp.DecodeBatch[s1isp.ECalTypeS1AB](globUri, configUri, outdirUri, archiveUri, format, inMemory, opts)
	case "s1cd":
		return s1isp.DecodeBatch[s1isp.ECalTypeS1CD](globUri, configUri, outdirUri, archiveUri, format, inMemory, opts)
	default:
		return nil, fmt.Errorf("unknown platform %q, want s1ab or s1cd", platform)
	}
}

func driverOptionsFromFlags(c *cli.Context) (s1isp.DriverOptions, error) {
	mode, err := udfModeFlag(c.String("udf-mode"))
	if err != nil {
		return s1isp.DriverOptions{}, err
	}
	return s1isp.DriverOptions{
		BytesOffset: c.Int64("bytes-offset"),
		Skip:        c.Int("skip"),
		MaxCount:    c.Int("maxcount"),
		UDFMode:     mode,
	}, nil
}

// checkOverwrite refuses to clobber an existing local output unless
// --force was given. Remote (tiledb://, s3://, ...) URIs are left to
// the underlying VFS write, which already overwrites unconditionally.
func checkOverwrite(uri string, force bool) error {
	if force || strings.Contains(uri, "://") {
		return nil
	}
	if _, err := os.Stat(uri); err == nil {
		return fmt.Errorf("%s already exists, pass --force to overwrite", uri)
	}
	return nil
}

// recordsOutputUri mirrors the filename batch.go's DecodeOneFile
// derives for the records dump, so --force can be checked up front
// before decoding even starts.
func recordsOutputUri(ispUri, outdirUri string, format s1isp.OutputFormat) string {
	_, file := filepath.Split(ispUri)
	ext := ".json"
	if format == s1isp.OutputFormatCSV {
		ext = ".csv"
	}
	return filepath.Join(outdirUri, file+"-records"+ext)
}

var platformFlag = &cli.StringFlag{
	Name:  "platform",
	Value: "s1ab",
	Usage: "Platform calibration-type dialect: s1ab or s1cd.",
}

var configUriFlag = &cli.StringFlag{
	Name:  "config-uri",
	Usage: "URI or pathname to a TileDB config file.",
}

var outdirUriFlag = &cli.StringFlag{
	Name:  "outdir-uri",
	Usage: "URI or pathname to an output directory.",
}

var archiveUriFlag = &cli.StringFlag{
	Name:  "archive-uri",
	Usage: "URI or pathname to a directory of TileDB telemetry arrays, one per input file. Omit to skip telemetry archiving.",
}

var outputFormatFlagDef = &cli.StringFlag{
	Name:  "output-format",
	Value: "json",
	Usage: "Format for the per-file records dump: json or csv.",
}

var inMemoryFlag = &cli.BoolFlag{
	Name:  "in-memory",
	Usage: "Read the entire contents of the input file into memory before processing.",
}

var udfModeFlagDef = &cli.StringFlag{
	Name:  "udf-mode",
	Value: "none",
	Usage: "How to handle the user data field: none, extract or decode.",
}

var offsetFlag = &cli.Int64Flag{
	Name:  "bytes-offset",
	Usage: "Byte offset to seek to before decoding starts.",
}

var skipFlag = &cli.IntFlag{
	Name:  "skip",
	Usage: "Number of packets to skip after the offset.",
}

var maxCountFlag = &cli.IntFlag{
	Name:  "maxcount",
	Usage: "Maximum number of packets to decode (0 is unbounded).",
}

var forceFlag = &cli.BoolFlag{
	Name:  "force",
	Usage: "Overwrite existing local output files.",
}

// enumValueFlag is accepted for interface parity but has no effect:
// enum-typed fields here are plain Go integer types with no
// name-valued String()/MarshalJSON, so every writer already emits the
// numeric value this flag would otherwise request.
var enumValueFlag = &cli.BoolFlag{
	Name:  "enum-value",
	Usage: "No-op: enum fields are always emitted as their numeric value.",
}

var loglevelFlag = &cli.StringFlag{
	Name:  "loglevel",
	Value: "INFO",
	Usage: "Log verbosity: DEBUG, INFO, WARNING, ERROR or CRITICAL.",
}

var quietFlag = &cli.BoolFlag{
	Name:    "quiet",
	Aliases: []string{"q"},
	Usage:   "Only log errors and above.",
}

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Aliases: []string{"v"},
	Usage:   "Log at DEBUG level.",
}

var debugFlag = &cli.BoolFlag{
	Name:    "debug",
	Aliases: []string{"d"},
	Usage:   "Log at DEBUG level.",
}

func main() {
	app := &cli.App{
		Name:  "s1ispdump",
		Usage: "Decode Sentinel-1 SAR Instrument Source Packet (ISP) streams.",
		Commands: []*cli.Command{
			{
				Name:  "decode",
				Usage: "Decode a single ISP file.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "isp-uri",
						Usage:    "URI or pathname to an ISP file.",
						Required: true,
					},
					platformFlag,
					configUriFlag,
					outdirUriFlag,
					archiveUriFlag,
					outputFormatFlagDef,
					inMemoryFlag,
					udfModeFlagDef,
					offsetFlag,
					skipFlag,
					maxCountFlag,
					forceFlag,
					enumValueFlag,
					loglevelFlag,
					quietFlag,
					verboseFlag,
					debugFlag,
				},
				Action: func(c *cli.Context) error {
					level, err := logLevelFromFlags(c)
					if err != nil {
						return err
					}
					currentLogLevel = level

					opts, err := driverOptionsFromFlags(c)
					if err != nil {
						return err
					}
					format, err := outputFormatFlag(c.String("output-format"))
					if err != nil {
						return err
					}
					recordsUri := recordsOutputUri(c.String("isp-uri"), c.String("outdir-uri"), format)
					if err := checkOverwrite(recordsUri, c.Bool("force")); err != nil {
						return err
					}

					logAt(levelInfo, "decoding: %s", c.String("isp-uri"))
					if err := decodeOneFile(c.String("platform"), c.String("isp-uri"), c.String("config-uri"), c.String("outdir-uri"), c.String("archive-uri"), format, c.Bool("in-memory"), opts); err != nil {
						return err
					}
					logAt(levelInfo, "finished: %s", c.String("isp-uri"))
					return nil
				},
			},
			{
				Name:  "decode-batch",
				Usage: "Decode every ISP file matched by a glob pattern, concurrently.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "glob-uri",
						Usage:    "Glob pattern matching ISP files, e.g. /data/*.dat.",
						Required: true,
					},
					platformFlag,
					configUriFlag,
					outdirUriFlag,
					archiveUriFlag,
					outputFormatFlagDef,
					inMemoryFlag,
					udfModeFlagDef,
					offsetFlag,
					skipFlag,
					maxCountFlag,
					enumValueFlag,
					loglevelFlag,
					quietFlag,
					verboseFlag,
					debugFlag,
				},
				Action: func(c *cli.Context) error {
					level, err := logLevelFromFlags(c)
					if err != nil {
						return err
					}
					currentLogLevel = level

					opts, err := driverOptionsFromFlags(c)
					if err != nil {
						return err
					}
					format, err := outputFormatFlag(c.String("output-format"))
					if err != nil {
						return err
					}
					results, err := decodeBatch(c.String("platform"), c.String("glob-uri"), c.String("config-uri"), c.String("outdir-uri"), c.String("archive-uri"), format, c.Bool("in-memory"), opts)
					if err != nil {
						return err
					}
					failed := 0
					for _, r := range results {
						if r.Err != nil {
							failed++
							logAt(levelError, "failed: %s: %v", r.Uri, r.Err)
						} else {
							logAt(levelInfo, "finished: %s", r.Uri)
						}
					}
					if failed > 0 {
						return fmt.Errorf("%d of %d files failed to decode", failed, len(results))
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
