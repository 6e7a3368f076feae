package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kansasdcf/legacyrec/compare"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/internal/logging"
	"github.com/kansasdcf/legacyrec/locale"
	"github.com/kansasdcf/legacyrec/serializer"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg      locale.Config
	logger   zerolog.Logger
	ser      *serializer.Serializer
	comparer *compare.Comparer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "legacyrec",
		Short: "Legacy fixed-layout record codec",
		Long: `legacyrec converts single record fields between their logical values and
the bytes a mainframe program stores: zoned and packed decimal, big-endian
binary, IEEE floats and space-padded text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML culture file (decimal separator, signs, move rule)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or off")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newCompareCmd(a),
		newMeasureCmd(a),
		newStoreCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.logger = logging.NewWithWriter("legacyrec", cmd.ErrOrStderr())
	if a.logLevel != "" {
		lvl, ok := logging.ParseLevel(a.logLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", a.logLevel)
		}
		a.logger = a.logger.Level(lvl)
	}

	a.cfg = locale.Default()
	if a.configPath != "" {
		cfg, err := locale.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger.Debug().Str("config", a.configPath).Msg("culture loaded")
	}

	ser, err := serializer.New(a.cfg, serializer.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.ser = ser

	comparer, err := compare.New(ser, compare.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.comparer = comparer

	return nil
}

// parseFieldType resolves a field type name, ignoring case.
func parseFieldType(name string) (format.FieldType, error) {
	for _, ft := range format.FieldTypes {
		if strings.EqualFold(ft.String(), name) {
			return ft, nil
		}
	}

	names := make([]string, len(format.FieldTypes))
	for i, ft := range format.FieldTypes {
		names[i] = ft.String()
	}

	return 0, fmt.Errorf("unknown field type %q (want one of %s)", name, strings.Join(names, ", "))
}

// parseCompression resolves a compression name, ignoring case.
func parseCompression(name string) (format.CompressionType, error) {
	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		if strings.EqualFold(ct.String(), name) {
			return ct, nil
		}
	}

	return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2 or lz4)", name)
}
