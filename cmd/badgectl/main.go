// badgectl drives a badge over its serial control channel.
//
//	badgectl -port /dev/ttyACM0 -solid-color ff8000
//	badgectl -port /dev/ttyACM0 -frame-buffer ff0000,000000,...  (9 colors)
//	badgectl -port /dev/ttyACM0 send-nec -addr 0x00 -cmd 0x40
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/escbadge/minibadge/internal/matrix"
	"github.com/escbadge/minibadge/internal/wire"
)

func main() {
	var (
		port       = flag.String("port", "/dev/ttyACM0", "serial control device")
		solidColor = flag.String("solid-color", "", "fill the matrix with one RRGGBB color")
		frame      = flag.String("frame-buffer", "", "9 comma-separated RRGGBB colors, row by row")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var payload []byte
	switch {
	case flag.NArg() > 0 && flag.Arg(0) == "send-nec":
		fs := flag.NewFlagSet("send-nec", flag.ExitOnError)
		addr := fs.Uint("addr", 0, "NEC address")
		cmd := fs.Uint("cmd", 0, "NEC command")
		repeat := fs.Bool("repeat", false, "send as repeat frame")
		_ = fs.Parse(flag.Args()[1:])
		payload = wire.EncodeSendNec(uint8(*addr), uint8(*cmd), *repeat)

	case *solidColor != "":
		p, err := parseColor(*solidColor)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -solid-color")
		}
		payload = wire.EncodeSetSolidColor(p)

	case *frame != "":
		f, err := parseFrame(*frame)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -frame-buffer")
		}
		payload = wire.EncodeSetFrameBuffer(f)

	default:
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.OpenFile(*port, os.O_WRONLY, 0)
	if err != nil {
		log.Fatal().Err(err).Str("port", *port).Msg("open failed")
	}
	defer f.Close()

	if _, err := f.Write(payload); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
	log.Info().Int("bytes", len(payload)).Str("port", *port).Msg("sent")
}

func parseColor(s string) (matrix.Pixel, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return matrix.Pixel{}, fmt.Errorf("want RRGGBB, got %q", s)
	}
	return matrix.Pixel{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func parseFrame(s string) (matrix.Frame, error) {
	parts := strings.Split(s, ",")
	var f matrix.Frame
	if len(parts) != matrix.Size {
		return f, fmt.Errorf("want %d colors, got %d", matrix.Size, len(parts))
	}
	for i, part := range parts {
		p, err := parseColor(part)
		if err != nil {
			return f, err
		}
		f[i] = p
	}
	return f, nil
}
